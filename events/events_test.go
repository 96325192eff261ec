package events

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPublisher struct {
	seen []Event
	err  error
}

func (p *countingPublisher) Publish(_ context.Context, e Event) error {
	p.seen = append(p.seen, e)
	return p.err
}

func TestNewEvent(t *testing.T) {
	e := New(OrderCreated, 4, map[string]int{"id": 9})

	_, err := uuid.Parse(e.ID)
	require.NoError(t, err)
	assert.Equal(t, OrderCreated, e.Type)
	assert.Equal(t, uint(4), e.OutletID)
	assert.False(t, e.OccurredAt.IsZero())
}

func TestMultiFansOutAndJoinsErrors(t *testing.T) {
	ok := &countingPublisher{}
	broken := &countingPublisher{err: errors.New("broker down")}
	m := Multi{ok, broken, Nop{}}

	err := m.Publish(context.Background(), New(OutletDeleted, 1, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Len(t, ok.seen, 1)
	assert.Len(t, broken.seen, 1)

	assert.NoError(t, Multi{ok}.Publish(context.Background(), New(OutletCreated, 1, nil)))
	assert.Len(t, ok.seen, 2)
}

func TestRabbitPublisherWithoutChannel(t *testing.T) {
	var p RabbitPublisher
	err := p.Publish(context.Background(), New(OrderCreated, 1, nil))
	assert.EqualError(t, err, "rabbitmq channel is closed")

	var nilPublisher *RabbitPublisher
	assert.NotPanics(t, nilPublisher.Close)
}
