package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	OutletCreated   = "outlet.created"
	OutletUpdated   = "outlet.updated"
	OutletDeleted   = "outlet.deleted"
	MenuItemCreated = "menu_item.created"
	OrderCreated    = "order.created"
	OrderCompleted  = "order.completed"
)

type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OutletID   uint        `json:"outlet_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data,omitempty"`
}

func New(eventType string, outletID uint, data interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OutletID:   outletID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher delivers events after the change they describe has committed.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
