package services

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/coffee-outlets/database"
	"github.com/yeremiapane/coffee-outlets/events"
	"github.com/yeremiapane/coffee-outlets/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// setupTestDB opens a private in-memory SQLite database with foreign keys on.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// scriptedRunner wraps a real gateway. Calls are numbered from 1; fail makes
// a call return an error without touching the store, after runs extra
// statements inside the call's transaction once its work succeeded.
type scriptedRunner struct {
	inner database.Runner
	calls int
	fail  map[int]error
	after map[int]func(tx *gorm.DB) error
}

func (r *scriptedRunner) Run(ctx context.Context, work func(tx *gorm.DB) error) error {
	r.calls++
	n := r.calls
	if err, ok := r.fail[n]; ok {
		return &database.StoreError{Op: "work", Err: err}
	}
	return r.inner.Run(ctx, func(tx *gorm.DB) error {
		if err := work(tx); err != nil {
			return err
		}
		if hook, ok := r.after[n]; ok {
			return hook(tx)
		}
		return nil
	})
}

func newTestService(t *testing.T) (*OutletService, *gorm.DB, *recordingPublisher) {
	t.Helper()
	db := setupTestDB(t)
	pub := &recordingPublisher{}
	svc := NewOutletService(database.NewGateway(db), pub)
	svc.SetClock(func() time.Time { return fixedNow })
	return svc, db, pub
}

func newScriptedService(t *testing.T, runner *scriptedRunner) (*OutletService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	runner.inner = database.NewGateway(db)
	svc := NewOutletService(runner, nil)
	svc.SetClock(func() time.Time { return fixedNow })
	return svc, db
}

const westlandsBody = `{
	"name": "Westlands",
	"location": "Sarit Centre",
	"city": "Nairobi",
	"county": "Nairobi",
	"phone_number": "+254700000001",
	"rating": 4.5,
	"is_open": 1,
	"opening_time": "07:00",
	"closing_time": "21:00"
}`

func mustCreateOutlet(t *testing.T, svc *OutletService, body string) uint {
	t.Helper()
	out, err := svc.CreateOutlet(context.Background(), []byte(body))
	require.NoError(t, err)
	return out.ID
}

func outletBody(name string) string {
	return `{"name":"` + name + `","location":"Main Street","city":"Nairobi","county":"Nairobi","is_open":0}`
}
