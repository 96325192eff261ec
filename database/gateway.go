package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Runner executes a unit of work inside one transaction. Callers supply the
// queries; the runner owns begin, commit, rollback and session release.
type Runner interface {
	Run(ctx context.Context, work func(tx *gorm.DB) error) error
}

// StoreError carries a failure of the underlying store unchanged. Error()
// returns the cause text as is so callers can quote it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

type Gateway struct {
	DB *gorm.DB
}

func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{DB: db}
}

// Run begins a transaction, hands it to work and commits when work returns
// nil. Any error or panic rolls the transaction back; errors come back as
// *StoreError and panics are re-raised after the rollback.
func (g *Gateway) Run(ctx context.Context, work func(tx *gorm.DB) error) (err error) {
	tx := g.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return &StoreError{Op: "begin", Err: tx.Error}
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
		tx.Rollback()
	}()

	if err := work(tx); err != nil {
		return &StoreError{Op: "work", Err: err}
	}

	if err := tx.Commit().Error; err != nil {
		return &StoreError{Op: "commit", Err: err}
	}
	committed = true
	return nil
}

// Ping checks that a session can be opened and a trivial query answered.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.Run(ctx, func(tx *gorm.DB) error {
		var one int
		if err := tx.Raw("SELECT 1").Scan(&one).Error; err != nil {
			return err
		}
		if one != 1 {
			return fmt.Errorf("unexpected ping result %d", one)
		}
		return nil
	})
}
