package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

type Order struct {
	ID            uint                       `gorm:"primaryKey"`
	OutletID      uint                       `gorm:"not null;index"`
	ProductIDs    datatypes.JSONSlice[int64] `gorm:"column:product_ids;not null"`
	TotalPrice    decimal.Decimal            `gorm:"type:decimal(10,2);not null;default:0"`
	Currency      string                     `gorm:"type:varchar(3);not null;default:'KES'"`
	IsCompleted   bool                       `gorm:"not null;default:false"`
	Status        string                     `gorm:"type:varchar(32);not null;default:'pending'"`
	PlacedAt      time.Time                  `gorm:"not null"`
	CompletedAt   *time.Time
	PaymentMethod *string   `gorm:"type:varchar(40)"`
	Notes         *string   `gorm:"type:varchar(280)"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// Complete moves a pending order to completed. It reports false when the
// order was already completed and nothing changed.
func (o *Order) Complete(at time.Time) bool {
	if o.IsCompleted {
		return false
	}
	o.IsCompleted = true
	o.Status = OrderStatusCompleted
	o.CompletedAt = &at
	return true
}
