package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID           uint            `gorm:"primaryKey"`
	OutletID     uint            `gorm:"not null;index"`
	MenuItemName string          `gorm:"type:varchar(120);not null"`
	Category     *string         `gorm:"type:varchar(80)"`
	SKU          *string         `gorm:"column:sku;type:varchar(40)"`
	Price        decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'KES'"`
	IsAvailable  bool            `gorm:"not null"`
	HasDairy     bool            `gorm:"not null;default:false"`
	IsSeasonal   bool            `gorm:"not null;default:false"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}
