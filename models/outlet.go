package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Outlet is a coffee-shop branch row. IsOpen stays an integer column (0/1)
// because that is how existing clients read and write it.
type Outlet struct {
	ID              uint                `gorm:"primaryKey"`
	Name            string              `gorm:"type:varchar(120);not null;index"`
	Location        string              `gorm:"type:varchar(120);not null"`
	City            string              `gorm:"type:varchar(120);not null"`
	County          string              `gorm:"type:varchar(120);not null"`
	StreetAddress   *string             `gorm:"type:varchar(160)"`
	PhoneNumber     *string             `gorm:"type:varchar(20)"`
	Rating          decimal.NullDecimal `gorm:"type:decimal(3,1)"`
	IsOpen          int                 `gorm:"not null;default:0"`
	OpeningTime     *string             `gorm:"type:varchar(16)"`
	ClosingTime     *string             `gorm:"type:varchar(16)"`
	LastInspectedAt *time.Time
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`

	MenuItems []MenuItem `gorm:"foreignKey:OutletID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Orders    []Order    `gorm:"foreignKey:OutletID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
