package schemas

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/coffee-outlets/models"
)

// OrderCreate is the body accepted by POST /outlets/:id/orders. The total is
// always computed from the menu, never taken from the client.
type OrderCreate struct {
	OutletID      *uint   `json:"outlet_id"`
	ProductIDs    []int64 `json:"product_ids" validate:"required,min=1,max=500,dive,gt=0"`
	PaymentMethod *string `json:"payment_method" validate:"omitempty,min=3,max=40"`
	Notes         *string `json:"notes" validate:"omitempty,max=280"`
}

// OrderComplete is the optional body of the completion call.
type OrderComplete struct {
	PaymentMethod *string `json:"payment_method" validate:"omitempty,min=3,max=40"`
}

type Order struct {
	ID            uint            `json:"id" validate:"required"`
	OutletID      uint            `json:"outlet_id" validate:"required"`
	ProductIDs    []int64         `json:"product_ids" validate:"required,min=1"`
	TotalPrice    decimal.Decimal `json:"total_price" validate:"dgte=0,dmaxdigits=10,dplaces=2"`
	Currency      string          `json:"currency" validate:"len=3"`
	IsCompleted   bool            `json:"is_completed"`
	Status        string          `json:"status" validate:"min=3,max=32"`
	PlacedAt      time.Time       `json:"placed_at" validate:"required"`
	CompletedAt   *time.Time      `json:"completed_at" validate:"required_if=IsCompleted true"`
	PaymentMethod *string         `json:"payment_method" validate:"omitempty,min=3,max=40"`
	Notes         *string         `json:"notes" validate:"omitempty,max=280"`
}

func (o *Order) Validate() error {
	return check(SourceResponse, o)
}

func OrderFromRow(row *models.Order) (*Order, error) {
	productIDs := make([]int64, len(row.ProductIDs))
	copy(productIDs, row.ProductIDs)

	out := &Order{
		ID:            row.ID,
		OutletID:      row.OutletID,
		ProductIDs:    productIDs,
		TotalPrice:    row.TotalPrice,
		Currency:      row.Currency,
		IsCompleted:   row.IsCompleted,
		Status:        row.Status,
		PlacedAt:      row.PlacedAt,
		CompletedAt:   row.CompletedAt,
		PaymentMethod: row.PaymentMethod,
		Notes:         row.Notes,
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// OrderSummary aggregates every order of an outlet, completed or not.
type OrderSummary struct {
	OutletID            uint            `json:"outlet_id" validate:"required"`
	OutletName          string          `json:"outlet_name" validate:"required"`
	TotalOrders         int64           `json:"total_orders" validate:"gte=0"`
	TotalRevenue        decimal.Decimal `json:"total_revenue" validate:"dgte=0,dmaxdigits=12,dplaces=2"`
	Currency            string          `json:"currency" validate:"len=3"`
	TotalRevenueDisplay string          `json:"total_revenue_display"`
}

func (s *OrderSummary) Validate() error {
	return check(SourceResponse, s)
}
