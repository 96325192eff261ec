package schemas

import (
	"github.com/shopspring/decimal"

	"github.com/yeremiapane/coffee-outlets/models"
)

const DefaultCurrency = "KES"

// MenuItemCreate is the body accepted by POST /outlets/:id/menu-items.
// OutletID may be omitted; when present it has to match the path.
type MenuItemCreate struct {
	OutletID     *uint            `json:"outlet_id"`
	MenuItemName string           `json:"menu_item_name" validate:"required,min=2,max=120"`
	Category     *string          `json:"category" validate:"omitempty,min=2,max=80"`
	SKU          *string          `json:"sku" validate:"omitempty,min=2,max=40"`
	Price        *decimal.Decimal `json:"price" validate:"required,dgte=0,dmaxdigits=8,dplaces=2"`
	Currency     string           `json:"currency" validate:"len=3"`
	IsAvailable  *bool            `json:"is_available" validate:"required"`
	HasDairy     bool             `json:"has_dairy"`
	IsSeasonal   bool             `json:"is_seasonal"`
}

// NewMenuItemCreate returns a body with the documented defaults applied.
func NewMenuItemCreate() MenuItemCreate {
	return MenuItemCreate{Currency: DefaultCurrency}
}

func (in *MenuItemCreate) ToRow(outletID uint) models.MenuItem {
	row := models.MenuItem{
		OutletID:     outletID,
		MenuItemName: in.MenuItemName,
		Category:     in.Category,
		SKU:          in.SKU,
		Currency:     in.Currency,
		HasDairy:     in.HasDairy,
		IsSeasonal:   in.IsSeasonal,
	}
	if in.Price != nil {
		row.Price = *in.Price
	}
	if in.IsAvailable != nil {
		row.IsAvailable = *in.IsAvailable
	}
	return row
}

type MenuItem struct {
	ID           uint            `json:"id" validate:"required"`
	OutletID     uint            `json:"outlet_id" validate:"required"`
	MenuItemName string          `json:"menu_item_name" validate:"required,min=2,max=120"`
	Category     *string         `json:"category" validate:"omitempty,min=2,max=80"`
	SKU          *string         `json:"sku" validate:"omitempty,min=2,max=40"`
	Price        decimal.Decimal `json:"price" validate:"dgte=0,dmaxdigits=8,dplaces=2"`
	Currency     string          `json:"currency" validate:"len=3"`
	IsAvailable  bool            `json:"is_available"`
	HasDairy     bool            `json:"has_dairy"`
	IsSeasonal   bool            `json:"is_seasonal"`
}

func (m *MenuItem) Validate() error {
	return check(SourceResponse, m)
}

func MenuItemFromRow(row *models.MenuItem) (*MenuItem, error) {
	out := &MenuItem{
		ID:           row.ID,
		OutletID:     row.OutletID,
		MenuItemName: row.MenuItemName,
		Category:     row.Category,
		SKU:          row.SKU,
		Price:        row.Price,
		Currency:     row.Currency,
		IsAvailable:  row.IsAvailable,
		HasDairy:     row.HasDairy,
		IsSeasonal:   row.IsSeasonal,
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
