package schemas

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/coffee-outlets/models"
)

// OutletCreate is the body accepted by POST /outlets/.
type OutletCreate struct {
	Name          string           `json:"name" validate:"required,min=2,max=120"`
	Location      string           `json:"location" validate:"required,min=2,max=120"`
	City          string           `json:"city" validate:"required,min=2,max=120"`
	County        string           `json:"county" validate:"required,min=2,max=120"`
	StreetAddress *string          `json:"street_address" validate:"omitempty,min=4,max=160"`
	PhoneNumber   *string          `json:"phone_number" validate:"omitempty,min=7,max=20"`
	Rating        *decimal.Decimal `json:"rating" validate:"omitempty,dgte=0,dlte=5,dplaces=1"`
	IsOpen        *Flag            `json:"is_open" validate:"required"`
	OpeningTime   *string          `json:"opening_time" validate:"omitempty,max=16"`
	ClosingTime   *string          `json:"closing_time" validate:"omitempty,max=16"`
}

// ToRow builds the row to insert. The creation time doubles as the first
// inspection stamp.
func (in *OutletCreate) ToRow(now time.Time) models.Outlet {
	row := models.Outlet{
		Name:            in.Name,
		Location:        in.Location,
		City:            in.City,
		County:          in.County,
		StreetAddress:   in.StreetAddress,
		PhoneNumber:     in.PhoneNumber,
		OpeningTime:     in.OpeningTime,
		ClosingTime:     in.ClosingTime,
		LastInspectedAt: &now,
	}
	if in.IsOpen != nil {
		row.IsOpen = in.IsOpen.Int()
	}
	if in.Rating != nil {
		row.Rating = decimal.NewNullDecimal(*in.Rating)
	}
	return row
}

// OutletUpdate is a partial update; absent fields keep their stored value.
type OutletUpdate struct {
	Name            *string          `json:"name" validate:"omitempty,min=2,max=120"`
	Location        *string          `json:"location" validate:"omitempty,min=2,max=120"`
	City            *string          `json:"city" validate:"omitempty,min=2,max=120"`
	County          *string          `json:"county" validate:"omitempty,min=2,max=120"`
	StreetAddress   *string          `json:"street_address" validate:"omitempty,min=4,max=160"`
	PhoneNumber     *string          `json:"phone_number" validate:"omitempty,min=7,max=20"`
	Rating          *decimal.Decimal `json:"rating" validate:"omitempty,dgte=0,dlte=5,dplaces=1"`
	IsOpen          *Flag            `json:"is_open"`
	OpeningTime     *string          `json:"opening_time" validate:"omitempty,max=16"`
	ClosingTime     *string          `json:"closing_time" validate:"omitempty,max=16"`
	LastInspectedAt *time.Time       `json:"last_inspected_at"`
}

func (in *OutletUpdate) Apply(row *models.Outlet) {
	if in.Name != nil {
		row.Name = *in.Name
	}
	if in.Location != nil {
		row.Location = *in.Location
	}
	if in.City != nil {
		row.City = *in.City
	}
	if in.County != nil {
		row.County = *in.County
	}
	if in.StreetAddress != nil {
		row.StreetAddress = in.StreetAddress
	}
	if in.PhoneNumber != nil {
		row.PhoneNumber = in.PhoneNumber
	}
	if in.Rating != nil {
		row.Rating = decimal.NewNullDecimal(*in.Rating)
	}
	if in.IsOpen != nil {
		row.IsOpen = in.IsOpen.Int()
	}
	if in.OpeningTime != nil {
		row.OpeningTime = in.OpeningTime
	}
	if in.ClosingTime != nil {
		row.ClosingTime = in.ClosingTime
	}
	if in.LastInspectedAt != nil {
		row.LastInspectedAt = in.LastInspectedAt
	}
}

// Outlet is the read contract returned for every outlet.
type Outlet struct {
	ID              uint             `json:"id" validate:"required"`
	Name            string           `json:"name" validate:"required,min=2,max=120"`
	Location        string           `json:"location" validate:"required,min=2,max=120"`
	City            string           `json:"city" validate:"required,min=2,max=120"`
	County          string           `json:"county" validate:"required,min=2,max=120"`
	StreetAddress   *string          `json:"street_address" validate:"omitempty,min=4,max=160"`
	PhoneNumber     *string          `json:"phone_number" validate:"omitempty,min=7,max=20"`
	Rating          *decimal.Decimal `json:"rating" validate:"omitempty,dgte=0,dlte=5,dplaces=1"`
	IsOpen          Flag             `json:"is_open"`
	OpeningTime     *string          `json:"opening_time"`
	ClosingTime     *string          `json:"closing_time"`
	LastInspectedAt *time.Time       `json:"last_inspected_at"`
}

func (o *Outlet) Validate() error {
	return check(SourceResponse, o)
}

// OutletFromRow converts a stored row into the read contract and validates
// it. A row that does not satisfy the contract is reported, never returned.
func OutletFromRow(row *models.Outlet) (*Outlet, error) {
	isOpen, ok := FlagFromInt(row.IsOpen)
	if !ok {
		return nil, NewFieldError(SourceResponse, "is_open", "Stored flag should be 0 or 1", "int_parsing")
	}

	out := &Outlet{
		ID:              row.ID,
		Name:            row.Name,
		Location:        row.Location,
		City:            row.City,
		County:          row.County,
		StreetAddress:   row.StreetAddress,
		PhoneNumber:     row.PhoneNumber,
		IsOpen:          isOpen,
		OpeningTime:     row.OpeningTime,
		ClosingTime:     row.ClosingTime,
		LastInspectedAt: row.LastInspectedAt,
	}
	if row.Rating.Valid {
		rating := row.Rating.Decimal
		out.Rating = &rating
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// OutletWithMenu pairs an outlet with its menu items.
type OutletWithMenu struct {
	Outlet    Outlet     `json:"outlet"`
	MenuItems []MenuItem `json:"menu_items"`
}

// OutletWithProducts is the older shape of OutletWithMenu, still served on
// /outlets/:id/products.
type OutletWithProducts struct {
	Outlet   Outlet     `json:"outlet"`
	Products []MenuItem `json:"products"`
}

type ServiceInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
}
