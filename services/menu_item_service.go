package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/coffee-outlets/events"
	"github.com/yeremiapane/coffee-outlets/models"
	"github.com/yeremiapane/coffee-outlets/schemas"
	"github.com/yeremiapane/coffee-outlets/utils"
	"gorm.io/gorm"
)

const (
	msgMenuItemNotFound       = "Menu item not found"
	msgMenuItemCreateFailed   = "Error creating a new menu item: %s"
	msgMenuItemRetrieveFailed = "Failed to retrieve created menu item"
)

// ListMenuItems returns the outlet together with its menu ordered by name.
func (s *OutletService) ListMenuItems(ctx context.Context, outletID uint) (*schemas.OutletWithMenu, error) {
	outlet, err := s.GetOutlet(ctx, outletID)
	if err != nil {
		return nil, err
	}

	var rows []models.MenuItem
	err = s.db.Run(ctx, func(tx *gorm.DB) error {
		return tx.Where("outlet_id = ?", outletID).Order("menu_item_name ASC").Order("id ASC").Find(&rows).Error
	})
	if err != nil {
		return nil, Internalf(err, "Error retrieving menu items: %s", err)
	}

	items := make([]schemas.MenuItem, 0, len(rows))
	for i := range rows {
		item, err := schemas.MenuItemFromRow(&rows[i])
		if err != nil {
			return nil, Internalf(err, "Stored menu item %d is invalid: %s", rows[i].ID, err)
		}
		items = append(items, *item)
	}
	return &schemas.OutletWithMenu{Outlet: *outlet, MenuItems: items}, nil
}

func (s *OutletService) GetMenuItem(ctx context.Context, outletID, itemID uint) (*schemas.MenuItem, error) {
	if _, err := s.findOutlet(ctx, outletID); err != nil {
		return nil, err
	}

	var row models.MenuItem
	err := s.db.Run(ctx, func(tx *gorm.DB) error {
		return tx.Where("outlet_id = ?", outletID).First(&row, itemID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound(msgMenuItemNotFound)
	}
	if err != nil {
		return nil, Internalf(err, "Error retrieving menu item: %s", err)
	}

	item, err := schemas.MenuItemFromRow(&row)
	if err != nil {
		return nil, Internalf(err, "Stored menu item %d is invalid: %s", row.ID, err)
	}
	return item, nil
}

// CreateMenuItem adds an item to an existing outlet. The outlet is looked up
// before anything is written, so a missing outlet is reported as not found
// rather than as a constraint violation.
func (s *OutletService) CreateMenuItem(ctx context.Context, outletID uint, payload []byte) (*schemas.MenuItem, error) {
	in := schemas.NewMenuItemCreate()
	if err := schemas.Decode(payload, &in); err != nil {
		return nil, Invalid(err)
	}
	if in.OutletID != nil && *in.OutletID != outletID {
		return nil, Invalid(schemas.NewFieldError(schemas.SourceBody, "outlet_id",
			fmt.Sprintf("outlet_id %d does not match outlet %d in the path", *in.OutletID, outletID), "value_error"))
	}

	if _, err := s.findOutlet(ctx, outletID); err != nil {
		return nil, err
	}

	row := in.ToRow(outletID)
	err := s.db.Run(ctx, func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, Internalf(err, msgMenuItemCreateFailed, err)
	}

	var created []models.MenuItem
	err = s.db.Run(ctx, func(tx *gorm.DB) error {
		return tx.Where("id = ? AND outlet_id = ?", row.ID, outletID).Limit(1).Find(&created).Error
	})
	if err != nil {
		return nil, Internalf(err, "Error retrieving created menu item: %s", err)
	}
	if len(created) == 0 {
		return nil, Internal(msgMenuItemRetrieveFailed, nil)
	}

	item, err := schemas.MenuItemFromRow(&created[0])
	if err != nil {
		return nil, Internalf(err, "Created menu item failed validation: %s", err)
	}

	utils.InfoLogger.Printf("Menu item created (ID=%d) at OutletID=%d", item.ID, outletID)
	s.publish(ctx, events.New(events.MenuItemCreated, outletID, item))
	return item, nil
}
