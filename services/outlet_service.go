package services

import (
	"context"
	"errors"
	"time"

	"github.com/yeremiapane/coffee-outlets/database"
	"github.com/yeremiapane/coffee-outlets/events"
	"github.com/yeremiapane/coffee-outlets/models"
	"github.com/yeremiapane/coffee-outlets/schemas"
	"github.com/yeremiapane/coffee-outlets/utils"
	"gorm.io/gorm"
)

const (
	msgOutletNotFound       = "Outlet not found"
	msgOutletCreateFailed   = "Error creating a new outlet: %s"
	msgOutletRetrieveFailed = "Failed to retrieve created outlet"
)

// OutletService owns every outlet operation, including the menu item and
// order sub-resources, and is the only place where store failures are
// classified into validation, not-found and internal errors.
type OutletService struct {
	db        database.Runner
	publisher events.Publisher
	now       func() time.Time
}

func NewOutletService(db database.Runner, publisher events.Publisher) *OutletService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &OutletService{
		db:        db,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source, for tests.
func (s *OutletService) SetClock(now func() time.Time) {
	s.now = now
}

// Ping reports whether the store answers. Runners with their own health
// check are asked directly.
func (s *OutletService) Ping(ctx context.Context) error {
	if p, ok := s.db.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return s.db.Run(ctx, func(tx *gorm.DB) error {
		return tx.Exec("SELECT 1").Error
	})
}

// ListOutlets returns every outlet ordered by name. An empty store gives an
// empty, non-nil slice.
func (s *OutletService) ListOutlets(ctx context.Context) ([]schemas.Outlet, error) {
	var rows []models.Outlet
	err := s.db.Run(ctx, func(tx *gorm.DB) error {
		return tx.Order("name ASC").Order("id ASC").Find(&rows).Error
	})
	if err != nil {
		return nil, Internalf(err, "Error retrieving outlets: %s", err)
	}

	outlets := make([]schemas.Outlet, 0, len(rows))
	for i := range rows {
		out, err := schemas.OutletFromRow(&rows[i])
		if err != nil {
			return nil, Internalf(err, "Stored outlet %d is invalid: %s", rows[i].ID, err)
		}
		outlets = append(outlets, *out)
	}
	return outlets, nil
}

func (s *OutletService) GetOutlet(ctx context.Context, id uint) (*schemas.Outlet, error) {
	row, err := s.findOutlet(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := schemas.OutletFromRow(row)
	if err != nil {
		return nil, Internalf(err, "Stored outlet %d is invalid: %s", id, err)
	}
	return out, nil
}

// CreateOutlet validates the payload, inserts it, then reads the row back
// and validates it against the read contract before returning it. The
// insert and the read-back run as separate units of work.
func (s *OutletService) CreateOutlet(ctx context.Context, payload []byte) (*schemas.Outlet, error) {
	var in schemas.OutletCreate
	if err := schemas.Decode(payload, &in); err != nil {
		return nil, Invalid(err)
	}

	row := in.ToRow(s.now())
	err := s.db.Run(ctx, func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, Internalf(err, msgOutletCreateFailed, err)
	}

	created, err := s.rereadOutlet(ctx, &row)
	if err != nil {
		return nil, err
	}

	out, err := schemas.OutletFromRow(created)
	if err != nil {
		utils.ErrorLogger.Errorf("Created outlet %d failed read validation: %v", created.ID, err)
		return nil, Internalf(err, "Created outlet failed validation: %s", err)
	}

	utils.InfoLogger.Printf("New outlet created (ID=%d, name=%q)", out.ID, out.Name)
	s.publish(ctx, events.New(events.OutletCreated, out.ID, out))
	return out, nil
}

// rereadOutlet loads the latest row matching the identity of an inserted
// outlet. Finding nothing is reported as a consistency failure.
func (s *OutletService) rereadOutlet(ctx context.Context, inserted *models.Outlet) (*models.Outlet, error) {
	var rows []models.Outlet
	err := s.db.Run(ctx, func(tx *gorm.DB) error {
		q := tx.Where("name = ? AND location = ? AND city = ? AND county = ?",
			inserted.Name, inserted.Location, inserted.City, inserted.County)
		if inserted.ID != 0 {
			q = q.Where("id = ?", inserted.ID)
		}
		return q.Order("id DESC").Limit(1).Find(&rows).Error
	})
	if err != nil {
		return nil, Internalf(err, "Error retrieving created outlet: %s", err)
	}
	if len(rows) == 0 {
		utils.ErrorLogger.Errorf("Outlet insert succeeded but no row was found for %q", inserted.Name)
		return nil, Internal(msgOutletRetrieveFailed, nil)
	}
	return &rows[0], nil
}

// UpdateOutlet applies a partial update and returns the stored result.
func (s *OutletService) UpdateOutlet(ctx context.Context, id uint, payload []byte) (*schemas.Outlet, error) {
	var in schemas.OutletUpdate
	if err := schemas.Decode(payload, &in); err != nil {
		return nil, Invalid(err)
	}

	var row models.Outlet
	err := s.db.Run(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			return err
		}
		in.Apply(&row)
		return tx.Save(&row).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound(msgOutletNotFound)
	}
	if err != nil {
		return nil, Internalf(err, "Error updating outlet: %s", err)
	}

	updated, err := s.findOutlet(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := schemas.OutletFromRow(updated)
	if err != nil {
		return nil, Internalf(err, "Updated outlet failed validation: %s", err)
	}

	s.publish(ctx, events.New(events.OutletUpdated, out.ID, out))
	return out, nil
}

// DeleteOutlet removes an outlet together with its menu items and orders.
func (s *OutletService) DeleteOutlet(ctx context.Context, id uint) error {
	err := s.db.Run(ctx, func(tx *gorm.DB) error {
		// Children are removed explicitly too; SQLite only enforces the FK
		// cascade when foreign_keys is switched on for the connection.
		if err := tx.Where("outlet_id = ?", id).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("outlet_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Outlet{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(msgOutletNotFound)
	}
	if err != nil {
		return Internalf(err, "Error deleting outlet: %s", err)
	}

	utils.InfoLogger.Printf("Outlet deleted (ID=%d)", id)
	s.publish(ctx, events.New(events.OutletDeleted, id, nil))
	return nil
}

// findOutlet loads one outlet row, separating a missing row from a store
// failure.
func (s *OutletService) findOutlet(ctx context.Context, id uint) (*models.Outlet, error) {
	var row models.Outlet
	err := s.db.Run(ctx, func(tx *gorm.DB) error {
		return tx.First(&row, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound(msgOutletNotFound)
	}
	if err != nil {
		return nil, Internalf(err, "Error retrieving outlet: %s", err)
	}
	return &row, nil
}

func (s *OutletService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		utils.ErrorLogger.Errorf("Publishing %s for outlet %d failed: %v", event.Type, event.OutletID, err)
	}
}
