package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/coffee-outlets/events"
	"github.com/yeremiapane/coffee-outlets/models"
	"github.com/yeremiapane/coffee-outlets/schemas"
	"github.com/yeremiapane/coffee-outlets/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	msgOrderNotFound       = "Order not found"
	msgOrderCreateFailed   = "Error creating a new order: %s"
	msgOrderRetrieveFailed = "Failed to retrieve created order"
)

// Largest values the total_price (10,2) and total_revenue (12,2) columns hold.
var (
	maxOrderTotal    = decimal.RequireFromString("99999999.99")
	maxOutletRevenue = decimal.RequireFromString("9999999999.99")
)

// ListOrders returns the orders of an outlet, newest first.
func (s *OutletService) ListOrders(ctx context.Context, outletID uint) ([]schemas.Order, error) {
	if _, err := s.findOutlet(ctx, outletID); err != nil {
		return nil, err
	}

	var rows []models.Order
	err := s.db.Run(ctx, func(tx *gorm.DB) error {
		return tx.Where("outlet_id = ?", outletID).Order("placed_at DESC").Order("id DESC").Find(&rows).Error
	})
	if err != nil {
		return nil, Internalf(err, "Error retrieving orders: %s", err)
	}

	orders := make([]schemas.Order, 0, len(rows))
	for i := range rows {
		order, err := schemas.OrderFromRow(&rows[i])
		if err != nil {
			return nil, Internalf(err, "Stored order %d is invalid: %s", rows[i].ID, err)
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (s *OutletService) GetOrder(ctx context.Context, outletID, orderID uint) (*schemas.Order, error) {
	if _, err := s.findOutlet(ctx, outletID); err != nil {
		return nil, err
	}

	row, err := s.findOrder(ctx, outletID, orderID)
	if err != nil {
		return nil, err
	}
	order, err := schemas.OrderFromRow(row)
	if err != nil {
		return nil, Internalf(err, "Stored order %d is invalid: %s", row.ID, err)
	}
	return order, nil
}

// CreateOrder places a pending order. Every product id has to be an
// available menu item of the same outlet and all of them have to share one
// currency; the total is the sum of their prices, one unit per id.
func (s *OutletService) CreateOrder(ctx context.Context, outletID uint, payload []byte) (*schemas.Order, error) {
	var in schemas.OrderCreate
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

	row := models.Order{
		OutletID:      outletID,
		ProductIDs:    datatypes.JSONSlice[int64](in.ProductIDs),
		Status:        models.OrderStatusPending,
		IsCompleted:   false,
		PlacedAt:      s.now(),
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
	}

	err := s.db.Run(ctx, func(tx *gorm.DB) error {
		var items []models.MenuItem
		if err := tx.Where("outlet_id = ? AND id IN ?", outletID, uniqueIDs(in.ProductIDs)).Find(&items).Error; err != nil {
			return err
		}
		total, currency, err := priceOrder(in.ProductIDs, items)
		if err != nil {
			return err
		}
		revenue, err := outletRevenue(tx, outletID)
		if err != nil {
			return err
		}
		if revenue.Add(total).GreaterThan(maxOutletRevenue) {
			return schemas.NewFieldError(schemas.SourceBody, "product_ids",
				fmt.Sprintf("Order total %s would take the outlet revenue past %s", total.StringFixed(2), maxOutletRevenue.StringFixed(2)), "value_error")
		}
		row.TotalPrice = total
		row.Currency = currency
		return tx.Create(&row).Error
	})
	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		return nil, Invalid(verr)
	}
	if err != nil {
		return nil, Internalf(err, msgOrderCreateFailed, err)
	}

	var created []models.Order
	err = s.db.Run(ctx, func(tx *gorm.DB) error {
		return tx.Where("id = ? AND outlet_id = ?", row.ID, outletID).Limit(1).Find(&created).Error
	})
	if err != nil {
		return nil, Internalf(err, "Error retrieving created order: %s", err)
	}
	if len(created) == 0 {
		return nil, Internal(msgOrderRetrieveFailed, nil)
	}

	order, err := schemas.OrderFromRow(&created[0])
	if err != nil {
		return nil, Internalf(err, "Created order failed validation: %s", err)
	}

	utils.InfoLogger.Printf("Order created (ID=%d) at OutletID=%d total=%s %s", order.ID, outletID, order.TotalPrice, order.Currency)
	s.publish(ctx, events.New(events.OrderCreated, outletID, order))
	return order, nil
}

// CompleteOrder marks an order completed and stamps completed_at. Completing
// an order twice leaves it untouched and returns it as stored.
func (s *OutletService) CompleteOrder(ctx context.Context, outletID, orderID uint, payload []byte) (*schemas.Order, error) {
	var in schemas.OrderComplete
	if len(payload) > 0 {
		if err := schemas.Decode(payload, &in); err != nil {
			return nil, Invalid(err)
		}
	}

	if _, err := s.findOutlet(ctx, outletID); err != nil {
		return nil, err
	}

	var row models.Order
	changed := false
	err := s.db.Run(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("outlet_id = ?", outletID).First(&row, orderID).Error; err != nil {
			return err
		}
		changed = row.Complete(s.now())
		if !changed {
			return nil
		}
		if in.PaymentMethod != nil {
			row.PaymentMethod = in.PaymentMethod
		}
		return tx.Save(&row).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound(msgOrderNotFound)
	}
	if err != nil {
		return nil, Internalf(err, "Error completing order: %s", err)
	}

	stored, err := s.findOrder(ctx, outletID, orderID)
	if err != nil {
		return nil, err
	}
	order, err := schemas.OrderFromRow(stored)
	if err != nil {
		return nil, Internalf(err, "Completed order failed validation: %s", err)
	}

	if changed {
		utils.InfoLogger.Printf("Order completed (ID=%d) at OutletID=%d", order.ID, outletID)
		s.publish(ctx, events.New(events.OrderCompleted, outletID, order))
	}
	return order, nil
}

// OrderSummary counts the orders of an outlet and sums their totals. Every
// order counts, completed or not.
// TODO: confirm with operations whether revenue should only include completed orders.
func (s *OutletService) OrderSummary(ctx context.Context, outletID uint) (*schemas.OrderSummary, error) {
	outlet, err := s.findOutlet(ctx, outletID)
	if err != nil {
		return nil, err
	}

	var (
		count   int64
		revenue decimal.Decimal
	)
	err = s.db.Run(ctx, func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("outlet_id = ?", outletID).Count(&count).Error; err != nil {
			return err
		}
		var err error
		revenue, err = outletRevenue(tx, outletID)
		return err
	})
	if err != nil {
		return nil, Internalf(err, "Error summarising orders: %s", err)
	}

	summary := &schemas.OrderSummary{
		OutletID:            outlet.ID,
		OutletName:          outlet.Name,
		TotalOrders:         count,
		TotalRevenue:        revenue,
		Currency:            schemas.DefaultCurrency,
		TotalRevenueDisplay: utils.FormatCurrency(schemas.DefaultCurrency, revenue),
	}
	if err := summary.Validate(); err != nil {
		return nil, Internalf(err, "Order summary failed validation: %s", err)
	}
	return summary, nil
}

// outletRevenue sums the totals of every order of an outlet.
func outletRevenue(tx *gorm.DB, outletID uint) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := tx.Model(&models.Order{}).
		Where("outlet_id = ?", outletID).
		Select("COALESCE(SUM(total_price), 0)").
		Row().Scan(&revenue)
	return revenue.Round(2), err
}

func (s *OutletService) findOrder(ctx context.Context, outletID, orderID uint) (*models.Order, error) {
	var row models.Order
	err := s.db.Run(ctx, func(tx *gorm.DB) error {
		return tx.Where("outlet_id = ?", outletID).First(&row, orderID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound(msgOrderNotFound)
	}
	if err != nil {
		return nil, Internalf(err, "Error retrieving order: %s", err)
	}
	return &row, nil
}

// priceOrder totals the given product ids against the outlet's menu. Errors
// point at the offending position in product_ids.
func priceOrder(productIDs []int64, items []models.MenuItem) (decimal.Decimal, string, error) {
	byID := make(map[int64]models.MenuItem, len(items))
	for _, item := range items {
		byID[int64(item.ID)] = item
	}

	verr := &schemas.ValidationError{}
	total := decimal.Zero
	currency := ""
	for i, id := range productIDs {
		loc := []interface{}{schemas.SourceBody, "product_ids", i}
		item, ok := byID[id]
		switch {
		case !ok:
			verr.Errors = append(verr.Errors, schemas.FieldError{
				Loc: loc, Msg: fmt.Sprintf("Menu item %d is not offered at this outlet", id), Type: "not_found",
			})
			continue
		case !item.IsAvailable:
			verr.Errors = append(verr.Errors, schemas.FieldError{
				Loc: loc, Msg: fmt.Sprintf("Menu item %d is not available", id), Type: "unavailable",
			})
			continue
		case currency != "" && item.Currency != currency:
			verr.Errors = append(verr.Errors, schemas.FieldError{
				Loc: loc, Msg: fmt.Sprintf("Menu item %d is priced in %s, expected %s", id, item.Currency, currency), Type: "currency_mismatch",
			})
			continue
		}
		currency = item.Currency
		total = total.Add(item.Price)
	}

	if len(verr.Errors) > 0 {
		return decimal.Zero, "", verr
	}
	if total.GreaterThan(maxOrderTotal) {
		return decimal.Zero, "", schemas.NewFieldError(schemas.SourceBody, "product_ids",
			fmt.Sprintf("Order total %s exceeds the maximum of %s", total.StringFixed(2), maxOrderTotal.StringFixed(2)), "value_error")
	}
	if currency == "" {
		currency = schemas.DefaultCurrency
	}
	return total, currency, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
