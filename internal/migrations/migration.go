package migrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"lyhu_portal/internal/models"
	"lyhu_portal/internal/repository"
	"lyhu_portal/internal/services"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// RunMigrations brings persisted slots up to the current layout. The schema
// itself is migrated when the database is opened.
func RunMigrations(ctx context.Context, slots repository.SlotRepository, orders services.OrderService, log logrus.FieldLogger) error {
	log.Info("Running slot migrations...")

	imported, err := ImportLegacyCustomerOrders(ctx, slots, orders, log)
	if err != nil {
		return err
	}
	if imported > 0 {
		log.WithField("orders", imported).Info("Imported legacy customer orders")
	}

	log.Info("Slot migrations completed successfully!")
	return nil
}

// ImportLegacyCustomerOrders moves orders from the old customer-only slot into
// the shared order slot and removes the old slot. An order already present for
// the same customer and creation time is not imported again. An order number
// taken by a different order is replaced by the next free id.
func ImportLegacyCustomerOrders(ctx context.Context, slots repository.SlotRepository, orders services.OrderService, log logrus.FieldLogger) (int, error) {
	raw, err := slots.Get(ctx, models.SlotCustomerOrders)
	if err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read %s: %w", models.SlotCustomerOrders, err)
	}

	var legacy []models.LegacyCustomerOrder
	if err := json.Unmarshal(raw, &legacy); err != nil {
		// left in place for manual inspection
		log.WithError(err).Warn("Legacy customer order slot is unreadable, skipping import")
		return 0, nil
	}

	current := orders.LoadOrders(ctx)
	taken := make(map[string]bool, len(current))
	known := make(map[string]bool, len(current))
	for _, order := range current {
		taken[order.ID] = true
		known[identity(order)] = true
	}

	merged := current
	imported := 0
	for _, old := range legacy {
		order, ok := convertLegacyOrder(old)
		if !ok {
			log.WithField("legacy_id", old.ID).Warn("Skipping legacy order without customer or items")
			continue
		}
		if known[identity(order)] {
			continue
		}
		if order.ID == "" || taken[order.ID] {
			if order.ID != "" {
				log.WithField("order_id", order.ID).Info("Legacy order number in use, assigning a new id")
			}
			order.ID = services.NextOrderID(merged, order.CreatedAt)
		}
		taken[order.ID] = true
		known[identity(order)] = true
		merged = append(merged, order)
		imported++
	}

	if imported > 0 {
		sort.SliceStable(merged, func(i, j int) bool {
			return merged[i].CreatedAt.After(merged[j].CreatedAt)
		})
		if err := orders.SaveOrders(ctx, merged); err != nil {
			return 0, fmt.Errorf("failed to save imported orders: %w", err)
		}
	}

	if err := slots.Delete(ctx, models.SlotCustomerOrders); err != nil {
		return imported, fmt.Errorf("failed to remove %s: %w", models.SlotCustomerOrders, err)
	}
	return imported, nil
}

// identity tells orders apart independently of their number.
func identity(order models.Order) string {
	return order.CustomerID + "|" + order.CreatedAt.UTC().Format(time.RFC3339Nano)
}

// legacyTimeLayouts are tried in order; the oldest data stored bare dates.
var legacyTimeLayouts = []string{time.RFC3339, "2006-01-02"}

func parseLegacyTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range legacyTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func convertLegacyOrder(old models.LegacyCustomerOrder) (models.Order, bool) {
	if old.CustomerID == "" {
		return models.Order{}, false
	}

	items := make([]models.OrderItem, 0, len(old.Items))
	total := decimal.Zero
	for _, line := range old.Items {
		if line.Quantity <= 0 {
			continue
		}
		name := line.ProductName
		if name == "" {
			name = line.ProductID
		}
		subtotal := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, models.OrderItem{
			SKU:       "N/A",
			Name:      name,
			UnitPrice: line.Price,
			Quantity:  line.Quantity,
			Unit:      "Cái",
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}
	if len(items) == 0 {
		return models.Order{}, false
	}

	if old.TotalAmount.IsPositive() {
		total = old.TotalAmount
	}

	status := old.Status
	if !status.Valid() {
		status = models.OrderPending
	}

	createdAt, ok := parseLegacyTime(old.CreatedAt)
	if !ok {
		createdAt = time.Now()
	}

	customerName := old.CustomerName
	if customerName == "" {
		customerName = old.CustomerID
	}

	return models.Order{
		ID:           strings.TrimSpace(old.OrderNumber),
		CustomerID:   old.CustomerID,
		CustomerName: customerName,
		Source:       models.OrderSourceCustomer,
		Status:       status,
		Items:        items,
		TotalAmount:  total,
		CreatedAt:    createdAt.UTC(),
	}, true
}
