package services

import (
	"context"
	"testing"
	"time"

	"lyhu_portal/internal/events"
	"lyhu_portal/internal/logger"
	"lyhu_portal/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrderService(t *testing.T, now time.Time) (OrderService, *events.Broker) {
	t.Helper()
	broker := events.NewBroker(8)
	svc := NewOrderService(newTestSlots(t), broker, logger.Discard())
	svc.(*orderService).now = fixedClock(now)
	return svc, broker
}

func orderInput(customerID string, total int64) models.NewOrderInput {
	return models.NewOrderInput{
		CustomerID:   customerID,
		CustomerName: "Tạp hóa Hùng Vương",
		Source:       models.OrderSourceSales,
		Items: []models.OrderItem{{
			SKU:       "UHI-001",
			Name:      "Nước tăng lực UHI Energy 330ml",
			UnitPrice: decimal.NewFromInt(total),
			Quantity:  1,
			Unit:      "Lon",
			Subtotal:  decimal.NewFromInt(total),
		}},
		TotalAmount: decimal.NewFromInt(total),
	}
}

func TestNextOrderID(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "ORD-2025-001", NextOrderID(nil, now))

	orders := []models.Order{{ID: "ORD-2025-007"}, {ID: "ORD-2025-003"}, {ID: "ORD-2024-120"}}
	assert.Equal(t, "ORD-2025-008", NextOrderID(orders, now))

	// a new year restarts the sequence
	next := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD-2026-001", NextOrderID(orders, next))

	// suffixes beyond three digits keep counting
	assert.Equal(t, "ORD-2025-1000", NextOrderID([]models.Order{{ID: "ORD-2025-999"}}, now))
}

func TestOrders_AddAssignsIDAndPublishes(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	svc, broker := newTestOrderService(t, now)

	received, cancel := broker.Subscribe()
	defer cancel()

	orders, err := svc.AddOrder(ctx, orderInput("1", 8500))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD-2025-001", orders[0].ID)
	assert.Equal(t, models.OrderPending, orders[0].Status)
	assert.Equal(t, now, orders[0].CreatedAt)

	orders, err = svc.AddOrder(ctx, orderInput("2", 6000))
	require.NoError(t, err)
	assert.Equal(t, "ORD-2025-002", orders[0].ID, "newest first")
	assert.Equal(t, "ORD-2025-001", orders[1].ID)

	ev := <-received
	assert.Equal(t, events.OrderCreated, ev.Type)
	assert.Equal(t, "ORD-2025-001", ev.OrderID)
}

func TestOrders_AddRejectsEmptyItems(t *testing.T) {
	svc, _ := newTestOrderService(t, time.Now())

	input := orderInput("1", 100)
	input.Items = nil
	_, err := svc.AddOrder(context.Background(), input)
	assert.Error(t, err)
	assert.Empty(t, svc.LoadOrders(context.Background()))
}

func TestOrders_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc, broker := newTestOrderService(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))

	_, err := svc.AddOrder(ctx, orderInput("1", 100))
	require.NoError(t, err)

	received, cancel := broker.Subscribe()
	defer cancel()

	orders, err := svc.UpdateOrderStatus(ctx, "ORD-2025-001", models.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, orders[0].Status)

	ev := <-received
	assert.Equal(t, events.OrderStatusChanged, ev.Type)
	assert.Equal(t, "delivered", ev.Status)

	_, err = svc.UpdateOrderStatus(ctx, "ORD-2025-001", "shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrders_ByCustomerAndID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestOrderService(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))

	for _, id := range []string{"4", "5", "4"} {
		_, err := svc.AddOrder(ctx, orderInput(id, 100))
		require.NoError(t, err)
	}

	assert.Len(t, svc.GetOrdersByCustomer(ctx, "4"), 2)
	assert.Empty(t, svc.GetOrdersByCustomer(ctx, "9"))

	order, ok := svc.GetOrderByID(ctx, "ORD-2025-002")
	require.True(t, ok)
	assert.Equal(t, "5", order.CustomerID)

	_, ok = svc.GetOrderByID(ctx, "ORD-2025-404")
	assert.False(t, ok)
}

func TestSummarizeOrders_ExcludesCancelledRevenue(t *testing.T) {
	orders := []models.Order{
		{ID: "a", Status: models.OrderPending, TotalAmount: decimal.NewFromInt(100)},
		{ID: "b", Status: models.OrderDelivered, TotalAmount: decimal.NewFromInt(200)},
		{ID: "c", Status: models.OrderCancelled, TotalAmount: decimal.NewFromInt(300)},
	}

	summary := SummarizeOrders(orders)
	assert.Equal(t, 3, summary.TotalOrders)
	assert.Equal(t, 1, summary.TotalPending)
	assert.Equal(t, 1, summary.TotalDelivered)
	assert.Equal(t, 1, summary.TotalCancelled)
	assert.Equal(t, 0, summary.TotalProcessing)
	assert.True(t, summary.TotalRevenue.Equal(decimal.NewFromInt(300)))
}

func TestOrders_SaveReplacesAndPublishes(t *testing.T) {
	ctx := context.Background()
	svc, broker := newTestOrderService(t, time.Now())

	received, cancel := broker.Subscribe()
	defer cancel()

	require.NoError(t, svc.SaveOrders(ctx, []models.Order{}))
	assert.Equal(t, events.OrdersReplaced, (<-received).Type)
	assert.Empty(t, svc.LoadOrders(ctx))
}

func TestSearchAndSourceFilter(t *testing.T) {
	orders := []models.Order{
		{ID: "ORD-2025-001", CustomerName: "Mini Mart Sài Gòn", Source: models.OrderSourceSales},
		{ID: "ORD-2025-002", CustomerName: "Khách hàng LYHU", Source: models.OrderSourceCustomer},
	}

	assert.Len(t, SearchOrders(orders, ""), 2)
	assert.Len(t, SearchOrders(orders, "mini mart"), 1)
	assert.Len(t, SearchOrders(orders, "ord-2025-002"), 1)
	assert.Empty(t, SearchOrders(orders, "zzz"))

	sales := FilterBySource(orders, models.OrderSourceSales)
	require.Len(t, sales, 1)
	assert.Equal(t, "ORD-2025-001", sales[0].ID)
	assert.Len(t, FilterBySource(orders, ""), 2)
}

func TestOrders_UpdateStatusChangesOnlyThatOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestOrderService(t, time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC))
	for _, customer := range []string{"1", "2", "3"} {
		_, err := svc.AddOrder(ctx, orderInput(customer, 100))
		require.NoError(t, err)
	}

	before := svc.LoadOrders(ctx)
	expected := make([]models.Order, len(before))
	copy(expected, before)
	expected[1].Status = models.OrderProcessing

	orders, err := svc.UpdateOrderStatus(ctx, "ORD-2025-002", models.OrderProcessing)
	require.NoError(t, err)
	assert.Equal(t, expected, orders)
	assert.Equal(t, expected, svc.LoadOrders(ctx))
}

func TestOrders_AddStampsCurrentTime(t *testing.T) {
	svc, _ := newTestOrderService(t, time.Now())
	svc.(*orderService).now = time.Now

	start := time.Now()
	orders, err := svc.AddOrder(context.Background(), orderInput("1", 100))
	require.NoError(t, err)

	created := orders[0].CreatedAt
	assert.False(t, created.Before(start), "created %s before %s", created, start)
	assert.False(t, created.After(time.Now()))
}

func TestOrders_FilterKeepsOrder(t *testing.T) {
	svc, _ := newTestOrderService(t, time.Now())

	orders := []models.Order{
		{ID: "ORD-2025-005", Status: models.OrderPending},
		{ID: "ORD-2025-004", Status: models.OrderDelivered},
		{ID: "ORD-2025-003", Status: models.OrderPending},
		{ID: "ORD-2025-002", Status: models.OrderCancelled},
		{ID: "ORD-2025-001", Status: models.OrderPending},
	}

	assert.Equal(t, orders, svc.FilterByStatus(orders, models.StatusFilterAll))
	assert.Equal(t, []models.Order{orders[0], orders[2], orders[4]}, svc.FilterByStatus(orders, "pending"))
	assert.Equal(t, []models.Order{orders[1]}, svc.FilterByStatus(orders, "delivered"))
	assert.Empty(t, svc.FilterByStatus(orders, "processing"))
}
