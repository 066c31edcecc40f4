package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lyhu_portal/internal/events"
	"lyhu_portal/internal/models"
	"lyhu_portal/internal/repository"
	"lyhu_portal/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type OrderService interface {
	LoadOrders(ctx context.Context) []models.Order
	SaveOrders(ctx context.Context, orders []models.Order) error
	AddOrder(ctx context.Context, input models.NewOrderInput) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) ([]models.Order, error)
	FilterByStatus(orders []models.Order, status string) []models.Order
	GetOrdersByCustomer(ctx context.Context, customerID string) []models.Order
	GetOrderByID(ctx context.Context, id string) (*models.Order, bool)
	GetOrdersSummary(ctx context.Context) models.OrderSummary
	Subscribe() (<-chan events.Event, func())
}

type orderService struct {
	store     *entityStore[models.Order]
	broker    *events.Broker
	publisher events.Publisher
	now       func() time.Time
	log       logrus.FieldLogger
}

// NewOrderService wires the order slot to broker. Every write is announced on
// broker and, when given, on the extra publishers (e.g. the Redis relay).
func NewOrderService(slots repository.SlotRepository, broker *events.Broker, log logrus.FieldLogger, extra ...events.Publisher) OrderService {
	slot := repository.NewJSONSlot[models.Order](slots, models.SlotOrders, nil, log)
	publishers := append(events.MultiPublisher{broker}, extra...)
	return &orderService{
		store:     newEntityStore(slot),
		broker:    broker,
		publisher: publishers,
		now:       time.Now,
		log:       log.WithField("store", "orders"),
	}
}

func (s *orderService) LoadOrders(ctx context.Context) []models.Order {
	return s.store.load(ctx)
}

func (s *orderService) SaveOrders(ctx context.Context, orders []models.Order) error {
	if err := s.store.save(ctx, orders); err != nil {
		return err
	}
	s.publisher.Publish(ctx, events.Event{Type: events.OrdersReplaced})
	return nil
}

func (s *orderService) AddOrder(ctx context.Context, input models.NewOrderInput) ([]models.Order, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	orders, err := s.store.prepend(ctx, func(current []models.Order) (models.Order, error) {
		now := s.now()
		items := make([]models.OrderItem, len(input.Items))
		copy(items, input.Items)
		return models.Order{
			ID:           NextOrderID(current, now),
			CustomerID:   input.CustomerID,
			CustomerName: input.CustomerName,
			Source:       input.Source,
			Status:       models.OrderPending,
			Items:        items,
			TotalAmount:  input.TotalAmount,
			CreatedAt:    now.UTC(),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	created := orders[0]
	s.log.WithFields(logrus.Fields{
		"order_id": created.ID,
		"source":   created.Source,
		"total":    created.TotalAmount.String(),
	}).Info("Order created")
	s.publisher.Publish(ctx, events.Event{Type: events.OrderCreated, OrderID: created.ID, Status: string(created.Status)})
	return orders, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) ([]models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	orders, found, err := s.store.update(ctx, id, func(order *models.Order) {
		order.Status = status
	})
	if err != nil {
		return nil, err
	}

	if found {
		s.log.WithFields(logrus.Fields{"order_id": id, "status": status}).Info("Order status updated")
	}
	s.publisher.Publish(ctx, events.Event{Type: events.OrderStatusChanged, OrderID: id, Status: string(status)})
	return orders, nil
}

func (s *orderService) FilterByStatus(orders []models.Order, status string) []models.Order {
	return FilterByStatus(orders, status)
}

func (s *orderService) GetOrdersByCustomer(ctx context.Context, customerID string) []models.Order {
	orders := s.store.load(ctx)
	mine := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if order.CustomerID == customerID {
			mine = append(mine, order)
		}
	}
	return mine
}

func (s *orderService) GetOrderByID(ctx context.Context, id string) (*models.Order, bool) {
	for _, order := range s.store.load(ctx) {
		if order.ID == id {
			o := order
			return &o, true
		}
	}
	return nil, false
}

func (s *orderService) GetOrdersSummary(ctx context.Context) models.OrderSummary {
	return SummarizeOrders(s.store.load(ctx))
}

// Subscribe registers an observer of order writes.
func (s *orderService) Subscribe() (<-chan events.Event, func()) {
	return s.broker.Subscribe()
}

// NextOrderID returns ORD-<year>-<n> where n is one past the highest suffix
// already used in now's year.
func NextOrderID(orders []models.Order, now time.Time) string {
	prefix := fmt.Sprintf("ORD-%d-", now.Year())
	highest := 0
	for _, order := range orders {
		if !strings.HasPrefix(order.ID, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(order.ID, prefix))
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, highest+1)
}

// SummarizeOrders counts orders per status. Revenue leaves out cancelled orders.
func SummarizeOrders(orders []models.Order) models.OrderSummary {
	summary := models.OrderSummary{TotalOrders: len(orders), TotalRevenue: decimal.Zero}
	for _, order := range orders {
		switch order.Status {
		case models.OrderPending:
			summary.TotalPending++
		case models.OrderProcessing:
			summary.TotalProcessing++
		case models.OrderDelivered:
			summary.TotalDelivered++
		case models.OrderCancelled:
			summary.TotalCancelled++
		}
		if order.Status != models.OrderCancelled {
			summary.TotalRevenue = summary.TotalRevenue.Add(order.TotalAmount)
		}
	}
	return summary
}

// FilterBySource keeps orders placed through source; an empty source keeps all.
func FilterBySource(orders []models.Order, source models.OrderSource) []models.Order {
	if source == "" {
		return orders
	}
	filtered := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if order.Source == source {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// SearchOrders matches term case-insensitively against the order id and customer name.
func SearchOrders(orders []models.Order, term string) []models.Order {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return orders
	}
	matched := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if strings.Contains(strings.ToLower(order.ID), term) ||
			strings.Contains(strings.ToLower(order.CustomerName), term) {
			matched = append(matched, order)
		}
	}
	return matched
}
