package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lyhu_portal/internal/events"
	"lyhu_portal/internal/models"

	"github.com/sirupsen/logrus"
)

// MessageSender delivers a text to a phone number.
type MessageSender interface {
	SendTextMessage(ctx context.Context, phone, message string) error
}

// OrderNotifier texts the sales hotline about every new order.
type OrderNotifier struct {
	orders  OrderService
	sender  MessageSender
	phone   string
	timeout time.Duration
	log     logrus.FieldLogger
}

func NewOrderNotifier(orders OrderService, sender MessageSender, phone string, log logrus.FieldLogger) *OrderNotifier {
	return &OrderNotifier{
		orders:  orders,
		sender:  sender,
		phone:   phone,
		timeout: 15 * time.Second,
		log:     log.WithField("component", "order_notifier"),
	}
}

// Run consumes order events until ctx is done.
func (n *OrderNotifier) Run(ctx context.Context) {
	received, cancel := n.orders.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-received:
			if !ok {
				return
			}
			// relayed events are announced by the instance that created them
			if ev.Type != events.OrderCreated || ev.Origin != "" {
				continue
			}
			n.notify(ctx, ev.OrderID)
		}
	}
}

func (n *OrderNotifier) notify(ctx context.Context, orderID string) {
	order, ok := n.orders.GetOrderByID(ctx, orderID)
	if !ok {
		n.log.WithField("order_id", orderID).Warn("Created order not found, skipping notification")
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.sender.SendTextMessage(sendCtx, n.phone, FormatOrderMessage(order)); err != nil {
		n.log.WithError(err).WithField("order_id", orderID).Error("Failed to send order notification")
		return
	}
	n.log.WithField("order_id", orderID).Info("Order notification sent")
}

// FormatOrderMessage renders the hotline text of an order.
func FormatOrderMessage(order *models.Order) string {
	source := "Khách hàng"
	if order.Source == models.OrderSourceSales {
		source = "Sales"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🛒 Đơn hàng mới %s\n", order.ID)
	fmt.Fprintf(&b, "Khách: %s (%s)\n", order.CustomerName, source)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s x%d %s\n", item.Name, item.Quantity, item.Unit)
	}
	fmt.Fprintf(&b, "Tổng: %s đ", order.TotalAmount.StringFixed(0))
	return b.String()
}
