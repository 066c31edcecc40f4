package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderSource string

const (
	OrderSourceCustomer OrderSource = "CUSTOMER"
	OrderSourceSales    OrderSource = "SALES"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

var OrderStatusLabels = map[OrderStatus]string{
	OrderPending:    "Chờ xác nhận",
	OrderProcessing: "Đang xử lý",
	OrderDelivered:  "Đã giao",
	OrderCancelled:  "Đã hủy",
}

func (s OrderStatus) Valid() bool {
	_, ok := OrderStatusLabels[s]
	return ok
}

func (s OrderStatus) Label() string {
	return OrderStatusLabels[s]
}

type OrderItem struct {
	SKU       string          `json:"sku" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Brand     string          `json:"brand"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"gte=0"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	Unit      string          `json:"unit"`
	Subtotal  decimal.Decimal `json:"subtotal" validate:"gte=0"`
}

// Order ids look like ORD-2025-001; the suffix restarts every calendar year.
type Order struct {
	ID           string          `json:"id" validate:"required"`
	CustomerID   string          `json:"customerId" validate:"required"`
	CustomerName string          `json:"customerName"`
	Source       OrderSource     `json:"source" validate:"oneof=CUSTOMER SALES"`
	Status       OrderStatus     `json:"status" validate:"oneof=pending processing delivered cancelled"`
	Items        []OrderItem     `json:"items" validate:"dive"`
	TotalAmount  decimal.Decimal `json:"totalAmount" validate:"gte=0"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (o Order) RecordID() string    { return o.ID }
func (o Order) StatusValue() string { return string(o.Status) }

type NewOrderInput struct {
	CustomerID   string          `json:"customerId" validate:"required"`
	CustomerName string          `json:"customerName" validate:"required"`
	Source       OrderSource     `json:"source" validate:"oneof=CUSTOMER SALES"`
	Items        []OrderItem     `json:"items" validate:"min=1,dive"`
	TotalAmount  decimal.Decimal `json:"totalAmount" validate:"gte=0"`
}

type OrderSummary struct {
	TotalOrders     int             `json:"totalOrders"`
	TotalPending    int             `json:"totalPending"`
	TotalProcessing int             `json:"totalProcessing"`
	TotalDelivered  int             `json:"totalDelivered"`
	TotalCancelled  int             `json:"totalCancelled"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
}
