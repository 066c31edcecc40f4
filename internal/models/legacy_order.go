package models

import (
	"github.com/shopspring/decimal"
)

// LegacyCustomerOrder is the shape the customer portal used before orders
// moved to the shared order slot.
type LegacyCustomerOrder struct {
	ID           string               `json:"id"`
	OrderNumber  string               `json:"orderNumber"`
	CustomerID   string               `json:"customerId"`
	CustomerName string               `json:"customerName"`
	Items        []LegacyCustomerItem `json:"items"`
	TotalAmount  decimal.Decimal      `json:"totalAmount"`
	Status       OrderStatus          `json:"status"`
	CreatedAt    string               `json:"createdAt"`
	DeliveryDate string               `json:"deliveryDate,omitempty"`
}

type LegacyCustomerItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}
