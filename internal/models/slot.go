package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// money is stored the way the dashboard wrote it: plain JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Slot keys. Each store owns exactly one of them.
const (
	SlotSession        = "lyhu_current_user"
	SlotCtvLeads       = "LYHU_CTV_LEADS_V1"
	SlotSalesLeads     = "lyhu_sales_leads_v1"
	SlotOrders         = "lyhu_orders"
	SlotCart           = "lyhu_cart_v1"
	SlotCustomerOrders = "lyhu_customer_orders_v1"
)

// CartSlot returns the cart slot of one customer.
func CartSlot(customerID string) string {
	return SlotCart + ":" + customerID
}

// StorageSlot holds one named JSON document, overwritten as a whole.
type StorageSlot struct {
	Key       string    `json:"key" gorm:"column:slot_key;primaryKey;size:191"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StorageSlot) TableName() string {
	return "storage_slots"
}

// Record is implemented by every entity kept in a slot.
type Record interface {
	RecordID() string
}

// StatusFilterAll disables status filtering.
const StatusFilterAll = "all"
