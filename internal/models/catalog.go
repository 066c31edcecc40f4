package models

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID             string           `json:"id" validate:"required"`
	SKU            string           `json:"sku"`
	Name           string           `json:"name" validate:"required"`
	Brand          string           `json:"brand"`
	Unit           string           `json:"unit"`
	WholesalePrice decimal.Decimal  `json:"wholesalePrice" validate:"gte=0"`
	RetailPrice    *decimal.Decimal `json:"retailPrice,omitempty"`
	Stock          *int             `json:"stock,omitempty"`
}

// CartItem is keyed by the product id.
type CartItem struct {
	ID       string  `json:"id" validate:"required"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity" validate:"gt=0"`
}

func (c CartItem) RecordID() string { return c.ID }

// Subtotal prices the line at the wholesale price.
func (c CartItem) Subtotal() decimal.Decimal {
	return c.Product.WholesalePrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Customer is a retail outlet from the sales directory.
type Customer struct {
	ID        string `json:"id"`
	StoreName string `json:"storeName"`
	Type      string `json:"type"`
	Area      string `json:"area"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
}

func product(id, sku, name, brand, unit string, wholesale, retail int64, stock int) Product {
	r := decimal.NewFromInt(retail)
	return Product{
		ID:             id,
		SKU:            sku,
		Name:           name,
		Brand:          brand,
		Unit:           unit,
		WholesalePrice: decimal.NewFromInt(wholesale),
		RetailPrice:    &r,
		Stock:          &stock,
	}
}

// DefaultProducts is the read-only catalog.
func DefaultProducts() []Product {
	return []Product{
		product("1", "UHI-001", "Nước tăng lực UHI Energy 330ml", "UHI", "Lon", 8500, 10000, 500),
		product("2", "BOYO-001", "Sữa chua uống BOYO Dâu 180ml", "BOYO", "Chai", 6000, 7500, 800),
		product("3", "CVT-001", "Nước khoáng CVT 500ml", "CVT", "Chai", 3000, 4000, 1200),
		product("4", "LYHU-001", "Trà xanh LYHU Premium 450ml", "LYHU", "Chai", 7000, 9000, 600),
		product("5", "UHI-002", "Nước tăng lực UHI Plus 500ml", "UHI", "Lon", 12000, 15000, 300),
		product("6", "BOYO-002", "Sữa chua uống BOYO Việt Quất 180ml", "BOYO", "Chai", 6500, 8000, 750),
		product("7", "CVT-002", "Nước khoáng CVT 1.5L", "CVT", "Chai", 7500, 9000, 400),
		product("8", "LYHU-002", "Trà đào LYHU Deluxe 450ml", "LYHU", "Chai", 8000, 10000, 550),
	}
}

// DefaultCustomers is the read-only outlet directory.
func DefaultCustomers() []Customer {
	return []Customer{
		{ID: "1", StoreName: "Tạp hóa Hùng Vương", Type: "Tạp hóa", Area: "Quận 1, TP.HCM", Phone: "0901234567", Email: "hungvuong@gmail.com", Address: "123 Lê Lợi, Quận 1"},
		{ID: "2", StoreName: "Mini Mart Sài Gòn", Type: "Mini mart", Area: "Quận 3, TP.HCM", Phone: "0902345678", Email: "minimart.sg@gmail.com", Address: "456 Võ Văn Tần, Quận 3"},
		{ID: "3", StoreName: "Đại lý Minh Khang", Type: "Đại lý", Area: "Quận 5, TP.HCM", Phone: "0903456789", Email: "minhkhang@gmail.com", Address: "789 An Dương Vương, Quận 5"},
		{ID: "4", StoreName: "NPP Phương Nam", Type: "NPP", Area: "Bình Dương", Phone: "0904567890", Email: "phuongnam.npp@gmail.com", Address: "321 Đại Lộ Bình Dương, Bình Dương"},
		{ID: "5", StoreName: "Tạp hóa Bách Hoá Xanh", Type: "Tạp hóa", Area: "Quận 7, TP.HCM", Phone: "0905678901", Email: "bhx@gmail.com", Address: "654 Nguyễn Hữu Thọ, Quận 7"},
		{ID: "6", StoreName: "Mini Mart GS25", Type: "Mini mart", Area: "Quận 2, TP.HCM", Phone: "0906789012", Email: "gs25@gmail.com", Address: "987 Trần Não, Quận 2"},
		{ID: "7", StoreName: "Đại lý Thành Đạt", Type: "Đại lý", Area: "Đồng Nai", Phone: "0907890123", Email: "thanhdat@gmail.com", Address: "147 Quốc lộ 1A, Đồng Nai"},
		{ID: "8", StoreName: "NPP Vạn Lộc", Type: "NPP", Area: "Long An", Phone: "0908901234", Email: "vanloc.npp@gmail.com", Address: "258 Hùng Vương, Long An"},
	}
}
