package models

import (
	"time"
)

type CtvLeadStatus string

const (
	CtvLeadNew       CtvLeadStatus = "NEW"
	CtvLeadContacted CtvLeadStatus = "CONTACTED"
	CtvLeadConverted CtvLeadStatus = "CONVERTED"
)

func (s CtvLeadStatus) Valid() bool {
	switch s {
	case CtvLeadNew, CtvLeadContacted, CtvLeadConverted:
		return true
	}
	return false
}

// CtvLead is a prospect submitted by a referral partner.
type CtvLead struct {
	ID           string        `json:"id" validate:"required"`
	StoreName    string        `json:"storeName" validate:"required"`
	ContactName  string        `json:"contactName"`
	Phone        string        `json:"phone"`
	Area         string        `json:"area"`
	CustomerType string        `json:"customerType"`
	Note         string        `json:"note,omitempty"`
	Status       CtvLeadStatus `json:"status" validate:"oneof=NEW CONTACTED CONVERTED"`
	CreatedAt    time.Time     `json:"createdAt"`
}

func (l CtvLead) RecordID() string    { return l.ID }
func (l CtvLead) StatusValue() string { return string(l.Status) }

type NewCtvLeadInput struct {
	StoreName    string `json:"storeName" validate:"required"`
	ContactName  string `json:"contactName" validate:"required"`
	Phone        string `json:"phone" validate:"required,phone"`
	Area         string `json:"area" validate:"required"`
	CustomerType string `json:"customerType" validate:"required"`
	Note         string `json:"note,omitempty"`
}

type CtvLeadStats struct {
	Total          int `json:"total"`
	NewCount       int `json:"newCount"`
	ContactedCount int `json:"contactedCount"`
	ConvertedCount int `json:"convertedCount"`
}

// DefaultCtvLeads is shown until the first write to the CTV lead slot.
func DefaultCtvLeads() []CtvLead {
	return []CtvLead{
		{
			ID:           "1",
			StoreName:    "Tạp hóa Ngọc Lan",
			ContactName:  "Chị Lan",
			Phone:        "0912345678",
			Area:         "Hà Đông, Hà Nội",
			CustomerType: "Tạp hóa",
			Status:       CtvLeadNew,
			Note:         "Quan tâm sản phẩm nước giải khát",
			CreatedAt:    seedDate(2024, time.November, 29),
		},
		{
			ID:           "2",
			StoreName:    "Mini Mart Hương Mai",
			ContactName:  "Anh Tuấn",
			Phone:        "0923456789",
			Area:         "Thanh Xuân, Hà Nội",
			CustomerType: "Mini mart",
			Status:       CtvLeadContacted,
			Note:         "Đã gọi điện, hẹn gặp tuần sau",
			CreatedAt:    seedDate(2024, time.November, 27),
		},
		{
			ID:           "3",
			StoreName:    "Đại lý Hoàng Gia",
			ContactName:  "Anh Hoàng",
			Phone:        "0934567890",
			Area:         "Cầu Giấy, Hà Nội",
			CustomerType: "Đại lý",
			Status:       CtvLeadConverted,
			Note:         "Đã ký hợp đồng, chuyển sang Sales",
			CreatedAt:    seedDate(2024, time.November, 25),
		},
		{
			ID:           "4",
			StoreName:    "Tạp hóa Phương Anh",
			ContactName:  "Chị Phương",
			Phone:        "0945678901",
			Area:         "Đống Đa, Hà Nội",
			CustomerType: "Tạp hóa",
			Status:       CtvLeadNew,
			Note:         "Gặp trực tiếp tại cửa hàng",
			CreatedAt:    seedDate(2024, time.November, 28),
		},
		{
			ID:           "5",
			StoreName:    "NPP Miền Bắc",
			ContactName:  "Anh Minh",
			Phone:        "0956789012",
			Area:         "Long Biên, Hà Nội",
			CustomerType: "NPP",
			Status:       CtvLeadContacted,
			Note:         "Đang đàm phán điều khoản",
			CreatedAt:    seedDate(2024, time.November, 26),
		},
	}
}

func seedDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
