package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalesLeadStatus string

const (
	SalesLeadNew        SalesLeadStatus = "NEW"
	SalesLeadContacted  SalesLeadStatus = "CONTACTED"
	SalesLeadInProgress SalesLeadStatus = "IN_PROGRESS"
	SalesLeadWon        SalesLeadStatus = "WON"
	SalesLeadLost       SalesLeadStatus = "LOST"
)

func (s SalesLeadStatus) Valid() bool {
	switch s {
	case SalesLeadNew, SalesLeadContacted, SalesLeadInProgress, SalesLeadWon, SalesLeadLost:
		return true
	}
	return false
}

// SalesLead is a prospect worked by the internal sales team.
type SalesLead struct {
	ID               string          `json:"id" validate:"required"`
	StoreName        string          `json:"storeName" validate:"required"`
	ContactName      string          `json:"contactName"`
	Phone            string          `json:"phone"`
	Area             string          `json:"area"`
	Type             string          `json:"type"`
	Status           SalesLeadStatus `json:"status" validate:"oneof=NEW CONTACTED IN_PROGRESS WON LOST"`
	EstimatedRevenue decimal.Decimal `json:"estimatedRevenue"`
	ExpectedVolume   *int            `json:"expectedVolume,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	Email            string          `json:"email,omitempty"`
	Address          string          `json:"address,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func (l SalesLead) RecordID() string    { return l.ID }
func (l SalesLead) StatusValue() string { return string(l.Status) }

type NewSalesLeadInput struct {
	StoreName        string          `json:"storeName" validate:"required"`
	ContactName      string          `json:"contactName" validate:"required"`
	Phone            string          `json:"phone" validate:"required,phone"`
	Area             string          `json:"area" validate:"required"`
	Type             string          `json:"type" validate:"required"`
	Status           SalesLeadStatus `json:"status,omitempty" validate:"omitempty,oneof=NEW CONTACTED IN_PROGRESS WON LOST"`
	EstimatedRevenue decimal.Decimal `json:"estimatedRevenue" validate:"gt=0"`
	ExpectedVolume   *int            `json:"expectedVolume,omitempty" validate:"omitempty,gte=0"`
	Notes            string          `json:"notes,omitempty"`
	Email            string          `json:"email,omitempty" validate:"omitempty,email"`
	Address          string          `json:"address,omitempty"`
}

type SalesLeadStats struct {
	Total            int             `json:"total"`
	InProgress       int             `json:"inProgress"`
	Won              int             `json:"won"`
	EstimatedRevenue decimal.Decimal `json:"estimatedRevenue"`
}

// DefaultSalesLeads is shown until the first write to the sales lead slot.
func DefaultSalesLeads() []SalesLead {
	return []SalesLead{
		{
			ID:               "1",
			StoreName:        "Siêu thị Mini Mart Plus",
			ContactName:      "Anh Tuấn",
			Phone:            "0901234567",
			Area:             "Quận 1, TP.HCM",
			Type:             "Mini mart",
			Status:           SalesLeadInProgress,
			EstimatedRevenue: decimal.NewFromInt(15000000),
			Notes:            "Đang đàm phán hợp đồng dài hạn",
			CreatedAt:        seedDate(2024, time.November, 28),
		},
		{
			ID:               "2",
			StoreName:        "NPP Hoàng Gia",
			ContactName:      "Chị Lan",
			Phone:            "0912345678",
			Area:             "Bình Dương",
			Type:             "NPP",
			Status:           SalesLeadWon,
			EstimatedRevenue: decimal.NewFromInt(50000000),
			Notes:            "Đã ký hợp đồng 6 tháng",
			CreatedAt:        seedDate(2024, time.November, 25),
		},
		{
			ID:               "3",
			StoreName:        "Tạp hóa Phương Nam",
			ContactName:      "Anh Minh",
			Phone:            "0923456789",
			Area:             "Quận 3, TP.HCM",
			Type:             "Tạp hóa",
			Status:           SalesLeadNew,
			EstimatedRevenue: decimal.NewFromInt(8000000),
			Notes:            "Mới tiếp cận, chưa liên hệ",
			CreatedAt:        seedDate(2024, time.November, 29),
		},
		{
			ID:               "4",
			StoreName:        "Đại lý Minh Khang",
			ContactName:      "Chị Hương",
			Phone:            "0934567890",
			Area:             "Đồng Nai",
			Type:             "Đại lý",
			Status:           SalesLeadContacted,
			EstimatedRevenue: decimal.NewFromInt(25000000),
			Notes:            "Đã gọi điện, hẹn gặp tuần sau",
			CreatedAt:        seedDate(2024, time.November, 27),
		},
		{
			ID:               "5",
			StoreName:        "Siêu thị Sài Gòn Co.op",
			ContactName:      "Anh Đức",
			Phone:            "0945678901",
			Area:             "Quận 7, TP.HCM",
			Type:             "Siêu thị",
			Status:           SalesLeadLost,
			EstimatedRevenue: decimal.NewFromInt(30000000),
			Notes:            "Đã chọn nhà cung cấp khác",
			CreatedAt:        seedDate(2024, time.November, 20),
		},
	}
}
