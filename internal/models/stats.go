package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AdminLeadSource string

const (
	AdminLeadSourceCTV   AdminLeadSource = "CTV"
	AdminLeadSourceSales AdminLeadSource = "Sales"
)

// AdminLead is a CTV or sales lead in the shape of the admin lead table.
type AdminLead struct {
	ID               string          `json:"id"`
	Source           AdminLeadSource `json:"source"`
	Name             string          `json:"name"`
	ContactName      string          `json:"contactName,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	Area             string          `json:"area,omitempty"`
	Status           string          `json:"status"`
	EstimatedRevenue decimal.Decimal `json:"estimatedRevenue"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type AdminLeadStats struct {
	TotalLeads            int             `json:"totalLeads"`
	TotalCTVLeads         int             `json:"totalCTVLeads"`
	TotalSalesLeads       int             `json:"totalSalesLeads"`
	TotalEstimatedRevenue decimal.Decimal `json:"totalEstimatedRevenue"`
	ConvertedLeads        int             `json:"convertedLeads"`
	LatestLeads           []AdminLead     `json:"latestLeads"`
}

type ActivityKind string

const (
	ActivityCtvLead   ActivityKind = "ctv_lead"
	ActivitySalesLead ActivityKind = "sales_lead"
	ActivityOrder     ActivityKind = "order"
)

// Activity is one row of the merged leads-and-orders feed.
type Activity struct {
	ID        string          `json:"id"`
	Kind      ActivityKind    `json:"kind"`
	Title     string          `json:"title"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}
