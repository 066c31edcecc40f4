package services

import (
	"context"
	"sort"

	"lyhu_portal/internal/models"

	"github.com/shopspring/decimal"
)

// StatsService derives dashboard figures from the stores on every call.
// Nothing it returns is persisted.
type StatsService interface {
	GetAdminLeads(ctx context.Context) []models.AdminLead
	GetAdminLeadStats(ctx context.Context) models.AdminLeadStats
	GetCtvStats(ctx context.Context) models.CtvLeadStats
	GetSalesStats(ctx context.Context) models.SalesLeadStats
	GetOrdersSummary(ctx context.Context) models.OrderSummary
	GetRecentActivity(ctx context.Context, limit int) []models.Activity
}

type statsService struct {
	ctvLeads    CtvLeadService
	salesLeads  SalesLeadService
	orders      OrderService
	latestLimit int
}

func NewStatsService(ctvLeads CtvLeadService, salesLeads SalesLeadService, orders OrderService, latestLimit int) StatsService {
	if latestLimit <= 0 {
		latestLimit = 10
	}
	return &statsService{
		ctvLeads:    ctvLeads,
		salesLeads:  salesLeads,
		orders:      orders,
		latestLimit: latestLimit,
	}
}

// GetAdminLeads merges both lead stores, newest first.
func (s *statsService) GetAdminLeads(ctx context.Context) []models.AdminLead {
	ctvLeads := s.ctvLeads.LoadLeads(ctx)
	salesLeads := s.salesLeads.LoadLeads(ctx)

	all := make([]models.AdminLead, 0, len(ctvLeads)+len(salesLeads))
	for _, lead := range ctvLeads {
		all = append(all, models.AdminLead{
			ID:               "ctv-" + lead.ID,
			Source:           models.AdminLeadSourceCTV,
			Name:             lead.StoreName,
			ContactName:      lead.ContactName,
			Phone:            lead.Phone,
			Area:             lead.Area,
			Status:           string(lead.Status),
			EstimatedRevenue: decimal.Zero,
			CreatedAt:        lead.CreatedAt,
		})
	}
	for _, lead := range salesLeads {
		all = append(all, models.AdminLead{
			ID:               "sales-" + lead.ID,
			Source:           models.AdminLeadSourceSales,
			Name:             lead.StoreName,
			ContactName:      lead.ContactName,
			Phone:            lead.Phone,
			Area:             lead.Area,
			Status:           string(lead.Status),
			EstimatedRevenue: lead.EstimatedRevenue,
			CreatedAt:        lead.CreatedAt,
		})
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all
}

func (s *statsService) GetAdminLeadStats(ctx context.Context) models.AdminLeadStats {
	all := s.GetAdminLeads(ctx)

	stats := models.AdminLeadStats{
		TotalLeads:            len(all),
		TotalEstimatedRevenue: decimal.Zero,
	}
	for _, lead := range all {
		switch lead.Source {
		case models.AdminLeadSourceCTV:
			stats.TotalCTVLeads++
		case models.AdminLeadSourceSales:
			stats.TotalSalesLeads++
			if lead.Status == string(models.SalesLeadWon) {
				stats.ConvertedLeads++
			}
		}
		stats.TotalEstimatedRevenue = stats.TotalEstimatedRevenue.Add(lead.EstimatedRevenue)
	}

	stats.LatestLeads = firstN(all, s.latestLimit)
	return stats
}

func (s *statsService) GetCtvStats(ctx context.Context) models.CtvLeadStats {
	return s.ctvLeads.GetLeadStats(s.ctvLeads.LoadLeads(ctx))
}

func (s *statsService) GetSalesStats(ctx context.Context) models.SalesLeadStats {
	return s.salesLeads.GetSalesStats(s.salesLeads.LoadLeads(ctx))
}

func (s *statsService) GetOrdersSummary(ctx context.Context) models.OrderSummary {
	return SummarizeOrders(s.orders.LoadOrders(ctx))
}

// GetRecentActivity merges leads and orders into one feed, newest first.
func (s *statsService) GetRecentActivity(ctx context.Context, limit int) []models.Activity {
	if limit <= 0 {
		limit = s.latestLimit
	}

	var feed []models.Activity
	for _, lead := range s.ctvLeads.LoadLeads(ctx) {
		feed = append(feed, models.Activity{
			ID:        "ctv-" + lead.ID,
			Kind:      models.ActivityCtvLead,
			Title:     lead.StoreName,
			Status:    string(lead.Status),
			Amount:    decimal.Zero,
			CreatedAt: lead.CreatedAt,
		})
	}
	for _, lead := range s.salesLeads.LoadLeads(ctx) {
		feed = append(feed, models.Activity{
			ID:        "sales-" + lead.ID,
			Kind:      models.ActivitySalesLead,
			Title:     lead.StoreName,
			Status:    string(lead.Status),
			Amount:    lead.EstimatedRevenue,
			CreatedAt: lead.CreatedAt,
		})
	}
	for _, order := range s.orders.LoadOrders(ctx) {
		feed = append(feed, models.Activity{
			ID:        order.ID,
			Kind:      models.ActivityOrder,
			Title:     order.CustomerName,
			Status:    string(order.Status),
			Amount:    order.TotalAmount,
			CreatedAt: order.CreatedAt,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].CreatedAt.After(feed[j].CreatedAt)
	})
	return firstN(feed, limit)
}

func firstN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
