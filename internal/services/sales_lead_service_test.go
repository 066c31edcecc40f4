package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"lyhu_portal/internal/logger"
	"lyhu_portal/internal/models"
	"lyhu_portal/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesLeads_AddDefaultsStatusToNew(t *testing.T) {
	ctx := context.Background()
	svc := NewSalesLeadService(newTestSlots(t), logger.Discard())

	volume := 200
	leads, err := svc.AddLead(ctx, models.NewSalesLeadInput{
		StoreName:        "Siêu thị Hòa Bình",
		ContactName:      "Anh Bình",
		Phone:            "0911222333",
		Area:             "Quận 10, TP.HCM",
		Type:             "Siêu thị",
		EstimatedRevenue: decimal.NewFromInt(5000000),
		ExpectedVolume:   &volume,
	})
	require.NoError(t, err)
	assert.Len(t, leads, 6)
	assert.Equal(t, models.SalesLeadNew, leads[0].Status)
	assert.True(t, leads[0].EstimatedRevenue.Equal(decimal.NewFromInt(5000000)))
}

func TestSalesLeads_AddRejectsNonPositiveRevenue(t *testing.T) {
	svc := NewSalesLeadService(newTestSlots(t), logger.Discard())

	negative := -1
	_, err := svc.AddLead(context.Background(), models.NewSalesLeadInput{
		StoreName:      "x",
		ContactName:    "y",
		Phone:          "0911222333",
		Area:           "z",
		Type:           "NPP",
		ExpectedVolume: &negative,
	})
	var fieldErrs validation.Errors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Contains(t, fieldErrs, "estimatedRevenue")
	assert.Contains(t, fieldErrs, "expectedVolume")
}

func TestSalesStats(t *testing.T) {
	svc := NewSalesLeadService(newTestSlots(t), logger.Discard())
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	leads := []models.SalesLead{
		{ID: "a", StoreName: "A", Status: models.SalesLeadContacted, EstimatedRevenue: decimal.NewFromInt(100), CreatedAt: at},
		{ID: "b", StoreName: "B", Status: models.SalesLeadInProgress, EstimatedRevenue: decimal.NewFromInt(200), CreatedAt: at},
		{ID: "c", StoreName: "C", Status: models.SalesLeadWon, EstimatedRevenue: decimal.Zero, CreatedAt: at},
		{ID: "d", StoreName: "D", Status: models.SalesLeadLost, EstimatedRevenue: decimal.Zero, CreatedAt: at},
	}

	stats := svc.GetSalesStats(leads)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.InProgress)
	assert.Equal(t, 1, stats.Won)
	assert.True(t, stats.EstimatedRevenue.Equal(decimal.NewFromInt(300)))
}

func TestSalesLeads_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	svc := NewSalesLeadService(newTestSlots(t), logger.Discard())

	leads := svc.LoadLeads(ctx)[:2]
	require.NoError(t, svc.SaveLeads(ctx, leads))
	assert.Len(t, svc.LoadLeads(ctx), 2)

	assert.Error(t, svc.SaveLeads(ctx, []models.SalesLead{{ID: "", StoreName: "no id", Status: "NEW"}}))
}

func TestSalesLeads_UpdateStatusChangesOnlyThatLead(t *testing.T) {
	ctx := context.Background()
	svc := NewSalesLeadService(newTestSlots(t), logger.Discard())
	require.NoError(t, svc.SaveLeads(ctx, models.DefaultSalesLeads()))

	before := svc.LoadLeads(ctx)
	expected := make([]models.SalesLead, len(before))
	copy(expected, before)
	expected[3].Status = models.SalesLeadWon

	leads, err := svc.UpdateLeadStatus(ctx, before[3].ID, models.SalesLeadWon)
	require.NoError(t, err)
	assert.Equal(t, expected, leads)
	assert.Equal(t, expected, svc.LoadLeads(ctx))

	_, err = svc.UpdateLeadStatus(ctx, before[0].ID, "MAYBE")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, expected, svc.LoadLeads(ctx))
}

func TestSalesLeads_AddStampsCurrentTime(t *testing.T) {
	svc := NewSalesLeadService(newTestSlots(t), logger.Discard())

	start := time.Now()
	leads, err := svc.AddLead(context.Background(), models.NewSalesLeadInput{
		StoreName:        "Đại lý Thành Công",
		ContactName:      "Anh Công",
		Phone:            "0911222333",
		Area:             "Thủ Đức, TP.HCM",
		Type:             "Đại lý",
		EstimatedRevenue: decimal.NewFromInt(1000000),
	})
	require.NoError(t, err)

	created := leads[0].CreatedAt
	assert.False(t, created.Before(start), "created %s before %s", created, start)
	assert.False(t, created.After(time.Now()))
}

func TestSalesLeads_FilterKeepsOrder(t *testing.T) {
	svc := NewSalesLeadService(newTestSlots(t), logger.Discard())
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	leads := []models.SalesLead{
		{ID: "a", Status: models.SalesLeadNew, CreatedAt: at},
		{ID: "b", Status: models.SalesLeadWon, CreatedAt: at},
		{ID: "c", Status: models.SalesLeadNew, CreatedAt: at},
		{ID: "d", Status: models.SalesLeadLost, CreatedAt: at},
		{ID: "e", Status: models.SalesLeadNew, CreatedAt: at},
	}

	assert.Equal(t, leads, svc.FilterByStatus(leads, models.StatusFilterAll))
	assert.Equal(t, []models.SalesLead{leads[0], leads[2], leads[4]}, svc.FilterByStatus(leads, "NEW"))
	assert.Equal(t, []models.SalesLead{leads[1]}, svc.FilterByStatus(leads, "WON"))
	assert.Empty(t, svc.FilterByStatus(leads, "CONTACTED"))
}
