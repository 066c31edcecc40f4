package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lyhu_portal/internal/models"
	"lyhu_portal/internal/repository"
	"lyhu_portal/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type SalesLeadService interface {
	LoadLeads(ctx context.Context) []models.SalesLead
	SaveLeads(ctx context.Context, leads []models.SalesLead) error
	AddLead(ctx context.Context, input models.NewSalesLeadInput) ([]models.SalesLead, error)
	UpdateLeadStatus(ctx context.Context, id string, status models.SalesLeadStatus) ([]models.SalesLead, error)
	FilterByStatus(leads []models.SalesLead, status string) []models.SalesLead
	GetSalesStats(leads []models.SalesLead) models.SalesLeadStats
}

type salesLeadService struct {
	store *entityStore[models.SalesLead]
	now   func() time.Time
	log   logrus.FieldLogger
}

func NewSalesLeadService(slots repository.SlotRepository, log logrus.FieldLogger) SalesLeadService {
	slot := repository.NewJSONSlot(slots, models.SlotSalesLeads, models.DefaultSalesLeads, log)
	return &salesLeadService{
		store: newEntityStore(slot),
		now:   time.Now,
		log:   log.WithField("store", "sales_leads"),
	}
}

func (s *salesLeadService) LoadLeads(ctx context.Context) []models.SalesLead {
	return s.store.load(ctx)
}

func (s *salesLeadService) SaveLeads(ctx context.Context, leads []models.SalesLead) error {
	return s.store.save(ctx, leads)
}

func (s *salesLeadService) AddLead(ctx context.Context, input models.NewSalesLeadInput) ([]models.SalesLead, error) {
	input.Phone = strings.TrimSpace(input.Phone)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.SalesLeadNew
	}

	leads, err := s.store.prepend(ctx, func([]models.SalesLead) (models.SalesLead, error) {
		id, err := newLeadID()
		if err != nil {
			return models.SalesLead{}, err
		}
		return models.SalesLead{
			ID:               id,
			StoreName:        strings.TrimSpace(input.StoreName),
			ContactName:      strings.TrimSpace(input.ContactName),
			Phone:            input.Phone,
			Area:             input.Area,
			Type:             input.Type,
			Status:           status,
			EstimatedRevenue: input.EstimatedRevenue,
			ExpectedVolume:   input.ExpectedVolume,
			Notes:            input.Notes,
			Email:            input.Email,
			Address:          input.Address,
			CreatedAt:        s.now().UTC(),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("lead_id", leads[0].ID).Info("Sales lead created")
	return leads, nil
}

func (s *salesLeadService) UpdateLeadStatus(ctx context.Context, id string, status models.SalesLeadStatus) ([]models.SalesLead, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	leads, found, err := s.store.update(ctx, id, func(lead *models.SalesLead) {
		lead.Status = status
	})
	if err != nil {
		return nil, err
	}
	if !found {
		s.log.WithField("lead_id", id).Debug("Status update for unknown lead ignored")
	}
	return leads, nil
}

func (s *salesLeadService) FilterByStatus(leads []models.SalesLead, status string) []models.SalesLead {
	return FilterByStatus(leads, status)
}

// GetSalesStats counts CONTACTED and IN_PROGRESS together as in progress.
func (s *salesLeadService) GetSalesStats(leads []models.SalesLead) models.SalesLeadStats {
	stats := models.SalesLeadStats{Total: len(leads), EstimatedRevenue: decimal.Zero}
	for _, lead := range leads {
		switch lead.Status {
		case models.SalesLeadContacted, models.SalesLeadInProgress:
			stats.InProgress++
		case models.SalesLeadWon:
			stats.Won++
		}
		stats.EstimatedRevenue = stats.EstimatedRevenue.Add(lead.EstimatedRevenue)
	}
	return stats
}
