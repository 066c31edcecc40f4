package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lyhu_portal/internal/models"
	"lyhu_portal/internal/repository"
	"lyhu_portal/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrInvalidStatus = errors.New("invalid status")

type CtvLeadService interface {
	LoadLeads(ctx context.Context) []models.CtvLead
	SaveLeads(ctx context.Context, leads []models.CtvLead) error
	AddLead(ctx context.Context, input models.NewCtvLeadInput) ([]models.CtvLead, error)
	UpdateLeadStatus(ctx context.Context, id string, status models.CtvLeadStatus) ([]models.CtvLead, error)
	FilterByStatus(leads []models.CtvLead, status string) []models.CtvLead
	GetLeadStats(leads []models.CtvLead) models.CtvLeadStats
}

type ctvLeadService struct {
	store *entityStore[models.CtvLead]
	now   func() time.Time
	log   logrus.FieldLogger
}

func NewCtvLeadService(slots repository.SlotRepository, log logrus.FieldLogger) CtvLeadService {
	slot := repository.NewJSONSlot(slots, models.SlotCtvLeads, models.DefaultCtvLeads, log)
	return &ctvLeadService{
		store: newEntityStore(slot),
		now:   time.Now,
		log:   log.WithField("store", "ctv_leads"),
	}
}

func (s *ctvLeadService) LoadLeads(ctx context.Context) []models.CtvLead {
	return s.store.load(ctx)
}

func (s *ctvLeadService) SaveLeads(ctx context.Context, leads []models.CtvLead) error {
	return s.store.save(ctx, leads)
}

func (s *ctvLeadService) AddLead(ctx context.Context, input models.NewCtvLeadInput) ([]models.CtvLead, error) {
	input.Phone = strings.TrimSpace(input.Phone)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	leads, err := s.store.prepend(ctx, func([]models.CtvLead) (models.CtvLead, error) {
		id, err := newLeadID()
		if err != nil {
			return models.CtvLead{}, err
		}
		return models.CtvLead{
			ID:           id,
			StoreName:    strings.TrimSpace(input.StoreName),
			ContactName:  strings.TrimSpace(input.ContactName),
			Phone:        input.Phone,
			Area:         input.Area,
			CustomerType: input.CustomerType,
			Note:         input.Note,
			Status:       models.CtvLeadNew,
			CreatedAt:    s.now().UTC(),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("lead_id", leads[0].ID).Info("CTV lead created")
	return leads, nil
}

func (s *ctvLeadService) UpdateLeadStatus(ctx context.Context, id string, status models.CtvLeadStatus) ([]models.CtvLead, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	leads, found, err := s.store.update(ctx, id, func(lead *models.CtvLead) {
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

func (s *ctvLeadService) FilterByStatus(leads []models.CtvLead, status string) []models.CtvLead {
	return FilterByStatus(leads, status)
}

func (s *ctvLeadService) GetLeadStats(leads []models.CtvLead) models.CtvLeadStats {
	stats := models.CtvLeadStats{Total: len(leads)}
	for _, lead := range leads {
		switch lead.Status {
		case models.CtvLeadNew:
			stats.NewCount++
		case models.CtvLeadContacted:
			stats.ContactedCount++
		case models.CtvLeadConverted:
			stats.ConvertedCount++
		}
	}
	return stats
}

// newLeadID returns a time-ordered unique id.
func newLeadID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate lead id: %w", err)
	}
	return id.String(), nil
}
