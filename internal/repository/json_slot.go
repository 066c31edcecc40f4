package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lyhu_portal/internal/models"
	"lyhu_portal/internal/validation"

	"github.com/sirupsen/logrus"
)

var ErrMalformedSlot = errors.New("malformed slot data")

// JSONSlot keeps an ordered sequence of records in one slot. Reads never fail:
// a missing or malformed slot yields the seed, which is not written back.
type JSONSlot[T models.Record] struct {
	slots SlotRepository
	key   string
	seed  func() []T
	log   logrus.FieldLogger
}

func NewJSONSlot[T models.Record](slots SlotRepository, key string, seed func() []T, log logrus.FieldLogger) *JSONSlot[T] {
	if seed == nil {
		seed = func() []T { return []T{} }
	}
	return &JSONSlot[T]{
		slots: slots,
		key:   key,
		seed:  seed,
		log:   log.WithField("slot", key),
	}
}

func (s *JSONSlot[T]) Key() string {
	return s.key
}

func (s *JSONSlot[T]) Load(ctx context.Context) []T {
	raw, err := s.slots.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrSlotNotFound) {
			s.log.WithError(err).Warn("Failed to read slot, using default data")
		}
		return s.seed()
	}

	items, err := Decode[T](raw)
	if err != nil {
		s.log.WithError(err).Warn("Rejected stored data, using default data")
		return s.seed()
	}
	return items
}

// Stored reports whether the slot has been written at least once.
func (s *JSONSlot[T]) Stored(ctx context.Context) (bool, error) {
	_, err := s.slots.Get(ctx, s.key)
	if errors.Is(err, ErrSlotNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *JSONSlot[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	if err := checkRecords(items); err != nil {
		return err
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", s.key, err)
	}
	if err := s.slots.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", s.key, err)
	}

	s.log.WithField("records", len(items)).Debug("Slot saved")
	return nil
}

func (s *JSONSlot[T]) Clear(ctx context.Context) error {
	return s.slots.Delete(ctx, s.key)
}

// Decode parses a slot document and validates every record in it.
func Decode[T models.Record](raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedSlot)
	}

	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSlot, err)
	}
	if err := checkRecords(items); err != nil {
		return nil, err
	}
	return items, nil
}

func checkRecords[T models.Record](items []T) error {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if err := validation.Struct(item); err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrMalformedSlot, i, err)
		}
		id := item.RecordID()
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrMalformedSlot, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
