package services

import (
	"context"
	"sync"

	"lyhu_portal/internal/models"
	"lyhu_portal/internal/repository"
)

// entityStore serialises load-modify-save cycles on one slot within the
// process. Writers in other processes still overwrite each other.
type entityStore[T models.Record] struct {
	mu   sync.Mutex
	slot *repository.JSONSlot[T]
}

func newEntityStore[T models.Record](slot *repository.JSONSlot[T]) *entityStore[T] {
	return &entityStore[T]{slot: slot}
}

func (s *entityStore[T]) load(ctx context.Context) []T {
	return s.slot.Load(ctx)
}

func (s *entityStore[T]) save(ctx context.Context, items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slot.Save(ctx, items)
}

// prepend builds a record from the current sequence and stores it first.
func (s *entityStore[T]) prepend(ctx context.Context, build func(current []T) (T, error)) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.slot.Load(ctx)
	item, err := build(current)
	if err != nil {
		return nil, err
	}

	updated := make([]T, 0, len(current)+1)
	updated = append(updated, item)
	updated = append(updated, current...)

	if err := s.slot.Save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// update applies fn to the record with the given id. The sequence is saved
// even when no record matched.
func (s *entityStore[T]) update(ctx context.Context, id string, fn func(*T)) ([]T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.slot.Load(ctx)
	found := false
	for i := range current {
		if current[i].RecordID() == id {
			fn(&current[i])
			found = true
		}
	}

	if err := s.slot.Save(ctx, current); err != nil {
		return nil, false, err
	}
	return current, found, nil
}

type statusRecord interface {
	StatusValue() string
}

// FilterByStatus keeps records whose status equals status; "all" keeps everything.
func FilterByStatus[T statusRecord](items []T, status string) []T {
	if status == models.StatusFilterAll {
		return items
	}
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if item.StatusValue() == status {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
