package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"lyhu_portal/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSlotNotFound = errors.New("storage slot not found")

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type SlotRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

type slotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var slot models.StorageSlot
	err := r.db.WithContext(ctx).Where("slot_key = ?", key).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return []byte(slot.Value), nil
}

// Put overwrites the whole slot.
func (r *slotRepository) Put(ctx context.Context, key string, value []byte) error {
	slot := models.StorageSlot{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
}

func (r *slotRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("slot_key = ?", key).Delete(&models.StorageSlot{}).Error
}

func (r *slotRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&models.StorageSlot{}).
		Where(`slot_key LIKE ? ESCAPE '\'`, likeEscaper.Replace(prefix)+"%").
		Order("slot_key").
		Pluck("slot_key", &keys).Error
	return keys, err
}
