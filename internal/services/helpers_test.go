package services

import (
	"testing"
	"time"

	"lyhu_portal/internal/database"
	"lyhu_portal/internal/logger"
	"lyhu_portal/internal/repository"

	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func newTestSlots(t *testing.T) repository.SlotRepository {
	t.Helper()
	db, err := database.Initialize("sqlite://:memory:", gormlogger.Silent, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return repository.NewSlotRepository(db)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
