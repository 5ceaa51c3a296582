package timeclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"praxiszeit/internal/adapters/persistence/models"
	"praxiszeit/internal/core/domain"
)

func TestDeriveStatus(t *testing.T) {
	morning := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)

	openBlock := func(id uint, start time.Time) models.TimeBlock {
		return models.TimeBlock{ID: id, UserID: 1, PracticeID: 1, Date: start, StartTime: start}
	}
	stamp := func(blockID uint, st domain.StampType) *models.TimeStamp {
		return &models.TimeStamp{BlockID: blockID, UserID: 1, StampType: string(st)}
	}

	t.Run("no open blocks means idle", func(t *testing.T) {
		status, current, warnings := DeriveStatus(nil, nil)
		assert.Equal(t, domain.StatusIdle, status)
		assert.Nil(t, current)
		assert.Empty(t, warnings)
	})

	t.Run("open block with start stamp means working", func(t *testing.T) {
		blocks := []models.TimeBlock{openBlock(1, morning)}
		status, current, warnings := DeriveStatus(blocks, stamp(1, domain.StampStart))
		assert.Equal(t, domain.StatusWorking, status)
		assert.Equal(t, uint(1), current.ID)
		assert.Empty(t, warnings)
	})

	t.Run("pause_start stamp means break", func(t *testing.T) {
		blocks := []models.TimeBlock{openBlock(1, morning)}
		status, _, _ := DeriveStatus(blocks, stamp(1, domain.StampPauseStart))
		assert.Equal(t, domain.StatusBreak, status)
	})

	t.Run("pause_end stamp means working again", func(t *testing.T) {
		blocks := []models.TimeBlock{openBlock(1, morning)}
		status, _, _ := DeriveStatus(blocks, stamp(1, domain.StampPauseEnd))
		assert.Equal(t, domain.StatusWorking, status)
	})

	t.Run("stamp of another block does not flip to break", func(t *testing.T) {
		blocks := []models.TimeBlock{openBlock(2, morning)}
		status, _, _ := DeriveStatus(blocks, stamp(1, domain.StampPauseStart))
		assert.Equal(t, domain.StatusWorking, status)
	})

	t.Run("multiple open blocks warn and pick the newest", func(t *testing.T) {
		blocks := []models.TimeBlock{
			openBlock(1, morning),
			openBlock(2, morning.Add(2*time.Hour)),
			openBlock(3, morning.Add(time.Hour)),
		}
		status, current, warnings := DeriveStatus(blocks, stamp(2, domain.StampStart))
		assert.Equal(t, domain.StatusWorking, status)
		assert.Equal(t, uint(2), current.ID)
		assert.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "3 open time blocks")
	})
}
