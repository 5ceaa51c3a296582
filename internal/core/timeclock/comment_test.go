package timeclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"praxiszeit/internal/adapters/persistence/models"
	"praxiszeit/internal/core/domain"
)

func TestCommentRequired(t *testing.T) {
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	t.Run("clock-out over target requires comment", func(t *testing.T) {
		b := block(start, nil, 0)
		now := start.Add(9 * time.Hour)
		assert.True(t, CommentRequired(domain.StampStop, b, now, 480))
	})

	t.Run("clock-out under target needs none", func(t *testing.T) {
		b := block(start, nil, 0)
		now := start.Add(7 * time.Hour)
		assert.False(t, CommentRequired(domain.StampStop, b, now, 480))
	})

	t.Run("break stamps never require one", func(t *testing.T) {
		b := block(start, nil, 0)
		now := start.Add(10 * time.Hour)
		assert.False(t, CommentRequired(domain.StampPauseStart, b, now, 480))
		assert.False(t, CommentRequired(domain.StampPauseEnd, b, now, 480))
	})

	t.Run("homeoffice clock-in requires comment", func(t *testing.T) {
		b := block(start, nil, 0)
		b.Location = string(domain.LocationHomeoffice)
		assert.True(t, CommentRequired(domain.StampStart, b, start, 480))
	})

	t.Run("mobile clock-in requires comment", func(t *testing.T) {
		b := block(start, nil, 0)
		b.Location = string(domain.LocationMobile)
		assert.True(t, CommentRequired(domain.StampStart, b, start, 480))
	})

	t.Run("office clock-in needs none", func(t *testing.T) {
		b := block(start, nil, 0)
		b.Location = string(domain.LocationOffice)
		assert.False(t, CommentRequired(domain.StampStart, b, start, 480))
	})
}

// Full punch-clock day: in at 9, break 12:00-12:30, out at 17:00.
func TestFullDayScenario(t *testing.T) {
	in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	b := block(in, nil, 0)

	status, current, _ := DeriveStatus([]models.TimeBlock{*b},
		&models.TimeStamp{BlockID: b.ID, StampType: string(domain.StampStart)})
	assert.Equal(t, domain.StatusWorking, status)
	assert.Equal(t, b.ID, current.ID)

	noon := in.Add(3 * time.Hour)
	assert.Equal(t, int64(3*3600), ElapsedSeconds(b, noon))

	status, _, _ = DeriveStatus([]models.TimeBlock{*b},
		&models.TimeStamp{BlockID: b.ID, StampType: string(domain.StampPauseStart)})
	assert.Equal(t, domain.StatusBreak, status)

	// break ends at 12:30 and is booked on the block
	b.BreakMinutes = 30
	status, _, _ = DeriveStatus([]models.TimeBlock{*b},
		&models.TimeStamp{BlockID: b.ID, StampType: string(domain.StampPauseEnd)})
	assert.Equal(t, domain.StatusWorking, status)

	out := in.Add(8 * time.Hour)
	assert.Equal(t, int64(7*3600+1800), ElapsedSeconds(b, out))
	assert.Equal(t, 450, NetMinutes(b, out))
	assert.False(t, IsOvertime(b, out, 480))
	assert.False(t, CommentRequired(domain.StampStop, b, out, 480))

	b.EndTime = &out
	r := Aggregate([]models.TimeBlock{*b}, out, 480)
	assert.Equal(t, 1, r.Workdays)
	assert.Equal(t, 450, r.TotalNetMinutes)
	assert.Equal(t, -30, r.OvertimeMinutes)
	assert.Equal(t, "-0h 30min", r.Balance())
}
