package timeclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"praxiszeit/internal/adapters/persistence/models"
)

func block(start time.Time, end *time.Time, breakMin int) *models.TimeBlock {
	return &models.TimeBlock{
		ID:           1,
		UserID:       1,
		PracticeID:   1,
		Date:         start,
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: breakMin,
	}
}

func ptr[T any](v T) *T { return &v }

func TestElapsedSeconds(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		block    *models.TimeBlock
		now      time.Time
		expected int64
	}{
		{
			name:     "nil block",
			block:    nil,
			now:      start,
			expected: 0,
		},
		{
			name:     "open block counts up to now",
			block:    block(start, nil, 0),
			now:      start.Add(90 * time.Minute),
			expected: 90 * 60,
		},
		{
			name:     "break minutes are subtracted",
			block:    block(start, nil, 30),
			now:      start.Add(2 * time.Hour),
			expected: 90 * 60,
		},
		{
			name:     "closed block ignores now",
			block:    block(start, ptr(start.Add(8*time.Hour)), 60),
			now:      start.Add(48 * time.Hour),
			expected: 7 * 3600,
		},
		{
			name:     "break longer than span clamps to zero",
			block:    block(start, nil, 120),
			now:      start.Add(30 * time.Minute),
			expected: 0,
		},
		{
			name:     "start in the future clamps to zero",
			block:    block(start, nil, 0),
			now:      start.Add(-time.Hour),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ElapsedSeconds(tt.block, tt.now))
		})
	}
}

func TestElapsedSecondsMonotonic(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	b := block(start, nil, 15)

	prev := int64(-1)
	for i := 0; i < 10; i++ {
		now := start.Add(time.Duration(i) * 20 * time.Minute)
		cur := ElapsedSeconds(b, now)
		assert.GreaterOrEqual(t, cur, prev, "elapsed must never decrease while the clock runs")
		prev = cur
	}
}

func TestNetMinutes(t *testing.T) {
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	t.Run("gross minus break", func(t *testing.T) {
		b := block(start, ptr(start.Add(9*time.Hour)), 45)
		assert.Equal(t, 9*60, GrossMinutes(b, start))
		assert.Equal(t, 9*60-45, NetMinutes(b, start))
	})

	t.Run("precomputed net wins", func(t *testing.T) {
		b := block(start, ptr(start.Add(9*time.Hour)), 45)
		b.NetMinutes = ptr(500)
		assert.Equal(t, 500, NetMinutes(b, start))
	})

	t.Run("negative precomputed net clamps", func(t *testing.T) {
		b := block(start, nil, 0)
		b.NetMinutes = ptr(-10)
		assert.Equal(t, 0, NetMinutes(b, start.Add(time.Hour)))
	})

	t.Run("net identity with elapsed seconds", func(t *testing.T) {
		b := block(start, nil, 30)
		now := start.Add(5 * time.Hour)
		assert.Equal(t, int64(NetMinutes(b, now))*60, ElapsedSeconds(b, now))
	})
}

func TestIsOvertime(t *testing.T) {
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		worked   time.Duration
		breakMin int
		planned  int
		expected bool
	}{
		{"under target", 6 * time.Hour, 0, 480, false},
		{"exactly on target", 8 * time.Hour, 0, 480, false},
		{"over target", 9 * time.Hour, 0, 480, true},
		{"break pushes back under target", 9 * time.Hour, 90, 480, false},
		{"no target set", 12 * time.Hour, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := block(start, nil, tt.breakMin)
			assert.Equal(t, tt.expected, IsOvertime(b, start.Add(tt.worked), tt.planned))
		})
	}
}
