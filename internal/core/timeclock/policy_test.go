package timeclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"praxiszeit/internal/adapters/persistence/models"
)

func TestHomeofficeAllowed(t *testing.T) {
	// Monday 2026-03-02 10:00
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	allowedPolicy := func() *models.HomeofficePolicy {
		return &models.HomeofficePolicy{
			UserID:         1,
			PracticeID:     1,
			IsAllowed:      true,
			AllowedDays:    "monday,tuesday,wednesday",
			MaxDaysPerWeek: 2,
		}
	}

	t.Run("nil policy denies", func(t *testing.T) {
		check := HomeofficeAllowed(nil, monday, 0)
		assert.False(t, check.Allowed)
		assert.Contains(t, check.Reason, "no homeoffice policy")
	})

	t.Run("disabled policy denies", func(t *testing.T) {
		p := allowedPolicy()
		p.IsAllowed = false
		check := HomeofficeAllowed(p, monday, 0)
		assert.False(t, check.Allowed)
		assert.Contains(t, check.Reason, "not allowed")
	})

	t.Run("allowed day passes", func(t *testing.T) {
		check := HomeofficeAllowed(allowedPolicy(), monday, 0)
		assert.True(t, check.Allowed)
		assert.Empty(t, check.Reason)
	})

	t.Run("disallowed day denies", func(t *testing.T) {
		friday := monday.AddDate(0, 0, 4)
		check := HomeofficeAllowed(allowedPolicy(), friday, 0)
		assert.False(t, check.Allowed)
		assert.Contains(t, check.Reason, "friday")
	})

	t.Run("empty day list allows every day", func(t *testing.T) {
		p := allowedPolicy()
		p.AllowedDays = ""
		sunday := monday.AddDate(0, 0, 6)
		check := HomeofficeAllowed(p, sunday, 0)
		assert.True(t, check.Allowed)
	})

	t.Run("weekly quota reached denies", func(t *testing.T) {
		check := HomeofficeAllowed(allowedPolicy(), monday, 2)
		assert.False(t, check.Allowed)
		assert.Contains(t, check.Reason, "weekly homeoffice limit")
	})

	t.Run("zero quota means unlimited", func(t *testing.T) {
		p := allowedPolicy()
		p.MaxDaysPerWeek = 0
		check := HomeofficeAllowed(p, monday, 10)
		assert.True(t, check.Allowed)
	})

	t.Run("time window enforced", func(t *testing.T) {
		p := allowedPolicy()
		p.AllowedStartTime = "08:00"
		p.AllowedEndTime = "16:00"

		check := HomeofficeAllowed(p, monday, 0)
		assert.True(t, check.Allowed)

		early := time.Date(2026, 3, 2, 6, 30, 0, 0, time.UTC)
		check = HomeofficeAllowed(p, early, 0)
		assert.False(t, check.Allowed)
		assert.Contains(t, check.Reason, "from 08:00")

		late := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
		check = HomeofficeAllowed(p, late, 0)
		assert.False(t, check.Allowed)
		assert.Contains(t, check.Reason, "until 16:00")
	})

	t.Run("time window reason wins over quota", func(t *testing.T) {
		p := allowedPolicy()
		p.AllowedStartTime = "08:00"

		early := time.Date(2026, 3, 2, 6, 30, 0, 0, time.UTC)
		check := HomeofficeAllowed(p, early, 2)
		assert.False(t, check.Allowed)
		assert.Contains(t, check.Reason, "from 08:00")
	})

	t.Run("malformed policy time fails closed", func(t *testing.T) {
		p := allowedPolicy()
		p.AllowedStartTime = "nine"
		check := HomeofficeAllowed(p, monday, 0)
		assert.False(t, check.Allowed)
	})

	t.Run("requires reason is carried through", func(t *testing.T) {
		p := allowedPolicy()
		p.RequiresReason = true
		check := HomeofficeAllowed(p, monday, 0)
		assert.True(t, check.Allowed)
		assert.True(t, check.RequiresReason)
	})
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"00:00", 0, false},
		{"08:30", 510, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
	}{
		{"wednesday", time.Date(2026, 3, 4, 13, 45, 0, 0, time.UTC)},
		{"monday itself", time.Date(2026, 3, 2, 0, 30, 0, 0, time.UTC)},
		{"sunday belongs to the preceding monday", time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC)},
	}

	expectedMonday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := WeekRange(tt.in)
			assert.Equal(t, expectedMonday, from)
			assert.Equal(t, time.Monday, from.Weekday())
			assert.Equal(t, time.Sunday, to.Weekday())
			assert.True(t, to.After(from))
		})
	}
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC), to)
}
