package timeclock

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"praxiszeit/internal/adapters/persistence/models"
	"praxiszeit/internal/core/domain"
)

// PolicyCheck is the outcome of a homeoffice policy evaluation. Reason is
// set when Allowed is false.
type PolicyCheck struct {
	Allowed        bool   `json:"allowed"`
	Reason         string `json:"reason,omitempty"`
	RequiresReason bool   `json:"requires_reason"`
}

// HomeofficeAllowed evaluates whether clocking in from homeoffice is
// permitted at `now`. The check fails closed: no policy, or a disabled one,
// denies. usedDaysThisWeek counts distinct homeoffice days already recorded
// in the current week, excluding today.
func HomeofficeAllowed(policy *models.HomeofficePolicy, now time.Time, usedDaysThisWeek int) PolicyCheck {
	if policy == nil {
		return PolicyCheck{Allowed: false, Reason: "no homeoffice policy configured"}
	}
	if !policy.IsAllowed {
		return PolicyCheck{Allowed: false, Reason: "homeoffice is not allowed for this user", RequiresReason: policy.RequiresReason}
	}

	if days := policy.AllowedDayList(); len(days) > 0 {
		today := domain.WeekdayNames[int(now.Weekday())]
		if !containsDay(days, today) {
			return PolicyCheck{
				Allowed:        false,
				Reason:         fmt.Sprintf("homeoffice is not allowed on %s", today),
				RequiresReason: policy.RequiresReason,
			}
		}
	}

	if ok, reason := withinTimeWindow(policy, now); !ok {
		return PolicyCheck{Allowed: false, Reason: reason, RequiresReason: policy.RequiresReason}
	}

	if policy.MaxDaysPerWeek > 0 && usedDaysThisWeek >= policy.MaxDaysPerWeek {
		return PolicyCheck{
			Allowed:        false,
			Reason:         fmt.Sprintf("weekly homeoffice limit of %d days reached", policy.MaxDaysPerWeek),
			RequiresReason: policy.RequiresReason,
		}
	}

	return PolicyCheck{Allowed: true, RequiresReason: policy.RequiresReason}
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if strings.EqualFold(d, day) {
			return true
		}
	}
	return false
}

func withinTimeWindow(policy *models.HomeofficePolicy, now time.Time) (bool, string) {
	minutes := now.Hour()*60 + now.Minute()

	if policy.AllowedStartTime != "" {
		start, err := ParseClock(policy.AllowedStartTime)
		if err != nil {
			return false, fmt.Sprintf("invalid policy start time %q", policy.AllowedStartTime)
		}
		if minutes < start {
			return false, fmt.Sprintf("homeoffice is only allowed from %s", policy.AllowedStartTime)
		}
	}
	if policy.AllowedEndTime != "" {
		end, err := ParseClock(policy.AllowedEndTime)
		if err != nil {
			return false, fmt.Sprintf("invalid policy end time %q", policy.AllowedEndTime)
		}
		if minutes > end {
			return false, fmt.Sprintf("homeoffice is only allowed until %s", policy.AllowedEndTime)
		}
	}
	return true, ""
}

// ParseClock parses a "HH:MM" wall-clock string into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}
