package timeclock

import (
	"time"

	"praxiszeit/internal/adapters/persistence/models"
)

// ElapsedSeconds returns the worked seconds of a block at `now`, net of
// accumulated break minutes. Never negative: a future start time or a break
// longer than the gross span clamps to zero.
func ElapsedSeconds(block *models.TimeBlock, now time.Time) int64 {
	if block == nil {
		return 0
	}
	end := now
	if block.EndTime != nil {
		end = *block.EndTime
	}
	gross := int64(end.Sub(block.StartTime) / time.Second)
	net := gross - int64(block.BreakMinutes)*60
	if net < 0 {
		return 0
	}
	return net
}

// GrossMinutes returns the whole minutes between start and end, where an
// open block ends at `now`. Negative spans clamp to zero.
func GrossMinutes(block *models.TimeBlock, now time.Time) int {
	if block == nil {
		return 0
	}
	end := now
	if block.EndTime != nil {
		end = *block.EndTime
	}
	minutes := int(end.Sub(block.StartTime) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}

// NetMinutes returns gross minus break minutes, floored at zero. A
// pre-computed net value supplied by a correction takes precedence.
func NetMinutes(block *models.TimeBlock, now time.Time) int {
	if block == nil {
		return 0
	}
	if block.NetMinutes != nil {
		if *block.NetMinutes < 0 {
			return 0
		}
		return *block.NetMinutes
	}
	net := GrossMinutes(block, now) - block.BreakMinutes
	if net < 0 {
		return 0
	}
	return net
}

// IsOvertime reports whether the worked time of a block already exceeds the
// planned minutes for the day. plannedMinutes <= 0 means no target is set
// and nothing ever counts as overtime.
func IsOvertime(block *models.TimeBlock, now time.Time, plannedMinutes int) bool {
	if plannedMinutes <= 0 {
		return false
	}
	return NetMinutes(block, now) > plannedMinutes
}
