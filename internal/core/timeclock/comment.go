package timeclock

import (
	"time"

	"praxiszeit/internal/adapters/persistence/models"
	"praxiszeit/internal/core/domain"
)

// CommentRequired reports whether a stamp must carry a note. Clocking in
// anywhere outside the office requires one, as does clocking out of a day
// that already exceeds the planned minutes.
func CommentRequired(stamp domain.StampType, block *models.TimeBlock, now time.Time, plannedMinutes int) bool {
	if stamp == domain.StampStop && IsOvertime(block, now, plannedMinutes) {
		return true
	}
	if stamp == domain.StampStart && block != nil &&
		block.Location != string(domain.LocationOffice) {
		return true
	}
	return false
}
