// Package timeclock holds the pure punch-clock calculations: status
// derivation, elapsed-time and balance arithmetic, monthly aggregation and
// the homeoffice policy predicate. Nothing in here touches the database or
// reads the wall clock; callers pass `now` explicitly and own any timers.
package timeclock

import (
	"fmt"

	"praxiszeit/internal/adapters/persistence/models"
	"praxiszeit/internal/core/domain"
)

// DeriveStatus returns the punch-clock state for a user given their open
// time blocks and the most recent stamp of the newest open block.
//
// Zero open blocks means idle. With an open block, the sub-state depends on
// the last stamp: pause_start puts the user on break, everything else counts
// as working. More than one open block is a backend inconsistency; the most
// recently started block wins deterministically and a warning is returned
// instead of failing.
func DeriveStatus(openBlocks []models.TimeBlock, lastStamp *models.TimeStamp) (domain.ClockStatus, *models.TimeBlock, []string) {
	if len(openBlocks) == 0 {
		return domain.StatusIdle, nil, nil
	}

	current := &openBlocks[0]
	for i := range openBlocks {
		if openBlocks[i].StartTime.After(current.StartTime) {
			current = &openBlocks[i]
		}
	}

	var warnings []string
	if len(openBlocks) > 1 {
		warnings = append(warnings, fmt.Sprintf(
			"%d open time blocks found, using the most recent (started %s)",
			len(openBlocks), current.StartTime.Format("2006-01-02 15:04")))
	}

	status := domain.StatusWorking
	if lastStamp != nil && lastStamp.BlockID == current.ID &&
		lastStamp.StampType == string(domain.StampPauseStart) {
		status = domain.StatusBreak
	}

	return status, current, warnings
}
