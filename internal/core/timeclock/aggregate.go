package timeclock

import (
	"time"

	"praxiszeit/internal/adapters/persistence/models"
	"praxiszeit/internal/core/domain"
)

// Report is the aggregate of a set of time blocks, usually one calendar
// month. Open blocks contribute their running net time up to `now`.
type Report struct {
	TotalGrossMinutes int `json:"total_gross_minutes"`
	TotalBreakMinutes int `json:"total_break_minutes"`
	TotalNetMinutes   int `json:"total_net_minutes"`
	Workdays          int `json:"workdays"`
	HomeofficeDays    int `json:"homeoffice_days"`
	TargetMinutes     int `json:"target_minutes"`
	OvertimeMinutes   int `json:"overtime_minutes"`
	OpenBlocks        int `json:"open_blocks"`
}

// Balance returns the overtime balance formatted as "±Hh Mmin".
func (r Report) Balance() string {
	return FormatMinutes(r.OvertimeMinutes)
}

// Aggregate folds time blocks into a Report. A workday is a distinct
// calendar date with at least one block; two blocks on the same date count
// once. The target is workdays times targetMinutesPerDay and the overtime
// balance is net minus target, so days without any block never produce a
// deficit. A non-positive targetMinutesPerDay falls back to the 8h default.
func Aggregate(blocks []models.TimeBlock, now time.Time, targetMinutesPerDay int) Report {
	if targetMinutesPerDay <= 0 {
		targetMinutesPerDay = domain.DefaultTargetMinutesPerDay
	}

	var r Report
	dates := make(map[string]bool)
	homeofficeDates := make(map[string]bool)

	for i := range blocks {
		b := &blocks[i]
		if b.Status == domain.BlockCancelled {
			continue
		}

		key := b.Date.Format("2006-01-02")
		dates[key] = true
		if b.Location == string(domain.LocationHomeoffice) {
			homeofficeDates[key] = true
		}

		r.TotalGrossMinutes += GrossMinutes(b, now)
		r.TotalBreakMinutes += b.BreakMinutes
		r.TotalNetMinutes += NetMinutes(b, now)
		if b.IsOpen() {
			r.OpenBlocks++
		}
	}

	r.Workdays = len(dates)
	r.HomeofficeDays = len(homeofficeDates)
	r.TargetMinutes = r.Workdays * targetMinutesPerDay
	r.OvertimeMinutes = r.TotalNetMinutes - r.TargetMinutes
	return r
}
