package services

import (
	"context"
	"sort"
	"time"

	"praxiszeit/internal/adapters/persistence/models"
	"praxiszeit/internal/adapters/persistence/repositories"
	"praxiszeit/internal/core/domain"
	"praxiszeit/internal/core/timeclock"
)

// ReportService builds monthly reports and the team live view
type ReportService struct {
	blockRepo repositories.TimeBlockRepository
	userRepo  repositories.UserRepository
	now       func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	blockRepo repositories.TimeBlockRepository,
	userRepo repositories.UserRepository,
) *ReportService {
	return &ReportService{
		blockRepo: blockRepo,
		userRepo:  userRepo,
		now:       time.Now,
	}
}

// DayEntry is one calendar day of a monthly report
type DayEntry struct {
	Date            string `json:"date"`
	GrossMinutes    int    `json:"gross_minutes"`
	BreakMinutes    int    `json:"break_minutes"`
	NetMinutes      int    `json:"net_minutes"`
	OvertimeMinutes int    `json:"overtime_minutes"`
	Location        string `json:"location"`
	Blocks          int    `json:"blocks"`
	Open            bool   `json:"open"`
}

// MonthlyReport is the aggregate of one user's month plus the per-day
// breakdown
type MonthlyReport struct {
	UserID  uint                 `json:"user_id"`
	Year    int                  `json:"year"`
	Month   int                  `json:"month"`
	User    *models.UserResponse `json:"user,omitempty"`
	Summary timeclock.Report     `json:"summary"`
	Balance string               `json:"balance"`
	Days    []DayEntry           `json:"days"`
}

// TeamMemberStatus is one row of the team live view
type TeamMemberStatus struct {
	UserID           uint               `json:"user_id"`
	Name             string             `json:"name"`
	Status           domain.ClockStatus `json:"status"`
	Location         string             `json:"location,omitempty"`
	Since            *time.Time         `json:"since,omitempty"`
	ElapsedFormatted string             `json:"elapsed_formatted"`
}

// GetMonthlyReport aggregates one user's blocks of a calendar month. The
// overtime target is the user's planned minutes per day times the distinct
// workdays of the month.
func (s *ReportService) GetMonthlyReport(ctx context.Context, userID uint, year, month int) (*MonthlyReport, error) {
	now := s.now()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	from, to := timeclock.MonthRange(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location()))
	blocks, err := s.blockRepo.GetBlocksByUserRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	planned := user.PlannedMinutesPerDay()
	summary := timeclock.Aggregate(blocks, now, planned)

	report := &MonthlyReport{
		UserID:  userID,
		Year:    year,
		Month:   month,
		User:    user.ToResponse(),
		Summary: summary,
		Balance: summary.Balance(),
		Days:    buildDayEntries(blocks, now, planned),
	}
	return report, nil
}

// GetTeamStatus returns the live punch-clock state of everyone in a
// practice. Users without an open block are listed as idle.
func (s *ReportService) GetTeamStatus(ctx context.Context, practiceID uint) ([]TeamMemberStatus, error) {
	now := s.now()

	users, err := s.userRepo.ListActiveByPractice(ctx, practiceID)
	if err != nil {
		return nil, err
	}

	openBlocks, err := s.blockRepo.GetOpenBlocksByPractice(ctx, practiceID)
	if err != nil {
		return nil, err
	}

	blockByUser := make(map[uint]*models.TimeBlock)
	for i := range openBlocks {
		b := &openBlocks[i]
		if existing, ok := blockByUser[b.UserID]; !ok || b.StartTime.After(existing.StartTime) {
			blockByUser[b.UserID] = b
		}
	}

	team := make([]TeamMemberStatus, 0, len(users))
	for _, user := range users {
		row := TeamMemberStatus{
			UserID:           user.ID,
			Name:             user.FullName(),
			Status:           domain.StatusIdle,
			ElapsedFormatted: timeclock.FormatElapsed(0),
		}

		if block, ok := blockByUser[user.ID]; ok {
			lastStamp, err := s.blockRepo.GetLastStampForBlock(ctx, block.ID)
			if err != nil {
				return nil, err
			}
			status, _, _ := timeclock.DeriveStatus([]models.TimeBlock{*block}, lastStamp)

			start := block.StartTime
			row.Status = status
			row.Location = block.Location
			row.Since = &start
			row.ElapsedFormatted = timeclock.FormatElapsed(timeclock.ElapsedSeconds(block, now))
		}

		team = append(team, row)
	}
	return team, nil
}

// buildDayEntries folds blocks into per-date rows, oldest first
func buildDayEntries(blocks []models.TimeBlock, now time.Time, plannedMinutes int) []DayEntry {
	byDate := make(map[string]*DayEntry)
	for i := range blocks {
		b := &blocks[i]
		if b.Status == domain.BlockCancelled {
			continue
		}

		key := b.Date.Format("2006-01-02")
		entry, ok := byDate[key]
		if !ok {
			entry = &DayEntry{Date: key, Location: b.Location}
			byDate[key] = entry
		}

		entry.GrossMinutes += timeclock.GrossMinutes(b, now)
		entry.BreakMinutes += b.BreakMinutes
		entry.NetMinutes += timeclock.NetMinutes(b, now)
		entry.Blocks++
		if b.IsOpen() {
			entry.Open = true
		}
		if b.Location != entry.Location {
			entry.Location = "mixed"
		}
	}

	days := make([]DayEntry, 0, len(byDate))
	for _, entry := range byDate {
		entry.OvertimeMinutes = entry.NetMinutes - plannedMinutes
		days = append(days, *entry)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}
