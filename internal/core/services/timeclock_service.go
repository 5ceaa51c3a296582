package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"praxiszeit/internal/adapters/persistence/models"
	"praxiszeit/internal/adapters/persistence/repositories"
	"praxiszeit/internal/core/domain"
	"praxiszeit/internal/core/timeclock"

	"gorm.io/gorm"
)

// Stamp errors
var (
	ErrAlreadyClockedIn     = errors.New("already clocked in")
	ErrNotClockedIn         = errors.New("not clocked in")
	ErrAlreadyOnBreak       = errors.New("already on break")
	ErrNotOnBreak           = errors.New("not on break")
	ErrStillOnBreak         = errors.New("break must be ended before clocking out")
	ErrInvalidLocation      = errors.New("invalid work location")
	ErrCommentRequired      = errors.New("comment required")
	ErrHomeofficeNotAllowed = errors.New("homeoffice not allowed")
	ErrBlockNotFound        = errors.New("time block not found")
)

// TimeClockService handles the punch-clock state machine: clock-in,
// clock-out, breaks and the derived live status
type TimeClockService struct {
	blockRepo  repositories.TimeBlockRepository
	policyRepo repositories.PolicyRepository
	userRepo   repositories.UserRepository
	now        func() time.Time
}

// NewTimeClockService creates a new time clock service
func NewTimeClockService(
	blockRepo repositories.TimeBlockRepository,
	policyRepo repositories.PolicyRepository,
	userRepo repositories.UserRepository,
) *TimeClockService {
	return &TimeClockService{
		blockRepo:  blockRepo,
		policyRepo: policyRepo,
		userRepo:   userRepo,
		now:        time.Now,
	}
}

// StampInput carries the optional fields of a stamp action
type StampInput struct {
	Location string `json:"location" validate:"omitempty,oneof=office homeoffice mobile"`
	Comment  string `json:"comment" validate:"max=500"`
}

// ClockStatusResult is the live punch-clock view of one user
type ClockStatusResult struct {
	Status           domain.ClockStatus `json:"status"`
	Block            *models.TimeBlock  `json:"current_block,omitempty"`
	ElapsedSeconds   int64              `json:"elapsed_seconds"`
	ElapsedFormatted string             `json:"elapsed_formatted"`
	IsOvertime       bool               `json:"is_overtime"`
	Warnings         []string           `json:"warnings,omitempty"`
}

// GetStatus derives the current punch-clock state of a user
func (s *TimeClockService) GetStatus(ctx context.Context, userID uint) (*ClockStatusResult, error) {
	now := s.now()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	status, block, warnings, err := s.deriveState(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &ClockStatusResult{
		Status:   status,
		Block:    block,
		Warnings: warnings,
	}
	if block != nil {
		result.ElapsedSeconds = timeclock.ElapsedSeconds(block, now)
		result.IsOvertime = timeclock.IsOvertime(block, now, user.PlannedMinutesPerDay())
	}
	result.ElapsedFormatted = timeclock.FormatElapsed(result.ElapsedSeconds)
	return result, nil
}

// ClockIn opens a new time block. Only allowed when idle; clocking in
// outside the office requires a comment, and homeoffice additionally
// passes the policy check.
func (s *TimeClockService) ClockIn(ctx context.Context, userID uint, input *StampInput) (*ClockStatusResult, error) {
	now := s.now()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	status, _, _, err := s.deriveState(ctx, userID)
	if err != nil {
		return nil, err
	}
	if status != domain.StatusIdle {
		return nil, ErrAlreadyClockedIn
	}

	location := input.Location
	if location == "" {
		location = string(domain.LocationOffice)
	}
	if !domain.WorkLocation(location).IsValid() {
		return nil, ErrInvalidLocation
	}

	// Working outside the office always needs a stated reason
	if location != string(domain.LocationOffice) && input.Comment == "" {
		return nil, fmt.Errorf("%w: clocking in at %s requires a comment", ErrCommentRequired, location)
	}

	if location == string(domain.LocationHomeoffice) {
		if err := s.checkHomeoffice(ctx, userID, now); err != nil {
			return nil, err
		}
	}

	planned := user.PlannedHoursPerDay
	block := &models.TimeBlock{
		UserID:       userID,
		PracticeID:   user.PracticeID,
		Date:         timeclock.StartOfDay(now),
		StartTime:    now,
		Location:     location,
		PlannedHours: &planned,
		Status:       domain.BlockActive,
		Notes:        input.Comment,
	}
	if err := s.blockRepo.CreateBlock(ctx, block); err != nil {
		return nil, err
	}

	if err := s.stamp(ctx, block, domain.StampStart, now, input); err != nil {
		return nil, err
	}

	log.Printf("✅ Clock-in: user %d at %s (%s)", userID, now.Format("15:04:05"), location)

	return &ClockStatusResult{
		Status:           domain.StatusWorking,
		Block:            block,
		ElapsedFormatted: timeclock.FormatElapsed(0),
	}, nil
}

// ClockOut closes the open block. Only allowed while working; an open break
// has to be ended first. Closing a day over the planned minutes requires a
// comment.
func (s *TimeClockService) ClockOut(ctx context.Context, userID uint, input *StampInput) (*ClockStatusResult, error) {
	now := s.now()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	status, block, _, err := s.deriveState(ctx, userID)
	if err != nil {
		return nil, err
	}
	switch status {
	case domain.StatusIdle:
		return nil, ErrNotClockedIn
	case domain.StatusBreak:
		return nil, ErrStillOnBreak
	}

	planned := user.PlannedMinutesPerDay()
	if timeclock.CommentRequired(domain.StampStop, block, now, planned) && input.Comment == "" {
		return nil, fmt.Errorf("%w: day exceeds the planned %d minutes", ErrCommentRequired, planned)
	}

	gross := timeclock.GrossMinutes(block, now)
	net := gross - block.BreakMinutes
	if net < 0 {
		net = 0
	}
	actual := float64(net) / 60

	block.EndTime = &now
	block.GrossMinutes = &gross
	block.NetMinutes = &net
	block.ActualHours = &actual
	block.OvertimeMinutes = net - planned
	block.Status = domain.BlockCompleted
	if input.Comment != "" {
		if block.Notes != "" {
			block.Notes += "\n"
		}
		block.Notes += input.Comment
	}

	if err := s.blockRepo.UpdateBlock(ctx, block); err != nil {
		return nil, err
	}

	if err := s.stamp(ctx, block, domain.StampStop, now, input); err != nil {
		return nil, err
	}

	log.Printf("✅ Clock-out: user %d, net %s", userID, timeclock.FormatMinutes(net))

	return &ClockStatusResult{
		Status:           domain.StatusIdle,
		Block:            block,
		ElapsedSeconds:   int64(net) * 60,
		ElapsedFormatted: timeclock.FormatElapsed(int64(net) * 60),
		IsOvertime:       block.OvertimeMinutes > 0,
	}, nil
}

// StartBreak puts the open block on break
func (s *TimeClockService) StartBreak(ctx context.Context, userID uint, input *StampInput) (*ClockStatusResult, error) {
	now := s.now()

	status, block, _, err := s.deriveState(ctx, userID)
	if err != nil {
		return nil, err
	}
	switch status {
	case domain.StatusIdle:
		return nil, ErrNotClockedIn
	case domain.StatusBreak:
		return nil, ErrAlreadyOnBreak
	}

	if err := s.stamp(ctx, block, domain.StampPauseStart, now, input); err != nil {
		return nil, err
	}

	return &ClockStatusResult{
		Status:           domain.StatusBreak,
		Block:            block,
		ElapsedSeconds:   timeclock.ElapsedSeconds(block, now),
		ElapsedFormatted: timeclock.FormatElapsed(timeclock.ElapsedSeconds(block, now)),
	}, nil
}

// EndBreak ends the running break and books its whole minutes on the block
func (s *TimeClockService) EndBreak(ctx context.Context, userID uint, input *StampInput) (*ClockStatusResult, error) {
	now := s.now()

	status, block, _, err := s.deriveState(ctx, userID)
	if err != nil {
		return nil, err
	}
	if status != domain.StatusBreak {
		return nil, ErrNotOnBreak
	}

	last, err := s.blockRepo.GetLastStampForBlock(ctx, block.ID)
	if err != nil {
		return nil, err
	}
	if last != nil {
		breakMin := int(now.Sub(last.Timestamp) / time.Minute)
		if breakMin > 0 {
			block.BreakMinutes += breakMin
		}
		if err := s.blockRepo.UpdateBlock(ctx, block); err != nil {
			return nil, err
		}
	}

	if err := s.stamp(ctx, block, domain.StampPauseEnd, now, input); err != nil {
		return nil, err
	}

	return &ClockStatusResult{
		Status:           domain.StatusWorking,
		Block:            block,
		ElapsedSeconds:   timeclock.ElapsedSeconds(block, now),
		ElapsedFormatted: timeclock.FormatElapsed(timeclock.ElapsedSeconds(block, now)),
	}, nil
}

// GetBlocks lists the blocks of a user in [from, to]
func (s *TimeClockService) GetBlocks(ctx context.Context, userID uint, from, to time.Time) ([]models.TimeBlock, error) {
	return s.blockRepo.GetBlocksByUserRange(ctx, userID, from, to)
}

// GetBlockStamps returns the punch journal of one of the user's blocks
func (s *TimeClockService) GetBlockStamps(ctx context.Context, userID, blockID uint) ([]models.TimeStamp, error) {
	block, err := s.blockRepo.GetBlockByID(ctx, blockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlockNotFound
		}
		return nil, err
	}
	if block.UserID != userID {
		return nil, ErrBlockNotFound
	}
	return s.blockRepo.GetStampsForBlock(ctx, blockID)
}

// deriveState loads the open blocks and the newest block's last stamp and
// folds them into the punch-clock state
func (s *TimeClockService) deriveState(ctx context.Context, userID uint) (domain.ClockStatus, *models.TimeBlock, []string, error) {
	openBlocks, err := s.blockRepo.GetOpenBlocksByUser(ctx, userID)
	if err != nil {
		return "", nil, nil, err
	}

	var lastStamp *models.TimeStamp
	if len(openBlocks) > 0 {
		newest := openBlocks[0]
		for _, b := range openBlocks {
			if b.StartTime.After(newest.StartTime) {
				newest = b
			}
		}
		lastStamp, err = s.blockRepo.GetLastStampForBlock(ctx, newest.ID)
		if err != nil {
			return "", nil, nil, err
		}
	}

	status, block, warnings := timeclock.DeriveStatus(openBlocks, lastStamp)
	return status, block, warnings, nil
}

// checkHomeoffice applies the fail-closed homeoffice policy for a clock-in
// at `now`. Days already worked from home this week count against the
// quota; today does not, so re-clocking in on the same day stays allowed.
func (s *TimeClockService) checkHomeoffice(ctx context.Context, userID uint, now time.Time) error {
	policy, err := s.policyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	weekStart, _ := timeclock.WeekRange(now)
	used, err := s.blockRepo.CountHomeofficeDays(ctx, userID, weekStart, timeclock.StartOfDay(now).Add(-time.Second))
	if err != nil {
		return err
	}

	check := timeclock.HomeofficeAllowed(policy, now, used)
	if !check.Allowed {
		return fmt.Errorf("%w: %s", ErrHomeofficeNotAllowed, check.Reason)
	}
	return nil
}

// stamp appends one entry to the punch journal
func (s *TimeClockService) stamp(ctx context.Context, block *models.TimeBlock, stampType domain.StampType, now time.Time, input *StampInput) error {
	return s.blockRepo.CreateStamp(ctx, &models.TimeStamp{
		BlockID:    block.ID,
		UserID:     block.UserID,
		PracticeID: block.PracticeID,
		StampType:  string(stampType),
		Timestamp:  now,
		Location:   block.Location,
		Notes:      input.Comment,
	})
}
