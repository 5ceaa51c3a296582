package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"praxiszeit/internal/adapters/persistence/models"
	"praxiszeit/internal/adapters/persistence/repositories"
	"praxiszeit/internal/core/timeclock"
)

// Plausibility thresholds
const (
	overlongDayMinutes  = 600 // 10h net triggers a warning
	breakRequiredAfter  = 360 // 6h gross requires a break
	minimumBreakMinutes = 30
	scanLookbackDays    = 30
)

// PlausibilityService scans recorded blocks for implausible data: forgotten
// clock-outs, overlong days, missing breaks and duplicate open blocks
type PlausibilityService struct {
	plausRepo    repositories.PlausibilityRepository
	blockRepo    repositories.TimeBlockRepository
	userRepo     repositories.UserRepository
	practiceRepo repositories.PracticeRepository
	now          func() time.Time
}

// NewPlausibilityService creates a new plausibility service
func NewPlausibilityService(
	plausRepo repositories.PlausibilityRepository,
	blockRepo repositories.TimeBlockRepository,
	userRepo repositories.UserRepository,
	practiceRepo repositories.PracticeRepository,
) *PlausibilityService {
	return &PlausibilityService{
		plausRepo:    plausRepo,
		blockRepo:    blockRepo,
		userRepo:     userRepo,
		practiceRepo: practiceRepo,
		now:          time.Now,
	}
}

// ListForPractice lists open issues of a practice, newest first
func (s *PlausibilityService) ListForPractice(ctx context.Context, practiceID uint, offset, limit int) ([]*models.PlausibilityIssue, int64, error) {
	return s.plausRepo.ListOpenByPractice(ctx, practiceID, offset, limit)
}

// ListForUser lists a user's own open issues
func (s *PlausibilityService) ListForUser(ctx context.Context, userID uint) ([]*models.PlausibilityIssue, error) {
	return s.plausRepo.ListOpenByUser(ctx, userID)
}

// Resolve marks an issue as handled
func (s *PlausibilityService) Resolve(ctx context.Context, id uint) error {
	return s.plausRepo.Resolve(ctx, id)
}

// ScanAll runs the plausibility rules over every active practice. Called by
// the nightly cron job and available as an admin endpoint.
func (s *PlausibilityService) ScanAll(ctx context.Context) (int, error) {
	practices, err := s.practiceRepo.List(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, practice := range practices {
		if !practice.IsActive {
			continue
		}
		found, err := s.ScanPractice(ctx, practice.ID)
		if err != nil {
			log.Printf("❌ Plausibility scan failed for practice %d: %v", practice.ID, err)
			continue
		}
		total += found
	}

	if total > 0 {
		log.Printf("🔍 Plausibility scan flagged %d new issues", total)
	}
	return total, nil
}

// ScanPractice runs the rules over one practice's recent blocks and returns
// the number of newly created issues
func (s *PlausibilityService) ScanPractice(ctx context.Context, practiceID uint) (int, error) {
	now := s.now()
	from := timeclock.StartOfDay(now).AddDate(0, 0, -scanLookbackDays)

	users, err := s.userRepo.ListActiveByPractice(ctx, practiceID)
	if err != nil {
		return 0, err
	}

	found := 0
	for _, user := range users {
		blocks, err := s.blockRepo.GetBlocksByUserRange(ctx, user.ID, from, timeclock.EndOfDay(now))
		if err != nil {
			return found, err
		}

		openCount := 0
		for i := range blocks {
			if blocks[i].IsOpen() {
				openCount++
			}
		}

		for i := range blocks {
			block := &blocks[i]
			for _, issue := range s.checkBlock(block, now, openCount) {
				created, err := s.fileIssue(ctx, issue)
				if err != nil {
					return found, err
				}
				if created {
					found++
				}
			}
		}
	}
	return found, nil
}

// checkBlock applies the rules to a single block
func (s *PlausibilityService) checkBlock(block *models.TimeBlock, now time.Time, openCount int) []*models.PlausibilityIssue {
	var issues []*models.PlausibilityIssue

	issue := func(issueType, severity, description string) {
		issues = append(issues, &models.PlausibilityIssue{
			PracticeID:  block.PracticeID,
			UserID:      block.UserID,
			TimeBlockID: block.ID,
			IssueType:   issueType,
			Severity:    severity,
			Description: description,
		})
	}

	if block.IsOpen() && !timeclock.SameDay(block.Date, now) {
		issue(models.IssueOpenBlock, "error",
			fmt.Sprintf("block from %s was never clocked out", block.Date.Format("2006-01-02")))
	}

	if block.IsOpen() && openCount > 1 {
		issue(models.IssueMultipleOpen, "error",
			fmt.Sprintf("%d blocks open at the same time", openCount))
	}

	net := timeclock.NetMinutes(block, now)
	if net > overlongDayMinutes {
		issue(models.IssueOverlongDay, "warning",
			fmt.Sprintf("%s net on %s", timeclock.FormatMinutes(net), block.Date.Format("2006-01-02")))
	}

	gross := timeclock.GrossMinutes(block, now)
	if !block.IsOpen() && gross >= breakRequiredAfter && block.BreakMinutes < minimumBreakMinutes {
		issue(models.IssueMissingBreak, "warning",
			fmt.Sprintf("only %d min break on a %s day", block.BreakMinutes, timeclock.FormatMinutes(gross)))
	}

	return issues
}

// fileIssue creates the issue unless the same one is already open
func (s *PlausibilityService) fileIssue(ctx context.Context, issue *models.PlausibilityIssue) (bool, error) {
	exists, err := s.plausRepo.ExistsOpen(ctx, issue.TimeBlockID, issue.IssueType)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := s.plausRepo.Create(ctx, issue); err != nil {
		return false, err
	}
	return true, nil
}
