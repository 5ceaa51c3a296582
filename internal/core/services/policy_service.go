package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"praxiszeit/internal/adapters/persistence/models"
	"praxiszeit/internal/adapters/persistence/repositories"
	"praxiszeit/internal/core/domain"
	"praxiszeit/internal/core/timeclock"
)

// Policy errors
var (
	ErrPolicyNotFound   = errors.New("homeoffice policy not found")
	ErrInvalidWeekday   = errors.New("invalid weekday name")
	ErrInvalidTimeRange = errors.New("invalid policy time window")
)

// PolicyService manages homeoffice policies and answers policy checks
type PolicyService struct {
	policyRepo repositories.PolicyRepository
	blockRepo  repositories.TimeBlockRepository
	userRepo   repositories.UserRepository
	now        func() time.Time
}

// NewPolicyService creates a new policy service
func NewPolicyService(
	policyRepo repositories.PolicyRepository,
	blockRepo repositories.TimeBlockRepository,
	userRepo repositories.UserRepository,
) *PolicyService {
	return &PolicyService{
		policyRepo: policyRepo,
		blockRepo:  blockRepo,
		userRepo:   userRepo,
		now:        time.Now,
	}
}

// UpsertPolicyInput is the admin payload for a user's homeoffice policy
type UpsertPolicyInput struct {
	UserID                       uint     `json:"user_id" validate:"required"`
	IsAllowed                    bool     `json:"is_allowed"`
	AllowedDays                  []string `json:"allowed_days" validate:"dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	MaxDaysPerWeek               int      `json:"max_days_per_week" validate:"min=0,max=7"`
	AllowedStartTime             string   `json:"allowed_start_time" validate:"omitempty,len=5"`
	AllowedEndTime               string   `json:"allowed_end_time" validate:"omitempty,len=5"`
	RequiresReason               bool     `json:"requires_reason"`
	RequiresLocationVerification bool     `json:"requires_location_verification"`
}

// PolicyCheckResult is the answer to "may this user work from home now"
type PolicyCheckResult struct {
	UserID         uint                     `json:"user_id"`
	Allowed        bool                     `json:"allowed"`
	Reason         string                   `json:"reason,omitempty"`
	RequiresReason bool                     `json:"requires_reason"`
	UsedDaysWeek   int                      `json:"used_days_this_week"`
	Policy         *models.HomeofficePolicy `json:"policy,omitempty"`
}

// GetForUser returns the policy of a user
func (s *PolicyService) GetForUser(ctx context.Context, userID uint) (*models.HomeofficePolicy, error) {
	policy, err := s.policyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, ErrPolicyNotFound
	}
	return policy, nil
}

// Check evaluates the policy for a homeoffice clock-in at the current time.
// Used by the client to grey out the homeoffice option before stamping; the
// clock-in itself re-checks.
func (s *PolicyService) Check(ctx context.Context, userID uint) (*PolicyCheckResult, error) {
	now := s.now()

	policy, err := s.policyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	weekStart, _ := timeclock.WeekRange(now)
	used, err := s.blockRepo.CountHomeofficeDays(ctx, userID, weekStart, timeclock.StartOfDay(now).Add(-time.Second))
	if err != nil {
		return nil, err
	}

	check := timeclock.HomeofficeAllowed(policy, now, used)
	return &PolicyCheckResult{
		UserID:         userID,
		Allowed:        check.Allowed,
		Reason:         check.Reason,
		RequiresReason: check.RequiresReason,
		UsedDaysWeek:   used,
		Policy:         policy,
	}, nil
}

// Upsert creates or replaces a user's policy
func (s *PolicyService) Upsert(ctx context.Context, practiceID uint, input *UpsertPolicyInput) (*models.HomeofficePolicy, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.PracticeID != practiceID {
		return nil, ErrUserNotFound
	}

	for _, day := range input.AllowedDays {
		if !isWeekdayName(day) {
			return nil, ErrInvalidWeekday
		}
	}
	if err := validateWindow(input.AllowedStartTime, input.AllowedEndTime); err != nil {
		return nil, err
	}

	policy := &models.HomeofficePolicy{
		UserID:                       input.UserID,
		PracticeID:                   practiceID,
		IsAllowed:                    input.IsAllowed,
		AllowedDays:                  strings.Join(input.AllowedDays, ","),
		MaxDaysPerWeek:               input.MaxDaysPerWeek,
		AllowedStartTime:             input.AllowedStartTime,
		AllowedEndTime:               input.AllowedEndTime,
		RequiresReason:               input.RequiresReason,
		RequiresLocationVerification: input.RequiresLocationVerification,
	}
	if err := s.policyRepo.Upsert(ctx, policy); err != nil {
		return nil, err
	}

	log.Printf("✅ Homeoffice policy saved for user %d (allowed: %v)", input.UserID, input.IsAllowed)
	return policy, nil
}

// ListForPractice lists all policies of a practice
func (s *PolicyService) ListForPractice(ctx context.Context, practiceID uint) ([]*models.HomeofficePolicy, error) {
	return s.policyRepo.ListByPractice(ctx, practiceID)
}

// Delete removes a user's policy; without one, homeoffice is denied
func (s *PolicyService) Delete(ctx context.Context, practiceID, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}
	if user.PracticeID != practiceID {
		return ErrUserNotFound
	}
	return s.policyRepo.Delete(ctx, userID)
}

func isWeekdayName(day string) bool {
	for _, name := range domain.WeekdayNames {
		if name == day {
			return true
		}
	}
	return false
}

func validateWindow(start, end string) error {
	var startMin, endMin int
	var err error

	if start != "" {
		if startMin, err = timeclock.ParseClock(start); err != nil {
			return ErrInvalidTimeRange
		}
	}
	if end != "" {
		if endMin, err = timeclock.ParseClock(end); err != nil {
			return ErrInvalidTimeRange
		}
	}
	if start != "" && end != "" && endMin <= startMin {
		return ErrInvalidTimeRange
	}
	return nil
}
