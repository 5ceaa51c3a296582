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

	"gorm.io/gorm"
)

// Correction errors
var (
	ErrCorrectionNotFound  = errors.New("correction request not found")
	ErrReasonRequired      = errors.New("correction reason is required")
	ErrCorrectionClosed    = errors.New("correction request already reviewed")
	ErrNothingToCorrect    = errors.New("correction changes nothing")
	ErrInvalidCorrection   = errors.New("corrected end must be after corrected start")
	ErrCorrectionForbidden = errors.New("not allowed to touch this correction request")
)

// CorrectionService handles time correction requests and their review
type CorrectionService struct {
	correctionRepo repositories.CorrectionRepository
	blockRepo      repositories.TimeBlockRepository
	plausRepo      repositories.PlausibilityRepository
	userRepo       repositories.UserRepository
}

// NewCorrectionService creates a new correction service
func NewCorrectionService(
	correctionRepo repositories.CorrectionRepository,
	blockRepo repositories.TimeBlockRepository,
	plausRepo repositories.PlausibilityRepository,
	userRepo repositories.UserRepository,
) *CorrectionService {
	return &CorrectionService{
		correctionRepo: correctionRepo,
		blockRepo:      blockRepo,
		plausRepo:      plausRepo,
		userRepo:       userRepo,
	}
}

// SubmitCorrectionInput is a user's request to fix a recorded block
type SubmitCorrectionInput struct {
	TimeBlockID uint       `json:"time_block_id" validate:"required"`
	NewStart    *time.Time `json:"new_start"`
	NewEnd      *time.Time `json:"new_end"`
	Reason      string     `json:"reason" validate:"required,min=5,max=500"`
}

// ReviewCorrectionInput is a manager's verdict on a pending request
type ReviewCorrectionInput struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment" validate:"max=500"`
}

// Submit files a correction request for one of the user's own blocks. The
// block's current times are snapshotted so the review shows old vs new.
func (s *CorrectionService) Submit(ctx context.Context, userID uint, input *SubmitCorrectionInput) (*models.CorrectionRequest, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return nil, ErrReasonRequired
	}
	if input.NewStart == nil && input.NewEnd == nil {
		return nil, ErrNothingToCorrect
	}
	if input.NewStart != nil && input.NewEnd != nil && !input.NewEnd.After(*input.NewStart) {
		return nil, ErrInvalidCorrection
	}

	block, err := s.blockRepo.GetBlockByID(ctx, input.TimeBlockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlockNotFound
		}
		return nil, err
	}
	if block.UserID != userID {
		return nil, ErrBlockNotFound
	}

	oldStart := block.StartTime
	req := &models.CorrectionRequest{
		UserID:         userID,
		PracticeID:     block.PracticeID,
		TimeBlockID:    block.ID,
		CorrectionType: "modify_time",
		OldStart:       &oldStart,
		OldEnd:         block.EndTime,
		NewStart:       input.NewStart,
		NewEnd:         input.NewEnd,
		Reason:         input.Reason,
		Status:         domain.CorrectionPending,
	}
	if err := s.correctionRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	log.Printf("✅ Correction request #%d filed for block %d", req.ID, block.ID)
	return req, nil
}

// ListForUser lists a user's own correction requests
func (s *CorrectionService) ListForUser(ctx context.Context, userID uint, offset, limit int) ([]*models.CorrectionRequest, int64, error) {
	return s.correctionRepo.ListByUser(ctx, userID, offset, limit)
}

// ListForPractice lists a practice's correction requests for review
func (s *CorrectionService) ListForPractice(ctx context.Context, practiceID uint, status string, offset, limit int) ([]*models.CorrectionRequest, int64, error) {
	return s.correctionRepo.ListByPractice(ctx, practiceID, status, offset, limit)
}

// Review approves or rejects a pending request. Approval applies the new
// times to the block, recomputes its minutes and closes any open
// plausibility issues on it.
func (s *CorrectionService) Review(ctx context.Context, reviewerID, requestID uint, input *ReviewCorrectionInput) (*models.CorrectionRequest, error) {
	reviewer, err := s.userRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	req, err := s.correctionRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCorrectionNotFound
		}
		return nil, err
	}
	if req.PracticeID != reviewer.PracticeID {
		return nil, ErrCorrectionForbidden
	}
	if !req.IsPending() {
		return nil, ErrCorrectionClosed
	}

	now := time.Now()
	req.ReviewedBy = &reviewerID
	req.ReviewedAt = &now
	req.ReviewComment = input.Comment

	if !input.Approve {
		req.Status = domain.CorrectionRejected
		if err := s.correctionRepo.Update(ctx, req); err != nil {
			return nil, err
		}
		log.Printf("✅ Correction request #%d rejected", req.ID)
		return req, nil
	}

	if err := s.applyCorrection(ctx, req); err != nil {
		return nil, err
	}

	req.Status = domain.CorrectionApproved
	if err := s.correctionRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	log.Printf("✅ Correction request #%d approved, block %d updated", req.ID, req.TimeBlockID)
	return req, nil
}

// applyCorrection writes the approved times onto the block and recomputes
// its stored minutes
func (s *CorrectionService) applyCorrection(ctx context.Context, req *models.CorrectionRequest) error {
	block, err := s.blockRepo.GetBlockByID(ctx, req.TimeBlockID)
	if err != nil {
		return err
	}

	if req.NewStart != nil {
		block.StartTime = *req.NewStart
	}
	if req.NewEnd != nil {
		block.EndTime = req.NewEnd
		block.Status = domain.BlockCompleted
	}

	if block.EndTime != nil {
		gross := int(block.EndTime.Sub(block.StartTime) / time.Minute)
		if gross < 0 {
			gross = 0
		}
		net := gross - block.BreakMinutes
		if net < 0 {
			net = 0
		}
		actual := float64(net) / 60

		block.GrossMinutes = &gross
		block.NetMinutes = &net
		block.ActualHours = &actual
		if block.PlannedHours != nil {
			block.OvertimeMinutes = net - int(*block.PlannedHours*60)
		}
	}

	if err := s.blockRepo.UpdateBlock(ctx, block); err != nil {
		return err
	}

	// The corrected data supersedes whatever the scan flagged
	return s.plausRepo.ResolveForBlock(ctx, block.ID)
}
