package services

import (
	"context"
	"testing"
	"time"

	"praxiszeit/internal/adapters/persistence/models"
	"praxiszeit/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCorrectionService() (*CorrectionService, *fakeBlockRepo, *fakePlausRepo) {
	blockRepo := newFakeBlockRepo()
	plausRepo := newFakePlausRepo()
	manager := &models.User{ID: 2, PracticeID: 1, Username: "maria", Role: "MANAGER", IsActive: true}
	outsider := &models.User{ID: 3, PracticeID: 2, Username: "olaf", Role: "MANAGER", IsActive: true}
	userRepo := newFakeUserRepo(testUser(), manager, outsider)
	svc := NewCorrectionService(newFakeCorrectionRepo(), blockRepo, plausRepo, userRepo)
	return svc, blockRepo, plausRepo
}

func seedCompletedBlock(t *testing.T, blockRepo *fakeBlockRepo, userID uint) *models.TimeBlock {
	t.Helper()
	start := time.Date(2026, 3, 9, 8, 0, 0, 0, time.Local)
	end := start.Add(8 * time.Hour)
	planned := 8.0
	block := &models.TimeBlock{
		UserID:       userID,
		PracticeID:   1,
		Date:         time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local),
		StartTime:    start,
		EndTime:      &end,
		BreakMinutes: 30,
		Location:     string(domain.LocationOffice),
		PlannedHours: &planned,
		Status:       domain.BlockCompleted,
	}
	require.NoError(t, blockRepo.CreateBlock(context.Background(), block))
	return block
}

func TestSubmitCorrectionSnapshotsOldTimes(t *testing.T) {
	svc, blockRepo, _ := newTestCorrectionService()
	block := seedCompletedBlock(t, blockRepo, 1)

	newEnd := block.StartTime.Add(9 * time.Hour)
	req, err := svc.Submit(context.Background(), 1, &SubmitCorrectionInput{
		TimeBlockID: block.ID,
		NewEnd:      &newEnd,
		Reason:      "forgot to clock out before the team meeting",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CorrectionPending, req.Status)
	require.NotNil(t, req.OldStart)
	assert.True(t, req.OldStart.Equal(block.StartTime))
	require.NotNil(t, req.OldEnd)
	assert.True(t, req.OldEnd.Equal(*block.EndTime))
}

func TestSubmitCorrectionValidation(t *testing.T) {
	svc, blockRepo, _ := newTestCorrectionService()
	block := seedCompletedBlock(t, blockRepo, 1)
	ctx := context.Background()

	_, err := svc.Submit(ctx, 1, &SubmitCorrectionInput{TimeBlockID: block.ID, Reason: "no actual change"})
	assert.ErrorIs(t, err, ErrNothingToCorrect)

	// A reason of only whitespace counts as missing
	blank := block.StartTime.Add(9 * time.Hour)
	_, err = svc.Submit(ctx, 1, &SubmitCorrectionInput{
		TimeBlockID: block.ID,
		NewEnd:      &blank,
		Reason:      "     \t  ",
	})
	assert.ErrorIs(t, err, ErrReasonRequired)

	start := block.StartTime
	before := start.Add(-time.Hour)
	_, err = svc.Submit(ctx, 1, &SubmitCorrectionInput{
		TimeBlockID: block.ID,
		NewStart:    &start,
		NewEnd:      &before,
		Reason:      "end before start",
	})
	assert.ErrorIs(t, err, ErrInvalidCorrection)
}

func TestSubmitCorrectionForeignBlock(t *testing.T) {
	svc, blockRepo, _ := newTestCorrectionService()
	block := seedCompletedBlock(t, blockRepo, 99)

	newEnd := block.StartTime.Add(9 * time.Hour)
	_, err := svc.Submit(context.Background(), 1, &SubmitCorrectionInput{
		TimeBlockID: block.ID,
		NewEnd:      &newEnd,
		Reason:      "trying to touch someone else's block",
	})
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestReviewApproveAppliesTimes(t *testing.T) {
	svc, blockRepo, plausRepo := newTestCorrectionService()
	block := seedCompletedBlock(t, blockRepo, 1)
	ctx := context.Background()

	// An open scan finding on this block should be superseded
	require.NoError(t, plausRepo.Create(ctx, &models.PlausibilityIssue{
		PracticeID:  1,
		UserID:      1,
		TimeBlockID: block.ID,
		IssueType:   models.IssueMissingBreak,
		Severity:    "warning",
	}))

	newEnd := block.StartTime.Add(10 * time.Hour)
	req, err := svc.Submit(ctx, 1, &SubmitCorrectionInput{
		TimeBlockID: block.ID,
		NewEnd:      &newEnd,
		Reason:      "worked until the evening shift handover",
	})
	require.NoError(t, err)

	reviewed, err := svc.Review(ctx, 2, req.ID, &ReviewCorrectionInput{Approve: true, Comment: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, domain.CorrectionApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, uint(2), *reviewed.ReviewedBy)

	updated, err := blockRepo.GetBlockByID(ctx, block.ID)
	require.NoError(t, err)
	assert.True(t, updated.EndTime.Equal(newEnd))
	require.NotNil(t, updated.GrossMinutes)
	assert.Equal(t, 600, *updated.GrossMinutes)
	require.NotNil(t, updated.NetMinutes)
	assert.Equal(t, 570, *updated.NetMinutes)
	assert.Equal(t, 90, updated.OvertimeMinutes)

	issues, err := plausRepo.ListOpenByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestReviewRejectKeepsBlock(t *testing.T) {
	svc, blockRepo, _ := newTestCorrectionService()
	block := seedCompletedBlock(t, blockRepo, 1)
	ctx := context.Background()

	newEnd := block.StartTime.Add(12 * time.Hour)
	req, err := svc.Submit(ctx, 1, &SubmitCorrectionInput{
		TimeBlockID: block.ID,
		NewEnd:      &newEnd,
		Reason:      "implausible twelve hour day",
	})
	require.NoError(t, err)

	reviewed, err := svc.Review(ctx, 2, req.ID, &ReviewCorrectionInput{Approve: false, Comment: "not credible"})
	require.NoError(t, err)
	assert.Equal(t, domain.CorrectionRejected, reviewed.Status)

	unchanged, err := blockRepo.GetBlockByID(ctx, block.ID)
	require.NoError(t, err)
	assert.True(t, unchanged.EndTime.Equal(*block.EndTime))
}

func TestReviewTwice(t *testing.T) {
	svc, blockRepo, _ := newTestCorrectionService()
	block := seedCompletedBlock(t, blockRepo, 1)
	ctx := context.Background()

	newEnd := block.StartTime.Add(9 * time.Hour)
	req, err := svc.Submit(ctx, 1, &SubmitCorrectionInput{
		TimeBlockID: block.ID,
		NewEnd:      &newEnd,
		Reason:      "stayed for the inventory count",
	})
	require.NoError(t, err)

	_, err = svc.Review(ctx, 2, req.ID, &ReviewCorrectionInput{Approve: true})
	require.NoError(t, err)

	_, err = svc.Review(ctx, 2, req.ID, &ReviewCorrectionInput{Approve: false})
	assert.ErrorIs(t, err, ErrCorrectionClosed)
}

func TestReviewAcrossPractices(t *testing.T) {
	svc, blockRepo, _ := newTestCorrectionService()
	block := seedCompletedBlock(t, blockRepo, 1)
	ctx := context.Background()

	newEnd := block.StartTime.Add(9 * time.Hour)
	req, err := svc.Submit(ctx, 1, &SubmitCorrectionInput{
		TimeBlockID: block.ID,
		NewEnd:      &newEnd,
		Reason:      "stayed longer for a patient emergency",
	})
	require.NoError(t, err)

	// Reviewer from another practice
	_, err = svc.Review(ctx, 3, req.ID, &ReviewCorrectionInput{Approve: true})
	assert.ErrorIs(t, err, ErrCorrectionForbidden)
}
