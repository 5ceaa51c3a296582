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

func newTestPlausibilityService() (*PlausibilityService, *fakeBlockRepo, *fakePlausRepo, *testClock) {
	blockRepo := newFakeBlockRepo()
	plausRepo := newFakePlausRepo()
	practiceRepo := newFakePracticeRepo(&models.Practice{ID: 1, Name: "Praxis Dr. Weber", Slug: "weber", IsActive: true})
	clock := &testClock{t: testDay}
	svc := NewPlausibilityService(plausRepo, blockRepo, newFakeUserRepo(testUser()), practiceRepo)
	svc.now = clock.Now
	return svc, blockRepo, plausRepo, clock
}

func seedBlock(t *testing.T, blockRepo *fakeBlockRepo, daysAgo int, workHours, breakMinutes int, open bool) *models.TimeBlock {
	t.Helper()
	start := testDay.AddDate(0, 0, -daysAgo)
	block := &models.TimeBlock{
		UserID:       1,
		PracticeID:   1,
		Date:         time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		StartTime:    start,
		BreakMinutes: breakMinutes,
		Location:     string(domain.LocationOffice),
		Status:       domain.BlockActive,
	}
	if !open {
		end := start.Add(time.Duration(workHours) * time.Hour)
		block.EndTime = &end
		block.Status = domain.BlockCompleted
	}
	require.NoError(t, blockRepo.CreateBlock(context.Background(), block))
	return block
}

func issueTypes(issues []*models.PlausibilityIssue) []string {
	var types []string
	for _, i := range issues {
		types = append(types, i.IssueType)
	}
	return types
}

func TestScanFlagsForgottenClockOut(t *testing.T) {
	svc, blockRepo, plausRepo, _ := newTestPlausibilityService()
	seedBlock(t, blockRepo, 1, 0, 0, true)

	found, err := svc.ScanPractice(context.Background(), 1)
	require.NoError(t, err)
	// The forgotten block also keeps accruing time, so the overlong rule
	// fires alongside it
	assert.Equal(t, 2, found)

	issues, err := plausRepo.ListOpenByUser(context.Background(), 1)
	require.NoError(t, err)
	types := issueTypes(issues)
	assert.Contains(t, types, models.IssueOpenBlock)
	assert.Contains(t, types, models.IssueOverlongDay)
	for _, i := range issues {
		if i.IssueType == models.IssueOpenBlock {
			assert.Equal(t, "error", i.Severity)
		}
	}
}

func TestScanIgnoresTodaysOpenBlock(t *testing.T) {
	svc, blockRepo, _, _ := newTestPlausibilityService()
	seedBlock(t, blockRepo, 0, 0, 0, true)

	found, err := svc.ScanPractice(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, found)
}

func TestScanFlagsMissingBreak(t *testing.T) {
	svc, blockRepo, plausRepo, _ := newTestPlausibilityService()
	// 7h without any break
	seedBlock(t, blockRepo, 2, 7, 0, false)

	found, err := svc.ScanPractice(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, found)

	issues, err := plausRepo.ListOpenByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, issueTypes(issues), models.IssueMissingBreak)
}

func TestScanFlagsOverlongDay(t *testing.T) {
	svc, blockRepo, plausRepo, _ := newTestPlausibilityService()
	// 11h with a proper break is still more than 10h net
	seedBlock(t, blockRepo, 2, 11, 45, false)

	found, err := svc.ScanPractice(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, found)

	issues, err := plausRepo.ListOpenByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, issueTypes(issues), models.IssueOverlongDay)
}

func TestScanFlagsMultipleOpenBlocks(t *testing.T) {
	svc, blockRepo, plausRepo, _ := newTestPlausibilityService()
	seedBlock(t, blockRepo, 1, 0, 0, true)
	seedBlock(t, blockRepo, 2, 0, 0, true)

	_, err := svc.ScanPractice(context.Background(), 1)
	require.NoError(t, err)

	issues, err := plausRepo.ListOpenByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, issueTypes(issues), models.IssueMultipleOpen)
}

func TestScanDeduplicates(t *testing.T) {
	svc, blockRepo, _, _ := newTestPlausibilityService()
	seedBlock(t, blockRepo, 1, 0, 0, true)
	ctx := context.Background()

	found, err := svc.ScanPractice(ctx, 1)
	require.NoError(t, err)
	assert.Positive(t, found)

	// Second run finds the same data, files nothing new
	found, err = svc.ScanPractice(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, found)
}

func TestScanAllSkipsInactivePractices(t *testing.T) {
	svc, blockRepo, _, _ := newTestPlausibilityService()
	require.NoError(t, svc.practiceRepo.Create(context.Background(),
		&models.Practice{ID: 2, Name: "Closed Practice", Slug: "closed", IsActive: false}))
	seedBlock(t, blockRepo, 2, 7, 0, false)

	found, err := svc.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, found)
}

func TestResolveClearsIssue(t *testing.T) {
	svc, blockRepo, plausRepo, _ := newTestPlausibilityService()
	seedBlock(t, blockRepo, 2, 7, 0, false)
	ctx := context.Background()

	_, err := svc.ScanPractice(ctx, 1)
	require.NoError(t, err)

	issues, err := plausRepo.ListOpenByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, issues, 1)

	require.NoError(t, svc.Resolve(ctx, issues[0].ID))

	issues, err = svc.ListForUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, issues)
}
