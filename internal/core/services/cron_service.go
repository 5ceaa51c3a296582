package services

import (
	"context"
	"log"
	"time"

	"praxiszeit/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService owns the scheduled background jobs: the nightly plausibility
// scan and the refresh token cleanup
type CronService struct {
	cron             *cron.Cron
	plausService     *PlausibilityService
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(
	plausService *PlausibilityService,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *CronService {
	return &CronService{
		cron:             cron.New(),
		plausService:     plausService,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// Start registers the jobs and launches the scheduler
func (s *CronService) Start() error {
	// Nightly plausibility scan at 02:00
	if _, err := s.cron.AddFunc("0 2 * * *", s.runPlausibilityScan); err != nil {
		return err
	}

	// Weekly refresh token cleanup, Sunday 03:30
	if _, err := s.cron.AddFunc("30 3 * * 0", s.cleanupRefreshTokens); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("🚀 CronService started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		log.Println("⚠️ CronService stop timed out")
	}
	log.Println("🛑 CronService stopped")
}

func (s *CronService) runPlausibilityScan() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := s.plausService.ScanAll(ctx); err != nil {
		log.Printf("❌ Nightly plausibility scan error: %v", err)
	}
}

func (s *CronService) cleanupRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Refresh token cleanup error: %v", err)
		return
	}
	log.Println("🧹 Expired refresh tokens cleaned up")
}
