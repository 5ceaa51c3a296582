package repositories

import (
	"context"
	"time"

	"praxiszeit/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, practiceID uint, offset, limit int) ([]*models.User, int64, error)
	ListActiveByPractice(ctx context.Context, practiceID uint) ([]*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
	CountActiveByUserID(ctx context.Context, userID uint) (int64, error)
}

// PracticeRepository defines practice repository interface
type PracticeRepository interface {
	Create(ctx context.Context, practice *models.Practice) error
	GetByID(ctx context.Context, id uint) (*models.Practice, error)
	GetBySlug(ctx context.Context, slug string) (*models.Practice, error)
	List(ctx context.Context) ([]*models.Practice, error)
}

// TimeBlockRepository defines time block and stamp journal persistence
type TimeBlockRepository interface {
	CreateBlock(ctx context.Context, block *models.TimeBlock) error
	GetBlockByID(ctx context.Context, id uint) (*models.TimeBlock, error)
	UpdateBlock(ctx context.Context, block *models.TimeBlock) error
	GetOpenBlocksByUser(ctx context.Context, userID uint) ([]models.TimeBlock, error)
	GetBlocksByUserRange(ctx context.Context, userID uint, from, to time.Time) ([]models.TimeBlock, error)
	GetOpenBlocksByPractice(ctx context.Context, practiceID uint) ([]models.TimeBlock, error)
	CountHomeofficeDays(ctx context.Context, userID uint, from, to time.Time) (int, error)

	CreateStamp(ctx context.Context, stamp *models.TimeStamp) error
	GetLastStampForBlock(ctx context.Context, blockID uint) (*models.TimeStamp, error)
	GetStampsForBlock(ctx context.Context, blockID uint) ([]models.TimeStamp, error)
}

// CorrectionRepository defines correction request persistence
type CorrectionRepository interface {
	Create(ctx context.Context, req *models.CorrectionRequest) error
	GetByID(ctx context.Context, id uint) (*models.CorrectionRequest, error)
	Update(ctx context.Context, req *models.CorrectionRequest) error
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.CorrectionRequest, int64, error)
	ListByPractice(ctx context.Context, practiceID uint, status string, offset, limit int) ([]*models.CorrectionRequest, int64, error)
}

// PolicyRepository defines homeoffice policy persistence
type PolicyRepository interface {
	Upsert(ctx context.Context, policy *models.HomeofficePolicy) error
	GetByUserID(ctx context.Context, userID uint) (*models.HomeofficePolicy, error)
	ListByPractice(ctx context.Context, practiceID uint) ([]*models.HomeofficePolicy, error)
	Delete(ctx context.Context, userID uint) error
}

// PlausibilityRepository defines plausibility issue persistence
type PlausibilityRepository interface {
	Create(ctx context.Context, issue *models.PlausibilityIssue) error
	ExistsOpen(ctx context.Context, blockID uint, issueType string) (bool, error)
	ListOpenByPractice(ctx context.Context, practiceID uint, offset, limit int) ([]*models.PlausibilityIssue, int64, error)
	ListOpenByUser(ctx context.Context, userID uint) ([]*models.PlausibilityIssue, error)
	Resolve(ctx context.Context, id uint) error
	ResolveForBlock(ctx context.Context, blockID uint) error
}
