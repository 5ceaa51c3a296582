package repositories

import (
	"context"
	"time"

	"praxiszeit/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// plausibilityRepository implements PlausibilityRepository interface
type plausibilityRepository struct {
	db *gorm.DB
}

// NewPlausibilityRepository creates a new plausibility issue repository
func NewPlausibilityRepository(db *gorm.DB) PlausibilityRepository {
	return &plausibilityRepository{db: db}
}

func (r *plausibilityRepository) Create(ctx context.Context, issue *models.PlausibilityIssue) error {
	return r.db.WithContext(ctx).Create(issue).Error
}

// ExistsOpen checks whether an unresolved issue of the given type already
// exists for a block, so the nightly scan does not pile up duplicates
func (r *plausibilityRepository) ExistsOpen(ctx context.Context, blockID uint, issueType string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PlausibilityIssue{}).
		Where("time_block_id = ?", blockID).
		Where("issue_type = ?", issueType).
		Where("resolved = ?", false).
		Count(&count).Error
	return count > 0, err
}

func (r *plausibilityRepository) ListOpenByPractice(ctx context.Context, practiceID uint, offset, limit int) ([]*models.PlausibilityIssue, int64, error) {
	var issues []*models.PlausibilityIssue
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.PlausibilityIssue{}).
		Where("practice_id = ?", practiceID).
		Where("resolved = ?", false)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&issues).Error; err != nil {
		return nil, 0, err
	}

	return issues, total, nil
}

func (r *plausibilityRepository) ListOpenByUser(ctx context.Context, userID uint) ([]*models.PlausibilityIssue, error) {
	var issues []*models.PlausibilityIssue
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("resolved = ?", false).
		Order("created_at DESC").
		Find(&issues).Error
	if err != nil {
		return nil, err
	}
	return issues, nil
}

func (r *plausibilityRepository) Resolve(ctx context.Context, id uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.PlausibilityIssue{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"resolved": true, "resolved_at": &now}).Error
}

// ResolveForBlock closes all open issues of a block, used when a correction
// fixes the underlying data
func (r *plausibilityRepository) ResolveForBlock(ctx context.Context, blockID uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.PlausibilityIssue{}).
		Where("time_block_id = ?", blockID).
		Where("resolved = ?", false).
		Updates(map[string]interface{}{"resolved": true, "resolved_at": &now}).Error
}
