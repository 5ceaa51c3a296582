package repositories

import (
	"context"

	"praxiszeit/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// correctionRepository implements CorrectionRepository interface
type correctionRepository struct {
	db *gorm.DB
}

// NewCorrectionRepository creates a new correction request repository
func NewCorrectionRepository(db *gorm.DB) CorrectionRepository {
	return &correctionRepository{db: db}
}

func (r *correctionRepository) Create(ctx context.Context, req *models.CorrectionRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *correctionRepository) GetByID(ctx context.Context, id uint) (*models.CorrectionRequest, error) {
	var req models.CorrectionRequest
	err := r.db.WithContext(ctx).
		Preload("TimeBlock").
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *correctionRepository) Update(ctx context.Context, req *models.CorrectionRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// ListByUser lists correction requests of one user, newest first
func (r *correctionRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.CorrectionRequest, int64, error) {
	var reqs []*models.CorrectionRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.CorrectionRequest{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("TimeBlock").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reqs).Error; err != nil {
		return nil, 0, err
	}

	return reqs, total, nil
}

// ListByPractice lists correction requests of a practice, optionally
// filtered by status, newest first
func (r *correctionRepository) ListByPractice(ctx context.Context, practiceID uint, status string, offset, limit int) ([]*models.CorrectionRequest, int64, error) {
	var reqs []*models.CorrectionRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.CorrectionRequest{}).Where("practice_id = ?", practiceID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("User").Preload("TimeBlock").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reqs).Error; err != nil {
		return nil, 0, err
	}

	return reqs, total, nil
}
