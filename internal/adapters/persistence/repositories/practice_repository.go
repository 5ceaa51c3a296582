package repositories

import (
	"context"

	"praxiszeit/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// practiceRepository implements PracticeRepository interface
type practiceRepository struct {
	db *gorm.DB
}

// NewPracticeRepository creates a new practice repository
func NewPracticeRepository(db *gorm.DB) PracticeRepository {
	return &practiceRepository{db: db}
}

func (r *practiceRepository) Create(ctx context.Context, practice *models.Practice) error {
	return r.db.WithContext(ctx).Create(practice).Error
}

func (r *practiceRepository) GetByID(ctx context.Context, id uint) (*models.Practice, error) {
	var practice models.Practice
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&practice).Error
	if err != nil {
		return nil, err
	}
	return &practice, nil
}

func (r *practiceRepository) GetBySlug(ctx context.Context, slug string) (*models.Practice, error) {
	var practice models.Practice
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&practice).Error
	if err != nil {
		return nil, err
	}
	return &practice, nil
}

func (r *practiceRepository) List(ctx context.Context) ([]*models.Practice, error) {
	var practices []*models.Practice
	err := r.db.WithContext(ctx).Order("name").Find(&practices).Error
	if err != nil {
		return nil, err
	}
	return practices, nil
}
