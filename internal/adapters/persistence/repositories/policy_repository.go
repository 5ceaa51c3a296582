package repositories

import (
	"context"

	"praxiszeit/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// policyRepository implements PolicyRepository interface
type policyRepository struct {
	db *gorm.DB
}

// NewPolicyRepository creates a new homeoffice policy repository
func NewPolicyRepository(db *gorm.DB) PolicyRepository {
	return &policyRepository{db: db}
}

// Upsert creates or replaces the policy of a user; user_id is unique so a
// conflict updates the existing row
func (r *policyRepository) Upsert(ctx context.Context, policy *models.HomeofficePolicy) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_allowed", "allowed_days", "max_days_per_week",
				"allowed_start_time", "allowed_end_time",
				"requires_reason", "requires_location_verification",
			}),
		}).
		Create(policy).Error
}

// GetByUserID gets the policy of a user, nil if none is configured
func (r *policyRepository) GetByUserID(ctx context.Context, userID uint) (*models.HomeofficePolicy, error) {
	var policy models.HomeofficePolicy
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&policy).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &policy, nil
}

func (r *policyRepository) ListByPractice(ctx context.Context, practiceID uint) ([]*models.HomeofficePolicy, error) {
	var policies []*models.HomeofficePolicy
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("practice_id = ?", practiceID).
		Find(&policies).Error
	if err != nil {
		return nil, err
	}
	return policies, nil
}

func (r *policyRepository) Delete(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.HomeofficePolicy{}).Error
}
