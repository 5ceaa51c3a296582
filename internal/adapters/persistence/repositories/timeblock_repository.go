package repositories

import (
	"context"
	"time"

	"praxiszeit/internal/adapters/persistence/models"
	"praxiszeit/internal/core/domain"

	"gorm.io/gorm"
)

// timeBlockRepository implements TimeBlockRepository interface
type timeBlockRepository struct {
	db *gorm.DB
}

// NewTimeBlockRepository creates a new time block repository
func NewTimeBlockRepository(db *gorm.DB) TimeBlockRepository {
	return &timeBlockRepository{db: db}
}

// CreateBlock creates a new time block
func (r *timeBlockRepository) CreateBlock(ctx context.Context, block *models.TimeBlock) error {
	return r.db.WithContext(ctx).Create(block).Error
}

// GetBlockByID gets a time block by ID
func (r *timeBlockRepository) GetBlockByID(ctx context.Context, id uint) (*models.TimeBlock, error) {
	var block models.TimeBlock
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&block).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

// UpdateBlock updates a time block
func (r *timeBlockRepository) UpdateBlock(ctx context.Context, block *models.TimeBlock) error {
	return r.db.WithContext(ctx).Save(block).Error
}

// GetOpenBlocksByUser gets all active blocks of a user without an end time,
// newest first
func (r *timeBlockRepository) GetOpenBlocksByUser(ctx context.Context, userID uint) ([]models.TimeBlock, error) {
	var blocks []models.TimeBlock
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("end_time IS NULL").
		Where("status = ?", domain.BlockActive).
		Order("start_time DESC").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

// GetBlocksByUserRange gets all blocks of a user whose date falls in
// [from, to], oldest first
func (r *timeBlockRepository) GetBlocksByUserRange(ctx context.Context, userID uint, from, to time.Time) ([]models.TimeBlock, error) {
	var blocks []models.TimeBlock
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date BETWEEN ? AND ?", from, to).
		Order("start_time ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

// GetOpenBlocksByPractice gets all open blocks of a practice with their
// users preloaded, for the team live view
func (r *timeBlockRepository) GetOpenBlocksByPractice(ctx context.Context, practiceID uint) ([]models.TimeBlock, error) {
	var blocks []models.TimeBlock
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("practice_id = ?", practiceID).
		Where("end_time IS NULL").
		Where("status = ?", domain.BlockActive).
		Order("start_time ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

// CountHomeofficeDays counts distinct dates with a homeoffice block in
// [from, to]
func (r *timeBlockRepository) CountHomeofficeDays(ctx context.Context, userID uint, from, to time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TimeBlock{}).
		Where("user_id = ?", userID).
		Where("location = ?", string(domain.LocationHomeoffice)).
		Where("date BETWEEN ? AND ?", from, to).
		Where("status <> ?", domain.BlockCancelled).
		Distinct("date").
		Count(&count).Error
	return int(count), err
}

// CreateStamp appends a stamp to the punch journal
func (r *timeBlockRepository) CreateStamp(ctx context.Context, stamp *models.TimeStamp) error {
	return r.db.WithContext(ctx).Create(stamp).Error
}

// GetLastStampForBlock gets the most recent stamp of a block, nil if the
// block has none
func (r *timeBlockRepository) GetLastStampForBlock(ctx context.Context, blockID uint) (*models.TimeStamp, error) {
	var stamp models.TimeStamp
	err := r.db.WithContext(ctx).
		Where("block_id = ?", blockID).
		Order("timestamp DESC, id DESC").
		First(&stamp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &stamp, nil
}

// GetStampsForBlock gets the full punch journal of a block, oldest first
func (r *timeBlockRepository) GetStampsForBlock(ctx context.Context, blockID uint) ([]models.TimeStamp, error) {
	var stamps []models.TimeStamp
	err := r.db.WithContext(ctx).
		Where("block_id = ?", blockID).
		Order("timestamp ASC, id ASC").
		Find(&stamps).Error
	if err != nil {
		return nil, err
	}
	return stamps, nil
}
