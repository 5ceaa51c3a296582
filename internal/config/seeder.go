package config

import (
	"log"

	"praxiszeit/internal/adapters/persistence/models"
	"praxiszeit/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	practice, err := s.seedDefaultPractice()
	if err != nil {
		return err
	}

	if err := s.seedAdminUser(practice); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedDefaultPractice ensures at least one practice exists so that the
// first registration has a tenant to join
func (s *Seeder) seedDefaultPractice() (*models.Practice, error) {
	var practice models.Practice
	err := s.db.Where("slug = ?", "default").First(&practice).Error
	if err == nil {
		return &practice, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	practice = models.Practice{
		Name:     "Default Practice",
		Slug:     "default",
		IsActive: true,
	}
	if err := s.db.Create(&practice).Error; err != nil {
		return nil, err
	}

	log.Printf("✅ Practice created: %s", practice.Slug)
	return &practice, nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser(practice *models.Practice) error {
	// Check if admin already exists
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		PracticeID:         practice.ID,
		Username:           "admin",
		Email:              "admin@praxiszeit.local",
		Password:           hashedPassword,
		FirstName:          "System",
		LastName:           "Admin",
		Role:               "ADMIN",
		PlannedHoursPerDay: 8,
		IsActive:           true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}
