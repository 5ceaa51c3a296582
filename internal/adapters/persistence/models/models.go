package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Tenant & Auth Tables
// ============================================================

// Practice represents practices table (tenant)
type Practice struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Slug      string         `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Practice) TableName() string {
	return "practices"
}

// User represents users table
type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	PracticeID         uint           `gorm:"not null;index" json:"practice_id"`
	Username           string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email              string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password           string         `gorm:"size:255;not null" json:"-"`
	FirstName          string         `gorm:"size:50" json:"first_name"`
	LastName           string         `gorm:"size:50" json:"last_name"`
	Role               string         `gorm:"size:20;default:'USER'" json:"role"`
	PlannedHoursPerDay float64        `gorm:"type:decimal(4,2);default:8" json:"planned_hours_per_day"`
	IsActive           bool           `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	Practice           *Practice      `gorm:"foreignKey:PracticeID" json:"practice,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID                 uint      `json:"id"`
	PracticeID         uint      `json:"practice_id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Role               string    `json:"role"`
	PlannedHoursPerDay float64   `json:"planned_hours_per_day"`
	IsActive           bool      `json:"is_active"`
	PracticeName       string    `json:"practice_name,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:                 u.ID,
		PracticeID:         u.PracticeID,
		Username:           u.Username,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Role:               u.Role,
		PlannedHoursPerDay: u.PlannedHoursPerDay,
		IsActive:           u.IsActive,
		CreatedAt:          u.CreatedAt,
	}
	if u.Practice != nil {
		resp.PracticeName = u.Practice.Name
	}
	return resp
}

// FullName returns "First Last", falling back to the username
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}

// PlannedMinutesPerDay converts the daily target to whole minutes
func (u *User) PlannedMinutesPerDay() int {
	return int(u.PlannedHoursPerDay * 60)
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Practice{},
		&User{},
		&RefreshToken{},
		&TimeBlock{},
		&TimeStamp{},
		&CorrectionRequest{},
		&HomeofficePolicy{},
		&PlausibilityIssue{},
	)
}
