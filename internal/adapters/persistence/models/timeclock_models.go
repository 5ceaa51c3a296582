package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Time Tracking Tables
// ============================================================

// TimeBlock represents time_blocks table: one work session, normally one
// per user per calendar day. Minutes are attributed entirely to Date even
// when the wall clock crosses midnight.
type TimeBlock struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	PracticeID      uint           `gorm:"not null;index" json:"practice_id"`
	Date            time.Time      `gorm:"type:date;not null;index" json:"date"`
	StartTime       time.Time      `gorm:"not null" json:"start_time"`
	EndTime         *time.Time     `json:"end_time"`
	BreakMinutes    int            `gorm:"default:0" json:"break_minutes"`
	Location        string         `gorm:"size:15;not null;default:'office'" json:"location"`
	PlannedHours    *float64       `gorm:"type:decimal(4,2)" json:"planned_hours"`
	ActualHours     *float64       `gorm:"type:decimal(5,2)" json:"actual_hours"`
	GrossMinutes    *int           `json:"gross_minutes"`
	NetMinutes      *int           `json:"net_minutes"`
	OvertimeMinutes int            `gorm:"default:0" json:"overtime_minutes"`
	Status          string         `gorm:"size:15;default:'active';index" json:"status"`
	Notes           string         `gorm:"size:500" json:"notes"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	User            *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (TimeBlock) TableName() string {
	return "time_blocks"
}

// IsOpen reports whether the block has no end time yet
func (b *TimeBlock) IsOpen() bool {
	return b.EndTime == nil
}

// TimeStamp represents time_stamps table: the append-only punch journal.
// The break/working sub-state of an open block is derived from the most
// recent stamp, not stored on the block itself.
type TimeStamp struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BlockID    uint      `gorm:"not null;index" json:"block_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	PracticeID uint      `gorm:"not null;index" json:"practice_id"`
	StampType  string    `gorm:"size:15;not null" json:"stamp_type"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
	Location   string    `gorm:"size:15" json:"location"`
	Notes      string    `gorm:"size:500" json:"notes"`
	IsManual   bool      `gorm:"default:false" json:"is_manual"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TimeStamp) TableName() string {
	return "time_stamps"
}

// CorrectionRequest represents time_correction_requests table
type CorrectionRequest struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	PracticeID     uint       `gorm:"not null;index" json:"practice_id"`
	TimeBlockID    uint       `gorm:"not null;index" json:"time_block_id"`
	CorrectionType string     `gorm:"size:30;not null;default:'modify_time'" json:"correction_type"`
	OldStart       *time.Time `json:"old_start"`
	OldEnd         *time.Time `json:"old_end"`
	NewStart       *time.Time `json:"new_start"`
	NewEnd         *time.Time `json:"new_end"`
	Reason         string     `gorm:"size:500;not null" json:"reason"`
	Status         string     `gorm:"size:15;default:'pending';index" json:"status"`
	ReviewedBy     *uint      `json:"reviewed_by"`
	ReviewedAt     *time.Time `json:"reviewed_at"`
	ReviewComment  string     `gorm:"size:500" json:"review_comment"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	User           *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TimeBlock      *TimeBlock `gorm:"foreignKey:TimeBlockID" json:"time_block,omitempty"`
	Reviewer       *User      `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
}

func (CorrectionRequest) TableName() string {
	return "time_correction_requests"
}

// IsPending reports whether the request still awaits review
func (c *CorrectionRequest) IsPending() bool {
	return c.Status == "pending"
}

// HomeofficePolicy represents homeoffice_policies table.
// AllowedDays holds lowercase weekday names, comma separated; empty means
// all days are allowed.
type HomeofficePolicy struct {
	ID                           uint           `gorm:"primaryKey" json:"id"`
	UserID                       uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	PracticeID                   uint           `gorm:"not null;index" json:"practice_id"`
	IsAllowed                    bool           `gorm:"default:false" json:"is_allowed"`
	AllowedDays                  string         `gorm:"size:100" json:"allowed_days"`
	MaxDaysPerWeek               int            `gorm:"default:2" json:"max_days_per_week"`
	AllowedStartTime             string         `gorm:"size:10" json:"allowed_start_time"`
	AllowedEndTime               string         `gorm:"size:10" json:"allowed_end_time"`
	RequiresReason               bool           `gorm:"default:true" json:"requires_reason"`
	RequiresLocationVerification bool           `gorm:"default:false" json:"requires_location_verification"`
	CreatedAt                    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt                    gorm.DeletedAt `gorm:"index" json:"-"`
	User                         *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (HomeofficePolicy) TableName() string {
	return "homeoffice_policies"
}

// AllowedDayList splits AllowedDays into single weekday names
func (p *HomeofficePolicy) AllowedDayList() []string {
	if p.AllowedDays == "" {
		return nil
	}
	var days []string
	for _, d := range strings.Split(p.AllowedDays, ",") {
		if d = strings.TrimSpace(d); d != "" {
			days = append(days, d)
		}
	}
	return days
}

// Plausibility issue types
const (
	IssueOpenBlock    = "open_block"
	IssueOverlongDay  = "overlong_day"
	IssueMissingBreak = "missing_break"
	IssueMultipleOpen = "multiple_open_blocks"
)

// PlausibilityIssue represents plausibility_issues table
type PlausibilityIssue struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PracticeID  uint       `gorm:"not null;index" json:"practice_id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	TimeBlockID uint       `gorm:"not null;index" json:"time_block_id"`
	IssueType   string     `gorm:"size:30;not null" json:"issue_type"`
	Description string     `gorm:"size:255" json:"description"`
	Severity    string     `gorm:"size:10;default:'warning'" json:"severity"`
	Resolved    bool       `gorm:"default:false;index" json:"resolved"`
	ResolvedAt  *time.Time `json:"resolved_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PlausibilityIssue) TableName() string {
	return "plausibility_issues"
}
