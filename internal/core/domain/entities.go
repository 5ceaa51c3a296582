package domain

// Role represents user role in the system
type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// WorkLocation is where a work session takes place.
// Database constraint: location IN ('office', 'homeoffice', 'mobile')
type WorkLocation string

const (
	LocationOffice     WorkLocation = "office"
	LocationHomeoffice WorkLocation = "homeoffice"
	LocationMobile     WorkLocation = "mobile"
)

// WorkLocations lists all valid work locations
var WorkLocations = []WorkLocation{LocationOffice, LocationHomeoffice, LocationMobile}

// IsValid reports whether l is one of the fixed work locations
func (l WorkLocation) IsValid() bool {
	for _, v := range WorkLocations {
		if l == v {
			return true
		}
	}
	return false
}

// StampType is a single punch-clock action
type StampType string

const (
	StampStart      StampType = "start"
	StampStop       StampType = "stop"
	StampPauseStart StampType = "pause_start"
	StampPauseEnd   StampType = "pause_end"
)

// ClockStatus is the derived punch-clock state of a user
type ClockStatus string

const (
	StatusIdle    ClockStatus = "idle"
	StatusWorking ClockStatus = "working"
	StatusBreak   ClockStatus = "break"
)

// Time block lifecycle states
const (
	BlockActive    = "active"
	BlockCompleted = "completed"
	BlockCancelled = "cancelled"
)

// Correction request states; only pending is ever set by this service,
// approved/rejected come from a reviewer
const (
	CorrectionPending  = "pending"
	CorrectionApproved = "approved"
	CorrectionRejected = "rejected"
)

// Weekday names as stored in homeoffice policies (allowed_days)
var WeekdayNames = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// DefaultTargetMinutesPerDay is the fallback daily work target (8h)
const DefaultTargetMinutesPerDay = 480
