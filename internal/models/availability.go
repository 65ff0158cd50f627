package models

import (
	"time"
)

// Availability is a doctor-declared window during which bookings are
// allowed. A window is either weekly recurring (DayOfWeek set,
// 0=Monday .. 6=Sunday) or one-off (SpecificDate set); exactly one of
// the two is non-nil. Start/End are "HH:MM" clock times, end exclusive.
type Availability struct {
	BaseModel
	DoctorID     string     `gorm:"size:36;index;not null" json:"doctorId"`
	DayOfWeek    *int       `json:"dayOfWeek,omitempty"`
	SpecificDate *time.Time `gorm:"type:date" json:"specificDate,omitempty"`
	StartTime    string     `gorm:"size:5;not null" json:"startTime"`
	EndTime      string     `gorm:"size:5;not null" json:"endTime"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	IsRecurring  bool       `gorm:"default:true" json:"isRecurring"`

	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"-"`
}
