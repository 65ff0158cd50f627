package models

import (
	"time"
)

// ComplaintStatus represents the status of a complaint
type ComplaintStatus string

const (
	ComplaintOpen        ComplaintStatus = "open"
	ComplaintUnderReview ComplaintStatus = "under_review"
	ComplaintResolved    ComplaintStatus = "resolved"
	ComplaintClosed      ComplaintStatus = "closed"
)

// Complaint is a grievance filed by a patient and handled by an admin.
type Complaint struct {
	BaseModel
	PatientID     string          `gorm:"size:36;index;not null" json:"patientId"`
	Subject       string          `gorm:"size:100;not null" json:"subject"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Status        ComplaintStatus `gorm:"size:20;default:'open'" json:"status"`
	AdminResponse string          `gorm:"type:text" json:"adminResponse,omitempty"`
	ResolvedAt    *time.Time      `json:"resolvedAt,omitempty"`

	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"-"`
}
