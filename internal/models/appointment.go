package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a booked counseling session between a patient
// and a doctor. Start/End are "HH:MM" clock times on AppointmentDate.
type Appointment struct {
	BaseModel
	DoctorID        string            `gorm:"size:36;index;not null" json:"doctorId"`
	PatientID       string            `gorm:"size:36;index;not null" json:"patientId"`
	AppointmentDate time.Time         `gorm:"type:date;index;not null" json:"appointmentDate"`
	StartTime       string            `gorm:"size:5;not null" json:"startTime"`
	EndTime         string            `gorm:"size:5;not null" json:"endTime"`
	Status          AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes"`

	// Relations
	Doctor      DoctorProfile  `gorm:"foreignKey:DoctorID" json:"-"`
	Patient     PatientProfile `gorm:"foreignKey:PatientID" json:"-"`
	CallSession *CallSession   `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE" json:"callSession,omitempty"`
}

// CallSessionStatus represents the status of a call session
type CallSessionStatus string

const (
	CallScheduled  CallSessionStatus = "scheduled"
	CallInProgress CallSessionStatus = "in_progress"
	CallCompleted  CallSessionStatus = "completed"
	CallFailed     CallSessionStatus = "failed"
)

// CallSession is the live-call record paired one-to-one with an appointment.
type CallSession struct {
	BaseModel
	AppointmentID string            `gorm:"size:36;uniqueIndex;not null" json:"appointmentId"`
	Status        CallSessionStatus `gorm:"size:20;default:'scheduled'" json:"status"`
	StartTime     *time.Time        `json:"startTime,omitempty"`
	EndTime       *time.Time        `json:"endTime,omitempty"`
	RecordingPath string            `gorm:"size:255" json:"recordingPath,omitempty"`

	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}
