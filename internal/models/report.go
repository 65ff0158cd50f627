package models

import (
	"time"
)

// PatientReport is the clinical report a doctor writes once an
// appointment has completed. At most one report exists per appointment;
// repeated submissions update the existing row.
type PatientReport struct {
	BaseModel
	PatientID       string     `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID        string     `gorm:"size:36;index;not null" json:"doctorId"`
	AppointmentID   string     `gorm:"size:36;uniqueIndex;not null" json:"appointmentId"`
	ReportDate      time.Time  `json:"reportDate"`
	Diagnosis       string     `gorm:"type:text" json:"diagnosis"`
	TreatmentPlan   string     `gorm:"type:text" json:"treatmentPlan"`
	Recommendations string     `gorm:"type:text" json:"recommendations"`
	NextAppointment *time.Time `gorm:"type:date" json:"nextAppointment,omitempty"`
	PDFPath         string     `gorm:"size:255" json:"pdfPath,omitempty"`

	// Relations
	Patient     PatientProfile `gorm:"foreignKey:PatientID" json:"-"`
	Doctor      DoctorProfile  `gorm:"foreignKey:DoctorID" json:"-"`
	Appointment Appointment    `gorm:"foreignKey:AppointmentID" json:"-"`
}
