package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// User represents an account in the system. Role-specific data lives in
// the DoctorProfile / PatientProfile row linked to the user; deleting a
// user cascades through its profile to everything beneath it.
type User struct {
	BaseModel
	Username  string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;size:120;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Role      Role   `gorm:"size:20;not null" json:"role"`
	FirstName string `gorm:"size:50" json:"firstName"`
	LastName  string `gorm:"size:50" json:"lastName"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`

	// Relations (not always preloaded)
	RefreshTokens  []RefreshToken  `gorm:"foreignKey:UserID" json:"-"`
	DoctorProfile  *DoctorProfile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"doctorProfile,omitempty"`
	PatientProfile *PatientProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"patientProfile,omitempty"`
}

// DoctorProfile holds doctor-specific data for a user with the doctor role.
// New doctors start unapproved and cannot log in until an admin approves them.
type DoctorProfile struct {
	BaseModel
	UserID          string `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	Specialization  string `gorm:"size:100;not null" json:"specialization"`
	Qualification   string `gorm:"size:200" json:"qualification"`
	ExperienceYears int    `json:"experienceYears"`
	Bio             string `gorm:"type:text" json:"bio"`
	ProfilePhoto    string `gorm:"size:255" json:"profilePhoto"`
	IsApproved      bool   `gorm:"default:false" json:"isApproved"`

	User         User           `gorm:"foreignKey:UserID" json:"-"`
	Availability []Availability `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"-"`
	Appointments []Appointment  `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"-"`
}

// PatientProfile holds patient-specific data for a user with the patient role.
type PatientProfile struct {
	BaseModel
	UserID         string     `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Gender         string     `gorm:"size:10" json:"gender"`
	ContactNumber  string     `gorm:"size:20" json:"contactNumber"`
	MedicalHistory string     `gorm:"type:text" json:"medicalHistory"`

	User         User            `gorm:"foreignKey:UserID" json:"-"`
	Appointments []Appointment   `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	Reports      []PatientReport `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	Complaints   []Complaint     `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// FullName returns the user's display name, falling back to the username.
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
