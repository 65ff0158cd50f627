package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"psychcare-server/internal/mailer"
	"psychcare-server/internal/models"
	"psychcare-server/internal/utils"
)

// AdminHandler covers the clinic administration surface: doctor
// approval, user management, and oversight listings.
type AdminHandler struct {
	DB     *gorm.DB
	Mailer *mailer.Mailer
	Logger zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *gorm.DB, m *mailer.Mailer, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{DB: db, Mailer: m, Logger: logger}
}

// Dashboard returns headline counts and the most recent appointments.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	var (
		totalDoctors      int64
		pendingDoctors    int64
		totalPatients     int64
		totalAppointments int64
		openComplaints    int64
	)

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{h.DB.Model(&models.DoctorProfile{}).Where("is_approved = ?", true), &totalDoctors},
		{h.DB.Model(&models.DoctorProfile{}).Where("is_approved = ?", false), &pendingDoctors},
		{h.DB.Model(&models.PatientProfile{}), &totalPatients},
		{h.DB.Model(&models.Appointment{}), &totalAppointments},
		{h.DB.Model(&models.Complaint{}).Where("status IN ?", []models.ComplaintStatus{models.ComplaintOpen, models.ComplaintUnderReview}), &openComplaints},
	}
	for _, count := range counts {
		if err := count.query.Count(count.dest).Error; err != nil {
			utils.InternalServerError(c, "Failed to build dashboard: "+err.Error())
			return
		}
	}

	var recent []models.Appointment
	if err := h.DB.Preload("Doctor.User").Preload("Patient.User").
		Order("created_at desc").Limit(10).Find(&recent).Error; err != nil {
		utils.InternalServerError(c, "Failed to build dashboard: "+err.Error())
		return
	}

	utils.Success(c, "Dashboard fetched successfully", gin.H{
		"totalDoctors":       totalDoctors,
		"pendingDoctors":     pendingDoctors,
		"totalPatients":      totalPatients,
		"totalAppointments":  totalAppointments,
		"openComplaints":     openComplaints,
		"recentAppointments": recent,
	})
}

// ListDoctors lists all doctor profiles, approved or not. Use
// ?approved=true|false to filter.
func (h *AdminHandler) ListDoctors(c *gin.Context) {
	query := h.DB.Preload("User").Order("created_at desc")
	switch c.Query("approved") {
	case "true":
		query = query.Where("is_approved = ?", true)
	case "false":
		query = query.Where("is_approved = ?", false)
	}

	var doctors []models.DoctorProfile
	if err := query.Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	utils.Success(c, "Doctors fetched successfully", doctors)
}

// ListPatients lists all patient profiles.
func (h *AdminHandler) ListPatients(c *gin.Context) {
	var patients []models.PatientProfile
	if err := h.DB.Preload("User").Order("created_at desc").Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	utils.Success(c, "Patients fetched successfully", patients)
}

// ApproveDoctor marks a doctor profile approved so the doctor can log in.
func (h *AdminHandler) ApproveDoctor(c *gin.Context) {
	var doctor models.DoctorProfile
	if err := h.DB.Preload("User").First(&doctor, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if doctor.IsApproved {
		utils.Success(c, "Doctor is already approved", doctor)
		return
	}

	doctor.IsApproved = true
	if err := h.DB.Save(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to approve doctor: "+err.Error())
		return
	}

	h.Logger.Info().Str("doctor_id", doctor.ID).Msg("doctor approved")

	go h.notifyDoctor(&doctor.User, "Your PsychCare account has been approved",
		fmt.Sprintf("Dear Dr. %s,\n\nYour account has been approved. You can now sign in and set your availability.\n\nPsychCare Clinic", doctor.User.FullName()))

	utils.Success(c, "Doctor approved successfully", doctor)
}

// RejectDoctor removes an unapproved doctor application entirely. The
// user row is deleted and the profile follows by cascade.
func (h *AdminHandler) RejectDoctor(c *gin.Context) {
	var doctor models.DoctorProfile
	if err := h.DB.Preload("User").First(&doctor, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if doctor.IsApproved {
		utils.BadRequest(c, "Cannot reject an approved doctor; block the user instead")
		return
	}

	user := doctor.User
	if err := h.DB.Delete(&models.User{}, "id = ?", doctor.UserID).Error; err != nil {
		utils.InternalServerError(c, "Failed to reject doctor: "+err.Error())
		return
	}

	h.Logger.Info().Str("doctor_id", doctor.ID).Msg("doctor application rejected")

	go h.notifyDoctor(&user, "Your PsychCare application",
		fmt.Sprintf("Dear Dr. %s,\n\nWe are sorry to inform you that your application was not approved.\n\nPsychCare Clinic", user.FullName()))

	utils.Success(c, "Doctor application rejected", nil)
}

func (h *AdminHandler) notifyDoctor(user *models.User, subject, body string) {
	if err := h.Mailer.Send(user.Email, subject, body, "", nil); err != nil {
		h.Logger.Warn().Err(err).Str("user_id", user.ID).Msg("doctor notification mail failed")
	}
}

// BlockUser toggles a user's active flag. Blocked users cannot log in;
// admins cannot be blocked.
func (h *AdminHandler) BlockUser(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if user.Role == models.RoleAdmin {
		utils.Forbidden(c, "Admin accounts cannot be blocked")
		return
	}

	user.IsActive = !user.IsActive
	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update user: "+err.Error())
		return
	}

	action := "blocked"
	if user.IsActive {
		action = "unblocked"
	}
	h.Logger.Info().Str("user_id", user.ID).Str("action", action).Msg("user access changed")

	utils.Success(c, "User "+action+" successfully", user.Sanitize())
}

// DeleteUser removes a user and, by cascade, their profile and records.
// Admin accounts cannot be deleted.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if user.Role == models.RoleAdmin {
		utils.Forbidden(c, "Admin accounts cannot be deleted")
		return
	}

	if err := h.DB.Delete(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete user: "+err.Error())
		return
	}

	h.Logger.Info().Str("user_id", user.ID).Msg("user deleted")

	utils.Success(c, "User deleted successfully", nil)
}

// ListAppointments lists every appointment, optionally filtered by
// ?date=2006-01-02 and ?status=.
func (h *AdminHandler) ListAppointments(c *gin.Context) {
	query := h.DB.Preload("Doctor.User").Preload("Patient.User").Preload("CallSession").
		Order("appointment_date desc, start_time")

	if value := c.Query("date"); value != "" {
		date, ok := parseDateParam(c, value)
		if !ok {
			return
		}
		query = query.Where("appointment_date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// ListRecordings lists completed call sessions that have a recording.
func (h *AdminHandler) ListRecordings(c *gin.Context) {
	var sessions []models.CallSession
	if err := h.DB.Preload("Appointment").
		Where("status = ? AND recording_path <> ''", models.CallCompleted).
		Order("end_time desc").Find(&sessions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch recordings: "+err.Error())
		return
	}

	utils.Success(c, "Recordings fetched successfully", sessions)
}
