package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"psychcare-server/internal/cache"
	"psychcare-server/internal/config"
	"psychcare-server/internal/mailer"
	"psychcare-server/internal/middleware"
	"psychcare-server/internal/models"
	"psychcare-server/internal/scheduling"
	"psychcare-server/internal/utils"
)

// AppointmentHandler handles slot queries and the appointment lifecycle.
type AppointmentHandler struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Cache  *cache.SlotCache
	Mailer *mailer.Mailer
	Logger zerolog.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, cfg *config.Config, slotCache *cache.SlotCache, m *mailer.Mailer, logger zerolog.Logger) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Cfg: cfg, Cache: slotCache, Mailer: m, Logger: logger}
}

func (h *AppointmentHandler) slotSize() time.Duration {
	return time.Duration(h.Cfg.SlotDurationMinutes) * time.Minute
}

// windowsFor loads the doctor's active windows matching a date: the
// recurring set for the date's weekday unioned with one-off windows for
// the exact date.
func (h *AppointmentHandler) windowsFor(doctorID string, date time.Time) ([]models.Availability, error) {
	var windows []models.Availability
	err := h.DB.Where("doctor_id = ? AND is_active = ? AND day_of_week = ? AND is_recurring = ?",
		doctorID, true, scheduling.Weekday(date), true).Find(&windows).Error
	if err != nil {
		return nil, err
	}

	var specific []models.Availability
	err = h.DB.Where("doctor_id = ? AND is_active = ? AND specific_date = ? AND is_recurring = ?",
		doctorID, true, date, false).Find(&specific).Error
	if err != nil {
		return nil, err
	}

	return append(windows, specific...), nil
}

// bookedFor loads the doctor's appointments on a date that still block
// slots (pending or confirmed).
func (h *AppointmentHandler) bookedFor(tx *gorm.DB, doctorID string, date time.Time) ([]models.Appointment, error) {
	var booked []models.Appointment
	err := tx.Where("doctor_id = ? AND appointment_date = ? AND status IN ?",
		doctorID, date, []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Find(&booked).Error
	return booked, err
}

// AvailableSlotsRequest represents the slot query body.
type AvailableSlotsRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
}

// GetAvailableSlots computes the free slots for a doctor on a date.
func (h *AppointmentHandler) GetAvailableSlots(c *gin.Context) {
	var req AvailableSlotsRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, ok := parseDateParam(c, req.Date)
	if !ok {
		return
	}
	if date.Before(scheduling.StartOfDay(time.Now())) {
		utils.BadRequest(c, "Date cannot be in the past")
		return
	}

	var doctor models.DoctorProfile
	if err := h.DB.First(&doctor, "id = ? AND is_approved = ?", req.DoctorID, true).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if slots, hit := h.Cache.Get(c.Request.Context(), doctor.ID, req.Date); hit {
		utils.Success(c, "Available slots fetched successfully", gin.H{"availableSlots": slots})
		return
	}

	windows, err := h.windowsFor(doctor.ID, date)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch availability: "+err.Error())
		return
	}

	booked, err := h.bookedFor(h.DB, doctor.ID, date)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch bookings: "+err.Error())
		return
	}

	slots, err := scheduling.FreeSlots(windows, booked, h.slotSize())
	if err != nil {
		h.Logger.Error().Err(err).Str("doctor_id", doctor.ID).Msg("availability data is malformed")
		utils.DomainError(c, err)
		return
	}

	h.Cache.Set(c.Request.Context(), doctor.ID, req.Date, slots)

	utils.Success(c, "Available slots fetched successfully", gin.H{"availableSlots": slots})
}

// BookAppointmentRequest represents the request body for booking a slot.
type BookAppointmentRequest struct {
	Date  string `json:"date" binding:"required"`
	Slot  string `json:"slot" binding:"required"` // "HH:MM - HH:MM" label
	Notes string `json:"notes"`
}

// BookAppointment books a slot with a doctor for the authenticated
// patient. The appointment and its call session are created in one
// transaction; the slot is re-validated against concurrent bookings
// inside that transaction before the insert.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	patient, ok := patientProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, ok := parseDateParam(c, req.Date)
	if !ok {
		return
	}
	if date.Before(scheduling.StartOfDay(time.Now())) {
		utils.BadRequest(c, "Appointment date cannot be in the past")
		return
	}

	startTime, endTime, err := scheduling.ParseSlotLabel(req.Slot)
	if err != nil {
		utils.DomainError(c, err)
		return
	}

	var doctor models.DoctorProfile
	if err := h.DB.Preload("User").First(&doctor, "id = ? AND is_approved = ?", c.Param("doctorId"), true).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	windows, err := h.windowsFor(doctor.ID, date)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch availability: "+err.Error())
		return
	}

	appointment := models.Appointment{
		DoctorID:        doctor.ID,
		PatientID:       patient.ID,
		AppointmentDate: date,
		StartTime:       startTime,
		EndTime:         endTime,
		Status:          models.StatusPending,
		Notes:           req.Notes,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		booked, err := h.bookedFor(tx, doctor.ID, date)
		if err != nil {
			return err
		}

		// The chosen label must still be one of the free slots.
		slots, err := scheduling.FreeSlots(windows, booked, h.slotSize())
		if err != nil {
			return err
		}
		wanted := fmt.Sprintf("%s - %s", startTime, endTime)
		available := false
		for _, slot := range slots {
			if slot == wanted {
				available = true
				break
			}
		}
		if !available {
			return fmt.Errorf("%w: slot %s is no longer available", scheduling.ErrInvalidTransition, wanted)
		}

		// Belt and braces against a raced overlapping write.
		for _, other := range booked {
			overlap, err := scheduling.Overlaps(startTime, endTime, other.StartTime, other.EndTime)
			if err != nil {
				return err
			}
			if overlap {
				return fmt.Errorf("%w: slot %s is no longer available", scheduling.ErrInvalidTransition, wanted)
			}
		}

		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}
		return tx.Create(&models.CallSession{
			AppointmentID: appointment.ID,
			Status:        models.CallScheduled,
		}).Error
	})
	if err != nil {
		utils.DomainError(c, err)
		return
	}

	h.Cache.Invalidate(c.Request.Context(), doctor.ID, req.Date)

	go h.sendBookingMail(patient.UserID, &doctor, &appointment)

	utils.Created(c, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) sendBookingMail(patientUserID string, doctor *models.DoctorProfile, appointment *models.Appointment) {
	var patientUser models.User
	if err := h.DB.First(&patientUser, "id = ?", patientUserID).Error; err != nil {
		h.Logger.Warn().Err(err).Msg("booking mail: patient lookup failed")
		return
	}

	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment with Dr. %s on %s at %s has been received and is awaiting confirmation.\n\nPsychCare Clinic",
		patientUser.FullName(), doctor.User.FullName(),
		appointment.AppointmentDate.Format("January 2, 2006"), appointment.StartTime)

	if err := h.Mailer.Send(patientUser.Email, "Appointment received", body, "", nil); err != nil {
		h.Logger.Warn().Err(err).Str("appointment_id", appointment.ID).Msg("booking mail failed")
	}
}

// GetPatientAppointments lists the authenticated patient's appointments,
// split into upcoming and past.
func (h *AppointmentHandler) GetPatientAppointments(c *gin.Context) {
	patient, ok := patientProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	today := scheduling.StartOfDay(time.Now())

	var upcoming []models.Appointment
	if err := h.DB.Preload("CallSession").
		Where("patient_id = ? AND appointment_date >= ?", patient.ID, today).
		Order("appointment_date, start_time").Find(&upcoming).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	var past []models.Appointment
	if err := h.DB.Preload("CallSession").
		Where("patient_id = ? AND appointment_date < ?", patient.ID, today).
		Order("appointment_date desc, start_time desc").Find(&past).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", gin.H{
		"upcoming": upcoming,
		"past":     past,
	})
}

// CancelAppointment cancels the patient's own appointment while it is
// still pending or confirmed.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	patient, ok := patientProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if appointment.PatientID != patient.ID {
		utils.Forbidden(c, "You are not authorized to cancel this appointment")
		return
	}

	if err := scheduling.CanPatientCancel(appointment.Status); err != nil {
		utils.DomainError(c, err)
		return
	}

	appointment.Status = models.StatusCancelled
	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to cancel appointment: "+err.Error())
		return
	}

	h.Cache.Invalidate(c.Request.Context(), appointment.DoctorID, appointment.AppointmentDate.Format(dateLayout))

	utils.Success(c, "Appointment cancelled successfully", appointment)
}

// GetDoctorAppointments lists the authenticated doctor's appointments.
func (h *AppointmentHandler) GetDoctorAppointments(c *gin.Context) {
	doctor, ok := doctorProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var appointments []models.Appointment
	if err := h.DB.Preload("CallSession").
		Where("doctor_id = ?", doctor.ID).
		Order("appointment_date desc, start_time").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// UpdateAppointmentStatusRequest represents the status-change body.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required"`
	Notes  string                   `json:"notes"`
}

// UpdateAppointmentStatus lets the owning doctor set the appointment
// status to any value in the enumerated set. This manual override may
// skip intermediate states.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	doctor, ok := doctorProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := scheduling.ValidateStatus(req.Status); err != nil {
		utils.DomainError(c, err)
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if appointment.DoctorID != doctor.ID {
		utils.Forbidden(c, "You are not authorized to update this appointment")
		return
	}

	appointment.Status = req.Status
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}

	h.Cache.Invalidate(c.Request.Context(), appointment.DoctorID, appointment.AppointmentDate.Format(dateLayout))

	utils.Success(c, "Appointment status updated successfully", appointment)
}

// GetAppointmentByID fetches one appointment visible to the involved
// patient, the involved doctor, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	var appointment models.Appointment
	if err := h.DB.Preload("CallSession").Preload("Doctor.User").Preload("Patient.User").
		First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	involved := appointment.Doctor.UserID == userID || appointment.Patient.UserID == userID
	if role != models.RoleAdmin && !involved {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}
