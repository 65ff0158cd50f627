package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"psychcare-server/internal/config"
	"psychcare-server/internal/middleware"
	"psychcare-server/internal/models"
	"psychcare-server/internal/scheduling"
	"psychcare-server/internal/utils"
)

// CallHandler manages joining and ending video call sessions.
type CallHandler struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger zerolog.Logger
}

// NewCallHandler creates a new CallHandler.
func NewCallHandler(db *gorm.DB, cfg *config.Config, logger zerolog.Logger) *CallHandler {
	return &CallHandler{DB: db, Cfg: cfg, Logger: logger}
}

// JoinCall admits the authenticated patient or doctor into the call for
// one of their appointments. The window opens five minutes before the
// scheduled start on the appointment day; the first join moves the
// session to in_progress and stamps its start time. Re-joining an
// in-progress call is a no-op.
func (h *CallHandler) JoinCall(c *gin.Context) {
	var appointment models.Appointment
	if err := h.DB.Preload("Doctor").Preload("Patient").Preload("CallSession").
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

	switch role {
	case models.RolePatient:
		if appointment.Patient.UserID != userID {
			utils.Forbidden(c, "You are not authorized to join this call")
			return
		}
	case models.RoleDoctor:
		if appointment.Doctor.UserID != userID {
			utils.Forbidden(c, "You are not authorized to join this call")
			return
		}
		if appointment.Status != models.StatusConfirmed {
			utils.BadRequest(c, "Appointment must be confirmed before joining")
			return
		}
	default:
		utils.Forbidden(c, "You are not authorized to join this call")
		return
	}

	if err := scheduling.JoinAllowed(time.Now(), appointment.AppointmentDate, appointment.StartTime); err != nil {
		utils.DomainError(c, err)
		return
	}

	session := appointment.CallSession
	if session == nil {
		session = &models.CallSession{
			AppointmentID: appointment.ID,
			Status:        models.CallScheduled,
		}
		if err := h.DB.Create(session).Error; err != nil {
			utils.InternalServerError(c, "Failed to create call session: "+err.Error())
			return
		}
	}

	if session.Status == models.CallScheduled {
		now := time.Now()
		session.Status = models.CallInProgress
		session.StartTime = &now
		if err := h.DB.Save(session).Error; err != nil {
			utils.InternalServerError(c, "Failed to start call session: "+err.Error())
			return
		}
		h.Logger.Info().
			Str("appointment_id", appointment.ID).
			Str("user_id", userID).
			Msg("call session started")
	}

	utils.Success(c, "Joined call successfully", gin.H{
		"callSession": session,
		"roomName":    fmt.Sprintf("psychcare-%s", appointment.ID),
	})
}

// EndCall finishes the call for an appointment. Either participant may
// end it; the session is completed, a recording path is recorded, and
// the appointment itself moves to completed, all in one transaction.
func (h *CallHandler) EndCall(c *gin.Context) {
	var appointment models.Appointment
	if err := h.DB.Preload("Doctor").Preload("Patient").
		First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	if appointment.Doctor.UserID != userID && appointment.Patient.UserID != userID {
		utils.Forbidden(c, "You are not authorized to end this call")
		return
	}

	var session models.CallSession
	if err := h.DB.First(&session, "appointment_id = ?", appointment.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Call session not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	now := time.Now()
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		session.Status = models.CallCompleted
		session.EndTime = &now
		session.RecordingPath = fmt.Sprintf("%s/recording_%s.mp3", h.Cfg.RecordingDir, session.ID)
		if err := tx.Save(&session).Error; err != nil {
			return err
		}
		return tx.Model(&models.Appointment{}).Where("id = ?", appointment.ID).
			Update("status", models.StatusCompleted).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to end call session: "+err.Error())
		return
	}

	h.Logger.Info().
		Str("appointment_id", appointment.ID).
		Str("user_id", userID).
		Msg("call session ended")

	utils.Success(c, "Call ended successfully", session)
}
