package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"psychcare-server/internal/cache"
	"psychcare-server/internal/models"
	"psychcare-server/internal/utils"
)

// AvailabilityHandler lets doctors manage their bookable windows.
type AvailabilityHandler struct {
	DB    *gorm.DB
	Cache *cache.SlotCache
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(db *gorm.DB, slotCache *cache.SlotCache) *AvailabilityHandler {
	return &AvailabilityHandler{DB: db, Cache: slotCache}
}

// SetAvailabilityRequest declares the windows for one weekday or one
// specific date. Hours are "HH:00" slot starts; each becomes a one-hour
// window.
type SetAvailabilityRequest struct {
	Type         string   `json:"type" binding:"required,oneof=recurring specific"`
	DayOfWeek    *int     `json:"dayOfWeek" binding:"omitempty,min=0,max=6"`
	SpecificDate string   `json:"specificDate"`
	Hours        []string `json:"hours" binding:"required,min=1"`
}

// SetAvailability replaces the doctor's windows for the given weekday or
// date. Existing windows for that day/date are cleared and the new ones
// inserted in the same transaction, so overlapping duplicates cannot
// accumulate.
func (h *AvailabilityHandler) SetAvailability(c *gin.Context) {
	profile, ok := doctorProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var req SetAvailabilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	recurring := req.Type == "recurring"
	var specificDate time.Time
	if recurring {
		if req.DayOfWeek == nil {
			utils.BadRequest(c, "dayOfWeek is required for recurring availability")
			return
		}
	} else {
		if req.SpecificDate == "" {
			utils.BadRequest(c, "specificDate is required for specific availability")
			return
		}
		var ok bool
		if specificDate, ok = parseDateParam(c, req.SpecificDate); !ok {
			return
		}
	}

	windows := make([]models.Availability, 0, len(req.Hours))
	for _, hourLabel := range req.Hours {
		var hour int
		if _, err := fmt.Sscanf(hourLabel, "%d:00", &hour); err != nil || hour < 0 || hour > 23 {
			utils.BadRequest(c, "Invalid hour label: "+hourLabel)
			return
		}
		w := models.Availability{
			DoctorID:    profile.ID,
			StartTime:   fmt.Sprintf("%02d:00", hour),
			EndTime:     fmt.Sprintf("%02d:00", hour+1),
			IsActive:    true,
			IsRecurring: recurring,
		}
		if recurring {
			day := *req.DayOfWeek
			w.DayOfWeek = &day
		} else {
			date := specificDate
			w.SpecificDate = &date
		}
		windows = append(windows, w)
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		clear := tx.Where("doctor_id = ? AND is_recurring = ?", profile.ID, recurring)
		if recurring {
			clear = clear.Where("day_of_week = ?", *req.DayOfWeek)
		} else {
			clear = clear.Where("specific_date = ?", specificDate)
		}
		if err := clear.Delete(&models.Availability{}).Error; err != nil {
			return err
		}
		return tx.Create(&windows).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to save availability: "+err.Error())
		return
	}

	h.Cache.InvalidateDoctor(c.Request.Context(), profile.ID)

	utils.Created(c, fmt.Sprintf("%d time slots added", len(windows)), windows)
}

// ListAvailability returns the doctor's recurring and specific windows.
func (h *AvailabilityHandler) ListAvailability(c *gin.Context) {
	profile, ok := doctorProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var recurring []models.Availability
	if err := h.DB.Where("doctor_id = ? AND is_recurring = ?", profile.ID, true).
		Order("day_of_week, start_time").Find(&recurring).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch availability: "+err.Error())
		return
	}

	var specific []models.Availability
	if err := h.DB.Where("doctor_id = ? AND is_recurring = ?", profile.ID, false).
		Order("specific_date, start_time").Find(&specific).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch availability: "+err.Error())
		return
	}

	utils.Success(c, "Availability fetched successfully", gin.H{
		"recurring": recurring,
		"specific":  specific,
	})
}

// DeleteAvailability removes one window owned by the doctor.
func (h *AvailabilityHandler) DeleteAvailability(c *gin.Context) {
	profile, ok := doctorProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var window models.Availability
	if err := h.DB.First(&window, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Availability window not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if window.DoctorID != profile.ID {
		utils.Forbidden(c, "You are not authorized to delete this availability window")
		return
	}

	if err := h.DB.Delete(&window).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete availability: "+err.Error())
		return
	}

	h.Cache.InvalidateDoctor(c.Request.Context(), profile.ID)

	utils.Success(c, "Availability deleted successfully", nil)
}
