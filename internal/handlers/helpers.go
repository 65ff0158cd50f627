package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"psychcare-server/internal/middleware"
	"psychcare-server/internal/models"
	"psychcare-server/internal/utils"
)

const dateLayout = "2006-01-02"

// doctorProfileFromContext loads the doctor profile owned by the
// authenticated user. Writes the error response itself on failure.
func doctorProfileFromContext(c *gin.Context, db *gorm.DB) (*models.DoctorProfile, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	var profile models.DoctorProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Forbidden(c, "Doctor profile not found for this account")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &profile, true
}

// patientProfileFromContext loads the patient profile owned by the
// authenticated user. Writes the error response itself on failure.
func patientProfileFromContext(c *gin.Context, db *gorm.DB) (*models.PatientProfile, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	var profile models.PatientProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Forbidden(c, "Patient profile not found for this account")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &profile, true
}

// parseDateParam parses a "YYYY-MM-DD" value, responding with a 400 on
// failure.
func parseDateParam(c *gin.Context, value string) (time.Time, bool) {
	date, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}
