package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"psychcare-server/internal/models"
	"psychcare-server/internal/utils"
)

// DoctorHandler serves the public doctor directory.
type DoctorHandler struct {
	DB *gorm.DB
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{DB: db}
}

// DoctorListing is the public view of an approved doctor.
type DoctorListing struct {
	DoctorID        string `json:"doctorId"`
	Name            string `json:"name"`
	Specialization  string `json:"specialization"`
	Qualification   string `json:"qualification"`
	ExperienceYears int    `json:"experienceYears"`
	Bio             string `json:"bio"`
	ProfilePhoto    string `json:"profilePhoto"`
}

// ListDoctors returns approved doctors, optionally filtered by the
// specialization query parameter.
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	query := h.DB.Preload("User").Where("is_approved = ?", true)
	if spec := c.Query("specialization"); spec != "" {
		query = query.Where("specialization = ?", spec)
	}

	var profiles []models.DoctorProfile
	if err := query.Find(&profiles).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	listings := make([]DoctorListing, 0, len(profiles))
	for _, p := range profiles {
		listings = append(listings, DoctorListing{
			DoctorID:        p.ID,
			Name:            p.User.FullName(),
			Specialization:  p.Specialization,
			Qualification:   p.Qualification,
			ExperienceYears: p.ExperienceYears,
			Bio:             p.Bio,
			ProfilePhoto:    p.ProfilePhoto,
		})
	}

	utils.Success(c, "Doctors fetched successfully", listings)
}

// ListSpecializations returns the distinct specializations of approved
// doctors, for directory filtering.
func (h *DoctorHandler) ListSpecializations(c *gin.Context) {
	var specializations []string
	err := h.DB.Model(&models.DoctorProfile{}).
		Where("is_approved = ?", true).
		Distinct().
		Pluck("specialization", &specializations).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch specializations: "+err.Error())
		return
	}

	utils.Success(c, "Specializations fetched successfully", specializations)
}
