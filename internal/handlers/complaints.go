package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"psychcare-server/internal/models"
	"psychcare-server/internal/scheduling"
	"psychcare-server/internal/utils"
)

// ComplaintHandler manages patient complaints and their admin workflow.
type ComplaintHandler struct {
	DB *gorm.DB
}

// NewComplaintHandler creates a new ComplaintHandler.
func NewComplaintHandler(db *gorm.DB) *ComplaintHandler {
	return &ComplaintHandler{DB: db}
}

// CreateComplaintRequest represents a new complaint body.
type CreateComplaintRequest struct {
	Subject     string `json:"subject" binding:"required,max=100"`
	Description string `json:"description" binding:"required"`
}

// CreateComplaint files a complaint for the authenticated patient.
func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	patient, ok := patientProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var req CreateComplaintRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	complaint := models.Complaint{
		PatientID:   patient.ID,
		Subject:     req.Subject,
		Description: req.Description,
		Status:      models.ComplaintOpen,
	}

	if err := h.DB.Create(&complaint).Error; err != nil {
		utils.InternalServerError(c, "Failed to file complaint: "+err.Error())
		return
	}

	utils.Created(c, "Complaint filed successfully", complaint)
}

// GetPatientComplaints lists the authenticated patient's complaints.
func (h *ComplaintHandler) GetPatientComplaints(c *gin.Context) {
	patient, ok := patientProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var complaints []models.Complaint
	if err := h.DB.Where("patient_id = ?", patient.ID).
		Order("created_at desc").Find(&complaints).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch complaints: "+err.Error())
		return
	}

	utils.Success(c, "Complaints fetched successfully", complaints)
}

// ListComplaints lists all complaints for admins, optionally filtered
// by ?status=.
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	query := h.DB.Preload("Patient.User").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		if err := scheduling.ValidateComplaintStatus(models.ComplaintStatus(status)); err != nil {
			utils.DomainError(c, err)
			return
		}
		query = query.Where("status = ?", status)
	}

	var complaints []models.Complaint
	if err := query.Find(&complaints).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch complaints: "+err.Error())
		return
	}

	utils.Success(c, "Complaints fetched successfully", complaints)
}

// UpdateComplaintRequest represents the admin update body.
type UpdateComplaintRequest struct {
	Status        models.ComplaintStatus `json:"status" binding:"required"`
	AdminResponse string                 `json:"adminResponse"`
}

// UpdateComplaint lets an admin move a complaint through its workflow.
// Reaching resolved or closed stamps the resolution time.
func (h *ComplaintHandler) UpdateComplaint(c *gin.Context) {
	var req UpdateComplaintRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := scheduling.ValidateComplaintStatus(req.Status); err != nil {
		utils.DomainError(c, err)
		return
	}

	var complaint models.Complaint
	if err := h.DB.First(&complaint, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Complaint not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	complaint.Status = req.Status
	if req.AdminResponse != "" {
		complaint.AdminResponse = req.AdminResponse
	}
	if req.Status == models.ComplaintResolved || req.Status == models.ComplaintClosed {
		now := time.Now()
		complaint.ResolvedAt = &now
	} else {
		complaint.ResolvedAt = nil
	}

	if err := h.DB.Save(&complaint).Error; err != nil {
		utils.InternalServerError(c, "Failed to update complaint: "+err.Error())
		return
	}

	utils.Success(c, "Complaint updated successfully", complaint)
}
