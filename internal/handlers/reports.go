package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"psychcare-server/internal/config"
	"psychcare-server/internal/mailer"
	"psychcare-server/internal/middleware"
	"psychcare-server/internal/models"
	"psychcare-server/internal/pdfgen"
	"psychcare-server/internal/scheduling"
	"psychcare-server/internal/utils"
)

// ReportHandler manages patient reports written by doctors after a
// completed appointment.
type ReportHandler struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Mailer *mailer.Mailer
	Logger zerolog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(db *gorm.DB, cfg *config.Config, m *mailer.Mailer, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{DB: db, Cfg: cfg, Mailer: m, Logger: logger}
}

// CreateReportRequest represents the report upsert body.
type CreateReportRequest struct {
	Diagnosis       string `json:"diagnosis" binding:"required"`
	TreatmentPlan   string `json:"treatmentPlan" binding:"required"`
	Recommendations string `json:"recommendations"`
	NextAppointment string `json:"nextAppointment"` // optional "2006-01-02"
}

// CreateReport writes or rewrites the report for a completed
// appointment. There is at most one report per appointment; writing
// again replaces the previous content. PDF rendering and patient
// notification are best effort and never fail the request.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	doctor, ok := doctorProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var req CreateReportRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var nextAppointment *time.Time
	if req.NextAppointment != "" {
		next, ok := parseDateParam(c, req.NextAppointment)
		if !ok {
			return
		}
		nextAppointment = &next
	}

	var appointment models.Appointment
	if err := h.DB.Preload("Patient.User").First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if appointment.DoctorID != doctor.ID {
		utils.Forbidden(c, "You are not authorized to write a report for this appointment")
		return
	}

	if err := scheduling.CanCreateReport(appointment.Status); err != nil {
		utils.DomainError(c, err)
		return
	}

	var report models.PatientReport
	err := h.DB.Where("appointment_id = ?", appointment.ID).First(&report).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		report = models.PatientReport{
			PatientID:     appointment.PatientID,
			DoctorID:      doctor.ID,
			AppointmentID: appointment.ID,
		}
	case err != nil:
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	report.ReportDate = time.Now()
	report.Diagnosis = req.Diagnosis
	report.TreatmentPlan = req.TreatmentPlan
	report.Recommendations = req.Recommendations
	report.NextAppointment = nextAppointment

	if err := h.DB.Save(&report).Error; err != nil {
		utils.InternalServerError(c, "Failed to save report: "+err.Error())
		return
	}

	h.renderAndNotify(&report, &appointment, doctor)

	utils.Created(c, "Report saved successfully", report)
}

// renderAndNotify generates the PDF and mails it to the patient. Both
// steps are best effort; failures are logged and the stored report
// stays valid without them.
func (h *ReportHandler) renderAndNotify(report *models.PatientReport, appointment *models.Appointment, doctor *models.DoctorProfile) {
	var doctorUser models.User
	if err := h.DB.First(&doctorUser, "id = ?", doctor.UserID).Error; err != nil {
		h.Logger.Warn().Err(err).Str("report_id", report.ID).Msg("report pdf: doctor lookup failed")
		return
	}

	patientUser := appointment.Patient.User

	name, err := pdfgen.WriteReport(h.Cfg.ReportDir, report, &patientUser, &doctorUser, doctor.Specialization)
	if err != nil {
		h.Logger.Warn().Err(err).Str("report_id", report.ID).Msg("report pdf generation failed")
		return
	}

	report.PDFPath = name
	if err := h.DB.Model(report).Update("pdf_path", name).Error; err != nil {
		h.Logger.Warn().Err(err).Str("report_id", report.ID).Msg("report pdf path update failed")
	}

	pdfBytes, err := pdfgen.RenderReport(report, &patientUser, &doctorUser, doctor.Specialization)
	if err == nil {
		body := fmt.Sprintf(
			"Dear %s,\n\nDr. %s has written a report for your appointment on %s. The report is attached.\n\nPsychCare Clinic",
			patientUser.FullName(), doctorUser.FullName(),
			appointment.AppointmentDate.Format("January 2, 2006"))
		if err := h.Mailer.Send(patientUser.Email, "Your counseling report", body, name, pdfBytes); err != nil {
			h.Logger.Warn().Err(err).Str("report_id", report.ID).Msg("report mail failed")
		}
	}
}

// GetDoctorReports lists all reports written by the authenticated doctor.
func (h *ReportHandler) GetDoctorReports(c *gin.Context) {
	doctor, ok := doctorProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var reports []models.PatientReport
	if err := h.DB.Preload("Patient.User").
		Where("doctor_id = ?", doctor.ID).
		Order("report_date desc").Find(&reports).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch reports: "+err.Error())
		return
	}

	utils.Success(c, "Reports fetched successfully", reports)
}

// GetPatientReports lists all reports about the authenticated patient.
func (h *ReportHandler) GetPatientReports(c *gin.Context) {
	patient, ok := patientProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var reports []models.PatientReport
	if err := h.DB.Preload("Doctor.User").
		Where("patient_id = ?", patient.ID).
		Order("report_date desc").Find(&reports).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch reports: "+err.Error())
		return
	}

	utils.Success(c, "Reports fetched successfully", reports)
}

// GetReportByID fetches one report, visible to its patient, its doctor,
// or an admin.
func (h *ReportHandler) GetReportByID(c *gin.Context) {
	var report models.PatientReport
	if err := h.DB.Preload("Doctor.User").Preload("Patient.User").
		First(&report, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Report not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	involved := report.Doctor.UserID == userID || report.Patient.UserID == userID
	if role != models.RoleAdmin && !involved {
		utils.Forbidden(c, "You are not authorized to view this report")
		return
	}

	utils.Success(c, "Report fetched successfully", report)
}
