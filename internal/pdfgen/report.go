// Package pdfgen renders patient reports to PDF documents.
package pdfgen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"psychcare-server/internal/models"
)

// RenderReport produces the PDF bytes for a patient report. The caller
// decides where (and whether) to persist them; a render failure must
// never block the report record itself.
func RenderReport(report *models.PatientReport, patient *models.User, doctor *models.User, specialization string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(25, 60, 110)
	pdf.CellFormat(0, 10, "PsychCare Tele-Counseling Clinic", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "Patient Session Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	addField(pdf, "Report Date", report.ReportDate.Format("January 2, 2006"))
	addField(pdf, "Patient", patient.FullName())
	addField(pdf, "Doctor", doctor.FullName())
	addField(pdf, "Specialization", specialization)
	pdf.Ln(4)

	addSection(pdf, "Diagnosis", report.Diagnosis)
	addSection(pdf, "Treatment Plan", report.TreatmentPlan)
	addSection(pdf, "Recommendations", report.Recommendations)

	if report.NextAppointment != nil {
		pdf.Ln(2)
		addField(pdf, "Next Appointment", report.NextAppointment.Format("January 2, 2006"))
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "This is a computer generated report", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteReport renders the report and writes it under dir, returning the
// bare file name stored on the report record.
func WriteReport(dir string, report *models.PatientReport, patient *models.User, doctor *models.User, specialization string) (string, error) {
	data, err := RenderReport(report, patient, doctor, specialization)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}
	name := fmt.Sprintf("report_%s.pdf", report.ID)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing report pdf: %w", err)
	}
	return name, nil
}

func addField(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(45, 7, label, "1", 0, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 7, value, "1", 1, "", false, 0, "")
}

func addSection(pdf *gofpdf.Fpdf, title, body string) {
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if body == "" {
		body = "-"
	}
	pdf.MultiCell(0, 5, body, "", "L", false)
	pdf.Ln(2)
}
