package pdfgen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"psychcare-server/internal/models"
)

func sampleReport() (*models.PatientReport, *models.User, *models.User) {
	next := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)
	report := &models.PatientReport{
		ReportDate:      time.Date(2025, 6, 30, 10, 0, 0, 0, time.UTC),
		Diagnosis:       "Generalized anxiety",
		TreatmentPlan:   "Weekly CBT sessions",
		Recommendations: "Daily breathing exercises",
		NextAppointment: &next,
	}
	report.ID = "11111111-2222-3333-4444-555555555555"

	patient := &models.User{FirstName: "Ada", LastName: "Okafor", Username: "ada"}
	doctor := &models.User{FirstName: "Lena", LastName: "Brandt", Username: "lbrandt"}
	return report, patient, doctor
}

func TestRenderReport(t *testing.T) {
	report, patient, doctor := sampleReport()

	data, err := RenderReport(report, patient, doctor, "Clinical Psychology")
	if err != nil {
		t.Fatalf("RenderReport: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PDF output")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestWriteReport(t *testing.T) {
	report, patient, doctor := sampleReport()
	dir := t.TempDir()

	name, err := WriteReport(dir, report, patient, doctor, "Clinical Psychology")
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if name != "report_"+report.ID+".pdf" {
		t.Errorf("file name = %q", name)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Errorf("report file missing: %v", err)
	}
}
