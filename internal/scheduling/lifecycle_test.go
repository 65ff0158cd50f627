package scheduling

import (
	"errors"
	"testing"
	"time"

	"psychcare-server/internal/models"
)

func TestValidateStatus(t *testing.T) {
	for _, status := range []models.AppointmentStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusCancelled, models.StatusCompleted,
	} {
		if err := ValidateStatus(status); err != nil {
			t.Errorf("ValidateStatus(%q) = %v, want nil", status, err)
		}
	}
	for _, status := range []models.AppointmentStatus{"", "rescheduled", "PENDING", "done"} {
		if err := ValidateStatus(status); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("ValidateStatus(%q) = %v, want ErrInvalidStatus", status, err)
		}
	}
}

func TestValidateComplaintStatus(t *testing.T) {
	for _, status := range []models.ComplaintStatus{
		models.ComplaintOpen, models.ComplaintUnderReview, models.ComplaintResolved, models.ComplaintClosed,
	} {
		if err := ValidateComplaintStatus(status); err != nil {
			t.Errorf("ValidateComplaintStatus(%q) = %v, want nil", status, err)
		}
	}
	if err := ValidateComplaintStatus("escalated"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("ValidateComplaintStatus(escalated) = %v, want ErrInvalidStatus", err)
	}
}

func TestCanPatientCancel(t *testing.T) {
	if err := CanPatientCancel(models.StatusPending); err != nil {
		t.Errorf("pending: %v, want nil", err)
	}
	if err := CanPatientCancel(models.StatusConfirmed); err != nil {
		t.Errorf("confirmed: %v, want nil", err)
	}
	if err := CanPatientCancel(models.StatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("cancelled: %v, want ErrInvalidTransition", err)
	}
	if err := CanPatientCancel(models.StatusCompleted); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("completed: %v, want ErrInvalidTransition", err)
	}
}

func TestCanCreateReport(t *testing.T) {
	if err := CanCreateReport(models.StatusCompleted); err != nil {
		t.Errorf("completed: %v, want nil", err)
	}
	if err := CanCreateReport(models.StatusConfirmed); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("confirmed: %v, want ErrInvalidTransition", err)
	}
}

func TestJoinAllowed(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	at := func(hour, min int) time.Time {
		return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		now     time.Time
		date    time.Time
		start   string
		allowed bool
	}{
		{"ten minutes early", at(9, 50), date, "10:00", false},
		{"exactly five minutes early", at(9, 55), date, "10:00", true},
		{"three minutes early", at(9, 57), date, "10:00", true},
		{"at start", at(10, 0), date, "10:00", true},
		{"mid appointment", at(10, 30), date, "10:00", true},
		{"wrong day", at(9, 57), date.AddDate(0, 0, 1), "10:00", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := JoinAllowed(tc.now, tc.date, tc.start)
			if tc.allowed && err != nil {
				t.Errorf("JoinAllowed = %v, want nil", err)
			}
			if !tc.allowed && !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("JoinAllowed = %v, want ErrInvalidTransition", err)
			}
		})
	}
}

func TestJoinAllowedBadStartTime(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	if err := JoinAllowed(now, now, "25:99"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("JoinAllowed with bad start = %v, want ErrInvalidInput", err)
	}
}
