package scheduling

import (
	"fmt"
	"time"

	"psychcare-server/internal/models"
)

// JoinLeeway is how long before the scheduled start either participant
// may join the call.
const JoinLeeway = 5 * time.Minute

// ValidateStatus rejects appointment status values outside the
// enumerated set. Doctors and admins may set any of the four values
// directly, including completing a pending appointment; this manual
// override intentionally skips intermediate states.
func ValidateStatus(status models.AppointmentStatus) error {
	switch status {
	case models.StatusPending, models.StatusConfirmed, models.StatusCancelled, models.StatusCompleted:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}

// ValidateComplaintStatus rejects complaint status values outside the
// enumerated set.
func ValidateComplaintStatus(status models.ComplaintStatus) error {
	switch status {
	case models.ComplaintOpen, models.ComplaintUnderReview, models.ComplaintResolved, models.ComplaintClosed:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}

// CanPatientCancel allows cancellation only while the appointment is
// still pending or confirmed.
func CanPatientCancel(status models.AppointmentStatus) error {
	switch status {
	case models.StatusPending, models.StatusConfirmed:
		return nil
	}
	return fmt.Errorf("%w: cannot cancel a %s appointment", ErrInvalidTransition, status)
}

// CanCreateReport permits report creation only once the appointment
// has completed.
func CanCreateReport(status models.AppointmentStatus) error {
	if status != models.StatusCompleted {
		return fmt.Errorf("%w: cannot report on a %s appointment", ErrInvalidTransition, status)
	}
	return nil
}

// JoinAllowed checks the call-join window: joining is permitted only on
// the appointment's calendar date, from JoinLeeway before the scheduled
// start onward. The check is against now; nothing enforces it once the
// page is open.
func JoinAllowed(now time.Time, date time.Time, startTime string) error {
	if now.Format("2006-01-02") != date.Format("2006-01-02") {
		return fmt.Errorf("%w: appointment is not scheduled for today", ErrInvalidTransition)
	}
	start, err := parseClock(startTime)
	if err != nil {
		return err
	}
	joinFrom := time.Date(now.Year(), now.Month(), now.Day(), start/60, start%60, 0, 0, now.Location()).Add(-JoinLeeway)
	if now.Before(joinFrom) {
		return fmt.Errorf("%w: it is not time for this appointment yet", ErrInvalidTransition)
	}
	return nil
}
