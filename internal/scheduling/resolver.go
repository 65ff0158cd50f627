// Package scheduling holds the pure core of the clinic: the
// availability-to-free-slot resolver and the appointment/call lifecycle
// guards. Nothing in this package touches the database or the clock
// implicitly; callers pass in windows, bookings and the current time.
package scheduling

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"psychcare-server/internal/models"
)

// ClockLayout is the "HH:MM" layout used for window and appointment times.
const ClockLayout = "15:04"

// DefaultSlotSize is the production booking granularity.
const DefaultSlotSize = time.Hour

type interval struct {
	start int // minutes since midnight, inclusive
	end   int // exclusive
}

func (iv interval) overlaps(other interval) bool {
	return iv.start < other.end && other.start < iv.end
}

// FreeSlots computes the bookable slots for one doctor on one date.
//
// The caller pre-filters inputs: windows are the doctor's active windows
// matching the date (recurring windows for its weekday plus one-off
// windows for the exact date), booked are the doctor's appointments on
// that date with status pending or confirmed. Cancelled and completed
// appointments do not block a slot.
//
// Each window is partitioned into slotSize slots; a slot is dropped when
// its range intersects any booking, even partially. The result is the
// label set "HH:MM - HH:MM" deduplicated across overlapping windows and
// sorted by start time. Returns ErrInvalidInput on a malformed window.
func FreeSlots(windows []models.Availability, booked []models.Appointment, slotSize time.Duration) ([]string, error) {
	if slotSize <= 0 {
		return nil, fmt.Errorf("%w: non-positive slot size", ErrInvalidInput)
	}

	blocked := make([]interval, 0, len(booked))
	for _, appt := range booked {
		iv, err := parseInterval(appt.StartTime, appt.EndTime)
		if err != nil {
			return nil, err
		}
		blocked = append(blocked, iv)
	}

	size := int(slotSize.Minutes())
	seen := make(map[int]interval)
	for _, w := range windows {
		win, err := parseInterval(w.StartTime, w.EndTime)
		if err != nil {
			return nil, err
		}
		for start := win.start; start+size <= win.end; start += size {
			slot := interval{start: start, end: start + size}
			if slotBlocked(slot, blocked) {
				continue
			}
			seen[slot.start] = slot
		}
	}

	starts := make([]int, 0, len(seen))
	for start := range seen {
		starts = append(starts, start)
	}
	sort.Ints(starts)

	slots := make([]string, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, formatSlot(seen[start]))
	}
	return slots, nil
}

func slotBlocked(slot interval, blocked []interval) bool {
	for _, iv := range blocked {
		if slot.overlaps(iv) {
			return true
		}
	}
	return false
}

func parseInterval(start, end string) (interval, error) {
	s, err := parseClock(start)
	if err != nil {
		return interval{}, err
	}
	e, err := parseClock(end)
	if err != nil {
		return interval{}, err
	}
	if s >= e {
		return interval{}, fmt.Errorf("%w: start %q is not before end %q", ErrInvalidInput, start, end)
	}
	return interval{start: s, end: e}, nil
}

func parseClock(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	// "24:00" marks end of day; the "15:04" layout stops at "23:59".
	if trimmed == "24:00" {
		return 24 * 60, nil
	}
	t, err := time.Parse(ClockLayout, trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: bad clock time %q", ErrInvalidInput, value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func formatSlot(iv interval) string {
	return formatClock(iv.start) + " - " + formatClock(iv.end)
}

// ParseSlotLabel splits a slot label of the form "HH:MM - HH:MM" into its
// start and end clock times. Returns ErrInvalidInput for anything else.
func ParseSlotLabel(label string) (start, end string, err error) {
	parts := strings.Split(label, "-")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: bad slot label %q", ErrInvalidInput, label)
	}
	start = strings.TrimSpace(parts[0])
	end = strings.TrimSpace(parts[1])
	if _, err := parseInterval(start, end); err != nil {
		return "", "", err
	}
	return start, end, nil
}

// Overlaps reports whether the [aStart,aEnd) and [bStart,bEnd) clock
// ranges intersect. Used for the in-transaction double-booking check.
func Overlaps(aStart, aEnd, bStart, bEnd string) (bool, error) {
	a, err := parseInterval(aStart, aEnd)
	if err != nil {
		return false, err
	}
	b, err := parseInterval(bStart, bEnd)
	if err != nil {
		return false, err
	}
	return a.overlaps(b), nil
}

// Weekday maps a calendar date to the availability convention
// 0=Monday .. 6=Sunday.
func Weekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// StartOfDay returns midnight at the start of t's calendar day in t's
// location. time.Truncate cuts on UTC day boundaries, not local ones.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
