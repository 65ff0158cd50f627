package scheduling

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"psychcare-server/internal/models"
)

func window(start, end string) models.Availability {
	return models.Availability{StartTime: start, EndTime: end, IsActive: true}
}

func booking(start, end string, status models.AppointmentStatus) models.Appointment {
	return models.Appointment{StartTime: start, EndTime: end, Status: status}
}

func TestFreeSlots(t *testing.T) {
	tests := []struct {
		name    string
		windows []models.Availability
		booked  []models.Appointment
		want    []string
	}{
		{
			name: "no windows",
			want: []string{},
		},
		{
			name:    "single window no bookings",
			windows: []models.Availability{window("09:00", "12:00")},
			want:    []string{"09:00 - 10:00", "10:00 - 11:00", "11:00 - 12:00"},
		},
		{
			name:    "confirmed booking removes its slot",
			windows: []models.Availability{window("09:00", "12:00")},
			booked:  []models.Appointment{booking("10:00", "11:00", models.StatusConfirmed)},
			want:    []string{"09:00 - 10:00", "11:00 - 12:00"},
		},
		{
			name:    "partial overlap removes the whole slot",
			windows: []models.Availability{window("09:00", "12:00")},
			booked:  []models.Appointment{booking("09:30", "10:30", models.StatusPending)},
			want:    []string{"11:00 - 12:00"},
		},
		{
			name: "overlapping windows deduplicate",
			windows: []models.Availability{
				window("09:00", "12:00"),
				window("11:00", "14:00"),
			},
			want: []string{
				"09:00 - 10:00", "10:00 - 11:00", "11:00 - 12:00",
				"12:00 - 13:00", "13:00 - 14:00",
			},
		},
		{
			name: "windows out of order are sorted by start",
			windows: []models.Availability{
				window("15:00", "16:00"),
				window("09:00", "10:00"),
			},
			want: []string{"09:00 - 10:00", "15:00 - 16:00"},
		},
		{
			name:    "window shorter than slot size yields nothing",
			windows: []models.Availability{window("09:00", "09:30")},
			want:    []string{},
		},
		{
			name:    "trailing remainder is not offered as a partial slot",
			windows: []models.Availability{window("09:00", "10:30")},
			want:    []string{"09:00 - 10:00"},
		},
		{
			name:    "window running to end of day",
			windows: []models.Availability{window("22:00", "24:00")},
			want:    []string{"22:00 - 23:00", "23:00 - 24:00"},
		},
		{
			name:    "booking of the last slot of the day",
			windows: []models.Availability{window("22:00", "24:00")},
			booked:  []models.Appointment{booking("23:00", "24:00", models.StatusConfirmed)},
			want:    []string{"22:00 - 23:00"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FreeSlots(tc.windows, tc.booked, DefaultSlotSize)
			if err != nil {
				t.Fatalf("FreeSlots returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("FreeSlots = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFreeSlotsIdempotent(t *testing.T) {
	windows := []models.Availability{window("09:00", "12:00"), window("14:00", "16:00")}
	booked := []models.Appointment{booking("14:00", "15:00", models.StatusConfirmed)}

	first, err := FreeSlots(windows, booked, DefaultSlotSize)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := FreeSlots(windows, booked, DefaultSlotSize)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ across calls: %v vs %v", first, second)
	}
}

func TestFreeSlotsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		windows []models.Availability
		booked  []models.Appointment
	}{
		{
			name:    "window start equals end",
			windows: []models.Availability{window("09:00", "09:00")},
		},
		{
			name:    "window start after end",
			windows: []models.Availability{window("12:00", "09:00")},
		},
		{
			name:    "unparseable window time",
			windows: []models.Availability{window("nine", "12:00")},
		},
		{
			name:    "minutes past end of day",
			windows: []models.Availability{window("23:00", "24:30")},
		},
		{
			name:    "malformed booking range",
			windows: []models.Availability{window("09:00", "12:00")},
			booked:  []models.Appointment{booking("11:00", "10:00", models.StatusPending)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FreeSlots(tc.windows, tc.booked, DefaultSlotSize)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("FreeSlots error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestFreeSlotsHalfHourGranularity(t *testing.T) {
	got, err := FreeSlots([]models.Availability{window("09:00", "10:30")}, nil, 30*time.Minute)
	if err != nil {
		t.Fatalf("FreeSlots returned error: %v", err)
	}
	want := []string{"09:00 - 09:30", "09:30 - 10:00", "10:00 - 10:30"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FreeSlots = %v, want %v", got, want)
	}
}

func TestParseSlotLabel(t *testing.T) {
	start, end, err := ParseSlotLabel("09:00 - 10:00")
	if err != nil {
		t.Fatalf("ParseSlotLabel: %v", err)
	}
	if start != "09:00" || end != "10:00" {
		t.Errorf("got (%q, %q), want (09:00, 10:00)", start, end)
	}

	// Labels without spaces around the dash are accepted too.
	start, end, err = ParseSlotLabel("11:00-12:00")
	if err != nil {
		t.Fatalf("ParseSlotLabel: %v", err)
	}
	if start != "11:00" || end != "12:00" {
		t.Errorf("got (%q, %q), want (11:00, 12:00)", start, end)
	}

	// The day's last slot ends on "24:00".
	start, end, err = ParseSlotLabel("23:00 - 24:00")
	if err != nil {
		t.Fatalf("ParseSlotLabel: %v", err)
	}
	if start != "23:00" || end != "24:00" {
		t.Errorf("got (%q, %q), want (23:00, 24:00)", start, end)
	}

	for _, label := range []string{"", "09:00", "09:00 - 10:00 - 11:00", "10:00 - 09:00"} {
		if _, _, err := ParseSlotLabel(label); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseSlotLabel(%q) error = %v, want ErrInvalidInput", label, err)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		a0, a1, b0, b1 string
		want           bool
	}{
		{"09:00", "10:00", "10:00", "11:00", false}, // back to back
		{"09:00", "10:00", "09:30", "10:30", true},
		{"09:00", "12:00", "10:00", "11:00", true}, // contained
		{"09:00", "10:00", "11:00", "12:00", false},
	}
	for _, tc := range tests {
		got, err := Overlaps(tc.a0, tc.a1, tc.b0, tc.b1)
		if err != nil {
			t.Fatalf("Overlaps(%s-%s, %s-%s): %v", tc.a0, tc.a1, tc.b0, tc.b1, err)
		}
		if got != tc.want {
			t.Errorf("Overlaps(%s-%s, %s-%s) = %v, want %v", tc.a0, tc.a1, tc.b0, tc.b1, got, tc.want)
		}
	}
}

func TestStartOfDay(t *testing.T) {
	west := time.FixedZone("UTC-5", -5*60*60)

	// Late evening west of Greenwich: the local day must not roll over.
	now := time.Date(2026, 8, 28, 23, 0, 0, 0, west)
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, west)
	if today.Before(StartOfDay(now)) {
		t.Errorf("StartOfDay(%v) = %v puts the same day in the past", now, StartOfDay(now))
	}
	yesterday := time.Date(2026, 8, 27, 0, 0, 0, 0, west)
	if !yesterday.Before(StartOfDay(now)) {
		t.Errorf("StartOfDay(%v) = %v does not put the previous day in the past", now, StartOfDay(now))
	}

	// Early morning east of Greenwich: yesterday is already past.
	east := time.FixedZone("UTC+3", 3*60*60)
	morning := time.Date(2026, 8, 28, 1, 0, 0, 0, east)
	if got, want := StartOfDay(morning), time.Date(2026, 8, 28, 0, 0, 0, 0, east); !got.Equal(want) {
		t.Errorf("StartOfDay(%v) = %v, want %v", morning, got, want)
	}
	if !time.Date(2026, 8, 27, 0, 0, 0, 0, east).Before(StartOfDay(morning)) {
		t.Errorf("previous day not before StartOfDay(%v)", morning)
	}
}

func TestWeekday(t *testing.T) {
	// 2025-06-02 is a Monday.
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	for offset, want := range []int{0, 1, 2, 3, 4, 5, 6} {
		date := monday.AddDate(0, 0, offset)
		if got := Weekday(date); got != want {
			t.Errorf("Weekday(%s) = %d, want %d", date.Format("2006-01-02"), got, want)
		}
	}
}
