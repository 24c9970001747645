package models

import "testing"

func TestBookingSessionComplete(t *testing.T) {
	s := &BookingSession{ClientID: "42"}
	if s.Complete() {
		t.Fatalf("empty session must not be complete")
	}
	s.Location = "Center"
	s.Date = "01.01.2030"
	if s.Complete() {
		t.Fatalf("session without a time must not be complete")
	}
	s.Time = "10:00"
	if !s.Complete() {
		t.Fatalf("location, date and time make a complete selection")
	}
}

func TestBookingSessionInvalidate(t *testing.T) {
	s := &BookingSession{
		Records:       []BookingRecord{{Date: "01.01.2030"}},
		AvailableDays: []string{"01.01.2030"},
	}
	s.Invalidate()
	if s.Records != nil || s.AvailableDays != nil {
		t.Fatalf("expected memoized results dropped, got %+v", s)
	}
}

func TestDirectoryLocationOf(t *testing.T) {
	d := Directory{"Center": {"A", "B"}, "North": {"C"}}

	if got := d.LocationOf("C"); got != "North" {
		t.Fatalf("expected North, got %q", got)
	}
	if got := d.LocationOf("unknown"); got != "" {
		t.Fatalf("expected empty location for unknown provider, got %q", got)
	}
}
