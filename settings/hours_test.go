package settings

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	c, err := ParseClock("08:30")
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	if c != Clock(8*60+30) {
		t.Fatalf("expected 510 minutes, got %d", c)
	}
	if c.String() != "08:30" {
		t.Fatalf("round trip failed: %s", c.String())
	}
	if _, err := ParseClock("25:00"); err == nil {
		t.Fatalf("expected error for 25:00")
	}
	if _, err := ParseClock("noon"); err == nil {
		t.Fatalf("expected error for junk")
	}
}

func TestParseOpenDays(t *testing.T) {
	days, err := ParseOpenDays("1,2,3,4,5,6")
	if err != nil {
		t.Fatalf("ParseOpenDays: %v", err)
	}
	if days[int(time.Sunday)] {
		t.Fatalf("Sunday should be closed")
	}
	if !days[int(time.Monday)] || !days[int(time.Saturday)] {
		t.Fatalf("weekdays missing")
	}
	if _, err := ParseOpenDays("7"); err == nil {
		t.Fatalf("expected error for out-of-range day")
	}
	if _, err := ParseOpenDays(""); err == nil {
		t.Fatalf("expected error for empty list")
	}
}

func TestValidateWindow(t *testing.T) {
	h := DefaultHours() // 08:00-20:00, Monday-Saturday
	now := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC)
	at := func(hh int) time.Time { return monday.Add(time.Duration(hh) * time.Hour) }

	if err := h.ValidateWindow(at(10), at(12), now); err != nil {
		t.Fatalf("valid window rejected: %v", err)
	}
	if err := h.ValidateWindow(at(12), at(10), now); err == nil {
		t.Fatalf("backwards window accepted")
	}
	if err := h.ValidateWindow(at(10), at(12), at(11)); err == nil {
		t.Fatalf("past-dated window accepted")
	}
	if err := h.ValidateWindow(at(6), at(12), now); err == nil {
		t.Fatalf("pickup before opening accepted")
	}
	if err := h.ValidateWindow(at(10), at(21), now); err == nil {
		t.Fatalf("return after closing accepted")
	}

	sunday := monday.AddDate(0, 0, -1)
	if err := h.ValidateWindow(sunday.Add(10*time.Hour), sunday.Add(12*time.Hour), now); err == nil {
		t.Fatalf("closed-day window accepted")
	}
}

func TestValidateWindowMidnightClosing(t *testing.T) {
	h := DefaultHours()
	h.Closing = 0 // midnight means end of day
	monday := time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC)
	now := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)

	if err := h.ValidateWindow(monday.Add(10*time.Hour), monday.Add(23*time.Hour), now); err != nil {
		t.Fatalf("late window rejected with midnight closing: %v", err)
	}
}
