package settings

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a time of day in minutes since midnight.
type Clock int

func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func clockOf(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

// ParseOpenDays reads a comma-separated list of time.Weekday numbers
// (0 = Sunday .. 6 = Saturday).
func ParseOpenDays(s string) ([7]bool, error) {
	var days [7]bool
	any := false
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			return days, fmt.Errorf("invalid weekday %q", part)
		}
		days[n] = true
		any = true
	}
	if !any {
		return days, fmt.Errorf("no open days in %q", s)
	}
	return days, nil
}

// StoreHours is the injected business-hours configuration consumed by the
// order validation path. A zero Closing means the store closes at midnight,
// i.e. the end of the day.
type StoreHours struct {
	Opening  Clock
	Closing  Clock
	OpenDays [7]bool
}

func (h StoreHours) closing() Clock {
	if h.Closing == 0 {
		return Clock(24 * 60)
	}
	return h.Closing
}

func (h StoreHours) open(d time.Weekday) bool { return h.OpenDays[int(d)] }

// DefaultHours is the configuration used when the store has no overrides.
func DefaultHours() StoreHours {
	h := StoreHours{}
	h.Opening, _ = ParseClock(DefaultOpeningTime)
	h.Closing, _ = ParseClock(DefaultClosingTime)
	h.OpenDays, _ = ParseOpenDays(DefaultOpenDays)
	return h
}

// ValidateWindow rejects windows that are badly ordered, past-dated or
// outside the configured opening hours and open days. Errors are user-facing
// messages; resubmitting with fixed dates recovers.
func (h StoreHours) ValidateWindow(orderDate, returnDate, now time.Time) error {
	if !orderDate.Before(returnDate) {
		return fmt.Errorf("the pickup date must be before the return date")
	}
	if orderDate.Before(now) {
		return fmt.Errorf("the pickup date is in the past")
	}
	for _, t := range []time.Time{orderDate, returnDate} {
		if !h.open(t.Weekday()) {
			return fmt.Errorf("the store is closed on %s", t.Weekday())
		}
		if clockOf(t) < h.Opening {
			return fmt.Errorf("the store does not open before %s", h.Opening)
		}
		if clockOf(t) > h.closing() {
			return fmt.Errorf("the store closes at %s", h.closing())
		}
	}
	return nil
}
