// Package schedule expands recurring weekly availability rules into concrete
// appointment slots, suppresses blackout dates, and marks slots that collide
// with existing bookings. Everything here is pure computation over inputs the
// caller has already loaded; there is no I/O and no hidden clock.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SlotStatus is the client-facing state of a generated slot.
type SlotStatus string

const (
	// SlotOpen means the slot can be requested.
	SlotOpen SlotStatus = "open"
	// SlotHeld is reserved for a future soft-hold flow; nothing produces it yet.
	SlotHeld SlotStatus = "held"
	// SlotBooked means at least one active booking overlaps the slot.
	SlotBooked SlotStatus = "booked"
)

// Rule is a recurring weekly opening window. DayOfWeek follows time.Weekday
// numbering (0 = Sunday). StartTime and EndTime are wall-clock "HH:MM" strings
// in the salon's timezone.
type Rule struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Blackout removes a whole calendar date from the schedule regardless of rules.
// Only the calendar date of Date matters; time-of-day is ignored.
type Blackout struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Reason string    `json:"reason,omitempty"`
}

// BookingWindow is the slice of an existing booking that matters for conflict
// detection. Status uses the booking lifecycle values; DECLINED and DONE
// windows never block a slot.
type BookingWindow struct {
	Start  time.Time
	End    time.Time
	Status string
}

// Slot is a derived appointment window. Slots are computed fresh on every
// query and never persisted.
type Slot struct {
	Start  time.Time  `json:"start"`
	End    time.Time  `json:"end"`
	Status SlotStatus `json:"status"`
}

const clockLayout = "15:04"

// ParseClock validates an "HH:MM" wall-clock string and returns its hour and
// minute components.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("schedule: invalid clock time %q, want HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("schedule: invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("schedule: invalid minute in %q", s)
	}
	return hour, minute, nil
}

// ValidateRule checks a rule's day-of-week and clock strings, including the
// start-before-end ordering the generator assumes. Write paths call this so
// malformed rules never reach the store.
func (r Rule) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return fmt.Errorf("schedule: dayOfWeek %d out of range 0-6", r.DayOfWeek)
	}
	sh, sm, err := ParseClock(r.StartTime)
	if err != nil {
		return err
	}
	eh, em, err := ParseClock(r.EndTime)
	if err != nil {
		return err
	}
	if sh*60+sm >= eh*60+em {
		return fmt.Errorf("schedule: startTime %s must be before endTime %s", r.StartTime, r.EndTime)
	}
	return nil
}

func clockOnDate(day time.Time, clock string) (time.Time, bool) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location()), true
}
