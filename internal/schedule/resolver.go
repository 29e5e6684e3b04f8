package schedule

import (
	"sort"
	"time"
)

// Booking statuses that no longer block a slot.
const (
	statusDeclined = "DECLINED"
	statusDone     = "DONE"
)

const dateOnly = "2006-01-02"

// FilterBlackouts removes every slot falling on a blacked-out calendar date.
// Blackouts round-trip through the database as instants, usually rendered in
// UTC, so each one is shifted into the slot's location before its calendar
// date is read. The time-of-day carried by a blackout's Date is irrelevant,
// and a blacked-out slot is dropped entirely rather than marked.
func FilterBlackouts(slots []Slot, blackouts []Blackout) []Slot {
	if len(blackouts) == 0 {
		return slots
	}
	out := slots[:0:0]
	for _, s := range slots {
		if !blackedOut(s, blackouts) {
			out = append(out, s)
		}
	}
	return out
}

func blackedOut(s Slot, blackouts []Blackout) bool {
	date := s.Start.Format(dateOnly)
	for _, b := range blackouts {
		if b.Date.In(s.Start.Location()).Format(dateOnly) == date {
			return true
		}
	}
	return false
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share at least
// one instant. Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// MarkBooked sets a slot's status to booked when any blocking booking window
// overlaps it. Windows with terminal statuses (DECLINED, DONE) or zero bounds
// are ignored, so callers may pass bookings unfiltered. O(slots*bookings) is
// fine at single-salon scale.
func MarkBooked(slots []Slot, bookings []BookingWindow) []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	for i := range out {
		for _, b := range bookings {
			if !b.blocks() {
				continue
			}
			if Overlaps(out[i].Start, out[i].End, b.Start, b.End) {
				out[i].Status = SlotBooked
				break
			}
		}
	}
	return out
}

func (b BookingWindow) blocks() bool {
	if b.Start.IsZero() || b.End.IsZero() {
		return false
	}
	return b.Status != statusDeclined && b.Status != statusDone
}

// Resolve runs the full pipeline: generate, drop blackouts, mark conflicts,
// and sort chronologically. It is a pure function of its inputs.
func Resolve(rules []Rule, blackouts []Blackout, bookings []BookingWindow, from, to time.Time) []Slot {
	slots := Generate(rules, from, to)
	slots = FilterBlackouts(slots, blackouts)
	slots = MarkBooked(slots, bookings)
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})
	return slots
}
