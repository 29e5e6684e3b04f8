package schedule

import (
	"math"
	"time"
)

// Slot generation is bounded to this many calendar days no matter how wide a
// range the caller asks for.
const maxWindowDays = 60

// Generate expands rules into open slots over the date range [from, to].
// The number of days iterated is max(1, min(60, ceil((to-from)/24h))); an
// inverted range therefore yields exactly one day's slots rather than an
// error, and a 90-day request is truncated to 60 days.
//
// Slots are emitted in day order, then rule-set order within a day; callers
// needing strict chronological order across split-shift rules should sort by
// Start (Resolve does). Rules with clock strings that fail to parse are
// skipped.
func Generate(rules []Rule, from, to time.Time) []Slot {
	days := int(math.Ceil(to.Sub(from).Hours() / 24))
	if days < 1 {
		days = 1
	}
	if days > maxWindowDays {
		days = maxWindowDays
	}

	var slots []Slot
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		dow := int(day.Weekday())
		for _, r := range rules {
			if r.DayOfWeek != dow {
				continue
			}
			start, ok := clockOnDate(day, r.StartTime)
			if !ok {
				continue
			}
			end, ok := clockOnDate(day, r.EndTime)
			if !ok {
				continue
			}
			slots = append(slots, Slot{Start: start, End: end, Status: SlotOpen})
		}
	}
	return slots
}
