package quote

import (
	"sort"
	"time"
)

// Index turns the raw availability rows of an item into lookup structures:
// a per-date open flag for whole-day rentals and a per-date ordered slot set
// for scheduled departures. It never mutates its input.
type Index struct {
	dayOpen  map[string]bool
	daySlots map[string][]ScheduleSlot
}

// NewIndex builds the index atomically: if any date or time in the input
// fails to parse, no index is returned. Duplicate dates are last-write-wins
// for the day flag; all slots sharing a date are retained.
func NewIndex(days []AvailabilityDay, slots []ScheduleSlot) (*Index, error) {
	dayOpen := make(map[string]bool, len(days))
	daySlots := make(map[string][]ScheduleSlot, len(slots))

	for _, day := range days {
		if _, err := time.Parse(DateLayout, day.Date); err != nil {
			return nil, newParseError("day.date", day.Date, err)
		}

		// A date with committed time slots is blocked for day rental even
		// when its baseline flag says available.
		dayOpen[day.Date] = day.Available && len(day.BookedTimeSlots) == 0
	}

	for _, slot := range slots {
		if _, err := time.Parse(DateLayout, slot.Date); err != nil {
			return nil, newParseError("slot.date", slot.Date, err)
		}

		if _, err := time.Parse(TimeLayout, slot.StartTime); err != nil {
			return nil, newParseError("slot.startTime", slot.StartTime, err)
		}

		if _, err := time.Parse(TimeLayout, slot.EndTime); err != nil {
			return nil, newParseError("slot.endTime", slot.EndTime, err)
		}

		daySlots[slot.Date] = append(daySlots[slot.Date], slot)
	}

	for date := range daySlots {
		sort.SliceStable(daySlots[date], func(i, j int) bool {
			a, b := daySlots[date][i], daySlots[date][j]
			if a.StartTime != b.StartTime {
				return a.StartTime < b.StartTime
			}

			return a.ID < b.ID
		})
	}

	return &Index{dayOpen: dayOpen, daySlots: daySlots}, nil
}

// DayOpen reports whether a date is open for whole-day rental. Dates absent
// from the calendar default to open.
func (idx *Index) DayOpen(date time.Time) bool {
	open, ok := idx.dayOpen[date.Format(DateLayout)]
	if !ok {
		return true
	}

	return open
}

// SlotsOn returns the slots scheduled on a date, ordered by start time then
// id. Dates with no scheduled slots return an empty set and are therefore
// never selectable for tours.
func (idx *Index) SlotsOn(date time.Time) []ScheduleSlot {
	return idx.daySlots[date.Format(DateLayout)]
}
