package quote

import "time"

// Selector narrows an index to the slots or dates a request may book. It
// only reads; capacity counters are never consumed here.
type Selector struct {
	idx *Index
}

func NewSelector(idx *Index) *Selector {
	return &Selector{idx: idx}
}

// SelectDate returns the slots on a date a booking may still take: status
// available and remaining capacity above zero. Ordering follows the index.
func (s *Selector) SelectDate(date time.Time) []ScheduleSlot {
	slots := s.idx.SlotsOn(date)

	eligible := make([]ScheduleSlot, 0, len(slots))

	for _, slot := range slots {
		if slot.Status != SlotAvailable || slot.Remaining() < 1 {
			continue
		}

		eligible = append(eligible, slot)
	}

	return eligible
}

// SelectRange accepts a whole-day range only if every date in it is open;
// the first closed date rejects the entire range. A reversed range is
// swapped before evaluation, matching the booking form's auto-correction of
// reversed selections.
func (s *Selector) SelectRange(start, end time.Time) error {
	if start.After(end) {
		start, end = end, start
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !s.idx.DayOpen(d) {
			return &RangeUnavailableError{Date: d}
		}
	}

	return nil
}
