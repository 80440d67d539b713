package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSelector(t *testing.T, days []AvailabilityDay, slots []ScheduleSlot) *Selector {
	t.Helper()

	idx, err := NewIndex(days, slots)
	require.NoError(t, err)

	return NewSelector(idx)
}

func TestSelectDateFiltersIneligibleSlots(t *testing.T) {
	sel := newTestSelector(t, nil, []ScheduleSlot{
		{ID: "open", Date: "2024-06-05", StartTime: "08:00", EndTime: "16:00", AvailableSpots: 10, BookedSpots: 3, Status: SlotAvailable},
		{ID: "full", Date: "2024-06-05", StartTime: "09:00", EndTime: "17:00", AvailableSpots: 10, BookedSpots: 10, Status: SlotFullyBooked},
		{ID: "exhausted", Date: "2024-06-05", StartTime: "10:00", EndTime: "18:00", AvailableSpots: 5, BookedSpots: 5, Status: SlotAvailable},
		{ID: "cancelled", Date: "2024-06-05", StartTime: "11:00", EndTime: "19:00", AvailableSpots: 10, BookedSpots: 0, Status: SlotCancelled},
		{ID: "late", Date: "2024-06-05", StartTime: "14:00", EndTime: "22:00", AvailableSpots: 10, BookedSpots: 0, Status: SlotAvailable},
	})

	eligible := sel.SelectDate(day(2024, 6, 5))

	require.Len(t, eligible, 2)
	assert.Equal(t, "open", eligible[0].ID)
	assert.Equal(t, "late", eligible[1].ID)
}

func TestSelectDateOnEmptyDate(t *testing.T) {
	sel := newTestSelector(t, nil, nil)

	// Tour dates without scheduled slots are never selectable.
	assert.Empty(t, sel.SelectDate(day(2024, 6, 5)))
}

func fiveOpenDays() []AvailabilityDay {
	return []AvailabilityDay{
		{Date: "2024-06-05", Available: true},
		{Date: "2024-06-06", Available: true},
		{Date: "2024-06-07", Available: true},
		{Date: "2024-06-08", Available: true},
		{Date: "2024-06-09", Available: true},
	}
}

func TestSelectRangeAcceptsFullyOpenSpan(t *testing.T) {
	sel := newTestSelector(t, fiveOpenDays(), nil)

	assert.NoError(t, sel.SelectRange(day(2024, 6, 5), day(2024, 6, 9)))
}

func TestSelectRangeIsAllOrNothing(t *testing.T) {
	days := fiveOpenDays()
	days[2].Available = false

	sel := newTestSelector(t, days, nil)

	err := sel.SelectRange(day(2024, 6, 5), day(2024, 6, 9))

	unavailableErr := IsRangeUnavailableError(err)
	require.NotNil(t, unavailableErr)
	assert.Equal(t, day(2024, 6, 7), unavailableErr.Date)
}

func TestSelectRangeReportsFirstConflict(t *testing.T) {
	days := fiveOpenDays()
	days[1].Available = false
	days[3].Available = false

	sel := newTestSelector(t, days, nil)

	err := sel.SelectRange(day(2024, 6, 5), day(2024, 6, 9))

	unavailableErr := IsRangeUnavailableError(err)
	require.NotNil(t, unavailableErr)
	assert.Equal(t, day(2024, 6, 6), unavailableErr.Date)
}

func TestSelectRangeSwapsReversedBounds(t *testing.T) {
	days := fiveOpenDays()
	days[2].Available = false

	sel := newTestSelector(t, days, nil)

	forward := sel.SelectRange(day(2024, 6, 5), day(2024, 6, 9))
	reversed := sel.SelectRange(day(2024, 6, 9), day(2024, 6, 5))

	assert.Equal(t, forward, reversed)

	open := newTestSelector(t, fiveOpenDays(), nil)
	assert.NoError(t, open.SelectRange(day(2024, 6, 9), day(2024, 6, 5)))
}

func TestSelectRangeSingleDay(t *testing.T) {
	sel := newTestSelector(t, []AvailabilityDay{{Date: "2024-06-05", Available: false}}, nil)

	err := sel.SelectRange(day(2024, 6, 5), day(2024, 6, 5))
	require.NotNil(t, IsRangeUnavailableError(err))

	// Dates beyond the calendar default to open.
	assert.NoError(t, sel.SelectRange(day(2024, 6, 6), day(2024, 6, 6)))
}
