package quote

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type ItemKind string

const (
	KindTour    ItemKind = "tour"
	KindVehicle ItemKind = "vehicle"
)

type PriceType string

const (
	PerPerson PriceType = "per_person"
	PerGroup  PriceType = "per_group"
)

type DiscountCategory string

const (
	DiscountChildren DiscountCategory = "children"
	DiscountStudents DiscountCategory = "students"
	DiscountSeniors  DiscountCategory = "seniors"
	DiscountGroups   DiscountCategory = "groups"
)

type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotFullyBooked SlotStatus = "fully_booked"
	SlotCancelled   SlotStatus = "cancelled"
)

// AddOnFee is resolved once at catalog load time. PerPerson add-ons scale
// with the participant count, flat ones never do.
type AddOnFee struct {
	Amount    float64 `json:"amount"`
	PerPerson bool    `json:"per_person"`
}

type PricingRules struct {
	BasePrice       float64                      `json:"base_price"`
	PriceType       PriceType                    `json:"price_type"`
	Currency        string                       `json:"currency"`
	Discounts       map[DiscountCategory]float64 `json:"discounts,omitempty"`
	MinParticipants int                          `json:"min_participants,omitempty"`
	MaxParticipants int                          `json:"max_participants,omitempty"`
	AddOns          map[string]AddOnFee          `json:"add_ons,omitempty"`
}

// AvailabilityDay is the per-date calendar row of a vehicle. Any committed
// time slot blocks the whole day for day-rental semantics.
type AvailabilityDay struct {
	Date            string   `json:"date"`
	Available       bool     `json:"available"`
	BookedTimeSlots []string `json:"booked_time_slots,omitempty"`
}

// ScheduleSlot is a single date+time departure of a tour with finite capacity.
type ScheduleSlot struct {
	ID             string     `json:"id"`
	Date           string     `json:"date"`
	StartTime      string     `json:"start_time"`
	EndTime        string     `json:"end_time"`
	AvailableSpots int        `json:"available_spots"`
	BookedSpots    int        `json:"booked_spots"`
	PriceModifier  float64    `json:"price_modifier,omitempty"`
	Status         SlotStatus `json:"status"`
}

// Remaining reports the capacity still open on the slot.
func (s *ScheduleSlot) Remaining() int {
	return s.AvailableSpots - s.BookedSpots
}

type VehicleSpec struct {
	Model    string `json:"model"`
	Capacity int    `json:"capacity"`
}

// BookableItem is a read-only catalog snapshot. The engine never mutates it,
// so a single snapshot may serve concurrent quote calls.
type BookableItem struct {
	ID      string            `json:"id"`
	Kind    ItemKind          `json:"kind"`
	Name    string            `json:"name"`
	Pricing PricingRules      `json:"pricing"`
	Days    []AvailabilityDay `json:"days,omitempty"`
	Slots   []ScheduleSlot    `json:"slots,omitempty"`
	Vehicle *VehicleSpec      `json:"vehicle,omitempty"`
}

// QuoteRequest is one user interaction's worth of input. Tours address a
// single date plus slot, vehicles a whole-day range.
type QuoteRequest struct {
	ItemID       string   `json:"item_id"`
	Date         string   `json:"date,omitempty"`
	SlotID       string   `json:"slot_id,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Participants int      `json:"participants"`
	Children     int      `json:"children"`
	AddOns       []string `json:"add_ons,omitempty"`
}

type LineItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Quote is a non-binding itemized price. Total always equals the sum of the
// line items; when discounts would push it below zero a final cap line brings
// it back to zero and Clamped is set.
type Quote struct {
	ID        string     `json:"id,omitempty"`
	ItemID    string     `json:"item_id"`
	LineItems []LineItem `json:"line_items"`
	Total     float64    `json:"total"`
	Currency  string     `json:"currency"`
	Clamped   bool       `json:"clamped,omitempty"`
}
