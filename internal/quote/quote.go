package quote

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/islandbook/quote/internal/logger"
)

var tracer = otel.Tracer("quote.internal.manager")

type idGenerator interface {
	GetID(ctx context.Context) (string, error)
}

type catalog interface {
	GetItem(ctx context.Context, id string) (*BookableItem, error)
}

// Manager orchestrates the availability index, slot selector, and pricing
// calculator over catalog snapshots. It holds no state between calls.
type Manager struct {
	l           *logger.Logger
	catalog     catalog
	idGenerator idGenerator
}

func New(l *logger.Logger, catalog catalog, idGenerator idGenerator) *Manager {
	return &Manager{
		l:           l,
		catalog:     catalog,
		idGenerator: idGenerator,
	}
}

func (r *QuoteRequest) validate() error {
	inputErr := newInputError()

	if r.ItemID == "" {
		inputErr.addError("itemID", "provide itemID")
	}

	if r.Participants < 1 {
		inputErr.addError("participants", "provide at least one participant")
	}

	if r.Children < 0 {
		inputErr.addError("children", "children must not be negative")
	}

	if r.Date == "" && r.StartDate == "" {
		inputErr.addError("date", "provide date with slotID, or startDate and endDate")
	}

	if inputErr.fieldsCount() > 0 {
		return inputErr
	}

	return nil
}

func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, newParseError(field, value, err)
	}

	return d, nil
}

func selectTourSlot(sel *Selector, req *QuoteRequest) (*ScheduleSlot, error) {
	if req.Date == "" || req.SlotID == "" {
		inputErr := newInputError()

		if req.Date == "" {
			inputErr.addError("date", "provide date for a tour booking")
		}

		if req.SlotID == "" {
			inputErr.addError("slotID", "provide slotID for a tour booking")
		}

		return nil, inputErr
	}

	date, err := parseDate("request.date", req.Date)
	if err != nil {
		return nil, err
	}

	for _, slot := range sel.SelectDate(date) {
		if slot.ID == req.SlotID {
			return &slot, nil
		}
	}

	return nil, &RangeUnavailableError{Date: date}
}

func checkVehicleRange(sel *Selector, req *QuoteRequest) error {
	if req.StartDate == "" || req.EndDate == "" {
		inputErr := newInputError()

		if req.StartDate == "" {
			inputErr.addError("startDate", "provide startDate for a vehicle booking")
		}

		if req.EndDate == "" {
			inputErr.addError("endDate", "provide endDate for a vehicle booking")
		}

		return inputErr
	}

	start, err := parseDate("request.startDate", req.StartDate)
	if err != nil {
		return err
	}

	end, err := parseDate("request.endDate", req.EndDate)
	if err != nil {
		return err
	}

	return sel.SelectRange(start, end)
}

// BuildQuote is the pure assembly path: index, select, price. Availability
// failures short-circuit before any pricing runs. The returned quote carries
// no ID; identical inputs yield identical quotes.
func BuildQuote(item *BookableItem, req *QuoteRequest) (*Quote, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	idx, err := NewIndex(item.Days, item.Slots)
	if err != nil {
		return nil, fmt.Errorf("build availability index for item %v: %w", item.ID, err)
	}

	sel := NewSelector(idx)

	var slot *ScheduleSlot

	switch item.Kind {
	case KindTour:
		slot, err = selectTourSlot(sel, req)
		if err != nil {
			return nil, err
		}
	case KindVehicle:
		if err := checkVehicleRange(sel, req); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("item %v has unsupported kind %q: %w", item.ID, item.Kind, ErrLogic)
	}

	breakdown, err := CalculatePrice(&item.Pricing, req, slot)
	if err != nil {
		return nil, err
	}

	return &Quote{
		ItemID:    item.ID,
		LineItems: breakdown.LineItems,
		Total:     breakdown.Total,
		Currency:  item.Pricing.Currency,
		Clamped:   breakdown.Clamped,
	}, nil
}

// BuildQuote resolves the item from the catalog, assembles the quote, and
// stamps it with a fresh quote ID.
func (m *Manager) BuildQuote(ctx context.Context, req *QuoteRequest) (*Quote, error) {
	ctx, span := tracer.Start(ctx, "quote.build")
	defer span.End()

	span.SetAttributes(
		attribute.String("quote.item_id", req.ItemID),
		attribute.Int("quote.participants", req.Participants),
	)

	if err := req.validate(); err != nil {
		return nil, err
	}

	item, err := m.catalog.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("get item %v from catalog: %w", req.ItemID, err)
	}

	quote, err := BuildQuote(item, req)
	if err != nil {
		span.RecordError(err)

		return nil, err
	}

	id, err := m.idGenerator.GetID(ctx)
	if err != nil {
		return nil, ErrNextID
	}

	quote.ID = id

	requestID, _ := RequestIDFromContext(ctx)
	m.l.LogInfo(
		"Quote %v built for item %v: total %v %v, requestID: %v",
		quote.ID, quote.ItemID, quote.Total, quote.Currency, requestID,
	)

	return quote, nil
}

// OpenSlots lists the slots still bookable on a tour date.
func (m *Manager) OpenSlots(ctx context.Context, itemID, date string) ([]ScheduleSlot, error) {
	ctx, span := tracer.Start(ctx, "quote.openSlots")
	defer span.End()

	span.SetAttributes(attribute.String("quote.item_id", itemID))

	item, err := m.catalog.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item %v from catalog: %w", itemID, err)
	}

	if item.Kind != KindTour {
		inputErr := newInputError()
		inputErr.addError("itemID", "item is not a tour")

		return nil, inputErr
	}

	d, err := parseDate("date", date)
	if err != nil {
		return nil, err
	}

	idx, err := NewIndex(item.Days, item.Slots)
	if err != nil {
		return nil, fmt.Errorf("build availability index for item %v: %w", item.ID, err)
	}

	return NewSelector(idx).SelectDate(d), nil
}

// CheckRange reports whether every day in [from, to] is open on a vehicle
// calendar. A nil error means the whole range is bookable.
func (m *Manager) CheckRange(ctx context.Context, itemID, from, to string) error {
	ctx, span := tracer.Start(ctx, "quote.checkRange")
	defer span.End()

	span.SetAttributes(attribute.String("quote.item_id", itemID))

	item, err := m.catalog.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("get item %v from catalog: %w", itemID, err)
	}

	start, err := parseDate("from", from)
	if err != nil {
		return err
	}

	end, err := parseDate("to", to)
	if err != nil {
		return err
	}

	idx, err := NewIndex(item.Days, item.Slots)
	if err != nil {
		return fmt.Errorf("build availability index for item %v: %w", item.ID, err)
	}

	return NewSelector(idx).SelectRange(start, end)
}
