package quote

import "sort"

// Breakdown is the calculator's result: line items in computation order and
// their sum. Clamped marks a total that was capped at zero.
type Breakdown struct {
	LineItems []LineItem
	Total     float64
	Clamped   bool
}

const (
	labelBase          = "base"
	labelChildren      = "children"
	labelSlotDiscount  = "slot discount"
	labelSlotSurcharge = "slot surcharge"
	labelDiscountCap   = "discount cap"
)

func validateParticipants(rules *PricingRules, req *QuoteRequest) error {
	if req.Children >= req.Participants {
		return ErrInvalidParticipantSplit
	}

	if rules.MaxParticipants > 0 &&
		(req.Participants < rules.MinParticipants || req.Participants > rules.MaxParticipants) {
		return &ParticipantRangeError{
			Count: req.Participants,
			Min:   rules.MinParticipants,
			Max:   rules.MaxParticipants,
		}
	}

	return nil
}

func selectedAddOns(rules *PricingRules, req *QuoteRequest) ([]string, error) {
	if len(req.AddOns) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(req.AddOns))
	seen := make(map[string]struct{}, len(req.AddOns))

	for _, name := range req.AddOns {
		if _, ok := rules.AddOns[name]; !ok {
			return nil, &UnknownAddOnError{Name: name}
		}

		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		names = append(names, name)
	}

	// Selected add-ons form a set; sort for a deterministic breakdown.
	sort.Strings(names)

	return names, nil
}

// CalculatePrice is a pure function from pricing rules, a request, and an
// optionally selected slot to an itemized breakdown. Identical inputs always
// yield an identical breakdown, so it is safe to re-run on every form change.
func CalculatePrice(rules *PricingRules, req *QuoteRequest, slot *ScheduleSlot) (*Breakdown, error) {
	if err := validateParticipants(rules, req); err != nil {
		return nil, err
	}

	addOns, err := selectedAddOns(rules, req)
	if err != nil {
		return nil, err
	}

	var items []LineItem

	if rules.PriceType == PerPerson {
		adults := req.Participants - req.Children
		items = append(items, LineItem{Label: labelBase, Amount: rules.BasePrice * float64(adults)})

		if req.Children > 0 {
			childPrice := rules.BasePrice

			if discount, ok := rules.Discounts[DiscountChildren]; ok {
				childPrice = rules.BasePrice * (1 - discount/100) //nolint:gomnd
			}

			items = append(items, LineItem{Label: labelChildren, Amount: childPrice * float64(req.Children)})
		}
	} else {
		// Group price is a flat charge, headcount is ignored.
		items = append(items, LineItem{Label: labelBase, Amount: rules.BasePrice})
	}

	for _, name := range addOns {
		fee := rules.AddOns[name]
		amount := fee.Amount

		if fee.PerPerson && rules.PriceType == PerPerson {
			amount *= float64(req.Participants)
		}

		items = append(items, LineItem{Label: name, Amount: amount})
	}

	if slot != nil && slot.PriceModifier != 0 {
		label := labelSlotSurcharge
		if slot.PriceModifier < 0 {
			label = labelSlotDiscount
		}

		// Applied once per booking, never per person.
		items = append(items, LineItem{Label: label, Amount: slot.PriceModifier})
	}

	var total float64

	for _, item := range items {
		total += item.Amount
	}

	breakdown := &Breakdown{LineItems: items, Total: total}

	if total < 0 {
		// Cap at zero with an explicit line item so the total still equals
		// the sum of the breakdown.
		breakdown.LineItems = append(breakdown.LineItems, LineItem{Label: labelDiscountCap, Amount: -total})
		breakdown.Total = 0
		breakdown.Clamped = true
	}

	return breakdown, nil
}
