package quote

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perPersonRules(discounts map[DiscountCategory]float64) *PricingRules {
	return &PricingRules{
		BasePrice: 1000,
		PriceType: PerPerson,
		Currency:  "THB",
		Discounts: discounts,
		AddOns: map[string]AddOnFee{
			"lunch":    {Amount: 150, PerPerson: true},
			"transfer": {Amount: 1000, PerPerson: false},
		},
	}
}

func TestCalculatePriceScenarios(t *testing.T) {
	tests := []struct {
		name      string
		rules     *PricingRules
		req       *QuoteRequest
		slot      *ScheduleSlot
		wantItems []LineItem
		wantTotal float64
	}{
		{
			name:      "per person no discounts",
			rules:     perPersonRules(nil),
			req:       &QuoteRequest{Participants: 3},
			wantItems: []LineItem{{Label: "base", Amount: 3000}},
			wantTotal: 3000,
		},
		{
			name:  "per person with child discount",
			rules: perPersonRules(map[DiscountCategory]float64{DiscountChildren: 50}),
			req:   &QuoteRequest{Participants: 4, Children: 1},
			wantItems: []LineItem{
				{Label: "base", Amount: 3000},
				{Label: "children", Amount: 500},
			},
			wantTotal: 3500,
		},
		{
			name:  "children without a discount pay full price",
			rules: perPersonRules(nil),
			req:   &QuoteRequest{Participants: 4, Children: 2},
			wantItems: []LineItem{
				{Label: "base", Amount: 2000},
				{Label: "children", Amount: 2000},
			},
			wantTotal: 4000,
		},
		{
			name: "per group with flat add-on",
			rules: &PricingRules{
				BasePrice: 5000,
				PriceType: PerGroup,
				Currency:  "THB",
				AddOns:    map[string]AddOnFee{"transport": {Amount: 1000}},
			},
			req: &QuoteRequest{Participants: 7, AddOns: []string{"transport"}},
			wantItems: []LineItem{
				{Label: "base", Amount: 5000},
				{Label: "transport", Amount: 1000},
			},
			wantTotal: 6000,
		},
		{
			name: "slot discount applied once",
			rules: &PricingRules{
				BasePrice: 5000,
				PriceType: PerGroup,
				Currency:  "THB",
				AddOns:    map[string]AddOnFee{"transport": {Amount: 1000}},
			},
			req:  &QuoteRequest{Participants: 7, AddOns: []string{"transport"}},
			slot: &ScheduleSlot{ID: "s1", PriceModifier: -500},
			wantItems: []LineItem{
				{Label: "base", Amount: 5000},
				{Label: "transport", Amount: 1000},
				{Label: "slot discount", Amount: -500},
			},
			wantTotal: 5500,
		},
		{
			name:  "slot surcharge labeled as such",
			rules: perPersonRules(nil),
			req:   &QuoteRequest{Participants: 2},
			slot:  &ScheduleSlot{ID: "s1", PriceModifier: 300},
			wantItems: []LineItem{
				{Label: "base", Amount: 2000},
				{Label: "slot surcharge", Amount: 300},
			},
			wantTotal: 2300,
		},
		{
			name:  "per person add-on scales with participants",
			rules: perPersonRules(nil),
			req:   &QuoteRequest{Participants: 4, AddOns: []string{"lunch"}},
			wantItems: []LineItem{
				{Label: "base", Amount: 4000},
				{Label: "lunch", Amount: 600},
			},
			wantTotal: 4600,
		},
		{
			name:  "add-ons sorted for a deterministic breakdown",
			rules: perPersonRules(nil),
			req:   &QuoteRequest{Participants: 2, AddOns: []string{"transfer", "lunch"}},
			wantItems: []LineItem{
				{Label: "base", Amount: 2000},
				{Label: "lunch", Amount: 300},
				{Label: "transfer", Amount: 1000},
			},
			wantTotal: 3300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculatePrice(tt.rules, tt.req, tt.slot)
			require.NoError(t, err)

			assert.Equal(t, tt.wantItems, got.LineItems)
			assert.InDelta(t, tt.wantTotal, got.Total, 1e-9)
			assert.False(t, got.Clamped)

			var sum float64
			for _, item := range got.LineItems {
				sum += item.Amount
			}
			assert.InDelta(t, got.Total, sum, 1e-9)
		})
	}
}

func TestCalculatePriceClampsNegativeTotal(t *testing.T) {
	rules := &PricingRules{
		BasePrice: 100,
		PriceType: PerGroup,
		Currency:  "THB",
	}
	req := &QuoteRequest{Participants: 2}
	slot := &ScheduleSlot{ID: "s1", PriceModifier: -500}

	got, err := CalculatePrice(rules, req, slot)
	require.NoError(t, err)

	assert.True(t, got.Clamped)
	assert.Zero(t, got.Total)

	require.Len(t, got.LineItems, 3)
	assert.Equal(t, LineItem{Label: "discount cap", Amount: 400}, got.LineItems[2])

	var sum float64
	for _, item := range got.LineItems {
		sum += item.Amount
	}
	assert.InDelta(t, got.Total, sum, 1e-9)
}

func TestCalculatePriceRejections(t *testing.T) {
	t.Run("no adults", func(t *testing.T) {
		_, err := CalculatePrice(perPersonRules(nil), &QuoteRequest{Participants: 2, Children: 2}, nil)
		assert.ErrorIs(t, err, ErrInvalidParticipantSplit)
	})

	t.Run("unknown add-on", func(t *testing.T) {
		_, err := CalculatePrice(perPersonRules(nil), &QuoteRequest{Participants: 2, AddOns: []string{"spa"}}, nil)

		addOnErr := IsUnknownAddOnError(err)
		require.NotNil(t, addOnErr)
		assert.Equal(t, "spa", addOnErr.Name)
	})

	t.Run("participants outside tour bounds", func(t *testing.T) {
		rules := perPersonRules(nil)
		rules.MinParticipants = 2
		rules.MaxParticipants = 10

		_, err := CalculatePrice(rules, &QuoteRequest{Participants: 1}, nil)

		rangeErr := IsParticipantRangeError(err)
		require.NotNil(t, rangeErr)
		assert.Equal(t, 1, rangeErr.Count)
		assert.Equal(t, 2, rangeErr.Min)
		assert.Equal(t, 10, rangeErr.Max)

		_, err = CalculatePrice(rules, &QuoteRequest{Participants: 11}, nil)
		require.NotNil(t, IsParticipantRangeError(err))
	})
}

func TestCalculatePriceIsIdempotent(t *testing.T) {
	rules := perPersonRules(map[DiscountCategory]float64{DiscountChildren: 50})
	req := &QuoteRequest{Participants: 5, Children: 2, AddOns: []string{"lunch", "transfer"}}
	slot := &ScheduleSlot{ID: "s1", PriceModifier: -150}

	first, err := CalculatePrice(rules, req, slot)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := CalculatePrice(rules, req, slot)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCalculatePriceHelpersDoNotLeakSentinels(t *testing.T) {
	// A rejection must never come back as a bare unrelated sentinel.
	_, err := CalculatePrice(perPersonRules(nil), &QuoteRequest{Participants: 2, AddOns: []string{"spa"}}, nil)
	assert.False(t, errors.Is(err, ErrInvalidParticipantSplit))
}
