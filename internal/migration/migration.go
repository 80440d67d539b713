package migration

import (
	"context"
	"fmt"

	"github.com/islandbook/quote/internal/logger"
	"github.com/islandbook/quote/internal/quote"
)

type storage interface {
	BeginTransaction(ctx context.Context, level string) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
	SaveItems(ctx context.Context, items []*quote.BookableItem) error
}

func demoItems() []*quote.BookableItem {
	return []*quote.BookableItem{
		{
			ID:   "similan-day-trip",
			Kind: quote.KindTour,
			Name: "Similan Islands Day Trip",
			Pricing: quote.PricingRules{
				BasePrice: 1900,
				PriceType: quote.PerPerson,
				Currency:  "THB",
				Discounts: map[quote.DiscountCategory]float64{
					quote.DiscountChildren: 50,
				},
				MinParticipants: 1,
				MaxParticipants: 12,
				AddOns: map[string]quote.AddOnFee{
					"lunch":    {Amount: 150, PerPerson: true},
					"transfer": {Amount: 1000, PerPerson: false},
				},
			},
			Slots: []quote.ScheduleSlot{
				{
					ID:             "sim-0800",
					Date:           "2024-06-05",
					StartTime:      "08:00",
					EndTime:        "16:00",
					AvailableSpots: 12,
					BookedSpots:    3,
					Status:         quote.SlotAvailable,
				},
				{
					ID:             "sim-1030",
					Date:           "2024-06-05",
					StartTime:      "10:30",
					EndTime:        "18:30",
					AvailableSpots: 12,
					BookedSpots:    0,
					PriceModifier:  -200,
					Status:         quote.SlotAvailable,
				},
				{
					ID:             "sim-0800-b",
					Date:           "2024-06-06",
					StartTime:      "08:00",
					EndTime:        "16:00",
					AvailableSpots: 12,
					BookedSpots:    12,
					Status:         quote.SlotFullyBooked,
				},
			},
		},
		{
			ID:   "beach-jeep",
			Kind: quote.KindVehicle,
			Name: "Open-top Beach Jeep",
			Pricing: quote.PricingRules{
				BasePrice: 1400,
				PriceType: quote.PerGroup,
				Currency:  "THB",
				AddOns: map[string]quote.AddOnFee{
					"child-seat":     {Amount: 100, PerPerson: false},
					"hotel-delivery": {Amount: 300, PerPerson: false},
				},
			},
			Vehicle: &quote.VehicleSpec{Model: "Suzuki Jimny", Capacity: 4},
			Days: []quote.AvailabilityDay{
				{Date: "2024-06-05", Available: true},
				{Date: "2024-06-06", Available: true},
				{Date: "2024-06-07", Available: false},
				{Date: "2024-06-08", Available: true, BookedTimeSlots: []string{"09:00-18:00"}},
			},
		},
	}
}

func Up(ctx context.Context, l *logger.Logger, storage storage) (err error) {
	ctx, err = storage.BeginTransaction(ctx, "")
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if err = storage.RollbackTransaction(ctx); err != nil {
				l.LogErrorf("Could not rollback migration transaction after panic %v", p)
			}

			l.LogInfo("Migration transaction has been roll backed after panic")

			panic(p)
		}

		if err != nil {
			if err = storage.RollbackTransaction(ctx); err != nil {
				l.LogErrorf("Could not rollback migration transaction after error %v", err.Error())
			}

			l.LogInfo("Migration transaction has been roll backed after error")

			return
		}

		if err = storage.CommitTransaction(ctx); err != nil {
			l.LogErrorf("Could not commit migration transaction, err %v", err.Error())
		}

		l.LogInfo("Migration transaction has been committed")
	}()

	if err = storage.SaveItems(ctx, demoItems()); err != nil {
		return fmt.Errorf("save catalog items to storage: %w", err)
	}

	return nil
}
