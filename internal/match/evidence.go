package match

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/retailpulse/retailpulse/internal/domain"
	"github.com/retailpulse/retailpulse/internal/store"
)

// consumptionWindowDays bounds how far back the consumption rate looks.
const consumptionWindowDays = 30

// Evidence is the read-only bundle of cached facts an evaluation runs
// against. All fields are optional: an empty cache yields empty evidence and
// evaluators degrade to heuristics, never fail.
type Evidence struct {
	// Latest is the most recent cached feature set, nil when the cache is
	// empty.
	Latest *domain.DailyFeatureSet

	// Baseline is the current baseline set, nil when absent.
	Baseline *domain.Baseline

	// Stock is units on hand per category, from the host's latest
	// inventory snapshot.
	Stock map[string]int

	// Consumption is the average daily units sold per category over the
	// trailing window of populated cached days.
	Consumption map[string]float64
}

// HasInventory reports whether a stock position exists for at least one of
// the categories. A position with zero recorded consumption still counts:
// it yields the infinite-supply marker downstream, not a data gap.
func (ev Evidence) HasInventory(categories []string) bool {
	for _, c := range categories {
		if _, ok := ev.Stock[c]; ok {
			return true
		}
	}
	return false
}

// inventoryPosition sums stock and consumption across the categories,
// skipping categories with no stock record.
func (ev Evidence) inventoryPosition(categories []string) (stock float64, dailyRate float64) {
	for _, c := range categories {
		if units, ok := ev.Stock[c]; ok {
			stock += float64(units)
			dailyRate += ev.Consumption[c]
		}
	}
	return stock, dailyRate
}

// StockByCategory folds inventory snapshots into per-category unit totals.
func StockByCategory(snapshots []domain.InventorySnapshot) map[string]int {
	stock := make(map[string]int, len(snapshots))
	for _, s := range snapshots {
		if s.Category == "" {
			continue
		}
		stock[s.Category] += s.QuantityOnHand
	}
	return stock
}

// loadEvidence assembles Evidence from the feature store. Missing cache
// entries degrade to empty evidence; only backend errors propagate.
func loadEvidence(ctx context.Context, fs store.FeatureStore, stock map[string]int) (Evidence, error) {
	ev := Evidence{Stock: stock, Consumption: make(map[string]float64)}

	latest, ok, err := fs.LatestDate(ctx)
	if err != nil {
		return ev, err
	}
	if !ok {
		log.Debug().Msg("feature cache empty, evaluating without sales evidence")
		return ev, nil
	}

	ev.Latest, err = fs.GetFeatures(ctx, latest)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return ev, err
	}

	ev.Baseline, err = fs.GetBaseline(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return ev, err
	}

	dates, err := fs.ListDates(ctx)
	if err != nil {
		return ev, err
	}
	if len(dates) > consumptionWindowDays {
		dates = dates[len(dates)-consumptionWindowDays:]
	}

	unitTotals := make(map[string]int)
	populated := make(map[string]int)
	for _, date := range dates {
		day, err := fs.GetFeatures(ctx, date)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return ev, err
		}
		if day.NoData {
			continue
		}
		for category, m := range day.ByCategory {
			unitTotals[category] += m.Units
			populated[category]++
		}
	}
	for category, total := range unitTotals {
		if n := populated[category]; n > 0 {
			ev.Consumption[category] = float64(total) / float64(n)
		}
	}

	return ev, nil
}
