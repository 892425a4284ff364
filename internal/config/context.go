package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// LoadContext reads the business context file: stores, stocked categories,
// the supplier graph, and threshold overrides. Zero-valued thresholds fall
// back to the production defaults.
func LoadContext(path string) (*domain.BusinessContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read business context %s: %w", path, err)
	}

	var bc domain.BusinessContext
	if err := yaml.Unmarshal(data, &bc); err != nil {
		return nil, fmt.Errorf("parse business context %s: %w", path, err)
	}

	fillThresholdDefaults(&bc.Thresholds)

	if len(bc.Stores) == 0 {
		return nil, fmt.Errorf("business context %s: at least one store is required", path)
	}
	if len(bc.Categories) == 0 {
		return nil, fmt.Errorf("business context %s: at least one category is required", path)
	}
	return &bc, nil
}

// LoadKeywords reads the keyword rule table keyed by event type. Rules are
// data: the file can change without touching evaluator code.
func LoadKeywords(path string) (domain.KeywordTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword rules %s: %w", path, err)
	}

	var raw map[string][]domain.KeywordRule
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse keyword rules %s: %w", path, err)
	}

	table := make(domain.KeywordTable, len(raw))
	for key, rules := range raw {
		et, err := domain.ParseEventType(key)
		if err != nil {
			return nil, fmt.Errorf("keyword rules %s: %w", path, err)
		}
		table[et] = rules
	}
	return table, nil
}

func fillThresholdDefaults(t *domain.Thresholds) {
	defaults := domain.DefaultThresholds()

	if t.Proximity.HighKm == 0 {
		t.Proximity.HighKm = defaults.Proximity.HighKm
	}
	if t.Proximity.ModerateKm == 0 {
		t.Proximity.ModerateKm = defaults.Proximity.ModerateKm
	}
	if t.Proximity.LowKm == 0 {
		t.Proximity.LowKm = defaults.Proximity.LowKm
	}
	if t.Attendance.High == 0 {
		t.Attendance.High = defaults.Attendance.High
	}
	if t.Attendance.Moderate == 0 {
		t.Attendance.Moderate = defaults.Attendance.Moderate
	}
	if t.Attendance.Low == 0 {
		t.Attendance.Low = defaults.Attendance.Low
	}
	if t.BaselineWindowDays == 0 {
		t.BaselineWindowDays = defaults.BaselineWindowDays
	}
	if t.MinHistoryDays == 0 {
		t.MinHistoryDays = defaults.MinHistoryDays
	}
	if t.DaysOfSupplyFloor == 0 {
		t.DaysOfSupplyFloor = defaults.DaysOfSupplyFloor
	}
	if t.SupplierShareFloorPct == 0 {
		t.SupplierShareFloorPct = defaults.SupplierShareFloorPct
	}
	if len(t.DemandMultipliers) == 0 {
		t.DemandMultipliers = defaults.DemandMultipliers
	}
}
