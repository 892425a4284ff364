package match

import (
	"strings"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// eventText is the searchable text of an event: title, description, key
// facts and affected products, lowercased.
func eventText(e domain.DetectedEvent) string {
	parts := []string{e.Title, e.Description}
	parts = append(parts, e.KeyFacts...)
	parts = append(parts, e.AffectedProducts...)
	return strings.ToLower(strings.Join(parts, " "))
}

// matchedCategories applies the keyword table for the event's type against
// the event text and returns the stocked categories it maps to, in rule
// order without duplicates. An empty result means the keyword rules bind
// the event to nothing the business carries.
func matchedCategories(e domain.DetectedEvent, bc *domain.BusinessContext) []string {
	rules := bc.Keywords[e.Type]
	if len(rules) == 0 {
		return nil
	}

	text := eventText(e)
	seen := make(map[string]bool)
	var matched []string

	for _, rule := range rules {
		if seen[rule.Category] || !bc.StocksCategory(rule.Category) {
			continue
		}
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				matched = append(matched, rule.Category)
				seen[rule.Category] = true
				break
			}
		}
	}
	return matched
}

// mentionsSupplier scans the event text for a supplier from the graph and
// returns the first match in catalogue order.
func mentionsSupplier(e domain.DetectedEvent, bc *domain.BusinessContext) (domain.Supplier, bool) {
	text := eventText(e)
	for _, s := range bc.Suppliers {
		if s.Name != "" && strings.Contains(text, strings.ToLower(s.Name)) {
			return s, true
		}
	}
	return domain.Supplier{}, false
}
