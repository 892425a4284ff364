package domain

import (
	"fmt"
	"time"
)

// EventType is the closed enumeration of external event classifications.
// The matcher dispatches on this tag; adding a type means registering an
// evaluator for it, never falling through string comparisons.
type EventType string

const (
	EventMajorEvent       EventType = "major_event"
	EventHealthEmergency  EventType = "health_emergency"
	EventWeatherExtreme   EventType = "weather_extreme"
	EventEconomicShock    EventType = "economic_shock"
	EventCompetitorAction EventType = "competitor_action"
	EventRegulatoryChange EventType = "regulatory_change"
	EventSupplyDisruption EventType = "supply_disruption"
	EventViralTrend       EventType = "viral_trend"
	EventOther            EventType = "other"
)

// EventTypes lists every known variant in a stable order.
func EventTypes() []EventType {
	return []EventType{
		EventMajorEvent, EventHealthEmergency, EventWeatherExtreme,
		EventEconomicShock, EventCompetitorAction, EventRegulatoryChange,
		EventSupplyDisruption, EventViralTrend, EventOther,
	}
}

// ParseEventType validates a raw tag against the closed enumeration.
func ParseEventType(s string) (EventType, error) {
	for _, t := range EventTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown event type %q", s)
}

// Severity is the event severity scale as delivered by the extraction
// collaborator. The engine consumes it, it never re-derives it.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AtLeast reports whether the severity is as high as min or higher.
func (s Severity) AtLeast(min Severity) bool {
	return s.rank() >= min.rank()
}

func (s Severity) rank() int {
	switch s {
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	default:
		return 0
	}
}

// Urgency is how soon a response is expected.
type Urgency string

const (
	UrgencyImmediate   Urgency = "immediate"
	UrgencyWithin24h   Urgency = "within_24h"
	UrgencyWithinWeek  Urgency = "within_week"
	UrgencyWithinMonth Urgency = "within_month"
	UrgencyLow         Urgency = "low"
)

// ConfidenceLevel is the extractor's own confidence in the event fact.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// DetectedEvent is an already-classified external fact. The engine treats it
// as opaque evidence: fields are read, never re-derived or second-guessed.
// Coordinate, when present, was resolved by the host's location lookup; the
// engine performs no geocoding.
type DetectedEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"event_type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`

	Severity   Severity        `json:"severity"`
	Confidence ConfidenceLevel `json:"confidence"`
	Urgency    Urgency         `json:"urgency"`

	Location   string      `json:"location,omitempty"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
	EventDate  *time.Time  `json:"event_date,omitempty"`

	ExpectedAttendance *int     `json:"expected_attendance,omitempty"`
	AffectedProducts   []string `json:"affected_products,omitempty"`
	AffectedAreas      []string `json:"affected_areas,omitempty"`
	KeyFacts           []string `json:"key_facts,omitempty"`

	SourceURL   string `json:"source_url,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Validate checks the minimum schema an evaluator depends on.
func (e DetectedEvent) Validate() error {
	if _, err := ParseEventType(string(e.Type)); err != nil {
		return &FieldError{Record: e.ID, Field: "event_type", Reason: fmt.Sprintf("unknown value %q", e.Type)}
	}
	if e.Title == "" {
		return &FieldError{Record: e.ID, Field: "title", Reason: "is required"}
	}
	if e.ExpectedAttendance != nil && *e.ExpectedAttendance < 0 {
		return &FieldError{Record: e.ID, Field: "expected_attendance", Reason: fmt.Sprintf("must be >= 0, got %d", *e.ExpectedAttendance)}
	}
	return nil
}
