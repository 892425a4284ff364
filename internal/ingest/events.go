package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// ReadEvents decodes a JSON array of detected events as delivered by the
// extraction collaborator. Validation happens per event at evaluation time,
// not here, so one bad event cannot block the batch.
func ReadEvents(r io.Reader) ([]domain.DetectedEvent, error) {
	var events []domain.DetectedEvent
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}
