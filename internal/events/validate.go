package events

import (
	"strings"

	"match-highlights/internal/models"
)

// Validate checks the required fields of an inbound match event and returns
// a field-to-reasons map, empty when the event is acceptable.
func Validate(event *models.MatchEvent) map[string][]string {
	problems := map[string][]string{}

	if strings.TrimSpace(event.MatchID) == "" {
		problems["matchId"] = append(problems["matchId"], "matchId must be non-empty.")
	}
	if event.OccurredAt.IsZero() {
		problems["occurredAt"] = append(problems["occurredAt"], "occurredAt must be a valid date/time.")
	}
	if strings.TrimSpace(event.EventType) == "" {
		problems["eventType"] = append(problems["eventType"], "eventType is required.")
	}

	return problems
}
