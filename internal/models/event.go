package models

import "time"

// MatchEvent is the wire message carried on the match-events topic. It is
// immutable once published: the publisher serializes it with exactly this
// JSON contract and the ingestion consumer parses the same shape.
type MatchEvent struct {
	MatchID     string    `json:"matchId"`
	OccurredAt  time.Time `json:"occurredAt"`
	EventType   string    `json:"eventType"`
	Team        string    `json:"team,omitempty"`
	Player      string    `json:"player,omitempty"`
	Description string    `json:"description,omitempty"`
}
