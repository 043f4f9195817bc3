package models

import "time"

// Highlight lifecycle statuses. Pending is the initial state; Ready and
// Failed are terminal.
const (
	StatusPending = "PENDING"
	StatusReady   = "READY"
	StatusFailed  = "FAILED"
)

// Highlight is the persisted record for one notable match event. The event
// fields are copied from the triggering MatchEvent at creation and never
// change afterwards; only the worker mutates status and the enrichment
// fields.
type Highlight struct {
	ID          string    `json:"id"`
	MatchID     string    `json:"match_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	EventType   string    `json:"event_type"`
	Team        string    `json:"team"`
	Player      string    `json:"player"`
	Description string    `json:"description"`

	Status string `json:"status"`

	// Filled by the enrichment worker when the highlight becomes Ready.
	Title        string `json:"title,omitempty"`
	Summary      string `json:"summary,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ValidStatus reports whether the status is one of the known lifecycle states.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusReady, StatusFailed:
		return true
	}
	return false
}
