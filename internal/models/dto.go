package models

import "time"

// HighlightDTO is the public shape of a highlight returned by the read API
// and stored in the cache. It mirrors the entity today but keeps the store
// row free to evolve separately.
type HighlightDTO struct {
	ID          string    `json:"id"`
	MatchID     string    `json:"matchId"`
	OccurredAt  time.Time `json:"occurredAt"`
	EventType   string    `json:"eventType"`
	Team        string    `json:"team"`
	Player      string    `json:"player"`
	Description string    `json:"description"`

	Status string `json:"status"`

	Title        string `json:"title,omitempty"`
	Summary      string `json:"summary,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// ToDTO maps the persisted entity to the wire DTO.
func (h *Highlight) ToDTO() HighlightDTO {
	return HighlightDTO{
		ID:           h.ID,
		MatchID:      h.MatchID,
		OccurredAt:   h.OccurredAt,
		EventType:    h.EventType,
		Team:         h.Team,
		Player:       h.Player,
		Description:  h.Description,
		Status:       h.Status,
		Title:        h.Title,
		Summary:      h.Summary,
		ThumbnailURL: h.ThumbnailURL,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}
