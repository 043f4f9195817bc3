package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"match-highlights/internal/brokers"
	"match-highlights/internal/common/logging"
	"match-highlights/internal/events"
	"match-highlights/internal/models"
)

// PublishEvent accepts a match event and forwards it to the bus. The
// publish is awaited: transport failures surface as 503 with enough
// context for the caller to retry, validation failures as a field map.
func (h *Handlers) PublishEvent(w http.ResponseWriter, r *http.Request) {
	var event models.MatchEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{
			"message": "Request body must be valid JSON.",
		})
		return
	}

	if problems := events.Validate(&event); len(problems) > 0 {
		h.respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"errors": problems,
		})
		return
	}

	if err := h.publisher.PublishMatchEvent(r.Context(), &event); err != nil {
		var pubErr *brokers.PublishError
		if errors.As(err, &pubErr) {
			h.logger.Error("Event publish transport failure", err,
				logging.String("match_id", pubErr.MatchID),
				logging.String("topic", pubErr.Topic))
			h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"message": "Event bus is unavailable, please retry.",
				"matchId": pubErr.MatchID,
				"topic":   pubErr.Topic,
			})
			return
		}

		h.logger.Error("Unexpected error publishing event", err,
			logging.String("match_id", event.MatchID))
		h.respondJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Unexpected error while accepting the event.",
		})
		return
	}

	h.respondJSON(w, http.StatusAccepted, map[string]string{
		"message":   "Match event accepted for processing.",
		"matchId":   event.MatchID,
		"eventType": event.EventType,
	})
}
