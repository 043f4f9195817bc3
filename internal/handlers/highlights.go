package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"match-highlights/internal/common/logging"
	"match-highlights/internal/common/pagination"
	"match-highlights/internal/models"
	"match-highlights/internal/storage"
)

// GetHighlight serves a single highlight, cache first.
func (h *Handlers) GetHighlight(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if cached, hit := h.cache.Get(r.Context(), id); hit {
		h.respondJSON(w, http.StatusOK, cached)
		return
	}

	highlight, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.respondJSON(w, http.StatusNotFound, map[string]string{
				"message":     "Highlight not found.",
				"highlightId": id,
			})
			return
		}

		h.logger.Error("Failed to load highlight", err, logging.String("highlight_id", id))
		h.respondJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Unexpected error while loading the highlight.",
		})
		return
	}

	dto := highlight.ToDTO()
	h.cache.Set(r.Context(), &dto)
	h.respondJSON(w, http.StatusOK, dto)
}

// ListHighlights serves a filtered, paged list of highlights, newest
// occurredAt first. Reads always hit the store; only point lookups are
// cached.
func (h *Handlers) ListHighlights(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)

	status := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status")))
	if status != "" && !models.ValidStatus(status) {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{
			"message": "status must be one of PENDING, READY, FAILED.",
		})
		return
	}

	filters := storage.ListFilters{
		MatchID: strings.TrimSpace(r.URL.Query().Get("matchId")),
		Status:  status,
		Limit:   params.Limit,
		Offset:  params.Offset,
	}

	highlights, err := h.store.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("Failed to list highlights", err)
		h.respondJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Unexpected error while listing highlights.",
		})
		return
	}

	dtos := make([]models.HighlightDTO, 0, len(highlights))
	for _, highlight := range highlights {
		dtos = append(dtos, highlight.ToDTO())
	}

	h.respondJSON(w, http.StatusOK, dtos)
}
