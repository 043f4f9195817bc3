package handlers

import (
	"net/http"
	"time"
)

// Health reports overall service health plus a per-component breakdown.
// The endpoint always answers 200; degraded components show up in the
// body so probes and humans can tell what exactly is unhappy.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	components := map[string]string{}
	status := "Healthy"

	if err := h.store.Health(); err != nil {
		components["store"] = err.Error()
		status = "Degraded"
	} else {
		components["store"] = "ok"
	}

	if err := h.cache.Health(); err != nil {
		components["cache"] = err.Error()
		status = "Degraded"
	} else {
		components["cache"] = "ok"
	}

	if h.producer != nil {
		if err := h.producer.Health(); err != nil {
			components["bus"] = err.Error()
			status = "Degraded"
		} else {
			components["bus"] = "ok"
		}
	} else {
		components["bus"] = "disabled"
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service":    serviceName,
		"status":     status,
		"utcNow":     time.Now().UTC(),
		"components": components,
	})
}
