package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"match-highlights/internal/circuitbreaker"
	"match-highlights/internal/common/logging"
	"match-highlights/internal/models"
)

// RemoteConfig configures the HTTP-backed enricher. The endpoint contract
// is a POST of the highlight's descriptive fields, answered with JSON in
// the shape of Result.
type RemoteConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// RemoteEnricher calls an external enrichment service. Every failure mode
// is converted into a Result with Success=false; the worker never sees an
// error or a panic from this type.
type RemoteEnricher struct {
	config  RemoteConfig
	client  *http.Client
	breaker *circuitbreaker.GoBreakerAdapter
	logger  logging.Logger
}

func NewRemoteEnricher(config RemoteConfig, logger logging.Logger) *RemoteEnricher {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &RemoteEnricher{
		config:  config,
		client:  &http.Client{Timeout: timeout},
		breaker: circuitbreaker.NewGoBreaker("enrichment-api", circuitbreaker.EnrichmentConfig, logger),
		logger:  logger,
	}
}

// enrichmentRequest carries only what the external service needs.
type enrichmentRequest struct {
	ID          string    `json:"id"`
	MatchID     string    `json:"matchId"`
	OccurredAt  time.Time `json:"occurredAt"`
	EventType   string    `json:"eventType"`
	Team        string    `json:"team,omitempty"`
	Player      string    `json:"player,omitempty"`
	Description string    `json:"description,omitempty"`
}

func (e *RemoteEnricher) Enrich(ctx context.Context, highlight *models.Highlight) Result {
	if e.config.Endpoint == "" {
		e.logger.Warn("Enrichment endpoint is not configured, cannot enrich remotely",
			logging.String("highlight_id", highlight.ID))
		return Result{
			Success:       false,
			FailureReason: "Enrichment endpoint is not configured.",
		}
	}

	var result Result
	err := e.breaker.Execute(ctx, func() error {
		var callErr error
		result, callErr = e.call(ctx, highlight)
		return callErr
	})
	if err != nil {
		if ctx.Err() != nil {
			return Result{
				Success:       false,
				FailureReason: "Enrichment request was canceled.",
			}
		}

		// call already produced a specific reason (bad status) when it
		// could; keep it so the failure is traceable from the row alone.
		if result.FailureReason != "" {
			return result
		}

		e.logger.Error("Remote enrichment call failed", err,
			logging.String("highlight_id", highlight.ID))
		return Result{
			Success:       false,
			FailureReason: "Unexpected error during remote enrichment call.",
		}
	}

	return result
}

// call performs one HTTP round trip. Responses that are unusable but not a
// sign of upstream ill health (bad JSON) come back as a failed Result with
// a nil error so they do not trip the breaker.
func (e *RemoteEnricher) call(ctx context.Context, highlight *models.Highlight) (Result, error) {
	payload := enrichmentRequest{
		ID:          highlight.ID,
		MatchID:     highlight.MatchID,
		OccurredAt:  highlight.OccurredAt,
		EventType:   highlight.EventType,
		Team:        highlight.Team,
		Player:      highlight.Player,
		Description: highlight.Description,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("failed to serialize enrichment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to build enrichment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.config.APIKey != "" {
		req.Header.Set("X-Api-Key", e.config.APIKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("enrichment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		e.logger.Warn("Enrichment endpoint returned non-success status",
			logging.Int("status", resp.StatusCode),
			logging.String("body", string(respBody)),
			logging.String("highlight_id", highlight.ID))
		return Result{
			Success:       false,
			FailureReason: fmt.Sprintf("Enrichment endpoint returned %d.", resp.StatusCode),
		}, fmt.Errorf("enrichment endpoint returned %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		e.logger.Warn("Enrichment endpoint returned invalid JSON",
			logging.String("highlight_id", highlight.ID),
			logging.Err(err))
		return Result{
			Success:       false,
			FailureReason: "Enrichment endpoint returned invalid JSON.",
		}, nil
	}

	return result, nil
}
