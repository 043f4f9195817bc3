package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-highlights/internal/common/logging"
	"match-highlights/internal/models"
)

func remoteTestHighlight() *models.Highlight {
	return &models.Highlight{
		ID:          "h-9",
		MatchID:     "match-9",
		OccurredAt:  time.Date(2025, 3, 10, 19, 45, 0, 0, time.UTC),
		EventType:   "goal",
		Team:        "away",
		Player:      "Carol",
		Description: "Header from a corner",
	}
}

func TestRemoteEnricherNoEndpointConfigured(t *testing.T) {
	enricher := NewRemoteEnricher(RemoteConfig{}, logging.NewNoOpLogger())

	result := enricher.Enrich(context.Background(), remoteTestHighlight())

	assert.False(t, result.Success)
	assert.Equal(t, "Enrichment endpoint is not configured.", result.FailureReason)
}

func TestRemoteEnricherSuccess(t *testing.T) {
	var gotAPIKey string
	var gotRequest enrichmentRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("X-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		json.NewEncoder(w).Encode(Result{
			Success:      true,
			Title:        "Away GOAL by Carol",
			Summary:      "Carol scored.",
			ThumbnailURL: "https://thumbnails.example/h-9.jpg",
		})
	}))
	defer server.Close()

	enricher := NewRemoteEnricher(RemoteConfig{
		Endpoint: server.URL,
		APIKey:   "secret-key",
	}, logging.NewNoOpLogger())

	result := enricher.Enrich(context.Background(), remoteTestHighlight())

	assert.True(t, result.Success)
	assert.Equal(t, "Away GOAL by Carol", result.Title)
	assert.Equal(t, "https://thumbnails.example/h-9.jpg", result.ThumbnailURL)

	assert.Equal(t, "secret-key", gotAPIKey)
	assert.Equal(t, "h-9", gotRequest.ID)
	assert.Equal(t, "match-9", gotRequest.MatchID)
	assert.Equal(t, "goal", gotRequest.EventType)
}

func TestRemoteEnricherNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	enricher := NewRemoteEnricher(RemoteConfig{Endpoint: server.URL}, logging.NewNoOpLogger())

	result := enricher.Enrich(context.Background(), remoteTestHighlight())

	assert.False(t, result.Success)
	assert.Equal(t, "Enrichment endpoint returned 502.", result.FailureReason)
}

func TestRemoteEnricherInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	enricher := NewRemoteEnricher(RemoteConfig{Endpoint: server.URL}, logging.NewNoOpLogger())

	result := enricher.Enrich(context.Background(), remoteTestHighlight())

	assert.False(t, result.Success)
	assert.Equal(t, "Enrichment endpoint returned invalid JSON.", result.FailureReason)
}

func TestRemoteEnricherUnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	enricher := NewRemoteEnricher(RemoteConfig{Endpoint: server.URL}, logging.NewNoOpLogger())

	result := enricher.Enrich(context.Background(), remoteTestHighlight())

	assert.False(t, result.Success)
	assert.Equal(t, "Unexpected error during remote enrichment call.", result.FailureReason)
}

func TestRemoteEnricherCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	enricher := NewRemoteEnricher(RemoteConfig{Endpoint: server.URL}, logging.NewNoOpLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := enricher.Enrich(ctx, remoteTestHighlight())

	assert.False(t, result.Success)
	assert.Equal(t, "Enrichment request was canceled.", result.FailureReason)
}
