package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-highlights/internal/brokers"
	"match-highlights/internal/cache"
	"match-highlights/internal/common/logging"
	"match-highlights/internal/config"
	"match-highlights/internal/models"
	"match-highlights/internal/storage"
)

type fakeStore struct {
	highlights map[string]*models.Highlight
	listResult []*models.Highlight
	gotFilters storage.ListFilters
	getErr     error
	listErr    error
}

func (f *fakeStore) Close() error  { return nil }
func (f *fakeStore) Health() error { return nil }

func (f *fakeStore) Insert(_ context.Context, h *models.Highlight) error {
	f.highlights[h.ID] = h
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*models.Highlight, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	h, ok := f.highlights[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return h, nil
}

func (f *fakeStore) List(_ context.Context, filters storage.ListFilters) ([]*models.Highlight, error) {
	f.gotFilters = filters
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeStore) ListPendingOldest(_ context.Context, _ int) ([]*models.Highlight, error) {
	return nil, nil
}

func (f *fakeStore) UpdateBatch(_ context.Context, _ []*models.Highlight) error { return nil }

type fakePublisher struct {
	err       error
	published []*models.MatchEvent
}

func (f *fakePublisher) PublishMatchEvent(_ context.Context, event *models.MatchEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

func newTestHandlers(store *fakeStore, publisher *fakePublisher) (*Handlers, cache.HighlightCache) {
	highlightCache := cache.NewLocalCache(time.Minute)
	h := New(store, highlightCache, publisher, nil, &config.Config{}, logging.NewNoOpLogger())
	return h, highlightCache
}

func readyHighlight(id string) *models.Highlight {
	return &models.Highlight{
		ID:         id,
		MatchID:    "match-1",
		OccurredAt: time.Date(2025, 3, 10, 19, 45, 0, 0, time.UTC),
		EventType:  "goal",
		Team:       "home",
		Player:     "Alice",
		Status:     models.StatusReady,
		Title:      "Home GOAL by Alice",
		CreatedAt:  time.Date(2025, 3, 10, 19, 46, 0, 0, time.UTC),
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPublishEventAccepted(t *testing.T) {
	store := &fakeStore{highlights: map[string]*models.Highlight{}}
	publisher := &fakePublisher{}
	h, _ := newTestHandlers(store, publisher)

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(
		`{"matchId":"match-1","occurredAt":"2025-03-10T19:45:00Z","eventType":"goal","player":"Alice"}`))
	rec := httptest.NewRecorder()

	h.PublishEvent(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "match-1", body["matchId"])
	assert.Equal(t, "goal", body["eventType"])
	require.Len(t, publisher.published, 1)
}

func TestPublishEventValidation(t *testing.T) {
	h, _ := newTestHandlers(&fakeStore{highlights: map[string]*models.Highlight{}}, &fakePublisher{})

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"team":"home"}`))
	rec := httptest.NewRecorder()

	h.PublishEvent(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	fieldErrors, ok := body["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fieldErrors, "matchId")
	assert.Contains(t, fieldErrors, "occurredAt")
	assert.Contains(t, fieldErrors, "eventType")
}

func TestPublishEventInvalidJSON(t *testing.T) {
	h, _ := newTestHandlers(&fakeStore{highlights: map[string]*models.Highlight{}}, &fakePublisher{})

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()

	h.PublishEvent(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublishEventTransportFailure(t *testing.T) {
	publisher := &fakePublisher{err: &brokers.PublishError{
		MatchID: "match-1",
		Topic:   "match-events",
		Err:     errors.New("all brokers down"),
	}}
	h, _ := newTestHandlers(&fakeStore{highlights: map[string]*models.Highlight{}}, publisher)

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(
		`{"matchId":"match-1","occurredAt":"2025-03-10T19:45:00Z","eventType":"goal"}`))
	rec := httptest.NewRecorder()

	h.PublishEvent(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "match-1", body["matchId"])
	assert.Equal(t, "match-events", body["topic"])
}

func TestPublishEventUnexpectedFailure(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("marshalling exploded")}
	h, _ := newTestHandlers(&fakeStore{highlights: map[string]*models.Highlight{}}, publisher)

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(
		`{"matchId":"match-1","occurredAt":"2025-03-10T19:45:00Z","eventType":"goal"}`))
	rec := httptest.NewRecorder()

	h.PublishEvent(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func getHighlightRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/highlights/"+id, nil)
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func TestGetHighlightFromStoreThenCache(t *testing.T) {
	store := &fakeStore{highlights: map[string]*models.Highlight{
		"h-1": readyHighlight("h-1"),
	}}
	h, highlightCache := newTestHandlers(store, &fakePublisher{})

	rec := httptest.NewRecorder()
	h.GetHighlight(rec, getHighlightRequest("h-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Home GOAL by Alice", body["title"])
	assert.Equal(t, "match-1", body["matchId"])

	// Read-through populated the cache; a second read skips the store.
	cached, hit := highlightCache.Get(context.Background(), "h-1")
	require.True(t, hit)
	assert.Equal(t, "h-1", cached.ID)

	store.getErr = errors.New("store offline")
	rec = httptest.NewRecorder()
	h.GetHighlight(rec, getHighlightRequest("h-1"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetHighlightNotFound(t *testing.T) {
	h, _ := newTestHandlers(&fakeStore{highlights: map[string]*models.Highlight{}}, &fakePublisher{})

	rec := httptest.NewRecorder()
	h.GetHighlight(rec, getHighlightRequest("missing"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Highlight not found.", body["message"])
	assert.Equal(t, "missing", body["highlightId"])
}

func TestGetHighlightStoreError(t *testing.T) {
	store := &fakeStore{highlights: map[string]*models.Highlight{}, getErr: errors.New("store offline")}
	h, _ := newTestHandlers(store, &fakePublisher{})

	rec := httptest.NewRecorder()
	h.GetHighlight(rec, getHighlightRequest("h-1"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListHighlightsPagingAndFilters(t *testing.T) {
	store := &fakeStore{
		highlights: map[string]*models.Highlight{},
		listResult: []*models.Highlight{readyHighlight("h-1"), readyHighlight("h-2")},
	}
	h, _ := newTestHandlers(store, &fakePublisher{})

	req := httptest.NewRequest(http.MethodGet,
		"/highlights?matchId=match-1&status=READY&page=3&pageSize=500", nil)
	rec := httptest.NewRecorder()

	h.ListHighlights(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "match-1", store.gotFilters.MatchID)
	assert.Equal(t, "READY", store.gotFilters.Status)
	assert.Equal(t, 100, store.gotFilters.Limit)
	assert.Equal(t, 200, store.gotFilters.Offset)

	var dtos []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dtos))
	assert.Len(t, dtos, 2)
}

func TestListHighlightsStatusFilter(t *testing.T) {
	store := &fakeStore{highlights: map[string]*models.Highlight{}}
	h, _ := newTestHandlers(store, &fakePublisher{})

	// Lowercase input is normalized to the stored form.
	req := httptest.NewRequest(http.MethodGet, "/highlights?status=pending", nil)
	rec := httptest.NewRecorder()
	h.ListHighlights(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusPending, store.gotFilters.Status)

	req = httptest.NewRequest(http.MethodGet, "/highlights?status=ARCHIVED", nil)
	rec = httptest.NewRecorder()
	h.ListHighlights(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "status must be one of PENDING, READY, FAILED.", body["message"])
}

func TestListHighlightsDefaults(t *testing.T) {
	store := &fakeStore{highlights: map[string]*models.Highlight{}}
	h, _ := newTestHandlers(store, &fakePublisher{})

	req := httptest.NewRequest(http.MethodGet, "/highlights?page=0&pageSize=0", nil)
	rec := httptest.NewRecorder()

	h.ListHighlights(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, store.gotFilters.Limit)
	assert.Equal(t, 0, store.gotFilters.Offset)

	// An empty result still encodes as [], not null.
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestHealthReportsComponents(t *testing.T) {
	h, _ := newTestHandlers(&fakeStore{highlights: map[string]*models.Highlight{}}, &fakePublisher{})

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "match-highlights", body["service"])
	assert.Equal(t, "Healthy", body["status"])
	assert.NotEmpty(t, body["utcNow"])

	components, ok := body["components"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ok", components["store"])
	assert.Equal(t, "disabled", components["bus"])
}
