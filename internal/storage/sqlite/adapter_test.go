package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-highlights/internal/models"
	"match-highlights/internal/storage"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()

	adapter, err := NewAdapter(&Config{DatabasePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return adapter
}

func newTestHighlight(matchID string, occurredAt, createdAt time.Time) *models.Highlight {
	return &models.Highlight{
		ID:          uuid.NewString(),
		MatchID:     matchID,
		OccurredAt:  occurredAt,
		EventType:   "goal",
		Team:        "home",
		Player:      "Alice",
		Description: "Screamer from 30 yards",
		Status:      models.StatusPending,
		CreatedAt:   createdAt,
	}
}

func TestInsertAndGetByID(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	h := newTestHighlight("match-1", now, now)

	require.NoError(t, adapter.Insert(ctx, h))

	got, err := adapter.GetByID(ctx, h.ID)
	require.NoError(t, err)

	assert.Equal(t, h.ID, got.ID)
	assert.Equal(t, "match-1", got.MatchID)
	assert.Equal(t, "goal", got.EventType)
	assert.Equal(t, "Alice", got.Player)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Empty(t, got.Title)
	assert.Nil(t, got.UpdatedAt)
}

func TestGetByIDNotFound(t *testing.T) {
	adapter := newTestAdapter(t)

	_, err := adapter.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListOrderingAndFilters(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	oldest := newTestHighlight("match-1", base.Add(-2*time.Hour), base)
	middle := newTestHighlight("match-2", base.Add(-1*time.Hour), base)
	newest := newTestHighlight("match-1", base, base)
	newest.Status = models.StatusReady

	for _, h := range []*models.Highlight{oldest, middle, newest} {
		require.NoError(t, adapter.Insert(ctx, h))
	}

	t.Run("newest first", func(t *testing.T) {
		got, err := adapter.List(ctx, storage.ListFilters{Limit: 50})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, newest.ID, got[0].ID)
		assert.Equal(t, middle.ID, got[1].ID)
		assert.Equal(t, oldest.ID, got[2].ID)
	})

	t.Run("filter by match", func(t *testing.T) {
		got, err := adapter.List(ctx, storage.ListFilters{MatchID: "match-1", Limit: 50})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, newest.ID, got[0].ID)
		assert.Equal(t, oldest.ID, got[1].ID)
	})

	t.Run("filter by status", func(t *testing.T) {
		got, err := adapter.List(ctx, storage.ListFilters{Status: models.StatusReady, Limit: 50})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, newest.ID, got[0].ID)
	})

	t.Run("paging", func(t *testing.T) {
		got, err := adapter.List(ctx, storage.ListFilters{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, middle.ID, got[0].ID)
	})
}

func TestListPendingOldest(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	first := newTestHighlight("match-1", base, base.Add(-3*time.Hour))
	second := newTestHighlight("match-1", base, base.Add(-2*time.Hour))
	third := newTestHighlight("match-1", base, base.Add(-1*time.Hour))
	done := newTestHighlight("match-1", base, base.Add(-4*time.Hour))
	done.Status = models.StatusReady

	for _, h := range []*models.Highlight{third, first, done, second} {
		require.NoError(t, adapter.Insert(ctx, h))
	}

	got, err := adapter.ListPendingOldest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
}

func TestUpdateBatch(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	a := newTestHighlight("match-1", now, now)
	b := newTestHighlight("match-1", now, now)

	require.NoError(t, adapter.Insert(ctx, a))
	require.NoError(t, adapter.Insert(ctx, b))

	updated := now.Add(time.Minute)
	a.Status = models.StatusReady
	a.Title = "Home GOAL by Alice"
	a.Summary = "Alice recorded a goal for the home side."
	a.ThumbnailURL = "https://thumbnails.example/a.jpg"
	a.UpdatedAt = &updated
	b.Status = models.StatusFailed
	b.UpdatedAt = &updated

	require.NoError(t, adapter.UpdateBatch(ctx, []*models.Highlight{a, b}))

	gotA, err := adapter.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, gotA.Status)
	assert.Equal(t, "Home GOAL by Alice", gotA.Title)
	assert.Equal(t, "https://thumbnails.example/a.jpg", gotA.ThumbnailURL)
	require.NotNil(t, gotA.UpdatedAt)

	gotB, err := adapter.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, gotB.Status)
	assert.Empty(t, gotB.Title)
}

func TestUpdateBatchEmpty(t *testing.T) {
	adapter := newTestAdapter(t)
	assert.NoError(t, adapter.UpdateBatch(context.Background(), nil))
}
