package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepository_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	repo, err := NewFileRepository(dir)
	require.NoError(t, err)
	require.NoError(t, repo.RecordEvent(EventMapGenerated, at, EventMetadata{"tiles": 9}))
	require.NoError(t, repo.RecordEvent(EventBoosterOpened, at.Add(time.Minute), EventMetadata{
		"rarity_counts": map[string]int{"common": 3},
	}))

	reopened, err := NewFileRepository(dir)
	require.NoError(t, err)

	events, err := reopened.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 1, events[0].ID)
	assert.Equal(t, 2, events[1].ID)
	assert.Equal(t, EventMapGenerated, events[0].Type)

	stats, err := CalculateStats(events, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MapsGenerated)
	assert.Equal(t, 9, stats.TilesGenerated)
	assert.Equal(t, 1, stats.PacksOpened)
	assert.Equal(t, 3, stats.CardsByRarity["common"])
}

func TestFileRepository_FiltersLikeMemory(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	require.NoError(t, err)

	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.RecordEvent(EventMapGenerated, at, nil))
	require.NoError(t, repo.RecordEvent(EventShipFused, at.Add(time.Hour), nil))

	events, err := repo.GetEvents(at.Add(30*time.Minute), nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventShipFused, events[0].Type)

	events, err = repo.GetEvents(time.Time{}, []EventType{EventMapGenerated})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventMapGenerated, events[0].Type)
}

func TestFileRepository_ClearRemovesLog(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	require.NoError(t, err)

	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.RecordEvent(EventMapGenerated, at, nil))
	require.NoError(t, repo.Clear())

	events, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	assert.Empty(t, events)

	// Clearing an already empty log is fine.
	require.NoError(t, repo.Clear())
}
