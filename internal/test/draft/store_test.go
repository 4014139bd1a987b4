package draft_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness-intake-backend/internal/draft"
	"fitness-intake-backend/internal/models"
)

func sampleDraft() models.AnswerDraft {
	return models.AnswerDraft{
		Profile: &models.ProfileSection{
			UserName: "Test User",
			Email:    "test@example.com",
		},
		Diet: &models.DietSection{
			DietHabits: []string{"eat_fast", "late_night_snacks"},
		},
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := draft.NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("client-1", sampleDraft(), []int{0, 1}))

	loaded, steps := store.Load("client-1")
	require.NotNil(t, loaded.Profile)
	assert.Equal(t, "Test User", loaded.Profile.UserName)
	assert.Equal(t, []string{"eat_fast", "late_night_snacks"}, loaded.Diet.DietHabits)
	assert.Equal(t, []int{0, 1}, steps)
}

func TestStore_LoadMissingFailsSoft(t *testing.T) {
	store, err := draft.NewStore(t.TempDir())
	require.NoError(t, err)

	loaded, steps := store.Load("nobody")
	assert.Nil(t, loaded.Profile)
	assert.Empty(t, steps)
}

func TestStore_LoadMalformedFailsSoft(t *testing.T) {
	dir := t.TempDir()
	store, err := draft.NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save("client-1", sampleDraft(), []int{0}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "draft-client-1.json"), []byte("{not json"), 0o644))

	loaded, _ := store.Load("client-1")
	assert.Nil(t, loaded.Profile)
}

func TestStore_ClientIsolation(t *testing.T) {
	store, err := draft.NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("client-a", sampleDraft(), []int{0}))

	loaded, steps := store.Load("client-b")
	assert.Nil(t, loaded.Profile)
	assert.Empty(t, steps)
}

func TestStore_HostileClientIDStaysInDir(t *testing.T) {
	dir := t.TempDir()
	store, err := draft.NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save("../../etc/passwd", sampleDraft(), nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, e.IsDir())
	}
	loaded, _ := store.Load("../../etc/passwd")
	require.NotNil(t, loaded.Profile)
}

func TestStore_Clear(t *testing.T) {
	store, err := draft.NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("client-1", sampleDraft(), []int{0}))
	require.NoError(t, store.Clear("client-1"))

	loaded, steps := store.Load("client-1")
	assert.Nil(t, loaded.Profile)
	assert.Empty(t, steps)

	// Clearing again is a no-op.
	assert.NoError(t, store.Clear("client-1"))
}

func TestStore_LastSubmissionSurvivesClear(t *testing.T) {
	store, err := draft.NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("client-1", sampleDraft(), []int{0}))
	require.NoError(t, store.SetLastSubmission("client-1", "FIT-1700000000-7"))
	require.NoError(t, store.Clear("client-1"))

	assert.Equal(t, "FIT-1700000000-7", store.LastSubmission("client-1"))
	assert.Empty(t, store.LastSubmission("client-2"))
}

func TestFlusher_WritesMarkedDrafts(t *testing.T) {
	store, err := draft.NewStore(t.TempDir())
	require.NoError(t, err)

	flusher := draft.NewFlusher(store, 10*time.Millisecond)
	flusher.Mark("client-1", sampleDraft(), []int{0})
	flusher.Flush()

	loaded, steps := store.Load("client-1")
	require.NotNil(t, loaded.Profile)
	assert.Equal(t, []int{0}, steps)
}

func TestFlusher_ForgetKeepsClearedDraftCleared(t *testing.T) {
	store, err := draft.NewStore(t.TempDir())
	require.NoError(t, err)

	flusher := draft.NewFlusher(store, 10*time.Millisecond)
	flusher.Mark("client-1", sampleDraft(), []int{0})

	require.NoError(t, store.Clear("client-1"))
	flusher.Forget("client-1")
	flusher.Flush()

	loaded, steps := store.Load("client-1")
	assert.Nil(t, loaded.Profile)
	assert.Empty(t, steps)
}
