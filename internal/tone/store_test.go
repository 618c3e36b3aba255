package tone_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alkime/jailu/internal/tone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeStore(t *testing.T, dir, content string) {
	t.Helper()
	//nolint:gosec // Test file
	require.NoError(t, os.WriteFile(filepath.Join(dir, tone.StorageKey+".json"), []byte(content), 0o644))
}

func TestStore_LoadFiltersMalformedEntries(t *testing.T) {
	dir := t.TempDir()
	writeStore(t, dir, `[
		{"id": "custom-1", "name": "Prof", "description": "Tu es un prof.", "isCustom": true},
		{"id": "custom-2", "name": "Sans description", "isCustom": true}
	]`)

	store := tone.NewStore(dir, testLogger())
	tones := store.Load()

	require.Len(t, tones, 1)
	assert.Equal(t, "custom-1", tones[0].ID)
	assert.Equal(t, "Tu es un prof.", tones[0].Description)
}

func TestStore_LoadRejectsWrongTypesAndFlags(t *testing.T) {
	dir := t.TempDir()
	writeStore(t, dir, `[
		null,
		{"id": 12, "name": "Numeric id", "description": "d", "isCustom": true},
		{"id": "custom-3", "name": "Not custom", "description": "d", "isCustom": false},
		{"id": "custom-4", "name": "No flag", "description": "d"},
		{"id": "custom-5", "name": "Empty description is a string", "description": "", "isCustom": true}
	]`)

	tones := tone.NewStore(dir, testLogger()).Load()

	require.Len(t, tones, 1)
	assert.Equal(t, "custom-5", tones[0].ID)
}

func TestStore_LoadMissingOrCorruptFile(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, tone.NewStore(dir, testLogger()).Load())

	writeStore(t, dir, `{not json`)
	tones := tone.NewStore(dir, testLogger()).Load()
	assert.NotNil(t, tones)
	assert.Empty(t, tones)

	writeStore(t, dir, `{"id": "custom-1"}`)
	assert.Empty(t, tone.NewStore(dir, testLogger()).Load(), "a non-array document yields no tones")
}

func TestStore_AddRemovePersists(t *testing.T) {
	dir := t.TempDir()
	store := tone.NewStore(dir, testLogger())
	store.Load()

	store.Add(tone.Custom{ID: "custom-1", Name: "Prof", Description: "d1"})
	store.Add(tone.Custom{ID: "custom-2", Name: "Ami", Description: "d2"})
	tones := store.Add(tone.Custom{ID: "custom-3", Name: "Geek", Description: "d3"})
	require.Len(t, tones, 3)
	assert.True(t, tones[0].IsCustom, "Add marks tones custom")

	remaining := store.Remove("custom-2")
	require.Len(t, remaining, 2)

	reloaded := tone.NewStore(dir, testLogger()).Load()
	require.Len(t, reloaded, 2)
	assert.Equal(t, "custom-1", reloaded[0].ID)
	assert.Equal(t, "custom-3", reloaded[1].ID)

	found, ok := store.Find("custom-3")
	require.True(t, ok)
	assert.Equal(t, "Geek", found.Name)

	_, ok = store.Find("custom-2")
	assert.False(t, ok)
}

func TestStore_ListIsACopy(t *testing.T) {
	store := tone.NewStore(t.TempDir(), testLogger())
	store.Add(tone.Custom{ID: "custom-1", Name: "Prof", Description: "d"})

	list := store.List()
	list[0].Name = "mutated"

	assert.Equal(t, "Prof", store.List()[0].Name)
}
