package view

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsLoadMissingFile(t *testing.T) {
	store := NewSettingsStore(filepath.Join(t.TempDir(), "nope", "settings.json"))

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "settings.json")
	store := NewSettingsStore(path)

	want := Settings{Mode: "dark", Palette: "moss", DevMode: true}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettingsPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mode":"light"}`), 0o644))

	got, err := NewSettingsStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "light", got.Mode)
	assert.Equal(t, DefaultSettings().Palette, got.Palette)
	assert.False(t, got.DevMode)
}

func TestSettingsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got, err := NewSettingsStore(path).Load()
	require.Error(t, err)
	assert.Equal(t, DefaultSettings(), got)
}
