package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "astraea.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "Ursa Minor", cfg.Quiz.Home)
	assert.Equal(t, 0.1, cfg.Camera.Follow)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 800
  height: 600
quiz:
  home: Orion
  seed: 42
audio:
  music: assets/theme.ogg
debug: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, "Astraea", cfg.Window.Title, "unset fields keep defaults")
	assert.Equal(t, "Orion", cfg.Quiz.Home)
	assert.Equal(t, uint64(42), cfg.Quiz.Seed)
	assert.Equal(t, "assets/theme.ogg", cfg.Audio.Music)
	assert.Equal(t, 0.5, cfg.Audio.Volume)
	assert.True(t, cfg.Debug)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, `
camera:
  follow: 2
audio:
  volume: -1
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera.follow")
	assert.Contains(t, err.Error(), "audio.volume")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "window: [1, 2"))
	assert.ErrorContains(t, err, "parse config")
}
