package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grovetools/reorder/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromBytesYAML(t *testing.T) {
	data := []byte(`
version: "1.0"
list:
  spacing: 2
  drag_delay: 250ms
tui:
  theme: gruvbox
logging:
  level: debug
`)
	cfg, err := LoadFromBytes(data, FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, 2.0, cfg.Spacing())
	assert.Equal(t, 250*time.Millisecond, cfg.DragDelay())
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Contains(t, cfg.Extensions, "logging")
	assert.NotContains(t, cfg.Extensions, "list")
}

func TestLoadFromBytesTOML(t *testing.T) {
	data := []byte(`
version = "1.0"

[list]
spacing = 0.5

[logging]
level = "warn"
`)
	cfg, err := LoadFromBytes(data, FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Spacing())
	assert.Equal(t, 100*time.Millisecond, cfg.DragDelay())
	assert.Equal(t, DefaultTheme, cfg.TUI.Theme)

	var logCfg struct {
		Level string `yaml:"level"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "warn", logCfg.Level)
}

func TestLoadFromBytesDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(""), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, DefaultSpacing, cfg.Spacing())
	assert.Equal(t, DefaultDragDelay, cfg.List.DragDelay)
}

func TestLoadFromBytesZeroSpacingIsKept(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("list:\n  spacing: 0\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Spacing())
}

func TestLoadFromBytesInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "negative spacing", data: "list:\n  spacing: -1\n"},
		{name: "spacing wrong type", data: "list:\n  spacing: wide\n"},
		{name: "unknown list key", data: "list:\n  gap: 3\n"},
		{name: "unknown theme", data: "tui:\n  theme: neon\n"},
		{name: "bad duration", data: "list:\n  drag_delay: soon\n"},
		{name: "negative duration", data: "list:\n  drag_delay: -5ms\n"},
		{name: "malformed yaml", data: "list: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.data), FormatYAML)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid), "got %v", err)
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("REORDER_TEST_DELAY", "40ms")
	t.Setenv("REORDER_TEST_EMPTY", "")

	assert.Equal(t, "delay: 40ms", expandEnvVars("delay: ${REORDER_TEST_DELAY}"))
	assert.Equal(t, "delay: 10ms", expandEnvVars("delay: ${REORDER_TEST_EMPTY:-10ms}"))
	assert.Equal(t, "delay: ", expandEnvVars("delay: ${REORDER_TEST_EMPTY}"))

	cfg, err := LoadFromBytes([]byte("list:\n  drag_delay: ${REORDER_TEST_DELAY}\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 40*time.Millisecond, cfg.DragDelay())
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	t.Run("walks up to parent", func(t *testing.T) {
		path := filepath.Join(root, "reorder.toml")
		require.NoError(t, os.WriteFile(path, []byte("[list]\nspacing = 3\n"), 0644))
		defer os.Remove(path)

		found, err := FindConfigFile(nested)
		require.NoError(t, err)
		assert.Equal(t, path, found)

		cfg, err := LoadFrom(nested)
		require.NoError(t, err)
		assert.Equal(t, 3.0, cfg.Spacing())
	})

	t.Run("yml wins over toml in the same directory", func(t *testing.T) {
		yml := filepath.Join(nested, "reorder.yml")
		require.NoError(t, os.WriteFile(yml, []byte("list:\n  spacing: 1\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(nested, "reorder.toml"), []byte(""), 0644))

		found, err := FindConfigFile(nested)
		require.NoError(t, err)
		assert.Equal(t, yml, found)
	})

	t.Run("falls back to XDG", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)
		path := filepath.Join(xdg, "reorder", "reorder.yml")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(""), 0644))

		found, err := FindConfigFile(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})
}

func TestFindConfigFileNotFound(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := FindConfigFile(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "reorder.yml"))
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yml"))
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	props, ok := doc["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "list")
	assert.Contains(t, props, "tui")
	assert.Equal(t, true, doc["additionalProperties"])
	assert.NotContains(t, doc, "required")
}
