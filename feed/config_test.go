package feed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "kellnr.io/blog", cfg.ID)
	assert.Equal(t, "https://kellnr.io/rss.xml", cfg.SelfURL)
	assert.Equal(t, "https://kellnr.io/changelog", cfg.ChangelogURL)
}

func TestParseConfig_Overrides(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
title: Staging feed
changelog: https://staging.kellnr.io/changelog
`))
	require.NoError(t, err)

	assert.Equal(t, "Staging feed", cfg.Title)
	assert.Equal(t, "https://staging.kellnr.io/changelog", cfg.ChangelogURL)
	// Untouched fields keep their defaults.
	assert.Equal(t, "kellnr.io/blog", cfg.ID)
	assert.Equal(t, "Kellnr", cfg.Product)
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "titel: typo\n"},
		{"required field cleared", "id: \"\"\n"},
		{"not yaml", "title: [unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("subtitle: Releases only\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Releases only", cfg.Subtitle)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
