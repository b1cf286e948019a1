package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchbox/internal/eventbus"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cs := NewConfigService(nil, filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cs := NewConfigService(nil, path)

	want := DefaultConfig()
	want.Search.Debounce = 250 * time.Millisecond
	want.Remote.BaseURL = "http://127.0.0.1:9000"
	want.Static.Suggestions = []string{"Bread", "Milk"}
	require.NoError(t, cs.SaveToPath(want, path))

	got, err := cs.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSavedFileIsReadableTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cs := NewConfigService(nil, path)
	require.NoError(t, cs.SaveToPath(DefaultConfig(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[search]")
	assert.Regexp(t, `debounce = ['"]500ms['"]`, string(data))
	assert.Contains(t, string(data), "query_threshold = 3")
}

func TestPartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[search]\nquery_threshold = 4\ndebounce = '1s'\n"), 0644))

	cfg, err := NewConfigService(nil, path).Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Search.QueryThreshold)
	assert.Equal(t, time.Second, cfg.Search.Debounce)
	assert.Equal(t, DefaultConfig().Static.Suggestions, cfg.Static.Suggestions)
	assert.Equal(t, DefaultConfig().Remote, cfg.Remote)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[remote]\nbase_url = 'http://from-file'\n"), 0644))
	t.Setenv("SEARCHBOX_REMOTE_BASE_URL", "http://from-env:8080")
	t.Setenv("SEARCHBOX_LOG_LEVEL", "debug")

	cfg, err := NewConfigService(nil, path).Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:8080", cfg.Remote.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestBoundValuesOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = 'warn'\n"), 0644))

	v := viper.New()
	v.Set("log.level", "error")
	cfg, err := NewConfigService(v, path).Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"syntax", "[search\nwidth = 3"},
		{"zero threshold", "[search]\nquery_threshold = 0\n"},
		{"negative debounce", "[search]\ndebounce = '-1s'\n"},
		{"relative url", "[remote]\nbase_url = '/Products'\n"},
		{"bad level", "[log]\nlevel = 'loud'\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))

			_, err := NewConfigService(nil, path).Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadFromPathRequiresFile(t *testing.T) {
	_, err := NewConfigService(nil, "").LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := DefaultConfig()
	cfg.Catalog.Addr = ""

	require.Error(t, NewConfigService(nil, path).SaveToPath(cfg, path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestServicePublishesEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	events := make(chan eventbus.DomainEvent, 2)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) { events <- e })
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) { events <- e })

	path := filepath.Join(t.TempDir(), FileName)
	cs := NewConfigServiceWithBus(nil, path, bus)
	require.NoError(t, cs.SaveToPath(DefaultConfig(), path))
	_, err := cs.Load()
	require.NoError(t, err)

	seen := map[eventbus.EventType]eventbus.DomainEvent{}
	for len(seen) < 2 {
		select {
		case e := <-events:
			seen[e.Type()] = e
		case <-time.After(2 * time.Second):
			t.Fatalf("only saw %v", seen)
		}
	}
	assert.Equal(t, path, seen[eventbus.EventConfigLoaded].(eventbus.ConfigLoadedEvent).Path)
	assert.Equal(t, path, seen[eventbus.EventConfigSaved].(eventbus.ConfigSavedEvent).Path)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, FileName, filepath.Base(DefaultPath()))
	assert.Equal(t, DefaultPath(), NewConfigService(nil, "").Path())
}
