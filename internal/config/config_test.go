package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"base-resolver/internal/provenance"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.False(t, cfg.Resolver.Normalize)
	assert.False(t, cfg.Resolver.TolerateMissingAncestor)
	assert.Equal(t, 64, cfg.Resolver.MaxDepth)
	assert.Equal(t, provenance.DefaultFoundationalTypes, cfg.Resolver.FoundationalTypes)
	assert.Empty(t, cfg.Resolver.ChoiceTypes)
	assert.Empty(t, cfg.Source.Paths)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, provenance.DefaultSettings(), cfg.Resolver.Settings())
}

func TestLoadWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := `
resolver:
  normalize: true
  tolerate_missing_ancestor: true
  max_depth: 10
  choice_types: [Widget]
source:
  paths: [defs, more/profiles.yaml]
log:
  level: debug
  development: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base-resolver.yaml"), []byte(content), 0o644))

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.True(t, cfg.Resolver.Normalize)
	assert.True(t, cfg.Resolver.TolerateMissingAncestor)
	assert.Equal(t, 10, cfg.Resolver.MaxDepth)
	assert.Equal(t, []string{"Widget"}, cfg.Resolver.ChoiceTypes)
	assert.Equal(t, []string{"defs", "more/profiles.yaml"}, cfg.Source.Paths)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)

	settings := cfg.Resolver.Settings()
	assert.True(t, settings.Normalize)
	assert.Equal(t, 10, settings.MaxDepth)
}

func TestLoadExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	file := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("source:\n  database: defs.db\n"), 0o644))

	cfg, err := Load(New(), file)
	require.NoError(t, err)
	assert.Equal(t, "defs.db", cfg.Source.Database)

	_, err = Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BASE_RESOLVER_RESOLVER_NORMALIZE", "true")
	t.Setenv("BASE_RESOLVER_RESOLVER_MAX_DEPTH", "7")
	t.Setenv("BASE_RESOLVER_LOG_LEVEL", "warn")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.True(t, cfg.Resolver.Normalize)
	assert.Equal(t, 7, cfg.Resolver.MaxDepth)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"negative depth", "resolver:\n  max_depth: -1\n", "resolver.max_depth"},
		{"bad choice type", "resolver:\n  choice_types: [\"value[x]\"]\n", "resolver.choice_types"},
		{"malformed yaml", "resolver: [\n", "failed to read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "base-resolver.yaml")
			require.NoError(t, os.WriteFile(file, []byte(tt.content), 0o644))

			_, err := Load(New(), file)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
