package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.False(t, cfg.IsFeatureEnabled(FeatStrict))
	assert.True(t, cfg.IsFeatureEnabled(FeatPostProcess))
	assert.True(t, cfg.IsFeatureEnabled(FeatEntryCall))
	assert.Equal(t, 4, cfg.IndentWidth)
	assert.True(t, cfg.IsWarningEnabled(WarnNaming))
}

func TestToggles(t *testing.T) {
	cfg := NewConfig()
	cfg.SetFeature(FeatStrict, true)
	assert.True(t, cfg.IsFeatureEnabled(FeatStrict))
	cfg.SetWarning(WarnNaming, false)
	assert.False(t, cfg.IsWarningEnabled(WarnNaming))
}

func TestNameMaps(t *testing.T) {
	cfg := NewConfig()
	ft, ok := cfg.FeatureMap["strict"]
	require.True(t, ok)
	assert.Equal(t, FeatStrict, ft)
	wt, ok := cfg.WarningMap["element-type"]
	require.True(t, ok)
	assert.Equal(t, WarnElementType, wt)
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "j2py.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeTemp(t, `
strict = true
indent_width = 2
post_process = false

[warnings]
naming = false
`)
	cfg := NewConfig()
	require.NoError(t, LoadFile(path, cfg))
	assert.True(t, cfg.IsFeatureEnabled(FeatStrict))
	assert.Equal(t, 2, cfg.IndentWidth)
	assert.False(t, cfg.IsFeatureEnabled(FeatPostProcess))
	assert.True(t, cfg.IsFeatureEnabled(FeatEntryCall), "unset keys keep their defaults")
	assert.False(t, cfg.IsWarningEnabled(WarnNaming))
}

func TestLoadFileUnknownKey(t *testing.T) {
	path := writeTemp(t, "nonsense = 1\n")
	err := LoadFile(path, NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestLoadFileUnknownWarning(t *testing.T) {
	path := writeTemp(t, "[warnings]\nbogus = true\n")
	err := LoadFile(path, NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown warning")
}

func TestLoadFileMissingDefaultIsFine(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	assert.NoError(t, LoadFile(DefaultFileName, NewConfig()))
}

func TestLoadFileMissingExplicitPathErrors(t *testing.T) {
	err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"), NewConfig())
	assert.Error(t, err)
}
