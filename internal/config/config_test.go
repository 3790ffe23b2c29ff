package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg, "missing config yields zero values")
}

func TestLoadYml(t *testing.T) {
	dir := t.TempDir()
	content := "provider: gemini\nmodel: gemini-2.0-flash\nconsensusThreshold: 0.6\nverbose: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ideate.yml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, 0.6, cfg.ConsensusThreshold)
	assert.True(t, cfg.Verbose)
}

func TestLoadInvalidYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ideate.yml"), []byte("provider: [broken"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestEnvKeyOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ideate.yml"), []byte("apiKey: from-file\n"), 0o644))
	t.Setenv("IDEATE_API_KEY", "from-env")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestDataDirOrDefault(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/custom"}
	assert.Equal(t, "/tmp/custom", cfg.DataDirOrDefault())

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".ideate"), (&Config{}).DataDirOrDefault())
}
