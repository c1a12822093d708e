package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shiftrota/pkg/core/objective"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shiftrota_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, objective.DefaultWeights(), cfg.Weights())
}

func TestLoadFromPath(t *testing.T) {
	cfg, err := LoadFromPath(writeTemp(t, `
logDir: /var/log/shiftrota
objective:
  ranking: 2
  additionalShifts: 500
`))
	require.NoError(t, err)

	assert.Equal(t, "/var/log/shiftrota", cfg.LogDir)
	assert.Equal(t, objective.Weights{Ranking: 2, AdditionalShifts: 500}, cfg.Weights())
}

func TestLoadFromPath_PartialOverride(t *testing.T) {
	cfg, err := LoadFromPath(writeTemp(t, `
objective:
  ranking: 3
`))
	require.NoError(t, err)

	// Unset fields keep their defaults.
	assert.Equal(t, "logs", cfg.LogDir)
	weights := cfg.Weights()
	assert.Equal(t, 3, weights.Ranking)
	assert.Equal(t, objective.DefaultWeights().AdditionalShifts, weights.AdditionalShifts)
}

func TestLoadFromPath_Errors(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read")

	_, err = LoadFromPath(writeTemp(t, "logDir: [nested"))
	assert.ErrorContains(t, err, "failed to parse")

	_, err = LoadFromPath(writeTemp(t, `
objective:
  ranking: -1
`))
	assert.ErrorContains(t, err, "validation failed")
}
