package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/smc-core/internal/smc/config"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, config.Default().Validate())
}

func TestValidateRejectsInvertedOteBand(t *testing.T) {
	cfg := config.Default()
	cfg.Structure.OteMin = 0.8
	cfg.Structure.OteMax = 0.6
	assert.Error(t, cfg.Validate())
}

func TestLoadAppliesPartialOverrideOnTopOfDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	yamlBody := "stage6:\n  min_score: 3.5\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.5, cfg.Stage6.MinScore)
	// untouched fields keep their Default() value
	assert.Equal(t, config.Default().Zones.PoiMaxPerSide, cfg.Zones.PoiMaxPerSide)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not_a_real_field: true\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
