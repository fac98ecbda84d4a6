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
	path := filepath.Join(t.TempDir(), "airnet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_OverridesOnTopOfDefaults(t *testing.T) {
	path := writeConfig(t, `
data:
  airports_path: /data/airports.dat
  routes_path: /data/routes.dat
simulation:
  strategies: [degree, eigenvector]
  steps: 25
  adaptive: true
output:
  dir: /tmp/out
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/airports.dat", cfg.Data.AirportsPath)
	assert.Equal(t, []string{"degree", "eigenvector"}, cfg.Simulation.Strategies)
	assert.Equal(t, 25, cfg.Simulation.Steps)
	assert.True(t, cfg.Simulation.Adaptive)

	// Untouched fields keep their defaults
	assert.Equal(t, 0.9, cfg.Simulation.MaxRemovalFraction)
	assert.Equal(t, 200, cfg.Analysis.BetweennessSampleK)
	assert.Equal(t, int64(42), cfg.Analysis.Seed)
	assert.True(t, cfg.Country.Enabled)
}

func TestLoad_RejectsUnknownStrategy(t *testing.T) {
	path := writeConfig(t, `
simulation:
  strategies: [pagerank]
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsOutOfRangeFraction(t *testing.T) {
	path := writeConfig(t, `
simulation:
  max_removal_fraction: 1.5
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MapLayout(t *testing.T) {
	path := writeConfig(t, `
output:
  dir: /tmp/out
  map_layout: force
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "force", cfg.Output.MapLayout)

	_, err = Load(writeConfig(t, `
output:
  dir: /tmp/out
  map_layout: spiral
`))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_S3NeedsRegion(t *testing.T) {
	cfg := Default()
	cfg.S3.Bucket = "airnet-artifacts"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3.region")

	cfg.S3.Region = "us-east-1"
	assert.NoError(t, cfg.Validate())
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
