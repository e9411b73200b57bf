package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, 0.85, c.Analysis.UsableRoofFraction)
	assert.Equal(t, 0.8, c.Analysis.MainSectionShare)
	assert.Equal(t, 450.0, c.Panel.PeakWp)
	assert.Equal(t, 25, c.Financial.HorizonYears)
	assert.Equal(t, time.Second, c.RateLimit())
}

func TestLoad_OverlaysOnDefaults(t *testing.T) {
	path := writeConfig(t, `
services:
  overpass_url: "http://localhost:9999/interpreter"
  rate_limit_ms: 50
financial:
  cost_per_kwp_eur: 1000
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/interpreter", c.Services.OverpassURL)
	assert.Equal(t, 50*time.Millisecond, c.RateLimit())
	assert.Equal(t, 1000.0, c.Financial.CostPerKwpEUR)
	// Untouched sections keep their defaults.
	assert.Equal(t, 0.85, c.Analysis.UsableRoofFraction)
	assert.Equal(t, 0.25, c.Financial.ElectricityPrice)
}

func TestLoad_RejectsInvalidFraction(t *testing.T) {
	path := writeConfig(t, `
analysis:
  usable_roof_fraction: 1.5
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "usable_roof_fraction")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadUnchecked_SkipsValidation(t *testing.T) {
	path := writeConfig(t, `
panel:
  peak_wp: -1
`)
	c, err := LoadUnchecked(path)
	require.NoError(t, err)
	assert.Equal(t, -1.0, c.Panel.PeakWp)
	assert.Error(t, c.Validate())
}
