package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_OverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	doc := "fault_model:\n  fault_type: Short\n  faults_number: 2\nsafety:\n  max_faults_number: 8\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Short", cfg.FaultModel.FaultType)
	assert.Equal(t, 2, cfg.FaultModel.FaultsNumber)
	assert.Equal(t, 8, cfg.Safety.MaxFaultsNumber)
	// Untouched sections keep their defaults.
	assert.Equal(t, "./reports", cfg.Reporting.OutputDir)
}

func TestValidate_RejectsBadFaultType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FaultModel.FaultType = "Melt"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsZeroOutputDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reporting.OutputDir = ""
	assert.Error(t, cfg.Validate())
}

func TestRequiresConfirmation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Safety.MaxFaultsNumber = 3

	assert.False(t, cfg.RequiresConfirmation(3))
	assert.True(t, cfg.RequiresConfirmation(4))

	cfg.Safety.RequireConfirmation = false
	assert.False(t, cfg.RequiresConfirmation(10))
}
