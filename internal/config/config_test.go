package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Load:
// - Defaults apply when variables are unset
// - Environment values override defaults
// - Unparseable integers and booleans fall back to defaults

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"WORKER_COUNT", "ROSTER_PATH", "SPECIES_PATTERN", "FLUSH_TRAILING_TRAINER", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, 8, cfg.WorkerCount)
	assert.Equal(t, "src/data/trainers.party", cfg.RosterPath)
	assert.Equal(t, "gen_*_families.h", cfg.SpeciesPattern)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.FlushTrailingTrainer)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WORKER_COUNT", "2")
	t.Setenv("ROSTER_PATH", "/tmp/roster.party")
	t.Setenv("FLUSH_TRAILING_TRAINER", "false")
	t.Setenv("CALC_SETS_PATH", "out/sets.js")

	cfg := Load()

	assert.Equal(t, 2, cfg.WorkerCount)
	assert.Equal(t, "/tmp/roster.party", cfg.RosterPath)
	assert.False(t, cfg.FlushTrailingTrainer)
	assert.Equal(t, "out/sets.js", cfg.CalcSetsPath)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "many")
	t.Setenv("FLUSH_TRAILING_TRAINER", "sometimes")

	cfg := Load()

	assert.Equal(t, 8, cfg.WorkerCount)
	assert.True(t, cfg.FlushTrailingTrainer)
}
