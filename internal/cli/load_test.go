package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dexsheet/internal/species"
	"dexsheet/internal/store"
)

// Test Plan for load planning:
// - --skip-graph plans only the Postgres rows and records nothing for the graph
// - a later load without --skip-graph still plans the graph for the same unchanged file
// - once both sinks are recorded nothing is planned
// - changed content is planned again for both sinks

func extractFixture(t *testing.T) (*species.FileResult, string) {
	t.Helper()

	content, err := os.ReadFile("../species/testdata/gen_1_families.h")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "gen_1_families.h")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return species.ExtractFile(path, string(content)), path
}

func TestPlanSpeciesLoad_SkipGraphKeepsGraphPending(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger := store.NewSourceLedger(nil)
	result, _ := extractFixture(t)
	files := []*species.FileResult{result}

	plan, err := planSpeciesLoad(ctx, ledger, files, true)
	require.NoError(t, err)
	require.Len(t, plan.rows, 1)
	assert.Empty(t, plan.graph)
	assert.Equal(t, store.KindSpecies, plan.rows[0].source.Kind)
	require.NoError(t, recordAll(ctx, ledger, plan.rows))

	plan, err = planSpeciesLoad(ctx, ledger, files, false)
	require.NoError(t, err)
	assert.Empty(t, plan.rows)
	require.Len(t, plan.graph, 1)
	assert.Equal(t, store.KindSpeciesGraph, plan.graph[0].source.Kind)
	assert.NotEmpty(t, plan.graphSpecies())
	require.NoError(t, recordAll(ctx, ledger, plan.graph))

	plan, err = planSpeciesLoad(ctx, ledger, files, false)
	require.NoError(t, err)
	assert.True(t, plan.empty())
}

func TestPlanSpeciesLoad_ChangedContent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger := store.NewSourceLedger(nil)
	result, path := extractFixture(t)
	files := []*species.FileResult{result}

	plan, err := planSpeciesLoad(ctx, ledger, files, false)
	require.NoError(t, err)
	require.Len(t, plan.rows, 1)
	require.Len(t, plan.graph, 1)
	require.NoError(t, recordAll(ctx, ledger, plan.rows))
	require.NoError(t, recordAll(ctx, ledger, plan.graph))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("\n// edited\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	plan, err = planSpeciesLoad(ctx, ledger, files, false)
	require.NoError(t, err)
	assert.Len(t, plan.rows, 1)
	assert.Len(t, plan.graph, 1)
}

func TestPlanSpeciesLoad_MissingFile(t *testing.T) {
	t.Parallel()

	files := []*species.FileResult{{File: filepath.Join(t.TempDir(), "missing.h")}}
	_, err := planSpeciesLoad(context.Background(), store.NewSourceLedger(nil), files, false)
	require.Error(t, err)
}
