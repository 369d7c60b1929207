package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"

	"dexsheet/internal/species"
)

// EvolutionGraph stores species and their evolutions in Neo4j.
type EvolutionGraph struct {
	driver neo4j.DriverWithContext
}

// NewEvolutionGraph creates a new evolution graph.
func NewEvolutionGraph(driver neo4j.DriverWithContext) *EvolutionGraph {
	return &EvolutionGraph{driver: driver}
}

// EnsureSchema creates constraints and indexes on the Neo4j database.
func (g *EvolutionGraph) EnsureSchema(ctx context.Context) error {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (s:Species) REQUIRE s.enum IS UNIQUE",
		"CREATE INDEX IF NOT EXISTS FOR (s:Species) ON (s.key)",
	}

	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

// UpsertSpecies merges a node per species enum and an EVOLVES_TO edge per
// evolution step. The display key ("Mr. Mime", "Raichu Alola") is a
// property; edges join on enums. Targets not yet loaded get a bare node that
// a later upsert fills in.
func (g *EvolutionGraph) UpsertSpecies(ctx context.Context, records []species.Species) error {
	if len(records) == 0 {
		return nil
	}

	session := g.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.Run(ctx, `
		UNWIND $rows AS row
		MERGE (s:Species {enum: row.enum})
		SET s.key = row.key,
		    s.name = row.name,
		    s.form = row.form,
		    s.generation = row.generation,
		    s.bst = row.bst
	`, map[string]any{"rows": nodeRows(records)})
	if err != nil {
		return fmt.Errorf("upsert species nodes: %w", err)
	}

	edges := edgeRows(records)
	if len(edges) > 0 {
		_, err = session.Run(ctx, `
			UNWIND $rows AS row
			MATCH (a:Species {enum: row.from})
			MERGE (b:Species {enum: row.to})
			MERGE (a)-[e:EVOLVES_TO]->(b)
			SET e.method = row.method,
			    e.param = row.param,
			    e.label = row.label
		`, map[string]any{"rows": edges})
		if err != nil {
			return fmt.Errorf("upsert evolution edges: %w", err)
		}
	}

	log.Info().Int("species", len(records)).Int("evolutions", len(edges)).Msg("Upserted evolution graph")
	return nil
}

// nodeRows builds the $rows parameter for species nodes. Neo4j parameters
// must be plain maps and slices.
func nodeRows(records []species.Species) []any {
	rows := make([]any, 0, len(records))
	for _, sp := range records {
		rows = append(rows, map[string]any{
			"key":        sp.Key(),
			"name":       sp.Name,
			"form":       sp.Form,
			"enum":       sp.Enum,
			"generation": sp.Generation,
			"bst":        int64(sp.BST),
		})
	}
	return rows
}

func edgeRows(records []species.Species) []any {
	var rows []any
	for _, sp := range records {
		for _, evo := range sp.EvolutionSteps {
			rows = append(rows, map[string]any{
				"from":   sp.Enum,
				"to":     evo.TargetEnum,
				"method": evo.Method,
				"param":  evo.Param,
				"label":  evo.Description,
			})
		}
	}
	return rows
}
