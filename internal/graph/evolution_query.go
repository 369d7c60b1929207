package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ErrSpeciesNotFound is returned when no node has the requested key.
var ErrSpeciesNotFound = errors.New("species not in graph")

// Edge is one EVOLVES_TO relationship between display keys. A target that
// was never loaded is named by its enum.
type Edge struct {
	From   string
	To     string
	Method string
	Param  string
	Label  string
}

// Family returns every evolution edge in the family of the species with key,
// ordered from the root of the family downwards. A species with no
// evolutions returns an empty family.
func (g *EvolutionGraph) Family(ctx context.Context, key string) ([]Edge, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	found, err := session.Run(ctx, `MATCH (s:Species {key: $key}) RETURN count(s) AS n`, map[string]any{"key": key})
	if err != nil {
		return nil, fmt.Errorf("look up species: %w", err)
	}
	record, err := found.Single(ctx)
	if err != nil {
		return nil, fmt.Errorf("look up species: %w", err)
	}
	if n, _ := record.Get("n"); n == int64(0) {
		return nil, fmt.Errorf("%w: %s", ErrSpeciesNotFound, key)
	}

	result, err := session.Run(ctx, `
		MATCH (s:Species {key: $key})-[:EVOLVES_TO*0..]-(member:Species)
		WITH DISTINCT member
		MATCH (member)-[e:EVOLVES_TO]->(to:Species)
		OPTIONAL MATCH path = (root:Species)-[:EVOLVES_TO*]->(member)
		WITH member, e, to, max(length(path)) AS depth
		RETURN coalesce(member.key, member.enum) AS from_node, coalesce(to.key, to.enum) AS to_node,
		       e.method AS method, e.param AS param, e.label AS label
		ORDER BY coalesce(depth, 0), from_node, to_node
	`, map[string]any{"key": key})
	if err != nil {
		return nil, fmt.Errorf("query family: %w", err)
	}

	var edges []Edge
	for result.Next(ctx) {
		edges = append(edges, edgeFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read family: %w", err)
	}
	return edges, nil
}

func edgeFromRecord(record *neo4j.Record) Edge {
	return Edge{
		From:   str(record, "from_node"),
		To:     str(record, "to_node"),
		Method: str(record, "method"),
		Param:  str(record, "param"),
		Label:  str(record, "label"),
	}
}

func str(record *neo4j.Record, key string) string {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
