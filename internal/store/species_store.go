package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"

	"dexsheet/internal/species"
)

// ErrSpeciesNotFound is returned when a queried species has no stored row.
var ErrSpeciesNotFound = errors.New("species not found")

const insertSpeciesSQL = `
	INSERT INTO species (
		source_file, enum, key, name, form, generation,
		hp, attack, defense, speed, sp_attack, sp_defense, bst,
		type1, type2, ability1, ability2, hidden_ability, evolutions, stats
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	ON CONFLICT (source_file, enum) DO NOTHING`

// SpeciesStore persists extracted species with a pgvector of their base stats.
type SpeciesStore struct {
	pool *pgxpool.Pool
}

// NewSpeciesStore creates a new species store.
func NewSpeciesStore(pool *pgxpool.Pool) *SpeciesStore {
	return &SpeciesStore{pool: pool}
}

// Neighbor is a species close to the queried one in stat space.
type Neighbor struct {
	Key      string
	BST      int
	Distance float64
}

// ReplaceFile swaps every row loaded from path for records, in one
// transaction. An enum repeated within the file keeps its first record.
func (s *SpeciesStore) ReplaceFile(ctx context.Context, path string, records []species.Species) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM species WHERE source_file = $1`, path); err != nil {
			return fmt.Errorf("delete species of %s: %w", path, err)
		}
		if len(records) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, sp := range records {
			batch.Queue(insertSpeciesSQL, speciesArgs(path, sp)...)
		}

		br := tx.SendBatch(ctx, batch)
		for _, sp := range records {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("insert species %s: %w", sp.Enum, err)
			}
		}
		return br.Close()
	})
	if err != nil {
		return err
	}

	log.Info().Int("count", len(records)).Str("file", path).Msg("Stored species")
	return nil
}

// Similar returns up to limit species nearest to key by Euclidean distance
// over the six base stats, excluding key itself.
func (s *SpeciesStore) Similar(ctx context.Context, key string, limit int) ([]Neighbor, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM species WHERE lower(key) = lower($1))`, key).Scan(&exists); err != nil {
		return nil, fmt.Errorf("look up species %s: %w", key, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSpeciesNotFound, key)
	}

	rows, err := s.pool.Query(ctx, `
		WITH target AS (
			SELECT stats FROM species WHERE lower(key) = lower($1) LIMIT 1
		)
		SELECT s.key, s.bst, s.stats <-> target.stats AS distance
		FROM species s, target
		WHERE lower(s.key) <> lower($1)
		ORDER BY distance, s.key
		LIMIT $2
	`, key, limit)
	if err != nil {
		return nil, fmt.Errorf("similar species search: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Neighbor, error) {
		var n Neighbor
		err := row.Scan(&n.Key, &n.BST, &n.Distance)
		return n, err
	})
}

// speciesArgs returns the positional arguments of insertSpeciesSQL.
func speciesArgs(path string, sp species.Species) []any {
	return []any{
		path, sp.Enum, sp.Key(), sp.Name, sp.Form, sp.Generation,
		sp.HP, sp.Attack, sp.Defense, sp.Speed, sp.SpAttack, sp.SpDefense, sp.BST,
		sp.Type1, sp.Type2, sp.Ability1, sp.Ability2, sp.HiddenAbility, sp.Evolutions,
		pgvector.NewVector(sp.StatVector()),
	}
}
