package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"dexsheet/internal/export"
	"dexsheet/internal/roster"
)

const deleteTrainerSetsSQL = `DELETE FROM trainer_sets`

const upsertTrainerSetSQL = `
	INSERT INTO trainer_sets (species, trainer, level, ivs, item, ability, nature, tera_type, status, moves, idx)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (species, trainer) DO UPDATE
	SET level = EXCLUDED.level, ivs = EXCLUDED.ivs, item = EXCLUDED.item,
	    ability = EXCLUDED.ability, nature = EXCLUDED.nature, tera_type = EXCLUDED.tera_type,
	    status = EXCLUDED.status, moves = EXCLUDED.moves, idx = EXCLUDED.idx`

// TrainerSetStore persists one set per (species, trainer) pair of the last
// loaded roster.
type TrainerSetStore struct {
	pool *pgxpool.Pool
}

// NewTrainerSetStore creates a new trainer set store.
func NewTrainerSetStore(pool *pgxpool.Pool) *TrainerSetStore {
	return &TrainerSetStore{pool: pool}
}

// trainerSetRow is one trainer_sets row.
type trainerSetRow struct {
	Species string
	Trainer string
	Set     export.CalcSet
}

func (r trainerSetRow) args() []any {
	return []any{
		r.Species, r.Trainer, r.Set.Level, r.Set.IVs, r.Set.Item, r.Set.Ability,
		r.Set.Nature, r.Set.TeraType, r.Set.Status, r.Set.Moves, r.Set.Index,
	}
}

// trainerSetRows flattens trainers into rows ordered by roster index. A
// species seen twice for one trainer keeps the later creature.
func trainerSetRows(trainers []roster.Trainer) []trainerSetRow {
	var rows []trainerSetRow
	for sp, sets := range export.BuildSetDex(trainers) {
		for trainer, set := range sets {
			rows = append(rows, trainerSetRow{Species: sp, Trainer: trainer, Set: set})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Set.Index < rows[j].Set.Index })
	return rows
}

// replaceSetsBatch clears trainer_sets and queues every row after the
// delete, so sets dropped from the roster do not survive a reload.
func replaceSetsBatch(rows []trainerSetRow) *pgx.Batch {
	batch := &pgx.Batch{}
	batch.Queue(deleteTrainerSetsSQL)
	for _, r := range rows {
		batch.Queue(upsertTrainerSetSQL, r.args()...)
	}
	return batch
}

// Replace swaps the stored sets for those of trainers in one transaction.
// An empty roster leaves the table empty.
func (s *TrainerSetStore) Replace(ctx context.Context, trainers []roster.Trainer) error {
	rows := trainerSetRows(trainers)
	batch := replaceSetsBatch(rows)

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		br := tx.SendBatch(ctx, batch)
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("clear trainer sets: %w", err)
		}
		for _, r := range rows {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("upsert set %s/%s: %w", r.Trainer, r.Species, err)
			}
		}
		return br.Close()
	})
	if err != nil {
		return err
	}

	log.Info().Int("count", len(rows)).Msg("Stored trainer sets")
	return nil
}
