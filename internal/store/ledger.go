package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"dexsheet/internal/textutil"
)

// Source file kinds recorded in the ledger. A file loaded into several sinks
// is recorded once per sink so skipping one sink does not hide the file from
// a later load into it.
const (
	KindRoster       = "roster"
	KindSpecies      = "species"
	KindSpeciesGraph = "species-graph"
)

// SourceFile identifies one loaded input by path, sink kind and content hash.
type SourceFile struct {
	Path string
	Kind string
	Hash string
}

// NewSourceFile hashes content for the ledger.
func NewSourceFile(path, kind, content string) SourceFile {
	return SourceFile{Path: path, Kind: kind, Hash: textutil.Hash(content)}
}

// SourceLedger provides in-memory + PostgreSQL-backed tracking of the content
// hash last loaded for each source file.
type SourceLedger struct {
	pool   *pgxpool.Pool
	mu     sync.RWMutex
	memory map[ledgerKey]string // (path, kind) → hash
}

type ledgerKey struct {
	path string
	kind string
}

func (f SourceFile) key() ledgerKey { return ledgerKey{path: f.Path, kind: f.Kind} }

// WithKind returns f recorded under another sink kind.
func (f SourceFile) WithKind(kind string) SourceFile {
	f.Kind = kind
	return f
}

// NewSourceLedger creates a new ledger backed by PostgreSQL.
func NewSourceLedger(pool *pgxpool.Pool) *SourceLedger {
	return &SourceLedger{
		pool:   pool,
		memory: make(map[ledgerKey]string),
	}
}

// Seen reports whether f was already loaded with the same content.
func (l *SourceLedger) Seen(ctx context.Context, f SourceFile) bool {
	l.mu.RLock()
	if h, ok := l.memory[f.key()]; ok {
		l.mu.RUnlock()
		return h == f.Hash
	}
	l.mu.RUnlock()

	if l.pool == nil {
		return false
	}

	var hash string
	err := l.pool.QueryRow(ctx, `SELECT hash FROM source_files WHERE path = $1 AND kind = $2`, f.Path, f.Kind).Scan(&hash)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Warn().Err(err).Str("path", f.Path).Msg("Ledger lookup failed")
		}
		return false
	}

	l.mu.Lock()
	l.memory[f.key()] = hash
	l.mu.Unlock()

	return hash == f.Hash
}

// Record stores f as loaded in memory and in PostgreSQL.
func (l *SourceLedger) Record(ctx context.Context, f SourceFile) error {
	l.mu.Lock()
	l.memory[f.key()] = f.Hash
	l.mu.Unlock()

	if l.pool == nil {
		return nil
	}

	_, err := l.pool.Exec(ctx, `
		INSERT INTO source_files (path, kind, hash, loaded_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (path, kind) DO UPDATE
		SET hash = EXCLUDED.hash, loaded_at = now()
	`, f.Path, f.Kind, f.Hash)
	if err != nil {
		return fmt.Errorf("record source file %s: %w", f.Path, err)
	}
	return nil
}

// Preload loads every recorded hash into memory.
func (l *SourceLedger) Preload(ctx context.Context) error {
	rows, err := l.pool.Query(ctx, `SELECT path, kind, hash FROM source_files`)
	if err != nil {
		return fmt.Errorf("preload ledger: %w", err)
	}
	defer rows.Close()

	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for rows.Next() {
		var key ledgerKey
		var hash string
		if err := rows.Scan(&key.path, &key.kind, &hash); err != nil {
			return fmt.Errorf("scan ledger row: %w", err)
		}
		l.memory[key] = hash
		n++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("preload ledger: %w", err)
	}

	log.Info().Int("count", n).Msg("Preloaded source ledger")
	return nil
}
