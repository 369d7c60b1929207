package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"dexsheet/internal/config"
	"dexsheet/internal/graph"
	"dexsheet/internal/species"
	"dexsheet/internal/store"
)

func migrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()
			return store.Migrate(ctx, cfg.DatabaseURL)
		},
	}
}

type loadOptions struct {
	rosterPath   string
	speciesDir   string
	pattern      string
	workers      int
	dropTrailing bool
	skipGraph    bool
	quiet        bool
}

func loadCmd(cfg *config.Config) *cobra.Command {
	opts := loadOptions{}

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load trainer sets and species into PostgreSQL and the evolution graph into Neo4j",
		Long: `Parses the roster and the species headers and stores them.
Files whose content hash matches the last load are skipped.
Species rows and graph nodes are written concurrently.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()
			return runLoad(ctx, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.rosterPath, "roster", cfg.RosterPath, "Path to trainers.party")
	cmd.Flags().StringVar(&opts.speciesDir, "species-dir", cfg.SpeciesDir, "Directory holding the family headers")
	cmd.Flags().StringVar(&opts.pattern, "pattern", cfg.SpeciesPattern, "Glob matched against header file names")
	cmd.Flags().IntVar(&opts.workers, "workers", cfg.WorkerCount, "Number of files extracted concurrently")
	cmd.Flags().BoolVar(&opts.dropTrailing, "drop-trailing", !cfg.FlushTrailingTrainer, "Do not file the trainer still open at end of input")
	cmd.Flags().BoolVar(&opts.skipGraph, "skip-graph", false, "Do not write the Neo4j evolution graph")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Hide the progress bar")

	return cmd
}

// runLoad handles the `load` command.
func runLoad(ctx context.Context, cfg *config.Config, opts loadOptions) error {
	if err := store.Migrate(ctx, cfg.DatabaseURL); err != nil {
		return err
	}

	pgPool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pgPool.Close()

	ledger := store.NewSourceLedger(pgPool)
	if err := ledger.Preload(ctx); err != nil {
		return err
	}

	if err := loadRoster(ctx, ledger, store.NewTrainerSetStore(pgPool), opts); err != nil {
		return err
	}

	files, err := extractSpecies(ctx, opts.speciesDir, opts.pattern, opts.workers, opts.quiet)
	if err != nil {
		return err
	}

	plan, err := planSpeciesLoad(ctx, ledger, files, opts.skipGraph)
	if err != nil {
		return err
	}
	if plan.empty() {
		log.Info().Msg("Species files unchanged, nothing to load")
		return nil
	}

	speciesStore := store.NewSpeciesStore(pgPool)

	g, gctx := errgroup.WithContext(ctx)
	if len(plan.rows) > 0 {
		g.Go(func() error {
			for _, p := range plan.rows {
				if err := speciesStore.ReplaceFile(gctx, p.result.File, p.result.Species); err != nil {
					return err
				}
			}
			return recordAll(gctx, ledger, plan.rows)
		})
	}
	if len(plan.graph) > 0 {
		g.Go(func() error {
			if err := loadGraph(gctx, cfg, plan.graphSpecies()); err != nil {
				return err
			}
			return recordAll(gctx, ledger, plan.graph)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Int("rows", len(plan.rows)).Int("graph", len(plan.graph)).Msg("Load complete")
	return nil
}

// pendingFile is an extracted file not yet loaded into one sink.
type pendingFile struct {
	result *species.FileResult
	source store.SourceFile
}

// speciesPlan lists, per sink, the files whose content changed since they
// were last loaded into that sink.
type speciesPlan struct {
	rows  []pendingFile
	graph []pendingFile
}

func (p speciesPlan) empty() bool { return len(p.rows) == 0 && len(p.graph) == 0 }

func (p speciesPlan) graphSpecies() []species.Species {
	results := make([]*species.FileResult, 0, len(p.graph))
	for _, f := range p.graph {
		results = append(results, f.result)
	}
	return flattenSpecies(results)
}

// planSpeciesLoad checks every file against the ledger once per sink. With
// skipGraph no graph work is planned, and nothing is recorded for the graph,
// so a later load without it still writes those files.
func planSpeciesLoad(ctx context.Context, ledger *store.SourceLedger, files []*species.FileResult, skipGraph bool) (speciesPlan, error) {
	var plan speciesPlan
	for _, f := range files {
		src, err := speciesSource(f.File)
		if err != nil {
			return speciesPlan{}, err
		}
		if !ledger.Seen(ctx, src) {
			plan.rows = append(plan.rows, pendingFile{result: f, source: src})
		}
		if skipGraph {
			continue
		}
		if graphSrc := src.WithKind(store.KindSpeciesGraph); !ledger.Seen(ctx, graphSrc) {
			plan.graph = append(plan.graph, pendingFile{result: f, source: graphSrc})
		}
	}
	return plan, nil
}

func recordAll(ctx context.Context, ledger *store.SourceLedger, files []pendingFile) error {
	for _, f := range files {
		if err := ledger.Record(ctx, f.source); err != nil {
			return err
		}
	}
	return nil
}

func loadRoster(ctx context.Context, ledger *store.SourceLedger, sets *store.TrainerSetStore, opts loadOptions) error {
	content, err := os.ReadFile(opts.rosterPath)
	if err != nil {
		return fmt.Errorf("read roster: %w", err)
	}
	src := store.NewSourceFile(opts.rosterPath, store.KindRoster, string(content))
	if ledger.Seen(ctx, src) {
		log.Info().Str("file", opts.rosterPath).Msg("Roster unchanged, skipping")
		return nil
	}

	result, err := parseRoster(opts.rosterPath, opts.dropTrailing)
	if err != nil {
		return err
	}
	if err := sets.Replace(ctx, result.Trainers); err != nil {
		return err
	}
	return ledger.Record(ctx, src)
}

func loadGraph(ctx context.Context, cfg *config.Config, records []species.Species) error {
	driver, err := connectNeo4j(ctx, cfg)
	if err != nil {
		return err
	}
	defer driver.Close(ctx)

	evolutions := graph.NewEvolutionGraph(driver)
	if err := evolutions.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure graph schema: %w", err)
	}
	return evolutions.UpsertSpecies(ctx, records)
}

func speciesSource(path string) (store.SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return store.SourceFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	return store.NewSourceFile(path, store.KindSpecies, string(content)), nil
}
