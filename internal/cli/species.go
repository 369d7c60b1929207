package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"dexsheet/internal/config"
	"dexsheet/internal/export"
	"dexsheet/internal/filewalker"
	"dexsheet/internal/species"
	"dexsheet/internal/worker"
)

func speciesCmd(cfg *config.Config) *cobra.Command {
	var (
		pattern string
		output  string
		workers int
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "species [dir]",
		Short: "Extract species data from the family headers into a CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cfg.SpeciesDir
			if len(args) == 1 {
				dir = args[0]
			}

			ctx, cancel := setupContext()
			defer cancel()

			return runSpecies(ctx, dir, pattern, output, workers, quiet)
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", cfg.SpeciesPattern, "Glob matched against header file names")
	cmd.Flags().StringVarP(&output, "output", "o", cfg.SpeciesCSVPath, "Output path for the species CSV")
	cmd.Flags().IntVar(&workers, "workers", cfg.WorkerCount, "Number of files extracted concurrently")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide the progress bar")

	return cmd
}

// runSpecies handles the `species` command.
func runSpecies(ctx context.Context, dir, pattern, output string, workers int, quiet bool) error {
	files, err := extractSpecies(ctx, dir, pattern, workers, quiet)
	if err != nil {
		return err
	}

	records := flattenSpecies(files)
	if len(records) == 0 {
		log.Warn().Str("dir", dir).Msg("No species extracted, nothing written")
		return nil
	}

	if err := export.WriteSpeciesCSV(output, records); err != nil {
		return fmt.Errorf("write species csv: %w", err)
	}

	log.Info().Int("species", len(records)).Str("output", output).Msg("Species export complete")
	return nil
}

// extractSpecies runs the extractor over every matching header in dir.
// Files that fail to read are logged and left out; results keep file order.
func extractSpecies(ctx context.Context, dir, pattern string, workers int, quiet bool) ([]*species.FileResult, error) {
	walker, err := filewalker.NewWalker(pattern)
	if err != nil {
		return nil, err
	}

	entries, err := walker.Walk(dir)
	if err != nil {
		return nil, fmt.Errorf("discover species files: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	var opts []worker.Option[filewalker.FileEntry, *species.FileResult]
	if !quiet {
		bar := progressbar.NewOptions(len(entries),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Extracting species"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		opts = append(opts, worker.WithProgress[filewalker.FileEntry, *species.FileResult](func() {
			_ = bar.Add(1)
		}))
	}

	pool := worker.NewPool(workers, func(_ context.Context, entry filewalker.FileEntry) (*species.FileResult, error) {
		content, err := walker.ReadFile(entry)
		if err != nil {
			return nil, err
		}
		return species.ExtractFile(entry.Path, content), nil
	}, opts...)

	var results []*species.FileResult
	for _, task := range pool.Execute(ctx, entries) {
		if task.Err != nil {
			log.Warn().Err(task.Err).Str("file", task.Input.Name).Msg("Could not process file")
			continue
		}
		res := task.Result
		for _, enum := range res.Skipped {
			log.Debug().Str("file", task.Input.Name).Str("species", enum).Msg("Species block not found")
		}
		log.Debug().
			Str("file", task.Input.Name).
			Str("generation", res.Generation).
			Int("species", len(res.Species)).
			Int("skipped", len(res.Skipped)).
			Msg("Extracted file")
		results = append(results, res)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func flattenSpecies(files []*species.FileResult) []species.Species {
	var records []species.Species
	for _, f := range files {
		records = append(records, f.Species...)
	}
	return records
}
