package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"dexsheet/internal/config"
	"dexsheet/internal/export"
	"dexsheet/internal/roster"
	"dexsheet/internal/textutil"
)

func rosterCmd(cfg *config.Config) *cobra.Command {
	var (
		mastersheet  string
		calcSets     string
		dropTrailing bool
	)

	cmd := &cobra.Command{
		Use:   "roster [file]",
		Short: "Parse trainers.party and write the mastersheet and calc sets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.RosterPath
			if len(args) == 1 {
				path = args[0]
			}
			return runRoster(path, mastersheet, calcSets, dropTrailing)
		},
	}

	cmd.Flags().StringVar(&mastersheet, "mastersheet", cfg.MastersheetPath, "Output path for the Markdown mastersheet")
	cmd.Flags().StringVar(&calcSets, "calc-sets", cfg.CalcSetsPath, "Output path for the damage-calc sets file")
	cmd.Flags().BoolVar(&dropTrailing, "drop-trailing", !cfg.FlushTrailingTrainer, "Do not file the trainer still open at end of input")

	return cmd
}

// runRoster handles the `roster` command.
func runRoster(path, mastersheet, calcSets string, dropTrailing bool) error {
	result, err := parseRoster(path, dropTrailing)
	if err != nil {
		return err
	}

	if err := export.WriteMastersheet(mastersheet, result.Trainers); err != nil {
		return fmt.Errorf("write mastersheet: %w", err)
	}
	if err := export.WriteCalcSets(calcSets, result.Trainers); err != nil {
		return fmt.Errorf("write calc sets: %w", err)
	}

	log.Info().
		Str("mastersheet", mastersheet).
		Str("calc_sets", calcSets).
		Msg("Roster export complete")
	return nil
}

// parseRoster parses the roster at path and logs per-record problems.
func parseRoster(path string, dropTrailing bool) (*roster.Result, error) {
	result, err := roster.NewParser(roster.Options{DropTrailing: dropTrailing}).ParseFile(path)
	if err != nil {
		return nil, err
	}

	for _, e := range result.Errors {
		log.Warn().
			Err(e.Err).
			Int("line", e.Line).
			Str("trainer", e.Trainer).
			Str("species", textutil.Truncate(e.Species, 40)).
			Msg("Skipped roster record")
	}

	log.Info().
		Str("file", path).
		Int("trainers", len(result.Trainers)).
		Int("creatures", result.CreatureCount()).
		Int("errors", len(result.Errors)).
		Msg("Parsed roster")
	return result, nil
}
