package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"dexsheet/internal/config"
	"dexsheet/internal/graph"
	"dexsheet/internal/store"
)

func similarCmd(cfg *config.Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "similar <species>",
		Short: "List the species closest in base stats",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			pgPool, err := store.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pgPool.Close()

			key := strings.Join(args, " ")
			neighbors, err := store.NewSpeciesStore(pgPool).Similar(ctx, key, limit)
			if errors.Is(err, store.ErrSpeciesNotFound) {
				return fmt.Errorf("no species named %q is loaded; run `dexsheet load` first", key)
			}
			if err != nil {
				return err
			}
			return printNeighbors(cmd.OutOrStdout(), neighbors)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Number of species to list")
	return cmd
}

func chainCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "chain <species>",
		Short: "Print the evolution family of a species",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			driver, err := connectNeo4j(ctx, cfg)
			if err != nil {
				return err
			}
			defer driver.Close(ctx)

			key := strings.Join(args, " ")
			edges, err := graph.NewEvolutionGraph(driver).Family(ctx, key)
			if err != nil {
				return err
			}
			return printFamily(cmd.OutOrStdout(), key, edges)
		},
	}
}

func printNeighbors(w io.Writer, neighbors []store.Neighbor) error {
	for _, n := range neighbors {
		if _, err := fmt.Fprintf(w, "%-24s BST %3d  distance %.2f\n", n.Key, n.BST, n.Distance); err != nil {
			return err
		}
	}
	return nil
}

func printFamily(w io.Writer, key string, edges []graph.Edge) error {
	if len(edges) == 0 {
		_, err := fmt.Fprintf(w, "%s does not evolve\n", key)
		return err
	}
	for _, e := range edges {
		if _, err := fmt.Fprintf(w, "%s -> %s\n", e.From, e.Label); err != nil {
			return err
		}
	}
	return nil
}
