package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtding233/gem-gacha/internal/gacha"
	"github.com/xtding233/gem-gacha/internal/game"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Estimate draw rates for a draw type by Monte Carlo",
	RunE: func(cmd *cobra.Command, args []string) error {
		drawType, _ := cmd.Flags().GetString("type")
		trials, _ := cmd.Flags().GetInt("trials")
		until, _ := cmd.Flags().GetString("until")
		maxDraws, _ := cmd.Flags().GetInt("max-draws")
		seed, _ := cmd.Flags().GetUint64("seed")
		catalogPath, _ := cmd.Flags().GetString("catalog")

		cat, err := game.NewLoader(catalogPath).Load()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		rng := gacha.DefaultRNG()
		if seed != 0 {
			rng = gacha.NewSeededRNG(seed)
		}

		out := cmd.OutOrStdout()
		if until != "" {
			g := gacha.Grade(until)
			if !g.Valid() {
				return fmt.Errorf("unknown grade %q", until)
			}
			st, err := gacha.DrawsUntil(cat.Engine, drawType, g, trials, maxDraws, rng)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s draws until %s or better (%d trials)\n", drawType, g, trials)
			fmt.Fprintf(out, "  mean %.2f  stddev %.2f  p50 %.0f  p90 %.0f  p99 %.0f\n", st.Mean, st.StdDev, st.P50, st.P90, st.P99)
			return nil
		}

		d, err := gacha.Simulate(cat.Engine, drawType, trials, rng)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %d draws\n", drawType, trials)
		fmt.Fprintf(out, "  %-10s %-6s %10s %9s %9s\n", "grade", "", "count", "observed", "expected")
		for _, g := range gacha.AllGrades() {
			fmt.Fprintf(out, "  %-10s %-6s %10d %8.3f%% %8.3f%%\n", g, g.DisplayName(), d.Counts[g], d.Observed[g], d.Expected[g])
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().String("type", "premium", "Draw type to simulate")
	simulateCmd.Flags().Int("trials", 100000, "Number of draws (or trials with --until)")
	simulateCmd.Flags().String("until", "", "Measure draws needed to reach this grade or better")
	simulateCmd.Flags().Int("max-draws", 10000, "Cap on draws per trial with --until")
	simulateCmd.Flags().Uint64("seed", 0, "Seed for a reproducible run (0 uses crypto/rand)")
	simulateCmd.Flags().String("catalog", "", "Catalog override YAML file")
}
