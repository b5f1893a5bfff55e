// Command battle-sim plays batches of headless battles and prints the
// outcome, for balance tuning and regression checks.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ericogr/chimera-battle/internal/battle"
	"github.com/ericogr/chimera-battle/internal/codec"
	"github.com/ericogr/chimera-battle/internal/config"
	"github.com/ericogr/chimera-battle/internal/game"
	"github.com/ericogr/chimera-battle/internal/logging"
	"github.com/ericogr/chimera-battle/internal/sim"
)

type flags struct {
	battles    int
	seed       int64
	difficulty string
	configPath string
	teamSize   int
	maxTurns   int
	budget     time.Duration
	verbose    bool
	asJSON     bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	f := flags{}
	cmd := &cobra.Command{
		Use:          "battle-sim",
		Short:        "Play planner-vs-planner battles and report the results",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logging.SetLevel(f.logLevel)
			return run(cmd.Context(), f)
		},
	}
	cmd.Flags().IntVarP(&f.battles, "battles", "n", 10, "number of battles to play")
	cmd.Flags().Int64Var(&f.seed, "seed", 1, "seed of the first battle; battle i uses seed+i")
	cmd.Flags().StringVarP(&f.difficulty, "difficulty", "d", string(game.DifficultyNormal), "enemy difficulty")
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "catalog JSON file; empty uses the stock catalog")
	cmd.Flags().IntVar(&f.teamSize, "team-size", 4, "creatures in the player's team")
	cmd.Flags().IntVar(&f.maxTurns, "max-turns", 200, "turns before a battle is called a stalemate")
	cmd.Flags().DurationVar(&f.budget, "ai-budget", 0, "time budget per enemy turn; zero disables it")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "print every battle log line")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print reports as JSON")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "warn", "log level")
	return cmd
}

func run(ctx context.Context, f flags) error {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(f.configPath); err != nil {
			return err
		}
	}
	if f.battles <= 0 {
		return eris.Errorf("--battles must be positive, got %d", f.battles)
	}

	runner := sim.Runner{
		Orchestrator: battle.NewOrchestrator(cfg.NewMachine(), cfg.NewPlanner(), f.budget),
		Player:       cfg.NewPlanner(),
	}
	team := sim.DefaultTeam(cfg, f.teamSize)

	var sum sim.Summary
	reports := make([]sim.Report, 0, f.battles)
	for i := 0; i < f.battles; i++ {
		rep, err := runner.Run(ctx, sim.Options{
			Seed:       f.seed + int64(i),
			Difficulty: game.Difficulty(f.difficulty),
			Team:       team,
			MaxTurns:   f.maxTurns,
		})
		if err != nil {
			return err
		}
		sum.Add(rep)
		if f.asJSON {
			if !f.verbose {
				rep.Log = nil
			}
			reports = append(reports, rep)
			continue
		}
		fmt.Printf("battle %d seed=%d result=%s turns=%d\n", i+1, rep.Seed, rep.Result, rep.Turns)
		if f.verbose {
			for _, e := range rep.Log {
				fmt.Printf("  [%d] %s\n", e.Turn, e.Message)
			}
		}
	}

	if f.asJSON {
		b, err := codec.Marshal(struct {
			Summary sim.Summary  `json:"summary"`
			Battles []sim.Report `json:"battles"`
		}{sum, reports})
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}
	fmt.Printf("\n%d battles: %d victories, %d defeats, %d stalemates, %.1f turns on average\n",
		sum.Battles, sum.Victories, sum.Defeats, sum.Stalemates, float64(sum.TotalTurns)/float64(sum.Battles))
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
