package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mr-beerpong/internal/beerpong"
	"github.com/vovakirdan/mr-beerpong/internal/config"
	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/platform/tui"
	"github.com/vovakirdan/mr-beerpong/internal/registry"
)

var (
	flagTable    string
	flagThrows   int
	flagSave     bool
	flagSnapshot string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [mode]",
	Short: "Let the computer throw and print the result",
	Long: `Run a game without a terminal UI. The computer selects a table and
aims every throw at the front cup; the configured wobble still applies, so
the result depends on --seed and --difficulty.

Examples:
  beerpong simulate
  beerpong simulate --seed 42 --throws 30
  beerpong simulate beerpong_quick --table desk --difficulty hard
  beerpong simulate --save --log-level debug
  beerpong simulate --snapshot final.webp`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagTable, "table", "", "Surface ID to play on (default: first table)")
	simulateCmd.Flags().IntVar(&flagThrows, "throws", 20, "Maximum number of throws")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Store the session in the database")
	simulateCmd.Flags().StringVar(&flagSnapshot, "snapshot", "", "Write the final frame as a WebP image to this path")
}

func runSimulate(_ *cobra.Command, args []string) error {
	gameID, err := modeArg(args)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	env, err := buildEnv(logger, preset)
	if err != nil {
		return err
	}

	created, err := registry.Create(gameID, env)
	if err != nil {
		return err
	}
	game, ok := created.(*beerpong.Game)
	if !ok {
		return fmt.Errorf("mode %q cannot be simulated", gameID)
	}

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	game.Reset(cfg)

	sum, err := game.Autoplay(flagTable, flagThrows)
	if err != nil {
		return err
	}

	result := "rack not cleared"
	if sum.Won {
		result = "rack cleared"
	}
	fmt.Printf("%s on %s (seed %d)\n", game.Title(), sum.TableLabel, cfg.Seed)
	fmt.Printf("  Result:   %s\n", result)
	fmt.Printf("  Hits:     %d\n", sum.Hits)
	fmt.Printf("  Misses:   %d\n", sum.Misses)
	fmt.Printf("  Cups:     %d left\n", sum.CupsLeft)
	fmt.Printf("  Score:    %d\n", sum.Score)
	fmt.Printf("  Duration: %.1fs simulated\n", sum.Duration)

	if flagSnapshot != "" {
		if err := writeSnapshot(game, cfg); err != nil {
			return err
		}
		fmt.Printf("  Snapshot: %s\n", flagSnapshot)
	}

	if flagSave {
		store := openStore()
		if store == nil {
			return nil
		}
		defer store.Close()
		id, err := store.SaveSession(gameID, sum)
		if err != nil {
			return err
		}
		logger.Info("session saved", "id", id)
	}
	return nil
}

// writeSnapshot renders the final frame of game into the --snapshot file.
func writeSnapshot(game *beerpong.Game, cfg core.RuntimeConfig) error {
	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	game.Render(screen)

	f, err := os.Create(flagSnapshot)
	if err != nil {
		return fmt.Errorf("cannot create snapshot: %w", err)
	}
	if err := tui.WriteScreenshot(f, screen); err != nil {
		f.Close()
		return fmt.Errorf("cannot encode snapshot: %w", err)
	}
	return f.Close()
}
