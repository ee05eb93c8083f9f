package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvandessel/walkheat/internal/config"
	"github.com/nvandessel/walkheat/internal/heatmap"
	"github.com/nvandessel/walkheat/internal/lattice"
	"github.com/nvandessel/walkheat/internal/logging"
	"github.com/nvandessel/walkheat/internal/report"
	"github.com/nvandessel/walkheat/internal/simulation"
	"github.com/nvandessel/walkheat/internal/store"
	"github.com/nvandessel/walkheat/internal/visualization"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a batch of bounded random walks",
		Long: `Run a batch of random walks inside the square |x| <= n, |y| <= n.

Each walk starts at (0,0) and takes uniformly random unit steps until it
leaves the square. The average number of steps and the number of walks
leaving through each side are printed; the visit heatmap is written as a PNG.

Examples:
  walkheat simulate                          # 1000 walks, boundary 3
  walkheat simulate --walks 5000 --boundary 5
  walkheat simulate --seed 42 --ascii        # reproducible, heatmap in terminal
  walkheat simulate --record --json          # save summary to the run ledger`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applySimulateFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx := commandContext(cmd)

			seed := cfg.Simulation.Seed
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			boundary := lattice.Boundary{N: cfg.Simulation.Boundary}

			runner := simulation.NewRunner(simulation.NewRandSource(seed))
			if logger.Enabled(ctx, logging.LevelTrace) {
				runner.AfterWalk = func(i int, r simulation.Result) {
					logger.Log(ctx, logging.LevelTrace, "walk finished",
						"index", i, "steps", r.Steps, "exit", r.Exit.String(), "final", r.Final.String())
				}
			}

			logger.Info("running batch", "walks", cfg.Simulation.Walks, "boundary", boundary.N, "seed", seed)
			start := time.Now()
			batch, err := runner.Run(cfg.Simulation.Walks, boundary)
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}
			summary := report.Summarize(batch)
			logger.Debug("batch finished", "elapsed", time.Since(start),
				"total_steps", summary.TotalSteps, "visited_cells", summary.Cells)

			gridSize, err := batch.Heatmap.GridSize()
			if err != nil {
				return fmt.Errorf("sizing heatmap: %w", err)
			}

			imagePath := cfg.Output.Image
			if imagePath != "" {
				opts := visualization.DefaultOptions()
				opts.CellSize = cfg.Output.CellSize
				if err := visualization.WritePNGFile(imagePath, batch.Heatmap, gridSize, opts); err != nil {
					return fmt.Errorf("failed to render heatmap: %w", err)
				}
				logger.Info("wrote heatmap", "path", imagePath, "grid_size", gridSize)
			}

			var runID string
			if cfg.Store.Record {
				run, err := recordRun(ctx, cfg, summary, seed, imagePath)
				if err != nil {
					return err
				}
				runID = run.ID
				logger.Info("recorded run", "id", run.ID, "db", cfg.Store.Path)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				if err := json.NewEncoder(out).Encode(simulateOutput{
					Summary:  summary,
					Seed:     seed,
					GridSize: gridSize,
					Image:    imagePath,
					RunID:    runID,
					Heatmap:  batch.Heatmap.Cells(),
				}); err != nil {
					return err
				}
			} else {
				if err := report.WriteText(out, summary); err != nil {
					return err
				}
				if cfg.Output.ASCII {
					fmt.Fprintln(out)
					if err := visualization.RenderText(out, batch.Heatmap, gridSize); err != nil {
						return err
					}
				}
			}

			if cfg.Output.Open {
				if imagePath == "" {
					logger.Warn("nothing to open, heatmap image is disabled")
				} else {
					openImage(logger, imagePath)
				}
			}

			return nil
		},
	}

	cmd.Flags().Int("walks", 0, "Number of walks in the batch (default from config, 1000)")
	cmd.Flags().Int("boundary", 0, "Boundary half-width n (default from config, 3)")
	cmd.Flags().Uint64("seed", 0, "Random seed, 0 derives one from the clock")
	cmd.Flags().String("image", "", "Write the heatmap PNG to this path (default heatmap.png)")
	cmd.Flags().Bool("no-image", false, "Skip writing the heatmap PNG")
	cmd.Flags().Int("cell-size", 0, "Pixels per lattice cell in the PNG")
	cmd.Flags().Bool("ascii", false, "Print the heatmap to the terminal")
	cmd.Flags().Bool("open", false, "Open the heatmap PNG in the default viewer")
	cmd.Flags().Bool("record", false, "Save the batch summary to the run ledger")
	cmd.Flags().String("db", "", "Run ledger path (default ~/.walkheat/runs.db)")

	return cmd
}

// simulateOutput is the --json shape of a batch.
type simulateOutput struct {
	Summary  report.Summary `json:"summary"`
	Seed     uint64         `json:"seed"`
	GridSize int            `json:"grid_size"`
	Image    string         `json:"image,omitempty"`
	RunID    string         `json:"run_id,omitempty"`
	Heatmap  []heatmap.Cell `json:"heatmap"`
}

// applySimulateFlags overrides config values with flags the user set.
func applySimulateFlags(cmd *cobra.Command, cfg *config.WalkheatConfig) {
	flags := cmd.Flags()
	if flags.Changed("walks") {
		cfg.Simulation.Walks, _ = flags.GetInt("walks")
	}
	if flags.Changed("boundary") {
		cfg.Simulation.Boundary, _ = flags.GetInt("boundary")
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("image") {
		cfg.Output.Image, _ = flags.GetString("image")
	}
	if noImage, _ := flags.GetBool("no-image"); noImage {
		cfg.Output.Image = ""
	}
	if flags.Changed("cell-size") {
		cfg.Output.CellSize, _ = flags.GetInt("cell-size")
	}
	if flags.Changed("ascii") {
		cfg.Output.ASCII, _ = flags.GetBool("ascii")
	}
	if flags.Changed("open") {
		cfg.Output.Open, _ = flags.GetBool("open")
	}
	if flags.Changed("record") {
		cfg.Store.Record, _ = flags.GetBool("record")
	}
	if flags.Changed("db") {
		cfg.Store.Path, _ = flags.GetString("db")
	}
}

func recordRun(ctx context.Context, cfg *config.WalkheatConfig, s report.Summary, seed uint64, imagePath string) (store.Run, error) {
	runStore, err := store.Open(ctx, cfg.Store.Path)
	if err != nil {
		return store.Run{}, fmt.Errorf("failed to open run ledger: %w", err)
	}
	defer runStore.Close()

	run, err := runStore.Save(ctx, runFromSummary(s, seed, imagePath))
	if err != nil {
		return store.Run{}, fmt.Errorf("failed to record run: %w", err)
	}
	return run, nil
}

func runFromSummary(s report.Summary, seed uint64, imagePath string) store.Run {
	return store.Run{
		Walks:        s.Walks,
		Boundary:     s.Boundary,
		Seed:         seed,
		AverageSteps: s.AverageSteps,
		MinSteps:     s.MinSteps,
		MaxSteps:     s.MaxSteps,
		TotalSteps:   s.TotalSteps,
		VisitedCells: s.Cells,
		ExitRight:    s.Exits.Right,
		ExitLeft:     s.Exits.Left,
		ExitUp:       s.Exits.Up,
		ExitDown:     s.Exits.Down,
		ImagePath:    imagePath,
	}
}

// openImage launches the viewer, logging a warning if it cannot.
func openImage(logger *slog.Logger, path string) {
	if err := visualization.Open(path); err != nil {
		logger.Warn("could not open heatmap viewer", "path", path, "error", err)
	}
}
