package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvandessel/walkheat/internal/constants"
	"github.com/nvandessel/walkheat/internal/store"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded batch summaries",
		Long: `List and show batches recorded with 'walkheat simulate --record'.

Only batch-level summaries are kept: parameters, seed, average steps and
exit counts. Re-run with the recorded seed to reproduce a heatmap.

Examples:
  walkheat runs list
  walkheat runs list --limit 5 --json
  walkheat runs show 3f2a...`,
	}

	cmd.PersistentFlags().String("db", "", "Run ledger path (default ~/.walkheat/runs.db)")

	cmd.AddCommand(
		newRunsListCmd(),
		newRunsShowCmd(),
	)

	return cmd
}

// errNoLedger means nothing has been recorded yet.
var errNoLedger = errors.New("no run ledger")

// openRunStore opens the ledger named by --db or the config. A ledger that
// does not exist yet is reported as errNoLedger rather than created.
func openRunStore(ctx context.Context, cmd *cobra.Command) (*store.RunStore, error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("db") {
		cfg.Store.Path, _ = cmd.Flags().GetString("db")
	}

	if _, err := os.Stat(cfg.Store.Path); errors.Is(err, fs.ErrNotExist) {
		return nil, errNoLedger
	}
	runStore, err := store.Open(ctx, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run ledger: %w", err)
	}
	return runStore, nil
}

func newRunsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")

			ctx := commandContext(cmd)
			var runs []store.Run
			runStore, err := openRunStore(ctx, cmd)
			switch {
			case errors.Is(err, errNoLedger):
			case err != nil:
				return err
			default:
				defer runStore.Close()
				if runs, err = runStore.List(ctx, limit); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				if runs == nil {
					runs = []store.Run{}
				}
				return json.NewEncoder(out).Encode(map[string]interface{}{
					"runs":  runs,
					"count": len(runs),
				})
			}

			if len(runs) == 0 {
				fmt.Fprintln(out, "No recorded runs.")
				return nil
			}

			fmt.Fprintf(out, "%-8s %-20s %7s %4s %8s %6s %6s %6s %6s\n",
				"ID", "Created", "Walks", "N", "AvgSteps", "Right", "Left", "Up", "Down")
			for _, r := range runs {
				shortID := r.ID
				if len(shortID) > 8 {
					shortID = shortID[:8]
				}
				fmt.Fprintf(out, "%-8s %-20s %7d %4d %8.2f %6d %6d %6d %6d\n",
					shortID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					r.Walks, r.Boundary, r.AverageSteps,
					r.ExitRight, r.ExitLeft, r.ExitUp, r.ExitDown)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", constants.DefaultRunListLimit, "Maximum runs to show (0 for all)")

	return cmd
}

func newRunsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			ctx := commandContext(cmd)
			runStore, err := openRunStore(ctx, cmd)
			if errors.Is(err, errNoLedger) {
				return fmt.Errorf("%w: %s", store.ErrRunNotFound, args[0])
			}
			if err != nil {
				return err
			}
			defer runStore.Close()

			run, err := runStore.Get(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(run)
			}

			fmt.Fprintf(out, "Run %s\n", run.ID)
			fmt.Fprintf(out, "  Created:       %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "  Walks:         %d\n", run.Walks)
			fmt.Fprintf(out, "  Boundary:      %d\n", run.Boundary)
			fmt.Fprintf(out, "  Seed:          %d\n", run.Seed)
			fmt.Fprintf(out, "  Average steps: %.2f (min %d, max %d)\n", run.AverageSteps, run.MinSteps, run.MaxSteps)
			fmt.Fprintf(out, "  Visited cells: %d\n", run.VisitedCells)
			fmt.Fprintf(out, "  Exits:         right=%d left=%d up=%d down=%d\n",
				run.ExitRight, run.ExitLeft, run.ExitUp, run.ExitDown)
			if run.ImagePath != "" {
				fmt.Fprintf(out, "  Image:         %s\n", run.ImagePath)
			}
			return nil
		},
	}
}
