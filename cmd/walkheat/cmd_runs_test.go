package main

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvandessel/walkheat/internal/store"
)

func TestNewRunsCmd(t *testing.T) {
	cmd := newRunsCmd()
	if cmd.Use != "runs" {
		t.Errorf("Use = %q, want runs", cmd.Use)
	}
	if cmd.PersistentFlags().Lookup("db") == nil {
		t.Error("missing --db flag")
	}

	list := newRunsListCmd()
	limit, _ := list.Flags().GetInt("limit")
	if limit != 20 {
		t.Errorf("default limit = %d, want 20", limit)
	}
}

func TestRecordListShow(t *testing.T) {
	work := isolateHome(t)
	db := filepath.Join(work, "ledger", "runs.db")

	out, _, err := runCmd(t, "simulate", "--json", "--walks", "25", "--boundary", "2", "--seed", "7",
		"--no-image", "--record", "--db", db)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	var sim simulateOutput
	if err := json.Unmarshal([]byte(out), &sim); err != nil {
		t.Fatalf("invalid simulate JSON: %v", err)
	}
	if sim.RunID == "" {
		t.Fatal("expected run_id when recording")
	}

	out, _, err = runCmd(t, "runs", "list", "--json", "--db", db)
	if err != nil {
		t.Fatalf("runs list failed: %v", err)
	}
	var listed struct {
		Runs  []store.Run `json:"runs"`
		Count int         `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("invalid list JSON: %v", err)
	}
	if listed.Count != 1 || listed.Runs[0].ID != sim.RunID {
		t.Fatalf("listed = %+v, want single run %s", listed, sim.RunID)
	}
	r := listed.Runs[0]
	if r.Walks != 25 || r.Boundary != 2 || r.Seed != 7 {
		t.Errorf("recorded parameters = %+v", r)
	}
	if r.AverageSteps != sim.Summary.AverageSteps {
		t.Errorf("recorded average = %f, want %f", r.AverageSteps, sim.Summary.AverageSteps)
	}
	if r.ExitRight+r.ExitLeft+r.ExitUp+r.ExitDown != 25 {
		t.Errorf("recorded exits do not sum to 25: %+v", r)
	}

	out, _, err = runCmd(t, "runs", "show", sim.RunID, "--db", db)
	if err != nil {
		t.Fatalf("runs show failed: %v", err)
	}
	if !strings.Contains(out, "Seed:          7") {
		t.Errorf("show output missing seed:\n%s", out)
	}

	out, _, err = runCmd(t, "runs", "list", "--db", db)
	if err != nil {
		t.Fatalf("runs list failed: %v", err)
	}
	if !strings.Contains(out, sim.RunID[:8]) {
		t.Errorf("table output missing short id:\n%s", out)
	}
}

func TestRunsList_Empty(t *testing.T) {
	work := isolateHome(t)

	db := filepath.Join(work, "ledger", "empty.db")

	out, _, err := runCmd(t, "runs", "list", "--db", db)
	if err != nil {
		t.Fatalf("runs list failed: %v", err)
	}
	if !strings.Contains(out, "No recorded runs.") {
		t.Errorf("unexpected output: %q", out)
	}

	out, _, err = runCmd(t, "runs", "list", "--json", "--db", db)
	if err != nil {
		t.Fatalf("runs list --json failed: %v", err)
	}
	if !strings.Contains(out, `"count":0`) {
		t.Errorf("unexpected JSON output: %q", out)
	}

	if _, err := os.Stat(filepath.Join(work, "ledger")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("listing created the ledger directory (stat err = %v)", err)
	}
}

func TestRunsList_DefaultLedgerNotCreated(t *testing.T) {
	isolateHome(t)

	if _, _, err := runCmd(t, "runs", "list"); err != nil {
		t.Fatalf("runs list failed: %v", err)
	}
	home, _ := os.UserHomeDir()
	if _, err := os.Stat(filepath.Join(home, ".walkheat", "runs.db")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("runs list created the default ledger (stat err = %v)", err)
	}
}

func TestRunsShow_NotFound(t *testing.T) {
	work := isolateHome(t)

	db := filepath.Join(work, "runs.db")

	_, _, err := runCmd(t, "runs", "show", "nope", "--db", db)
	if !errors.Is(err, store.ErrRunNotFound) {
		t.Errorf("missing ledger: error = %v, want ErrRunNotFound", err)
	}
	if _, statErr := os.Stat(db); !errors.Is(statErr, fs.ErrNotExist) {
		t.Errorf("show created the ledger (stat err = %v)", statErr)
	}

	if _, _, err := runCmd(t, "simulate", "--walks", "1", "--no-image", "--record", "--db", db); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	_, _, err = runCmd(t, "runs", "show", "nope", "--db", db)
	if !errors.Is(err, store.ErrRunNotFound) {
		t.Errorf("existing ledger: error = %v, want ErrRunNotFound", err)
	}
}
