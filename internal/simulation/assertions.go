package simulation

import (
	"testing"

	"github.com/nvandessel/walkheat/internal/lattice"
)

// AssertBounded asserts that every recorded coordinate lies inside the
// batch boundary.
func AssertBounded(t *testing.T, batch *Batch) {
	t.Helper()
	for _, cell := range batch.Heatmap.Cells() {
		if !batch.Boundary.Contains(cell.Coord) {
			t.Errorf("AssertBounded: %v recorded %d times outside boundary %d", cell.Coord, cell.Count, batch.Boundary.N)
		}
	}
}

// AssertStepsMatchVisits asserts that every walk took at least one step and
// that the total steps equal the total visits in the heatmap.
func AssertStepsMatchVisits(t *testing.T, batch *Batch) {
	t.Helper()
	sum := 0
	for i, s := range batch.Steps {
		if s < 1 {
			t.Errorf("AssertStepsMatchVisits: walk %d has %d steps, want >= 1", i, s)
		}
		sum += s
	}
	if got := batch.Heatmap.Total(); got != sum {
		t.Errorf("AssertStepsMatchVisits: heatmap total %d != step sum %d", got, sum)
	}
}

// AssertExitsAccountedFor asserts that the per-direction exit counts add up
// to the number of walks.
func AssertExitsAccountedFor(t *testing.T, batch *Batch) {
	t.Helper()
	counts := make(map[lattice.Direction]int, 4)
	for _, d := range batch.Exits {
		counts[d]++
	}
	sum := 0
	for _, d := range lattice.ReportOrder {
		sum += counts[d]
	}
	if sum != batch.Len() {
		t.Errorf("AssertExitsAccountedFor: exit counts sum to %d, want %d", sum, batch.Len())
	}
	if len(batch.Exits) != len(batch.Steps) {
		t.Errorf("AssertExitsAccountedFor: %d exits vs %d step counts", len(batch.Exits), len(batch.Steps))
	}
}

// AssertSameBatch asserts that two batches have identical walks and heatmaps.
func AssertSameBatch(t *testing.T, a, b *Batch) {
	t.Helper()
	if a.Len() != b.Len() {
		t.Fatalf("AssertSameBatch: lengths differ: %d vs %d", a.Len(), b.Len())
	}
	for i := range a.Steps {
		if a.Steps[i] != b.Steps[i] || a.Exits[i] != b.Exits[i] {
			t.Errorf("AssertSameBatch: walk %d differs: (%d,%s) vs (%d,%s)",
				i, a.Steps[i], a.Exits[i], b.Steps[i], b.Exits[i])
		}
	}
	ac, bc := a.Heatmap.Cells(), b.Heatmap.Cells()
	if len(ac) != len(bc) {
		t.Fatalf("AssertSameBatch: heatmap sizes differ: %d vs %d", len(ac), len(bc))
	}
	for i := range ac {
		if ac[i] != bc[i] {
			t.Errorf("AssertSameBatch: heatmap cell %d differs: %v vs %v", i, ac[i], bc[i])
		}
	}
}
