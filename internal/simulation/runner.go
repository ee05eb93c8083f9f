package simulation

import (
	"errors"
	"fmt"

	"github.com/nvandessel/walkheat/internal/heatmap"
	"github.com/nvandessel/walkheat/internal/lattice"
)

// ErrNoWalks is returned when a batch is asked to run fewer than one walk.
var ErrNoWalks = errors.New("walk count must be at least 1")

// Batch holds every walk of a run. Steps and Exits are parallel slices in
// the order the walks ran.
type Batch struct {
	Boundary lattice.Boundary
	Steps    []int
	Exits    []lattice.Direction
	Heatmap  *heatmap.Heatmap
}

// Len returns the number of walks in the batch.
func (b *Batch) Len() int {
	return len(b.Steps)
}

// Runner executes batches of walks against a single heatmap.
type Runner struct {
	Source Source

	// AfterWalk, when non-nil, is called with each walk's index and result
	// as soon as it finishes.
	AfterWalk func(index int, r Result)
}

// NewRunner creates a runner drawing directions from src.
func NewRunner(src Source) *Runner {
	return &Runner{Source: src}
}

// Run executes walks walks inside b, one after another.
func (r *Runner) Run(walks int, b lattice.Boundary) (*Batch, error) {
	if walks < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrNoWalks, walks)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	batch := &Batch{
		Boundary: b,
		Steps:    make([]int, 0, walks),
		Exits:    make([]lattice.Direction, 0, walks),
		Heatmap:  heatmap.New(),
	}

	for i := 0; i < walks; i++ {
		res := Walk(b, batch.Heatmap, r.Source)
		batch.Steps = append(batch.Steps, res.Steps)
		batch.Exits = append(batch.Exits, res.Exit)
		if r.AfterWalk != nil {
			r.AfterWalk(i, res)
		}
	}

	return batch, nil
}

// RunBatch is shorthand for NewRunner(src).Run(walks, b).
func RunBatch(walks int, b lattice.Boundary, src Source) (*Batch, error) {
	return NewRunner(src).Run(walks, b)
}
