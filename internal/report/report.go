// Package report summarises a batch of walks for the console.
package report

import (
	"fmt"
	"io"

	"github.com/nvandessel/walkheat/internal/lattice"
	"github.com/nvandessel/walkheat/internal/simulation"
)

// ExitCounts holds how many walks left through each side.
type ExitCounts struct {
	Right int `json:"right"`
	Left  int `json:"left"`
	Up    int `json:"up"`
	Down  int `json:"down"`
}

// Get returns the count for d.
func (e ExitCounts) Get(d lattice.Direction) int {
	switch d {
	case lattice.Right:
		return e.Right
	case lattice.Left:
		return e.Left
	case lattice.Up:
		return e.Up
	case lattice.Down:
		return e.Down
	}
	return 0
}

// Sum returns the total across all four sides.
func (e ExitCounts) Sum() int {
	return e.Right + e.Left + e.Up + e.Down
}

func (e *ExitCounts) add(d lattice.Direction) {
	switch d {
	case lattice.Right:
		e.Right++
	case lattice.Left:
		e.Left++
	case lattice.Up:
		e.Up++
	case lattice.Down:
		e.Down++
	}
}

// Summary is the aggregate view of a batch.
type Summary struct {
	Walks        int        `json:"walks"`
	Boundary     int        `json:"boundary"`
	AverageSteps float64    `json:"average_steps"`
	MinSteps     int        `json:"min_steps"`
	MaxSteps     int        `json:"max_steps"`
	TotalSteps   int        `json:"total_steps"`
	Exits        ExitCounts `json:"exits"`
	Cells        int        `json:"visited_cells"`
}

// Summarize aggregates the steps and exits of a batch.
func Summarize(batch *simulation.Batch) Summary {
	s := Summary{
		Walks:    batch.Len(),
		Boundary: batch.Boundary.N,
		Cells:    batch.Heatmap.Len(),
	}

	for i, steps := range batch.Steps {
		s.TotalSteps += steps
		if i == 0 || steps < s.MinSteps {
			s.MinSteps = steps
		}
		if steps > s.MaxSteps {
			s.MaxSteps = steps
		}
	}
	if s.Walks > 0 {
		s.AverageSteps = float64(s.TotalSteps) / float64(s.Walks)
	}

	for _, d := range batch.Exits {
		s.Exits.add(d)
	}

	return s
}

// WriteText prints the average step count followed by one line per exit
// side in right, left, up, down order.
func WriteText(w io.Writer, s Summary) error {
	if _, err := fmt.Fprintf(w, "Average number of steps: %.2f\n", s.AverageSteps); err != nil {
		return err
	}
	for _, d := range lattice.ReportOrder {
		if _, err := fmt.Fprintf(w, "Number of walks that exit to the %s: %d\n", d, s.Exits.Get(d)); err != nil {
			return err
		}
	}
	return nil
}
