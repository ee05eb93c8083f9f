// Package heatmap counts visits per lattice coordinate.
package heatmap

import (
	"errors"
	"sort"

	"github.com/nvandessel/walkheat/internal/lattice"
)

// ErrEmpty is returned when a bound is requested from a heatmap with no visits.
var ErrEmpty = errors.New("heatmap has no recorded visits")

// Heatmap maps coordinates to visit counts. Unvisited coordinates count zero.
// It is not safe for concurrent use.
type Heatmap struct {
	counts map[lattice.Coord]int
	total  int
}

// Cell is one visited coordinate and its count.
type Cell struct {
	lattice.Coord
	Count int `json:"count"`
}

// New returns an empty heatmap.
func New() *Heatmap {
	return &Heatmap{counts: make(map[lattice.Coord]int)}
}

// Increment adds one visit to c, creating the entry if absent.
func (h *Heatmap) Increment(c lattice.Coord) {
	h.counts[c] = h.Count(c) + 1
	h.total++
}

// Count returns the visits recorded at c, or zero.
func (h *Heatmap) Count(c lattice.Coord) int {
	return h.counts[c]
}

// Len returns the number of distinct visited coordinates.
func (h *Heatmap) Len() int {
	return len(h.counts)
}

// Total returns the sum of all counts.
func (h *Heatmap) Total() int {
	return h.total
}

// Cells returns every visited coordinate, top row first (y descending) and
// left to right within a row.
func (h *Heatmap) Cells() []Cell {
	cells := make([]Cell, 0, len(h.counts))
	for c, n := range h.counts {
		cells = append(cells, Cell{Coord: c, Count: n})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y > cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

// MaxCount returns the largest single count, or zero when empty.
func (h *Heatmap) MaxCount() int {
	best := 0
	for _, n := range h.counts {
		best = max(best, n)
	}
	return best
}

// MaxAbs returns the largest |x| or |y| over all visited coordinates.
func (h *Heatmap) MaxAbs() (int, error) {
	if len(h.counts) == 0 {
		return 0, ErrEmpty
	}
	best := 0
	for c := range h.counts {
		best = max(best, c.MaxAbs())
	}
	return best, nil
}

// GridSize returns the half-width used for rendering: one more than MaxAbs,
// leaving a ring of empty cells around everything visited.
func (h *Heatmap) GridSize() (int, error) {
	m, err := h.MaxAbs()
	if err != nil {
		return 0, err
	}
	return m + 1, nil
}

// Grid returns a dense (2*size+1) square matrix of counts. Row size-y and
// column x+size hold the count of (x, y), so row 0 is the largest y.
// Coordinates outside the square are left out.
func (h *Heatmap) Grid(size int) [][]int {
	if size < 0 {
		size = 0
	}
	dim := 2*size + 1
	grid := make([][]int, dim)
	for i := range grid {
		grid[i] = make([]int, dim)
	}
	for c, n := range h.counts {
		if c.MaxAbs() > size {
			continue
		}
		grid[size-c.Y][c.X+size] = n
	}
	return grid
}
