package heatmap

import (
	"errors"
	"testing"

	"github.com/nvandessel/walkheat/internal/lattice"
)

func TestIncrement(t *testing.T) {
	h := New()
	c := lattice.Coord{X: 1, Y: -2}

	if got := h.Count(c); got != 0 {
		t.Fatalf("Count before Increment = %d, want 0", got)
	}

	h.Increment(c)
	h.Increment(c)
	h.Increment(lattice.Origin)

	if got := h.Count(c); got != 2 {
		t.Errorf("Count(%v) = %d, want 2", c, got)
	}
	if got := h.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	if got := h.Total(); got != 3 {
		t.Errorf("Total() = %d, want 3", got)
	}
	if got := h.MaxCount(); got != 2 {
		t.Errorf("MaxCount() = %d, want 2", got)
	}
}

func TestMaxAbs_Empty(t *testing.T) {
	h := New()
	if _, err := h.MaxAbs(); !errors.Is(err, ErrEmpty) {
		t.Errorf("MaxAbs() on empty heatmap error = %v, want ErrEmpty", err)
	}
	if _, err := h.GridSize(); !errors.Is(err, ErrEmpty) {
		t.Errorf("GridSize() on empty heatmap error = %v, want ErrEmpty", err)
	}
}

func TestGridSize(t *testing.T) {
	h := New()
	h.Increment(lattice.Origin)
	h.Increment(lattice.Coord{X: -2, Y: 1})

	m, err := h.MaxAbs()
	if err != nil {
		t.Fatalf("MaxAbs failed: %v", err)
	}
	if m != 2 {
		t.Errorf("MaxAbs() = %d, want 2", m)
	}

	size, err := h.GridSize()
	if err != nil {
		t.Fatalf("GridSize failed: %v", err)
	}
	if size != 3 {
		t.Errorf("GridSize() = %d, want 3", size)
	}
}

func TestGrid_Indexing(t *testing.T) {
	h := New()
	h.Increment(lattice.Origin)
	h.Increment(lattice.Coord{X: 1, Y: 1})
	h.Increment(lattice.Coord{X: 1, Y: 1})
	h.Increment(lattice.Coord{X: -1, Y: 0})
	h.Increment(lattice.Coord{X: 5, Y: 5}) // outside size 1, dropped

	grid := h.Grid(1)
	if len(grid) != 3 || len(grid[0]) != 3 {
		t.Fatalf("Grid(1) dims = %dx%d, want 3x3", len(grid), len(grid[0]))
	}

	want := [][]int{
		{0, 0, 2},
		{1, 1, 0},
		{0, 0, 0},
	}
	for r := range want {
		for c := range want[r] {
			if grid[r][c] != want[r][c] {
				t.Errorf("grid[%d][%d] = %d, want %d", r, c, grid[r][c], want[r][c])
			}
		}
	}
}

func TestCells_Order(t *testing.T) {
	h := New()
	h.Increment(lattice.Coord{X: 1, Y: 0})
	h.Increment(lattice.Coord{X: -1, Y: 0})
	h.Increment(lattice.Coord{X: 0, Y: 1})
	h.Increment(lattice.Coord{X: 0, Y: -1})

	cells := h.Cells()
	want := []lattice.Coord{{X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}}
	if len(cells) != len(want) {
		t.Fatalf("Cells() len = %d, want %d", len(cells), len(want))
	}
	for i, c := range want {
		if cells[i].Coord != c {
			t.Errorf("Cells()[%d] = %v, want %v", i, cells[i].Coord, c)
		}
		if cells[i].Count != 1 {
			t.Errorf("Cells()[%d].Count = %d, want 1", i, cells[i].Count)
		}
	}
}
