// Package lattice defines coordinates, unit moves and the square boundary
// that confines a walk on the integer lattice.
package lattice

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNegativeBoundary is returned when a boundary magnitude is below zero.
var ErrNegativeBoundary = errors.New("boundary magnitude must be non-negative")

// Coord is a point on the unbounded integer lattice.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Origin is where every walk starts.
var Origin = Coord{}

// Add returns c moved by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// MaxAbs returns max(|x|, |y|), the Chebyshev distance from the origin.
func (c Coord) MaxAbs() int {
	return max(abs(c.X), abs(c.Y))
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is one of the four cardinal unit moves.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in draw order.
var Directions = [4]Direction{Up, Down, Left, Right}

// ReportOrder is the order exit counts are printed in.
var ReportOrder = [4]Direction{Right, Left, Up, Down}

// Delta returns the unit move for d. Up increases y.
func (d Direction) Delta() Coord {
	switch d {
	case Up:
		return Coord{0, 1}
	case Down:
		return Coord{0, -1}
	case Left:
		return Coord{-1, 0}
	case Right:
		return Coord{1, 0}
	}
	return Coord{}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// MarshalText encodes d by name so it reads well in JSON.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction: %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// ParseDirection maps a name ("up", "down", "left", "right") to a Direction.
// Matching is case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown direction: %q (valid: up, down, left, right)", s)
}

// Boundary is the square |x| <= N and |y| <= N a walk stays inside.
type Boundary struct {
	N int `json:"n"`
}

// Validate rejects negative magnitudes.
func (b Boundary) Validate() error {
	if b.N < 0 {
		return fmt.Errorf("%w, got %d", ErrNegativeBoundary, b.N)
	}
	return nil
}

// Contains reports whether c lies inside the square, edges included.
func (b Boundary) Contains(c Coord) bool {
	return abs(c.X) <= b.N && abs(c.Y) <= b.N
}

// ExitSide names the side of the square that c lies beyond.
// The x axis is checked before the y axis, so a point past both a vertical
// and a horizontal edge reports right or left. Anything not beyond right,
// left or up reports down.
func (b Boundary) ExitSide(c Coord) Direction {
	switch {
	case c.X > b.N:
		return Right
	case c.X < -b.N:
		return Left
	case c.Y > b.N:
		return Up
	default:
		return Down
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
