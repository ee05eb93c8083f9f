package lattice

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Coord
	}{
		{Up, Coord{0, 1}},
		{Down, Coord{0, -1}},
		{Left, Coord{-1, 0}},
		{Right, Coord{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			if got := tt.dir.Delta(); got != tt.want {
				t.Errorf("%s.Delta() = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"up", Up, false},
		{"DOWN", Down, false},
		{" left ", Left, false},
		{"Right", Right, false},
		{"north", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDirection(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDirectionJSON(t *testing.T) {
	data, err := json.Marshal([]Direction{Right, Up})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `["right","up"]` {
		t.Errorf("Marshal = %s, want [\"right\",\"up\"]", data)
	}

	var back []Direction
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(back) != 2 || back[0] != Right || back[1] != Up {
		t.Errorf("Unmarshal = %v, want [right up]", back)
	}

	if _, err := json.Marshal(Direction(9)); err == nil {
		t.Error("expected error marshaling invalid direction")
	}
}

func TestBoundaryContains(t *testing.T) {
	b := Boundary{N: 2}
	tests := []struct {
		c    Coord
		want bool
	}{
		{Origin, true},
		{Coord{2, 2}, true},
		{Coord{-2, -2}, true},
		{Coord{3, 0}, false},
		{Coord{0, -3}, false},
		{Coord{3, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.c.String(), func(t *testing.T) {
			if got := b.Contains(tt.c); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestBoundaryContains_Zero(t *testing.T) {
	b := Boundary{N: 0}
	if !b.Contains(Origin) {
		t.Error("origin must be inside a zero boundary")
	}
	for _, d := range Directions {
		if b.Contains(Origin.Add(d.Delta())) {
			t.Errorf("one step %s from origin must leave a zero boundary", d)
		}
	}
}

func TestBoundaryExitSide(t *testing.T) {
	b := Boundary{N: 3}
	tests := []struct {
		name string
		c    Coord
		want Direction
	}{
		{"right", Coord{4, 0}, Right},
		{"left", Coord{-4, 1}, Left},
		{"up", Coord{2, 4}, Up},
		{"down", Coord{-3, -4}, Down},
		{"x beats y when both breached", Coord{4, 4}, Right},
		{"left beats down", Coord{-4, -4}, Left},
		{"left beats up", Coord{-4, 4}, Left},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.ExitSide(tt.c); got != tt.want {
				t.Errorf("ExitSide(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestBoundaryValidate(t *testing.T) {
	if err := (Boundary{N: 0}).Validate(); err != nil {
		t.Errorf("Validate(0) = %v, want nil", err)
	}
	err := (Boundary{N: -1}).Validate()
	if !errors.Is(err, ErrNegativeBoundary) {
		t.Errorf("Validate(-1) = %v, want ErrNegativeBoundary", err)
	}
}

func TestCoordMaxAbs(t *testing.T) {
	tests := []struct {
		c    Coord
		want int
	}{
		{Origin, 0},
		{Coord{-3, 1}, 3},
		{Coord{2, -5}, 5},
	}
	for _, tt := range tests {
		if got := tt.c.MaxAbs(); got != tt.want {
			t.Errorf("%v.MaxAbs() = %d, want %d", tt.c, got, tt.want)
		}
	}
}
