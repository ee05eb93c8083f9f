package simulation

import (
	"github.com/nvandessel/walkheat/internal/heatmap"
	"github.com/nvandessel/walkheat/internal/lattice"
)

// Result is the outcome of a single walk.
type Result struct {
	Steps int               `json:"steps"`
	Exit  lattice.Direction `json:"exit"`
	Final lattice.Coord     `json:"final"` // first position outside the boundary
}

// Walk runs one walk from the origin inside b, recording every in-bounds
// position into hm. Steps always equals the number of positions recorded
// by this call, and is at least one whenever b passes Validate. A negative
// boundary contains nothing: the walk records nothing and reports zero
// steps. Run and RunBatch reject such boundaries before walking.
func Walk(b lattice.Boundary, hm *heatmap.Heatmap, src Source) Result {
	pos := lattice.Origin
	steps := 0

	for b.Contains(pos) {
		hm.Increment(pos)
		pos = pos.Add(src.Next().Delta())
		steps++
	}

	return Result{
		Steps: steps,
		Exit:  b.ExitSide(pos),
		Final: pos,
	}
}
