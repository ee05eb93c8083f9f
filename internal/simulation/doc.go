// Package simulation runs bounded random walks on the integer lattice and
// accumulates their visits into a heatmap.
//
// A walk starts at the origin and, while it is inside the boundary square,
// records its position and takes one uniformly random unit step. The first
// position outside the square ends the walk and is not recorded. A batch
// runs many walks one after another against a single heatmap.
//
// Direction choices come from a Source. NewRandSource gives a seeded PCG
// stream; NewScript replays a fixed sequence, which makes every walk,
// result and heatmap exactly reproducible in tests.
//
// Usage:
//
//	src := simulation.NewRandSource(42)
//	batch, err := simulation.RunBatch(1000, lattice.Boundary{N: 3}, src)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(batch.Heatmap.Total())
package simulation
