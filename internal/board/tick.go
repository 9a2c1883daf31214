package board

// Result reports what a single Step did.
type Result struct {
	Tick     int     // Tick counter value the step ran at
	Cleared  []Group // Groups removed by the match pass
	Floated  int     // Blocks returned to the falling lanes
	Attached int     // Blocks locked into the stack by descent
	Spawned  []Cell  // Slots written by the spawner, nil if it did not run
	Lost     bool    // A block overflowed during descent
}

// Points returns the score gained by the step.
func (r Result) Points() int {
	total := 0
	for _, g := range r.Cleared {
		total += len(g.Cells)
	}
	return total
}

// Step runs one tick: match resolution, then descent, then the spawner when
// the tick counter is a multiple of SpawnEvery, then increments the counter.
// A loss does not cut the tick short; the caller stops scheduling further
// ticks.
func (b *Board) Step(r Rand) Result {
	res := Result{Tick: b.Tick}
	res.Cleared, res.Floated = b.Resolve()
	res.Attached, res.Lost = b.Descend()
	if b.Tick%SpawnEvery == 0 {
		res.Spawned = b.Spawn(r)
	}
	b.Tick++
	return res
}
