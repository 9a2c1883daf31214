package board

// Rand is the randomness the spawner consumes. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// spawnWeights maps a uniform draw to a spawn count using cumulative
// thresholds: 1 (50%), 2 (30%), 3 (15%), 4 (5%).
var spawnWeights = [...]struct {
	count      int
	cumulative float64
}{
	{1, 0.50},
	{2, 0.80},
	{3, 0.95},
	{4, 1.00},
}

// SpawnCount converts a uniform draw in [0, 1) into a spawn count.
func SpawnCount(u float64) int {
	for _, w := range spawnWeights {
		if u < w.cumulative {
			return w.count
		}
	}
	return spawnWeights[len(spawnWeights)-1].count
}

// Spawn drops between one and four blocks of random color into the outermost
// slot of distinct random lanes. An occupied outermost slot is overwritten.
func (b *Board) Spawn(r Rand) []Cell {
	count := SpawnCount(r.Float64())

	var used [LaneCount]bool
	spawned := make([]Cell, 0, count)
	for len(spawned) < count {
		lane := r.IntN(LaneCount)
		if used[lane] {
			continue
		}
		used[lane] = true
		b.Falling[lane][FallingSize-1] = Palette[r.IntN(len(Palette))]
		spawned = append(spawned, Cell{Lane: lane, Index: FallingSize - 1})
	}
	return spawned
}
