package board

// Group is a connected run of same-colored attached blocks.
type Group struct {
	Color Color
	Cells []Cell
}

// visitSet marks attached slots already assigned to a component.
type visitSet [LaneCount][LaneSize]bool

// neighbors returns the 4-neighborhood of c. The lane axis wraps around the
// ring; the index axis is bounded by the attached capacity.
func neighbors(c Cell) []Cell {
	out := make([]Cell, 0, 4)
	out = append(out,
		Cell{Lane: (c.Lane - 1 + LaneCount) % LaneCount, Index: c.Index},
		Cell{Lane: (c.Lane + 1) % LaneCount, Index: c.Index},
	)
	if c.Index > 0 {
		out = append(out, Cell{Lane: c.Lane, Index: c.Index - 1})
	}
	if c.Index < LaneSize-1 {
		out = append(out, Cell{Lane: c.Lane, Index: c.Index + 1})
	}
	return out
}

// Group returns the connected component of equal color containing the
// attached slot (lane, index), in breadth-first order from the seed. It
// returns nil for an empty slot.
func (b *Board) Group(lane, index int) []Cell {
	var visited visitSet
	return b.flood(lane, index, &visited)
}

func (b *Board) flood(lane, index int, visited *visitSet) []Cell {
	color := b.Attached[lane][index]
	if color == Empty || visited[lane][index] {
		return nil
	}

	visited[lane][index] = true
	queue := []Cell{{Lane: lane, Index: index}}
	var group []Cell
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		group = append(group, cur)

		for _, n := range neighbors(cur) {
			if visited[n.Lane][n.Index] || b.Attached[n.Lane][n.Index] != color {
				continue
			}
			visited[n.Lane][n.Index] = true
			queue = append(queue, n)
		}
	}
	return group
}

// Resolve runs one match pass over the attached stack. Slots are seeded in
// lane-then-index order and each slot joins at most one component per pass.
// Components of MatchSize or more are scored and cleared, and any block left
// above a gap in a touched lane floats back into its falling lane at the same
// index.
//
// The pass is not repeated to a fixed point: groups formed by this pass's
// clears are found on the next tick.
func (b *Board) Resolve() (cleared []Group, floated int) {
	var visited visitSet
	for lane := range LaneCount {
		for index := range LaneSize {
			color := b.Attached[lane][index]
			cells := b.flood(lane, index, &visited)
			if len(cells) < MatchSize {
				continue
			}

			b.Score += len(cells)
			for _, c := range cells {
				b.Attached[c.Lane][c.Index] = Empty
			}
			for _, touched := range distinctLanes(cells) {
				floated += b.floatBack(touched)
			}
			cleared = append(cleared, Group{Color: color, Cells: cells})
		}
	}
	return cleared, floated
}

// distinctLanes returns the lanes of cells in first-seen order.
func distinctLanes(cells []Cell) []int {
	var seen [LaneCount]bool
	var lanes []int
	for _, c := range cells {
		if !seen[c.Lane] {
			seen[c.Lane] = true
			lanes = append(lanes, c.Lane)
		}
	}
	return lanes
}

// floatBack moves every attached block above the first gap in lane back into
// the falling lane that feeds it, keeping its index.
func (b *Board) floatBack(lane int) int {
	source := AttachedSource(lane, b.Rotation)
	floated := 0
	gap := false
	for index, c := range b.Attached[lane] {
		if c == Empty {
			gap = true
			continue
		}
		if !gap {
			continue
		}
		b.Attached[lane][index] = Empty
		b.Falling[source][index] = c
		floated++
	}
	return floated
}
