package board

// Descend moves every falling block one step toward the center or locks it
// into the attached stack. Lanes are walked innermost slot first, so a block
// moves at most once per call.
//
// A block at index i advances to i-1 while the attached slot below it
// (i-1 in its target lane) is empty. Otherwise it attaches at index i. An
// attach at index LaneSize overflows the lane and reports lost; the rest of
// the pass still runs.
func (b *Board) Descend() (attached int, lost bool) {
	for lane := range LaneCount {
		target := FallingTarget(lane, b.Rotation)
		for index := range FallingSize {
			c := b.Falling[lane][index]
			if c == Empty {
				continue
			}

			b.Falling[lane][index] = Empty
			if index != 0 && !b.occupied(target, index-1) {
				b.Falling[lane][index-1] = c
				continue
			}

			if b.attach(target, index, c) == Overflow {
				lost = true
				continue
			}
			attached++
		}
	}
	return attached, lost
}
