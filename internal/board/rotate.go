package board

// Direction is a rotate action.
type Direction int

const (
	Left  Direction = iota // Rotation + 1
	Right                  // Rotation - 1
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Rotate steps the attached stack one lane in dir and reconciles falling
// blocks with their new target lanes. A falling block whose new target slot
// is already occupied is forced into the first empty slot of that lane; if
// the lane is full the block overflows and lost is reported. Blocks without
// a collision keep falling toward their new target.
func (b *Board) Rotate(dir Direction) (forced int, lost bool) {
	switch dir {
	case Left:
		b.Rotation = (b.Rotation + 1) % LaneCount
	case Right:
		b.Rotation = (b.Rotation + LaneCount - 1) % LaneCount
	}

	for lane := range LaneCount {
		target := FallingTarget(lane, b.Rotation)
		for index := range FallingSize {
			c := b.Falling[lane][index]
			if c == Empty || !b.occupied(target, index) {
				continue
			}

			b.Falling[lane][index] = Empty
			if b.attach(target, b.lowestEmpty(target), c) == Overflow {
				lost = true
				continue
			}
			forced++
		}
	}
	return forced, lost
}
