package draw

import (
	"math"
	"strconv"

	"github.com/tomz197/hexfall/internal/board"
	"github.com/tomz197/hexfall/internal/game"
)

// Hex board geometry in logical units. Lanes radiate from the center; slot 0
// of every lane touches the core hexagon.
const (
	InnerRadius = 102.4 // Core hexagon radius
	BlockHeight = 25.0  // Radial depth of one slot
	RimRadius   = InnerRadius + board.LaneSize*BlockHeight
	OuterRadius = InnerRadius + board.FallingSize*BlockHeight
	LogicalSize = 2 * (OuterRadius + BlockHeight/2)
)

// Center is the logical center of the board.
var Center = Point{X: LogicalSize / 2, Y: LogicalSize / 2}

// polar returns the point at radius r on the ray at angle steps, where one
// step is a sixth of a turn.
func polar(steps, r float64) Point {
	a := steps / board.LaneCount * 2 * math.Pi
	return Point{
		X: Center.X + math.Cos(a)*r,
		Y: Center.Y + math.Sin(a)*r,
	}
}

// Hexagon writes the six corners of a hexagon of the given radius into dst.
func Hexagon(dst []Point, radius float64) []Point {
	dst = dst[:0]
	for i := range board.LaneCount {
		dst = append(dst, polar(float64(i), radius))
	}
	return dst
}

// Slot writes the trapezoid of slot index between angle steps and steps+1
// into dst.
func Slot(dst []Point, steps float64, index int) []Point {
	r0 := InnerRadius + float64(index)*BlockHeight
	r1 := r0 + BlockHeight
	return append(dst[:0],
		polar(steps, r0),
		polar(steps+1, r0),
		polar(steps+1, r1),
		polar(steps, r1),
	)
}

// BoardView draws snapshots onto a canvas and queues the result on a
// ChunkWriter. The caller flushes.
type BoardView struct {
	canvas  *Canvas
	palette *Palette
	out     *ChunkWriter
	poly    []Point
}

var _ game.Renderer = (*BoardView)(nil)

// NewBoardView creates a view drawing through c and p into out.
func NewBoardView(c *Canvas, p *Palette, out *ChunkWriter) *BoardView {
	return &BoardView{
		canvas:  c,
		palette: p,
		out:     out,
		poly:    make([]Point, 0, board.LaneCount),
	}
}

// Render paints snap and writes it, with the score in the core.
func (v *BoardView) Render(snap *game.Snapshot) {
	v.Paint(snap)
	v.canvas.Render(v.out, v.palette)

	score := strconv.Itoa(snap.Score)
	col, row := v.canvas.LogicalToTerminal(Center)
	col -= len(score) / 2
	v.out.WriteAt(col, row, v.palette.Text.Render(score))
	v.canvas.MarkTextDirty(col, row, len(score))
}

// Paint draws snap onto the canvas without writing anything.
// Attached lanes turn with the rotation; falling lanes stay put.
func (v *BoardView) Paint(snap *game.Snapshot) {
	c := v.canvas
	c.Clear()

	v.poly = Hexagon(v.poly, RimRadius)
	c.FillPolygon(v.poly, InkRim)
	v.poly = Hexagon(v.poly, InnerRadius)
	c.FillPolygon(v.poly, InkCore)

	for lane := range board.LaneCount {
		steps := float64(lane - snap.Rotation)
		for i, color := range snap.Attached[lane] {
			if color == board.Empty {
				continue
			}
			v.poly = Slot(v.poly, steps, i)
			c.FillPolygon(v.poly, BlockInk(color))
		}
	}

	for lane := range board.LaneCount {
		for i, color := range snap.Falling[lane] {
			if color == board.Empty {
				continue
			}
			v.poly = Slot(v.poly, float64(lane), i)
			c.FillPolygon(v.poly, BlockInk(color))
		}
	}
}
