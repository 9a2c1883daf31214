package draw

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// Point represents a 2D coordinate in logical space.
type Point struct {
	X, Y float64
}

// Half-block characters used to pack two vertical pixels into one cell.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// dirtyInk marks a cell whose on-screen content is unknown.
const dirtyInk Ink = math.MaxUint8

// cellInk is the pair of inks shown by one terminal cell.
type cellInk [2]Ink

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Each pixel holds a palette ink; Ink 0 is transparent.
// Logical coordinates are scaled uniformly and centered, so shapes keep their
// proportions on any terminal size.
type Canvas struct {
	termWidth      int   // Actual terminal columns
	termHeight     int   // Actual terminal rows
	subPixelHeight int   // termHeight * 2
	pixels         []Ink // Flat slice: [y * termWidth + x]

	// prev holds what each cell showed after the last Render, so only
	// changed cells are rewritten.
	prev  []cellInk
	force bool

	logicalWidth  float64
	logicalHeight float64
	scale         float64 // pixels per logical unit, same on both axes
	originX       float64 // pixel position of logical x=0
	originY       float64 // pixel position of logical y=0

	// Offset for centering the render area when terminal is larger than max resolution.
	offsetCol int
	offsetRow int

	renderBuf       strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
}

// NewCanvas creates a canvas for the given terminal dimensions that maps
// the logicalWidth x logicalHeight area onto it.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A size change forces a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]Ink, subPixelHeight*termWidth)
		c.prev = make([]cellInk, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.force = true
	}

	sx := float64(termWidth) / c.logicalWidth
	sy := float64(subPixelHeight) / c.logicalHeight
	c.scale = math.Min(sx, sy)
	c.originX = (float64(termWidth) - c.logicalWidth*c.scale) / 2
	c.originY = (float64(subPixelHeight) - c.logicalHeight*c.scale) / 2
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.force = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas. The screen is not touched until Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render rewrite every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.force = true
}

// MarkTextDirty records that text was written over n cells starting at the
// 1-based canvas position (col, row). Those cells are repainted next Render.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	y := row - 1
	if y < 0 || y >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.prev[y*c.termWidth+x] = cellInk{dirtyInk, dirtyInk}
		}
	}
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, ink Ink) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = ink
	}
}

// At returns the ink of the pixel at terminal pixel coordinates.
func (c *Canvas) At(x, y int) Ink {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return 0
	}
	return c.pixels[y*c.termWidth+x]
}

// toPixel maps a logical point to pixel space.
func (c *Canvas) toPixel(p Point) Point {
	return Point{
		X: c.originX + p.X*c.scale,
		Y: c.originY + p.Y*c.scale,
	}
}

// Set sets the pixel under the logical point p.
func (c *Canvas) Set(p Point, ink Ink) {
	px := c.toPixel(p)
	c.setPixel(int(math.Floor(px.X)), int(math.Floor(px.Y)), ink)
}

// FillPolygon fills a polygon using the scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) FillPolygon(points []Point, ink Ink) {
	if len(points) < 3 {
		return
	}
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = c.toPixel(p)
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		// Sample pixel centers, matching the scanline's half-pixel offset.
		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i] - 0.5))
			xEnd := int(math.Floor(intersections[i+1] - 0.5))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, ink)
			}
		}
	}
}

// Render writes every cell that changed since the previous Render, using p
// to color the half-blocks.
func (c *Canvas) Render(w io.Writer, p *Palette) {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			cell := cellInk{c.pixels[topOffset+col], c.pixels[bottomOffset+col]}
			idx := row*c.termWidth + col
			if !c.force && c.prev[idx] == cell {
				continue
			}
			c.prev[idx] = cell

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			c.renderBuf.WriteString(p.Cell(cell[0], cell[1]))
		}
	}
	c.force = false

	io.WriteString(w, c.renderBuf.String())
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts a logical point to a 1-based canvas position (col, row).
// Useful for placing text overlays over canvas-drawn shapes.
func (c *Canvas) LogicalToTerminal(p Point) (col, row int) {
	px := c.toPixel(p)
	return int(math.Floor(px.X)) + 1, int(math.Floor(px.Y))/2 + 1
}
