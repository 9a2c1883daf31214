package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asciiPalette() *Palette {
	return NewPalette(&bytes.Buffer{}, termenv.Ascii)
}

func cursorMoves(s string) int {
	return strings.Count(s, "\033[")
}

func TestCanvasFillPolygon(t *testing.T) {
	c := NewCanvas(10, 5, 10, 10)
	square := []Point{{2, 2}, {6, 2}, {6, 6}, {2, 6}}

	c.FillPolygon(square, InkRim)

	assert.Equal(t, InkRim, c.At(2, 2))
	assert.Equal(t, InkRim, c.At(5, 5))
	assert.Equal(t, InkNone, c.At(6, 6))
	assert.Equal(t, InkNone, c.At(1, 3))
	assert.Equal(t, InkNone, c.At(-1, 50), "out of range reads are empty")
}

func TestCanvasScalesUniformlyAndCenters(t *testing.T) {
	c := NewCanvas(20, 5, 10, 10)

	c.Set(Point{0, 0}, InkCore)
	c.Set(Point{9.5, 9.5}, InkCore)

	assert.Equal(t, InkCore, c.At(5, 0))
	assert.Equal(t, InkCore, c.At(14, 9))

	col, row := c.LogicalToTerminal(Point{5, 5})
	assert.Equal(t, 11, col)
	assert.Equal(t, 3, row)
}

func TestCanvasRenderWritesOnlyChanges(t *testing.T) {
	c := NewCanvas(4, 2, 4, 4)
	p := asciiPalette()
	var out bytes.Buffer

	c.Render(&out, p)
	assert.Equal(t, 8, cursorMoves(out.String()), "first frame paints every cell")

	out.Reset()
	c.Render(&out, p)
	assert.Empty(t, out.String())

	c.Set(Point{1, 0}, InkRim)
	c.Render(&out, p)
	assert.Equal(t, "\033[1;2H"+string(BlockUpperHalf), out.String())

	out.Reset()
	c.Clear()
	c.Render(&out, p)
	assert.Equal(t, "\033[1;2H ", out.String(), "cleared pixels are blanked")

	out.Reset()
	c.ForceRedraw()
	c.Render(&out, p)
	assert.Equal(t, 8, cursorMoves(out.String()))
}

func TestCanvasMarkTextDirty(t *testing.T) {
	c := NewCanvas(6, 2, 6, 4)
	p := asciiPalette()
	var out bytes.Buffer
	c.Render(&out, p)

	out.Reset()
	c.MarkTextDirty(2, 2, 3)
	c.MarkTextDirty(5, 9, 3)
	c.Render(&out, p)

	assert.Equal(t, 3, cursorMoves(out.String()))
	assert.Contains(t, out.String(), "\033[2;2H")
}

func TestCanvasResizeForcesRedraw(t *testing.T) {
	c := NewCanvas(4, 2, 4, 4)
	p := asciiPalette()
	var out bytes.Buffer
	c.Render(&out, p)

	out.Reset()
	c.Resize(6, 3)
	c.SetOffset(2, 1)
	c.Render(&out, p)

	assert.Equal(t, 18, cursorMoves(out.String()))
	assert.True(t, strings.HasPrefix(out.String(), "\033[2;3H"), "offset shifts output")
}

func TestPaletteCells(t *testing.T) {
	p := asciiPalette()

	assert.Equal(t, " ", p.Cell(InkNone, InkNone))
	assert.Equal(t, string(BlockFull), p.Cell(InkRim, InkRim))
	assert.Equal(t, string(BlockUpperHalf), p.Cell(InkRim, InkNone))
	assert.Equal(t, string(BlockLowerHalf), p.Cell(InkNone, InkCore))
	assert.Equal(t, string(BlockUpperHalf), p.Cell(InkRim, InkCore))
}

func TestPaletteUsesProfile(t *testing.T) {
	p := NewPalette(&bytes.Buffer{}, termenv.TrueColor)

	cell := p.Cell(InkRim, InkNone)
	require.NotEqual(t, string(BlockUpperHalf), cell)
	assert.Contains(t, cell, "\033[")
	assert.Contains(t, cell, string(BlockUpperHalf))
}

func TestChunkWriterFlushesInChunks(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)

	cw.WriteAt(1, 1, "x")
	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[2;3Hx", out.String())

	out.Reset()
	big := strings.Repeat("y", 3*maxChunkSize+5)
	cw.WriteString(big)
	require.NoError(t, cw.Flush())
	assert.Equal(t, big, out.String())
	assert.Zero(t, cw.Len())
}

func TestChunkWriterWriteCentered(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)

	col, width := cw.WriteCentered(10, 3, "\033[1mhello\033[0m")

	assert.Equal(t, 8, col)
	assert.Equal(t, 5, width)
}
