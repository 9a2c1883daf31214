package draw

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/hexfall/internal/board"
)

// Ink is an index into the palette. Ink 0 is transparent.
type Ink uint8

// Fixed inks. Block colors follow InkBlock in board palette order.
const (
	InkNone Ink = iota
	InkRim
	InkCore
	InkBlock
)

const (
	rimHex  = "#9ca3af"
	coreHex = "#4b5563"
	textHex = "#e5e7eb"
)

// BlockInk returns the ink used for a board color.
func BlockInk(c board.Color) Ink {
	if c == board.Empty {
		return InkNone
	}
	return InkBlock + Ink(c-1)
}

// Palette turns inks into styled half-block cells for one output. The
// renderer is bound to that output, so every session gets its own profile.
type Palette struct {
	renderer *lipgloss.Renderer
	colors   []lipgloss.Color
	cells    map[cellInk]string

	Text  lipgloss.Style // HUD text
	Title lipgloss.Style // Screen titles
	Dim   lipgloss.Style // Hints and secondary text
}

// NewPalette creates a palette rendering for w with the given color profile.
// SSH sessions have no local TTY to detect, so the profile is passed in.
func NewPalette(w io.Writer, profile termenv.Profile) *Palette {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	colors := []lipgloss.Color{"", rimHex, coreHex}
	for _, c := range board.Palette {
		colors = append(colors, lipgloss.Color(c.Hex()))
	}

	return &Palette{
		renderer: r,
		colors:   colors,
		cells:    make(map[cellInk]string),
		Text:     r.NewStyle().Foreground(lipgloss.Color(textHex)).Bold(true),
		Title:    r.NewStyle().Foreground(lipgloss.Color(board.Sky.Hex())).Bold(true),
		Dim:      r.NewStyle().Foreground(lipgloss.Color(rimHex)),
	}
}

// Cell returns the styled character showing top over bottom.
func (p *Palette) Cell(top, bottom Ink) string {
	key := cellInk{top, bottom}
	if s, ok := p.cells[key]; ok {
		return s
	}

	var s string
	switch {
	case top == InkNone && bottom == InkNone:
		s = " "
	case top == bottom:
		s = p.renderer.NewStyle().Foreground(p.color(top)).Render(string(BlockFull))
	case bottom == InkNone:
		s = p.renderer.NewStyle().Foreground(p.color(top)).Render(string(BlockUpperHalf))
	case top == InkNone:
		s = p.renderer.NewStyle().Foreground(p.color(bottom)).Render(string(BlockLowerHalf))
	default:
		s = p.renderer.NewStyle().
			Foreground(p.color(top)).
			Background(p.color(bottom)).
			Render(string(BlockUpperHalf))
	}
	p.cells[key] = s
	return s
}

func (p *Palette) color(ink Ink) lipgloss.Color {
	if int(ink) < len(p.colors) {
		return p.colors[ink]
	}
	return lipgloss.Color(textHex)
}
