package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	astar "github.com/pdrpinto/astargrid"
)

// Palette maps cell states to cell styles.
type Palette map[astar.State]tcell.Style

// NewPalette parses hex colors keyed by state name.
func NewPalette(colors map[string]string) (Palette, error) {
	p := make(Palette, len(colors))
	for name, hex := range colors {
		state, err := astar.ParseState(name)
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette %s: %w", name, err)
		}
		r, g, b := c.RGB255()
		p[state] = tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}
	return p, nil
}

// Style returns the style for s, falling back to the terminal default.
func (p Palette) Style(s astar.State) tcell.Style {
	if style, ok := p[s]; ok {
		return style
	}
	return tcell.StyleDefault
}
