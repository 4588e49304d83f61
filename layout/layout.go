// Package layout loads and saves grid layouts: the size, walls and endpoints
// of a grid, without any search results.
//
// A layout is written either as coordinate lists or as an ASCII map where
// '.' is free, '#' is a wall, 'S' is the start and 'E' is the end:
//
//	rows: 5
//	start: [0, 0]
//	end: [4, 4]
//	walls:
//	  - [2, 1]
//	  - [2, 2]
//
//	map: |
//	  S....
//	  .###.
//	  ....E
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	astar "github.com/pdrpinto/astargrid"
)

var (
	// ErrInvalidLayout is returned when a layout fails validation.
	ErrInvalidLayout = errors.New("invalid layout")

	// ErrUnsupportedFormat is returned for file extensions other than
	// .yaml, .yml and .toml.
	ErrUnsupportedFormat = errors.New("unsupported layout format")
)

// Format is a layout file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Coord is a [row, col] pair.
type Coord []int

func (c Coord) cell() (astar.Cell, error) {
	if len(c) != 2 {
		return astar.Cell{}, fmt.Errorf("%w: coordinate %v must have 2 elements", ErrInvalidLayout, []int(c))
	}
	return astar.Cell{Row: c[0], Col: c[1]}, nil
}

func coordOf(c astar.Cell) Coord { return Coord{c.Row, c.Col} }

// Layout describes a grid. Rows may be omitted when Map is given.
type Layout struct {
	Rows  int     `yaml:"rows" toml:"rows"`
	Start Coord   `yaml:"start,omitempty" toml:"start,omitempty"`
	End   Coord   `yaml:"end,omitempty" toml:"end,omitempty"`
	Walls []Coord `yaml:"walls,omitempty" toml:"walls,omitempty"`
	Map   string  `yaml:"map,omitempty" toml:"map,omitempty"`
}

// Load reads, parses and validates a layout file.
func Load(path string) (*Layout, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	l, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse decodes and validates a layout.
func Parse(data []byte, format Format) (*Layout, error) {
	var l Layout
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &l)
	case FormatTOML:
		err = toml.Unmarshal(data, &l)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v layout: %w", format, err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// resolved is a validated layout in grid terms.
type resolved struct {
	rows       int
	walls      []astar.Cell
	start, end *astar.Cell
}

func (l *Layout) resolve() (*resolved, error) {
	r := &resolved{rows: l.Rows}

	var lines []string
	if strings.TrimSpace(l.Map) != "" {
		for _, line := range strings.Split(strings.TrimSpace(l.Map), "\n") {
			lines = append(lines, strings.TrimSpace(line))
		}
		if r.rows == 0 {
			r.rows = len(lines)
		}
		if len(lines) != r.rows {
			return nil, fmt.Errorf("%w: map has %d lines, want %d", ErrInvalidLayout, len(lines), r.rows)
		}
	}
	if r.rows <= 0 {
		return nil, fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidLayout, r.rows)
	}

	inBounds := func(c astar.Cell) error {
		if c.Row < 0 || c.Row >= r.rows || c.Col < 0 || c.Col >= r.rows {
			return fmt.Errorf("%w: %v outside %dx%d grid", ErrInvalidLayout, c, r.rows, r.rows)
		}
		return nil
	}
	setEndpoint := func(dst **astar.Cell, c astar.Cell, name string) error {
		if err := inBounds(c); err != nil {
			return err
		}
		if *dst != nil && **dst != c {
			return fmt.Errorf("%w: %s given twice (%v and %v)", ErrInvalidLayout, name, **dst, c)
		}
		*dst = &c
		return nil
	}

	for row, line := range lines {
		if len(line) != r.rows {
			return nil, fmt.Errorf("%w: map line %d has %d columns, want %d", ErrInvalidLayout, row, len(line), r.rows)
		}
		for col, ch := range line {
			c := astar.Cell{Row: row, Col: col}
			var err error
			switch ch {
			case '.':
			case '#':
				r.walls = append(r.walls, c)
			case 'S':
				err = setEndpoint(&r.start, c, "start")
			case 'E':
				err = setEndpoint(&r.end, c, "end")
			default:
				err = fmt.Errorf("%w: map line %d has unknown cell %q", ErrInvalidLayout, row, ch)
			}
			if err != nil {
				return nil, err
			}
		}
	}

	if l.Start != nil {
		c, err := l.Start.cell()
		if err != nil {
			return nil, err
		}
		if err := setEndpoint(&r.start, c, "start"); err != nil {
			return nil, err
		}
	}
	if l.End != nil {
		c, err := l.End.cell()
		if err != nil {
			return nil, err
		}
		if err := setEndpoint(&r.end, c, "end"); err != nil {
			return nil, err
		}
	}
	if r.start != nil && r.end != nil && *r.start == *r.end {
		return nil, fmt.Errorf("%w: start and end coincide at %v", ErrInvalidLayout, *r.start)
	}

	for _, w := range l.Walls {
		c, err := w.cell()
		if err != nil {
			return nil, err
		}
		if err := inBounds(c); err != nil {
			return nil, err
		}
		r.walls = append(r.walls, c)
	}
	for _, w := range r.walls {
		if (r.start != nil && w == *r.start) || (r.end != nil && w == *r.end) {
			return nil, fmt.Errorf("%w: wall on endpoint %v", ErrInvalidLayout, w)
		}
	}
	return r, nil
}

// Validate checks sizes, coordinates and endpoint uniqueness.
func (l *Layout) Validate() error {
	_, err := l.resolve()
	return err
}

// Size returns the grid dimension, derived from Map when Rows is unset.
func (l *Layout) Size() (int, error) {
	r, err := l.resolve()
	if err != nil {
		return 0, err
	}
	return r.rows, nil
}

// Build returns a new grid with the layout applied.
func (l *Layout) Build() (*astar.Grid, error) {
	r, err := l.resolve()
	if err != nil {
		return nil, err
	}
	g, err := astar.NewGrid(r.rows)
	if err != nil {
		return nil, err
	}
	return g, r.apply(g)
}

// Apply resets g and applies the layout to it. g must have the layout's size.
func (l *Layout) Apply(g *astar.Grid) error {
	r, err := l.resolve()
	if err != nil {
		return err
	}
	if g.Rows() != r.rows {
		return fmt.Errorf("%w: layout has %d rows, grid has %d", ErrInvalidLayout, r.rows, g.Rows())
	}
	return r.apply(g)
}

func (r *resolved) apply(g *astar.Grid) error {
	g.Reset()
	for _, w := range r.walls {
		if err := g.SetState(w, astar.Blocked); err != nil {
			return err
		}
	}
	if r.start != nil {
		if err := g.SetState(*r.start, astar.Start); err != nil {
			return err
		}
	}
	if r.end != nil {
		if err := g.SetState(*r.end, astar.End); err != nil {
			return err
		}
	}
	return nil
}

// FromGrid captures the walls and endpoints of g. Search classifications are
// not recorded.
func FromGrid(g *astar.Grid) *Layout {
	l := &Layout{Rows: g.Rows()}
	if c, ok := g.Start(); ok {
		l.Start = coordOf(c)
	}
	if c, ok := g.End(); ok {
		l.End = coordOf(c)
	}
	g.Cells(func(c astar.Cell, s astar.State) {
		if s == astar.Blocked {
			l.Walls = append(l.Walls, coordOf(c))
		}
	})
	return l
}

// Marshal encodes the layout.
func (l *Layout) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(l)
	case FormatTOML:
		return toml.Marshal(l)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
}

// Save writes the layout to path in the format implied by its extension.
func (l *Layout) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := l.Marshal(format)
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}
