package monospace

import (
	"strings"

	"github.com/npillmayer/textblock/core/dimen"
	"github.com/npillmayer/textblock/engine/text"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
)

// Display is a monospace page of a fixed number of columns. It measures text
// in multiples of em and draws text into a grid of cells.
type Display struct {
	columns          int
	em               dimen.Px
	lineHeight       dimen.Px
	context          *uax11.Context
	graphemeSplitter *segment.Segmenter
	rows             [][]cell
}

type cell struct {
	grapheme string
	style    text.Style
	cont     bool // right half of a wide grapheme
}

var _ text.Provider = &Display{}

// New creates a monospace display with a width of columns cells.
// If em is zero, it will be set to 1, i.e. a pixel is a cell.
// If context is nil, a Latin context is used for determining grapheme widths.
func New(columns int, em dimen.Px, context *uax11.Context) *Display {
	if em <= 0 {
		em = 1
	}
	d := &Display{
		columns:    columns,
		em:         em,
		lineHeight: em,
		context:    context,
	}
	if d.context == nil {
		d.context = uax11.LatinContext
	}
	grapheme.SetupGraphemeClasses()
	onGraphemes := grapheme.NewBreaker(1)
	d.graphemeSplitter = segment.NewSegmenter(onGraphemes)
	return d
}

// SetLineHeight sets the vertical distance of grid rows. DrawText maps y to
// row y / lineHeight.
func (d *Display) SetLineHeight(h dimen.Px) {
	if h > 0 {
		d.lineHeight = h
	}
}

// LineHeight returns the vertical distance of grid rows.
func (d *Display) LineHeight() dimen.Px {
	return d.lineHeight
}

// Em returns the width of a single cell.
func (d *Display) Em() dimen.Px {
	return d.em
}

// Columns returns the number of cells per line.
func (d *Display) Columns() int {
	return d.columns
}

// SetColumns changes the page width. Content already drawn is kept.
func (d *Display) SetColumns(columns int) {
	d.columns = columns
}

// MeasureText is part of interface text.Metrics.
func (d *Display) MeasureText(s string, style text.Style) dimen.Px {
	w := 0
	d.eachGrapheme(s, func(g string, cells int) {
		w += cells
	})
	return dimen.Px(w) * d.em
}

// PageWidth is part of interface text.Metrics.
func (d *Display) PageWidth() dimen.Px {
	return dimen.Px(d.columns) * d.em
}

// SpaceWidth is part of interface text.Metrics. A space occupies one cell.
func (d *Display) SpaceWidth() dimen.Px {
	return d.em
}

// DrawText is part of interface text.Renderer. x is truncated to a cell position,
// y to a row. Text exceeding the right border of the page is clipped.
func (d *Display) DrawText(x, y dimen.Px, s string, style text.Style) {
	if x < 0 || y < 0 {
		tracer().Errorf("monospace: cannot draw '%s' at negative position (%d,%d)", s, x, y)
		return
	}
	col := int(x / d.em)
	r := d.row(int(y / d.lineHeight))
	d.eachGrapheme(s, func(g string, cells int) {
		for k := 0; k < cells && col < len(r); k++ {
			r[col] = cell{grapheme: g, style: style, cont: k > 0}
			col++
		}
	})
}

// row returns row i of the grid, growing the grid as necessary.
func (d *Display) row(i int) []cell {
	for len(d.rows) <= i {
		d.rows = append(d.rows, make([]cell, d.columns))
	}
	if len(d.rows[i]) < d.columns {
		grown := make([]cell, d.columns)
		copy(grown, d.rows[i])
		d.rows[i] = grown
	}
	return d.rows[i]
}

// Clear erases the grid.
func (d *Display) Clear() {
	d.rows = d.rows[:0]
}

// Lines returns the rows of the grid as strings, with trailing blanks removed.
func (d *Display) Lines() []string {
	lines := make([]string, len(d.rows))
	for i, r := range d.rows {
		var b strings.Builder
		for _, c := range r {
			switch {
			case c.cont:
				continue
			case c.grapheme == "":
				b.WriteByte(' ')
			default:
				b.WriteString(c.grapheme)
			}
		}
		lines[i] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

// StyleAt returns the style of the text drawn at cell (col, row).
func (d *Display) StyleAt(col, row int) text.Style {
	if row < 0 || row >= len(d.rows) || col < 0 || col >= len(d.rows[row]) {
		return text.Regular
	}
	return d.rows[row][col].style
}

func (d *Display) String() string {
	return strings.Join(d.Lines(), "\n")
}

func (d *Display) eachGrapheme(s string, f func(g string, cells int)) {
	if s == "" {
		return
	}
	d.graphemeSplitter.Init(strings.NewReader(s))
	for d.graphemeSplitter.Next() {
		grphm := d.graphemeSplitter.Bytes()
		w := uax11.Width(grphm, d.context)
		if w < 1 {
			w = 1
		}
		f(string(grphm), w)
	}
}
