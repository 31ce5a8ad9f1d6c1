package textblock

import (
	"errors"
	"strings"

	"github.com/npillmayer/textblock/core"
	"github.com/npillmayer/textblock/core/dimen"
	"github.com/npillmayer/textblock/core/parameters"
	"github.com/npillmayer/textblock/engine/linebreak"
	"github.com/npillmayer/textblock/engine/linebreak/firstfit"
	"github.com/npillmayer/textblock/engine/linebreak/optimal"
	"github.com/npillmayer/textblock/engine/text"
)

// State is the layout state of a block.
type State int

// States of a layout pass.
const (
	Empty State = iota
	Measured
	Broken
	Positioned
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Measured:
		return "measured"
	case Broken:
		return "broken"
	case Positioned:
		return "positioned"
	}
	return "?"
}

// DiagnosticSink receives diagnostic context when breaking a block into lines
// runs into an internal inconsistency.
type DiagnosticSink interface {
	BreakFault(b *Block, err *linebreak.InconsistencyError)
}

// Block is a paragraph of words, laid out into justified lines.
type Block struct {
	words   []*Word
	breaks  linebreak.Breakpoints
	state   State
	regs    *parameters.TypesettingRegisters
	breaker linebreak.Breaker // nil: selected by P_LINEBREAKER
	sink    DiagnosticSink
}

// Option configures a block.
type Option func(*Block)

// WithDiagnostics sets the sink for diagnostic output of failing layout passes.
// The default sink writes to the 'textblock.layout' tracer.
func WithDiagnostics(sink DiagnosticSink) Option {
	return func(b *Block) {
		if sink != nil {
			b.sink = sink
		}
	}
}

// WithBreaker sets the line breaking algorithm, overriding P_LINEBREAKER.
func WithBreaker(breaker linebreak.Breaker) Option {
	return func(b *Block) {
		b.breaker = breaker
	}
}

// NewBlock creates an empty block. regs may be nil, in which case default
// typesetting parameters are used.
func NewBlock(regs *parameters.TypesettingRegisters, opts ...Option) *Block {
	b := &Block{
		regs: parameters.OrDefault(regs),
		sink: traceSink{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AppendWord appends a word to the block. Appending to a block which has already
// been laid out invalidates the layout.
func (b *Block) AppendWord(w *Word) {
	if w == nil {
		return
	}
	b.invalidate()
	b.words = append(b.words, w)
}

// Append creates a word and appends it to the block.
func (b *Block) Append(s string, style text.Style) *Word {
	w := NewWord(s, style)
	b.AppendWord(w)
	return w
}

// IsEmpty is true for a block without words.
func (b *Block) IsEmpty() bool {
	return len(b.words) == 0
}

// Words returns the words of the block in reading order.
func (b *Block) Words() []*Word {
	return b.words
}

// State returns the layout state of the block.
func (b *Block) State() State {
	return b.state
}

// Registers returns the typesetting parameters of the block.
func (b *Block) Registers() *parameters.TypesettingRegisters {
	return b.regs
}

// Widths returns the measured widths of all words.
func (b *Block) Widths() []dimen.Px {
	widths := make([]dimen.Px, len(b.words))
	for i, w := range b.words {
		widths[i] = w.width
	}
	return widths
}

// Breaks returns a copy of the breakpoints of the last layout pass.
func (b *Block) Breaks() linebreak.Breakpoints {
	return append(linebreak.Breakpoints(nil), b.breaks...)
}

// LineCount returns the number of lines after layout.
func (b *Block) LineCount() int {
	if b.state != Positioned {
		return 0
	}
	return len(b.breaks)
}

// Line returns the word range [start, end) of line l.
func (b *Block) Line(l int) (start, end int, err error) {
	if err = b.checkLine(l); err != nil {
		return 0, 0, err
	}
	start, end = b.breaks.Line(l)
	return start, end, nil
}

// LineWords returns the words of line l.
func (b *Block) LineWords(l int) ([]*Word, error) {
	start, end, err := b.Line(l)
	if err != nil {
		return nil, err
	}
	return b.words[start:end], nil
}

// Layout measures the words of the block, breaks them into lines and positions
// every word within its line. It replaces the result of any previous layout pass.
//
// A block without words lays out to zero lines. A provider with a page width
// which is not positive results in an error with code core.EINVALID, leaving the
// block in state Empty.
//
// If line breaking runs into an internal inconsistency, diagnostic context is sent
// to the block's diagnostic sink. The lines produced up to the fault are positioned
// and may be rendered; the error is returned nevertheless.
func (b *Block) Layout(m text.Metrics) error {
	b.invalidate()
	if len(b.words) == 0 {
		b.state = Positioned
		return nil
	}
	page, space := m.PageWidth(), m.SpaceWidth()
	if err := linebreak.CheckGeometry(len(b.words), page, space); err != nil {
		tracer().Errorf("layout: %v", err)
		return err
	}
	for _, w := range b.words {
		w.Measure(m)
	}
	b.state = Measured
	widths := b.Widths()
	breaks, err := b.breakerFunc()(widths, page, space, b.regs)
	if err != nil {
		var incons *linebreak.InconsistencyError
		if !errors.As(err, &incons) {
			b.state = Empty
			return err
		}
		b.sink.BreakFault(b, incons)
	}
	b.state = Broken
	xpos := linebreak.Justify(widths, breaks, page, space, b.regs)
	for i, w := range b.words {
		w.xpos = xpos[i]
	}
	b.breaks = breaks
	b.state = Positioned
	tracer().Debugf("layout: %d words set in %d lines", len(b.words), len(breaks))
	return err
}

// RenderLine draws the words of line l at vertical position y.
func (b *Block) RenderLine(r text.Renderer, l int, y dimen.Px) error {
	start, end, err := b.Line(l)
	if err != nil {
		return err
	}
	for _, w := range b.words[start:end] {
		w.Render(r, y)
	}
	return nil
}

func (b *Block) String() string {
	s := make([]string, len(b.words))
	for i, w := range b.words {
		s[i] = w.String()
	}
	return strings.Join(s, " ")
}

func (b *Block) invalidate() {
	b.breaks = nil
	b.state = Empty
}

func (b *Block) checkLine(l int) error {
	if b.state != Positioned {
		return core.Error(core.EINVALID, "block is %s, not positioned", b.state)
	}
	if l < 0 || l >= len(b.breaks) {
		return core.Error(core.EINVALID, "line %d out of range, block has %d lines", l, len(b.breaks))
	}
	return nil
}

func (b *Block) breakerFunc() linebreak.Breaker {
	if b.breaker != nil {
		return b.breaker
	}
	return BreakerByName(b.regs.S(parameters.P_LINEBREAKER))
}

// BreakerByName returns the line breaker registered under name, see
// parameters.OptimalBreaker and parameters.FirstFitBreaker.
// Unknown names select the optimal breaker.
func BreakerByName(name string) linebreak.Breaker {
	switch name {
	case parameters.FirstFitBreaker:
		return firstfit.BreakParagraph
	case parameters.OptimalBreaker:
	default:
		tracer().Errorf("unknown line breaker '%s', using %s", name, parameters.OptimalBreaker)
	}
	return optimal.BreakParagraph
}

// --- Diagnostics -----------------------------------------------------------

// traceSink dumps blocks to the layout tracer.
type traceSink struct{}

func (traceSink) BreakFault(b *Block, err *linebreak.InconsistencyError) {
	tracer().Errorf("line breaking failed: %s", err.Reason)
	tracer().Errorf("block = %s", b.String())
	for i, link := range err.Links {
		tracer().Infof("line break %d=>%d", i, link)
	}
}
