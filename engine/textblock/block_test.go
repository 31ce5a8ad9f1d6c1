package textblock

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textblock/core"
	"github.com/npillmayer/textblock/core/dimen"
	"github.com/npillmayer/textblock/core/parameters"
	"github.com/npillmayer/textblock/engine/linebreak"
	"github.com/npillmayer/textblock/engine/linebreak/firstfit"
	"github.com/npillmayer/textblock/engine/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordFromBytes(t *testing.T) {
	src := []byte("Hello World")
	w, err := WordFromBytes(src, 6, 5, text.Bold)
	require.NoError(t, err)
	src[6] = 'X'
	assert.Equal(t, "World", w.Text(), "word must own a copy of its text")
	assert.Equal(t, text.Bold, w.Style())
	_, err = WordFromBytes(src, 8, 5, text.Regular)
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = WordFromBytes(src, -1, 2, text.Regular)
	assert.Equal(t, core.EINVALID, core.Code(err))
	w, err = WordFromBytes(src, 0, 0, text.Regular)
	require.NoError(t, err)
	assert.Equal(t, "", w.Text())
}

func TestWordMeasureAndRender(t *testing.T) {
	d := newFakeDisplay(100, 10)
	w := NewWord("abc", text.Italic)
	assert.Equal(t, dimen.Px(0), w.Width())
	w.Measure(d)
	w.Measure(d)
	assert.Equal(t, dimen.Px(30), w.Width())
	w.xpos = 12.7
	w.Render(d, 40)
	require.Len(t, d.calls, 1)
	assert.Equal(t, drawCall{x: 12, y: 40, s: "abc", style: text.Italic}, d.calls[0])
	assert.Equal(t, "##30#abc##", w.String())
}

func TestLayoutFourWords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textblock.layout")
	defer teardown()
	//
	d := newFakeDisplay(160, 10)
	b := blockOf(nil, "aaaaa", "bbbbb", "ccccc", "ddddd")
	require.NoError(t, b.Layout(d))
	assert.Equal(t, Positioned, b.State())
	assert.Equal(t, linebreak.Breakpoints{2, 4}, b.Breaks())
	assert.Equal(t, 2, b.LineCount())
	assert.InDelta(t, 60.0, b.Words()[1].XPos(), 1e-9) // two words keep nominal spacing
	//
	require.NoError(t, b.RenderLine(d, 1, 20))
	assert.Equal(t, []drawCall{
		{x: 0, y: 20, s: "ccccc"},
		{x: 60, y: 20, s: "ddddd"},
	}, d.calls)
}

func TestLayoutJustifiesLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textblock.layout")
	defer teardown()
	//
	d := newFakeDisplay(100, 10)
	b := blockOf(nil, "aa", "bb", "cc", "dddddddd")
	require.NoError(t, b.Layout(d))
	assert.Equal(t, linebreak.Breakpoints{3, 4}, b.Breaks())
	words, err := b.LineWords(0)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, words[1].XPos(), 1e-9)
	last := words[len(words)-1]
	assert.InDelta(t, 100.0, last.XPos()+float64(last.Width()), 1e-9)
	words, err = b.LineWords(1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, words[0].XPos(), 1e-9)
}

func TestLayoutSingleOverlongWord(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textblock.layout")
	defer teardown()
	//
	d := newFakeDisplay(100, 10)
	b := blockOf(nil, strings.Repeat("x", 50))
	require.NoError(t, b.Layout(d))
	assert.Equal(t, linebreak.Breakpoints{1}, b.Breaks())
	assert.Equal(t, dimen.Px(500), b.Words()[0].Width())
	require.NoError(t, b.RenderLine(d, 0, 0))
	assert.Len(t, d.calls, 1)
}

func TestLayoutEmptyBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textblock.layout")
	defer teardown()
	//
	b := NewBlock(nil)
	assert.True(t, b.IsEmpty())
	require.NoError(t, b.Layout(newFakeDisplay(100, 10)))
	assert.Equal(t, 0, b.LineCount())
	assert.Equal(t, core.EINVALID, core.Code(b.RenderLine(newFakeDisplay(100, 10), 0, 0)))
}

func TestLayoutInvalidGeometry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textblock.layout")
	defer teardown()
	//
	b := blockOf(nil, "a", "b")
	require.NoError(t, b.Layout(newFakeDisplay(100, 10)))
	err := b.Layout(newFakeDisplay(0, 10))
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Equal(t, Empty, b.State())
	assert.Empty(t, b.Breaks(), "stale breaks must not survive a failing layout")
	assert.Equal(t, 0, b.LineCount())
}

func TestRenderRequiresLayout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textblock.layout")
	defer teardown()
	//
	d := newFakeDisplay(100, 10)
	b := blockOf(nil, "a", "b")
	assert.Equal(t, core.EINVALID, core.Code(b.RenderLine(d, 0, 0)))
	require.NoError(t, b.Layout(d))
	assert.NoError(t, b.RenderLine(d, 0, 0))
	assert.Equal(t, core.EINVALID, core.Code(b.RenderLine(d, 1, 0)))
	assert.Equal(t, core.EINVALID, core.Code(b.RenderLine(d, -1, 0)))
	b.Append("c", text.Regular)
	assert.Equal(t, Empty, b.State())
	assert.Equal(t, core.EINVALID, core.Code(b.RenderLine(d, 0, 0)))
}

func TestRelayoutOnWidthChange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textblock.layout")
	defer teardown()
	//
	b := blockOf(nil, "aaa", "bb", "cc", "ddddd")
	require.NoError(t, b.Layout(newFakeDisplay(60, 10)))
	assert.Equal(t, linebreak.Breakpoints{1, 3, 4}, b.Breaks())
	require.NoError(t, b.Layout(newFakeDisplay(1000, 10)))
	assert.Equal(t, linebreak.Breakpoints{4}, b.Breaks())
	assert.InDelta(t, 40.0, b.Words()[1].XPos(), 1e-9)
}

func TestFirstFitBreaker(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textblock.layout")
	defer teardown()
	//
	regs := parameters.NewTypesettingRegisters()
	regs.Push(parameters.P_LINEBREAKER, parameters.FirstFitBreaker)
	b := blockOf(regs, "aaa", "bb", "cc", "ddddd")
	require.NoError(t, b.Layout(newFakeDisplay(60, 10)))
	assert.Equal(t, linebreak.Breakpoints{2, 3, 4}, b.Breaks())
	//
	b = NewBlock(nil, WithBreaker(firstfit.BreakParagraph))
	for _, s := range []string{"aaa", "bb", "cc", "ddddd"} {
		b.Append(s, text.Regular)
	}
	require.NoError(t, b.Layout(newFakeDisplay(60, 10)))
	assert.Equal(t, linebreak.Breakpoints{2, 3, 4}, b.Breaks())
}

func TestLineCapWithDiagnostics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textblock.layout")
	defer teardown()
	//
	sink := &recordingSink{}
	b := NewBlock(nil, WithDiagnostics(sink))
	for i := 0; i < 1001; i++ {
		b.Append("", text.Regular) // zero width, but space does not fit the page
	}
	d := newFakeDisplay(5, 10)
	err := b.Layout(d)
	require.Error(t, err)
	assert.Equal(t, core.EINTERNAL, core.Code(err))
	assert.Equal(t, 1000, b.LineCount())
	assert.Equal(t, Positioned, b.State(), "partial result must stay renderable")
	require.Len(t, sink.faults, 1)
	assert.Len(t, sink.faults[0].Links, 1001)
	assert.NoError(t, b.RenderLine(d, 999, 0))
}

func TestInconsistentBreaker(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textblock.layout")
	defer teardown()
	//
	broken := func(widths []dimen.Px, page, space dimen.Px,
		regs *parameters.TypesettingRegisters) (linebreak.Breakpoints, error) {
		links := []int{1, 1, 9, 3}
		return linebreak.Reconstruct(links, 100)
	}
	sink := &recordingSink{}
	b := NewBlock(nil, WithBreaker(broken), WithDiagnostics(sink))
	for _, s := range []string{"aa", "bb", "cc", "dd"} {
		b.Append(s, text.Regular)
	}
	d := newFakeDisplay(100, 10)
	err := b.Layout(d)
	assert.Equal(t, core.EINTERNAL, core.Code(err))
	assert.Equal(t, linebreak.Breakpoints{2}, b.Breaks())
	assert.Len(t, sink.faults, 1)
	require.NoError(t, b.RenderLine(d, 0, 0))
	assert.Len(t, d.calls, 2)
}

func TestLayoutProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textblock.layout")
	defer teardown()
	//
	rnd := rand.New(rand.NewSource(3))
	for round := 0; round < 200; round++ {
		n := 1 + rnd.Intn(120)
		words := make([]string, n)
		for i := range words {
			words[i] = strings.Repeat("m", 1+rnd.Intn(12))
		}
		d := newFakeDisplay(dimen.Px(80+rnd.Intn(400)), dimen.Px(rnd.Intn(12)))
		b := blockOf(nil, words...)
		require.NoError(t, b.Layout(d))
		breaks := b.Breaks()
		require.NoError(t, breaks.Validate(n))
		covered := 0
		for l := 0; l < b.LineCount(); l++ {
			lw, err := b.LineWords(l)
			require.NoError(t, err)
			covered += len(lw)
			for i := 1; i < len(lw); i++ {
				assert.GreaterOrEqual(t, lw[i].XPos(), lw[i-1].XPos())
			}
			last := lw[len(lw)-1]
			right := last.XPos() + float64(last.Width())
			if l < b.LineCount()-1 && len(lw) > 2 {
				assert.InDelta(t, float64(d.page), right, 1e-6, "round %d line %d", round, l)
			} else if len(lw) > 1 {
				assert.LessOrEqual(t, right, float64(d.page)+1e-6)
			}
		}
		assert.Equal(t, n, covered, "every word must be set on exactly one line")
		//
		xpos := make([]float64, n)
		for i, w := range b.Words() {
			xpos[i] = w.XPos()
		}
		require.NoError(t, b.Layout(d))
		assert.Equal(t, breaks, b.Breaks(), "layout must be idempotent")
		for i, w := range b.Words() {
			assert.Equal(t, xpos[i], w.XPos())
		}
	}
}

// --- Helpers ---------------------------------------------------------------

func blockOf(regs *parameters.TypesettingRegisters, words ...string) *Block {
	b := NewBlock(regs)
	for _, s := range words {
		b.Append(s, text.Regular)
	}
	return b
}

type drawCall struct {
	x, y  dimen.Px
	s     string
	style text.Style
}

// fakeDisplay measures every byte as 10px and records draw calls.
type fakeDisplay struct {
	page, space dimen.Px
	calls       []drawCall
}

func newFakeDisplay(page, space dimen.Px) *fakeDisplay {
	return &fakeDisplay{page: page, space: space}
}

func (d *fakeDisplay) MeasureText(s string, style text.Style) dimen.Px {
	return dimen.Px(10 * len(s))
}

func (d *fakeDisplay) PageWidth() dimen.Px  { return d.page }
func (d *fakeDisplay) SpaceWidth() dimen.Px { return d.space }

func (d *fakeDisplay) DrawText(x, y dimen.Px, s string, style text.Style) {
	d.calls = append(d.calls, drawCall{x: x, y: y, s: s, style: style})
}

var _ text.Provider = &fakeDisplay{}

type recordingSink struct {
	faults []*linebreak.InconsistencyError
}

func (s *recordingSink) BreakFault(b *Block, err *linebreak.InconsistencyError) {
	s.faults = append(s.faults, err)
}

func (s *recordingSink) String() string {
	return fmt.Sprintf("%d faults", len(s.faults))
}
