package textblock

import (
	"fmt"
	"math"

	"github.com/npillmayer/textblock/core"
	"github.com/npillmayer/textblock/core/dimen"
	"github.com/npillmayer/textblock/engine/text"
)

// Word is a styled run of text without spaces, the unit of line breaking.
//
// The text of a word never changes. If a word's text is a substring of a larger
// document string, it shares the document's memory instead of copying it; the
// document buffer stays alive at least as long as any of its words.
type Word struct {
	text  string
	style text.Style
	width dimen.Px // measured width, zero until measured
	xpos  float64  // offset from the start of the line, valid after layout
}

// NewWord creates a word with a given style.
func NewWord(s string, style text.Style) *Word {
	return &Word{text: s, style: style}
}

// WordFromBytes creates a word from length bytes of src, starting at start.
// The bytes are copied, so src may be reused by the caller.
func WordFromBytes(src []byte, start, length int, style text.Style) (*Word, error) {
	if start < 0 || length < 0 || start+length > len(src) {
		return nil, core.Error(core.EINVALID, "word [%d:%d] outside of source with %d bytes",
			start, start+length, len(src))
	}
	return &Word{text: string(src[start : start+length]), style: style}, nil
}

// Text returns the text of the word.
func (w *Word) Text() string {
	return w.text
}

// Style returns the style of the word.
func (w *Word) Style() text.Style {
	return w.style
}

// Width returns the measured width of the word. It is zero for words which
// have not been measured yet.
func (w *Word) Width() dimen.Px {
	return w.width
}

// XPos returns the horizontal offset of the word within its line.
func (w *Word) XPos() float64 {
	return w.xpos
}

// Measure sets the width of the word from a metrics provider.
func (w *Word) Measure(m text.Metrics) {
	w.width = m.MeasureText(w.text, w.style)
}

// Render draws the word at its horizontal offset and vertical position y.
func (w *Word) Render(r text.Renderer, y dimen.Px) {
	r.DrawText(dimen.Px(math.Floor(w.xpos)), y, w.text, w.style)
}

func (w *Word) String() string {
	return fmt.Sprintf("##%d#%s##", w.width, w.text)
}
