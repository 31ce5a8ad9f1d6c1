package linebreak

import (
	"fmt"
	"strings"

	"github.com/npillmayer/textblock/core"
	"github.com/npillmayer/textblock/core/dimen"
	"github.com/npillmayer/textblock/core/parameters"
)

// Breakpoints is a sequence of line ends. Line k spans the words
// [Breakpoints[k-1], Breakpoints[k]), with an implicit start of 0 for the first line.
type Breakpoints []int

// Breaker is the signature of line breaking algorithms.
type Breaker func(widths []dimen.Px, pageWidth, spaceWidth dimen.Px,
	regs *parameters.TypesettingRegisters) (Breakpoints, error)

// LineCount returns the number of lines.
func (bp Breakpoints) LineCount() int {
	return len(bp)
}

// Line returns the word range [start, end) of line l.
func (bp Breakpoints) Line(l int) (start, end int) {
	if l > 0 {
		start = bp[l-1]
	}
	return start, bp[l]
}

// Validate checks that bp is a partition of n words: strictly increasing,
// starting above 0 and ending at n.
func (bp Breakpoints) Validate(n int) error {
	if n == 0 && len(bp) == 0 {
		return nil
	}
	if len(bp) == 0 {
		return core.Error(core.EINVALID, "no breakpoints for %d words", n)
	}
	prev := 0
	for i, b := range bp {
		if b <= prev {
			return core.Error(core.EINVALID, "breakpoint #%d=%d does not advance beyond %d", i, b, prev)
		}
		prev = b
	}
	if prev != n {
		return core.Error(core.EINVALID, "last breakpoint is %d, should be %d", prev, n)
	}
	return nil
}

func (bp Breakpoints) String() string {
	s := make([]string, len(bp))
	for i, b := range bp {
		s[i] = fmt.Sprintf("%d", b)
	}
	return "[" + strings.Join(s, " ") + "]"
}

// --- Cost model ------------------------------------------------------------

// CheckGeometry validates the preconditions common to all breakers.
func CheckGeometry(n int, pageWidth, spaceWidth dimen.Px) error {
	if n == 0 {
		return core.Error(core.EINVALID, "cannot break a paragraph without words")
	}
	if pageWidth <= 0 {
		return core.Error(core.EINVALID, "page width must be positive, is %d", pageWidth)
	}
	if spaceWidth < 0 {
		return core.Error(core.EINVALID, "space width must not be negative, is %d", spaceWidth)
	}
	return nil
}

// LineLength returns the natural length of a line holding words [start, end),
// i.e. the sum of the word widths plus nominal space between them.
func LineLength(widths []dimen.Px, start, end int, spaceWidth dimen.Px) int64 {
	if end <= start {
		return 0
	}
	var l int64
	for _, w := range widths[start:end] {
		l += int64(w)
	}
	return l + int64(end-start-1)*int64(spaceWidth)
}

// Slack is the unused width of a line of length l. It is negative for overfull lines.
func Slack(l int64, pageWidth dimen.Px) int64 {
	return int64(pageWidth) - l
}

// Demerits returns the cost of a paragraph broken at bp: the sum of squared slack
// of every line except the last one.
func Demerits(widths []dimen.Px, bp Breakpoints, pageWidth, spaceWidth dimen.Px) int64 {
	var cost int64
	for l := 0; l < len(bp)-1; l++ {
		start, end := bp.Line(l)
		s := Slack(LineLength(widths, start, end, spaceWidth), pageWidth)
		cost += s * s
	}
	return cost
}

// MaxLines returns the configured cap on lines per paragraph.
func MaxLines(regs *parameters.TypesettingRegisters) int {
	max := parameters.OrDefault(regs).N(parameters.P_MAXLINES)
	if max <= 0 {
		max = 1
	}
	return max
}

// --- Reconstruction --------------------------------------------------------

// Reconstruct follows end-of-line links from the first word. links[i] is the index of
// the last word of the line starting at word i. Every link has to advance and stay
// within the paragraph, and no more than maxLines lines will be produced.
//
// If the links violate these conditions, Reconstruct stops and returns the breakpoints
// produced so far, together with an *InconsistencyError.
func Reconstruct(links []int, maxLines int) (Breakpoints, error) {
	n := len(links)
	breaks := make(Breakpoints, 0, 16)
	i := 0
	for i < n {
		next := links[i] + 1
		if next <= i || next > n {
			return breaks, inconsistency(fmt.Sprintf("line starting at word %d ends at %d, out of range", i, next),
				links, breaks)
		}
		if len(breaks) == maxLines {
			return breaks, inconsistency(fmt.Sprintf("too many line breaks, cap is %d", maxLines),
				links, breaks)
		}
		breaks = append(breaks, next)
		i = next
	}
	return breaks, nil
}

// --- Errors ----------------------------------------------------------------

// InconsistencyError is an internal fault of a breaker. It carries the per-word links
// chosen by the breaker and the breakpoints which were validly produced.
type InconsistencyError struct {
	Reason string
	Links  []int
	Breaks Breakpoints
}

func inconsistency(reason string, links []int, breaks Breakpoints) *InconsistencyError {
	tracer().Errorf("line breaking: %s", reason)
	return &InconsistencyError{
		Reason: reason,
		Links:  links,
		Breaks: breaks,
	}
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("[%d] line breaking inconsistency: %s", core.EINTERNAL, e.Reason)
}

// ErrorCode is part of interface core.AppError.
func (e *InconsistencyError) ErrorCode() int {
	return core.EINTERNAL
}

// UserMessage is part of interface core.AppError.
func (e *InconsistencyError) UserMessage() string {
	return e.Reason
}

var _ core.AppError = &InconsistencyError{}
