package linebreak

import (
	"github.com/npillmayer/textblock/core/dimen"
	"github.com/npillmayer/textblock/core/parameters"
)

// Justify positions the words of a broken paragraph. It returns the horizontal
// offset of every word, relative to the left edge of its line.
//
// Lines with at least P_MINJUSTIFYWORDS words are stretched so that the right edge of
// their last word meets pageWidth. The last line, and lines with fewer words, keep the
// nominal space between words. With P_JUSTIFY turned off, every line is ragged-right.
//
// Words beyond the last breakpoint (from a truncated sequence of breakpoints) are left
// at offset 0.
func Justify(widths []dimen.Px, breaks Breakpoints, pageWidth, spaceWidth dimen.Px,
	regs *parameters.TypesettingRegisters) []float64 {
	//
	regs = parameters.OrDefault(regs)
	justify := regs.B(parameters.P_JUSTIFY)
	minWords := regs.N(parameters.P_MINJUSTIFYWORDS)
	if minWords < 2 {
		minWords = 2 // a single word has no gap to stretch
	}
	xpos := make([]float64, len(widths))
	for l := range breaks {
		start, end := breaks.Line(l)
		if end > len(widths) || start >= end {
			tracer().Errorf("justify: line %d [%d,%d) outside of %d words", l, start, end, len(widths))
			break
		}
		isLast := l == len(breaks)-1
		spacing := LineSpacing(widths[start:end], isLast, pageWidth, spaceWidth, justify, minWords)
		stretched := justify && !isLast && end-start >= minWords
		slack := int64(pageWidth) - lineWidth(widths[start:end])
		var prefix int64
		for i := start; i < end; i++ {
			gap := int64(i - start)
			if stretched { // exact for the last word, which has to meet the right edge
				xpos[i] = float64(prefix) + float64(gap*slack)/float64(end-start-1)
			} else {
				xpos[i] = float64(prefix) + float64(gap)*spacing
			}
			prefix += int64(widths[i])
		}
	}
	return xpos
}

// LineSpacing returns the space to put between the words of a line.
func LineSpacing(line []dimen.Px, isLast bool, pageWidth, spaceWidth dimen.Px,
	justify bool, minWords int) float64 {
	//
	spacing := float64(spaceWidth)
	if !justify || isLast || len(line) < minWords {
		return spacing
	}
	return float64(int64(pageWidth)-lineWidth(line)) / float64(len(line)-1)
}

func lineWidth(line []dimen.Px) (total int64) {
	for _, w := range line {
		total += int64(w)
	}
	return
}
