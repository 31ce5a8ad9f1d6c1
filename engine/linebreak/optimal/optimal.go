/*
Package optimal breaks paragraphs into lines with minimal raggedness.

The cost of a paragraph is the sum of the squared slack of every line except the
last one. Squaring penalizes a single very short line more than several slightly
short ones, biasing the result towards evenly filled lines. The last line of a
paragraph may be as short as it likes.

The optimum is found by dynamic programming from the last word backwards. For every
word i the best cost of a paragraph starting at i is

	best(i) = min over j ≥ i of  cost(i, j) + best(j+1)

where line [i, j] must fit into the page width, except if it consists of the single
word i. Costs are held in tables sized to the number of words; the computation is
iterative, so stack usage does not depend on paragraph length.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package optimal

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textblock/core/dimen"
	"github.com/npillmayer/textblock/core/parameters"
	"github.com/npillmayer/textblock/engine/linebreak"
)

// tracer traces with key 'textblock.linebreak'.
func tracer() tracing.Trace {
	return tracing.Select("textblock.linebreak")
}

// BreakParagraph finds the breakpoints of a paragraph with words of the given widths,
// which minimize the sum of squared slack. Parameter P_MAXLINES of regs caps the number
// of lines. regs may be nil.
//
// If the breaker detects an internal inconsistency, it returns the breakpoints produced
// so far together with a *linebreak.InconsistencyError.
// Precondition violations (no words, page width not positive) result in an error
// with code core.EINVALID and no breakpoints.
func BreakParagraph(widths []dimen.Px, pageWidth, spaceWidth dimen.Px,
	regs *parameters.TypesettingRegisters) (linebreak.Breakpoints, error) {
	//
	n := len(widths)
	if err := linebreak.CheckGeometry(n, pageWidth, spaceWidth); err != nil {
		return nil, err
	}
	links := FindLinks(widths, pageWidth, spaceWidth)
	breaks, err := linebreak.Reconstruct(links, linebreak.MaxLines(regs))
	if err != nil {
		return breaks, err
	}
	tracer().Debugf("optimal: %d words broken into %d lines at %v", n, len(breaks), breaks)
	return breaks, nil
}

// FindLinks computes, for every word i, the index of the last word of the best line
// starting at i. It holds that i ≤ links[i] < len(widths).
func FindLinks(widths []dimen.Px, pageWidth, spaceWidth dimen.Px) []int {
	n := len(widths)
	if n == 0 {
		return []int{}
	}
	cost := make([]int64, n)
	links := make([]int, n)
	cost[n-1] = 0 // a single word on the last line costs nothing
	links[n-1] = n - 1
	page := int64(pageWidth)
	space := int64(spaceWidth)
	for i := n - 2; i >= 0; i-- {
		cost[i] = math.MaxInt64
		links[i] = i
		length := -space
		for j := i; j < n; j++ {
			length += int64(widths[j]) + space
			if length > page && j > i {
				break // an overfull line is admissible only for a single word
			}
			var c int64
			if j < n-1 {
				slack := page - length
				c = slack*slack + cost[j+1]
			}
			if c < cost[i] {
				cost[i] = c
				links[i] = j
			}
			if length > page {
				break
			}
		}
	}
	return links
}
