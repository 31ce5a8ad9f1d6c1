/*
Package firstfit implements a greedy line breaker.

Every line is filled with as many words as fit into the page width before the
next line is started. This is what most word processors do. It does not look
ahead, and therefore may leave a very short line in the middle of a paragraph
where the optimal breaker would distribute slack more evenly.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package firstfit

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textblock/core/dimen"
	"github.com/npillmayer/textblock/core/parameters"
	"github.com/npillmayer/textblock/engine/linebreak"
)

// tracer traces with key 'textblock.linebreak'.
func tracer() tracing.Trace {
	return tracing.Select("textblock.linebreak")
}

// BreakParagraph breaks a paragraph greedily. A word wider than the page is set
// on a line of its own. Parameter P_MAXLINES of regs caps the number of lines.
// regs may be nil.
func BreakParagraph(widths []dimen.Px, pageWidth, spaceWidth dimen.Px,
	regs *parameters.TypesettingRegisters) (linebreak.Breakpoints, error) {
	//
	n := len(widths)
	if err := linebreak.CheckGeometry(n, pageWidth, spaceWidth); err != nil {
		return nil, err
	}
	links := make([]int, n)
	for i := range widths {
		links[i] = lineEnd(widths, i, pageWidth, spaceWidth)
	}
	breaks, err := linebreak.Reconstruct(links, linebreak.MaxLines(regs))
	if err != nil {
		return breaks, err
	}
	tracer().Debugf("first-fit: %d words broken into %d lines at %v", n, len(breaks), breaks)
	return breaks, nil
}

// lineEnd returns the index of the last word fitting on a line starting at word i.
func lineEnd(widths []dimen.Px, i int, pageWidth, spaceWidth dimen.Px) int {
	length := int64(widths[i])
	j := i
	for j+1 < len(widths) {
		length += int64(spaceWidth) + int64(widths[j+1])
		if length > int64(pageWidth) {
			break
		}
		j++
	}
	return j
}
