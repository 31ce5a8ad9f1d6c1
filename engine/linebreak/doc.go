/*
Package linebreak holds the common vocabulary of line breakers: breakpoints,
the cost model for ragged lines, and justification of broken lines.

A paragraph is a sequence of measured words. Breaking it into lines results in
a sequence of breakpoints, each the exclusive upper word index of one line.
Breakpoints are strictly increasing and the last one equals the number of words.

Breakers live in sub-packages:

	optimal   minimizes the sum of squared slack over all lines but the last
	firstfit  fills every line greedily

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package linebreak

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'textblock.linebreak'.
func tracer() tracing.Trace {
	return tracing.Select("textblock.linebreak")
}
