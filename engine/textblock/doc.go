/*
Package textblock lays out blocks of words into justified lines.

A Block owns a sequence of styled words in reading order. Layout measures the
words with a text.Metrics provider, breaks them into lines and positions every
word on its line. Afterwards, single lines may be rendered to a text.Renderer at
a vertical position chosen by the client, which is responsible for line spacing
and pagination.

Layout of a block follows a fixed sequence of states:

	Empty → Measured → Broken → Positioned

Rendering is valid only for blocks in state Positioned. Appending words or a
failing layout pass invalidates the block until it is laid out again.

Blocks are not safe for concurrent use.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package textblock

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'textblock.layout'.
func tracer() tracing.Trace {
	return tracing.Select("textblock.layout")
}
