/*
Package html reads HTML documents into text blocks.

Block-level elements (paragraphs, headings, list items, …) start a new block.
Inline elements switch the style of the words they contain: b, strong and the
headings set bold, i, em and cite set italic. Text inside script, style and the
document head is skipped.

Every run of text with a single style is normalized to NFC and split into words
at white space. Punctuation stays attached to the word it follows or precedes.
Words never span a style change: "<b>bold</b>face" results in two words.
Blocks without words are dropped.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package html

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'textblock.input'.
func tracer() tracing.Trace {
	return tracing.Select("textblock.input")
}
