/*
Package monospace implements text metrics and a character grid for monospace output.

Every grapheme occupies one or two cells of width em, depending on its East Asian
width class (UAX#11). Bold and italic styles do not change the width of text.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package monospace

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'textblock.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("textblock.glyphs")
}
