/*
Package raster renders text blocks into RGBA images using OpenType fonts.

A Canvas measures text with font faces from golang.org/x/image and draws words
with a font.Drawer. The Go fonts are always available; system fonts are located
by name with go-findfont. Canvases may be written out as PNG files.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package raster

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'textblock.gfx'.
func tracer() tracing.Trace {
	return tracing.Select("textblock.gfx")
}
