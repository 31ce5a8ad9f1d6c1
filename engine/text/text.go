/*
Package text defines the collaborators of the line breaking engine: providers
of text metrics and renderers which put words onto a display.

The engine itself never looks inside a word. It asks a Metrics provider for
the width of a word in a given style, and hands positioned words to a Renderer.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package text

import (
	"strings"

	"github.com/npillmayer/textblock/core/dimen"
)

// Style is a set of style flags for a run of text.
type Style uint8

// Style flags.
const (
	Bold Style = 1 << iota
	Italic
)

// Regular is the plain style without any flags set.
const Regular Style = 0

// StyleOf creates a style from bold and italic flags.
func StyleOf(bold, italic bool) Style {
	s := Regular
	if bold {
		s |= Bold
	}
	if italic {
		s |= Italic
	}
	return s
}

// IsBold is true for bold styles.
func (s Style) IsBold() bool {
	return s&Bold != 0
}

// IsItalic is true for italic styles.
func (s Style) IsItalic() bool {
	return s&Italic != 0
}

func (s Style) String() string {
	if s == Regular {
		return "regular"
	}
	var parts []string
	if s.IsBold() {
		parts = append(parts, "bold")
	}
	if s.IsItalic() {
		parts = append(parts, "italic")
	}
	return strings.Join(parts, "+")
}

// Metrics measures text for a display.
//
// Widths are non-negative pixel values. PageWidth is positive and has to stay
// constant during one layout pass.
type Metrics interface {
	MeasureText(s string, style Style) dimen.Px
	PageWidth() dimen.Px
	SpaceWidth() dimen.Px
}

// A Renderer draws text. Drawing is fire-and-forget.
type Renderer interface {
	DrawText(x, y dimen.Px, s string, style Style)
}

// Provider is a display which is able to measure and draw text.
type Provider interface {
	Metrics
	Renderer
}
