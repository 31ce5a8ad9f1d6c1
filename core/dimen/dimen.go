// Package dimen implements pixel dimensions and units.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Px is a dimension in device pixels.
// Display geometry, text widths and page widths are measured in Px.
type Px int32

// Zero is a zero dimension.
const Zero Px = 0

// Infinity is the largest possible dimension
const Infinity = Px(math.MaxInt32)

// DefaultDPI is the resolution assumed when converting physical units to pixels.
const DefaultDPI = 96.0

// Stringer implementation.
func (d Px) String() string {
	return fmt.Sprintf("%dpx", int32(d))
}

// Float returns d as a float64.
func (d Px) Float() float64 {
	return float64(d)
}

// Point is a point on a page.
type Point struct {
	X, Y Px
}

// Origin is origin
var Origin = Point{0, 0}

// Shift a point along a vector.
func (p *Point) Shift(vector Point) *Point {
	p.X += vector.X
	p.Y += vector.Y
	return p
}

// Rect is a rectangle (on a page).
type Rect struct {
	TopL, BotR Point
}

// Width returns the width of a rectangle, i.e. the difference between x-coordinates
// of bottom-right and top-left corner.
func (r Rect) Width() Px {
	return r.BotR.X - r.TopL.X
}

// Height returns the height of a rectangle, i.e. the difference between y-coordinates
// of bottom-right and top-left corner.
func (r Rect) Height() Px {
	return r.BotR.Y - r.TopL.Y
}

// Inset returns r shrunk by m on every side.
func (r Rect) Inset(m Px) Rect {
	return Rect{
		TopL: Point{r.TopL.X + m, r.TopL.Y + m},
		BotR: Point{r.BotR.X - m, r.BotR.Y - m},
	}
}

// ---------------------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]+(?:\.[0-9]+)?)(%|[a-zA-Z]{2})?$`)

// ParseDimen parses a string to return a dimension in pixels, given a resolution
// of dpi dots per inch. Syntax is CSS Unit; a missing unit means pixels.
// If dpi is not positive, DefaultDPI is used.
// If a percentage value is given (`80%`), the second return value will be true and the
// dimension holds the plain percentage number.
func ParseDimen(s string, dpi float64) (Px, bool, error) {
	d := dimenPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return 0, false, errors.New("format error parsing dimension")
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	n, err := strconv.ParseFloat(d[1], 64)
	if err != nil {
		return 0, false, errors.New("format error parsing dimension")
	}
	scale := 1.0
	ispcnt := false
	if len(d) > 2 {
		switch d[2] {
		case "px", "PX", "":
			scale = 1.0
		case "pt", "PT":
			scale = dpi / 72.27
		case "bp", "BP":
			scale = dpi / 72.0
		case "mm", "MM":
			scale = dpi / 25.4
		case "cm", "CM":
			scale = dpi / 2.54
		case "in", "IN":
			scale = dpi
		case "%":
			ispcnt = true
		default:
			return 0, false, errors.New("format error parsing dimension")
		}
	}
	return Px(math.Round(n * scale)), ispcnt, nil
}

// ---------------------------------------------------------------------------

// Min returns the smaller of two dimensions.
func Min(a, b Px) Px {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b Px) Px {
	if a > b {
		return a
	}
	return b
}
