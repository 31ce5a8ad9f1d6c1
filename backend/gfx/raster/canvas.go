package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/npillmayer/textblock/core"
	"github.com/npillmayer/textblock/core/dimen"
	"github.com/npillmayer/textblock/core/parameters"
	"github.com/npillmayer/textblock/engine/text"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Canvas is a page of a fixed width, rendering text with font faces into an
// RGBA image. Text positions are relative to the inner edge of a page margin.
type Canvas struct {
	img        *image.RGBA
	faces      Faces
	width      int
	margin     dimen.Px
	space      dimen.Px
	ascent     dimen.Px
	lineHeight dimen.Px
	Foreground color.Color
	Background color.Color
}

var _ text.Provider = &Canvas{}

// NewCanvas creates a canvas of width × height pixels. The margin is taken from
// parameter P_PAGEMARGIN of regs, which may be nil. faces.Regular must be set.
func NewCanvas(width, height int, faces Faces, regs *parameters.TypesettingRegisters) (*Canvas, error) {
	if faces.Regular == nil {
		return nil, core.Error(core.EMISSING, "canvas needs a regular font face")
	}
	regs = parameters.OrDefault(regs)
	c := &Canvas{
		faces:      faces,
		width:      width,
		margin:     regs.D(parameters.P_PAGEMARGIN),
		Foreground: color.Black,
		Background: color.White,
	}
	if c.PageWidth() <= 0 {
		return nil, core.Error(core.EINVALID, "canvas width %d leaves no room inside margins of %s",
			width, c.margin)
	}
	m := faces.Regular.Metrics()
	c.ascent = dimen.Px(m.Ascent.Ceil())
	c.lineHeight = dimen.Px(m.Height.Ceil())
	c.space = dimen.Px(font.MeasureString(faces.Regular, " ").Round())
	c.Resize(height)
	return c, nil
}

// Resize sets the height of the canvas, erasing its content.
func (c *Canvas) Resize(height int) {
	if height < 0 {
		height = 0
	}
	c.img = image.NewRGBA(image.Rect(0, 0, c.width, height))
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.Background), image.Point{}, draw.Src)
}

// Image returns the image the canvas draws into.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Margin returns the page margin.
func (c *Canvas) Margin() dimen.Px {
	return c.margin
}

// LineHeight returns the recommended distance between baselines for the regular face.
func (c *Canvas) LineHeight() dimen.Px {
	return c.lineHeight
}

// MeasureText is part of interface text.Metrics. Widths are rounded up to
// full pixels.
func (c *Canvas) MeasureText(s string, style text.Style) dimen.Px {
	adv := font.MeasureString(c.faces.Face(style), s)
	return dimen.Px(adv.Ceil())
}

// PageWidth is part of interface text.Metrics. It is the width of the canvas
// minus the left and right margin.
func (c *Canvas) PageWidth() dimen.Px {
	return dimen.Px(c.width) - 2*c.margin
}

// SpaceWidth is part of interface text.Metrics.
func (c *Canvas) SpaceWidth() dimen.Px {
	return c.space
}

// DrawText is part of interface text.Renderer. y is the top of the line;
// text is set on the baseline y + ascent.
func (c *Canvas) DrawText(x, y dimen.Px, s string, style text.Style) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(c.Foreground),
		Face: c.faces.Face(style),
		Dot:  fixed.P(int(c.margin+x), int(c.margin+y+c.ascent)),
	}
	tracer().Debugf("draw '%s' at (%d,%d)", s, x, y)
	d.DrawString(s)
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot encode PNG")
	}
	return nil
}
