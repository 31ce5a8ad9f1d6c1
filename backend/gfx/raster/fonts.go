package raster

import (
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/textblock/core"
	"github.com/npillmayer/textblock/engine/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// ScalableFont is an OpenType font which has not yet been scaled to a size.
type ScalableFont struct {
	Fontname string
	Filepath string // empty for built-in fonts
	Binary   []byte
	SFNT     *opentype.Font
}

// LoadOpenTypeFont loads a font from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses the binary data of an OpenType or TrueType font.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = opentype.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// Face scales the font to a size in points for a given resolution.
// Font sizes outside of 5pt…500pt are set to 10pt.
func (sf *ScalableFont) Face(size, dpi float64) (font.Face, error) {
	if size < 5.0 || size > 500.0 {
		tracer().Errorf("font size must be 5pt < size < 500pt, is %g (set to 10pt)", size)
		size = 10.0
	}
	if dpi <= 0 {
		dpi = 72
	}
	f, err := opentype.NewFace(sf.SFNT, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot scale font %s", sf.Fontname)
	}
	return f, nil
}

// Faces holds a font face for every text style.
type Faces struct {
	Regular    font.Face
	Bold       font.Face
	Italic     font.Face
	BoldItalic font.Face
}

// Face returns the face for a style. Missing faces fall back to a less specific
// style, finally to the regular face.
func (fs Faces) Face(style text.Style) font.Face {
	switch {
	case style.IsBold() && style.IsItalic() && fs.BoldItalic != nil:
		return fs.BoldItalic
	case style.IsBold() && fs.Bold != nil:
		return fs.Bold
	case style.IsItalic() && fs.Italic != nil:
		return fs.Italic
	}
	return fs.Regular
}

// --- Go fonts --------------------------------------------------------------

var goFontsLoading sync.Once
var goFonts [4]*ScalableFont
var goFontsErr error

// GoFonts returns the Go font family (regular, bold, italic, bold-italic). It is
// always present.
func GoFonts() ([4]*ScalableFont, error) {
	goFontsLoading.Do(func() {
		for i, ttf := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF} {
			if goFonts[i], goFontsErr = ParseOpenTypeFont(ttf); goFontsErr != nil {
				return
			}
			goFonts[i].Filepath = ""
		}
	})
	return goFonts, goFontsErr
}

// GoFaces returns the faces of the Go font family at a given size.
func GoFaces(size, dpi float64) (Faces, error) {
	fonts, err := GoFonts()
	if err != nil {
		return Faces{}, err
	}
	var faces [4]font.Face
	for i, f := range fonts {
		if faces[i], err = f.Face(size, dpi); err != nil {
			return Faces{}, err
		}
	}
	return Faces{Regular: faces[0], Bold: faces[1], Italic: faces[2], BoldItalic: faces[3]}, nil
}

// --- System fonts ----------------------------------------------------------

// FindFaces locates a font family installed on the system. name is the file name
// of the regular variant, without extension (e.g., "DejaVuSans"). The other styles
// are searched as "<name>-Bold", "<name>-Oblique" etc.; styles which cannot be
// found use the regular face.
//
// If the regular variant cannot be found, an error with code core.EMISSING is returned.
func FindFaces(name string, size, dpi float64) (Faces, error) {
	regular, err := findFace(name, size, dpi)
	if err != nil {
		return Faces{}, err
	}
	faces := Faces{Regular: regular}
	faces.Bold = findVariant(name, size, dpi, "Bold")
	faces.Italic = findVariant(name, size, dpi, "Italic", "Oblique")
	faces.BoldItalic = findVariant(name, size, dpi, "BoldItalic", "BoldOblique")
	return faces, nil
}

func findVariant(name string, size, dpi float64, suffixes ...string) font.Face {
	base := strings.TrimSuffix(strings.TrimSuffix(name, "-Regular"), "Regular")
	for _, suffix := range suffixes {
		if face, err := findFace(base+"-"+suffix, size, dpi); err == nil {
			return face
		}
	}
	tracer().Debugf("no variant %v of font %s", suffixes, name)
	return nil
}

func findFace(name string, size, dpi float64) (font.Face, error) {
	fpath, err := findfont.Find(name)
	if err != nil || fpath == "" {
		return nil, core.Error(core.EMISSING, "font not found: %s", name)
	}
	tracer().Debugf("%s is a system font at %s", name, fpath)
	f, err := LoadOpenTypeFont(fpath)
	if err != nil {
		return nil, err
	}
	return f.Face(size, dpi)
}
