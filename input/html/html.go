package html

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/textblock/core"
	"github.com/npillmayer/textblock/core/parameters"
	"github.com/npillmayer/textblock/engine/text"
	"github.com/npillmayer/textblock/engine/textblock"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax29"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Selectors classifying elements.
var (
	blockElements = cascadia.MustCompile(
		"p, h1, h2, h3, h4, h5, h6, li, dt, dd, blockquote, div, pre, section, article, header, footer, figcaption, td, th")
	boldElements   = cascadia.MustCompile("b, strong, h1, h2, h3, h4, h5, h6, th")
	italicElements = cascadia.MustCompile("i, em, cite, var, dfn")
	skipElements   = cascadia.MustCompile("head, script, style, template, noscript")
	breakElements  = cascadia.MustCompile("br, hr")
)

// Parse reads an HTML document and returns its text blocks in document order.
// All blocks share the typesetting registers regs, which may be nil, and are
// created with options opts.
func Parse(r io.Reader, regs *parameters.TypesettingRegisters, opts ...textblock.Option) ([]*textblock.Block, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse HTML input")
	}
	return Blocks(root, regs, opts...), nil
}

// ParseString is a convenience variant of Parse for documents held in a string.
func ParseString(doc string, regs *parameters.TypesettingRegisters, opts ...textblock.Option) ([]*textblock.Block, error) {
	return Parse(strings.NewReader(doc), regs, opts...)
}

// Blocks collects the text blocks of an HTML document tree.
func Blocks(root *html.Node, regs *parameters.TypesettingRegisters, opts ...textblock.Option) []*textblock.Block {
	c := newCollector(regs, opts)
	c.walk(root, text.Regular)
	c.flush()
	tracer().Infof("HTML input: %d blocks", len(c.blocks))
	return c.blocks
}

type collector struct {
	regs   *parameters.TypesettingRegisters
	opts   []textblock.Option
	blocks []*textblock.Block
	block  *textblock.Block
	run    strings.Builder // text of the current style run
	style  text.Style      // style of the current run
	words  *segment.Segmenter
}

func newCollector(regs *parameters.TypesettingRegisters, opts []textblock.Option) *collector {
	words := segment.NewSegmenter(uax29.NewWordBreaker(1))
	words.BreakOnZero(true, false)
	return &collector{
		regs:  regs,
		opts:  opts,
		words: words,
	}
}

func (c *collector) walk(n *html.Node, style text.Style) {
	switch n.Type {
	case html.TextNode:
		c.text(n.Data, style)
		return
	case html.ElementNode:
		if skipElements.Match(n) {
			return
		}
		if breakElements.Match(n) {
			c.text(" ", style)
			return
		}
		if boldElements.Match(n) {
			style |= text.Bold
		}
		if italicElements.Match(n) {
			style |= text.Italic
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}
	isBlock := n.Type == html.ElementNode && blockElements.Match(n)
	if isBlock {
		c.flush()
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.walk(ch, style)
	}
	if isBlock {
		c.flush()
	}
}

func (c *collector) text(s string, style text.Style) {
	if style != c.style {
		c.endRun()
		c.style = style
	}
	c.run.WriteString(s)
}

// endRun splits the current style run into words and appends them to the
// current block.
func (c *collector) endRun() {
	if c.run.Len() == 0 {
		return
	}
	s := c.run.String()
	c.run.Reset()
	for _, w := range SplitWords(s, c.words) {
		if c.block == nil {
			c.block = textblock.NewBlock(c.regs, c.opts...)
		}
		c.block.Append(w, c.style)
	}
}

// flush closes the current block. Blocks without words are dropped.
func (c *collector) flush() {
	c.endRun()
	if c.block != nil && !c.block.IsEmpty() {
		tracer().Debugf("block #%d with %d words", len(c.blocks), len(c.block.Words()))
		c.blocks = append(c.blocks, c.block)
	}
	c.block = nil
}

// SplitWords normalizes s to NFC and splits it into words at white space,
// keeping punctuation attached to adjacent words. seg is a segmenter for UAX#29
// word boundaries; if it is nil, a new one is created.
func SplitWords(s string, seg *segment.Segmenter) []string {
	if seg == nil {
		seg = segment.NewSegmenter(uax29.NewWordBreaker(1))
		seg.BreakOnZero(true, false)
	}
	seg.Init(bufio.NewReader(norm.NFC.Reader(strings.NewReader(s))))
	var words []string
	var word strings.Builder
	for seg.Next() {
		fragment := seg.Text()
		if isspace(fragment) {
			if word.Len() > 0 {
				words = append(words, word.String())
				word.Reset()
			}
			continue
		}
		word.WriteString(fragment)
	}
	if word.Len() > 0 {
		words = append(words, word.String())
	}
	return words
}

func isspace(text string) bool {
	if len(text) == 0 {
		return false
	}
	r, width := utf8.DecodeRuneInString(text)
	if width == 0 || r == utf8.RuneError {
		return false
	}
	return unicode.IsSpace(r)
}
