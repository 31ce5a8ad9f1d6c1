/*
Package blockdebug dumps text blocks for debugging line breaking.

ToGraphViz renders a laid out block as a GraphViz DOT graph of lines and words.
WriterSink is a diagnostic sink which writes the words and line links of a
failing layout pass to an io.Writer.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package blockdebug

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textblock/engine/linebreak"
	"github.com/npillmayer/textblock/engine/textblock"
)

// tracer traces with key 'textblock.layout'.
func tracer() tracing.Trace {
	return tracing.Select("textblock.layout")
}

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	Lines    int
	LineTmpl *template.Template
	WordTmpl *template.Template
	EdgeTmpl *template.Template
}

// ToGraphViz creates a graphical representation of a block and its lines.
// It produces a DOT file format suitable as input for Graphviz, given a Writer.
// Blocks which are not positioned are drawn as a single node.
func ToGraphViz(b *textblock.Block, w io.Writer) error {
	header, err := template.New("block").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	funcs := template.FuncMap{"shortstring": shortText}
	gparams := graphParamsType{Fontname: "Helvetica", Lines: b.LineCount()}
	gparams.LineTmpl = template.Must(template.New("line").Parse(lineTmpl))
	gparams.WordTmpl = template.Must(template.New("word").Funcs(funcs).Parse(wordTmpl))
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(edgeTmpl))
	if err = header.Execute(w, gparams); err != nil {
		return err
	}
	if _, err = fmt.Fprintf(w, "block [ label=\"%s, %d words\" shape=box style=filled fillcolor=lightblue3 ] ;\n",
		b.State(), len(b.Words())); err != nil {
		return err
	}
	for l := 0; l < b.LineCount(); l++ {
		if err = line(b, l, w, &gparams); err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

func line(b *textblock.Block, l int, w io.Writer, gparams *graphParamsType) error {
	start, end, err := b.Line(l)
	if err != nil {
		return err
	}
	tracer().Debugf("line %d = [%d,%d)", l, start, end)
	lname := fmt.Sprintf("line%04d", l)
	ln := cline{Name: lname, Index: l, Start: start, End: end}
	if err = gparams.LineTmpl.Execute(w, ln); err != nil {
		return err
	}
	if err = gparams.EdgeTmpl.Execute(w, cedge{"block", lname}); err != nil {
		return err
	}
	for i, word := range b.Words()[start:end] {
		wd := cword{Name: fmt.Sprintf("word%05d", start+i), W: word}
		if err = gparams.WordTmpl.Execute(w, wd); err != nil {
			return err
		}
		if err = gparams.EdgeTmpl.Execute(w, cedge{lname, wd.Name}); err != nil {
			return err
		}
	}
	return nil
}

// Helper structs
type cline struct {
	Name       string
	Index      int
	Start, End int
}

type cword struct {
	Name string
	W    *textblock.Word
}

type cedge struct {
	N1, N2 string
}

func shortText(w *textblock.Word) string {
	txt := w.Text()
	if len([]rune(txt)) > 10 {
		txt = string([]rune(txt)[:10]) + "…"
	}
	s := fmt.Sprintf("%q", txt)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=12] ;
   node [fontname = "{{ .Fontname }}" fontsize=12] ;
   edge [fontname = "{{ .Fontname }}" fontsize=12] ;
`

const lineTmpl = `{{ .Name }}	[ label="line {{ .Index }} [{{ .Start }},{{ .End }})" shape=box style=filled fillcolor=grey90 ] ;
`

const wordTmpl = `{{ .Name }}	[ label={{ shortstring .W }} xlabel="{{ printf "%.1f" .W.XPos }}" shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
`

const edgeTmpl = `{{ .N1 }} -> {{ .N2 }} [weight=1] ;
`

// --- Diagnostics -----------------------------------------------------------

// WriterSink is a textblock.DiagnosticSink writing to W.
type WriterSink struct {
	W io.Writer
}

var _ textblock.DiagnosticSink = WriterSink{}

// BreakFault is part of interface textblock.DiagnosticSink. It writes the reason
// of the fault, every word of the block and every link computed by the line breaker.
func (s WriterSink) BreakFault(b *textblock.Block, err *linebreak.InconsistencyError) {
	fmt.Fprintf(s.W, "line breaking failed: %s\n", err.Reason)
	if dumperr := Dump(s.W, b); dumperr != nil {
		tracer().Errorf("cannot dump block: %v", dumperr)
	}
	for i, link := range err.Links {
		fmt.Fprintf(s.W, "line break %d=>%d\n", i, link)
	}
	fmt.Fprintf(s.W, "breaks = %s\n", err.Breaks)
}

// Dump writes the words of a block, one per line, with their widths and offsets.
func Dump(w io.Writer, b *textblock.Block) error {
	return dumpTmpl.Execute(w, b)
}

var dumpTmpl = template.Must(template.New("dump").Parse(`block of {{ len .Words }} words, {{ .State }}
{{ range $i, $w := .Words }}{{ printf "%5d" $i }} {{ $w }} x={{ printf "%.2f" $w.XPos }} {{ $w.Style }}
{{ end }}`))
