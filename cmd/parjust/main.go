/*
Command parjust lays out the paragraphs of an HTML document into justified lines.

Lines are printed to the terminal on a monospace grid, or rendered with the Go
fonts (or a system font) into a PNG image. In interactive mode the page width and
the line breaking algorithm may be changed and the document re-laid out.

	parjust -width 50 -breaker firstfit book.html
	parjust -backend raster -width 600 -png page.png book.html
	parjust -i book.html

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/textblock/core/parameters"
	"github.com/npillmayer/textblock/engine/textblock"
	"github.com/npillmayer/textblock/engine/textblock/blockdebug"
	"github.com/npillmayer/textblock/input/html"
	"github.com/pterm/pterm"
)

// tracer traces with key 'textblock.layout'
func tracer() tracing.Trace {
	return tracing.Select("textblock.layout")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":        "go",
		"trace.textblock.layout": "Error",
		"trace.textblock.input":  "Error",
		"trace.textblock.gfx":    "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	infile := flag.String("in", "", "HTML file to lay out (or first argument)")
	width := flag.Int("width", 0, "Page width, in columns (mono) or pixels (raster)")
	backend := flag.String("backend", monoBackend, "Output backend [mono|raster]")
	breaker := flag.String("breaker", parameters.OptimalBreaker, "Line breaker [optimal|firstfit]")
	ragged := flag.Bool("ragged", false, "Do not justify lines")
	pngfile := flag.String("png", "", "PNG file to render to (raster backend)")
	fontname := flag.String("font", "", "System font to use instead of Go fonts (raster backend)")
	fontsize := flag.Float64("size", 12, "Font size in points (raster backend)")
	margin := flag.String("margin", "", "Page margin, e.g. 10px or 4mm (raster backend)")
	leading := flag.String("leading", "", "Distance between baselines, e.g. 16pt (raster backend)")
	interactive := flag.Bool("i", false, "Interactive mode")
	flag.Parse()
	setTraceLevel(*tlevel)
	if *infile == "" {
		*infile = flag.Arg(0)
	}
	if *infile == "" {
		pterm.Error.Println("no input file given")
		flag.Usage()
		os.Exit(2)
	}
	//
	// read the document
	regs := parameters.NewTypesettingRegisters()
	regs.Push(parameters.P_LINEBREAKER, *breaker)
	regs.Push(parameters.P_JUSTIFY, !*ragged)
	for key, value := range map[parameters.TypesettingParameter]string{
		parameters.P_PAGEMARGIN:   *margin,
		parameters.P_BASELINESKIP: *leading,
	} {
		if err := setDimen(regs, key, value); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
	}
	f, err := os.Open(*infile)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	blocks, err := html.Parse(f, regs, textblock.WithDiagnostics(blockdebug.WriterSink{W: os.Stderr}))
	f.Close()
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	pterm.Info.Printfln("%s: %d blocks", *infile, len(blocks))
	//
	intp := &Intp{
		blocks:   blocks,
		regs:     regs,
		fontname: *fontname,
		fontsize: *fontsize,
		pngfile:  *pngfile,
		out:      os.Stdout,
	}
	if err := intp.setup(*backend, *width); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	if !*interactive {
		if err := intp.run(); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(4)
		}
		return
	}
	//
	// set up REPL
	repl, err := readline.New("parjust > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(5)
	}
	intp.repl = repl
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                             // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(level string) {
	l := tracing.LevelError
	switch strings.ToLower(level) {
	case "debug":
		l = tracing.LevelDebug
	case "info":
		l = tracing.LevelInfo
	}
	for _, key := range []string{"textblock.layout", "textblock.input", "textblock.gfx", "textblock.linebreak"} {
		tracing.Select(key).SetTraceLevel(l)
	}
}
