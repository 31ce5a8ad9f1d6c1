package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/textblock/backend/gfx/raster"
	"github.com/npillmayer/textblock/core"
	"github.com/npillmayer/textblock/core/dimen"
	"github.com/npillmayer/textblock/core/parameters"
	"github.com/npillmayer/textblock/engine/linebreak"
	"github.com/npillmayer/textblock/engine/text"
	"github.com/npillmayer/textblock/engine/text/monospace"
	"github.com/npillmayer/textblock/engine/textblock"
	"github.com/npillmayer/textblock/engine/textblock/blockdebug"
	"github.com/pterm/pterm"
)

// Backends
const (
	monoBackend   = "mono"
	rasterBackend = "raster"
)

// Default page widths
const (
	defaultColumns = 60
	defaultPixels  = 480
)

// Intp is our interpreter object
type Intp struct {
	blocks   []*textblock.Block
	regs     *parameters.TypesettingRegisters
	backend  string
	columns  int // page width of the mono backend
	pixels   int // page width of the raster backend
	fontname string
	fontsize float64
	pngfile  string
	repl     *readline.Instance
	out      io.Writer
}

// setup checks the backend and sets the page width for it. Widths which are
// not positive select a default width.
func (intp *Intp) setup(backend string, width int) error {
	intp.columns, intp.pixels = defaultColumns, defaultPixels
	intp.backend = backend
	switch backend {
	case monoBackend, rasterBackend:
		intp.setWidth(width)
	default:
		return core.Error(core.EINVALID, "unknown backend '%s'", backend)
	}
	return nil
}

func (intp *Intp) setWidth(width int) {
	if width <= 0 {
		return
	}
	if intp.backend == rasterBackend {
		intp.pixels = width
	} else {
		intp.columns = width
	}
}

// setDimen sets a dimension parameter from a string like "12pt". Empty strings
// leave the parameter unchanged.
func setDimen(regs *parameters.TypesettingRegisters, key parameters.TypesettingParameter, s string) error {
	if s == "" {
		return nil
	}
	d, isPercent, err := dimen.ParseDimen(s, dimen.DefaultDPI)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot use '%s' as a dimension", s)
	}
	if isPercent || d < 0 {
		return core.Error(core.EINVALID, "dimension must be an absolute length, is '%s'", s)
	}
	regs.Push(key, d)
	return nil
}

// run lays out the document once and outputs it.
func (intp *Intp) run() error {
	if intp.backend == rasterBackend {
		if intp.pngfile == "" {
			intp.pngfile = "parjust.png"
		}
		return intp.renderPNG(intp.pngfile)
	}
	return intp.show()
}

// layout lays out every block with metrics m. Blocks failing with an internal
// inconsistency keep their partial result; any other error stops layout.
func (intp *Intp) layout(m text.Metrics) (lines int, err error) {
	for i, b := range intp.blocks {
		if err = b.Layout(m); err != nil {
			var incons *linebreak.InconsistencyError
			if !errors.As(err, &incons) {
				return lines, err
			}
			pterm.Error.Printfln("block #%d: %s", i, core.UserMessage(err))
		}
		lines += b.LineCount()
	}
	return lines, nil
}

// show prints the document on a monospace grid, with an empty row between blocks.
func (intp *Intp) show() error {
	display := monospace.New(intp.columns, 1, nil)
	lines, err := intp.layout(display)
	if err != nil {
		return err
	}
	row := 0
	for _, b := range intp.blocks {
		for l := 0; l < b.LineCount(); l++ {
			if err = b.RenderLine(display, l, dimen.Px(row)); err != nil {
				return err
			}
			row++
		}
		row++
	}
	rule := strings.Repeat("-", intp.columns)
	fmt.Fprintln(intp.out, rule)
	for _, line := range display.Lines() {
		fmt.Fprintln(intp.out, line)
	}
	fmt.Fprintln(intp.out, rule)
	pterm.Info.Printfln("%d blocks set in %d lines of %d columns (%s)", len(intp.blocks), lines,
		intp.columns, intp.regs.S(parameters.P_LINEBREAKER))
	return nil
}

func (intp *Intp) faces() (raster.Faces, error) {
	if intp.fontname != "" {
		return raster.FindFaces(intp.fontname, intp.fontsize, dimen.DefaultDPI)
	}
	return raster.GoFaces(intp.fontsize, dimen.DefaultDPI)
}

// renderPNG renders the document into a PNG file. Lines are stacked
// P_BASELINESKIP apart, blocks are separated by an empty line.
func (intp *Intp) renderPNG(path string) error {
	faces, err := intp.faces()
	if err != nil {
		return err
	}
	canvas, err := raster.NewCanvas(intp.pixels, 0, faces, intp.regs)
	if err != nil {
		return err
	}
	lines, err := intp.layout(canvas)
	if err != nil {
		return err
	}
	skip := intp.regs.D(parameters.P_BASELINESKIP)
	if skip < canvas.LineHeight() {
		skip = canvas.LineHeight()
	}
	rows := lines + len(intp.blocks)
	canvas.Resize(int(dimen.Px(rows)*skip + 2*canvas.Margin()))
	y := dimen.Zero
	for _, b := range intp.blocks {
		for l := 0; l < b.LineCount(); l++ {
			if err = b.RenderLine(canvas, l, y); err != nil {
				return err
			}
			y += skip
		}
		y += skip
	}
	f, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create %s", path)
	}
	defer f.Close()
	if err = canvas.WritePNG(f); err != nil {
		return err
	}
	pterm.Info.Printfln("%d lines rendered to %s", lines, path)
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Command is a single interpreter command with an optional argument.
type Command struct {
	code int
	arg  string
}

// Commands
const (
	QUIT int = iota
	HELP
	SHOW
	WIDTH
	BREAKER
	JUSTIFY
	PNG
	DUMP
)

func parseCommand(line string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.New("empty command")
	}
	cmd := &Command{}
	if len(fields) > 1 {
		cmd.arg = fields[1]
	}
	tracer().Infof("parse command = %v", fields)
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		cmd.code = QUIT
	case "show":
		cmd.code = SHOW
	case "width":
		cmd.code = WIDTH
		if _, err := strconv.Atoi(cmd.arg); err != nil {
			return nil, fmt.Errorf("width needs a number, have '%s'", cmd.arg)
		}
	case "breaker":
		cmd.code = BREAKER
		if cmd.arg != parameters.OptimalBreaker && cmd.arg != parameters.FirstFitBreaker {
			return nil, fmt.Errorf("breaker must be %s or %s", parameters.OptimalBreaker,
				parameters.FirstFitBreaker)
		}
	case "justify":
		cmd.code = JUSTIFY
		if cmd.arg != "on" && cmd.arg != "off" {
			return nil, errors.New("justify must be 'on' or 'off'")
		}
	case "png":
		cmd.code = PNG
	case "dump":
		cmd.code = DUMP
		if _, err := strconv.Atoi(cmd.arg); err != nil {
			return nil, fmt.Errorf("dump needs a block number, have '%s'", cmd.arg)
		}
	default:
		cmd.code = HELP
	}
	return cmd, nil
}

func (intp *Intp) execute(cmd *Command) (bool, error) {
	switch cmd.code {
	case QUIT:
		return true, nil
	case HELP:
		help(intp.out)
		return false, nil
	case SHOW:
		return false, intp.show()
	case WIDTH:
		w, _ := strconv.Atoi(cmd.arg)
		if w <= 0 {
			return false, fmt.Errorf("width must be positive, is %d", w)
		}
		intp.setWidth(w)
	case BREAKER:
		intp.regs.Push(parameters.P_LINEBREAKER, cmd.arg)
	case JUSTIFY:
		intp.regs.Push(parameters.P_JUSTIFY, cmd.arg == "on")
	case PNG:
		path := cmd.arg
		if path == "" {
			path = intp.pngfile
		}
		if path == "" {
			path = "parjust.png"
		}
		return false, intp.renderPNG(path)
	case DUMP:
		n, _ := strconv.Atoi(cmd.arg)
		if n < 0 || n >= len(intp.blocks) {
			return false, fmt.Errorf("no block #%d, document has %d blocks", n, len(intp.blocks))
		}
		return false, blockdebug.Dump(intp.out, intp.blocks[n])
	}
	return false, intp.run()
}

func help(w io.Writer) {
	fmt.Fprint(w, `
	show                     lay out and print the document
	width N                  set the page width and print the document
	breaker optimal|firstfit select the line breaking algorithm
	justify on|off           switch justification of lines
	png [FILE]               render the document into a PNG file
	dump N                   list the words of block N
	quit                     leave
`)
}
