package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textblock/core"
	"github.com/npillmayer/textblock/core/dimen"
	"github.com/npillmayer/textblock/core/parameters"
	"github.com/npillmayer/textblock/input/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<h1>A heading</h1>
<p>The quick brown fox jumps over the lazy dog. <i>Pack my box</i> with five dozen liquor jugs.</p>`

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textblock.layout")
	defer teardown()
	//
	cmd, err := parseCommand("width 42")
	require.NoError(t, err)
	assert.Equal(t, WIDTH, cmd.code)
	assert.Equal(t, "42", cmd.arg)
	_, err = parseCommand("width wide")
	assert.Error(t, err)
	cmd, err = parseCommand("  breaker   firstfit ")
	require.NoError(t, err)
	assert.Equal(t, BREAKER, cmd.code)
	_, err = parseCommand("breaker knuth")
	assert.Error(t, err)
	cmd, err = parseCommand("QUIT")
	require.NoError(t, err)
	assert.Equal(t, QUIT, cmd.code)
	cmd, err = parseCommand("whatever")
	require.NoError(t, err)
	assert.Equal(t, HELP, cmd.code)
}

func TestShowMonospace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textblock.layout")
	defer teardown()
	//
	intp, out := newTestIntp(t, monoBackend, 30)
	quit, err := intp.execute(&Command{code: SHOW})
	require.NoError(t, err)
	assert.False(t, quit)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	t.Logf("\n%s", out.String())
	require.Greater(t, len(lines), 4)
	assert.Equal(t, strings.Repeat("-", 30), lines[0])
	assert.Equal(t, "A heading", lines[1])
	assert.Equal(t, "", lines[2], "blocks are separated by an empty row")
	assert.Len(t, lines[3], 30, "first line of a paragraph is justified")
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 30)
	}
}

func TestChangeWidthAndBreaker(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textblock.layout")
	defer teardown()
	//
	intp, out := newTestIntp(t, monoBackend, 30)
	_, err := intp.execute(&Command{code: WIDTH, arg: "20"})
	require.NoError(t, err)
	assert.Equal(t, 20, intp.columns)
	assert.Contains(t, out.String(), strings.Repeat("-", 20)+"\n")
	_, err = intp.execute(&Command{code: BREAKER, arg: parameters.FirstFitBreaker})
	require.NoError(t, err)
	assert.Equal(t, parameters.FirstFitBreaker, intp.regs.S(parameters.P_LINEBREAKER))
	_, err = intp.execute(&Command{code: WIDTH, arg: "0"})
	assert.Error(t, err)
}

func TestDumpBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textblock.layout")
	defer teardown()
	//
	intp, out := newTestIntp(t, monoBackend, 30)
	_, err := intp.execute(&Command{code: DUMP, arg: "0"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "block of 2 words")
	_, err = intp.execute(&Command{code: DUMP, arg: "7"})
	assert.Error(t, err)
}

func TestRenderPNG(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textblock.gfx")
	defer teardown()
	//
	intp, _ := newTestIntp(t, rasterBackend, 300)
	intp.pngfile = filepath.Join(t.TempDir(), "page.png")
	require.NoError(t, intp.run())
	info, err := os.Stat(intp.pngfile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSetDimen(t *testing.T) {
	regs := parameters.NewTypesettingRegisters()
	require.NoError(t, setDimen(regs, parameters.P_PAGEMARGIN, "1in"))
	assert.Equal(t, dimen.Px(96), regs.D(parameters.P_PAGEMARGIN))
	require.NoError(t, setDimen(regs, parameters.P_BASELINESKIP, ""))
	assert.Equal(t, dimen.Px(20), regs.D(parameters.P_BASELINESKIP))
	assert.Equal(t, core.EINVALID, core.Code(setDimen(regs, parameters.P_PAGEMARGIN, "50%")))
	assert.Equal(t, core.EINVALID, core.Code(setDimen(regs, parameters.P_PAGEMARGIN, "wide")))
}

func TestUnknownBackend(t *testing.T) {
	intp := &Intp{}
	err := intp.setup("plotter", 10)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func newTestIntp(t *testing.T, backend string, width int) (*Intp, *bytes.Buffer) {
	regs := parameters.NewTypesettingRegisters()
	blocks, err := html.ParseString(sample, regs)
	require.NoError(t, err)
	out := &bytes.Buffer{}
	intp := &Intp{
		blocks:   blocks,
		regs:     regs,
		fontsize: 12,
		out:      out,
	}
	require.NoError(t, intp.setup(backend, width))
	return intp, out
}
