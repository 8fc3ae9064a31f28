package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/cpu"
)

func TestCells(t *testing.T) {
	assert := assert.New(t)

	table := map[uint8]string{
		0x00: "    ",
		0xF0: "****",
		0x90: "*  *",
		0x20: "  * ",
		0x0F: "    ",
		0x8F: "*   ",
	}

	for b, cells := range table {
		assert.Equal(cells, Cells(b), "0x%02x", b)
	}
}

func TestDisplay_DrawByte(t *testing.T) {
	assert := assert.New(t)

	buff := &bytes.Buffer{}
	disp := &Display{Output: buff}

	err := disp.DrawByte(0xF0, 3, 7)
	assert.NoError(err)
	assert.Equal("\x1b[7;3H****", buff.String())
}

func TestDisplay_Clear(t *testing.T) {
	assert := assert.New(t)

	buff := &bytes.Buffer{}
	disp := &Display{Output: buff}

	assert.NoError(disp.Clear())
	assert.Equal("\x1b[2J", buff.String())
}

func TestDisplay_DrawGlyph(t *testing.T) {
	assert := assert.New(t)

	c := cpu.NewCpu()
	buff := &bytes.Buffer{}
	disp := &Display{Output: buff}

	err := disp.DrawGlyph(c.Ram[:], 0, 1, 1)
	assert.NoError(err)

	expect := []string{
		"\x1b[1;1H****",
		"\x1b[2;1H*  *",
		"\x1b[3;1H*  *",
		"\x1b[4;1H*  *",
		"\x1b[5;1H****",
	}
	assert.Equal(strings.Join(expect, ""), buff.String())
}

func TestDisplay_DrawFont(t *testing.T) {
	assert := assert.New(t)

	c := cpu.NewCpu()
	buff := &bytes.Buffer{}
	disp := &Display{Output: buff}

	err := disp.DrawFont(c.Ram[:], 1, 1)
	assert.NoError(err)

	// 16 glyphs of 5 rows each.
	assert.Equal(16*cpu.FONT_GLYPH, strings.Count(buff.String(), "\x1b["))
	assert.Contains(buff.String(), "\x1b[1;76H****")
}
