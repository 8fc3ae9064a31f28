// Package io provides the host side collaborators of the CHIP-8 core:
// ROM image loading, a text terminal display, and terminal raw mode.
package io

import (
	"fmt"
	"io"

	"github.com/ezrec/chip8/cpu"
)

const (
	DISPLAY_CELLS = 4   // Cells drawn per byte, from the high nibble.
	CELL_ON       = '*' // Lit pixel.
	CELL_OFF      = ' ' // Dark pixel.
)

// Display draws sprite bytes onto an ANSI terminal.
type Display struct {
	Output io.Writer
}

// Cells renders the high nibble of b, most significant bit first.
func Cells(b uint8) string {
	cells := make([]byte, DISPLAY_CELLS)
	for n := range DISPLAY_CELLS {
		if b&(0x80>>n) != 0 {
			cells[n] = CELL_ON
		} else {
			cells[n] = CELL_OFF
		}
	}

	return string(cells)
}

// DrawByte moves the cursor to column x, row y and draws the byte.
func (disp *Display) DrawByte(b uint8, x, y uint16) (err error) {
	_, err = fmt.Fprintf(disp.Output, "\x1b[%d;%dH%s", y, x, Cells(b))
	return
}

// Clear clears the whole screen.
func (disp *Display) Clear() (err error) {
	_, err = io.WriteString(disp.Output, "\x1b[2J")
	return
}

// DrawGlyph draws the font glyph for a hex digit, read from the
// CPU's memory, with its top left corner at column x, row y.
func (disp *Display) DrawGlyph(ram []byte, digit uint8, x, y uint16) (err error) {
	addr := int(cpu.FontAddr(digit))
	for row := range cpu.FONT_GLYPH {
		err = disp.DrawByte(ram[addr+row], x, y+uint16(row))
		if err != nil {
			return
		}
	}

	return
}

// DrawFont draws all sixteen glyphs in a row, starting at column x, row y.
func (disp *Display) DrawFont(ram []byte, x, y uint16) (err error) {
	for digit := range uint8(16) {
		err = disp.DrawGlyph(ram, digit, x+uint16(digit)*(DISPLAY_CELLS+1), y)
		if err != nil {
			return
		}
	}

	return
}
