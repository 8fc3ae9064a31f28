package cpu

import (
	"fmt"
	"strings"
)

// Code is a single 16-bit instruction word, most significant byte first.
type Code uint16

// MakeCode assembles a code from its two bytes in memory order.
func MakeCode(b1, b2 uint8) Code {
	return Code(uint16(b1)<<8 | uint16(b2))
}

// Nibbles splits the code into its four 4-bit fields, in byte order.
func (code Code) Nibbles() (n1, n2, n3, n4 uint8) {
	word := uint16(code)
	n1 = uint8((word >> 12) & 0xf)
	n2 = uint8((word >> 8) & 0xf)
	n3 = uint8((word >> 4) & 0xf)
	n4 = uint8((word >> 0) & 0xf)
	return
}

// X returns the first register operand.
func (code Code) X() uint8 {
	_, x, _, _ := code.Nibbles()
	return x
}

// Y returns the second register operand.
func (code Code) Y() uint8 {
	_, _, y, _ := code.Nibbles()
	return y
}

// KK returns the 8-bit immediate built from the low two nibbles.
func (code Code) KK() uint8 {
	_, _, k1, k2 := code.Nibbles()
	return (k1 << 4) + k2
}

// NNN returns the 12-bit address built from the low three nibbles.
func (code Code) NNN() uint16 {
	_, n1, n2, n3 := code.Nibbles()
	return (uint16(n1) << 8) + (uint16(n2) << 4) + uint16(n3)
}

// Rule returns the dispatch rule that executes this code.
func (code Code) Rule() *Rule {
	return Dispatch(code)
}

// String returns the assembly language representation of this code.
// Codes that dispatch to the no-op are shown as raw .word data.
func (code Code) String() string {
	rule := code.Rule()
	if rule.Op == OP_NOP {
		return fmt.Sprintf(".word 0x%04x", uint16(code))
	}

	words := strings.Fields(rule.Syntax)
	for n, word := range words {
		comma := strings.HasSuffix(word, ",")
		word = strings.TrimSuffix(word, ",")
		switch word {
		case "vx":
			word = fmt.Sprintf("v%x", code.X())
		case "vy":
			word = fmt.Sprintf("v%x", code.Y())
		case "kk":
			word = fmt.Sprintf("0x%02x", code.KK())
		case "nnn":
			word = fmt.Sprintf("0x%03x", code.NNN())
		}
		if comma {
			word += ","
		}
		words[n] = word
	}

	return strings.Join(words, " ")
}
