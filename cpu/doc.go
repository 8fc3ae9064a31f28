// Package cpu implements the CHIP-8 central processing unit and its assembler.
//
// The CPU consists of sixteen 8-bit general-purpose registers (v0-vf, with
// vf doubling as the flag register), a 16-bit index register (I), the delay
// and sound timer registers, a program counter, a sixteen entry call stack,
// and 0xFFF bytes of RAM. The font glyphs live at the bottom of RAM and
// programs are loaded at 0x200.
//
// Each Tick fetches the two bytes at the program counter, dispatches the
// resulting Code through an ordered list of nibble pattern rules, runs the
// matching handler, and applies the NextPc it returns. Codes that match no
// rule are executed as a no-op.
//
// The assembler provides a small assembly language for the same instruction
// set, supporting labels, equates, raw data, and compile-time expression
// evaluation.
package cpu
