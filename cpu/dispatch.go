package cpu

import (
	"fmt"
)

// Handler executes one decoded instruction against the CPU state.
type Handler func(cpu *Cpu, code Code) (next NextPc, err error)

// Rule binds a nibble pattern to an opcode handler.
//
// Pattern is four characters, one per nibble in byte order. Upper-case hex
// digits must match exactly; any other character binds the nibble as an
// operand. Syntax is the assembly template, where vx, vy, kk and nnn stand
// for the bound operands.
type Rule struct {
	Op      Op
	Pattern string
	Syntax  string
	Handler Handler

	mask  uint16
	value uint16
}

// Match returns true if code satisfies the rule's literal nibbles.
func (rule *Rule) Match(code Code) bool {
	return uint16(code)&rule.mask == rule.value
}

// compile computes the literal mask and value of the rule's pattern.
func (rule *Rule) compile() {
	if len(rule.Pattern) != 4 {
		panic(fmt.Sprintf("rule %v: pattern %q is not four nibbles", rule.Op, rule.Pattern))
	}

	rule.mask = 0
	rule.value = 0
	for _, c := range []byte(rule.Pattern) {
		rule.mask <<= 4
		rule.value <<= 4
		switch {
		case c >= '0' && c <= '9':
			rule.mask |= 0xf
			rule.value |= uint16(c - '0')
		case c >= 'A' && c <= 'F':
			rule.mask |= 0xf
			rule.value |= uint16(c-'A') + 10
		}
	}
}

// Rules are evaluated top to bottom, first match wins. Exact literals come
// before partially bound patterns, and the final rule matches every code.
var Rules = compileRules([]Rule{
	{Op: OP_RET, Pattern: "00EE", Syntax: "ret", Handler: opRet},
	{Op: OP_JP, Pattern: "1nnn", Syntax: "jp nnn", Handler: opJp},
	{Op: OP_CALL, Pattern: "2nnn", Syntax: "call nnn", Handler: opCall},
	{Op: OP_SE_BYTE, Pattern: "3xkk", Syntax: "se vx, kk", Handler: opSeByte},
	{Op: OP_SNE_BYTE, Pattern: "4xkk", Syntax: "sne vx, kk", Handler: opSneByte},
	{Op: OP_LD_BYTE, Pattern: "6xkk", Syntax: "ld vx, kk", Handler: opLdByte},
	{Op: OP_ADD_BYTE, Pattern: "7xkk", Syntax: "add vx, kk", Handler: opAddByte},
	{Op: OP_LD_I, Pattern: "Annn", Syntax: "ld i, nnn", Handler: opLdI},
	{Op: OP_JP_V0, Pattern: "Bnnn", Syntax: "jp v0, nnn", Handler: opJpV0},
	{Op: OP_RND, Pattern: "Cxkk", Syntax: "rnd vx, kk", Handler: opRnd},
	{Op: OP_SE_REG, Pattern: "5xy0", Syntax: "se vx, vy", Handler: opSeReg},
	{Op: OP_LD_REG, Pattern: "8xy0", Syntax: "ld vx, vy", Handler: opLdReg},
	{Op: OP_OR, Pattern: "8xy1", Syntax: "or vx, vy", Handler: opOr},
	{Op: OP_AND, Pattern: "8xy2", Syntax: "and vx, vy", Handler: opAnd},
	{Op: OP_XOR, Pattern: "8xy3", Syntax: "xor vx, vy", Handler: opXor},
	{Op: OP_ADD_REG, Pattern: "8xy4", Syntax: "add vx, vy", Handler: opAddReg},
	{Op: OP_SUB, Pattern: "8xy5", Syntax: "sub vx, vy", Handler: opSub},
	{Op: OP_SHR, Pattern: "8xy6", Syntax: "shr vx, vy", Handler: opShr},
	{Op: OP_SUBN, Pattern: "8xy7", Syntax: "subn vx, vy", Handler: opSubn},
	{Op: OP_SHL, Pattern: "8xyE", Syntax: "shl vx, vy", Handler: opShl},
	{Op: OP_SNE_REG, Pattern: "9xy0", Syntax: "sne vx, vy", Handler: opSneReg},
	{Op: OP_LD_VX_DT, Pattern: "Fx07", Syntax: "ld vx, dt", Handler: opLdVxDt},
	{Op: OP_LD_DT_VX, Pattern: "Fx15", Syntax: "ld dt, vx", Handler: opLdDtVx},
	{Op: OP_LD_ST_VX, Pattern: "Fx18", Syntax: "ld st, vx", Handler: opLdStVx},
	{Op: OP_ADD_I, Pattern: "Fx1E", Syntax: "add i, vx", Handler: opAddI},
	{Op: OP_NOP, Pattern: "....", Syntax: ".word nnnn", Handler: opNop},
})

func compileRules(rules []Rule) []Rule {
	for n := range rules {
		rules[n].compile()
	}

	return rules
}

// Dispatch selects the first rule matching code. It never fails; codes
// matching no instruction resolve to the no-op rule.
func Dispatch(code Code) *Rule {
	for n := range Rules {
		if Rules[n].Match(code) {
			return &Rules[n]
		}
	}

	// Unreachable while the final rule matches everything.
	return &Rules[len(Rules)-1]
}
