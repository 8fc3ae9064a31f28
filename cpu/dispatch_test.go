package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// referenceOp decodes a code with nested switches, independently of Rules.
func referenceOp(code Code) Op {
	n1, _, _, n4 := code.Nibbles()

	switch n1 {
	case 0x0:
		if code == 0x00ee {
			return OP_RET
		}
	case 0x1:
		return OP_JP
	case 0x2:
		return OP_CALL
	case 0x3:
		return OP_SE_BYTE
	case 0x4:
		return OP_SNE_BYTE
	case 0x5:
		if n4 == 0 {
			return OP_SE_REG
		}
	case 0x6:
		return OP_LD_BYTE
	case 0x7:
		return OP_ADD_BYTE
	case 0x8:
		switch n4 {
		case 0x0:
			return OP_LD_REG
		case 0x1:
			return OP_OR
		case 0x2:
			return OP_AND
		case 0x3:
			return OP_XOR
		case 0x4:
			return OP_ADD_REG
		case 0x5:
			return OP_SUB
		case 0x6:
			return OP_SHR
		case 0x7:
			return OP_SUBN
		case 0xe:
			return OP_SHL
		}
	case 0x9:
		if n4 == 0 {
			return OP_SNE_REG
		}
	case 0xa:
		return OP_LD_I
	case 0xb:
		return OP_JP_V0
	case 0xc:
		return OP_RND
	case 0xf:
		switch code.KK() {
		case 0x07:
			return OP_LD_VX_DT
		case 0x15:
			return OP_LD_DT_VX
		case 0x18:
			return OP_LD_ST_VX
		case 0x1e:
			return OP_ADD_I
		}
	}

	return OP_NOP
}

func TestDispatchAllCodes(t *testing.T) {
	assert := assert.New(t)

	for word := range 0x10000 {
		code := Code(word)
		rule := Dispatch(code)
		if !assert.Equal(referenceOp(code), rule.Op, "%04x", word) {
			break
		}
	}
}

func TestDispatchOrder(t *testing.T) {
	assert := assert.New(t)

	// The catch-all must be last, and the only one.
	last := Rules[len(Rules)-1]
	assert.Equal(OP_NOP, last.Op)
	assert.True(last.Match(0x0000))
	assert.True(last.Match(0xffff))

	for _, rule := range Rules[:len(Rules)-1] {
		assert.NotEqual(OP_NOP, rule.Op)
		assert.NotNil(rule.Handler, rule.Op.String())
	}

	// Literal rules are checked before the partially bound ones.
	assert.Equal(OP_RET, Dispatch(0x00ee).Op)
	assert.Equal(OP_NOP, Dispatch(0x00ef).Op)
	assert.Equal(OP_NOP, Dispatch(0x00e0).Op)
}

func TestRuleCompile(t *testing.T) {
	assert := assert.New(t)

	rule := &Rule{Pattern: "8xyE"}
	rule.compile()
	assert.Equal(uint16(0xf00f), rule.mask)
	assert.Equal(uint16(0x800e), rule.value)

	rule = &Rule{Pattern: "...."}
	rule.compile()
	assert.Equal(uint16(0), rule.mask)
	assert.Equal(uint16(0), rule.value)

	rule = &Rule{Pattern: "00E"}
	assert.Panics(rule.compile)
}

func TestOpString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("nop", OP_NOP.String())
	assert.Equal("subn", OP_SUBN.String())
	assert.Equal("add", OP_ADD_I.String())
	assert.Equal("Op(99)", Op(99).String())
}
