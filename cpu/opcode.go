package cpu

// Op identifies the operation selected by the dispatcher.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_NOP      = Op(0)  // nop
	OP_RET      = Op(1)  // ret
	OP_JP       = Op(2)  // jp
	OP_CALL     = Op(3)  // call
	OP_SE_BYTE  = Op(4)  // se
	OP_SNE_BYTE = Op(5)  // sne
	OP_SE_REG   = Op(6)  // se
	OP_LD_BYTE  = Op(7)  // ld
	OP_ADD_BYTE = Op(8)  // add
	OP_LD_REG   = Op(9)  // ld
	OP_OR       = Op(10) // or
	OP_AND      = Op(11) // and
	OP_XOR      = Op(12) // xor
	OP_ADD_REG  = Op(13) // add
	OP_SUB      = Op(14) // sub
	OP_SHR      = Op(15) // shr
	OP_SUBN     = Op(16) // subn
	OP_SHL      = Op(17) // shl
	OP_SNE_REG  = Op(18) // sne
	OP_LD_I     = Op(19) // ld
	OP_JP_V0    = Op(20) // jp
	OP_RND      = Op(21) // rnd
	OP_LD_VX_DT = Op(22) // ld
	OP_LD_DT_VX = Op(23) // ld
	OP_LD_ST_VX = Op(24) // ld
	OP_ADD_I    = Op(25) // add
)
