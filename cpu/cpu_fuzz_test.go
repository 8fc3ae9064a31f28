package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	for _, word := range []uint16{0x0000, 0x00ee, 0x2abc, 0x8124, 0x8f15, 0xbfff, 0xf41e, 0xffff} {
		f.Add(word, uint8(0), uint8(0), false)
		f.Add(word, uint8(0xff), uint8(STACK_LIMIT-1), true)
	}

	f.Fuzz(func(t *testing.T, opcode uint16, fill uint8, sp uint8, push bool) {
		assert := assert.New(t)

		code := Code(opcode)

		cpu := NewCpu()
		cpu.Seed(uint64(opcode))
		cpu.Quirks.CallPushesReturn = push
		for n := range cpu.V {
			cpu.V[n] = fill + uint8(n)
		}
		cpu.I = uint16(fill) << 4
		cpu.Delay = fill
		cpu.Sound = ^fill
		cpu.Stack.Sp = sp % STACK_LIMIT
		cpu.Stack.Data[cpu.Stack.Sp] = 0x234
		before := *cpu

		err := cpu.Execute(code)

		rule := Dispatch(code)
		if err != nil {
			// Only the stack instructions can fault, and they leave the
			// program counter alone.
			assert.Contains([]Op{OP_RET, OP_CALL}, rule.Op)
			assert.True(errors.Is(err, ErrStackEmpty) || errors.Is(err, ErrStackFull))
			assert.Equal(before.Pc, cpu.Pc)
			assert.Equal(before.Stack, cpu.Stack)
			return
		}

		assert.Equal(before.Ticks+1, cpu.Ticks)
		assert.Equal(before.Ram, cpu.Ram)

		switch rule.Op {
		case OP_NOP:
			assert.Equal(before.V, cpu.V)
			assert.Equal(before.I, cpu.I)
			assert.Equal(before.Delay, cpu.Delay)
			assert.Equal(before.Sound, cpu.Sound)
			assert.Equal(before.Stack, cpu.Stack)
			assert.Equal(before.Pc+2, cpu.Pc)
		case OP_JP:
			assert.Equal(code.NNN(), cpu.Pc)
		case OP_JP_V0:
			assert.Equal(code.NNN()+uint16(before.V[0]), cpu.Pc)
		case OP_SE_BYTE, OP_SNE_BYTE, OP_SE_REG, OP_SNE_REG:
			assert.Equal(before.V, cpu.V)
			assert.Contains([]uint16{before.Pc + 2, before.Pc + 4}, cpu.Pc)
		case OP_RET, OP_CALL:
			assert.Equal(before.V, cpu.V)
		default:
			assert.Equal(before.Pc+2, cpu.Pc)
			assert.Equal(before.Stack, cpu.Stack)
		}
	})
}
