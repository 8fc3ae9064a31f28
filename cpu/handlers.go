package cpu

// Opcode handlers. Each one consumes the decoded operands of a single code
// and returns the program counter directive. Register indices come from
// 4-bit fields, so they always address one of the 16 registers.

func opNop(cpu *Cpu, code Code) (next NextPc, err error) {
	return Next, nil
}

// opRet returns to the address in the top stack slot.
func opRet(cpu *Cpu, code Code) (next NextPc, err error) {
	addr, err := cpu.Stack.Pop()
	if err != nil {
		return
	}

	next = Jump(addr)
	return
}

func opJp(cpu *Cpu, code Code) (next NextPc, err error) {
	return Jump(code.NNN()), nil
}

// opCall claims a new stack slot and jumps to the subroutine. Unless
// Quirks.CallPushesReturn is set, the return address is not stored, so
// the matching ret resumes at whatever the slot held before.
func opCall(cpu *Cpu, code Code) (next NextPc, err error) {
	if cpu.Quirks.CallPushesReturn {
		err = cpu.Stack.Push(cpu.Pc + 2)
	} else {
		err = cpu.Stack.Advance()
	}
	if err != nil {
		return
	}

	next = Jump(code.NNN())
	return
}

func opSeByte(cpu *Cpu, code Code) (next NextPc, err error) {
	return skipIf(cpu.V[code.X()] == code.KK()), nil
}

func opSneByte(cpu *Cpu, code Code) (next NextPc, err error) {
	return skipIf(cpu.V[code.X()] != code.KK()), nil
}

func opSeReg(cpu *Cpu, code Code) (next NextPc, err error) {
	return skipIf(cpu.V[code.X()] == cpu.V[code.Y()]), nil
}

func opSneReg(cpu *Cpu, code Code) (next NextPc, err error) {
	return skipIf(cpu.V[code.X()] != cpu.V[code.Y()]), nil
}

func opLdByte(cpu *Cpu, code Code) (next NextPc, err error) {
	cpu.V[code.X()] = code.KK()
	return Next, nil
}

// opAddByte adds the immediate modulo 256. VF is not touched.
func opAddByte(cpu *Cpu, code Code) (next NextPc, err error) {
	x := code.X()
	cpu.V[x] = uint8((uint16(cpu.V[x]) + uint16(code.KK())) & 0xff)
	return Next, nil
}

func opLdReg(cpu *Cpu, code Code) (next NextPc, err error) {
	cpu.V[code.X()] = cpu.V[code.Y()]
	return Next, nil
}

func opOr(cpu *Cpu, code Code) (next NextPc, err error) {
	cpu.V[code.X()] |= cpu.V[code.Y()]
	return Next, nil
}

func opAnd(cpu *Cpu, code Code) (next NextPc, err error) {
	cpu.V[code.X()] &= cpu.V[code.Y()]
	return Next, nil
}

func opXor(cpu *Cpu, code Code) (next NextPc, err error) {
	cpu.V[code.X()] ^= cpu.V[code.Y()]
	return Next, nil
}

// opAddReg sets VF on carry out of 8 bits, then keeps the low byte.
func opAddReg(cpu *Cpu, code Code) (next NextPc, err error) {
	x, y := code.X(), code.Y()
	sum := uint16(cpu.V[x]) + uint16(cpu.V[y])
	cpu.V[0xf] = flag(sum > 0xff)
	cpu.V[x] = uint8(sum & 0xff)
	return Next, nil
}

// opSub sets VF when Vx > Vy, and only subtracts when the result
// would not go negative.
func opSub(cpu *Cpu, code Code) (next NextPc, err error) {
	x, y := code.X(), code.Y()
	cpu.V[0xf] = flag(cpu.V[x] > cpu.V[y])
	if cpu.V[x] >= cpu.V[y] {
		cpu.V[x] = cpu.V[x] - cpu.V[y]
	}
	return Next, nil
}

// opShr ignores Vy.
func opShr(cpu *Cpu, code Code) (next NextPc, err error) {
	x := code.X()
	cpu.V[0xf] = cpu.V[x] & 1
	cpu.V[x] >>= 1
	return Next, nil
}

// opSubn sets VF when Vy > Vx, and only subtracts when the result
// would not go negative.
func opSubn(cpu *Cpu, code Code) (next NextPc, err error) {
	x, y := code.X(), code.Y()
	cpu.V[0xf] = flag(cpu.V[y] > cpu.V[x])
	if cpu.V[y] >= cpu.V[x] {
		cpu.V[x] = cpu.V[y] - cpu.V[x]
	}
	return Next, nil
}

// opShl ignores Vy.
func opShl(cpu *Cpu, code Code) (next NextPc, err error) {
	x := code.X()
	cpu.V[0xf] = flag(cpu.V[x] >= 0x80)
	cpu.V[x] <<= 1
	return Next, nil
}

func opLdI(cpu *Cpu, code Code) (next NextPc, err error) {
	cpu.I = code.NNN()
	return Next, nil
}

func opJpV0(cpu *Cpu, code Code) (next NextPc, err error) {
	return Jump(code.NNN() + uint16(cpu.V[0])), nil
}

func opRnd(cpu *Cpu, code Code) (next NextPc, err error) {
	cpu.V[code.X()] = code.KK() & cpu.randomByte()
	return Next, nil
}

func opLdVxDt(cpu *Cpu, code Code) (next NextPc, err error) {
	cpu.V[code.X()] = cpu.Delay
	return Next, nil
}

func opLdDtVx(cpu *Cpu, code Code) (next NextPc, err error) {
	cpu.Delay = cpu.V[code.X()]
	return Next, nil
}

func opLdStVx(cpu *Cpu, code Code) (next NextPc, err error) {
	cpu.Sound = cpu.V[code.X()]
	return Next, nil
}

// opAddI adds Vx to I modulo 65536.
func opAddI(cpu *Cpu, code Code) (next NextPc, err error) {
	cpu.I = uint16((uint32(cpu.I) + uint32(cpu.V[code.X()])) & 0xffff)
	return Next, nil
}

func flag(set bool) uint8 {
	if set {
		return 1
	}
	return 0
}
