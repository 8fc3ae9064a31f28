package cpu

// NextPcKind selects how the program counter moves after an instruction.
type NextPcKind int

const (
	NEXT_PC_NEXT = NextPcKind(0) // Advance to the following instruction.
	NEXT_PC_SKIP = NextPcKind(1) // Skip the following instruction.
	NEXT_PC_JUMP = NextPcKind(2) // Transfer to NextPc.Addr.
)

// NextPc is the control-flow directive returned by every opcode handler.
type NextPc struct {
	Kind NextPcKind
	Addr uint16 // Only meaningful for NEXT_PC_JUMP.
}

var (
	Next = NextPc{Kind: NEXT_PC_NEXT}
	Skip = NextPc{Kind: NEXT_PC_SKIP}
)

// Jump returns a directive that sets the program counter to addr.
func Jump(addr uint16) NextPc {
	return NextPc{Kind: NEXT_PC_JUMP, Addr: addr}
}

// skipIf returns Skip when cond holds, otherwise Next.
func skipIf(cond bool) NextPc {
	if cond {
		return Skip
	}
	return Next
}

// SetPc applies a control-flow directive to the program counter.
// The new value is not validated; an out of range pc faults on the next fetch.
func (cpu *Cpu) SetPc(next NextPc) {
	switch next.Kind {
	case NEXT_PC_NEXT:
		cpu.Pc += 2
	case NEXT_PC_SKIP:
		cpu.Pc += 4
	case NEXT_PC_JUMP:
		cpu.Pc = next.Addr
	}
}
