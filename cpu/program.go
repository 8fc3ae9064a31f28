package cpu

// Opcode is a line of assembled code with its source location.
type Opcode struct {
	LineNo int      // Source line number.
	Addr   int      // Load address of the first byte.
	Words  []string // Source words after label and equate processing.
	Bytes  []byte   // Assembled bytes.
}

// Program is the output of the assembler.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug returns the opcode covering addr, and the offset of addr within it.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(addr) >= op.Addr && int(addr) < op.Addr+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(addr) - op.Addr,
			}
			break
		}
	}

	return
}

// Binary returns the program image to be loaded at the program start.
func (prog *Program) Binary() (bins []byte) {
	for _, op := range prog.Opcodes {
		bins = append(bins, op.Bytes...)
	}

	return
}
