package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"math/rand/v2"
	"strings"
	"time"
)

const (
	RAM_SIZE      = 0xFFF // Bytes of addressable memory.
	PROGRAM_START = 0x200 // Load address of programs.
	PROGRAM_LIMIT = RAM_SIZE - PROGRAM_START
	REGISTERS     = 16 // Number of general-purpose registers.
)

var _cpu_defines = map[string]string{
	"RAM_SIZE":      fmt.Sprintf("0x%x", RAM_SIZE),
	"PROGRAM_START": fmt.Sprintf("0x%x", PROGRAM_START),
	"STACK_LIMIT":   fmt.Sprintf("%v", STACK_LIMIT),
	"FONT_GLYPH":    fmt.Sprintf("%v", FONT_GLYPH),
}

// Quirks select deviations from the reference behaviour.
type Quirks struct {
	// CallPushesReturn stores the return address on call. Without it,
	// call only advances the stack pointer and ret jumps to whatever the
	// slot already held.
	CallPushesReturn bool
}

// Cpu is the simulation context for a CHIP-8 processor.
type Cpu struct {
	Verbose bool   // Set to enable verbose logging.
	Quirks  Quirks // Behavioural deviations.

	V     [REGISTERS]uint8 // Register bank, V[0xf] is the flag register.
	I     uint16           // Index register.
	Delay uint8            // Delay timer. Nothing decrements it.
	Sound uint8            // Sound timer. Nothing decrements it.
	Pc    uint16           // Program counter.
	Stack Stack            // Call stack and stack pointer.
	Ram   [RAM_SIZE]byte   // Font at 0x000, program from 0x200.

	Ticks int // Executed instruction counter.

	Rand *rand.Rand // Source for rnd.
}

// NewCpu creates a CPU in its reset state, with a time seeded random source.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Seed(uint64(time.Now().UnixNano()))
	cpu.Reset()

	return
}

// Seed replaces the random source with a deterministic one.
func (cpu *Cpu) Seed(seed uint64) {
	cpu.Rand = rand.New(rand.NewPCG(seed, seed))
}

func (cpu *Cpu) randomByte() uint8 {
	if cpu.Rand == nil {
		return uint8(rand.Uint32())
	}
	return uint8(cpu.Rand.Uint32())
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers, timers, stack and RAM.
// - Installs the font at the bottom of RAM.
// - Sets the program counter to the program start.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.V[:])
	cpu.I = 0
	cpu.Delay = 0
	cpu.Sound = 0
	cpu.Stack.Reset()
	clear(cpu.Ram[:])
	copy(cpu.Ram[:], Font[:])
	cpu.Pc = PROGRAM_START
	cpu.Ticks = 0
}

// Load copies a program image into RAM at the program start.
func (cpu *Cpu) Load(rom []byte) (err error) {
	if len(rom) > PROGRAM_LIMIT {
		err = ErrRomTooLarge
		return
	}

	copy(cpu.Ram[PROGRAM_START:], rom)

	if cpu.Verbose {
		log.Printf("cpu: loaded %v bytes", len(rom))
	}

	return
}

// Registers returns an iterator over the register names and values.
func (cpu *Cpu) Registers() iter.Seq2[string, int] {
	return func(yield func(name string, value int) bool) {
		for n, v := range cpu.V {
			if !yield(fmt.Sprintf("v%x", n), int(v)) {
				return
			}
		}
		regs := []struct {
			name  string
			value int
		}{
			{"i", int(cpu.I)},
			{"dt", int(cpu.Delay)},
			{"st", int(cpu.Sound)},
			{"pc", int(cpu.Pc)},
			{"sp", int(cpu.Stack.Sp)},
		}
		for _, reg := range regs {
			if !yield(reg.name, reg.value) {
				return
			}
		}
	}
}

// String returns the register file as a single line.
func (cpu *Cpu) String() string {
	var text strings.Builder
	for n, v := range cpu.V {
		fmt.Fprintf(&text, "V%X: %X, ", n, v)
	}
	fmt.Fprintf(&text, "I: %X, PC: %X, SP: %X", cpu.I, cpu.Pc, cpu.Stack.Sp)

	return text.String()
}

// CodeString returns the nibbles of the code at the program counter.
func (cpu *Cpu) CodeString() string {
	code, err := cpu.FetchCode()
	if err != nil {
		return "----"
	}
	return fmt.Sprintf("%04X", uint16(code))
}

// FetchCode reads the two bytes at the program counter.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	if int(cpu.Pc)+1 >= RAM_SIZE {
		err = ErrPcRange
		return
	}

	code = MakeCode(cpu.Ram[cpu.Pc], cpu.Ram[cpu.Pc+1])
	return
}

// Tick executes a single fetch, decode, execute and advance cycle.
func (cpu *Cpu) Tick() (err error) {
	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code)
	return
}

// Execute executes a single decoded instruction at the current
// program counter. On error the CPU is left at the faulting code.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%03x: %v", cpu.Pc, code)
	}

	rule := Dispatch(code)

	next, err := rule.Handler(cpu, code)
	if err != nil {
		return
	}

	cpu.SetPc(next)
	cpu.Ticks += 1

	return
}
