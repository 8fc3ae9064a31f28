// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"iter"
	"log"
	"maps"
	"strconv"
	"time"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/internal"
)

const (
	DEFAULT_HZ = 500 // Default instructions per second.
)

var _emulator_defines = map[string]string{
	"DEFAULT_HZ": fmt.Sprintf("%v", DEFAULT_HZ),
}

// Emulator state. CPU + loaded program.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Listing of the program, if it was assembled.
	Rom      []byte       // Image loaded at the program start on reset.

	// Watch is a starlark expression over Symbols(). When it is true
	// after an instruction, Tick reports done.
	Watch string
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Symbols returns an iterator over the registers, the tick counter, and
// the numeric defines.
func (emu *Emulator) Symbols() iter.Seq2[string, int] {
	ticks := func(yield func(string, int) bool) {
		yield("ticks", emu.Cpu.Ticks)
	}

	defines := internal.IterSeq2Map(emu.Defines(), func(str string) (int, bool) {
		value, err := strconv.ParseInt(str, 0, 64)
		return int(value), err == nil
	})

	return internal.IterSeq2Concat(emu.Cpu.Registers(), ticks, defines)
}

// Reset the CPU, and load the ROM image. An assembled program
// replaces the ROM image.
func (emu *Emulator) Reset() (err error) {
	if emu.Program != nil && len(emu.Program.Opcodes) != 0 {
		emu.Rom = emu.Program.Binary()
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Rom)
	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line number of the current instruction,
// or 0 when there is no listing for it.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// watched evaluates the watch expression.
func (emu *Emulator) watched() (done bool, err error) {
	value, err := internal.Eval(emu.Watch, emu.Symbols())
	if err != nil {
		return
	}

	done = bool(value.Truth())
	return
}

// Tick performs a single instruction of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	if len(emu.Watch) != 0 {
		done, err = emu.watched()
		if done && emu.Verbose {
			log.Printf("emulator: watch %q at pc 0x%03x", emu.Watch, emu.Cpu.Pc)
		}
	}

	return
}

// Run ticks the emulator until the watch expression is true, limit
// instructions have run, or ctx is done. A limit of 0 runs without
// bound. When hz is positive, instructions are paced to hz per second.
func (emu *Emulator) Run(ctx context.Context, hz int, limit int) (err error) {
	// Rates above one instruction per nanosecond run unpaced.
	var pacing <-chan time.Time
	if hz > 0 && time.Second/time.Duration(hz) > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(hz))
		defer ticker.Stop()
		pacing = ticker.C
	}

	for n := 0; limit == 0 || n < limit; n++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}

		if pacing != nil {
			select {
			case <-ctx.Done():
				err = ctx.Err()
				return
			case <-pacing:
			}
		}
	}

	return
}
