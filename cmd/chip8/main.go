// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"iter"
	"log"
	"os"
	"os/signal"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/io"
	"github.com/ezrec/chip8/translate"
)

// assembleFile assembles the source at path, with defines predefined.
func assembleFile(path string, defines iter.Seq2[string, string], verbose bool) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	for name, value := range defines {
		asm.Predefine(name, value)
	}

	prog, err = asm.Parse(inf)
	return
}

// drawFont shows the font glyphs installed in RAM, with the terminal
// in raw mode while drawing.
func drawFont(emu *emulator.Emulator) (err error) {
	term, err := io.OpenTerminal(os.Stdout)
	if err == nil {
		err = term.RawMode()
		if err != nil {
			return
		}
		defer term.Restore()
	}

	disp := &io.Display{Output: os.Stdout}
	err = disp.Clear()
	if err != nil {
		return
	}

	err = disp.DrawFont(emu.Cpu.Ram[:], 1, 1)
	if err != nil {
		return
	}

	_, err = fmt.Fprint(os.Stdout, "\r\n")
	return
}

func main() {
	var verbose bool
	var limit int
	var hz int
	var seed uint64
	var callPush bool
	var watch string
	var assemble bool
	var disasm bool
	var font bool

	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.IntVar(&limit, "n", 0, "Instructions to run, 0 for no limit")
	flag.IntVar(&hz, "hz", emulator.DEFAULT_HZ, "Instructions per second, 0 for no pacing")
	flag.Uint64Var(&seed, "seed", 0, "Random seed for rnd, 0 for time based")
	flag.BoolVar(&callPush, "call-push", false, "call stores its return address")
	flag.StringVar(&watch, "watch", "", "Stop when this expression over the registers is true")
	flag.BoolVar(&assemble, "asm", false, "ROM is assembler source")
	flag.BoolVar(&disasm, "disasm", false, "Disassemble the ROM, do not execute")
	flag.BoolVar(&font, "font", false, "Draw the font glyphs before executing")

	flag.Usage = func() {
		translate.Fprintf(flag.CommandLine.Output(), "usage: %v [options] ROM\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		translate.Fprintf(flag.CommandLine.Output(), "%v: no input file\n", os.Args[0])
		flag.Usage()
		os.Exit(2)
	}

	path := flag.Arg(0)

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Watch = watch
	emu.Cpu.Quirks.CallPushesReturn = callPush
	if seed != 0 {
		emu.Cpu.Seed(seed)
	}

	if assemble {
		var err error
		emu.Program, err = assembleFile(path, emu.Defines(), verbose)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
	} else {
		rom, err := io.OpenRom(path)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
		emu.Rom = rom
	}

	err := emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	if disasm {
		for n, text := range cpu.Disassemble(emu.Rom) {
			fmt.Printf("%03x: %v\n", cpu.PROGRAM_START+2*n, text)
		}
		return
	}

	if font {
		err = drawFont(emu)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = emu.Run(ctx, hz, limit)
	stop()

	fmt.Println(emu.Cpu.String())

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("%v: %v %v", path, emu.Cpu.CodeString(), err)
	}
}
