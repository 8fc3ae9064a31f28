package io

import (
	"io"
	"os"

	"github.com/ezrec/chip8/cpu"
)

// LoadRom reads an entire ROM image. Images that would not fit between
// the program start and the end of memory return cpu.ErrRomTooLarge.
func LoadRom(r io.Reader) (rom []byte, err error) {
	rom, err = io.ReadAll(io.LimitReader(r, cpu.PROGRAM_LIMIT+1))
	if err != nil {
		rom = nil
		return
	}

	if len(rom) > cpu.PROGRAM_LIMIT {
		rom = nil
		err = cpu.ErrRomTooLarge
		return
	}

	return
}

// OpenRom reads the ROM image at path.
func OpenRom(path string) (rom []byte, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return LoadRom(inf)
}
