package io

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/cpu"
)

func TestLoadRom(t *testing.T) {
	assert := assert.New(t)

	rom, err := LoadRom(bytes.NewReader([]byte{0x60, 0x05, 0x70, 0x03}))
	assert.NoError(err)
	assert.Equal([]byte{0x60, 0x05, 0x70, 0x03}, rom)

	rom, err = LoadRom(bytes.NewReader(nil))
	assert.NoError(err)
	assert.Len(rom, 0)
}

func TestLoadRom_Limit(t *testing.T) {
	assert := assert.New(t)

	rom, err := LoadRom(bytes.NewReader(make([]byte, cpu.PROGRAM_LIMIT)))
	assert.NoError(err)
	assert.Len(rom, cpu.PROGRAM_LIMIT)

	rom, err = LoadRom(bytes.NewReader(make([]byte, cpu.PROGRAM_LIMIT+1)))
	assert.ErrorIs(err, cpu.ErrRomTooLarge)
	assert.Nil(rom)
}

func TestOpenRom(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "test.ch8")
	err := os.WriteFile(path, []byte{0x12, 0x00}, 0o644)
	assert.NoError(err)

	rom, err := OpenRom(path)
	assert.NoError(err)
	assert.Equal([]byte{0x12, 0x00}, rom)

	_, err = OpenRom(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.True(errors.Is(err, fs.ErrNotExist))
}
