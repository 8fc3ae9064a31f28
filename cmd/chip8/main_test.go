package main

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/cpu"
)

func TestAssembleFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "prog.asm")
	source := strings.Join([]string{
		"ld v0, LIMIT",
		"loop: jp loop",
	}, "\n")
	assert.NoError(os.WriteFile(path, []byte(source), 0o644))

	defines := maps.All(map[string]string{"LIMIT": "0x10"})
	prog, err := assembleFile(path, defines, false)
	assert.NoError(err)
	if assert.NotNil(prog) {
		assert.Equal([]byte{0x60, 0x10, 0x12, 0x02}, prog.Binary())
	}

	// The source is closed once assembled, so it can be replaced.
	assert.NoError(os.Remove(path))
	assert.NoError(os.WriteFile(path, []byte("ret"), 0o644))
	prog, err = assembleFile(path, defines, false)
	assert.NoError(err)
	if assert.NotNil(prog) {
		assert.Equal([]byte{0x00, 0xee}, prog.Binary())
	}
}

func TestAssembleFile_Errors(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()

	_, err := assembleFile(filepath.Join(dir, "missing.asm"), maps.All(map[string]string{}), false)
	assert.True(errors.Is(err, fs.ErrNotExist))

	path := filepath.Join(dir, "bad.asm")
	assert.NoError(os.WriteFile(path, []byte("frob v1"), 0o644))
	prog, err := assembleFile(path, maps.All(map[string]string{}), false)
	assert.Nil(prog)
	assert.ErrorIs(err, cpu.ErrInstructionInvalid)
}
