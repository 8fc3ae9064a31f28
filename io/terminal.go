package io

import (
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Terminal switches a tty between its normal mode and raw mode.
type Terminal struct {
	File *os.File

	canAttr unix.Termios
	rawAttr unix.Termios
}

// OpenTerminal records the current attributes of file.
// Files that are not a tty return ErrNotTerminal.
func OpenTerminal(file *os.File) (term *Terminal, err error) {
	term = &Terminal{File: file}

	err = termios.Tcgetattr(file.Fd(), &term.canAttr)
	if err != nil {
		term = nil
		err = ErrNotTerminal
		return
	}

	term.rawAttr = term.canAttr
	termios.Cfmakeraw(&term.rawAttr)

	return
}

// RawMode puts the terminal into raw mode.
func (term *Terminal) RawMode() error {
	return termios.Tcsetattr(term.File.Fd(), termios.TCIFLUSH, &term.rawAttr)
}

// Restore puts the terminal back to the mode found by OpenTerminal.
func (term *Terminal) Restore() error {
	return termios.Tcsetattr(term.File.Fd(), termios.TCIFLUSH, &term.canAttr)
}
