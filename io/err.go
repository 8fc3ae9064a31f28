package io

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Terminal errors
	ErrNotTerminal = errors.New(f("not a terminal"))
)
