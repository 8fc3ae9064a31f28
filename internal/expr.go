package internal

import (
	"errors"
	"iter"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/chip8/translate"
)

var ErrExpressionResult = errors.New(translate.From("expression has no result"))

// Eval evaluates a starlark expression, with each symbol predeclared as an int.
func Eval(expr string, symbols iter.Seq2[string, int]) (value starlark.Value, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, symbol := range symbols {
		pred[name] = starlark.MakeInt(symbol)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}

	value, ok := dict["rc"]
	if !ok {
		err = ErrExpressionResult
		return
	}

	return
}

// EvalInt evaluates a starlark expression that must produce an integer.
func EvalInt(expr string, symbols iter.Seq2[string, int]) (value int64, ok bool, err error) {
	rc, err := Eval(expr, symbols)
	if err != nil {
		return
	}

	st_int, is_int := rc.(starlark.Int)
	if !is_int {
		return
	}

	value, ok = st_int.Int64()
	return
}
