// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"github.com/ezrec/chip8/internal"
)

// equateDepth limits how many equates may refer to one another.
const equateDepth = 16

// Assembler is a two pass assembler for the CHIP-8 instruction set.
//
// Each line holds optional labels (`name:`), then one of:
//   - an instruction, written as in Code.String(), ie `add v1, 0x10`
//   - `.equ NAME VALUE`
//   - `.byte VALUE...` or `.word VALUE...` raw data
//
// Values are numbers, equates, labels, or `$(...)` starlark expressions
// over the equates and labels. Everything after `;` is a comment.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines an equate that is present before the first line.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// line is a source line after the first pass.
type line struct {
	LineNo int
	Text   string
	Addr   int
	Words  []string
}

// Size returns the number of bytes the line assembles to.
func (ln *line) Size() int {
	if len(ln.Words) == 0 {
		return 0
	}
	switch ln.Words[0] {
	case ".byte":
		return len(ln.Words) - 1
	case ".word":
		return 2 * (len(ln.Words) - 1)
	}
	return 2
}

// tokenize splits a line on spaces and commas, keeping `$(...)` intact.
func tokenize(text string) (words []string, err error) {
	for len(text) > 0 {
		c := text[0]
		if c == ' ' || c == '\t' || c == ',' {
			text = text[1:]
			continue
		}

		end := 0
		if strings.HasPrefix(text, "$(") {
			depth := 0
			for end = 1; end < len(text); end++ {
				if text[end] == '(' {
					depth++
				} else if text[end] == ')' {
					depth--
					if depth == 0 {
						break
					}
				}
			}
			if end == len(text) {
				err = ErrParseExpression(text[2:])
				return
			}
			end++
		} else {
			end = strings.IndexAny(text, " \t,")
			if end < 0 {
				end = len(text)
			}
		}

		words = append(words, text[:end])
		text = text[end:]
	}

	return
}

// valueOf returns the value of a single word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	return asm.valueOfDepth(word, 0)
}

func (asm *Assembler) valueOfDepth(word string, depth int) (value int64, err error) {
	if depth > equateDepth {
		err = ErrParseNumber(word)
		return
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err == nil {
		return
	}
	err = nil

	if equate, ok := asm.Equate[word]; ok {
		return asm.valueOfDepth(equate, depth+1)
	}

	if addr, ok := asm.Label[word]; ok {
		value = int64(addr)
		return
	}

	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return asm.parenEval(word[2:len(word)-1], depth+1)
	}

	if identifier.MatchString(word) {
		err = ErrLabelMissing(word)
		return
	}

	err = ErrParseNumber(word)
	return
}

var (
	// identifier matches a single label or equate name.
	identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	// identifiers matches the names an expression may refer to.
	identifiers = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
)

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string, depth int) (value int64, err error) {
	// Only resolve the equates the expression names.
	referenced := map[string]string{}
	for _, name := range identifiers.FindAllString(expr, -1) {
		if equate, ok := asm.Equate[name]; ok {
			referenced[name] = equate
		}
	}

	equates := internal.IterSeq2Map(maps.All(referenced), func(str string) (int, bool) {
		// Ignore equates that are not integers.
		value, err := asm.valueOfDepth(str, depth+1)
		return int(value), err == nil
	})
	labels := maps.All(asm.Label)

	value, ok, err := internal.EvalInt(expr, internal.IterSeq2Concat(equates, labels))
	if err == nil && !ok {
		err = ErrParseExpression(expr)
	}

	return
}

// rangeOf evaluates a word and checks it fits in [0, limit].
func (asm *Assembler) rangeOf(word string, limit int64) (value int64, err error) {
	value, err = asm.valueOf(word)
	if err != nil {
		return
	}

	if value < 0 || value > limit {
		err = ErrValueRange{Value: value, Limit: limit}
		return
	}

	return
}

// register parses a `v0` through `vf` register name.
func register(word string) (reg uint8, ok bool) {
	if len(word) != 2 || (word[0] != 'v' && word[0] != 'V') {
		return
	}

	n, err := strconv.ParseUint(word[1:], 16, 4)
	if err != nil {
		return
	}

	return uint8(n), true
}

// registerOf parses a register name, or an equate naming one.
func (asm *Assembler) registerOf(word string) (reg uint8, ok bool) {
	for range equateDepth {
		reg, ok = register(word)
		if ok {
			return
		}
		word, ok = asm.Equate[word]
		if !ok {
			return
		}
	}

	return 0, false
}

// matchRule attempts to encode words using the rule's syntax template.
// A mismatched shape returns ok == false; a malformed value returns an error.
func (asm *Assembler) matchRule(rule *Rule, words []string) (code Code, ok bool, err error) {
	template := strings.Fields(strings.ReplaceAll(rule.Syntax, ",", " "))
	if len(template) != len(words) {
		return
	}

	word := rule.value
	for n, tmpl := range template {
		arg := words[n]
		switch tmpl {
		case "vx", "vy":
			reg, is_reg := asm.registerOf(arg)
			if !is_reg {
				return
			}
			if tmpl == "vx" {
				word |= uint16(reg) << 8
			} else {
				word |= uint16(reg) << 4
			}
		case "kk":
			var value int64
			value, err = asm.rangeOf(arg, 0xff)
			if err != nil {
				return
			}
			word |= uint16(value)
		case "nnn":
			var value int64
			value, err = asm.rangeOf(arg, 0xfff)
			if err != nil {
				return
			}
			word |= uint16(value)
		default:
			if !strings.EqualFold(tmpl, arg) {
				return
			}
		}
	}

	code = Code(word)
	ok = true
	return
}

// encode assembles the words of one line into bytes.
func (asm *Assembler) encode(words []string) (bytes []byte, err error) {
	switch words[0] {
	case ".byte", ".word":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, word := range words[1:] {
			if words[0] == ".byte" {
				var value int64
				value, err = asm.rangeOf(word, 0xff)
				if err != nil {
					return
				}
				bytes = append(bytes, uint8(value))
			} else {
				var value int64
				value, err = asm.rangeOf(word, 0xffff)
				if err != nil {
					return
				}
				bytes = append(bytes, uint8(value>>8), uint8(value))
			}
		}
		return
	}

	err = ErrInstructionInvalid
	for n := range Rules {
		rule := &Rules[n]
		if rule.Op == OP_NOP {
			continue
		}

		code, ok, rule_err := asm.matchRule(rule, words)
		if rule_err != nil {
			err = rule_err
			continue
		}
		if ok {
			err = nil
			bytes = []byte{uint8(uint16(code) >> 8), uint8(code)}
			return
		}
	}

	return
}

// scanLine performs the first pass over a line: labels and equates.
func (asm *Assembler) scanLine(ln *line) (err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", ln.LineNo)

	words, err := tokenize(ln.Text)
	if err != nil {
		return
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if _, ok := asm.Label[label]; ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = ln.Addr
		words = words[1:]
	}

	if len(words) > 0 && words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		if _, ok := asm.Equate[words[1]]; ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = nil
	}

	ln.Words = words
	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var ln *line

	defer func() {
		if err != nil && ln != nil {
			err = &ErrSyntax{LineNo: ln.LineNo, Line: ln.Text, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(_cpu_defines)
	maps.Copy(asm.Equate, asm.predefine)

	var lines []*line
	var lineno int
	addr := PROGRAM_START

	for scanner.Scan() {
		lineno += 1
		text := scanner.Text()

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.SplitN(text, ";", 2)
		ln = &line{LineNo: lineno, Text: strings.TrimSpace(text_comment[0]), Addr: addr}

		err = asm.scanLine(ln)
		if err != nil {
			return
		}

		addr += ln.Size()
		lines = append(lines, ln)
	}

	err = scanner.Err()
	if err != nil {
		ln = nil
		return
	}

	if addr-PROGRAM_START > PROGRAM_LIMIT {
		err = ErrProgramTooLarge
		return
	}

	prog = &Program{}
	for _, ln = range lines {
		if len(ln.Words) == 0 {
			continue
		}

		asm.Equate["LINENO"] = fmt.Sprintf("%v", ln.LineNo)

		var bytes []byte
		bytes, err = asm.encode(ln.Words)
		if err != nil {
			prog = nil
			return
		}

		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo: ln.LineNo,
			Addr:   ln.Addr,
			Words:  ln.Words,
			Bytes:  bytes,
		})
	}

	return
}

// Disassemble returns one line of assembly per two bytes of the image,
// as loaded at the program start.
func Disassemble(rom []byte) (lines []string) {
	for n := 0; n < len(rom); n += 2 {
		if n+1 == len(rom) {
			lines = append(lines, fmt.Sprintf(".byte 0x%02x", rom[n]))
			break
		}
		lines = append(lines, MakeCode(rom[n], rom[n+1]).String())
	}

	return
}
