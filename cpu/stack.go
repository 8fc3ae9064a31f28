package cpu

const (
	STACK_LIMIT = 16 // Number of return address slots.
)

// Stack is the CHIP-8 call stack. Sp indexes the top slot; Sp == 0 means
// empty, so slot 0 is never written by Push.
type Stack struct {
	Sp   uint8
	Data [STACK_LIMIT]uint16
}

// Push advances the stack pointer and stores value in the new top slot.
func (s *Stack) Push(value uint16) (err error) {
	err = s.Advance()
	if err != nil {
		return
	}

	s.Data[s.Sp] = value
	return
}

// Advance moves the stack pointer up one slot, leaving the slot contents alone.
func (s *Stack) Advance() (err error) {
	if s.Full() {
		err = ErrStackFull
		return
	}

	s.Sp++
	return
}

// Pop returns the top slot and moves the stack pointer down.
func (s *Stack) Pop() (value uint16, err error) {
	if s.Empty() {
		err = ErrStackEmpty
		return
	}

	value = s.Data[s.Sp]
	s.Sp--
	return
}

func (s *Stack) Empty() bool {
	return s.Sp == 0
}

func (s *Stack) Full() bool {
	return int(s.Sp) == STACK_LIMIT-1
}

func (s *Stack) Peek() (value uint16, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[s.Sp], true
}

func (s *Stack) Reset() {
	s.Sp = 0
	clear(s.Data[:])
}
