package chip8

// stack is the fixed-depth call stack. It holds return addresses, the
// instruction after each CALL, never raw opcodes.
type stack struct {
	frames [StackSize]uint16
	sp     uint8
}

func (s *stack) push(addr uint16) error {
	if int(s.sp) >= len(s.frames) {
		return ErrStackOverflow
	}
	s.frames[s.sp] = addr
	s.sp++
	return nil
}

func (s *stack) pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackEmpty
	}
	s.sp--
	return s.frames[s.sp], nil
}

func (s *stack) reset() {
	for i := range len(s.frames) {
		s.frames[i] = 0
	}
	s.sp = 0
}
