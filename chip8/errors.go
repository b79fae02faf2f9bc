package chip8

import "errors"

// Execution outcomes. Instruction and load failures are reported as values;
// the processor never terminates the program on a bad opcode. Callers are
// expected to stop stepping once Step returns a non-nil error, the core does
// not enforce it.
var (
	// ErrInvalidOpcode reports an opcode matching no known instruction
	// pattern. The program counter has already advanced past it.
	ErrInvalidOpcode = errors.New("invalid opcode")

	// ErrStackEmpty reports a RET with no call frame to return to.
	ErrStackEmpty = errors.New("stack empty")

	// ErrStackOverflow reports a CALL issued with all 16 frames in use.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrMemoryOutOfBounds reports an indexed access through I that would
	// run past the end of memory.
	ErrMemoryOutOfBounds = errors.New("memory address out of bounds")

	// ErrRomTooLarge reports a ROM image larger than the program area.
	ErrRomTooLarge = errors.New("rom exceeds available memory")

	// ErrRomNotFound reports a ROM path that does not exist.
	ErrRomNotFound = errors.New("rom file not found")

	// ErrRomReadFailure reports an I/O failure while reading a ROM file.
	ErrRomReadFailure = errors.New("rom file read failed")
)
