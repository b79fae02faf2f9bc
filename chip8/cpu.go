// Package chip8 implements the CHIP-8 virtual machine: 4KB of memory, 16
// 8-bit registers, a 16-frame call stack, two timers, a 16-key pad and a
// 64x32 monochrome framebuffer, driven one fetch-decode-execute step at a
// time. The package contains no pacing, rendering or input handling; hosts
// call Step at whatever rate they want and read the public state back.
package chip8

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"
)

const (
	RegisterCount       = 16
	KeyCount            = 16
	StackSize           = 16
	MemorySize          = 4096
	FontStartAddress    = 0x50
	ProgramStartAddress = 0x200
	MaxROMSize          = MemorySize - ProgramStartAddress
	CarryFlag           = 0xF

	Width  int = 64
	Height int = 32
	Area   int = Width * Height
)

// Step info flags, reported alongside the execution outcome so the caller
// can drive audio and rendering without polling every register.
const (
	Delay uint8 = 1 << iota
	Sound
	Redraw
)

var fontSet = []byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Quirks selects between historical interpreter dialects for the three
// instruction groups whose behavior diverged after the COSMAC VIP. The zero
// value matches the CHIP-48/SUPER-CHIP lineage for shifts and block copies
// and the original VIP jump.
type Quirks struct {
	// ShiftUsesVY makes SHR/SHL copy VY into VX before shifting (VIP
	// behavior). Off, the shift reads and writes VX and ignores VY.
	ShiftUsesVY bool

	// JumpUsesVX makes 0xBXNN jump to XNN + VX. Off, 0xBNNN jumps to
	// NNN + V0 (VIP behavior).
	JumpUsesVX bool

	// IndexAdvance makes FX55/FX65 leave I at I + X + 1 after the block
	// copy (VIP behavior). Off, I is unchanged.
	IndexAdvance bool
}

// Processor is a complete CHIP-8 machine: memory, registers, timers, call
// stack, keypad and framebuffer. The zero value is not ready to run; call
// Reset before loading a program. A single goroutine steps the processor;
// only the keypad may be written from other goroutines.
type Processor struct {
	memory  [MemorySize]byte
	display [Area]byte
	v       [RegisterCount]byte
	stack   stack
	keys    atomic.Uint32
	pc      uint16
	i       uint16
	delay   uint8
	sound   uint8
	quirks  Quirks
	rng     *rand.Rand
}

// Reset zeroes memory, registers, timers, keypad and framebuffer, reloads
// the fontset and points the program counter at the program area. The quirk
// configuration and random source survive a reset.
func (p *Processor) Reset() {
	for i := range len(p.memory) {
		p.memory[i] = 0
	}

	for i := range len(p.v) {
		p.v[i] = 0
	}

	for i := range len(p.display) {
		p.display[i] = 0
	}

	p.stack.reset()
	p.keys.Store(0)
	p.pc = ProgramStartAddress
	p.i = 0
	p.delay = 0
	p.sound = 0

	copy(p.memory[FontStartAddress:], fontSet)
}

// Load copies a ROM image verbatim into the program area. Images larger
// than the program area are rejected with ErrRomTooLarge and memory is left
// untouched.
func (p *Processor) Load(b []byte) error {
	if len(b) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrRomTooLarge, len(b), MaxROMSize)
	}
	copy(p.memory[ProgramStartAddress:], b)
	return nil
}

// SetQuirks reconfigures the dialect switches. Safe at any point between
// steps; the flags are read only during instruction execution.
func (p *Processor) SetQuirks(q Quirks) {
	p.quirks = q
}

func (p *Processor) Quirks() Quirks {
	return p.quirks
}

// Seed replaces the random source used by RND with a deterministic one.
// The processor otherwise seeds itself once, on the first RND executed.
func (p *Processor) Seed(seed uint64) {
	p.rng = rand.New(rand.NewPCG(seed, 0))
}

func (p *Processor) randomByte() byte {
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return byte(p.rng.Uint32N(256))
}

// SetKey presses or releases one keypad key. Callable from a goroutine
// other than the stepping one.
func (p *Processor) SetKey(key uint8, pressed bool) {
	bit := uint32(1) << (key & 0x0F)
	if pressed {
		p.keys.Or(bit)
	} else {
		p.keys.And(^bit)
	}
}

// Key reports whether one keypad key is currently pressed.
func (p *Processor) Key(key uint8) bool {
	return p.keys.Load()&(uint32(1)<<(key&0x0F)) != 0
}

func (p *Processor) Register(i uint8) byte {
	return p.v[i&0x0F]
}

// Registers returns a snapshot of V0..VF.
func (p *Processor) Registers() [RegisterCount]byte {
	return p.v
}

func (p *Processor) ProgramCounter() uint16 {
	return p.pc
}

func (p *Processor) Index() uint16 {
	return p.i
}

func (p *Processor) DelayTimer() uint8 {
	return p.delay
}

func (p *Processor) SoundTimer() uint8 {
	return p.sound
}

func (p *Processor) StackDepth() int {
	return int(p.stack.sp)
}

// StackFrames returns a snapshot of the in-use call frames, innermost last.
func (p *Processor) StackFrames() []uint16 {
	frames := make([]uint16, p.stack.sp)
	copy(frames, p.stack.frames[:p.stack.sp])
	return frames
}

// Display returns the framebuffer, row-major with width 64, one byte per
// pixel holding 0 or 1. The slice aliases the processor's own buffer.
func (p *Processor) Display() []byte {
	return p.display[:]
}

// OpcodeAt reads the big-endian instruction word at the given address.
// Addresses are clipped to the memory range.
func (p *Processor) OpcodeAt(addr uint16) Opcode {
	high := uint16(p.memory[addr&(MemorySize-1)])
	low := uint16(p.memory[(addr+1)&(MemorySize-1)])
	return Opcode((high << 8) | low)
}

func (p *Processor) tickTimers() {
	if p.delay > 0 {
		p.delay--
	}
	if p.sound > 0 {
		p.sound--
	}
}

// Step runs one fetch-decode-execute cycle: fetch the word at PC, advance
// PC by 2 (control-flow instructions overwrite this default), tick both
// timers, then execute. Pacing is entirely the caller's: timers count steps,
// not wall-clock time. The returned opcode carries the mnemonic for
// diagnostics; a non-nil error is the execution outcome and the caller is
// expected to stop stepping on it.
func (p *Processor) Step() (Opcode, uint8, error) {
	opcode := p.OpcodeAt(p.pc)
	p.pc += 2

	p.tickTimers()

	var info uint8
	err := p.execute(opcode, &info)

	if p.sound > 0 {
		info |= Sound
	}
	if p.delay > 0 {
		info |= Delay
	}
	return opcode, info, err
}

// execute dispatches one decoded instruction. Failure checks precede
// mutation: an instruction that returns an error has not touched memory or
// the framebuffer.
func (p *Processor) execute(op Opcode, info *uint8) error {
	switch decode(op) {
	case opCLS:
		clearScreen(p, info)
	case opRET:
		return returnFromSubroutine(p)
	case opJP:
		jumpToLocation(p, op.nnn())
	case opCALL:
		return callSubroutine(p, op.nnn())
	case opSEVxNN:
		stepIfXEqualsNN(p, op.x(), op.nn())
	case opSNEVxNN:
		stepIfXNotEqualsNN(p, op.x(), op.nn())
	case opSEVxVy:
		stepIfXEqualsY(p, op.x(), op.y())
	case opLDVxNN:
		setXToNN(p, op.x(), op.nn())
	case opADDVxNN:
		addNNToX(p, op.x(), op.nn())
	case opLDVxVy:
		setXToY(p, op.x(), op.y())
	case opORVxVy:
		orXY(p, op.x(), op.y())
	case opANDVxVy:
		andXY(p, op.x(), op.y())
	case opXORVxVy:
		xorXY(p, op.x(), op.y())
	case opADDVxVy:
		addXY(p, op.x(), op.y())
	case opSUBVxVy:
		subtractYFromX(p, op.x(), op.y())
	case opSHR:
		shiftRight(p, op.x(), op.y())
	case opSUBNVxVy:
		subtractXFromY(p, op.x(), op.y())
	case opSHL:
		shiftLeft(p, op.x(), op.y())
	case opSNEVxVy:
		stepIfXNotEqualsY(p, op.x(), op.y())
	case opLDI:
		setIToNNN(p, op.nnn())
	case opJPV0:
		jumpWithOffset(p, op)
	case opRND:
		setXToRandom(p, op.x(), op.nn())
	case opDRW:
		return drawSprite(p, op.x(), op.y(), op.n(), info)
	case opSKP:
		stepIfKeyDown(p, op.x())
	case opSKNP:
		stepIfKeyUp(p, op.x())
	case opLDVxDT:
		setXToDelay(p, op.x())
	case opLDVxK:
		pollKeyIntoX(p, op.x())
	case opLDDTVx:
		setDelayToX(p, op.x())
	case opLDSTVx:
		setSoundToX(p, op.x())
	case opADDIVx:
		addXToIndex(p, op.x())
	case opLDFVx:
		setIndexToGlyph(p, op.x())
	case opLDBVx:
		return binaryCodedDecimal(p, op.x())
	case opLDIVx:
		return storeRegisters(p, op.x())
	case opLDVxI:
		return loadRegisters(p, op.x())
	default:
		return ErrInvalidOpcode
	}
	return nil
}

func clearScreen(p *Processor, info *uint8) {
	for i := range p.display {
		p.display[i] = 0
	}
	*info |= Redraw
}

func callSubroutine(p *Processor, nnn uint16) error {
	if err := p.stack.push(p.pc); err != nil {
		return err
	}
	p.pc = nnn
	return nil
}

func returnFromSubroutine(p *Processor) error {
	addr, err := p.stack.pop()
	if err != nil {
		return err
	}
	p.pc = addr
	return nil
}

func jumpToLocation(p *Processor, nnn uint16) {
	p.pc = nnn
}

func jumpWithOffset(p *Processor, op Opcode) {
	if p.quirks.JumpUsesVX {
		p.pc = op.nnn() + uint16(p.v[op.x()])
		return
	}
	p.pc = op.nnn() + uint16(p.v[0x0])
}

func stepIfXEqualsNN(p *Processor, x, nn uint8) {
	if p.v[x] == nn {
		p.pc += 2
	}
}

func stepIfXNotEqualsNN(p *Processor, x, nn uint8) {
	if p.v[x] != nn {
		p.pc += 2
	}
}

func stepIfXEqualsY(p *Processor, x, y uint8) {
	if p.v[x] == p.v[y] {
		p.pc += 2
	}
}

func stepIfXNotEqualsY(p *Processor, x, y uint8) {
	if p.v[x] != p.v[y] {
		p.pc += 2
	}
}

func setXToNN(p *Processor, x, nn uint8) {
	p.v[x] = nn
}

func addNNToX(p *Processor, x, nn uint8) {
	p.v[x] += nn
}

func setXToY(p *Processor, x, y uint8) {
	p.v[x] = p.v[y]
}

func orXY(p *Processor, x, y uint8) {
	p.v[x] |= p.v[y]
}

func andXY(p *Processor, x, y uint8) {
	p.v[x] &= p.v[y]
}

func xorXY(p *Processor, x, y uint8) {
	p.v[x] ^= p.v[y]
}

// The arithmetic group computes its flag from the pre-mutation operands and
// writes VF last. X or Y may be 0xF, so a flag written first would be
// clobbered and a flag computed late would read a corrupted operand.

func addXY(p *Processor, x, y uint8) {
	sum := uint16(p.v[x]) + uint16(p.v[y])
	var carry byte
	if sum > 0xFF {
		carry = 1
	}
	p.v[x] = byte(sum)
	p.v[CarryFlag] = carry
}

func subtractYFromX(p *Processor, x, y uint8) {
	vx, vy := p.v[x], p.v[y]
	var noBorrow byte
	if vx >= vy {
		noBorrow = 1
	}
	p.v[x] = vx - vy
	p.v[CarryFlag] = noBorrow
}

func subtractXFromY(p *Processor, x, y uint8) {
	vx, vy := p.v[x], p.v[y]
	var noBorrow byte
	if vy >= vx {
		noBorrow = 1
	}
	p.v[x] = vy - vx
	p.v[CarryFlag] = noBorrow
}

func shiftRight(p *Processor, x, y uint8) {
	src := p.v[x]
	if p.quirks.ShiftUsesVY {
		src = p.v[y]
	}
	p.v[x] = src >> 1
	p.v[CarryFlag] = src & 0x01
}

func shiftLeft(p *Processor, x, y uint8) {
	src := p.v[x]
	if p.quirks.ShiftUsesVY {
		src = p.v[y]
	}
	p.v[x] = src << 1
	p.v[CarryFlag] = (src & 0x80) >> 7
}

func setIToNNN(p *Processor, nnn uint16) {
	p.i = nnn
}

func setXToRandom(p *Processor, x, nn uint8) {
	p.v[x] = p.randomByte() & nn
}

// drawSprite XORs an 8-wide, n-tall sprite read from memory at I onto the
// framebuffer at (VX, VY). Coordinates wrap modulo the screen dimensions.
// VF reports whether any set sprite bit erased a lit pixel.
func drawSprite(p *Processor, x, y, n uint8, info *uint8) error {
	if uint32(p.i)+uint32(n) > MemorySize {
		return fmt.Errorf("%w: sprite read of %d bytes at %#03X", ErrMemoryOutOfBounds, n, p.i)
	}

	originX := uint16(p.v[x])
	originY := uint16(p.v[y])

	p.v[CarryFlag] = 0

	for row := range uint16(n) {
		sprite := p.memory[p.i+row]

		for col := range uint16(8) {
			if sprite&(0x80>>col) == 0 {
				continue
			}

			posX := (originX + col) & uint16(Width-1)
			posY := (originY + row) & uint16(Height-1)
			index := posY*uint16(Width) + posX

			p.display[index] ^= 1
			if p.display[index] == 0 {
				// A set bit landed on a lit pixel and erased it.
				p.v[CarryFlag] = 1
			}
		}
	}

	*info |= Redraw
	return nil
}

func stepIfKeyDown(p *Processor, x uint8) {
	if p.Key(p.v[x]) {
		p.pc += 2
	}
}

func stepIfKeyUp(p *Processor, x uint8) {
	if !p.Key(p.v[x]) {
		p.pc += 2
	}
}

func setXToDelay(p *Processor, x uint8) {
	p.v[x] = p.delay
}

// pollKeyIntoX scans the keypad from key 0x0 upward and stores the first
// pressed key in VX. With several keys down the lowest index wins. With no
// key down the program counter is moved back onto this instruction, so the
// next step refetches it: a busy-wait across steps, not a blocking call.
func pollKeyIntoX(p *Processor, x uint8) {
	for key := uint8(0); key < KeyCount; key++ {
		if p.Key(key) {
			p.v[x] = key
			return
		}
	}
	p.pc -= 2
}

func setDelayToX(p *Processor, x uint8) {
	p.delay = p.v[x]
}

func setSoundToX(p *Processor, x uint8) {
	p.sound = p.v[x]
}

// addXToIndex leaves I unmasked. An I pushed past 0xFFF surfaces as
// ErrMemoryOutOfBounds on the next indexed access, not here.
func addXToIndex(p *Processor, x uint8) {
	p.i += uint16(p.v[x])
}

func setIndexToGlyph(p *Processor, x uint8) {
	digit := uint16(p.v[x] & 0x0F)
	p.i = FontStartAddress + digit*5
}

func binaryCodedDecimal(p *Processor, x uint8) error {
	if uint32(p.i)+3 > MemorySize {
		return fmt.Errorf("%w: BCD write of 3 bytes at %#03X", ErrMemoryOutOfBounds, p.i)
	}

	// Double Dabble: shift the value in bit by bit, adding 3 to any BCD
	// nibble that reaches 5 so the next shift carries correctly.
	var bcd uint32
	val := uint32(p.v[x])

	for i := range 8 {
		if (bcd & 0x00F) >= 0x005 {
			bcd += 0x003
		}
		if (bcd & 0x0F0) >= 0x050 {
			bcd += 0x030
		}
		if (bcd & 0xF00) >= 0x500 {
			bcd += 0x300
		}
		bcd = (bcd << 1) | ((val >> (7 - i)) & 1)
	}

	p.memory[p.i] = byte((bcd >> 8) & 0xF)   // Hundreds
	p.memory[p.i+1] = byte((bcd >> 4) & 0xF) // Tens
	p.memory[p.i+2] = byte(bcd & 0xF)        // Ones
	return nil
}

func storeRegisters(p *Processor, x uint8) error {
	if uint32(p.i)+uint32(x)+1 > MemorySize {
		return fmt.Errorf("%w: register store of %d bytes at %#03X", ErrMemoryOutOfBounds, x+1, p.i)
	}

	for i := uint8(0); i <= x; i++ {
		p.memory[p.i+uint16(i)] = p.v[i]
	}
	if p.quirks.IndexAdvance {
		p.i += uint16(x) + 1
	}
	return nil
}

func loadRegisters(p *Processor, x uint8) error {
	if uint32(p.i)+uint32(x)+1 > MemorySize {
		return fmt.Errorf("%w: register load of %d bytes at %#03X", ErrMemoryOutOfBounds, x+1, p.i)
	}

	for i := uint8(0); i <= x; i++ {
		p.v[i] = p.memory[p.i+uint16(i)]
	}
	if p.quirks.IndexAdvance {
		p.i += uint16(x) + 1
	}
	return nil
}
