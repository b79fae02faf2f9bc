package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeFields(t *testing.T) {
	op := Opcode(0xABCD)

	assert.Equal(t, uint8(0xA), op.kind())
	assert.Equal(t, uint8(0xB), op.x())
	assert.Equal(t, uint8(0xC), op.y())
	assert.Equal(t, uint8(0xD), op.n())
	assert.Equal(t, uint8(0xCD), op.nn())
	assert.Equal(t, uint16(0xBCD), op.nnn())
}

func TestOpcodeFieldsArePure(t *testing.T) {
	op := Opcode(0xD125)
	for range 3 {
		assert.Equal(t, opDRW, decode(op))
		assert.Equal(t, uint8(0x1), op.x())
		assert.Equal(t, uint8(0x2), op.y())
		assert.Equal(t, uint8(0x5), op.n())
	}
}

func TestOpcodeString(t *testing.T) {
	tests := []struct {
		opcode   Opcode
		mnemonic string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1A2B, "JP A2B"},
		{0x2345, "CALL 345"},
		{0x3AB1, "SE VA, B1"},
		{0x4AB1, "SNE VA, B1"},
		{0x5120, "SE V1, V2"},
		{0x6C42, "LD VC, 42"},
		{0x7C42, "ADD VC, 42"},
		{0x8120, "LD V1, V2"},
		{0x8121, "OR V1, V2"},
		{0x8122, "AND V1, V2"},
		{0x8123, "XOR V1, V2"},
		{0x8124, "ADD V1, V2"},
		{0x8125, "SUB V1, V2"},
		{0x8126, "SHR V1"},
		{0x8127, "SUBN V1, V2"},
		{0x812E, "SHL V1"},
		{0x9120, "SNE V1, V2"},
		{0xA123, "LD I, 123"},
		{0xB123, "JP V0, 123"},
		{0xC1FF, "RND V1, FF"},
		{0xD125, "DRW V1, V2, 05"},
		{0xE19E, "SKP V1"},
		{0xE1A1, "SKNP V1"},
		{0xF107, "LD V1, DT"},
		{0xF10A, "LD V1, K"},
		{0xF115, "LD DT, V1"},
		{0xF118, "LD ST, V1"},
		{0xF11E, "ADD I, V1"},
		{0xF129, "LD F, V1"},
		{0xF133, "LD B, V1"},
		{0xF155, "LD [I], V1"},
		{0xF165, "LD V1, [I]"},
	}

	for _, tt := range tests {
		t.Run(tt.mnemonic, func(t *testing.T) {
			assert.Equal(t, tt.mnemonic, tt.opcode.String())
		})
	}
}

func TestOpcodeStringUnknown(t *testing.T) {
	for _, opcode := range []Opcode{0x0000, 0x0123, 0x5121, 0x8128, 0x812F, 0x9121, 0xE100, 0xF1FF} {
		assert.Equal(t, "NOP", opcode.String(), "opcode %04X", uint16(opcode))
	}
}

func TestDecodeUnknown(t *testing.T) {
	for _, opcode := range []Opcode{0x0000, 0x00E1, 0x5008, 0x8008, 0x9005, 0xE09F, 0xF000, 0xF066} {
		assert.Equal(t, opInvalid, decode(opcode), "opcode %04X", uint16(opcode))
	}
}
