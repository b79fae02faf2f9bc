/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package chip8

import "vip8/byteconv"

// Opcode is a single 16-bit CHIP-8 instruction word.
//
//	0x X Y Z W
//	   ^ ^ ^ ^
//	   | | | least-significant nibble: sub-opcode or sprite height
//	   | | second register index (Y)
//	   | first register index (X)
//	   most-significant nibble: instruction family
type Opcode uint16

func (o Opcode) kind() uint8 {
	return uint8((uint16(o) & 0xF000) >> 12)
}

func (o Opcode) x() uint8 {
	return uint8((uint16(o) & 0x0F00) >> 8)
}

func (o Opcode) y() uint8 {
	return uint8((uint16(o) & 0x00F0) >> 4)
}

func (o Opcode) n() uint8 {
	return uint8(uint16(o) & 0x000F)
}

// nn is the low byte of the word, used as an immediate constant.
func (o Opcode) nn() uint8 {
	return uint8(uint16(o) & 0x00FF)
}

// nnn is the low 12 bits of the word, used as a memory address.
func (o Opcode) nnn() uint16 {
	return uint16(o) & 0x0FFF
}

func u16toh(i uint16, n int) string {
	return byteconv.U16toh(i, n)
}

func u8toh(i uint8, n int) string {
	return byteconv.U8toh(i, n)
}

// String renders the standard mnemonic for the opcode. Words that decode to
// no known instruction render as "NOP".
func (op Opcode) String() string {
	var str string

	switch decode(op) {
	case opCLS:
		str = "CLS"
	case opRET:
		str = "RET"
	case opJP:
		str = "JP " + u16toh(op.nnn(), 3)
	case opCALL:
		str = "CALL " + u16toh(op.nnn(), 3)
	case opSEVxNN:
		str = "SE V" + u8toh(op.x(), 1) + ", " + u8toh(op.nn(), 2)
	case opSNEVxNN:
		str = "SNE V" + u8toh(op.x(), 1) + ", " + u8toh(op.nn(), 2)
	case opSEVxVy:
		str = "SE V" + u8toh(op.x(), 1) + ", V" + u8toh(op.y(), 1)
	case opLDVxNN:
		str = "LD V" + u8toh(op.x(), 1) + ", " + u8toh(op.nn(), 2)
	case opADDVxNN:
		str = "ADD V" + u8toh(op.x(), 1) + ", " + u8toh(op.nn(), 2)
	case opLDVxVy:
		str = "LD V" + u8toh(op.x(), 1) + ", V" + u8toh(op.y(), 1)
	case opORVxVy:
		str = "OR V" + u8toh(op.x(), 1) + ", V" + u8toh(op.y(), 1)
	case opANDVxVy:
		str = "AND V" + u8toh(op.x(), 1) + ", V" + u8toh(op.y(), 1)
	case opXORVxVy:
		str = "XOR V" + u8toh(op.x(), 1) + ", V" + u8toh(op.y(), 1)
	case opADDVxVy:
		str = "ADD V" + u8toh(op.x(), 1) + ", V" + u8toh(op.y(), 1)
	case opSUBVxVy:
		str = "SUB V" + u8toh(op.x(), 1) + ", V" + u8toh(op.y(), 1)
	case opSHR:
		str = "SHR V" + u8toh(op.x(), 1)
	case opSUBNVxVy:
		str = "SUBN V" + u8toh(op.x(), 1) + ", V" + u8toh(op.y(), 1)
	case opSHL:
		str = "SHL V" + u8toh(op.x(), 1)
	case opSNEVxVy:
		str = "SNE V" + u8toh(op.x(), 1) + ", V" + u8toh(op.y(), 1)
	case opLDI:
		str = "LD I, " + u16toh(op.nnn(), 3)
	case opJPV0:
		str = "JP V0, " + u16toh(op.nnn(), 3)
	case opRND:
		str = "RND V" + u8toh(op.x(), 1) + ", " + u8toh(op.nn(), 2)
	case opDRW:
		str = "DRW V" + u8toh(op.x(), 1) + ", V" + u8toh(op.y(), 1) + ", " + u8toh(op.n(), 2)
	case opSKP:
		str = "SKP V" + u8toh(op.x(), 1)
	case opSKNP:
		str = "SKNP V" + u8toh(op.x(), 1)
	case opLDVxDT:
		str = "LD V" + u8toh(op.x(), 1) + ", DT"
	case opLDVxK:
		str = "LD V" + u8toh(op.x(), 1) + ", K"
	case opLDDTVx:
		str = "LD DT, V" + u8toh(op.x(), 1)
	case opLDSTVx:
		str = "LD ST, V" + u8toh(op.x(), 1)
	case opADDIVx:
		str = "ADD I, V" + u8toh(op.x(), 1)
	case opLDFVx:
		str = "LD F, V" + u8toh(op.x(), 1)
	case opLDBVx:
		str = "LD B, V" + u8toh(op.x(), 1)
	case opLDIVx:
		str = "LD [I], V" + u8toh(op.x(), 1)
	case opLDVxI:
		str = "LD V" + u8toh(op.x(), 1) + ", [I]"
	default:
		str = "NOP"
	}
	return str
}
