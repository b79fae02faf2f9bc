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

// operation enumerates the instruction set. Decoding an opcode yields one
// operation tag; execution dispatches on the tag in a single switch, so an
// opcode's meaning and its effect live in exactly one place each.
type operation uint8

const (
	opInvalid operation = iota
	opCLS
	opRET
	opJP
	opCALL
	opSEVxNN
	opSNEVxNN
	opSEVxVy
	opLDVxNN
	opADDVxNN
	opLDVxVy
	opORVxVy
	opANDVxVy
	opXORVxVy
	opADDVxVy
	opSUBVxVy
	opSHR
	opSUBNVxVy
	opSHL
	opSNEVxVy
	opLDI
	opJPV0
	opRND
	opDRW
	opSKP
	opSKNP
	opLDVxDT
	opLDVxK
	opLDDTVx
	opLDSTVx
	opADDIVx
	opLDFVx
	opLDBVx
	opLDIVx
	opLDVxI
)

// decode maps an opcode to its operation tag. Total: anything that matches
// no pattern decodes to opInvalid, which executes as a no-op and reports
// ErrInvalidOpcode.
func decode(op Opcode) operation {
	switch op.kind() {
	case 0x0:
		switch uint16(op) {
		case 0x00E0:
			return opCLS
		case 0x00EE:
			return opRET
		}
	case 0x1:
		return opJP
	case 0x2:
		return opCALL
	case 0x3:
		return opSEVxNN
	case 0x4:
		return opSNEVxNN
	case 0x5:
		if op.n() == 0x0 {
			return opSEVxVy
		}
	case 0x6:
		return opLDVxNN
	case 0x7:
		return opADDVxNN
	case 0x8:
		switch op.n() {
		case 0x0:
			return opLDVxVy
		case 0x1:
			return opORVxVy
		case 0x2:
			return opANDVxVy
		case 0x3:
			return opXORVxVy
		case 0x4:
			return opADDVxVy
		case 0x5:
			return opSUBVxVy
		case 0x6:
			return opSHR
		case 0x7:
			return opSUBNVxVy
		case 0xE:
			return opSHL
		}
	case 0x9:
		if op.n() == 0x0 {
			return opSNEVxVy
		}
	case 0xA:
		return opLDI
	case 0xB:
		return opJPV0
	case 0xC:
		return opRND
	case 0xD:
		return opDRW
	case 0xE:
		switch op.nn() {
		case 0x9E:
			return opSKP
		case 0xA1:
			return opSKNP
		}
	case 0xF:
		switch op.nn() {
		case 0x07:
			return opLDVxDT
		case 0x0A:
			return opLDVxK
		case 0x15:
			return opLDDTVx
		case 0x18:
			return opLDSTVx
		case 0x1E:
			return opADDIVx
		case 0x29:
			return opLDFVx
		case 0x33:
			return opLDBVx
		case 0x55:
			return opLDIVx
		case 0x65:
			return opLDVxI
		}
	}
	return opInvalid
}
