// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import "github.com/holiman/uint256"

// operation is the per-opcode metadata the analyzer consults while building
// basic blocks (spec.md §4.1). constantGas is the portion the block-header
// precheck charges up front; any further cost (memory expansion, copy
// length, exponent size, call/create gas forwarding, ...) is computed and
// charged by execute itself, per spec.md §4.4.
type operation struct {
	execute     executionFunc
	constantGas uint64

	numIn  int // stack items popped
	numOut int // stack items pushed

	halts  bool // STOP, RETURN, REVERT, SELFDESTRUCT, INVALID
	jumps  bool // JUMP, JUMPI
	writes bool // state-modifying: SSTORE, LOGn, CREATE*, SELFDESTRUCT, CALL-with-value
}

// JumpTable maps every possible opcode byte to its operation definition for
// one EVM revision. An undefined entry reports StatusUndefinedInstruction.
type JumpTable [256]*operation

func copyJumpTable(src *JumpTable) *JumpTable {
	dst := new(JumpTable)
	for i, op := range src {
		if op == nil {
			continue
		}
		cpy := *op
		dst[i] = &cpy
	}
	return dst
}

// memRange adds off+size as uint64, reporting overflow. Used by every
// opcode that touches memory to validate the (offset, length) pair popped
// from the stack before any expansion gas is charged.
func memRange(off, size *uint256.Int) (uint64, bool) {
	if size.IsZero() {
		return 0, false
	}
	if !size.IsUint64() || !off.IsUint64() {
		return 0, true
	}
	sum, overflow := new(uint256.Int).AddOverflow(off, size)
	if overflow || !sum.IsUint64() {
		return 0, true
	}
	return sum.Uint64(), false
}
