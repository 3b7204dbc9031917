// Copyright 2015 The go-ethereum Authors
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

import (
	"errors"
	"fmt"
)

// StatusCode is the terminal classification of an Execute call, per spec.md §3/§7.
type StatusCode int

const (
	StatusSuccess StatusCode = iota
	StatusRevert
	StatusOutOfGas
	StatusStackUnderflow
	StatusStackOverflow
	StatusInvalidInstruction
	StatusBadJumpDestination
	StatusInvalidMemoryAccess
	StatusCallDepthExceeded
	StatusStaticModeViolation
	StatusPrecompileFailure
	StatusUndefinedInstruction
)

var statusNames = [...]string{
	StatusSuccess:              "success",
	StatusRevert:               "revert",
	StatusOutOfGas:             "out_of_gas",
	StatusStackUnderflow:       "stack_underflow",
	StatusStackOverflow:        "stack_overflow",
	StatusInvalidInstruction:   "invalid_instruction",
	StatusBadJumpDestination:   "bad_jump_destination",
	StatusInvalidMemoryAccess:  "invalid_memory_access",
	StatusCallDepthExceeded:    "call_depth_exceeded",
	StatusStaticModeViolation:  "static_mode_violation",
	StatusPrecompileFailure:    "precompile_failure",
	StatusUndefinedInstruction: "undefined_instruction",
}

func (s StatusCode) String() string {
	if int(s) < 0 || int(s) >= len(statusNames) {
		return "unknown_status"
	}
	return statusNames[s]
}

// Sentinel step errors. These never escape Execute; evm.go maps each to a
// StatusCode before the result is returned, following the teacher's
// "errors are a revert-and-consume-all-gas signal" convention from
// core/vm/interpreter.go.
var (
	ErrOutOfGas             = errors.New("out of gas")
	ErrExecutionReverted    = errors.New("execution reverted")
	ErrInvalidMemoryAccess  = errors.New("invalid memory access")
	ErrCallDepthExceeded    = errors.New("max call depth exceeded")
	ErrWriteProtection      = errors.New("write protection")
	ErrGasUintOverflow      = errors.New("gas uint64 overflow")
	ErrInvalidJump          = errors.New("invalid jump destination")
	ErrReturnDataOutOfBounds = errors.New("return data out of bounds")
)

// ErrStackUnderflow is returned by the block precheck when the stack holds
// fewer elements than the block as a whole requires (its stackReq).
type ErrStackUnderflow struct {
	stackLen int
	required int
}

func (e *ErrStackUnderflow) Error() string {
	return fmt.Sprintf("stack underflow (%d <=> %d)", e.stackLen, e.required)
}

// ErrStackOverflow is returned by the block precheck when the stack's
// maximum growth within the block would exceed the 1024-word capacity.
type ErrStackOverflow struct {
	stackLen int
	limit    int
}

func (e *ErrStackOverflow) Error() string {
	return fmt.Sprintf("stack limit reached %d (%d)", e.stackLen, e.limit)
}

// ErrInvalidOpCode is returned when the opcode has no entry in the active
// revision's jump table.
type ErrInvalidOpCode struct {
	opcode OpCode
}

func (e *ErrInvalidOpCode) Error() string {
	return fmt.Sprintf("invalid opcode: %s", e.opcode)
}

// errStopToken is an internal sentinel used by halting instructions to
// signal the dispatch loop should stop without treating it as a failure.
var errStopToken = errors.New("stop token")

// errInvalidInstructionExecuted backs the INVALID opcode (0xfe), distinct
// from an opcode that is simply absent from the revision's jump table.
var errInvalidInstructionExecuted = errors.New("invalid instruction executed")
