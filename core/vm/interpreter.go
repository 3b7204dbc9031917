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

import (
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/holiman/uint256"
)

// interpreterStepCounter mirrors the teacher's opcodeCommitInterruptCounter:
// a cheap registered counter that lets operators watch dispatch-loop
// throughput without instrumenting every call site.
var interpreterStepCounter = metrics.NewRegisteredCounter("vm/interpreter/steps", nil)

const maxCallDepth = 1024

// executionState is the mutable runtime of spec.md §3, owned exclusively by
// one Execute invocation. Nested calls build their own executionState; none
// of its fields are ever shared across invocations.
type executionState struct {
	stack  *Stack
	memory *Memory

	gasLeft int64

	pc     int
	instrs []instruction

	analysis *Analysis
	table    *JumpTable
	rawCode  []byte

	status StatusCode

	outputOffset uint64
	outputSize   uint64
	output       []byte

	returnData []byte

	msg      *Message
	host     Host
	rev      Revision
	readOnly bool

	gasRefund int64
}

func newExecutionState(analysis *Analysis, table *JumpTable, host Host, rev Revision, msg *Message, code []byte) *executionState {
	return &executionState{
		stack:    newstack(),
		memory:   NewMemory(),
		gasLeft:  msg.Gas,
		instrs:   analysis.instructions,
		analysis: analysis,
		table:    table,
		rawCode:  code,
		host:     host,
		rev:      rev,
		msg:      msg,
		readOnly: msg.Static,
	}
}

func (state *executionState) release() {
	returnStack(state.stack)
}

// useGas deducts amount from gasLeft, failing with ErrOutOfGas on
// underflow (spec.md §3 invariant: gas_left ≥ 0 on every successful step).
func (state *executionState) useGas(amount uint64) error {
	if amount > uint64(state.gasLeft) {
		return ErrOutOfGas
	}
	state.gasLeft -= int64(amount)
	return nil
}

// requireNotStatic fails with write-protection once, for any state-changing
// opcode reached while the message is flagged static (spec.md §4.5, S7).
func (state *executionState) requireNotStatic() error {
	if state.readOnly {
		return ErrWriteProtection
	}
	return nil
}

// ensureMemory grows memory to cover newSize bytes, charging the quadratic
// expansion cost of spec.md §4.2 before the access it guards.
func (state *executionState) ensureMemory(newSize uint64) error {
	if newSize == 0 || uint64(state.memory.Len()) >= newSize {
		return nil
	}
	words := toWordSize(newSize)
	cost, grows := memoryExpansionCost(uint64(state.memory.Len()), words*32)
	if grows {
		if err := state.useGas(cost); err != nil {
			return err
		}
	}
	state.memory.Resize(words * 32)
	return nil
}

// memoryRequiredSize computes the byte offset memory must be grown to in
// order to satisfy a (offset, size) pair popped from the stack, failing on
// the kind of overflow a malicious 256-bit offset could otherwise trigger.
func memoryRequiredSize(off, size *uint256.Int) (uint64, error) {
	sum, overflow := memRange(off, size)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return sum, nil
}

// run drives the dispatch loop of spec.md §4.3: fetch, post-increment,
// invoke. A non-nil error — including the errStopToken halting sentinel —
// ends the loop; evm.go classifies it into a StatusCode at the boundary.
func (state *executionState) run() error {
	for {
		instr := &state.instrs[state.pc]
		state.pc++
		if _, err := instr.fn(state, &instr.arg); err != nil {
			return err
		}
	}
}
