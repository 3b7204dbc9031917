package vm

import "github.com/holiman/uint256"

// opBlockHeader is the synthetic instruction emitted at every basic-block
// entry (spec.md §4.1/§4.4). It performs the entire block's gas and
// stack-depth precheck in one step so the opcodes inside the block can skip
// their own base-gas/arity checks.
func opBlockHeader(state *executionState, arg *instrArg) ([]byte, error) {
	h := arg.header
	if uint64(state.gasLeft) < h.gasCost {
		return nil, ErrOutOfGas
	}
	if state.stack.Len() < h.stackReq {
		return nil, &ErrStackUnderflow{stackLen: state.stack.Len(), required: h.stackReq}
	}
	if state.stack.Len()+h.stackMaxGrowth > maxStackDepth {
		return nil, &ErrStackOverflow{stackLen: state.stack.Len(), limit: maxStackDepth}
	}
	state.gasLeft -= int64(h.gasCost)
	return nil, nil
}

// opJumpdest is a runtime no-op: its gas cost was already folded into the
// block header that opens at its position (spec.md §4.1 step 2).
func opJumpdest(state *executionState, arg *instrArg) ([]byte, error) {
	return nil, nil
}

// opUndefined backs any opcode absent from the active revision's jump
// table (spec.md §7 undefined_instruction).
func opUndefined(state *executionState, arg *instrArg) ([]byte, error) {
	op := state.instrs[state.pc-1].op
	return nil, &ErrInvalidOpCode{opcode: op}
}

func opPop(state *executionState, arg *instrArg) ([]byte, error) {
	state.stack.pop()
	return nil, nil
}

func opPc(state *executionState, arg *instrArg) ([]byte, error) {
	pc := state.analysis.indexToPC[state.pc-1]
	state.stack.push(uint256.NewInt(uint64(pc)))
	return nil, nil
}

func opMsize(state *executionState, arg *instrArg) ([]byte, error) {
	state.stack.push(uint256.NewInt(uint64(state.memory.Len())))
	return nil, nil
}

func opGas(state *executionState, arg *instrArg) ([]byte, error) {
	state.stack.push(uint256.NewInt(uint64(state.gasLeft)))
	return nil, nil
}

// jumpToPC resolves an original-code PC to its pre-decoded block-header
// index and overwrites the dispatch cursor (spec.md §3: "jump destinations
// are resolved against the original PC, not the pre-decoded index").
func (state *executionState) jumpToPC(pc uint64) error {
	idx, ok := state.analysis.resolveJump(pc)
	if !ok {
		return ErrInvalidJump
	}
	state.pc = idx
	return nil
}

func opJump(state *executionState, arg *instrArg) ([]byte, error) {
	dest := state.stack.pop()
	if !dest.IsUint64() {
		return nil, ErrInvalidJump
	}
	return nil, state.jumpToPC(dest.Uint64())
}

func opJumpi(state *executionState, arg *instrArg) ([]byte, error) {
	dest := state.stack.pop()
	cond := state.stack.pop()
	if cond.IsZero() {
		return nil, nil
	}
	if !dest.IsUint64() {
		return nil, ErrInvalidJump
	}
	return nil, state.jumpToPC(dest.Uint64())
}
