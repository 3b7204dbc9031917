package vm

import "github.com/ethereum/go-ethereum/common"

// Halting family (spec.md §4.5): STOP, RETURN, REVERT and SELFDESTRUCT set
// the final status and, where applicable, the output window before
// returning errStopToken to unwind the dispatch loop without treating the
// halt as a failure. INVALID instead returns errInvalidInstructionExecuted,
// which ends execution as a failure.

func opStop(state *executionState, arg *instrArg) ([]byte, error) {
	state.status = StatusSuccess
	return nil, errStopToken
}

func opReturn(state *executionState, arg *instrArg) ([]byte, error) {
	offset, size := state.stack.pop(), state.stack.pop()
	reqSize, err := memoryRequiredSize(&offset, &size)
	if err != nil {
		return nil, err
	}
	if err := state.ensureMemory(reqSize); err != nil {
		return nil, err
	}
	state.output = state.memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	state.status = StatusSuccess
	return nil, errStopToken
}

func opRevert(state *executionState, arg *instrArg) ([]byte, error) {
	offset, size := state.stack.pop(), state.stack.pop()
	reqSize, err := memoryRequiredSize(&offset, &size)
	if err != nil {
		return nil, err
	}
	if err := state.ensureMemory(reqSize); err != nil {
		return nil, err
	}
	state.output = state.memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	state.status = StatusRevert
	return nil, errStopToken
}

func opInvalid(state *executionState, arg *instrArg) ([]byte, error) {
	state.status = StatusInvalidInstruction
	return nil, errInvalidInstructionExecuted
}

func opSelfdestruct(state *executionState, arg *instrArg) ([]byte, error) {
	if err := state.requireNotStatic(); err != nil {
		return nil, err
	}
	beneficiary := state.stack.pop()
	state.host.SelfDestruct(state.msg.Recipient, common.Address(beneficiary.Bytes20()))
	state.status = StatusSuccess
	return nil, errStopToken
}
