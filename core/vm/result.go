package vm

import "github.com/ethereum/go-ethereum/common"

// Result is the (status, gas_left, output) tuple spec.md §4.6/§6 requires
// Execute to produce. For any status other than success/revert, GasLeft
// is zero and Output is empty (spec.md §7).
type Result struct {
	Status         StatusCode
	GasLeft        int64
	GasRefund      int64
	Output         []byte
	CreatedAddress common.Address
}

func buildResult(state *executionState, runErr error) Result {
	status := classifyRunError(state, runErr)
	result := Result{Status: status}
	if status == StatusSuccess || status == StatusRevert {
		result.GasLeft = state.gasLeft
		result.GasRefund = cappedRefund(state)
		result.Output = state.output
	}
	return result
}

// cappedRefund bounds the accumulated SSTORE refund at half of the gas
// actually used, per spec.md §9/GLOSSARY "Refund".
func cappedRefund(state *executionState) int64 {
	if state.gasRefund <= 0 {
		return 0
	}
	used := state.msg.Gas - state.gasLeft
	limit := used / int64(RefundQuotient)
	if state.gasRefund > limit {
		return limit
	}
	return state.gasRefund
}

// classifyRunError maps the dispatch loop's terminal error to a StatusCode
// (spec.md §7). errStopToken means a halting instruction already set
// state.status directly.
func classifyRunError(state *executionState, err error) StatusCode {
	if err == errStopToken {
		return state.status
	}
	switch err {
	case ErrOutOfGas, ErrGasUintOverflow:
		return StatusOutOfGas
	case ErrInvalidMemoryAccess, ErrReturnDataOutOfBounds:
		return StatusInvalidMemoryAccess
	case ErrInvalidJump:
		return StatusBadJumpDestination
	case ErrWriteProtection:
		return StatusStaticModeViolation
	case errInvalidInstructionExecuted:
		return StatusInvalidInstruction
	}
	switch err.(type) {
	case *ErrStackUnderflow:
		return StatusStackUnderflow
	case *ErrStackOverflow:
		return StatusStackOverflow
	case *ErrInvalidOpCode:
		return StatusUndefinedInstruction
	}
	return StatusInvalidInstruction
}
