package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// forwardedGas applies the EIP-150 63/64 rule: at most available-available/64
// may be forwarded to a nested call, regardless of what was requested.
func forwardedGas(available int64, requested *uint256.Int) int64 {
	cap := available - available/64
	if cap < 0 {
		cap = 0
	}
	if requested.IsUint64() && int64(requested.Uint64()) < cap {
		return int64(requested.Uint64())
	}
	return cap
}

// makeCall returns the CALL/CALLCODE/DELEGATECALL/STATICCALL implementation
// for kind; hasValue is true only for CALL and CALLCODE, which alone carry
// a value argument on the stack (spec.md §4.5).
func makeCall(kind CallKind, hasValue bool) executionFunc {
	return func(state *executionState, arg *instrArg) ([]byte, error) {
		gasWord := state.stack.pop()
		addrWord := state.stack.pop()

		var value uint256.Int
		if hasValue {
			value = state.stack.pop()
		}
		argsOffset, argsSize := state.stack.pop(), state.stack.pop()
		retOffset, retSize := state.stack.pop(), state.stack.pop()

		sendsValue := hasValue && !value.IsZero()
		if sendsValue && state.readOnly {
			return nil, ErrWriteProtection
		}

		argsReq, err := memoryRequiredSize(&argsOffset, &argsSize)
		if err != nil {
			return nil, err
		}
		retReq, err := memoryRequiredSize(&retOffset, &retSize)
		if err != nil {
			return nil, err
		}
		need := argsReq
		if retReq > need {
			need = retReq
		}
		if err := state.ensureMemory(need); err != nil {
			return nil, err
		}

		toAddr := common.Address(addrWord.Bytes20())

		// The table's constantGas already covers the flat per-revision
		// call base (block-header precheck); only the value-transfer and
		// new-account surcharges are dynamic.
		var extraGas uint64
		if sendsValue {
			extraGas += GasCallValue
		}
		if kind == CallKindCall && sendsValue && !state.host.AccountExists(toAddr) {
			extraGas += GasCallNewAccount
		}
		if err := state.useGas(extraGas); err != nil {
			return nil, err
		}

		state.stack.push(uint256.NewInt(0)) // result slot, overwritten once the call returns

		// Depth is capped before any gas is forwarded: the opcode's own
		// base/value/new-account costs are still paid, but a call beyond
		// the limit fails softly without spending forwarded gas
		// (spec.md §4.5, §5).
		if state.msg.Depth+1 > maxCallDepth {
			state.stack.Back(0).Clear()
			return nil, nil
		}

		gas := forwardedGas(state.gasLeft, &gasWord)
		if err := state.useGas(uint64(gas)); err != nil {
			return nil, err
		}
		if sendsValue {
			gas += int64(GasCallStipend)
		}

		args := state.memory.GetCopy(int64(argsOffset.Uint64()), int64(argsSize.Uint64()))

		msg := &Message{
			Kind:        kind,
			Static:      state.readOnly || kind == CallKindStaticCall,
			Depth:       state.msg.Depth + 1,
			Gas:         gas,
			Input:       args,
			CodeAddress: toAddr,
		}
		switch kind {
		case CallKindDelegateCall:
			msg.Recipient = state.msg.Recipient
			msg.Sender = state.msg.Sender
			msg.Value = state.msg.Value
		case CallKindCallCode:
			msg.Recipient = state.msg.Recipient
			msg.Sender = state.msg.Recipient
			msg.Value = &value
		default: // Call, StaticCall
			msg.Recipient = toAddr
			msg.Sender = state.msg.Recipient
			if hasValue {
				msg.Value = &value
			} else {
				msg.Value = new(uint256.Int)
			}
		}

		callResult := state.host.Call(msg)
		state.gasLeft += callResult.GasLeft
		state.gasRefund += callResult.GasRefund
		state.returnData = callResult.Output

		copyLen := retSize.Uint64()
		if uint64(len(callResult.Output)) < copyLen {
			copyLen = uint64(len(callResult.Output))
		}
		if copyLen > 0 {
			state.memory.Set(retOffset.Uint64(), copyLen, callResult.Output[:copyLen])
		}

		success := callResult.Status == StatusSuccess
		if success {
			state.stack.Back(0).SetOne()
		} else {
			state.stack.Back(0).Clear()
		}
		return nil, nil
	}
}
