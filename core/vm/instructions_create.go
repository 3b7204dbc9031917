package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// makeCreate returns the CREATE/CREATE2 implementation. Address derivation
// is the core's responsibility per spec.md §4.5 (CREATE = keccak(rlp(sender,
// nonce)) truncated; CREATE2 = keccak(0xff||sender||salt||keccak(init))
// truncated); the host only supplies the sender's current nonce and
// executes the init code against the address the core computed.
func makeCreate(kind CallKind) executionFunc {
	return func(state *executionState, arg *instrArg) ([]byte, error) {
		if err := state.requireNotStatic(); err != nil {
			return nil, err
		}
		value := state.stack.pop()
		offset, size := state.stack.pop(), state.stack.pop()
		var salt uint256.Int
		if kind == CallKindCreate2 {
			salt = state.stack.pop()
		}

		reqSize, err := memoryRequiredSize(&offset, &size)
		if err != nil {
			return nil, err
		}
		if err := state.ensureMemory(reqSize); err != nil {
			return nil, err
		}

		if kind == CallKindCreate2 {
			if err := state.useGas(keccakGas(size.Uint64())); err != nil {
				return nil, err
			}
		}

		init := state.memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))

		var newAddr common.Address
		if kind == CallKindCreate2 {
			saltBytes := salt.Bytes32()
			newAddr = crypto.CreateAddress2(state.msg.Recipient, saltBytes, crypto.Keccak256(init))
		} else {
			newAddr = crypto.CreateAddress(state.msg.Recipient, state.host.GetNonce(state.msg.Recipient))
		}

		state.stack.push(new(uint256.Int))
		if state.msg.Depth+1 > maxCallDepth {
			return nil, nil
		}

		gas := state.gasLeft - state.gasLeft/64
		if err := state.useGas(uint64(gas)); err != nil {
			return nil, err
		}

		msg := &Message{
			Kind:        kind,
			Depth:       state.msg.Depth + 1,
			Gas:         gas,
			Sender:      state.msg.Recipient,
			Recipient:   newAddr,
			CodeAddress: newAddr,
			Value:       &value,
			Input:       init,
			Salt:        salt,
			Static:      state.readOnly,
		}

		result := state.host.Call(msg)
		state.gasLeft += result.GasLeft
		state.gasRefund += result.GasRefund
		state.returnData = result.Output

		if result.Status == StatusSuccess {
			state.stack.Back(0).SetBytes(newAddr.Bytes())
		}
		return nil, nil
	}
}
