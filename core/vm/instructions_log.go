package vm

import "github.com/ethereum/go-ethereum/common"

// makeLog returns the LOGn implementation for n topics (spec.md §4.5):
// fails in static context, charges 375 per topic + 8 per data byte plus
// memory expansion, and emits via the host.
func makeLog(n int) executionFunc {
	return func(state *executionState, arg *instrArg) ([]byte, error) {
		if err := state.requireNotStatic(); err != nil {
			return nil, err
		}
		offset, size := state.stack.pop(), state.stack.pop()

		topics := make([]common.Hash, n)
		for i := 0; i < n; i++ {
			t := state.stack.pop()
			topics[i] = common.Hash(t.Bytes32())
		}

		reqSize, err := memoryRequiredSize(&offset, &size)
		if err != nil {
			return nil, err
		}
		if err := state.ensureMemory(reqSize); err != nil {
			return nil, err
		}
		if !size.IsUint64() {
			return nil, ErrGasUintOverflow
		}
		if err := state.useGas(logGas(n, size.Uint64())); err != nil {
			return nil, err
		}

		data := state.memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
		state.host.EmitLog(state.msg.Recipient, data, topics)
		return nil, nil
	}
}
