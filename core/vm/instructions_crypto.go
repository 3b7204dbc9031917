package vm

import (
	"golang.org/x/crypto/sha3"
)

// opKeccak256 hashes a memory window and pushes the digest (spec.md §4.5):
// dynamic gas = 30 + 6*ceil(len/32) + memory expansion.
func opKeccak256(state *executionState, arg *instrArg) ([]byte, error) {
	offset, size := state.stack.pop(), state.stack.Back(0)

	sizeU64 := size.Uint64()
	reqSize, err := memoryRequiredSize(&offset, size)
	if err != nil {
		return nil, err
	}
	if err := state.ensureMemory(reqSize); err != nil {
		return nil, err
	}
	if err := state.useGas(keccakGas(sizeU64)); err != nil {
		return nil, err
	}

	data := state.memory.GetPtr(int64(offset.Uint64()), int64(sizeU64))

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(data)
	var sum [32]byte
	hasher.Sum(sum[:0])
	size.SetBytes32(sum[:])
	return nil, nil
}
