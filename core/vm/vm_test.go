package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// mockHost is an in-memory Host implementation for exercising the
// interpreter without any real world-state backend, following the
// teacher's mockStateDB pattern of a map-backed fake collaborator.
type mockHost struct {
	balances map[common.Address]*uint256.Int
	codes    map[common.Address][]byte
	storage  map[common.Address]map[common.Hash]common.Hash
	exists   map[common.Address]bool
	nonces   map[common.Address]uint64

	storageStatus StorageStatus

	callResult CallResult
	calls      []*Message

	logs []mockLog

	destructed []common.Address

	tx TxContext

	blockHashes map[uint64]common.Hash
}

type mockLog struct {
	addr   common.Address
	data   []byte
	topics []common.Hash
}

func newMockHost() *mockHost {
	return &mockHost{
		balances:    make(map[common.Address]*uint256.Int),
		codes:       make(map[common.Address][]byte),
		storage:     make(map[common.Address]map[common.Hash]common.Hash),
		exists:      make(map[common.Address]bool),
		nonces:      make(map[common.Address]uint64),
		blockHashes: make(map[uint64]common.Hash),
	}
}

func (h *mockHost) GetNonce(addr common.Address) uint64 { return h.nonces[addr] }

func (h *mockHost) AccountExists(addr common.Address) bool { return h.exists[addr] }

func (h *mockHost) GetStorage(addr common.Address, key common.Hash) common.Hash {
	slots, ok := h.storage[addr]
	if !ok {
		return common.Hash{}
	}
	return slots[key]
}

func (h *mockHost) SetStorage(addr common.Address, key, value common.Hash) StorageStatus {
	slots, ok := h.storage[addr]
	if !ok {
		slots = make(map[common.Hash]common.Hash)
		h.storage[addr] = slots
	}
	slots[key] = value
	return h.storageStatus
}

func (h *mockHost) GetBalance(addr common.Address) *uint256.Int {
	if b, ok := h.balances[addr]; ok {
		return b
	}
	return uint256.NewInt(0)
}

func (h *mockHost) GetCodeSize(addr common.Address) int { return len(h.codes[addr]) }

func (h *mockHost) GetCodeHash(addr common.Address) common.Hash {
	return common.BytesToHash(h.codes[addr])
}

func (h *mockHost) GetCode(addr common.Address) []byte { return h.codes[addr] }

func (h *mockHost) SelfDestruct(addr, beneficiary common.Address) bool {
	h.destructed = append(h.destructed, addr)
	return true
}

func (h *mockHost) Call(msg *Message) CallResult {
	h.calls = append(h.calls, msg)
	return h.callResult
}

func (h *mockHost) GetTxContext() TxContext { return h.tx }

func (h *mockHost) GetBlockHash(number uint64) common.Hash { return h.blockHashes[number] }

func (h *mockHost) EmitLog(addr common.Address, data []byte, topics []common.Hash) {
	h.logs = append(h.logs, mockLog{addr: addr, data: append([]byte(nil), data...), topics: topics})
}

// run is a small test helper driving Execute with a fresh mockHost and a
// plain non-static top-level call message, mirroring spec.md §8's
// concrete scenarios (S1..S7).
func run(rev Revision, code []byte, gas int64) (Result, *mockHost) {
	host := newMockHost()
	msg := &Message{
		Kind: CallKindCall,
		Gas:  gas,
	}
	return Execute(host, rev, msg, code, Config{}), host
}
