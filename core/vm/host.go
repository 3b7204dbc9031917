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
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// StorageStatus classifies the effect of an SSTORE, feeding the net-gas
// metering schedule of spec.md §4.5 (EIP-1283/EIP-2200).
type StorageStatus int

const (
	StorageUnchanged StorageStatus = iota
	StorageModified
	StorageAdded
	StorageDeleted
	StorageModifiedAgain
	StorageDeletedAdded
	StorageAddedDeleted
	StorageDeletedRestored
	StorageAddedRestored
	StorageDeletedClean
	StorageModifiedRestored
)

// CallKind distinguishes the nested-message kinds of spec.md §6.
type CallKind int

const (
	CallKindCall CallKind = iota
	CallKindDelegateCall
	CallKindCallCode
	CallKindCreate
	CallKindCreate2
	CallKindStaticCall
)

// TxContext carries the per-transaction, block, and chain values the
// environmental and block opcode families read (spec.md §4.5).
type TxContext struct {
	GasPrice    *uint256.Int
	Origin      common.Address
	Coinbase    common.Address
	Number      uint64
	Timestamp   uint64
	GasLimit    uint64
	Difficulty  *uint256.Int
	ChainID     *uint256.Int
	BaseFee     *uint256.Int
}

// Message describes one call/create invocation, per spec.md §6.
type Message struct {
	Kind      CallKind
	Static    bool
	Depth     int
	Gas       int64
	Recipient common.Address
	// CodeAddress is the address whose code actually runs. Equal to
	// Recipient for Call/StaticCall/Create/Create2; distinct from it for
	// CallCode/DelegateCall, which execute foreign code against the
	// calling contract's own storage and identity.
	CodeAddress common.Address
	Sender      common.Address
	Value       *uint256.Int
	Input       []byte
	Salt        uint256.Int // CREATE2 only
}

// CallResult is what Host.Call returns for a nested message (spec.md §6);
// Execute returns the analogous Result type for the top-level one.
type CallResult struct {
	Status         StatusCode
	GasLeft        int64
	GasRefund      int64
	Output         []byte
	CreatedAddress common.Address
}

// Host is the capability set spec.md §6 requires the core to consume as an
// abstract collaborator; the interpreter never touches world state except
// through these methods.
type Host interface {
	AccountExists(addr common.Address) bool

	GetStorage(addr common.Address, key common.Hash) common.Hash
	SetStorage(addr common.Address, key, value common.Hash) StorageStatus

	GetBalance(addr common.Address) *uint256.Int
	// GetNonce reports addr's current account nonce, which CREATE (spec.md
	// §4.5) needs for address derivation; the core never increments it.
	GetNonce(addr common.Address) uint64

	GetCodeSize(addr common.Address) int
	GetCodeHash(addr common.Address) common.Hash
	GetCode(addr common.Address) []byte

	SelfDestruct(addr, beneficiary common.Address) bool

	Call(msg *Message) CallResult

	GetTxContext() TxContext
	GetBlockHash(number uint64) common.Hash

	EmitLog(addr common.Address, data []byte, topics []common.Hash)
}
