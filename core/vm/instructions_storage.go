package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

func opMload(state *executionState, arg *instrArg) ([]byte, error) {
	off := state.stack.Back(0)
	offset, err := memoryRequiredSize(off, uint256.NewInt(32))
	if err != nil {
		return nil, err
	}
	if err := state.ensureMemory(offset); err != nil {
		return nil, err
	}
	off.SetBytes32(state.memory.GetPtr(int64(off.Uint64()), 32))
	return nil, nil
}

func opMstore(state *executionState, arg *instrArg) ([]byte, error) {
	off, val := state.stack.pop(), state.stack.pop()
	reqSize, err := memoryRequiredSize(&off, uint256.NewInt(32))
	if err != nil {
		return nil, err
	}
	if err := state.ensureMemory(reqSize); err != nil {
		return nil, err
	}
	state.memory.Set32(off.Uint64(), &val)
	return nil, nil
}

func opMstore8(state *executionState, arg *instrArg) ([]byte, error) {
	off, val := state.stack.pop(), state.stack.pop()
	reqSize, err := memoryRequiredSize(&off, uint256.NewInt(1))
	if err != nil {
		return nil, err
	}
	if err := state.ensureMemory(reqSize); err != nil {
		return nil, err
	}
	state.memory.Set(off.Uint64(), 1, []byte{byte(val.Uint64())})
	return nil, nil
}

func opSload(state *executionState, arg *instrArg) ([]byte, error) {
	loc := state.stack.Back(0)
	hash := common.Hash(loc.Bytes32())
	value := state.host.GetStorage(state.msg.Recipient, hash)
	loc.SetBytes(value.Bytes())
	return nil, nil
}

// opSstore implements spec.md §4.5's storage write: the gas/refund schedule
// is revision-dependent (Frontier..Byzantium flat; Constantinople and
// Istanbul+ net-gas metering per EIP-1283/EIP-2200; Petersburg reverts to
// the flat schedule because EIP-1283 was pulled before launch). EIP-1706
// floors gas_left at the 2300 stipend from Istanbul onward.
func opSstore(state *executionState, arg *instrArg) ([]byte, error) {
	if err := state.requireNotStatic(); err != nil {
		return nil, err
	}
	if state.rev.AtLeast(Istanbul) && state.gasLeft <= int64(GasSstoreSentryIstanbul) {
		return nil, ErrOutOfGas
	}
	loc, val := state.stack.pop(), state.stack.pop()
	key := common.Hash(loc.Bytes32())
	value := common.Hash(val.Bytes32())

	status := state.host.SetStorage(state.msg.Recipient, key, value)
	gas, refund := sstoreGasAndRefund(state.rev, status)
	if err := state.useGas(gas); err != nil {
		return nil, err
	}
	state.gasRefund += refund
	return nil, nil
}

func sstoreUsesNetMetering(rev Revision) bool {
	return rev == Constantinople || rev.AtLeast(Istanbul)
}

func sloadGasForRevision(rev Revision) uint64 {
	if rev.AtLeast(Istanbul) {
		return GasSloadIstanbul
	}
	return GasSloadTangerineWhistle
}

func sstoreGasAndRefund(rev Revision, status StorageStatus) (uint64, int64) {
	if !sstoreUsesNetMetering(rev) {
		switch status {
		case StorageAdded:
			return GasSstoreSet, 0
		case StorageDeleted:
			return GasSstoreReset, int64(GasSstoreClearRefund)
		default:
			return GasSstoreReset, 0
		}
	}

	sloadGas := sloadGasForRevision(rev)
	switch status {
	case StorageUnchanged:
		return sloadGas, 0
	case StorageAdded:
		return GasSstoreSet, 0
	case StorageDeleted:
		return GasSstoreReset, int64(GasSstoreClearRefund)
	case StorageModified:
		return GasSstoreReset, 0
	case StorageModifiedAgain:
		return sloadGas, 0
	case StorageDeletedAdded:
		return sloadGas, -int64(GasSstoreClearRefund)
	case StorageAddedDeleted:
		return sloadGas, int64(GasSstoreSet - sloadGas)
	case StorageDeletedRestored:
		return sloadGas, int64(GasSstoreReset - sloadGas)
	case StorageAddedRestored:
		return sloadGas, -int64(GasSstoreSet - sloadGas)
	case StorageDeletedClean:
		return sloadGas, int64(GasSstoreClearRefund)
	case StorageModifiedRestored:
		return sloadGas, 0
	default:
		return sloadGas, 0
	}
}

func makeDup(n int) executionFunc {
	return func(state *executionState, arg *instrArg) ([]byte, error) {
		state.stack.dup(n)
		return nil, nil
	}
}

func makeSwap(n int) executionFunc {
	return func(state *executionState, arg *instrArg) ([]byte, error) {
		state.stack.swap(n)
		return nil, nil
	}
}

func opPush(state *executionState, arg *instrArg) ([]byte, error) {
	w := state.argWord(arg)
	state.stack.push(&w)
	return nil, nil
}
