package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

func opAddress(state *executionState, arg *instrArg) ([]byte, error) {
	state.stack.push(new(uint256.Int).SetBytes(state.msg.Recipient.Bytes()))
	return nil, nil
}

func opBalance(state *executionState, arg *instrArg) ([]byte, error) {
	addr := state.stack.Back(0)
	balance := state.host.GetBalance(common.Address(addr.Bytes20()))
	addr.Set(balance)
	return nil, nil
}

func opOrigin(state *executionState, arg *instrArg) ([]byte, error) {
	tx := state.host.GetTxContext()
	state.stack.push(new(uint256.Int).SetBytes(tx.Origin.Bytes()))
	return nil, nil
}

func opCaller(state *executionState, arg *instrArg) ([]byte, error) {
	state.stack.push(new(uint256.Int).SetBytes(state.msg.Sender.Bytes()))
	return nil, nil
}

func opCallvalue(state *executionState, arg *instrArg) ([]byte, error) {
	if state.msg.Value == nil {
		state.stack.push(new(uint256.Int))
		return nil, nil
	}
	state.stack.push(state.msg.Value)
	return nil, nil
}

func opCalldataload(state *executionState, arg *instrArg) ([]byte, error) {
	x := state.stack.Back(0)
	if x.IsUint64() {
		off := x.Uint64()
		data := getData(state.msg.Input, off, 32)
		x.SetBytes32(data)
	} else {
		x.Clear()
	}
	return nil, nil
}

func opCalldatasize(state *executionState, arg *instrArg) ([]byte, error) {
	state.stack.push(uint256.NewInt(uint64(len(state.msg.Input))))
	return nil, nil
}

func opCalldatacopy(state *executionState, arg *instrArg) ([]byte, error) {
	memOffset, dataOffset, length := state.stack.pop(), state.stack.pop(), state.stack.Back(0)
	return nil, state.memCopy(&memOffset, &dataOffset, length, state.msg.Input)
}

func opCodesize(state *executionState, arg *instrArg) ([]byte, error) {
	state.stack.push(uint256.NewInt(uint64(len(state.code()))))
	return nil, nil
}

func opCodecopy(state *executionState, arg *instrArg) ([]byte, error) {
	memOffset, codeOffset, length := state.stack.pop(), state.stack.pop(), state.stack.Back(0)
	return nil, state.memCopy(&memOffset, &codeOffset, length, state.code())
}

func opGasprice(state *executionState, arg *instrArg) ([]byte, error) {
	tx := state.host.GetTxContext()
	state.stack.push(new(uint256.Int).Set(tx.GasPrice))
	return nil, nil
}

func opExtcodesize(state *executionState, arg *instrArg) ([]byte, error) {
	addr := state.stack.Back(0)
	size := state.host.GetCodeSize(common.Address(addr.Bytes20()))
	addr.SetUint64(uint64(size))
	return nil, nil
}

func opExtcodehash(state *executionState, arg *instrArg) ([]byte, error) {
	addr := state.stack.Back(0)
	a := common.Address(addr.Bytes20())
	if !state.host.AccountExists(a) {
		addr.Clear()
		return nil, nil
	}
	hash := state.host.GetCodeHash(a)
	addr.SetBytes(hash.Bytes())
	return nil, nil
}

func opExtcodecopy(state *executionState, arg *instrArg) ([]byte, error) {
	addrWord := state.stack.pop()
	memOffset, codeOffset, length := state.stack.pop(), state.stack.pop(), state.stack.Back(0)
	addr := common.Address(addrWord.Bytes20())
	code := state.host.GetCode(addr)
	return nil, state.memCopy(&memOffset, &codeOffset, length, code)
}

func opReturndatasize(state *executionState, arg *instrArg) ([]byte, error) {
	state.stack.push(uint256.NewInt(uint64(len(state.returnData))))
	return nil, nil
}

func opReturndatacopy(state *executionState, arg *instrArg) ([]byte, error) {
	memOffset, dataOffset, length := state.stack.pop(), state.stack.pop(), state.stack.Back(0)
	if !dataOffset.IsUint64() || !length.IsUint64() {
		return nil, ErrReturnDataOutOfBounds
	}
	off, l := dataOffset.Uint64(), length.Uint64()
	end, overflow := uint256.NewInt(0).AddOverflow(&dataOffset, length)
	if overflow || !end.IsUint64() || end.Uint64() > uint64(len(state.returnData)) {
		return nil, ErrReturnDataOutOfBounds
	}
	reqSize, err := memoryRequiredSize(&memOffset, length)
	if err != nil {
		return nil, err
	}
	if err := state.ensureMemory(reqSize); err != nil {
		return nil, err
	}
	if err := state.useGas(copyGas(l)); err != nil {
		return nil, err
	}
	state.memory.Set(memOffset.Uint64(), l, state.returnData[off:off+l])
	return nil, nil
}

func opChainid(state *executionState, arg *instrArg) ([]byte, error) {
	tx := state.host.GetTxContext()
	state.stack.push(new(uint256.Int).Set(tx.ChainID))
	return nil, nil
}

func opSelfbalance(state *executionState, arg *instrArg) ([]byte, error) {
	balance := state.host.GetBalance(state.msg.Recipient)
	state.stack.push(new(uint256.Int).Set(balance))
	return nil, nil
}

// code returns the currently executing contract's own bytecode, for
// CODESIZE/CODECOPY. Grounded on the analyzer retaining no copy of the raw
// bytes itself; the state keeps the slice it analyzed.
func (state *executionState) code() []byte {
	return state.rawCode
}

// getData returns a right-padded-with-zero window into data, matching the
// "out-of-range source is zero-filled" rule of spec.md §4.5.
func getData(data []byte, offset, size uint64) []byte {
	out := make([]byte, size)
	if offset >= uint64(len(data)) {
		return out
	}
	end := offset + size
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	copy(out, data[offset:end])
	return out
}

// memCopy implements the shared *COPY shape: charge 3 gas per word copied
// plus memory expansion, then copy a zero-padded window of src into memory.
func (state *executionState) memCopy(memOffset, srcOffset *uint256.Int, length *uint256.Int, src []byte) error {
	reqSize, err := memoryRequiredSize(memOffset, length)
	if err != nil {
		return err
	}
	if err := state.ensureMemory(reqSize); err != nil {
		return err
	}
	if length.IsZero() {
		return nil
	}
	if !length.IsUint64() {
		return ErrGasUintOverflow
	}
	l := length.Uint64()
	if err := state.useGas(copyGas(l)); err != nil {
		return err
	}
	var srcOff uint64
	if srcOffset.IsUint64() {
		srcOff = srcOffset.Uint64()
	} else {
		srcOff = uint64(len(src)) // forces getData to zero-fill
	}
	state.memory.Set(memOffset.Uint64(), l, getData(src, srcOff, l))
	return nil
}
