package vm

import "github.com/holiman/uint256"

func opBlockhash(state *executionState, arg *instrArg) ([]byte, error) {
	num := state.stack.Back(0)
	if !num.IsUint64() {
		num.Clear()
		return nil, nil
	}
	hash := state.host.GetBlockHash(num.Uint64())
	num.SetBytes(hash.Bytes())
	return nil, nil
}

func opCoinbase(state *executionState, arg *instrArg) ([]byte, error) {
	tx := state.host.GetTxContext()
	state.stack.push(new(uint256.Int).SetBytes(tx.Coinbase.Bytes()))
	return nil, nil
}

func opTimestamp(state *executionState, arg *instrArg) ([]byte, error) {
	tx := state.host.GetTxContext()
	state.stack.push(uint256.NewInt(tx.Timestamp))
	return nil, nil
}

func opNumber(state *executionState, arg *instrArg) ([]byte, error) {
	tx := state.host.GetTxContext()
	state.stack.push(uint256.NewInt(tx.Number))
	return nil, nil
}

func opDifficulty(state *executionState, arg *instrArg) ([]byte, error) {
	tx := state.host.GetTxContext()
	state.stack.push(new(uint256.Int).Set(tx.Difficulty))
	return nil, nil
}

func opGaslimit(state *executionState, arg *instrArg) ([]byte, error) {
	tx := state.host.GetTxContext()
	state.stack.push(uint256.NewInt(tx.GasLimit))
	return nil, nil
}
