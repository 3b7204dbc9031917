package vm

import "github.com/holiman/uint256"

// Arithmetic family (spec.md §4.5): pop operands, push result. Division
// and modulo by zero yield zero rather than failing — the uint256 library
// already implements that convention, so these wrappers just sequence
// pop/op/push.

func opAdd(state *executionState, arg *instrArg) ([]byte, error) {
	x, y := state.stack.pop(), state.stack.Back(0)
	y.Add(&x, y)
	return nil, nil
}

func opMul(state *executionState, arg *instrArg) ([]byte, error) {
	x, y := state.stack.pop(), state.stack.Back(0)
	y.Mul(&x, y)
	return nil, nil
}

func opSub(state *executionState, arg *instrArg) ([]byte, error) {
	x, y := state.stack.pop(), state.stack.Back(0)
	y.Sub(&x, y)
	return nil, nil
}

func opDiv(state *executionState, arg *instrArg) ([]byte, error) {
	x, y := state.stack.pop(), state.stack.Back(0)
	y.Div(&x, y)
	return nil, nil
}

func opSdiv(state *executionState, arg *instrArg) ([]byte, error) {
	x, y := state.stack.pop(), state.stack.Back(0)
	y.SDiv(&x, y)
	return nil, nil
}

func opMod(state *executionState, arg *instrArg) ([]byte, error) {
	x, y := state.stack.pop(), state.stack.Back(0)
	y.Mod(&x, y)
	return nil, nil
}

func opSmod(state *executionState, arg *instrArg) ([]byte, error) {
	x, y := state.stack.pop(), state.stack.Back(0)
	y.SMod(&x, y)
	return nil, nil
}

func opAddmod(state *executionState, arg *instrArg) ([]byte, error) {
	x, y, z := state.stack.pop(), state.stack.pop(), state.stack.Back(0)
	if z.IsZero() {
		z.Clear()
	} else {
		z.AddMod(&x, &y, z)
	}
	return nil, nil
}

func opMulmod(state *executionState, arg *instrArg) ([]byte, error) {
	x, y, z := state.stack.pop(), state.stack.pop(), state.stack.Back(0)
	if z.IsZero() {
		z.Clear()
	} else {
		z.MulMod(&x, &y, z)
	}
	return nil, nil
}

func opSignExtend(state *executionState, arg *instrArg) ([]byte, error) {
	back, num := state.stack.pop(), state.stack.Back(0)
	num.ExtendSign(num, &back)
	return nil, nil
}

// expByteLen returns the number of significant bytes in the exponent,
// i.e. its bit length rounded up to bytes, for EXP's dynamic gas cost.
func expByteLen(exp *uint256.Int) uint64 {
	return uint64((exp.BitLen() + 7) / 8)
}

// opExp's constant tier (GasExpBase) is charged by the block header; only
// the per-exponent-byte cost is charged here (spec.md §4.5).
func opExp(state *executionState, arg *instrArg) ([]byte, error) {
	base, exponent := state.stack.pop(), state.stack.Back(0)
	if err := state.useGas(expByteGas(state.rev) * expByteLen(exponent)); err != nil {
		return nil, err
	}
	exponent.Exp(&base, exponent)
	return nil, nil
}
