package vm

// Comparison and bitwise family (spec.md §4.5). SHL/SHR/SAR are only wired
// into the jump table from Constantinople onward.

func opLt(state *executionState, arg *instrArg) ([]byte, error) {
	x, y := state.stack.pop(), state.stack.Back(0)
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opGt(state *executionState, arg *instrArg) ([]byte, error) {
	x, y := state.stack.pop(), state.stack.Back(0)
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSlt(state *executionState, arg *instrArg) ([]byte, error) {
	x, y := state.stack.pop(), state.stack.Back(0)
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSgt(state *executionState, arg *instrArg) ([]byte, error) {
	x, y := state.stack.pop(), state.stack.Back(0)
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opEq(state *executionState, arg *instrArg) ([]byte, error) {
	x, y := state.stack.pop(), state.stack.Back(0)
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opIszero(state *executionState, arg *instrArg) ([]byte, error) {
	x := state.stack.Back(0)
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil, nil
}

func opAnd(state *executionState, arg *instrArg) ([]byte, error) {
	x, y := state.stack.pop(), state.stack.Back(0)
	y.And(&x, y)
	return nil, nil
}

func opOr(state *executionState, arg *instrArg) ([]byte, error) {
	x, y := state.stack.pop(), state.stack.Back(0)
	y.Or(&x, y)
	return nil, nil
}

func opXor(state *executionState, arg *instrArg) ([]byte, error) {
	x, y := state.stack.pop(), state.stack.Back(0)
	y.Xor(&x, y)
	return nil, nil
}

func opNot(state *executionState, arg *instrArg) ([]byte, error) {
	x := state.stack.Back(0)
	x.Not(x)
	return nil, nil
}

func opByte(state *executionState, arg *instrArg) ([]byte, error) {
	th, val := state.stack.pop(), state.stack.Back(0)
	val.Byte(&th)
	return nil, nil
}

func opShl(state *executionState, arg *instrArg) ([]byte, error) {
	shift, value := state.stack.pop(), state.stack.Back(0)
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opShr(state *executionState, arg *instrArg) ([]byte, error) {
	shift, value := state.stack.pop(), state.stack.Back(0)
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opSar(state *executionState, arg *instrArg) ([]byte, error) {
	shift, value := state.stack.pop(), state.stack.Back(0)
	if shift.GtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return nil, nil
	}
	n := uint(shift.Uint64())
	value.SRsh(value, n)
	return nil, nil
}
