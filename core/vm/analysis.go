package vm

import (
	"sort"

	"github.com/holiman/uint256"
)

// Analysis is the one-pass analyzer's output (spec.md §4.1): a pre-decoded
// instruction stream, an out-of-line argument pool for large pushes, and a
// jump-destination index. It is pure, deterministic, and produced exactly
// once per Execute call — never shared, never mutated after Analyze
// returns (spec.md §3 invariants, §8 property 4: analyzer idempotence).
//
// The block-boundary bookkeeping below is adapted from the teacher's
// core/blockstm/status.go task-dependency tracking: there it tracked which
// transactions could run without waiting on others, here it tracks which
// opcodes belong to the same gas/stack-precheckable run — the same
// "maximal independent run" idea, retargeted from parallel scheduling to
// sequential block prechecking (see DESIGN.md).
type Analysis struct {
	instructions []instruction
	pool         []uint256.Int
	indexToPC    []uint32

	// jumpPCs/jumpTargets are parallel, sorted-by-PC slices: jumpPCs[i] is
	// a valid JUMPDEST offset in the original code, and jumpTargets[i] is
	// the instruction-stream index of that block's header, i.e. where a
	// JUMP/JUMPI into jumpPCs[i] must resume dispatch (spec.md §3: "jump
	// destinations are resolved against the original PC, not the
	// pre-decoded index").
	jumpPCs     []uint32
	jumpTargets []int32
}

// resolveJump returns the instruction-stream index to resume at for a JUMP
// or JUMPI targeting the given original-code PC, and whether that PC is a
// valid jump destination (spec.md §3, §8 property 5). Binary search over a
// sorted slice gives the required O(log k) membership test.
func (a *Analysis) resolveJump(pc uint64) (int, bool) {
	if pc > 0xffffffff {
		return 0, false
	}
	target := uint32(pc)
	i := sort.Search(len(a.jumpPCs), func(i int) bool { return a.jumpPCs[i] >= target })
	if i < len(a.jumpPCs) && a.jumpPCs[i] == target {
		return int(a.jumpTargets[i]), true
	}
	return 0, false
}

// blockBuilder accumulates the running totals for the basic block currently
// being scanned, per spec.md §4.1 step 1-2.
type blockBuilder struct {
	headerIdx int // index into instructions of this block's header slot, -1 if none open
	gas       uint64
	stackReq  int
	stackMax  int
	stackNet  int
}

func (b *blockBuilder) open() bool { return b.headerIdx >= 0 }

func (b *blockBuilder) reset(headerIdx int) {
	b.headerIdx = headerIdx
	b.gas, b.stackReq, b.stackMax, b.stackNet = 0, 0, 0, 0
}

func (b *blockBuilder) account(constGas uint64, numIn, numOut int) {
	b.gas += constGas
	need := numIn - b.stackNet
	if need > b.stackReq {
		b.stackReq = need
	}
	b.stackNet += numOut - numIn
	if b.stackNet > b.stackMax {
		b.stackMax = b.stackNet
	}
}

// Analyze performs the single forward pass over code described in spec.md
// §4.1, producing the pre-decoded instruction stream for table.
func Analyze(table *JumpTable, code []byte) *Analysis {
	a := &Analysis{}
	// A reasonable capacity guess: one instruction per byte plus one header
	// per block keeps reallocation rare for typical contracts.
	a.instructions = make([]instruction, 0, len(code)+len(code)/8+1)
	a.indexToPC = make([]uint32, 0, cap(a.instructions))

	var blk blockBuilder
	blk.headerIdx = -1

	// jumpdests are collected unordered during the scan, sorted once at the end.
	type jd struct {
		pc  uint32
		idx int32
	}
	var jumpdests []jd

	openBlock := func(pc uint64) {
		idx := len(a.instructions)
		a.instructions = append(a.instructions, instruction{fn: opBlockHeader, arg: instrArg{poolIndex: -1}})
		a.indexToPC = append(a.indexToPC, uint32(pc))
		blk.reset(idx)
	}
	closeBlock := func() {
		if !blk.open() {
			return
		}
		a.instructions[blk.headerIdx].arg.header = &blockHeader{
			gasCost:        blk.gas,
			stackReq:       blk.stackReq,
			stackMaxGrowth: blk.stackMax,
		}
		blk.headerIdx = -1
	}

	codeLen := uint64(len(code))
	for i := uint64(0); i < codeLen; i++ {
		op := OpCode(code[i])

		if !blk.open() {
			openBlock(i)
		}

		switch {
		case op.IsPush():
			n := op.PushSize()
			var arg instrArg
			arg.poolIndex = -1
			if n <= 8 {
				var v uint64
				for j := 0; j < n; j++ {
					v <<= 8
					pos := i + 1 + uint64(j)
					if pos < codeLen {
						v |= uint64(code[pos])
					}
				}
				arg.inline = v
			} else {
				var buf [32]byte
				for j := 0; j < n; j++ {
					pos := i + 1 + uint64(j)
					if pos < codeLen {
						buf[32-n+j] = code[pos]
					}
				}
				word := new(uint256.Int).SetBytes(buf[:])
				a.pool = append(a.pool, *word)
				arg.poolIndex = int32(len(a.pool) - 1)
			}
			m := table[op]
			constGas, numIn, numOut := opMeta(m)
			blk.account(constGas, numIn, numOut)
			a.instructions = append(a.instructions, instruction{op: op, fn: pushFn(m), arg: arg})
			a.indexToPC = append(a.indexToPC, uint32(i))
			i += uint64(n)

		case op == JUMPDEST:
			closeBlock()
			openBlock(i)
			jumpdests = append(jumpdests, jd{pc: uint32(i), idx: int32(blk.headerIdx)})
			m := table[op]
			constGas, numIn, numOut := opMeta(m)
			blk.account(constGas, numIn, numOut)
			a.instructions = append(a.instructions, instruction{op: op, fn: opJumpdest, arg: instrArg{poolIndex: -1}})
			a.indexToPC = append(a.indexToPC, uint32(i))

		default:
			m := table[op]
			constGas, numIn, numOut := opMeta(m)
			blk.account(constGas, numIn, numOut)
			fn := opUndefined
			if m != nil {
				fn = m.execute
			}
			a.instructions = append(a.instructions, instruction{op: op, fn: fn, arg: instrArg{poolIndex: -1}})
			a.indexToPC = append(a.indexToPC, uint32(i))

			if m != nil && (m.halts || m.jumps || isCallOrCreate(op)) {
				closeBlock()
			}
		}
	}
	closeBlock()

	// Synthetic trailing STOP: guarantees the dispatch loop always finds a
	// halting instruction even if code fell off the end mid-block or
	// lacked a terminator (spec.md §4.1 step 3).
	openBlock(codeLen)
	a.instructions = append(a.instructions, instruction{op: STOP, fn: opStop, arg: instrArg{poolIndex: -1}})
	a.indexToPC = append(a.indexToPC, uint32(codeLen))
	closeBlock()

	sort.Slice(jumpdests, func(i, j int) bool { return jumpdests[i].pc < jumpdests[j].pc })
	a.jumpPCs = make([]uint32, len(jumpdests))
	a.jumpTargets = make([]int32, len(jumpdests))
	for i, j := range jumpdests {
		a.jumpPCs[i] = j.pc
		a.jumpTargets[i] = j.idx
	}
	return a
}

func opMeta(m *operation) (gas uint64, numIn, numOut int) {
	if m == nil {
		return 0, 0, 0
	}
	return m.constantGas, m.numIn, m.numOut
}

func isCallOrCreate(op OpCode) bool {
	switch op {
	case CALL, CALLCODE, DELEGATECALL, STATICCALL, CREATE, CREATE2:
		return true
	}
	return false
}

// pushFn returns the execute function registered for a PUSH opcode in the
// jump table, falling back to opUndefined if the table has no entry for it.
func pushFn(m *operation) executionFunc {
	if m == nil {
		return opUndefined
	}
	return m.execute
}
