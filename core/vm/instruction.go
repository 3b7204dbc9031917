package vm

import "github.com/holiman/uint256"

// executionFunc implements a single opcode. It receives the execution
// state and a pointer to the instruction's decoded argument (always
// non-nil; unused by opcodes that take none), and may mutate pc, gas,
// stack, or memory. A halting opcode sets state.status and returns
// errStopToken; any other non-nil error ends execution as a failure.
type executionFunc func(state *executionState, arg *instrArg) ([]byte, error)

// instrArg is the decoded argument carried by a pre-decoded instruction, per
// spec.md §3: at most one of the fields below is meaningful for any given
// instruction, selected by the owning opcode's shape.
type instrArg struct {
	// inline holds PUSH1..PUSH8 values (or smaller) packed into a machine
	// word, avoiding a pool allocation for the overwhelmingly common case.
	inline uint64

	// poolIndex points into executionState.analysis.pool for PUSH9..PUSH32
	// arguments, stored big-endian and zero-padded on the left.
	poolIndex int32

	// header is set only on the synthetic instruction emitted at each
	// basic-block entry (spec.md §4.1/§4.4).
	header *blockHeader
}

// blockHeader is the precomputed basic-block precheck record of spec.md §3:
// one per maximal straight-line run of instructions. The dispatch loop
// enforces it in a single step at block entry (spec.md §4.4).
type blockHeader struct {
	gasCost        uint64
	stackReq       int
	stackMaxGrowth int
}

// instruction is one pre-decoded element of the analyzer's output stream:
// an opcode implementation paired with its argument. The block-header
// instruction uses opBlockHeader as its fn.
type instruction struct {
	op  OpCode
	fn  executionFunc
	arg instrArg
}

// argWord materializes the 256-bit value carried by a PUSH instruction,
// whether inline or pool-backed.
func (state *executionState) argWord(arg *instrArg) uint256.Int {
	if arg.poolIndex >= 0 {
		return state.analysis.pool[arg.poolIndex]
	}
	return *uint256.NewInt(arg.inline)
}
