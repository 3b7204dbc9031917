package vm

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAnalyzeJumpdestInsidePushIsNotAJumpdest guards invariant 5 (spec.md
// §8): a 0x5B byte that falls inside a PUSHn immediate is not a valid jump
// target, even though it matches the JUMPDEST opcode value.
func TestAnalyzeJumpdestInsidePushIsNotAJumpdest(t *testing.T) {
	table := jumpTableForRevision(Istanbul)
	// PUSH2 0x5B5B: both immediate bytes look like JUMPDEST but are data.
	code := []byte{byte(PUSH2), 0x5B, 0x5B, byte(STOP)}
	a := Analyze(table, code)

	_, ok := a.resolveJump(1)
	assert.False(t, ok)
	_, ok = a.resolveJump(2)
	assert.False(t, ok)
}

// TestAnalyzeRealJumpdestResolves checks a genuine JUMPDEST at a PC outside
// any push immediate resolves to a block header index.
func TestAnalyzeRealJumpdestResolves(t *testing.T) {
	table := jumpTableForRevision(Istanbul)
	// PUSH1 4, JUMP, STOP, JUMPDEST, STOP (spec.md §8 S4).
	code := []byte{byte(PUSH1), 0x04, byte(JUMP), byte(STOP), byte(JUMPDEST), byte(STOP)}
	a := Analyze(table, code)

	idx, ok := a.resolveJump(4)
	require.True(t, ok)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, funcIdentity(opBlockHeader), funcIdentity(a.instructions[idx].fn))
}

// TestAnalyzeIdempotence guards invariant 4: analyzing the same code twice
// yields equal analyses (up to pointer identity of the two Analysis values).
func TestAnalyzeIdempotence(t *testing.T) {
	table := jumpTableForRevision(Istanbul)
	code := []byte{byte(PUSH1), 0x01, byte(PUSH1), 0x02, byte(ADD), byte(STOP)}

	a1 := Analyze(table, code)
	a2 := Analyze(table, code)

	require.Equal(t, len(a1.instructions), len(a2.instructions))
	for i := range a1.instructions {
		assert.Equal(t, a1.instructions[i].op, a2.instructions[i].op)
		assert.Equal(t, a1.instructions[i].arg.inline, a2.instructions[i].arg.inline)
		assert.Equal(t, a1.instructions[i].arg.poolIndex, a2.instructions[i].arg.poolIndex)
	}
	assert.Equal(t, a1.pool, a2.pool)
	assert.Equal(t, a1.jumpPCs, a2.jumpPCs)
	assert.Equal(t, a1.jumpTargets, a2.jumpTargets)
}

// TestAnalyzeSyntheticTrailingStop ensures code lacking a terminator still
// ends in a halting instruction (spec.md §4.1 step 3).
func TestAnalyzeSyntheticTrailingStop(t *testing.T) {
	table := jumpTableForRevision(Istanbul)
	code := []byte{byte(PUSH1), 0x01}
	a := Analyze(table, code)

	last := a.instructions[len(a.instructions)-1]
	assert.Equal(t, funcIdentity(opStop), funcIdentity(last.fn))
}

// funcIdentity compares executionFunc values by their runtime identity,
// since Go function values aren't comparable directly except to nil.
func funcIdentity(fn executionFunc) uintptr {
	return reflect.ValueOf(fn).Pointer()
}
