package vm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestMemoryResizeZeroFills(t *testing.T) {
	m := NewMemory()
	m.Resize(64)
	assert.Equal(t, 64, m.Len())
	assert.Equal(t, make([]byte, 64), m.Data())
}

func TestMemorySetAndGetCopy(t *testing.T) {
	m := NewMemory()
	m.Resize(32)
	m.Set(0, 4, []byte{0xde, 0xad, 0xbe, 0xef})

	got := m.GetCopy(0, 4)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, got)
}

func TestMemorySet32(t *testing.T) {
	m := NewMemory()
	m.Resize(32)
	m.Set32(0, uint256.NewInt(0xaa))

	got := m.GetCopy(0, 32)
	want := make([]byte, 32)
	want[31] = 0xaa
	assert.Equal(t, want, got)
}

// TestMemoryReadPastHighWaterMarkIsZero guards invariant 6 (spec.md §8):
// reads past the previously written high-water mark return zero bytes.
func TestMemoryReadPastHighWaterMarkIsZero(t *testing.T) {
	m := NewMemory()
	m.Resize(32)
	m.Set(0, 1, []byte{0xff})

	got := m.GetCopy(16, 32)
	want := make([]byte, 32)
	assert.Equal(t, want, got)
}

func TestMemoryGasCostQuadratic(t *testing.T) {
	cost, grows := memoryExpansionCost(0, 32)
	assert.True(t, grows)
	assert.Equal(t, uint64(3), cost)

	cost, grows = memoryExpansionCost(0, 0)
	assert.False(t, grows)
	assert.Equal(t, uint64(0), cost)
}
