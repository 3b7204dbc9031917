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
	"github.com/holiman/uint256"
)

// Memory is the EVM's linear, byte-addressed, zero-initialized memory
// region. It only ever grows, in 32-byte-word multiples (spec.md §3), and
// is never shared across invocations.
type Memory struct {
	store []byte
}

// NewMemory returns an empty memory region.
func NewMemory() *Memory {
	return &Memory{}
}

// Set copies value into memory starting at offset. The caller must have
// already grown memory (via Resize) to cover [offset, offset+len(value)).
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		panic("invalid memory: store empty")
	}
	copy(m.store[offset:offset+size], value)
}

// Set32 writes val as a big-endian 32-byte word at offset.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		panic("invalid memory: store empty")
	}
	b := val.Bytes32()
	copy(m.store[offset:offset+32], b[:])
}

// Resize grows the memory to at least size bytes, zero-filling the new
// region. size must already be word-aligned (32-byte multiple); callers
// compute that alignment via toWordSize before calling Resize, matching
// spec.md §4.2.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) < size {
		m.store = append(m.store, make([]byte, size-uint64(len(m.store)))...)
	}
}

// GetCopy returns a freshly allocated copy of memory[offset:offset+size],
// zero-filled for any portion past the current high-water mark.
func (m *Memory) GetCopy(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if len(m.store) > int(offset) {
		cpy := make([]byte, size)
		copy(cpy, m.store[offset:])
		return cpy
	}
	return make([]byte, size)
}

// GetPtr returns a slice view (not a copy) into memory[offset:offset+size].
func (m *Memory) GetPtr(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if len(m.store) > int(offset) {
		return m.store[offset : offset+size]
	}
	return nil
}

// Len returns the current byte length of the memory buffer, i.e. the
// high-water mark rounded up to 32 bytes — the value MSIZE observes.
func (m *Memory) Len() int { return len(m.store) }

// Data returns the raw underlying buffer. Callers must not modify it.
func (m *Memory) Data() []byte { return m.store }
