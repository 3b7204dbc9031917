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
	"fmt"
	"sync"

	"github.com/holiman/uint256"
)

// maxStackDepth is the 1024-word capacity spec.md §3 mandates.
const maxStackDepth = 1024

// Stack is the 1024-word, 256-bit-wide LIFO the interpreter operates on.
// It is backed by a fixed array to avoid reallocation; callers (the
// dispatch loop) are responsible for keeping depth within bounds, which the
// block-header precheck of analysis.go guarantees before any instruction in
// a block runs (spec.md §4.4, invariant 7).
type Stack struct {
	data [maxStackDepth]uint256.Int
	len  int
}

var stackPool = sync.Pool{
	New: func() interface{} { return new(Stack) },
}

// newstack obtains a zero-length stack from the shared pool.
func newstack() *Stack {
	return stackPool.Get().(*Stack)
}

// returnStack resets and returns a stack to the pool for reuse by the next
// invocation's dispatch loop.
func returnStack(s *Stack) {
	s.len = 0
	stackPool.Put(s)
}

func (s *Stack) push(d *uint256.Int) {
	s.data[s.len] = *d
	s.len++
}

func (s *Stack) pop() uint256.Int {
	s.len--
	return s.data[s.len]
}

// Len returns the number of words currently on the stack.
func (s *Stack) Len() int { return s.len }

// Back returns a pointer to the n-th element from the top (0 = top).
func (s *Stack) Back(n int) *uint256.Int {
	return &s.data[s.len-n-1]
}

func (s *Stack) swap(n int) {
	s.data[s.len-n-1], s.data[s.len-1] = s.data[s.len-1], s.data[s.len-n-1]
}

func (s *Stack) dup(n int) {
	s.data[s.len] = s.data[s.len-n]
	s.len++
}

// Data returns the live backing slice, bottom-to-top. Callers must not
// retain or mutate it past the current step.
func (s *Stack) Data() []uint256.Int {
	return s.data[:s.len]
}

func (s *Stack) String() string {
	out := fmt.Sprintf("### stack %d elements\n", s.len)
	for i := s.len - 1; i >= 0; i-- {
		out += fmt.Sprintf("%-3d %v\n", s.len-1-i, s.data[i].Hex())
	}
	return out
}
