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

import "github.com/ethereum/go-ethereum/log"

// Execute is the core's single entry point (spec.md §6): analyze code once
// under the revision's opcode table, build an execution state around msg,
// drive the dispatch loop, and marshal the result. The analyzer, the
// execution state, and the stack/memory it owns are all exclusive to this
// one invocation (spec.md §3/§5); nested calls recurse through Execute via
// the host's Call implementation on the same goroutine.
func Execute(host Host, rev Revision, msg *Message, code []byte, config Config) Result {
	table := jumpTableForRevision(rev)
	if len(config.ExtraEips) > 0 {
		table = copyJumpTable(table)
		for _, eip := range config.ExtraEips {
			if err := EnableEIP(eip, table); err != nil {
				log.Warn("vm: skipping unknown eip", "eip", eip, "err", err)
			}
		}
	}

	analysis := Analyze(table, code)
	state := newExecutionState(analysis, table, host, rev, msg, code)
	defer state.release()

	interpreterStepCounter.Inc(1)
	err := state.run()
	return buildResult(state, err)
}
