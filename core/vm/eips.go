package vm

import "fmt"

type eipActivator func(*JumpTable)

// activators mirrors the teacher pack's EIP-activation map
// (IGSON2-berith_log/core/vm/eips.go's activators/enable1884/enable1344
// shape), trimmed to the EIPs spec.md §9 actually calls out.
var activators = map[int]eipActivator{
	1884: enable1884,
	1344: enable1344,
	2200: enable2200,
}

// EnableEIP patches table in place to activate eip on top of its revision
// baseline. Callers that want the baseline table preserved should pass a
// copyJumpTable(base) result rather than a shared revision singleton.
func EnableEIP(eip int, table *JumpTable) error {
	enable, ok := activators[eip]
	if !ok {
		return fmt.Errorf("vm: undefined eip %d", eip)
	}
	enable(table)
	return nil
}

// enable1884 applies the EIP-1884 repricing (SLOAD, BALANCE, EXTCODEHASH)
// and introduces SELFBALANCE. EXTCODEHASH only exists from Constantinople
// onward, so activating this EIP on an earlier baseline reprices SLOAD and
// BALANCE but leaves EXTCODEHASH untouched rather than nil-dereferencing a
// table entry that revision never defined.
func enable1884(t *JumpTable) {
	t[SLOAD].constantGas = GasSloadIstanbul
	t[BALANCE].constantGas = GasBalanceIstanbul
	if t[EXTCODEHASH] != nil {
		t[EXTCODEHASH].constantGas = GasExtcodehashIstanbul
	}
	t[SELFBALANCE] = &operation{execute: opSelfbalance, constantGas: GasFastStep, numIn: 0, numOut: 1}
}

// enable1344 introduces CHAINID.
func enable1344(t *JumpTable) {
	t[CHAINID] = &operation{execute: opChainid, constantGas: GasQuickStep, numIn: 0, numOut: 1}
}

// enable2200 is a no-op against the table itself: opSstore already
// switches to net-gas metering once sstoreUsesNetMetering(rev) is true,
// because the metering formula depends on the original-value
// classification the host reports for a slot, not on anything a
// jump-table entry alone can express.
func enable2200(t *JumpTable) {}
