package vm

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestS1Stop: code=0x00, gas=10 -> success, gas_left=10, output empty.
func TestS1Stop(t *testing.T) {
	result, _ := run(Istanbul, []byte{byte(STOP)}, 10)
	assert.Equal(t, StatusSuccess, result.Status)
	assert.EqualValues(t, 10, result.GasLeft)
	assert.Empty(t, result.Output)
}

// TestS2Add: PUSH1 1, PUSH1 2, ADD, STOP, gas=100 -> success, gas_left=91.
func TestS2Add(t *testing.T) {
	code := []byte{byte(PUSH1), 1, byte(PUSH1), 2, byte(ADD), byte(STOP)}
	result, _ := run(Istanbul, code, 100)
	assert.Equal(t, StatusSuccess, result.Status)
	assert.EqualValues(t, 91, result.GasLeft)
}

// TestS3BadJump: PUSH1 3, JUMP, STOP; offset 3 is STOP, not JUMPDEST.
func TestS3BadJump(t *testing.T) {
	code := []byte{byte(PUSH1), 3, byte(JUMP), byte(STOP)}
	result, _ := run(Istanbul, code, 100)
	assert.Equal(t, StatusBadJumpDestination, result.Status)
	assert.EqualValues(t, 0, result.GasLeft)
}

// TestS4ValidJump: PUSH1 4, JUMP, STOP, JUMPDEST, STOP, gas=100 -> success.
func TestS4ValidJump(t *testing.T) {
	code := []byte{byte(PUSH1), 4, byte(JUMP), byte(STOP), byte(JUMPDEST), byte(STOP)}
	result, _ := run(Istanbul, code, 100)
	assert.Equal(t, StatusSuccess, result.Status)
}

// TestS5OutOfGas: PUSH1 0xff, gas=2 -> out_of_gas (PUSH1 costs 3).
func TestS5OutOfGas(t *testing.T) {
	code := []byte{byte(PUSH1), 0xff}
	result, _ := run(Istanbul, code, 2)
	assert.Equal(t, StatusOutOfGas, result.Status)
	assert.EqualValues(t, 0, result.GasLeft)
}

// TestS6Revert: PUSH1 0xaa, PUSH1 0, MSTORE, PUSH1 0x20, PUSH1 0, REVERT
// -> revert, output is a 32-byte word with 0xaa in the low byte.
func TestS6Revert(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0xaa,
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0x00,
		byte(REVERT),
	}
	result, _ := run(Istanbul, code, 100000)
	require.Equal(t, StatusRevert, result.Status)
	require.Len(t, result.Output, 32)
	want := make([]byte, 32)
	want[31] = 0xaa
	assert.Equal(t, want, result.Output)
	assert.Greater(t, result.GasLeft, int64(0))
}

// TestS7StaticViolation: a static message executing SSTORE fails with
// static_mode_violation.
func TestS7StaticViolation(t *testing.T) {
	host := newMockHost()
	msg := &Message{Kind: CallKindCall, Static: true, Gas: 100000}
	code := []byte{byte(PUSH1), 1, byte(PUSH1), 0, byte(SSTORE)}
	result := Execute(host, Istanbul, msg, code, Config{})
	assert.Equal(t, StatusStaticModeViolation, result.Status)
	assert.EqualValues(t, 0, result.GasLeft)
}

func TestUndefinedOpcode(t *testing.T) {
	// 0x0c is unassigned in every revision through Istanbul.
	code := []byte{0x0c}
	result, _ := run(Istanbul, code, 1000)
	assert.Equal(t, StatusUndefinedInstruction, result.Status)
}

func TestStackUnderflow(t *testing.T) {
	code := []byte{byte(ADD), byte(STOP)}
	result, _ := run(Istanbul, code, 1000)
	assert.Equal(t, StatusStackUnderflow, result.Status)
}

func TestStackOverflow(t *testing.T) {
	code := make([]byte, 0, 2*1025)
	for i := 0; i < 1025; i++ {
		code = append(code, byte(PUSH1), 1)
	}
	result, _ := run(Istanbul, code, 10_000_000)
	assert.Equal(t, StatusStackOverflow, result.Status)
}

// TestDivModByZeroYieldsZero matches spec.md §4.5: division/modulo by zero
// yields zero, not a failure.
func TestDivModByZeroYieldsZero(t *testing.T) {
	// PUSH1 0, PUSH1 5, DIV, PUSH1 0, MSTORE, PUSH1 0x20, PUSH1 0, RETURN
	code := []byte{
		byte(PUSH1), 0,
		byte(PUSH1), 5,
		byte(DIV),
		byte(PUSH1), 0,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0,
		byte(RETURN),
	}
	result, _ := run(Istanbul, code, 100000)
	require.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, make([]byte, 32), result.Output)
}

// TestCallDepthExceededPushesZeroWithoutForfeitingGas guards spec.md
// §4.5/§5/§7: a CALL at the depth cap pushes 0 without dispatching, and
// does not burn the gas that would have been forwarded.
func TestCallDepthExceededPushesZeroWithoutForfeitingGas(t *testing.T) {
	host := newMockHost()
	msg := &Message{Kind: CallKindCall, Gas: 1_000_000, Depth: maxCallDepth}
	// PUSH1 0 (retSize), PUSH1 0 (retOffset), PUSH1 0 (argsSize),
	// PUSH1 0 (argsOffset), PUSH1 0 (value), PUSH1 0x11 (addr), PUSH2 0xffff (gas),
	// CALL, PUSH1 0, MSTORE, PUSH1 0x20, PUSH1 0, RETURN
	code := []byte{
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0x11,
		byte(PUSH2), 0xff, 0xff,
		byte(CALL),
		byte(PUSH1), 0,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0,
		byte(RETURN),
	}
	result := Execute(host, Istanbul, msg, code, Config{})
	require.Equal(t, StatusSuccess, result.Status)
	assert.Empty(t, host.calls, "a depth-exceeded CALL must not dispatch to the host")
	assert.Equal(t, make([]byte, 32), result.Output, "depth-exceeded CALL must push 0")
	// 721 for the first block (7 pushes + CALL), 12 for the second, 3 for
	// one word of memory: nothing of the forwarded share is spent.
	assert.EqualValues(t, 1_000_000-721-12-3, result.GasLeft, "depth-exceeded CALL must not spend forwarded gas")
}

// TestCallForwardsGasUnderEIP150 guards the 63/64 forwarding rule and that
// forwarded gas is actually deducted from the caller.
func TestCallForwardsGasUnderEIP150(t *testing.T) {
	host := newMockHost()
	host.callResult = CallResult{Status: StatusSuccess, GasLeft: 0}
	msg := &Message{Kind: CallKindCall, Gas: 1_000_000}
	code := []byte{
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0x11,
		byte(PUSH4), 0x00, 0x0f, 0x42, 0x40, // 1_000_000 requested
		byte(CALL),
		byte(STOP),
	}
	result := Execute(host, Istanbul, msg, code, Config{})
	require.Equal(t, StatusSuccess, result.Status)
	require.Len(t, host.calls, 1)
	sent := host.calls[0].Gas
	assert.Less(t, sent, int64(1_000_000))
	assert.Greater(t, result.GasLeft, int64(-1))
	// 999_279 left after the block's 721; 63/64 of that (983_666) is
	// forwarded and deducted, and the host hands none of it back.
	assert.EqualValues(t, 983_666, sent)
	assert.EqualValues(t, 999_279-983_666, result.GasLeft)
}

func TestSelfdestructNotifiesHost(t *testing.T) {
	host := newMockHost()
	beneficiary := common.HexToAddress("0x22")

	code := []byte{byte(PUSH1) + 19} // PUSH20
	code = append(code, beneficiary.Bytes()...)
	code = append(code, byte(SELFDESTRUCT))

	msg := &Message{Kind: CallKindCall, Gas: 100000}
	result := Execute(host, Istanbul, msg, code, Config{})
	require.Equal(t, StatusSuccess, result.Status)
	require.Len(t, host.destructed, 1)
}

// TestCreateAddressMatchesHostComputation guards spec.md §4.5's CREATE
// address derivation: keccak(rlp(sender, nonce)) truncated to 20 bytes,
// computed by the core (not the host), using the sender's nonce as
// reported by the host.
func TestCreateAddressMatchesHostComputation(t *testing.T) {
	host := newMockHost()
	host.callResult = CallResult{Status: StatusSuccess}
	sender := common.HexToAddress("0x01")
	host.nonces[sender] = 3
	msg := &Message{Kind: CallKindCall, Gas: 1_000_000, Recipient: sender}

	// PUSH1 0 (size), PUSH1 0 (offset), PUSH1 0 (value), CREATE,
	// PUSH1 0, MSTORE, PUSH1 0x20, PUSH1 0, RETURN
	code := []byte{
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(CREATE),
		byte(PUSH1), 0,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0,
		byte(RETURN),
	}
	result := Execute(host, Istanbul, msg, code, Config{})
	require.Equal(t, StatusSuccess, result.Status)
	require.Len(t, host.calls, 1)

	want := crypto.CreateAddress(sender, 3)
	assert.Equal(t, want, host.calls[0].Recipient)
	assert.Equal(t, want, host.calls[0].CodeAddress)
	assert.Equal(t, want, common.BytesToAddress(result.Output[12:]))
}

// TestCreate2AddressMatchesSaltedComputation guards the CREATE2 variant:
// keccak(0xff||sender||salt||keccak(init)) truncated to 20 bytes.
func TestCreate2AddressMatchesSaltedComputation(t *testing.T) {
	host := newMockHost()
	host.callResult = CallResult{Status: StatusSuccess}
	sender := common.HexToAddress("0x02")
	msg := &Message{Kind: CallKindCall, Gas: 1_000_000, Recipient: sender}

	// PUSH1 salt, PUSH1 0 (size), PUSH1 0 (offset), PUSH1 0 (value),
	// CREATE2, PUSH1 0, MSTORE, PUSH1 0x20, PUSH1 0, RETURN
	code := []byte{
		byte(PUSH1), 0x07,
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(PUSH1), 0,
		byte(CREATE2),
		byte(PUSH1), 0,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0,
		byte(RETURN),
	}
	result := Execute(host, Istanbul, msg, code, Config{})
	require.Equal(t, StatusSuccess, result.Status)
	require.Len(t, host.calls, 1)

	saltBytes := uint256.NewInt(7).Bytes32()
	want := crypto.CreateAddress2(sender, saltBytes, crypto.Keccak256(nil))
	assert.Equal(t, want, host.calls[0].Recipient)
	assert.Equal(t, want, common.BytesToAddress(result.Output[12:]))
}

// TestDeterminism guards invariant 3: identical inputs produce identical
// results.
func TestDeterminism(t *testing.T) {
	code := []byte{byte(PUSH1), 7, byte(PUSH1), 6, byte(MUL), byte(STOP)}
	r1, _ := run(Istanbul, code, 1000)
	r2, _ := run(Istanbul, code, 1000)
	assert.Equal(t, r1, r2)
}

func TestUint256RoundTripSanity(t *testing.T) {
	v := uint256.NewInt(42)
	assert.Equal(t, uint64(42), v.Uint64())
}
