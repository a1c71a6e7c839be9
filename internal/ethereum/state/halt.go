package state

import "symprove/internal/smt"

// HaltKind classifies why a path stopped executing.
type HaltKind string

const (
	HaltReturned         HaltKind = "returned"
	HaltReverted         HaltKind = "reverted"
	HaltAssertionFailed  HaltKind = "assertion_failed"
	HaltUnexpectedRevert HaltKind = "unexpected_revert"
	HaltBounded          HaltKind = "bounded"
	HaltSolverTimeout    HaltKind = "solver_timeout"
	HaltMalformedState   HaltKind = "malformed_state"
)

// RevertKind further classifies a Solidity revert payload, mirroring the
// Panic(uint256) categories the compiler emits for assert/overflow/etc.
type RevertKind string

const (
	RevertPlain              RevertKind = "revert"
	RevertRequireString      RevertKind = "require_string"
	RevertCustomError        RevertKind = "custom_error"
	RevertPanicAssertion      RevertKind = "panic_assertion"
	RevertPanicArithmetic     RevertKind = "panic_arithmetic_overflow"
	RevertPanicDivByZero      RevertKind = "panic_division_by_zero"
	RevertPanicEnumConversion RevertKind = "panic_enum_conversion"
	RevertPanicStorageEncode  RevertKind = "panic_storage_byte_array"
	RevertPanicEmptyArrayPop  RevertKind = "panic_empty_array_pop"
	RevertPanicArrayBounds    RevertKind = "panic_array_out_of_bounds"
	RevertPanicOutOfMemory    RevertKind = "panic_out_of_memory"
	RevertPanicZeroFuncPtr    RevertKind = "panic_zero_initialized_function_pointer"
	RevertPanicOther          RevertKind = "panic_other"
)

// panicSelector is keccak256("Panic(uint256)")[:4], the same constant the
// Solidity compiler emits for assert()/arithmetic-overflow/div-by-zero
// reverts.
var panicSelector = [4]byte{0x4e, 0x48, 0x7b, 0x71}

// errorStringSelector is keccak256("Error(string)")[:4], emitted for
// require(cond, "reason") and revert("reason").
var errorStringSelector = [4]byte{0x08, 0xc3, 0x79, 0xa0}

func panicCategory(code byte) RevertKind {
	switch code {
	case 0x01:
		return RevertPanicAssertion
	case 0x11:
		return RevertPanicArithmetic
	case 0x12:
		return RevertPanicDivByZero
	case 0x21:
		return RevertPanicEnumConversion
	case 0x22:
		return RevertPanicStorageEncode
	case 0x31:
		return RevertPanicEmptyArrayPop
	case 0x32:
		return RevertPanicArrayBounds
	case 0x41:
		return RevertPanicOutOfMemory
	case 0x51:
		return RevertPanicZeroFuncPtr
	default:
		return RevertPanicOther
	}
}

// ClassifyRevert inspects revert-payload bytes and reports which kind of
// Solidity revert they encode. Bytes that are still symbolic (no concrete
// value baked in) are treated as an opaque RevertPlain, since the
// selector/panic-code a compiler emits is always a literal constant in the
// bytecode rather than a value derived from calldata.
func ClassifyRevert(data []*smt.BitVec) (RevertKind, byte) {
	if len(data) < 4 {
		return RevertPlain, 0
	}
	var selector [4]byte
	for i := 0; i < 4; i++ {
		if data[i] == nil || data[i].IsSymbolic() {
			return RevertPlain, 0
		}
		selector[i] = byte(data[i].Value())
	}
	switch selector {
	case panicSelector:
		if len(data) < 36 || data[35] == nil || data[35].IsSymbolic() {
			return RevertPanicOther, 0
		}
		code := byte(data[35].Value())
		return panicCategory(code), code
	case errorStringSelector:
		return RevertRequireString, 0
	default:
		return RevertCustomError, 0
	}
}

// Halt is the terminal classification of a path, produced once a
// property-function call returns to the harness.
type Halt struct {
	Kind       HaltKind
	Revert     RevertKind
	PanicCode  byte
	ReturnData *ReturnData
	Reason     string
}

// ClassifyHalt turns the plain revert flag and return payload an
// outermost TxEnd carries into a Halt, running the payload through
// ClassifyRevert when the transaction reverted.
func ClassifyHalt(revert bool, returnData *ReturnData) *Halt {
	if !revert {
		return &Halt{Kind: HaltReturned, ReturnData: returnData}
	}
	var data []*smt.BitVec
	if returnData != nil {
		data = returnData.Data
	}
	revertKind, panicCode := ClassifyRevert(data)
	kind := HaltReverted
	if revertKind == RevertPanicAssertion {
		kind = HaltAssertionFailed
	}
	return &Halt{
		Kind:       kind,
		Revert:     revertKind,
		PanicCode:  panicCode,
		ReturnData: returnData,
	}
}
