// Package calldata builds ABI-typed symbolic calldata for a property
// function call: each scalar argument gets its own fresh symbolic word,
// range-constrained to the Solidity type's actual domain (a uint8 can't
// take on values above 255, an address can't set its top 96 bits) instead
// of ranging over the full 256-bit word the way an untyped SymbolicCalldata
// does.
package calldata

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
	"github.com/pkg/errors"

	"symprove/internal/ethereum/state"
	"symprove/internal/smt"
)

// Bounds caps how large a dynamic type's synthesized representation gets.
// Both stay symbolic within the bound rather than fixed at exactly it, so
// the solver still explores empty/short/long cases.
type Bounds struct {
	MaxDynamicLength int64 // bytes/string content length, in bytes
	MaxArrayLength   int64 // dynamic array element count
}

func DefaultBounds() Bounds {
	return Bounds{MaxDynamicLength: 256, MaxArrayLength: 4}
}

// Synthesize builds ABI-encoded calldata for method, registering every
// argument's range constraint on worldState so the solver enforces it on
// every path that reads this call.
func Synthesize(txID string, method abi.Method, bounds Bounds, worldState *state.WorldState) (*state.TypedCalldata, error) {
	var selector [4]byte
	copy(selector[:], method.ID)
	tc := state.NewTypedCalldata(txID, selector)

	headWords := make([]int64, len(method.Inputs))
	var total int64
	for i, arg := range method.Inputs {
		headWords[i] = total
		total += headSlots(arg.Type)
	}
	tail := 4 + total*32

	for i, arg := range method.Inputs {
		name := arg.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		varName := fmt.Sprintf("%s_%s", txID, name)
		offset := 4 + headWords[i]*32
		next, err := synthesizeValue(tc, worldState, varName, arg.Type, offset, tail, bounds)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %s", name)
		}
		tail = next
	}
	tc.SetSize(tail)
	return tc, nil
}

// headSlots is how many 32-byte head words a top-level argument of type t
// occupies: one for a dynamic type (its tail offset pointer), or however
// many words its own static encoding needs when it's a fixed array or
// tuple of statics.
func headSlots(t abi.Type) int64 {
	if isDynamic(t) {
		return 1
	}
	switch t.T {
	case abi.ArrayTy:
		return int64(t.Size) * headSlots(*t.Elem)
	case abi.TupleTy:
		var n int64
		for _, elem := range t.TupleElems {
			n += headSlots(*elem)
		}
		return n
	default:
		return 1
	}
}

func isDynamic(t abi.Type) bool {
	switch t.T {
	case abi.StringTy, abi.BytesTy, abi.SliceTy:
		return true
	case abi.ArrayTy:
		return isDynamic(*t.Elem)
	case abi.TupleTy:
		for _, elem := range t.TupleElems {
			if isDynamic(*elem) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// synthesizeValue writes t's value at headOffset — directly for a static
// type, or a pointer into the tail for a dynamic one — and returns the
// tail cursor advanced past whatever content it appended there.
func synthesizeValue(tc *state.TypedCalldata, worldState *state.WorldState, name string, t abi.Type, headOffset, tailCursor int64, bounds Bounds) (int64, error) {
	if isDynamic(t) {
		tc.WriteWordAt(headOffset, smt.NewBitVecValInt64(tailCursor-4, 256))
		return synthesizeDynamic(tc, worldState, name, t, tailCursor, bounds)
	}
	switch t.T {
	case abi.ArrayTy:
		cursor := headOffset
		for i := 0; i < t.Size; i++ {
			elemName := fmt.Sprintf("%s_%d", name, i)
			var err error
			tailCursor, err = synthesizeValue(tc, worldState, elemName, *t.Elem, cursor, tailCursor, bounds)
			if err != nil {
				return 0, err
			}
			cursor += headSlots(*t.Elem) * 32
		}
		return tailCursor, nil
	case abi.TupleTy:
		cursor := headOffset
		for i, elem := range t.TupleElems {
			elemName := fmt.Sprintf("%s_%s", name, tupleFieldName(t, i))
			var err error
			tailCursor, err = synthesizeValue(tc, worldState, elemName, *elem, cursor, tailCursor, bounds)
			if err != nil {
				return 0, err
			}
			cursor += headSlots(*elem) * 32
		}
		return tailCursor, nil
	default:
		word, err := synthesizeScalar(worldState, name, t)
		if err != nil {
			return 0, err
		}
		tc.WriteWordAt(headOffset, word)
		return tailCursor, nil
	}
}

func tupleFieldName(t abi.Type, i int) string {
	if i < len(t.TupleRawNames) && t.TupleRawNames[i] != "" {
		return t.TupleRawNames[i]
	}
	return fmt.Sprintf("field%d", i)
}

// synthesizeDynamic writes a bytes/string/slice value at an absolute tail
// offset and returns the cursor past it. A dynamic array of dynamic
// elements (e.g. string[]) is rejected with an error; slices are laid out
// only for scalar or static-tuple element types.
func synthesizeDynamic(tc *state.TypedCalldata, worldState *state.WorldState, name string, t abi.Type, offset int64, bounds Bounds) (int64, error) {
	switch t.T {
	case abi.StringTy, abi.BytesTy:
		length := smt.NewBitVec(name+"_len", 256)
		worldState.AddConstraint(*length.Ule(smt.NewBitVecValInt64(bounds.MaxDynamicLength, 256)))
		tc.WriteWordAt(offset, length)
		cursor := offset + 32
		words := (bounds.MaxDynamicLength + 31) / 32
		for i := int64(0); i < words; i++ {
			tc.WriteWordAt(cursor, smt.NewBitVec(fmt.Sprintf("%s_data_%d", name, i), 256))
			cursor += 32
		}
		return cursor, nil
	case abi.SliceTy:
		if isDynamic(*t.Elem) {
			return 0, errors.Errorf("dynamic array of dynamic elements (%s) is not supported", t.String())
		}
		count := smt.NewBitVec(name+"_len", 256)
		worldState.AddConstraint(*count.Ule(smt.NewBitVecValInt64(bounds.MaxArrayLength, 256)))
		tc.WriteWordAt(offset, count)
		cursor := offset + 32
		for i := int64(0); i < bounds.MaxArrayLength; i++ {
			elemName := fmt.Sprintf("%s_%d", name, i)
			if _, err := synthesizeValue(tc, worldState, elemName, *t.Elem, cursor, cursor, bounds); err != nil {
				return 0, err
			}
			cursor += headSlots(*t.Elem) * 32
		}
		return cursor, nil
	default:
		return 0, errors.Errorf("unsupported dynamic type %s", t.String())
	}
}

// synthesizeScalar creates one fresh symbolic word for a leaf ABI type,
// constrained to that type's actual value domain.
func synthesizeScalar(worldState *state.WorldState, name string, t abi.Type) (*smt.BitVec, error) {
	word := smt.NewBitVec(name, 256)
	switch t.T {
	case abi.BoolTy:
		worldState.AddConstraint(*word.Ule(smt.NewBitVecValInt64(1, 256)))
	case abi.UintTy:
		if t.Size < 256 {
			bound := new(big.Int).Lsh(big.NewInt(1), uint(t.Size))
			worldState.AddConstraint(*word.Ult(smt.NewBitVecValFromBigInt(bound, 256)))
		}
	case abi.IntTy:
		if t.Size < 256 {
			worldState.AddConstraint(signedRangeConstraint(word, t.Size))
		}
	case abi.AddressTy:
		bound := new(big.Int).Lsh(big.NewInt(1), 160)
		worldState.AddConstraint(*word.Ult(smt.NewBitVecValFromBigInt(bound, 256)))
	case abi.FixedBytesTy, abi.FunctionTy, abi.HashTy:
		// full-width word, every bit pattern is a valid value.
	default:
		return nil, errors.Errorf("unsupported scalar type %s", t.String())
	}
	return word, nil
}

// signedRangeConstraint restricts word's two's-complement 256-bit
// representation to the range a size-bit signed integer can take:
// non-negative values below 2^(size-1), or values sign-extended from a
// negative size-bit integer (the top 2^256 - 2^(size-1) values).
func signedRangeConstraint(word *smt.BitVec, size int) smt.Bool {
	half := new(big.Int).Lsh(big.NewInt(1), uint(size-1))
	two256 := new(big.Int).Lsh(big.NewInt(1), 256)
	negBound := new(big.Int).Sub(two256, half)
	posOk := word.Ult(smt.NewBitVecValFromBigInt(half, 256))
	negOk := word.Uge(smt.NewBitVecValFromBigInt(negBound, 256))
	return smt.NewBoolFromTerm(yices2.Or2(posOk.GetRaw(), negOk.GetRaw()))
}
