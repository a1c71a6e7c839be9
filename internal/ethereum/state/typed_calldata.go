package state

import (
	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"

	"symprove/internal/smt"
)

// TypedCalldata is a byte-addressed calldata buffer built word-by-word by
// symprove/internal/calldata from an ABI method signature. Unlike
// ConcreteCalldata (fully concrete bytes) or SymbolicCalldata (one
// unconstrained byte array), each word written here can carry its own
// range constraint on the world state it was synthesized against, so a
// uint8 argument's word is symbolic but provably < 256 while an address
// argument's word is provably < 2^160.
type TypedCalldata struct {
	TxID     string
	size     int64
	calldata smt.Array
}

// NewTypedCalldata starts a buffer with selector already written at
// offset 0.
func NewTypedCalldata(txID string, selector [4]byte) *TypedCalldata {
	tc := &TypedCalldata{
		TxID:     txID,
		calldata: smt.NewArrayWithNameAndRange(txID+"_calldata", 8),
		size:     4,
	}
	for i, b := range selector {
		_ = tc.calldata.Set(smt.NewBitVecValInt64(int64(i), 256), smt.NewBitVecValInt64(int64(b), 8))
	}
	return tc
}

// WriteWordAt writes a 32-byte word at a caller-computed absolute offset,
// extending size if the word runs past the current tail. Mirrors
// Memory.WriteWordAt's big-endian byte-extraction.
func (tc *TypedCalldata) WriteWordAt(offset int64, word *smt.BitVec) {
	term := word.GetRaw()
	for i := 0; i < 32; i++ {
		b := yices2.Bvextract(term, uint32((31-i)*8), uint32((31-i)*8+7))
		_ = tc.calldata.Set(smt.NewBitVecValInt64(offset+int64(i), 256), smt.NewBitVecFromTerm(b, 8))
	}
	if end := offset + 32; end > tc.size {
		tc.size = end
	}
}

// WriteByteAt writes a single concrete or symbolic byte.
func (tc *TypedCalldata) WriteByteAt(offset int64, b *smt.BitVec) {
	_ = tc.calldata.Set(smt.NewBitVecValInt64(offset, 256), b)
	if end := offset + 1; end > tc.size {
		tc.size = end
	}
}

// SetSize widens size to at least n bytes, used once the synthesizer knows
// the full tail length up front (e.g. a dynamic array's reserved region).
func (tc *TypedCalldata) SetSize(n int64) {
	if n > tc.size {
		tc.size = n
	}
}

func (tc *TypedCalldata) Clone() Calldata {
	return &TypedCalldata{TxID: tc.TxID, calldata: tc.calldata, size: tc.size}
}

func (tc *TypedCalldata) CalldataSize() *smt.BitVec {
	return tc.Size()
}

func (tc *TypedCalldata) GetWordAt(index *smt.BitVec) (*smt.BitVec, error) {
	offset := index.Value()
	parts := make([]*smt.BitVec, 0, 32)
	for i := int64(0); i < 32; i++ {
		b, err := tc.calldata.Get(smt.NewBitVecValInt64(offset+i, 256))
		if err != nil {
			return nil, err
		}
		parts = append(parts, b)
	}
	return smt.Concats(parts...), nil
}

func (tc *TypedCalldata) GetByteAt(index *smt.BitVec) (*smt.BitVec, error) {
	return tc.calldata.Get(index)
}

func (tc *TypedCalldata) Concrete(model *smt.Model) []byte {
	result := make([]byte, tc.size)
	for i := int64(0); i < tc.size; i++ {
		b, err := tc.calldata.Get(smt.NewBitVecValInt64(i, 256))
		if err != nil {
			continue
		}
		if b.IsSymbolic() && model != nil {
			_, m, err := model.ModelCompletionEval(b.GetRaw())
			if err == nil {
				result[i] = byte(smt.GetInt64Value(m, b.GetRaw()))
			}
			continue
		}
		if !b.IsSymbolic() {
			result[i] = byte(b.Value())
		}
	}
	return result
}

func (tc *TypedCalldata) Size() *smt.BitVec {
	return smt.NewBitVecValInt64(tc.size, 256)
}

func (tc *TypedCalldata) Type() string {
	return CalldataSymbolic
}
