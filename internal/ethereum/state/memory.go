package state

import (
	"fmt"
	"symprove/internal/smt"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

// Memory 内存
// EVM的内存操作单元32byte，大端序
// 这里连续的内存最小为1byte
// index -> byte，使用8bits的bitvec模拟1byte
type Memory struct {
	memory map[int64]*smt.BitVec
	// length is the highest extended byte offset seen so far, tracked
	// explicitly since memory is a sparse map and its cardinality is not
	// the EVM-visible memory size (accounts may write the same offset
	// twice, or extend without writing every intervening byte).
	length int64
}

func NewMemory() *Memory {
	return &Memory{
		memory: make(map[int64]*smt.BitVec, 0),
	}
}

func (m *Memory) GetMemory() map[int64]*smt.BitVec {
	return m.memory
}

// Size returns the current EVM-visible memory length in bytes, i.e. the
// highest offset ever extended to, word-aligned per the extension calls
// MachineState.MemExtend already performs.
func (m *Memory) Size() int64 {
	return m.length
}

func (m *Memory) Clone() *Memory {
	newMemory := &Memory{
		memory: make(map[int64]*smt.BitVec, 0),
		length: m.length,
	}
	for k, v := range m.memory {
		newMemory.memory[k] = v.Clone().AsBitVec()
	}
	return newMemory
}

// Extend grows the tracked memory length to size bytes, zero-filling any
// bytes read before they are written (GetWordAt/WriteByteAt already treat
// a missing map entry as fresh state; this only advances the length used
// for gas accounting and MSIZE).
func (m *Memory) Extend(size int64) {
	if size > m.length {
		m.length = size
	}
}

// GetWordAt 返回index处长度为32byte的word
// 大端序
func (m *Memory) GetWordAt(index *smt.BitVec) (result *smt.BitVec) {
	for i := index.Value(); i <= index.Value()+31; i++ {
		currentByte := m.byteAt(int64(i))
		currentByte.RotateLeft()
		if result == nil {
			result = currentByte
			continue
		}
		result = smt.Concat(result, currentByte)
	}
	return result
}

// byteAt returns the byte at offset i, defaulting to a concrete zero for
// any offset never written to (untouched EVM memory reads as zero).
func (m *Memory) byteAt(i int64) *smt.BitVec {
	if b, ok := m.memory[i]; ok {
		return b
	}
	return smt.NewBitVecValInt64(0, 8)
}

func (m *Memory) WriteByteAt(index, value *smt.BitVec) error {
	if value.Size() != 8 {
		return fmt.Errorf("wrong value size: %d", value.Size())
	}
	m.memory[index.Value()] = value
	if index.Value()+1 > m.length {
		m.length = index.Value() + 1
	}
	return nil
}

// writeWordAt 在index处写入长度为32byte的word
// write_word_at
// 布尔类型无法被存储，这里转换成整型再存储
func (m *Memory) WriteWordAt(index, value *smt.BitVec) error {
	termToWrite := value.GetRaw()
	termSize := yices2.TermBitsize(termToWrite)
	if yices2.TypeIsBool(yices2.TypeOfTerm(value.GetRaw())) {
		x := yices2.BvconstUint32(256, 1)
		y := yices2.BvconstUint32(256, 0)
		termToWrite = yices2.Ite(value.GetRaw(), x, y)
		termSize = yices2.TermBitsize(termToWrite)
	}
	// 32byte 256bit
	if termSize != uint32(256) {
		return fmt.Errorf("ErrorWrongParamType")
	}
	// 依次将数据放到连续的32个byte里
	// 大端序
	for i := 0; i < 32; i++ {
		v := yices2.Bvextract(termToWrite, uint32((31-i)*8), uint32((31-i)*8+7))
		if err := m.WriteByteAt(index, smt.NewBitVecFromTerm(v, 8)); err != nil {
			return err
		}
		index = index.AddInt64(int64(1))
	}
	return nil
}
