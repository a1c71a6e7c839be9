package util

import (
	"encoding/hex"
	"os"
	"symprove/internal/disassembler"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// FileExists reports whether path names a file or directory that can be
// stat'd; a missing-file error is not an error here, only other os errors
// (permission, I/O) are propagated.
func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func GetCodeHash(code string) (string, []byte, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(code, "0x"))
	if err != nil {
		return "", nil, err
	}
	result := crypto.Keccak256(data)
	return hex.EncodeToString(result), result, nil
}

func Sha3(data string) ([]byte, error) {
	value, err := hex.DecodeString(strings.TrimPrefix(data, "0x"))
	if err != nil {
		return nil, err
	}

	return crypto.Keccak256(value), nil
}

func GetInstructionIndex(instructions []disassembler.EvmInstruction, address int) int {
	for index, instruction := range instructions {
		if instruction.Address >= address {
			return index
		}
	}
	return -1
}
