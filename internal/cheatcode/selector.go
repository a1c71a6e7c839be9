// Package cheatcode holds the selector table and pure argument-decoding
// helpers for the HEVM-compatible cheatcode contract addressed at
// MagicAddress. It has no dependency on the interpreter's state package
// so the state package's opcode handlers can depend on it without a
// cycle; the actual state mutation each cheatcode performs lives in
// symprove/internal/ethereum/state alongside the rest of the opcode
// table.
package cheatcode

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// MagicAddress is the well-known address the cheatcode contract lives at,
// the same address Foundry/HEVM/Halmos-compatible harnesses reserve.
const MagicAddress = "0x7109709ECfa91a80626fF3989D68f67F5b1DD12D"

// MagicAddressBig is MagicAddress as an integer, for comparison against a
// symbolic word's concrete big.Int value.
var MagicAddressBig, _ = new(big.Int).SetString(strings.TrimPrefix(MagicAddress, "0x"), 16)

// selectorOf mirrors the disassembler's own function-hash convention
// (first 4 bytes of keccak256(signature)) rather than hand-computing
// selector constants, so the table stays correct if a signature changes.
// util.Sha3 hex-decodes its input before hashing, which fits its call
// sites elsewhere (hashing already-encoded bytecode) but not a raw
// signature string, so this hashes directly with crypto.Keccak256.
func selectorOf(signature string) [4]byte {
	hash := crypto.Keccak256([]byte(signature))
	var sel [4]byte
	copy(sel[:], hash[:4])
	return sel
}

var (
	SelAssume       = selectorOf("assume(bool)")
	SelPrank        = selectorOf("prank(address)")
	SelPrankAddrs   = selectorOf("prank(address,address)")
	SelStartPrank   = selectorOf("startPrank(address)")
	SelStartPrank2  = selectorOf("startPrank(address,address)")
	SelStopPrank    = selectorOf("stopPrank()")
	SelDeal         = selectorOf("deal(address,uint256)")
	SelRoll         = selectorOf("roll(uint256)")
	SelWarp         = selectorOf("warp(uint256)")
	SelExpectRevert = selectorOf("expectRevert()")
	SelExpectRevertBytes4 = selectorOf("expectRevert(bytes4)")
	SelExpectRevertBytes  = selectorOf("expectRevert(bytes)")
	SelStore        = selectorOf("store(address,bytes32,bytes32)")
	SelLoad         = selectorOf("load(address,bytes32)")
	SelAddr         = selectorOf("addr(uint256)")
)

// Name returns a human-readable name for a selector, used in trace output
// and error messages; the empty string means "not a known cheatcode".
func Name(selector [4]byte) string {
	switch selector {
	case SelAssume:
		return "assume"
	case SelPrank, SelPrankAddrs:
		return "prank"
	case SelStartPrank, SelStartPrank2:
		return "startPrank"
	case SelStopPrank:
		return "stopPrank"
	case SelDeal:
		return "deal"
	case SelRoll:
		return "roll"
	case SelWarp:
		return "warp"
	case SelExpectRevert, SelExpectRevertBytes4, SelExpectRevertBytes:
		return "expectRevert"
	case SelStore:
		return "store"
	case SelLoad:
		return "load"
	case SelAddr:
		return "addr"
	default:
		return ""
	}
}
