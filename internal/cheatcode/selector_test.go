package cheatcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectorOfMatchesKnownSignature(t *testing.T) {
	// keccak256("startPrank(address)")[:4] == 0x06447d56, the selector
	// Foundry's cheatcode contract itself uses.
	assert.Equal(t, [4]byte{0x06, 0x44, 0x7d, 0x56}, SelStartPrank)
}

func TestNameRecognizesEveryTableEntry(t *testing.T) {
	cases := []struct {
		sel  [4]byte
		name string
	}{
		{SelAssume, "assume"},
		{SelPrank, "prank"},
		{SelPrankAddrs, "prank"},
		{SelStartPrank, "startPrank"},
		{SelStartPrank2, "startPrank"},
		{SelStopPrank, "stopPrank"},
		{SelDeal, "deal"},
		{SelRoll, "roll"},
		{SelWarp, "warp"},
		{SelExpectRevert, "expectRevert"},
		{SelExpectRevertBytes4, "expectRevert"},
		{SelExpectRevertBytes, "expectRevert"},
		{SelStore, "store"},
		{SelLoad, "load"},
		{SelAddr, "addr"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.name, Name(tc.sel))
	}
}

func TestNameRejectsUnknownSelector(t *testing.T) {
	assert.Equal(t, "", Name([4]byte{0xde, 0xad, 0xbe, 0xef}))
}

func TestSelectorsAreDistinct(t *testing.T) {
	seen := map[[4]byte]bool{}
	for _, sel := range []([4]byte){
		SelAssume, SelPrank, SelPrankAddrs, SelStartPrank, SelStartPrank2,
		SelStopPrank, SelDeal, SelRoll, SelWarp, SelExpectRevert,
		SelExpectRevertBytes4, SelExpectRevertBytes, SelStore, SelLoad, SelAddr,
	} {
		assert.False(t, seen[sel], "duplicate selector %x", sel)
		seen[sel] = true
	}
}
