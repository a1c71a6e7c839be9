package state

import "symprove/internal/smt"

// Prank is a one-shot or persistent msg.sender/tx.origin override,
// modeled on the Prank struct in the cheatcode layer this executor's
// cheatcode dispatcher is grounded on: a single active override. A later
// vm.prank/vm.startPrank replaces the active one (it is not rejected), and
// vm.stopPrank clears it.
type Prank struct {
	Sender     *smt.BitVec
	Origin     *smt.BitVec
	Persistent bool
}

// ExpectedRevert records a vm.expectRevert() armed in the current frame.
// Matcher is the 4-byte selector for the bytes4 overload. The bare-revert
// overload and the bytes overload both set AnyData instead, so any revert
// satisfies them; the bytes overload's payload is not recorded or compared.
type ExpectedRevert struct {
	Matcher []byte
	AnyData bool
}
