package harness

import (
	"testing"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
	"github.com/stretchr/testify/assert"

	"symprove/internal/ethereum/state"
	"symprove/internal/issuse"
	"symprove/internal/smt"
)

func TestClassifyPathReturnedWithoutExpectRevertPasses(t *testing.T) {
	gs := &state.GlobalState{Halt: &state.Halt{Kind: state.HaltReturned}}
	assert.Equal(t, VerdictPass, classifyPath(gs))
}

func TestClassifyPathReturnedWithArmedExpectRevertFails(t *testing.T) {
	gs := &state.GlobalState{
		Halt:           &state.Halt{Kind: state.HaltReturned},
		ExpectedRevert: &state.ExpectedRevert{AnyData: true},
	}
	assert.Equal(t, VerdictFail, classifyPath(gs))
}

func TestClassifyPathAssertionFailedFails(t *testing.T) {
	gs := &state.GlobalState{Halt: &state.Halt{Kind: state.HaltAssertionFailed}}
	assert.Equal(t, VerdictFail, classifyPath(gs))
}

func TestClassifyPathRevertedMatchingExpectRevertPasses(t *testing.T) {
	gs := &state.GlobalState{
		Halt:           &state.Halt{Kind: state.HaltReverted},
		ExpectedRevert: &state.ExpectedRevert{AnyData: true},
	}
	assert.Equal(t, VerdictPass, classifyPath(gs))
}

func TestClassifyPathBoundedIsUnknown(t *testing.T) {
	gs := &state.GlobalState{Halt: &state.Halt{Kind: state.HaltBounded}}
	assert.Equal(t, VerdictUnknown, classifyPath(gs))
}

func TestClassifyPathNoHaltIsUnknown(t *testing.T) {
	assert.Equal(t, VerdictUnknown, classifyPath(&state.GlobalState{}))
}

func TestExpectedRevertMatchesSelector(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	matcher := []byte{0x08, 0xc3, 0x79, 0xa0}
	expected := &state.ExpectedRevert{Matcher: matcher}
	halt := &state.Halt{ReturnData: &state.ReturnData{Data: []*smt.BitVec{
		smt.NewBitVecValInt64(0x08, 256),
		smt.NewBitVecValInt64(0xc3, 256),
		smt.NewBitVecValInt64(0x79, 256),
		smt.NewBitVecValInt64(0xa0, 256),
	}}}
	assert.True(t, expectedRevertMatches(expected, halt))
}

func TestExpectedRevertRejectsWrongSelector(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	matcher := []byte{0x08, 0xc3, 0x79, 0xa0}
	expected := &state.ExpectedRevert{Matcher: matcher}
	halt := &state.Halt{ReturnData: &state.ReturnData{Data: []*smt.BitVec{
		smt.NewBitVecValInt64(0x4e, 256),
		smt.NewBitVecValInt64(0x48, 256),
		smt.NewBitVecValInt64(0x7b, 256),
		smt.NewBitVecValInt64(0x71, 256),
	}}}
	assert.False(t, expectedRevertMatches(expected, halt))
}

func TestFailureReasonPrefersAssertion(t *testing.T) {
	assert.Equal(t, "assertion failed", failureReason(&state.Halt{Kind: state.HaltAssertionFailed, Revert: state.RevertPanicAssertion}))
}

func TestFailureReasonFallsBackToRevertKind(t *testing.T) {
	assert.Equal(t, string(state.RevertRequireString), failureReason(&state.Halt{Kind: state.HaltReverted, Revert: state.RevertRequireString}))
}

func TestDedupeIssuesKeepsFirstOccurrencePerIDAndAddress(t *testing.T) {
	all := []*issuse.Issuse{
		{ID: "106", Address: 12},
		{ID: "106", Address: 12},
		{ID: "106", Address: 40},
		{ID: "115", Address: 12},
	}
	deduped := dedupeIssues(all)
	assert.Len(t, deduped, 3)
}

func TestNewHazardModuleManagerRegistersEveryDetector(t *testing.T) {
	mm := newHazardModuleManager()
	assert.Len(t, mm.CallbackModules, 4)
	assert.NotEmpty(t, mm.PreHooks["JUMP"])
	assert.NotEmpty(t, mm.PreHooks["SELFDESTRUCT"])
	assert.NotEmpty(t, mm.PostHooks["ORIGIN"])
	assert.NotEmpty(t, mm.PostHooks["CALL"])
}
