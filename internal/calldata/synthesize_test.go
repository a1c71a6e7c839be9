package calldata

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symprove/internal/ethereum/state"
	"symprove/internal/smt"
)

const testABIJSON = `[
	{"name":"check_uint8","type":"function","inputs":[{"name":"x","type":"uint8"}]},
	{"name":"check_mixed","type":"function","inputs":[
		{"name":"who","type":"address"},
		{"name":"amount","type":"int16"},
		{"name":"data","type":"bytes"}
	]}
]`

func parseTestMethod(t *testing.T, name string) abi.Method {
	parsed, err := abi.JSON(strings.NewReader(testABIJSON))
	require.NoError(t, err)
	method, ok := parsed.Methods[name]
	require.True(t, ok, "method %s not found", name)
	return method
}

func TestSynthesizeWritesSelector(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()
	state.Init()

	method := parseTestMethod(t, "check_uint8")
	ws := state.NewWorldState()
	cd, err := Synthesize("tx0", method, DefaultBounds(), ws)
	require.NoError(t, err)

	for i, want := range method.ID[:4] {
		b, err := cd.GetByteAt(smt.NewBitVecValInt64(int64(i), 256))
		require.NoError(t, err)
		assert.Equal(t, int64(want), b.Value())
	}
}

func TestHeadSlotsStaticArray(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(`[{"name":"f","type":"function","inputs":[{"name":"a","type":"uint256[3]"}]}]`))
	require.NoError(t, err)
	method := parsed.Methods["f"]
	assert.Equal(t, int64(3), headSlots(method.Inputs[0].Type))
}

func TestIsDynamicDetectsNestedTuple(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(`[{"name":"f","type":"function","inputs":[{"name":"a","type":"tuple","components":[{"name":"s","type":"string"}]}]}]`))
	require.NoError(t, err)
	method := parsed.Methods["f"]
	assert.True(t, isDynamic(method.Inputs[0].Type))
}

func TestSynthesizeRejectsDynamicArrayOfDynamicElements(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()
	state.Init()

	parsed, err := abi.JSON(strings.NewReader(`[{"name":"f","type":"function","inputs":[{"name":"a","type":"string[]"}]}]`))
	require.NoError(t, err)
	method := parsed.Methods["f"]

	ws := state.NewWorldState()
	_, err = Synthesize("tx0", method, DefaultBounds(), ws)
	assert.Error(t, err)
}

func TestSynthesizeMixedArguments(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()
	state.Init()

	method := parseTestMethod(t, "check_mixed")
	ws := state.NewWorldState()
	cd, err := Synthesize("tx1", method, DefaultBounds(), ws)
	require.NoError(t, err)
	assert.NotNil(t, cd)
	assert.True(t, ws.GetConstraint() != nil)
}
