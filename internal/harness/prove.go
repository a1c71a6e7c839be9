package harness

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"symprove/internal/calldata"
	"symprove/internal/ethereum/state"
	"symprove/internal/issuse"
	"symprove/internal/module"
	"symprove/internal/smt"
	"symprove/internal/solidity"
	"symprove/internal/strategy"
)

// Verdict is a property function's final classification.
type Verdict string

const (
	VerdictPass    Verdict = "PASS"
	VerdictFail    Verdict = "FAIL"
	VerdictUnknown Verdict = "UNKNOWN"
)

// PropertyResult is one property function's outcome across every feasible
// path the prover explored for it.
type PropertyResult struct {
	Contract       string
	Function       string
	Verdict        Verdict
	PathsExplored  int
	Reason         string
	FailingHalt    *state.Halt
	Counterexample []byte

	// Hazards are SWC-class issues (unprotected SELFDESTRUCT, tx.origin
	// authorization, unchecked call return values, arbitrary jump targets)
	// flagged by the detector modules along any path explored while proving
	// this property, independent of the property's own PASS/FAIL verdict.
	Hazards []*issuse.Issuse
}

// newHazardModuleManager builds a ModuleManager carrying every detector in
// internal/module, the same set cmd/analyze used to register standalone.
// Here they run as passengers on the property-proving pump instead: every
// path a property explores is also scanned for SWC-104/106/115/127 hazards.
func newHazardModuleManager() *module.ModuleManager {
	mm := module.NewModuleManager()
	mm.AddModule(module.NewArbitraryJump())
	mm.AddModule(module.NewAccidentallyKillable())
	mm.AddModule(module.NewTxOrigin())
	mm.AddModule(module.NewUncheckedRetval())
	return mm
}

func collectHazards(mm *module.ModuleManager, contract *solidity.SolidityContract) []*issuse.Issuse {
	var all []*issuse.Issuse
	for _, dm := range mm.CallbackModules {
		all = append(all, dm.GetIssuses()...)
	}
	hazards := dedupeIssues(all)
	for _, is := range hazards {
		is.AddCodeInfo(contract)
	}
	return hazards
}

// dedupeIssues drops repeat issues flagged at the same SWC ID and bytecode
// address by more than one explored path, keeping the first occurrence.
func dedupeIssues(all []*issuse.Issuse) []*issuse.Issuse {
	var out []*issuse.Issuse
	seen := make(map[string]bool)
	for _, is := range all {
		key := fmt.Sprintf("%s@%d", is.ID, is.Address)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, is)
	}
	return out
}

// ProverConfig mirrors the CLI knobs a `prove` invocation exposes.
type ProverConfig struct {
	UseBFS         bool
	Bounds         strategy.Bounds
	CalldataBounds calldata.Bounds
}

func DefaultProverConfig() ProverConfig {
	return ProverConfig{
		Bounds:         *strategy.NewBounds(256, 4096, 16, 30*time.Second),
		CalldataBounds: calldata.DefaultBounds(),
	}
}

// Prover runs every property function on a deployed contract and
// classifies each PASS, FAIL, or UNKNOWN, the way a Foundry fuzz/symbolic
// test runner would, but exploring every feasible symbolic path instead of
// sampling concrete inputs.
type Prover struct {
	cfg ProverConfig
}

func NewProver(cfg ProverConfig) *Prover {
	return &Prover{cfg: cfg}
}

// ProveContract deploys contract, runs setUp() if the ABI defines one, then
// proves every method matchTest accepts.
func (p *Prover) ProveContract(contract *solidity.SolidityContract, matchTest func(string) bool) ([]*PropertyResult, error) {
	parsedABI, err := abi.JSON(strings.NewReader(contract.GetABI()))
	if err != nil {
		return nil, errors.Wrap(err, "abi.JSON")
	}

	worldState := state.NewWorldState()
	worldState.PutAccount(state.NewAccount(state.Actors["CREATOR"], nil, smt.NewArray(), 0, "", false))
	worldState.PutAccount(state.NewAccount(state.Actors["ATTACKER"], nil, smt.NewArray(), 0, "", false))

	deployer := NewAnalyzer(module.NewModuleManager())
	contractAccount, err := deployer.executeContractCreationTx(
		contract.GetEVMContract().CreationCode, contract.GetContractName(), worldState)
	if err != nil {
		return nil, errors.Wrap(err, "deploy")
	}
	baseStates := deployer.worldStates
	if len(baseStates) == 0 {
		return nil, errors.Errorf("constructor for %s never reached a return", contract.GetContractName())
	}

	if setUp, ok := parsedABI.Methods["setUp"]; ok && len(setUp.Inputs) == 0 {
		baseStates, err = p.runSetUp(setUp, contractAccount, baseStates)
		if err != nil {
			return nil, errors.Wrap(err, "setUp")
		}
	}

	var results []*PropertyResult
	for _, method := range sortedMethods(parsedABI) {
		if !matchTest(method.Name) {
			continue
		}
		result, err := p.proveMethod(contract, method, contractAccount, baseStates)
		if err != nil {
			return nil, errors.Wrapf(err, "proving %s", method.Name)
		}
		results = append(results, result)
	}
	return results, nil
}

func sortedMethods(parsed abi.ABI) []abi.Method {
	names := make([]string, 0, len(parsed.Methods))
	for name := range parsed.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	methods := make([]abi.Method, 0, len(names))
	for _, name := range names {
		methods = append(methods, parsed.Methods[name])
	}
	return methods
}

// runSetUp calls setUp() from every seed world state and returns the world
// states of every path on which it returned without reverting; a property
// is then proven once per surviving setUp path.
func (p *Prover) runSetUp(method abi.Method, contractAccount *state.Account, seeds []*state.WorldState) ([]*state.WorldState, error) {
	var next []*state.WorldState
	for i, ws := range seeds {
		txID := fmt.Sprintf("setup%d", i)
		cd, err := calldata.Synthesize(txID, method, p.cfg.CalldataBounds, ws)
		if err != nil {
			return nil, err
		}
		gs, err := state.PrepareTypedProperty(ws, contractAccount.Address, cd, txID)
		if err != nil {
			return nil, err
		}
		terminal, err := p.runPump([]*state.GlobalState{gs}, module.NewModuleManager())
		if err != nil {
			return nil, err
		}
		for _, t := range terminal {
			if t.Halt != nil && t.Halt.Kind == state.HaltReturned {
				next = append(next, t.WorldState)
			}
		}
	}
	if len(next) == 0 {
		return nil, errors.New("setUp never returned successfully on any feasible path")
	}
	return next, nil
}

// proveMethod calls method from every base world state and folds every
// terminal path into a single verdict: PASS only if every path passes,
// FAIL as soon as one path fails, UNKNOWN if none fail but some path hit a
// bound before reaching a verdict.
func (p *Prover) proveMethod(contract *solidity.SolidityContract, method abi.Method, contractAccount *state.Account, baseStates []*state.WorldState) (*PropertyResult, error) {
	result := &PropertyResult{Contract: contract.GetContractName(), Function: method.Name, Verdict: VerdictPass}
	mm := newHazardModuleManager()
	for i, base := range baseStates {
		ws := base.Clone()
		txID := fmt.Sprintf("%s_%d", method.Name, i)
		cd, err := calldata.Synthesize(txID, method, p.cfg.CalldataBounds, ws)
		if err != nil {
			return nil, err
		}
		gs, err := state.PrepareTypedProperty(ws, contractAccount.Address, cd, txID)
		if err != nil {
			return nil, err
		}
		terminal, err := p.runPump([]*state.GlobalState{gs}, mm)
		if err != nil {
			return nil, err
		}
		for _, t := range terminal {
			result.PathsExplored++
			switch verdict := classifyPath(t); verdict {
			case VerdictFail:
				result.Verdict = VerdictFail
				result.FailingHalt = t.Halt
				result.Reason = failureReason(t.Halt)
				if model, sat, merr := t.WorldState.Model(); merr == nil && sat {
					result.Counterexample = cd.Concrete(model)
				}
			case VerdictUnknown:
				if result.Verdict == VerdictPass {
					result.Verdict = VerdictUnknown
					result.Reason = "a path hit a bound before reaching a verdict"
				}
			}
		}
		if result.Verdict == VerdictFail {
			break
		}
	}
	result.Hazards = collectHazards(mm, contract)
	return result, nil
}

// classifyPath turns one terminal path's Halt (and any expectRevert armed
// against it) into a per-path verdict.
func classifyPath(gs *state.GlobalState) Verdict {
	if gs.Halt == nil {
		return VerdictUnknown
	}
	switch gs.Halt.Kind {
	case state.HaltBounded, state.HaltSolverTimeout, state.HaltMalformedState:
		return VerdictUnknown
	case state.HaltReturned:
		if gs.ExpectedRevert != nil {
			return VerdictFail
		}
		return VerdictPass
	case state.HaltAssertionFailed, state.HaltUnexpectedRevert, state.HaltReverted:
		if gs.ExpectedRevert != nil && expectedRevertMatches(gs.ExpectedRevert, gs.Halt) {
			return VerdictPass
		}
		return VerdictFail
	default:
		return VerdictUnknown
	}
}

func expectedRevertMatches(expected *state.ExpectedRevert, halt *state.Halt) bool {
	if expected.AnyData || len(expected.Matcher) == 0 {
		return true
	}
	if halt.ReturnData == nil || len(halt.ReturnData.Data) < len(expected.Matcher) {
		return false
	}
	for i, b := range expected.Matcher {
		word := halt.ReturnData.Data[i]
		if word == nil || word.IsSymbolic() || byte(word.Value()) != b {
			return false
		}
	}
	return true
}

func failureReason(halt *state.Halt) string {
	if halt == nil {
		return "unknown"
	}
	if halt.Kind == state.HaltAssertionFailed {
		return "assertion failed"
	}
	if halt.Revert != "" {
		return string(halt.Revert)
	}
	return string(halt.Kind)
}

// runPump drives seed states to termination the way Analyzer.exec drives a
// scan, but collects Halt-tagged terminal states instead of issues, and
// enforces per-property depth/width/wall-clock Bounds instead of running
// unbounded.
func (p *Prover) runPump(seed []*state.GlobalState, mm *module.ModuleManager) ([]*state.GlobalState, error) {
	var strat strategy.Strategy
	if p.cfg.UseBFS {
		strat = strategy.NewBFS()
	} else {
		strat = strategy.NewDFS()
	}
	bounds := p.cfg.Bounds
	bounds.Start()

	strat.Push(seed...)
	var terminal []*state.GlobalState
	for strat.HasNext() {
		if bounds.Expired() {
			log.Warnf("prover: wall-clock bound exceeded with %d paths still pending", strat.Size())
			for strat.HasNext() {
				pendingState, _ := strat.Pop()
				pendingState.Halt = &state.Halt{Kind: state.HaltBounded, Reason: "wall-clock bound exceeded"}
				terminal = append(terminal, pendingState)
			}
			break
		}
		globalState, err := strat.Pop()
		if err != nil {
			return nil, errors.Wrap(err, "Pop")
		}
		if bounds.DepthExceeded(globalState.MachineState.GetDepth()) {
			globalState.Halt = &state.Halt{Kind: state.HaltBounded, Reason: "depth bound exceeded"}
			terminal = append(terminal, globalState)
			continue
		}
		newStates, done, err := p.step(globalState, mm)
		if err != nil {
			return nil, errors.Wrap(err, "step")
		}
		if done {
			terminal = append(terminal, globalState)
			continue
		}
		var pending []*state.GlobalState
		for _, ns := range newStates {
			if ns.Halt != nil {
				terminal = append(terminal, ns)
				continue
			}
			pending = append(pending, ns)
		}
		newStates = pending
		if len(newStates) > 1 {
			var feasible []*state.GlobalState
			for _, ns := range newStates {
				if ns.WorldState.IsConstraintPossible() {
					feasible = append(feasible, ns)
				}
			}
			newStates = feasible
		}
		if bounds.WidthExceeded(strat.Size() + len(newStates)) {
			log.Warnf("prover: width bound exceeded, halting %d forked paths as bounded", len(newStates))
			for _, ns := range newStates {
				ns.Halt = &state.Halt{Kind: state.HaltBounded, Reason: "width bound exceeded"}
				terminal = append(terminal, ns)
			}
			continue
		}
		strat.Push(newStates...)
	}
	return terminal, nil
}

// step evaluates one instruction on globalState, mirroring
// Analyzer.executeState's TxStart/TxEnd handling and its pre/post hook
// dispatch through mm, but reporting a Halt on the state itself (done=true)
// instead of accumulating issues on an Analyzer.
func (p *Prover) step(globalState *state.GlobalState, mm *module.ModuleManager) (newStates []*state.GlobalState, done bool, err error) {
	instruction, err := globalState.GetCurrentInstruction()
	if err != nil {
		globalState.Halt = &state.Halt{Kind: state.HaltMalformedState, Reason: err.Error()}
		return nil, true, nil
	}
	if globalState.MachineState.StackSize() < instruction.RequiredArguments {
		globalState.Halt = &state.Halt{Kind: state.HaltMalformedState, Reason: "stack underflow at " + instruction.OPCode}
		return nil, true, nil
	}

	for _, hook := range mm.PreHooks[instruction.OPCode] {
		hook(globalState)
	}

	evaluateResult, err := state.NewInstruction(instruction.OPCode, nil, nil).Evaluate(globalState)
	if err != nil {
		globalState.Halt = &state.Halt{Kind: state.HaltMalformedState, Reason: err.Error()}
		return nil, true, nil
	}

	switch {
	case evaluateResult.TxStart != nil:
		newGlobalState, err := evaluateResult.TxStart.Tx.InitialGlobalState()
		if err != nil {
			return nil, false, errors.Wrap(err, "TxStart.Tx.InitialGlobalState")
		}
		newGlobalState.TransactionStack = globalState.TransactionStack.Clone()
		newGlobalState.TransactionStack.Push(&state.TxInfo{State: globalState, Tx: evaluateResult.TxStart.Tx})
		newGlobalState.WorldState.SetConstraint(globalState.WorldState.GetConstraint())
		newStates = []*state.GlobalState{newGlobalState}

	case evaluateResult.TxEnd != nil:
		haltedState := evaluateResult.TxEnd.GlobalState
		if len(evaluateResult.GlobalStates) == 0 {
			haltedState.Halt = state.ClassifyHalt(evaluateResult.TxEnd.Revert, evaluateResult.TxEnd.ReturnData)
			for _, hook := range mm.PostHooks[instruction.OPCode] {
				hook(globalState)
			}
			return nil, true, nil
		}
		returnGlobalState := haltedState.Clone()
		ns, err := (&Analyzer{}).endMessageCall(returnGlobalState, globalState, evaluateResult.TxEnd.Revert, evaluateResult.TxEnd.ReturnData)
		if err != nil {
			return nil, false, errors.Wrap(err, "endMessageCall")
		}
		newStates = ns

	default:
		newStates = evaluateResult.GlobalStates
	}

	for _, hook := range mm.PostHooks[instruction.OPCode] {
		hook(globalState)
	}
	return newStates, false, nil
}
