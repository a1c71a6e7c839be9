package main

import (
	"crypto/ecdsa"
	"fmt"
	"strings"
	"time"

	funcmanager "symprove/internal/ethereum/function_managers"
	"symprove/internal/ethereum/state"
	"symprove/internal/attest"
	"symprove/internal/calldata"
	"symprove/internal/harness"
	"symprove/internal/solidity"
	"symprove/internal/strategy"

	"github.com/ethereum/go-ethereum/crypto"
	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	proveFile          string
	proveContractMatch string
	proveTestMatch     string
	proveUseBFS        bool
	proveMaxDepth      int
	proveMaxWidth      int
	proveLoopBound     int
	proveTimeout       time.Duration
	proveMaxDynamicLen int64
	proveMaxArrayLen   int64
	proveAttestKey     string
)

var proveCommand = &cobra.Command{
	Use:   "prove",
	Short: "explore every feasible path of a contract's property functions and classify each PASS/FAIL/UNKNOWN",
	Long:  ``,
	Run: func(*cobra.Command, []string) {
		if err := proveExec(); err != nil {
			fmt.Printf("service err: %v\n", err)
		}
	},
}

func init() {
	proveCommand.Flags().StringVar(&proveFile, "file", "", "solidity file to prove")
	proveCommand.Flags().StringVar(&proveContractMatch, "match-contract", "", "only prove contracts whose name contains this substring")
	proveCommand.Flags().StringVar(&proveTestMatch, "match-test", "test", "only prove functions whose name contains this substring")
	proveCommand.Flags().BoolVar(&proveUseBFS, "bfs", false, "explore paths breadth-first instead of depth-first")
	proveCommand.Flags().IntVar(&proveMaxDepth, "max-depth", 256, "maximum call/branch depth per path, 0 for unbounded")
	proveCommand.Flags().IntVar(&proveMaxWidth, "max-width", 4096, "maximum number of live paths pending at once, 0 for unbounded")
	proveCommand.Flags().IntVar(&proveLoopBound, "loop-bound", 16, "maximum times a JUMPDEST may be revisited on a path before it halts Bounded, 0 for unbounded")
	proveCommand.Flags().DurationVar(&proveTimeout, "timeout", 30*time.Second, "wall-clock budget per property function, 0 for unbounded")
	proveCommand.Flags().Int64Var(&proveMaxDynamicLen, "max-dynamic-length", 256, "maximum byte length synthesized for a bytes/string argument")
	proveCommand.Flags().Int64Var(&proveMaxArrayLen, "max-array-length", 4, "maximum element count synthesized for a dynamic array argument")
	proveCommand.Flags().StringVar(&proveAttestKey, "attest-key", "", "hex-encoded ECDSA private key; when set, sign every verdict and print the attestation")
}

func proveExec() error {
	yices2.Init()
	defer yices2.Exit()

	state.Init()
	funcmanager.Init()
	state.LoopBound = proveLoopBound

	contracts, err := solidity.GetConstractsFromFile(proveFile)
	if err != nil {
		return errors.Wrap(err, "GetConstractsFromFile")
	}

	var signingKey *ecdsa.PrivateKey
	if proveAttestKey != "" {
		signingKey, err = crypto.HexToECDSA(strings.TrimPrefix(proveAttestKey, "0x"))
		if err != nil {
			return errors.Wrap(err, "HexToECDSA")
		}
	}

	cfg := harness.ProverConfig{
		UseBFS: proveUseBFS,
		Bounds: *strategy.NewBounds(proveMaxDepth, proveMaxWidth, proveLoopBound, proveTimeout),
		CalldataBounds: calldata.Bounds{
			MaxDynamicLength: proveMaxDynamicLen,
			MaxArrayLength:   proveMaxArrayLen,
		},
	}
	prover := harness.NewProver(cfg)
	matchTest := func(name string) bool { return strings.Contains(name, proveTestMatch) }

	var failed bool
	for _, contract := range contracts {
		if proveContractMatch != "" && !strings.Contains(contract.GetContractName(), proveContractMatch) {
			continue
		}
		results, err := prover.ProveContract(contract, matchTest)
		if err != nil {
			fmt.Printf("%s: %v\n", contract.GetContractName(), err)
			failed = true
			continue
		}
		for _, result := range results {
			fmt.Printf("[%s] %s.%s (%d paths)", result.Verdict, result.Contract, result.Function, result.PathsExplored)
			if result.Reason != "" {
				fmt.Printf(" - %s", result.Reason)
			}
			fmt.Println()
			if result.Verdict == harness.VerdictFail {
				failed = true
				if len(result.Counterexample) > 0 {
					fmt.Printf("  counterexample calldata: 0x%x\n", result.Counterexample)
				}
			}
			for _, hazard := range result.Hazards {
				fmt.Println(hazard)
			}
			if signingKey != nil {
				record := attest.Record{
					Version:       1,
					Contract:      result.Contract,
					Function:      result.Function,
					Verdict:       string(result.Verdict),
					PathsExplored: result.PathsExplored,
					MaxDepth:      proveMaxDepth,
					LoopBound:     proveLoopBound,
				}
				signed, err := attest.Sign(record, signingKey)
				if err != nil {
					return errors.Wrap(err, "Sign")
				}
				fmt.Printf("  attestation: hash=%s sig=%s\n", signed.Hash, signed.Signature)
			}
		}
	}
	if failed {
		return errors.New("one or more properties failed")
	}
	return nil
}
