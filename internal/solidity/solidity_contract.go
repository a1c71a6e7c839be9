package solidity

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"symprove/internal/util"
)

// CodeInfo is the Solidity source location a bytecode program counter maps
// back to, resolved through the compiler's source map.
type CodeInfo struct {
	FileName string
	LineNum  int
	Code     string
}

// SolidityContract pairs a compiled EVMContract with enough of the solc
// standard-json output (source map, ABI, method identifiers) to translate
// a bytecode offset back into the Solidity line that emitted it.
type SolidityContract struct {
	inputFile    string
	contractName string
	source       []byte

	contract *EVMContract

	runtimeSourceMap  []sourceMapEntry
	creationSourceMap []sourceMapEntry

	abi               string
	methodIdentifiers map[string]string
}

// NewSolidityContract compiles inputFile and resolves a single contract
// from it. An empty contractName picks the contract whose name matches the
// file's base name, the usual one-contract-per-file Solidity convention;
// ambiguous multi-contract files should go through GetConstractsFromFile
// instead.
func NewSolidityContract(inputFile, contractName string) (*SolidityContract, error) {
	source, named, err := compileFile(inputFile)
	if err != nil {
		return nil, err
	}
	if contractName == "" {
		contractName = pickPrimaryContract(named, inputFile)
	}
	compiled, ok := named[contractName]
	if !ok {
		return nil, errors.Errorf("contract %q not found in %s", contractName, inputFile)
	}
	return newSolidityContract(inputFile, contractName, source, compiled), nil
}

// GetConstractsFromFile compiles file and returns every contract defined in
// it, ordered by name for deterministic output.
func GetConstractsFromFile(file string) ([]*SolidityContract, error) {
	source, named, err := compileFile(file)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	contracts := make([]*SolidityContract, 0, len(names))
	for _, name := range names {
		contracts = append(contracts, newSolidityContract(file, name, source, named[name]))
	}
	return contracts, nil
}

func compileFile(file string) ([]byte, map[string]solcContract, error) {
	rawOutput, err := GetSolcJson(file)
	if err != nil {
		return nil, nil, errors.Wrap(err, "GetSolcJson")
	}
	output, err := decodeOutput(rawOutput)
	if err != nil {
		return nil, nil, errors.Wrap(err, "decodeOutput")
	}
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ReadFile")
	}
	named, ok := output.Contracts[file]
	if !ok {
		return nil, nil, errors.Errorf("no compiled output for %s", file)
	}
	return source, named, nil
}

func newSolidityContract(file, name string, source []byte, compiled solcContract) *SolidityContract {
	return &SolidityContract{
		inputFile:         file,
		contractName:      name,
		source:            source,
		contract:          NewEVMContract(compiled.Evm.DeployedBytecode.Object, compiled.Evm.Bytecode.Object, name),
		runtimeSourceMap:  parseSourceMap(compiled.Evm.DeployedBytecode.SourceMap),
		creationSourceMap: parseSourceMap(compiled.Evm.Bytecode.SourceMap),
		abi:               string(compiled.Abi),
		methodIdentifiers: compiled.Evm.MethodIdentifiers,
	}
}

// pickPrimaryContract prefers the contract named after the file, the usual
// Solidity one-contract-per-file convention, falling back to the
// lexicographically first name so the choice stays deterministic.
func pickPrimaryContract(named map[string]solcContract, inputFile string) string {
	base := strings.TrimSuffix(filepath.Base(inputFile), ".sol")
	if _, ok := named[base]; ok {
		return base
	}
	var first string
	for name := range named {
		if first == "" || name < first {
			first = name
		}
	}
	return first
}

func (sc *SolidityContract) GetEVMContract() *EVMContract {
	return sc.contract
}

func (sc *SolidityContract) GetContractName() string {
	return sc.contractName
}

func (sc *SolidityContract) GetABI() string {
	return sc.abi
}

func (sc *SolidityContract) GetMethodIdentifiers() map[string]string {
	return sc.methodIdentifiers
}

// GetSourceInfo resolves pc (a deployed, or with isCreation the creation,
// bytecode offset) to the Solidity source location that emitted it. It
// returns nil when pc falls outside every source-mapped instruction, or
// when the mapped range belongs to an imported file this contract doesn't
// carry source text for.
func (sc *SolidityContract) GetSourceInfo(pc int, isCreation bool) *CodeInfo {
	instructions := sc.contract.Disassembly.GetInstructions()
	sourceMap := sc.runtimeSourceMap
	if isCreation {
		instructions = sc.contract.CreationDisassembly.GetInstructions()
		sourceMap = sc.creationSourceMap
	}
	index := util.GetInstructionIndex(instructions, pc)
	if index < 0 || index >= len(sourceMap) {
		return nil
	}
	entry := sourceMap[index]
	if entry.FileIndex > 0 {
		return nil
	}
	if entry.Start < 0 || entry.Start >= len(sc.source) {
		return nil
	}
	end := entry.Start + entry.Length
	if end > len(sc.source) {
		end = len(sc.source)
	}
	if end <= entry.Start {
		return nil
	}
	lineNum := 1 + strings.Count(string(sc.source[:entry.Start]), "\n")
	return &CodeInfo{
		FileName: sc.inputFile,
		LineNum:  lineNum,
		Code:     strings.TrimSpace(string(sc.source[entry.Start:end])),
	}
}

// sourceMapEntry is one ":"-delimited field group of a solc source map
// ("s:l:f:j:m" per instruction, trailing fields optional and inheriting
// the previous entry's value when blank). Jump type and modifier depth
// aren't needed for line lookups so only s/l/f are kept.
type sourceMapEntry struct {
	Start     int
	Length    int
	FileIndex int
}

func parseSourceMap(raw string) []sourceMapEntry {
	if raw == "" {
		return nil
	}
	groups := strings.Split(raw, ";")
	entries := make([]sourceMapEntry, 0, len(groups))
	var prev sourceMapEntry
	for _, group := range groups {
		fields := strings.Split(group, ":")
		cur := prev
		if len(fields) > 0 && fields[0] != "" {
			if v, err := strconv.Atoi(fields[0]); err == nil {
				cur.Start = v
			}
		}
		if len(fields) > 1 && fields[1] != "" {
			if v, err := strconv.Atoi(fields[1]); err == nil {
				cur.Length = v
			}
		}
		if len(fields) > 2 && fields[2] != "" {
			if v, err := strconv.Atoi(fields[2]); err == nil {
				cur.FileIndex = v
			}
		}
		entries = append(entries, cur)
		prev = cur
	}
	return entries
}
