package solidity

import "encoding/json"

// solcOutput and solcContract mirror the fields of the solc standard-json
// output this package actually needs (see the schema linked from solc.go).
// They're decoded from GetSolcJson's result via a JSON round-trip rather
// than read directly off solc-go's own output type, so SolidityContract
// doesn't depend on solc-go exposing the raw sourceMap/object strings
// through Go fields with any particular name.
type solcOutput struct {
	Contracts map[string]map[string]solcContract `json:"contracts"`
}

type solcBytecode struct {
	Object    string `json:"object"`
	SourceMap string `json:"sourceMap"`
}

type solcContract struct {
	Abi json.RawMessage `json:"abi"`
	Evm struct {
		Bytecode          solcBytecode      `json:"bytecode"`
		DeployedBytecode  solcBytecode      `json:"deployedBytecode"`
		MethodIdentifiers map[string]string `json:"methodIdentifiers"`
	} `json:"evm"`
}

func decodeOutput(rawOutput interface{}) (*solcOutput, error) {
	data, err := json.Marshal(rawOutput)
	if err != nil {
		return nil, err
	}
	var output solcOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, err
	}
	return &output, nil
}
