package predict

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Bytecodes holds the two init code blobs the converter contract deploys.
type Bytecodes struct {
	ERC20  []byte
	ERC223 []byte
}

type bytecodeFile struct {
	Bytecode20  string `json:"bytecode20"`
	Bytecode223 string `json:"bytecode223"`
}

// LoadBytecodes reads a JSON file of the form
// {"bytecode20": "0x...", "bytecode223": "0x..."}.
func LoadBytecodes(path string) (Bytecodes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bytecodes{}, fmt.Errorf("read bytecode file: %w", err)
	}

	var file bytecodeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Bytecodes{}, fmt.Errorf("parse bytecode file: %w", err)
	}

	return ParseBytecodes(file.Bytecode20, file.Bytecode223)
}

// ParseBytecodes decodes 0x-prefixed hex blobs.
func ParseBytecodes(erc20Hex, erc223Hex string) (Bytecodes, error) {
	erc20, err := decodeBlob("bytecode20", erc20Hex)
	if err != nil {
		return Bytecodes{}, err
	}
	erc223, err := decodeBlob("bytecode223", erc223Hex)
	if err != nil {
		return Bytecodes{}, err
	}
	return Bytecodes{ERC20: erc20, ERC223: erc223}, nil
}

func decodeBlob(name, input string) ([]byte, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%s is required", name)
	}
	data, err := hexutil.Decode(input)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty", name)
	}
	return data, nil
}
