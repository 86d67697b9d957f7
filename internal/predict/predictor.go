package predict

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// DefaultDeployer is the token converter contract that deploys wrappers via CREATE2.
const DefaultDeployer = "0x044845FB22B4258d83a6c24b2fB061AFEba7e5b9"

// ErrInvalidAddress is returned for inputs that are not 20-byte hex addresses.
var ErrInvalidAddress = errors.New("invalid address")

// Config holds the deployment constants the prediction must match.
type Config struct {
	Deployer  common.Address
	Bytecodes Bytecodes
}

// Predictor computes wrapper addresses off-chain. It holds no mutable state
// and is safe for concurrent use.
type Predictor struct {
	deployer       common.Address
	erc20CodeHash  []byte
	erc223CodeHash []byte
}

// NewPredictor builds a Predictor, hashing both bytecode blobs once.
func NewPredictor(cfg Config) (*Predictor, error) {
	if cfg.Deployer == (common.Address{}) {
		return nil, fmt.Errorf("deployer address is required")
	}
	if len(cfg.Bytecodes.ERC20) == 0 {
		return nil, fmt.Errorf("erc20 bytecode is required")
	}
	if len(cfg.Bytecodes.ERC223) == 0 {
		return nil, fmt.Errorf("erc223 bytecode is required")
	}

	return &Predictor{
		deployer:       cfg.Deployer,
		erc20CodeHash:  crypto.Keccak256(cfg.Bytecodes.ERC20),
		erc223CodeHash: crypto.Keccak256(cfg.Bytecodes.ERC223),
	}, nil
}

// Predict returns the CREATE2 address of the counterpart wrapper for token.
// erc20Source marks the token as an ERC-20 origin, whose counterpart is
// deployed from the ERC-223 bytecode; false selects the ERC-20 bytecode.
// The result's Hex method yields the EIP-55 checksummed form.
func (p *Predictor) Predict(token string, erc20Source bool) (common.Address, error) {
	address, err := ParseAddress(token)
	if err != nil {
		return common.Address{}, err
	}

	salt, err := Salt(address)
	if err != nil {
		return common.Address{}, err
	}

	codeHash := p.erc20CodeHash
	if erc20Source {
		codeHash = p.erc223CodeHash
	}

	return create2(p.deployer, salt, codeHash), nil
}

// Deployer returns the configured deployer address.
func (p *Predictor) Deployer() common.Address {
	return p.deployer
}

// Salt is keccak256 of the ABI-encoded token address.
func Salt(token common.Address) ([32]byte, error) {
	encoded, err := encodeAddress(token)
	if err != nil {
		return [32]byte{}, err
	}
	var salt [32]byte
	copy(salt[:], crypto.Keccak256(encoded))
	return salt, nil
}

func create2(deployer common.Address, salt [32]byte, codeHash []byte) common.Address {
	buf := make([]byte, 0, 1+common.AddressLength+2*common.HashLength)
	buf = append(buf, 0xff)
	buf = append(buf, deployer.Bytes()...)
	buf = append(buf, salt[:]...)
	buf = append(buf, codeHash...)
	return common.BytesToAddress(crypto.Keccak256(buf)[12:])
}

// ParseAddress accepts a 20-byte hex address. Mixed-case input must carry a
// valid EIP-55 checksum; all-lower and all-upper input is accepted as is.
// The prefix, when present, must be a lowercase 0x.
func ParseAddress(input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "0X") || !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, input)
	}

	address := common.HexToAddress(input)
	digits := input
	if has0xPrefix(digits) {
		digits = digits[2:]
	}
	if digits != strings.ToLower(digits) && digits != strings.ToUpper(digits) {
		if address.Hex()[2:] != digits {
			return common.Address{}, fmt.Errorf("%w: bad checksum %q", ErrInvalidAddress, input)
		}
	}
	return address, nil
}

func has0xPrefix(input string) bool {
	return len(input) >= 2 && input[0] == '0' && input[1] == 'x'
}
