package predict

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	addressArgs     abi.Arguments
	addressArgsOnce sync.Once
	addressArgsErr  error
)

func addressArguments() (abi.Arguments, error) {
	addressArgsOnce.Do(func() {
		addressType, err := abi.NewType("address", "", nil)
		if err != nil {
			addressArgsErr = err
			return
		}
		addressArgs = abi.Arguments{{Type: addressType}}
	})
	return addressArgs, addressArgsErr
}

// encodeAddress returns the canonical ABI encoding of a single address:
// one 32-byte word, left padded with zeros.
func encodeAddress(address common.Address) ([]byte, error) {
	args, err := addressArguments()
	if err != nil {
		return nil, fmt.Errorf("build address abi: %w", err)
	}
	encoded, err := args.Pack(address)
	if err != nil {
		return nil, fmt.Errorf("pack address: %w", err)
	}
	return encoded, nil
}
