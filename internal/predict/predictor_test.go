package predict

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	fixtureERC20Bytecode  = "0x6080604052348015600f57600080fd5b50603f80601d6000396000f3fe"
	fixtureERC223Bytecode = "0x608060405234801561001057600080fd5b5061012a806100206000396000f3fe"
)

func newFixturePredictor(t *testing.T) *Predictor {
	t.Helper()
	codes, err := ParseBytecodes(fixtureERC20Bytecode, fixtureERC223Bytecode)
	if err != nil {
		t.Fatalf("parse bytecodes: %v", err)
	}
	p, err := NewPredictor(Config{
		Deployer:  common.HexToAddress(DefaultDeployer),
		Bytecodes: codes,
	})
	if err != nil {
		t.Fatalf("new predictor: %v", err)
	}
	return p
}

func TestPredictPinnedAddresses(t *testing.T) {
	p := newFixturePredictor(t)

	cases := []struct {
		token       string
		erc20Source bool
		want        string
	}{
		{"0xfff9976782d46cc05630d1f6ebab18b2324d6b14", true, "0xb418D75FaFBA0ba0AF7E87Ed66E07e6830804D06"},
		{"0xfff9976782d46cc05630d1f6ebab18b2324d6b14", false, "0x5EE00bb50aaC773106083C546EcEC14B0cDe28aF"},
		{"0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", true, "0x4f8879a27bF61ec1159530331A045B3c1A949A0e"},
		{"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", false, "0xC9c5236DA51051c2e2a0b7EF7863613220E06168"},
	}

	for _, tc := range cases {
		got, err := p.Predict(tc.token, tc.erc20Source)
		if err != nil {
			t.Fatalf("predict %s: %v", tc.token, err)
		}
		if got.Hex() != tc.want {
			t.Fatalf("predict %s (erc20Source=%v): got %s want %s", tc.token, tc.erc20Source, got.Hex(), tc.want)
		}
	}
}

func TestPredictDeterministic(t *testing.T) {
	p := newFixturePredictor(t)
	token := "0x1111111111111111111111111111111111111111"

	first, err := p.Predict(token, true)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := p.Predict(token, true)
		if err != nil {
			t.Fatalf("predict: %v", err)
		}
		if again != first {
			t.Fatalf("non-deterministic result: %s != %s", again.Hex(), first.Hex())
		}
	}
}

func TestPredictChecksumRoundTrip(t *testing.T) {
	p := newFixturePredictor(t)

	for _, token := range []string{
		"0x0000000000000000000000000000000000000001",
		"0xdAC17F958D2ee523a2206206994597C13D831ec7",
		"0x6B175474E89094C44Da98b954EedeAC495271d0F",
	} {
		got, err := p.Predict(token, true)
		if err != nil {
			t.Fatalf("predict %s: %v", token, err)
		}
		mixed, err := common.NewMixedcaseAddressFromString(got.Hex())
		if err != nil {
			t.Fatalf("mixedcase %s: %v", got.Hex(), err)
		}
		if !mixed.ValidChecksum() {
			t.Fatalf("invalid checksum: %s", got.Hex())
		}
	}
}

func TestPredictBytecodeSelection(t *testing.T) {
	p := newFixturePredictor(t)
	token := "0xfff9976782d46cc05630d1f6ebab18b2324d6b14"

	wrapped, err := p.Predict(token, true)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	plain, err := p.Predict(token, false)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if wrapped == plain {
		t.Fatalf("expected distinct addresses for distinct bytecodes")
	}

	salt, err := Salt(common.HexToAddress(token))
	if err != nil {
		t.Fatalf("salt: %v", err)
	}
	codes, _ := ParseBytecodes(fixtureERC20Bytecode, fixtureERC223Bytecode)
	want := crypto.CreateAddress2(common.HexToAddress(DefaultDeployer), salt, crypto.Keccak256(codes.ERC223))
	if wrapped != want {
		t.Fatalf("erc20 source should select erc223 bytecode: %s != %s", wrapped.Hex(), want.Hex())
	}
}

func TestSaltMatchesPaddedAddress(t *testing.T) {
	token := common.HexToAddress("0xfff9976782d46cc05630d1f6ebab18b2324d6b14")

	encoded, err := encodeAddress(token)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	padded := common.LeftPadBytes(token.Bytes(), 32)
	if !bytes.Equal(encoded, padded) {
		t.Fatalf("encoding mismatch: %x != %x", encoded, padded)
	}

	salt, err := Salt(token)
	if err != nil {
		t.Fatalf("salt: %v", err)
	}
	if !bytes.Equal(salt[:], crypto.Keccak256(padded)) {
		t.Fatalf("salt mismatch")
	}
}

func TestCreate2Vectors(t *testing.T) {
	cases := []struct {
		deployer string
		salt     common.Hash
		initCode []byte
		want     string
	}{
		{"0x0000000000000000000000000000000000000000", common.Hash{}, []byte{0x00}, "0x4D1A2e2bB4F88F0250f26Ffff098B0b30B26BF38"},
		{"0xdeadbeef00000000000000000000000000000000", common.Hash{}, []byte{0x00}, "0xB928f69Bb1D91Cd65274e3c79d8986362984fDA3"},
	}

	for _, tc := range cases {
		got := create2(common.HexToAddress(tc.deployer), tc.salt, crypto.Keccak256(tc.initCode))
		if got.Hex() != tc.want {
			t.Fatalf("create2 %s: got %s want %s", tc.deployer, got.Hex(), tc.want)
		}
		lib := crypto.CreateAddress2(common.HexToAddress(tc.deployer), tc.salt, crypto.Keccak256(tc.initCode))
		if got != lib {
			t.Fatalf("create2 mismatch with go-ethereum: %s != %s", got.Hex(), lib.Hex())
		}
	}
}

func TestPredictInvalidAddress(t *testing.T) {
	p := newFixturePredictor(t)

	for _, token := range []string{
		"",
		"0x1234",
		"0xzzz9976782d46cc05630d1f6ebab18b2324d6b14",
		"0xfff9976782d46cc05630d1f6ebab18b2324d6b1400",
		"0xFFf9976782d46CC05630D1f6eBAb18b2324d6B14",
		"0XFFF9976782D46CC05630D1F6EBAB18B2324D6B14",
		"0Xfff9976782d46cc05630d1f6ebab18b2324d6b14",
	} {
		if _, err := p.Predict(token, true); !errors.Is(err, ErrInvalidAddress) {
			t.Fatalf("expected ErrInvalidAddress for %q, got %v", token, err)
		}
	}
}

func TestParseAddressAcceptsUniformCase(t *testing.T) {
	for _, input := range []string{
		"0xfff9976782d46cc05630d1f6ebab18b2324d6b14",
		"0xFFF9976782D46CC05630D1F6EBAB18B2324D6B14",
		"0xfFf9976782d46CC05630D1f6eBAb18b2324d6B14",
		"fff9976782d46cc05630d1f6ebab18b2324d6b14",
	} {
		got, err := ParseAddress(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if got.Hex() != "0xfFf9976782d46CC05630D1f6eBAb18b2324d6B14" {
			t.Fatalf("parse %q: got %s", input, got.Hex())
		}
	}
}

func TestNewPredictorRequiresConstants(t *testing.T) {
	codes, _ := ParseBytecodes(fixtureERC20Bytecode, fixtureERC223Bytecode)

	if _, err := NewPredictor(Config{Bytecodes: codes}); err == nil {
		t.Fatalf("expected error for zero deployer")
	}
	if _, err := NewPredictor(Config{Deployer: common.HexToAddress(DefaultDeployer), Bytecodes: Bytecodes{ERC20: codes.ERC20}}); err == nil {
		t.Fatalf("expected error for missing erc223 bytecode")
	}
	if _, err := NewPredictor(Config{Deployer: common.HexToAddress(DefaultDeployer), Bytecodes: Bytecodes{ERC223: codes.ERC223}}); err == nil {
		t.Fatalf("expected error for missing erc20 bytecode")
	}
}
