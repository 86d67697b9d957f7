package verify

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"tokenlistConverter/internal/model"
)

// CodeReader reads deployed bytecode from a chain.
type CodeReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CodeAt(ctx context.Context, address common.Address) ([]byte, error)
}

// Config holds retry settings for RPC calls.
type Config struct {
	MaxRetries   int
	RetryBackoff time.Duration
}

// TokenStatus reports whether the predicted counterpart has code on chain.
type TokenStatus struct {
	Symbol   string `json:"symbol"`
	Address0 string `json:"address0"`
	Address1 string `json:"address1"`
	Deployed bool   `json:"deployed"`
	CodeSize int    `json:"code_size"`
}

// Report summarises a verification run for one chain.
type Report struct {
	ChainID  uint64        `json:"chain_id"`
	Checked  int           `json:"checked"`
	Deployed int           `json:"deployed"`
	Skipped  int           `json:"skipped"`
	Tokens   []TokenStatus `json:"tokens"`
}

// Verifier cross-checks predicted addresses against deployed contracts.
// A wrapper that exists at its predicted address confirms that the deployer
// and bytecode constants match the on-chain converter.
type Verifier struct {
	reader CodeReader
	retry  retryPolicy
	logger *zap.Logger
}

func NewVerifier(cfg Config, reader CodeReader, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{
		reader: reader,
		retry:  retryPolicy{maxRetries: cfg.MaxRetries, baseDelay: cfg.RetryBackoff, logger: logger},
		logger: logger,
	}
}

// Verify checks every token of list that lives on the reader's chain.
func (v *Verifier) Verify(ctx context.Context, list model.TargetList) (Report, error) {
	if v.reader == nil {
		return Report{}, fmt.Errorf("code reader is nil")
	}

	var chainID *big.Int
	err := v.retry.do(ctx, "chain_id", func(ctx context.Context) error {
		var err error
		chainID, err = v.reader.ChainID(ctx)
		return err
	})
	if err != nil {
		return Report{}, fmt.Errorf("get chain id: %w", err)
	}
	if !chainID.IsUint64() {
		return Report{}, fmt.Errorf("chain id does not fit in uint64: %s", chainID)
	}

	report := Report{ChainID: chainID.Uint64(), Tokens: make([]TokenStatus, 0)}
	for _, token := range list.Tokens {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		if token.ChainID != report.ChainID {
			report.Skipped++
			continue
		}
		if !common.IsHexAddress(token.Address1) {
			return report, fmt.Errorf("token %s: invalid address1 %q", token.Symbol, token.Address1)
		}

		address1 := common.HexToAddress(token.Address1)
		var code []byte
		err := v.retry.do(ctx, "code_at", func(ctx context.Context) error {
			var err error
			code, err = v.reader.CodeAt(ctx, address1)
			return err
		})
		if err != nil {
			return report, fmt.Errorf("code at %s: %w", address1.Hex(), err)
		}

		status := TokenStatus{
			Symbol:   token.Symbol,
			Address0: token.Address0,
			Address1: token.Address1,
			Deployed: len(code) > 0,
			CodeSize: len(code),
		}
		report.Checked++
		if status.Deployed {
			report.Deployed++
		}
		report.Tokens = append(report.Tokens, status)

		v.logger.Debug("wrapper checked",
			zap.String("symbol", token.Symbol),
			zap.String("address1", token.Address1),
			zap.Bool("deployed", status.Deployed),
		)
	}

	v.logger.Info("verify complete",
		zap.Uint64("chain_id", report.ChainID),
		zap.Int("checked", report.Checked),
		zap.Int("deployed", report.Deployed),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}
