package convert

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"tokenlistConverter/internal/model"
)

// ListFetcher returns a validated source token list.
type ListFetcher interface {
	Fetch(ctx context.Context, source string) (model.SourceList, error)
}

// AddressPredictor derives the counterpart address of a token.
type AddressPredictor interface {
	Predict(token string, erc20Source bool) (common.Address, error)
}

// Converter turns source token lists into counterpart lists.
type Converter struct {
	fetcher   ListFetcher
	predictor AddressPredictor
	logger    *zap.Logger
}

// NewConverter builds a Converter with its dependencies.
func NewConverter(fetcher ListFetcher, predictor AddressPredictor, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		fetcher:   fetcher,
		predictor: predictor,
		logger:    logger,
	}
}

// Convert fetches source and converts every token in order.
//
// A list that cannot be obtained, or that has no tokens, yields an empty
// TargetList and a nil error. The only error returned is a token whose address
// cannot be parsed, which aborts the whole run.
func (c *Converter) Convert(ctx context.Context, source string) (model.TargetList, error) {
	list, err := c.fetcher.Fetch(ctx, source)
	if err != nil {
		c.logger.Error("no data found", zap.String("source", source), zap.Error(err))
		return emptyList(), nil
	}
	if len(list.Tokens) == 0 {
		c.logger.Error("no data found", zap.String("source", source), zap.String("reason", "empty token list"))
		return emptyList(), nil
	}

	converted, err := c.ConvertDocument(list)
	if err != nil {
		return model.TargetList{}, fmt.Errorf("convert %s: %w", source, err)
	}
	return converted, nil
}

// ConvertDocument maps an already validated list. Token order is preserved.
func (c *Converter) ConvertDocument(list model.SourceList) (model.TargetList, error) {
	if c.predictor == nil {
		return model.TargetList{}, fmt.Errorf("predictor is nil")
	}

	start := time.Now()
	converted := model.TargetList{
		Name:    list.Name,
		Version: copyVersion(list.Version),
		LogoURI: list.LogoURI,
		Tokens:  make([]model.TargetToken, 0, len(list.Tokens)),
	}

	for i, token := range list.Tokens {
		address1, err := c.predictor.Predict(token.Address, true)
		if err != nil {
			return model.TargetList{}, fmt.Errorf("token %d (%s): %w", i, token.Symbol, err)
		}
		converted.Tokens = append(converted.Tokens, formatToken(token, address1))
	}

	c.logger.Info("parse list",
		zap.String("name", list.Name),
		zap.Int("tokens", len(converted.Tokens)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return converted, nil
}

func formatToken(token model.SourceToken, address1 common.Address) model.TargetToken {
	return model.TargetToken{
		ChainID:  token.ChainID,
		Symbol:   token.Symbol,
		Name:     token.Name,
		Decimals: token.Decimals,
		LogoURI:  token.LogoURI,
		IsNative: false,
		IsToken:  true,
		Address0: token.Address,
		Address1: address1.Hex(),
	}
}

func copyVersion(v *model.Version) *model.Version {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func emptyList() model.TargetList {
	return model.TargetList{Tokens: []model.TargetToken{}}
}
