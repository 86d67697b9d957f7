package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tokenlistConverter/internal/chain"
	"tokenlistConverter/internal/config"
	"tokenlistConverter/internal/convert"
	"tokenlistConverter/internal/fetch"
	"tokenlistConverter/internal/schema"
	"tokenlistConverter/internal/verify"
)

func runVerify(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadVerify(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	if cfg.Source == "" {
		return fmt.Errorf("source is required")
	}

	predictor, err := buildPredictor(cfg.Predictor)
	if err != nil {
		return err
	}

	validator, err := schema.NewTokenListValidator(cfg.Schema)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	fetcher := fetch.NewFetcher(http.DefaultClient, validator, logger)
	converter := convert.NewConverter(fetcher, predictor, logger)

	fetchCtx, cancel := ctx, context.CancelFunc(func() {})
	if cfg.Timeout > 0 {
		fetchCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
	}
	list, err := converter.Convert(fetchCtx, cfg.Source)
	cancel()
	if err != nil {
		return err
	}
	if list.Empty() {
		return fmt.Errorf("no tokens to verify from %s", cfg.Source)
	}

	verifier := verify.NewVerifier(verify.Config{
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, chainClient, logger)

	logger.Info("verify start",
		zap.String("source", cfg.Source),
		zap.String("deployer", predictor.Deployer().Hex()),
		zap.Int("tokens", len(list.Tokens)),
	)

	report, err := verifier.Verify(ctx, list)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
