package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tokenlistConverter/internal/config"
	"tokenlistConverter/internal/convert"
	"tokenlistConverter/internal/fetch"
	"tokenlistConverter/internal/schema"
	"tokenlistConverter/internal/storage"
	"tokenlistConverter/internal/storage/postgres"
)

func runConvert(cmd *cobra.Command, _ []string) error {
	start := time.Now()

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if len(cfg.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
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

	sinks := storage.Multi{storage.NewDocumentStorage(cfg.Out, len(cfg.Sources) > 1)}
	if cfg.JSONL != "" {
		sinks = append(sinks, storage.NewJsonlStorage(cfg.JSONL))
	}
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.Migrate(ctx); err != nil {
			return err
		}
		sinks = append(sinks, store)
	}

	fetcher := fetch.NewFetcher(http.DefaultClient, validator, logger)
	converter := convert.NewConverter(fetcher, predictor, logger)

	logger.Info("convert start",
		zap.Strings("sources", cfg.Sources),
		zap.String("deployer", predictor.Deployer().Hex()),
		zap.String("out", cfg.Out),
		zap.String("jsonl", cfg.JSONL),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.Int("concurrency", cfg.Concurrency),
		zap.Duration("timeout", cfg.Timeout),
	)

	results, err := converter.ConvertBatch(ctx, cfg.Sources, cfg.Concurrency, cfg.Timeout)
	if err != nil {
		return err
	}

	var converted, empty, aborted int
	for _, result := range results {
		if result.Err != nil {
			aborted++
			continue
		}
		if result.List.Empty() {
			empty++
			continue
		}
		if err := sinks.PutTokenList(ctx, result.Source, result.List); err != nil {
			return fmt.Errorf("store %s: %w", result.Source, err)
		}
		converted++
		logger.Info("list length", zap.String("source", result.Source), zap.Int("tokens", len(result.List.Tokens)))
	}

	logger.Info("full process",
		zap.Int("converted", converted),
		zap.Int("empty", empty),
		zap.Int("aborted", aborted),
		zap.Duration("elapsed", time.Since(start)),
	)

	if aborted > 0 {
		return fmt.Errorf("%d of %d lists aborted on invalid token addresses", aborted, len(results))
	}
	return nil
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
