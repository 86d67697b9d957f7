package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tokenlistConverter/internal/config"
	"tokenlistConverter/internal/predict"
)

func runPredict(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadPredict(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	addresses := append(cfg.Addresses, args...)
	if len(addresses) == 0 {
		return fmt.Errorf("at least one address is required")
	}

	predictor, err := buildPredictor(cfg.Predictor)
	if err != nil {
		return err
	}

	logger.Debug("predict start",
		zap.String("deployer", predictor.Deployer().Hex()),
		zap.Int("addresses", len(addresses)),
		zap.Bool("erc20_source", cfg.ERC20Source),
	)

	out := cmd.OutOrStdout()
	for _, address := range addresses {
		predicted, err := predictor.Predict(address, cfg.ERC20Source)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", address, predicted.Hex())
	}

	return nil
}

func buildPredictor(cfg config.PredictorConfig) (*predict.Predictor, error) {
	deployer, err := predict.ParseAddress(cfg.Deployer)
	if err != nil {
		return nil, fmt.Errorf("deployer: %w", err)
	}

	codes, err := loadBytecodes(cfg)
	if err != nil {
		return nil, err
	}

	return predict.NewPredictor(predict.Config{
		Deployer:  deployer,
		Bytecodes: codes,
	})
}

func loadBytecodes(cfg config.PredictorConfig) (predict.Bytecodes, error) {
	if cfg.Bytecode20 == "" && cfg.Bytecode223 == "" {
		if cfg.BytecodeFile == "" {
			return predict.Bytecodes{}, fmt.Errorf("bytecode-file or bytecode20/bytecode223 is required")
		}
		return predict.LoadBytecodes(cfg.BytecodeFile)
	}
	return predict.ParseBytecodes(cfg.Bytecode20, cfg.Bytecode223)
}
