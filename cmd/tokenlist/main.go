package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "tokenlist",
		Short:        "Token list converter",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert token lists and derive counterpart addresses",
		RunE:  runConvert,
	}

	convertCmd.Flags().StringSlice("source", nil, "token list URLs, file paths or preset names (comma-separated)")
	convertCmd.Flags().String("out", "./data/tokenlist.json", "output JSON path (a directory when several sources are given)")
	convertCmd.Flags().String("jsonl", "", "optional JSONL path for a per-token snapshot")
	convertCmd.Flags().String("pg-dsn", "", "optional Postgres DSN")
	convertCmd.Flags().String("schema", "", "token list schema override (JSON Schema file)")
	convertCmd.Flags().Int("concurrency", 4, "lists converted in parallel")
	convertCmd.Flags().Duration("timeout", 60*time.Second, "timeout for each list fetch")
	addPredictorFlags(convertCmd)
	convertCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(convertCmd)

	predictCmd := &cobra.Command{
		Use:   "predict [address...]",
		Short: "Predict counterpart addresses for token addresses",
		RunE:  runPredict,
	}

	predictCmd.Flags().StringSlice("address", nil, "token addresses (comma-separated)")
	predictCmd.Flags().Bool("erc20-source", true, "treat addresses as ERC-20 tokens (selects the ERC-223 wrapper bytecode)")
	addPredictorFlags(predictCmd)
	predictCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(predictCmd)

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Check predicted addresses against deployed wrappers on chain",
		RunE:  runVerify,
	}

	verifyCmd.Flags().String("rpc", "", "RPC URL of the chain to check")
	verifyCmd.Flags().String("source", "", "token list URL, file path or preset name")
	verifyCmd.Flags().String("schema", "", "token list schema override (JSON Schema file)")
	verifyCmd.Flags().Duration("timeout", 60*time.Second, "timeout for the list fetch")
	verifyCmd.Flags().Int("max-retries", 3, "maximum retry attempts per RPC call")
	verifyCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	addPredictorFlags(verifyCmd)
	verifyCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(verifyCmd)

	sourcesCmd := &cobra.Command{
		Use:   "sources",
		Short: "List preset token list sources",
		RunE:  runSources,
	}

	root.AddCommand(sourcesCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPredictorFlags(cmd *cobra.Command) {
	cmd.Flags().String("deployer", "", "converter contract address (defaults to the known deployment)")
	cmd.Flags().String("bytecode-file", "", "JSON file with bytecode20 and bytecode223 init code")
	cmd.Flags().String("bytecode20", "", "ERC-20 wrapper init code (hex), overrides bytecode-file")
	cmd.Flags().String("bytecode223", "", "ERC-223 wrapper init code (hex), overrides bytecode-file")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
