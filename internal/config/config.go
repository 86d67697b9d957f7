package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tokenlistConverter/internal/predict"
)

// PredictorConfig holds the deployment constants used for address prediction.
type PredictorConfig struct {
	Deployer     string
	BytecodeFile string
	Bytecode20   string
	Bytecode223  string
}

// Config holds configuration for the convert command.
type Config struct {
	Predictor   PredictorConfig
	Sources     []string
	Out         string
	JSONL       string
	PGDSN       string
	Schema      string
	Concurrency int
	Timeout     time.Duration
	LogLevel    string
}

// PredictConfig holds configuration for the predict command.
type PredictConfig struct {
	Predictor   PredictorConfig
	Addresses   []string
	ERC20Source bool
	LogLevel    string
}

// VerifyConfig holds configuration for the verify command.
type VerifyConfig struct {
	Predictor    PredictorConfig
	RPCURL       string
	Source       string
	Schema       string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	LogLevel     string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"out":         "./data/tokenlist.json",
		"concurrency": 4,
		"timeout":     60 * time.Second,
	})
	if err != nil {
		return Config{}, err
	}

	sources := getStringSlice(v, "source")
	sources = append(sources, getStringSlice(v, "sources")...)

	cfg := Config{
		Predictor:   predictorConfig(v),
		Sources:     ResolveSources(sources),
		Out:         v.GetString("out"),
		JSONL:       v.GetString("jsonl"),
		PGDSN:       v.GetString("pg-dsn"),
		Schema:      v.GetString("schema"),
		Concurrency: v.GetInt("concurrency"),
		Timeout:     v.GetDuration("timeout"),
		LogLevel:    v.GetString("log-level"),
	}

	return cfg, nil
}

// LoadPredict merges config file, environment variables, and flags into PredictConfig.
func LoadPredict(cfgFile string, flags *pflag.FlagSet) (PredictConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"erc20-source": true,
	})
	if err != nil {
		return PredictConfig{}, err
	}

	cfg := PredictConfig{
		Predictor:   predictorConfig(v),
		Addresses:   getStringSlice(v, "address"),
		ERC20Source: v.GetBool("erc20-source"),
		LogLevel:    v.GetString("log-level"),
	}

	return cfg, nil
}

// LoadVerify merges config file, environment variables, and flags into VerifyConfig.
func LoadVerify(cfgFile string, flags *pflag.FlagSet) (VerifyConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"timeout":       60 * time.Second,
		"max-retries":   3,
		"retry-backoff": 500 * time.Millisecond,
	})
	if err != nil {
		return VerifyConfig{}, err
	}

	cfg := VerifyConfig{
		Predictor:    predictorConfig(v),
		RPCURL:       v.GetString("rpc"),
		Source:       ResolveSource(v.GetString("source")),
		Schema:       v.GetString("schema"),
		Timeout:      v.GetDuration("timeout"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		LogLevel:     v.GetString("log-level"),
	}

	return cfg, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("TOKENLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "info")
	v.SetDefault("deployer", predict.DefaultDeployer)
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

func predictorConfig(v *viper.Viper) PredictorConfig {
	return PredictorConfig{
		Deployer:     v.GetString("deployer"),
		BytecodeFile: v.GetString("bytecode-file"),
		Bytecode20:   v.GetString("bytecode20"),
		Bytecode223:  v.GetString("bytecode223"),
	}
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
