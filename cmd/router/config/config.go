package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel       = "info"
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxBatchSize   = 500
)

type RouterConfig struct {
	ChainID          uint64        `yaml:"chain_id"`
	RPCURL           string        `yaml:"rpc_url"`
	MulticallAddress string        `yaml:"multicall_address"`
	ChainsFile       string        `yaml:"chains_file"`
	LogLevel         string        `yaml:"log_level"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	MaxBatchSize     int           `yaml:"max_batch_size"`
}

// Default returns the configuration used when no file is given.
func Default() *RouterConfig {
	return &RouterConfig{
		LogLevel:       DefaultLogLevel,
		RequestTimeout: DefaultRequestTimeout,
		MaxBatchSize:   DefaultMaxBatchSize,
	}
}

// LoadConfig reads a configuration file from the given path and unmarshals it
// into a RouterConfig struct. Unset fields keep their defaults.
func LoadConfig(path string) (*RouterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the fields every command relies on.
func (c *RouterConfig) Validate() error {
	if c.ChainID == 0 {
		return errors.New("config: chain_id is required")
	}
	if c.MulticallAddress != "" && !common.IsHexAddress(c.MulticallAddress) {
		return fmt.Errorf("config: multicall_address %q is invalid", c.MulticallAddress)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("config: request_timeout must be positive")
	}
	if c.MaxBatchSize < 0 {
		return errors.New("config: max_batch_size must not be negative")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Multicall returns the configured Multicall3 address, or the zero address
// when unset.
func (c *RouterConfig) Multicall() common.Address {
	if c.MulticallAddress == "" {
		return common.Address{}
	}
	return common.HexToAddress(c.MulticallAddress)
}

// ParseLogLevel accepts the slog level names (debug, info, warn, error).
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: log_level %q is invalid: %w", s, err)
	}
	return level, nil
}
