package chains

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"gopkg.in/yaml.v3"

	"github.com/defolym3/smart-order-router/protocols/token"
	"github.com/defolym3/smart-order-router/protocols/uniswapv2"
)

// TokenConfig is the YAML form of a token on a known chain.
type TokenConfig struct {
	Address  string `yaml:"address"`
	Decimals uint8  `yaml:"decimals"`
	Symbol   string `yaml:"symbol"`
	Name     string `yaml:"name"`
}

// FactoryConfig is the YAML form of Uniswap V2 factory parameters.
type FactoryConfig struct {
	Factory      string `yaml:"factory"`
	InitCodeHash string `yaml:"init_code_hash"`
}

// NativeConfig describes a chain's native currency.
type NativeConfig struct {
	Symbol  string   `yaml:"symbol"`
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// ChainConfig is the static configuration of one chain. Only ChainID and
// NetworkName are required; every other lookup is unsupported for a chain
// that leaves it unset.
type ChainConfig struct {
	ChainID       uint64         `yaml:"chain_id"`
	NetworkName   string         `yaml:"network_name"`
	Native        *NativeConfig  `yaml:"native,omitempty"`
	WrappedNative *TokenConfig   `yaml:"wrapped_native,omitempty"`
	BaseTokens    []TokenConfig  `yaml:"base_tokens,omitempty"`
	USDC          *TokenConfig   `yaml:"usdc,omitempty"`
	DAI           *TokenConfig   `yaml:"dai,omitempty"`
	USDT          *TokenConfig   `yaml:"usdt,omitempty"`
	V2Factory     *FactoryConfig `yaml:"v2_factory,omitempty"`
	Supported     bool           `yaml:"supported"`
	V2Supported   bool           `yaml:"v2_supported"`
	HasL1Fee      bool           `yaml:"has_l1_fee"`
}

type chainsFile struct {
	Chains []ChainConfig `yaml:"chains"`
}

// LoadChainConfigs reads chain configurations from a YAML file with a
// top-level "chains" list.
func LoadChainConfigs(path string) ([]ChainConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chains file %s: %w", path, err)
	}
	configs, err := ParseChainConfigs(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load chains file %s: %w", path, err)
	}
	return configs, nil
}

// ParseChainConfigs decodes and validates YAML chain configurations.
func ParseChainConfigs(data []byte) ([]ChainConfig, error) {
	var file chainsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chains yaml: %w", err)
	}
	if len(file.Chains) == 0 {
		return nil, errors.New("config: chains list is empty")
	}
	for i := range file.Chains {
		if err := file.Chains[i].validate(); err != nil {
			return nil, err
		}
	}
	return file.Chains, nil
}

func (c *ChainConfig) validate() error {
	if c.ChainID == 0 {
		return errors.New("config: chain_id is required")
	}
	if strings.TrimSpace(c.NetworkName) == "" {
		return fmt.Errorf("config: chain %d: network_name is required", c.ChainID)
	}
	check := func(field string, t *TokenConfig) error {
		if t == nil {
			return nil
		}
		if _, ok := token.ParseAddress(t.Address); !ok {
			return fmt.Errorf("config: chain %d: %s address %q is invalid", c.ChainID, field, t.Address)
		}
		if t.Symbol == "" {
			return fmt.Errorf("config: chain %d: %s symbol is required", c.ChainID, field)
		}
		return nil
	}
	if err := check("wrapped_native", c.WrappedNative); err != nil {
		return err
	}
	for i := range c.BaseTokens {
		if err := check(fmt.Sprintf("base_tokens[%d]", i), &c.BaseTokens[i]); err != nil {
			return err
		}
	}
	if err := check("usdc", c.USDC); err != nil {
		return err
	}
	if err := check("dai", c.DAI); err != nil {
		return err
	}
	if err := check("usdt", c.USDT); err != nil {
		return err
	}
	if c.V2Factory != nil {
		if _, err := c.V2Factory.params(); err != nil {
			return fmt.Errorf("config: chain %d: %w", c.ChainID, err)
		}
	}
	return nil
}

func (t TokenConfig) token(chainID uint64) token.Token {
	return token.New(chainID, common.HexToAddress(t.Address), t.Decimals, t.Symbol, t.Name)
}

func (f FactoryConfig) params() (uniswapv2.FactoryParams, error) {
	if !common.IsHexAddress(f.Factory) {
		return uniswapv2.FactoryParams{}, fmt.Errorf("v2_factory address %q is invalid", f.Factory)
	}
	hash, err := hexutil.Decode(f.InitCodeHash)
	if err != nil || len(hash) != common.HashLength {
		return uniswapv2.FactoryParams{}, fmt.Errorf("v2_factory init_code_hash %q is invalid", f.InitCodeHash)
	}
	return uniswapv2.FactoryParams{
		Factory:      common.HexToAddress(f.Factory),
		InitCodeHash: common.BytesToHash(hash),
	}, nil
}
