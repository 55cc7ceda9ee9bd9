package chains

import (
	"fmt"
	"strings"

	"github.com/defolym3/smart-order-router/protocols/token"
	"github.com/defolym3/smart-order-router/protocols/uniswapv2"
)

// Native describes a chain's native currency and the names clients may use
// for it in place of a token address.
type Native struct {
	Symbol  string
	Name    string
	Aliases []string
}

// Chain is the resolved configuration of one chain.
type Chain struct {
	ID            uint64
	NetworkName   string
	Native        *Native
	WrappedNative *token.Token
	BaseTokens    []token.Token
	USDC          *token.Token
	DAI           *token.Token
	USDT          *token.Token
	V2Factory     *uniswapv2.FactoryParams
	Supported     bool
	V2Supported   bool
	HasL1Fee      bool
}

// Registry answers chain-keyed lookups over a fixed set of chain
// configurations. It is immutable after construction.
type Registry struct {
	byID   map[uint64]*Chain
	byName map[string]uint64
	order  []uint64
}

// NewRegistry validates configs and builds a Registry. Chain ids and network
// names must be unique.
func NewRegistry(configs []ChainConfig) (*Registry, error) {
	r := &Registry{
		byID:   make(map[uint64]*Chain, len(configs)),
		byName: make(map[string]uint64, len(configs)),
		order:  make([]uint64, 0, len(configs)),
	}
	for i := range configs {
		cfg := &configs[i]
		if err := cfg.validate(); err != nil {
			return nil, fmt.Errorf("invalid chain registry configuration: %w", err)
		}
		if _, ok := r.byID[cfg.ChainID]; ok {
			return nil, fmt.Errorf("invalid chain registry configuration: duplicate chain id %d", cfg.ChainID)
		}
		name := strings.ToLower(strings.TrimSpace(cfg.NetworkName))
		if _, ok := r.byName[name]; ok {
			return nil, fmt.Errorf("invalid chain registry configuration: duplicate network name %q", name)
		}

		chain, err := newChain(cfg, name)
		if err != nil {
			return nil, fmt.Errorf("invalid chain registry configuration: %w", err)
		}
		r.byID[cfg.ChainID] = chain
		r.byName[name] = cfg.ChainID
		r.order = append(r.order, cfg.ChainID)
	}
	return r, nil
}

// NewDefaultRegistry builds a Registry from DefaultChainConfigs.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultChainConfigs())
	if err != nil {
		panic(err)
	}
	return r
}

func newChain(cfg *ChainConfig, name string) (*Chain, error) {
	chain := &Chain{
		ID:          cfg.ChainID,
		NetworkName: name,
		Supported:   cfg.Supported,
		V2Supported: cfg.V2Supported,
		HasL1Fee:    cfg.HasL1Fee,
	}
	optional := func(t *TokenConfig) *token.Token {
		if t == nil {
			return nil
		}
		tok := t.token(cfg.ChainID)
		return &tok
	}
	chain.WrappedNative = optional(cfg.WrappedNative)
	chain.USDC = optional(cfg.USDC)
	chain.DAI = optional(cfg.DAI)
	chain.USDT = optional(cfg.USDT)

	chain.BaseTokens = make([]token.Token, 0, len(cfg.BaseTokens))
	for _, t := range cfg.BaseTokens {
		chain.BaseTokens = append(chain.BaseTokens, t.token(cfg.ChainID))
	}

	if cfg.Native != nil {
		chain.Native = &Native{
			Symbol:  cfg.Native.Symbol,
			Name:    cfg.Native.Name,
			Aliases: append([]string(nil), cfg.Native.Aliases...),
		}
	}
	if cfg.V2Factory != nil {
		params, err := cfg.V2Factory.params()
		if err != nil {
			return nil, err
		}
		chain.V2Factory = &params
	}
	return chain, nil
}

// Chain returns a copy of the configuration for chainID.
func (r *Registry) Chain(chainID uint64) (Chain, error) {
	c, ok := r.byID[chainID]
	if !ok {
		return Chain{}, unsupported(chainID, "")
	}
	out := *c
	out.BaseTokens = append([]token.Token(nil), c.BaseTokens...)
	return out, nil
}

// WrappedNative returns the canonical wrapped native token for chainID.
func (r *Registry) WrappedNative(chainID uint64) (token.Token, error) {
	return r.tokenOn(chainID, "wrapped native", func(c *Chain) *token.Token { return c.WrappedNative })
}

// USDCOn returns the canonical USDC token for chainID.
func (r *Registry) USDCOn(chainID uint64) (token.Token, error) {
	return r.tokenOn(chainID, "USDC", func(c *Chain) *token.Token { return c.USDC })
}

// DAIOn returns the canonical DAI token for chainID.
func (r *Registry) DAIOn(chainID uint64) (token.Token, error) {
	return r.tokenOn(chainID, "DAI", func(c *Chain) *token.Token { return c.DAI })
}

// USDTOn returns the canonical USDT token for chainID.
func (r *Registry) USDTOn(chainID uint64) (token.Token, error) {
	return r.tokenOn(chainID, "USDT", func(c *Chain) *token.Token { return c.USDT })
}

func (r *Registry) tokenOn(chainID uint64, what string, pick func(*Chain) *token.Token) (token.Token, error) {
	c, ok := r.byID[chainID]
	if !ok {
		return token.Token{}, unsupported(chainID, what)
	}
	t := pick(c)
	if t == nil {
		return token.Token{}, unsupported(chainID, what)
	}
	return *t, nil
}

// BaseTokens returns the base tokens for chainID, or nil when the chain has
// none configured.
func (r *Registry) BaseTokens(chainID uint64) []token.Token {
	c, ok := r.byID[chainID]
	if !ok || len(c.BaseTokens) == 0 {
		return nil
	}
	return append([]token.Token(nil), c.BaseTokens...)
}

// NetworkName returns the network name of chainID.
func (r *Registry) NetworkName(chainID uint64) (string, error) {
	c, ok := r.byID[chainID]
	if !ok {
		return "", unsupported(chainID, "network name")
	}
	return c.NetworkName, nil
}

// ChainIDFromName returns the chain id for a network name, matched
// case-insensitively.
func (r *Registry) ChainIDFromName(name string) (uint64, error) {
	id, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, &UnsupportedChainError{Name: name}
	}
	return id, nil
}

// ChainIDs returns every configured chain id in configuration order.
func (r *Registry) ChainIDs() []uint64 {
	return append([]uint64(nil), r.order...)
}

// SupportedChainIDs returns the chains the router serves.
func (r *Registry) SupportedChainIDs() []uint64 {
	return r.filter(func(c *Chain) bool { return c.Supported })
}

// V2SupportedChainIDs returns the chains with Uniswap V2 routing.
func (r *Registry) V2SupportedChainIDs() []uint64 {
	return r.filter(func(c *Chain) bool { return c.V2Supported })
}

// HasL1Fee reports whether transactions on chainID pay an L1 data fee.
func (r *Registry) HasL1Fee(chainID uint64) bool {
	c, ok := r.byID[chainID]
	return ok && c.HasL1Fee
}

// V2Factories returns the chains with explicit Uniswap V2 factory parameters.
func (r *Registry) V2Factories() map[uint64]uniswapv2.FactoryParams {
	out := make(map[uint64]uniswapv2.FactoryParams)
	for id, c := range r.byID {
		if c.V2Factory != nil {
			out[id] = *c.V2Factory
		}
	}
	return out
}

func (r *Registry) filter(keep func(*Chain) bool) []uint64 {
	out := make([]uint64, 0, len(r.order))
	for _, id := range r.order {
		if keep(r.byID[id]) {
			out = append(out, id)
		}
	}
	return out
}
