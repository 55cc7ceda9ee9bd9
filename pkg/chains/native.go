package chains

import (
	"strings"
	"sync"

	"github.com/defolym3/smart-order-router/protocols/token"
)

const nativeDecimals = 18

// NativeCurrency is a chain's native currency together with the token that
// wraps it.
type NativeCurrency struct {
	ChainID  uint64
	Symbol   string
	Name     string
	Decimals uint8
	Aliases  []string
	Wrapped  token.Token
}

// IsAlias reports whether s names the native currency, compared
// case-insensitively.
func (n *NativeCurrency) IsAlias(s string) bool {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, n.Symbol) {
		return true
	}
	for _, alias := range n.Aliases {
		if strings.EqualFold(s, alias) {
			return true
		}
	}
	return false
}

// NativeCurrencyCache builds NativeCurrency values once per chain. Create one
// per process and share it; it is safe for concurrent use.
type NativeCurrencyCache struct {
	registry *Registry

	mu      sync.Mutex
	byChain map[uint64]*NativeCurrency
}

// NewNativeCurrencyCache creates an empty cache backed by registry.
func NewNativeCurrencyCache(registry *Registry) *NativeCurrencyCache {
	return &NativeCurrencyCache{
		registry: registry,
		byChain:  make(map[uint64]*NativeCurrency),
	}
}

// OnChain returns the native currency of chainID. A chain without a wrapped
// native token is unsupported. Chains without native metadata are treated as
// Ether.
func (c *NativeCurrencyCache) OnChain(chainID uint64) (*NativeCurrency, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.byChain[chainID]; ok {
		return n, nil
	}

	wrapped, err := c.registry.WrappedNative(chainID)
	if err != nil {
		return nil, err
	}
	n := &NativeCurrency{
		ChainID:  chainID,
		Symbol:   "ETH",
		Name:     "Ether",
		Decimals: nativeDecimals,
		Wrapped:  wrapped,
	}
	if chain := c.registry.byID[chainID]; chain.Native != nil {
		n.Symbol = chain.Native.Symbol
		n.Name = chain.Native.Name
		n.Aliases = append([]string(nil), chain.Native.Aliases...)
	}
	c.byChain[chainID] = n
	return n, nil
}
