// Package chains holds the static per-chain configuration the router reads:
// network names, wrapped native tokens, base tokens for candidate pool
// generation, canonical stables and Uniswap V2 factory parameters.
package chains

import (
	"errors"
	"fmt"
)

// Chain identifiers known to the default tables.
const (
	Mainnet         uint64 = 1
	Optimism        uint64 = 10
	Kairos          uint64 = 1001
	Kaia            uint64 = 8217
	Base            uint64 = 8453
	Mode            uint64 = 34443
	ModeTestnet     uint64 = 919
	FraxTestnet     uint64 = 2522
	Fuji            uint64 = 43113
	Arbitrum        uint64 = 42161
	BaseGoerli      uint64 = 84531
	BaseSepolia     uint64 = 84532
	ArbitrumSepolia uint64 = 421614
	ScrollSepolia   uint64 = 534351
	Scroll          uint64 = 534352
	Sepolia         uint64 = 11155111
)

// NativeSentinel is the pseudo address clients use to mean the native currency.
const NativeSentinel = "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"

// ErrUnsupportedChain is matched by every UnsupportedChainError.
var ErrUnsupportedChain = errors.New("chains: unsupported chain")

// UnsupportedChainError reports a lookup keyed by a chain that has no entry
// for the requested data.
type UnsupportedChainError struct {
	ChainID uint64
	Name    string
	What    string
}

func (e *UnsupportedChainError) Error() string {
	switch {
	case e.Name != "":
		return fmt.Sprintf("chains: unknown network name %q", e.Name)
	case e.What != "":
		return fmt.Sprintf("chains: chain id %d not supported for %s", e.ChainID, e.What)
	default:
		return fmt.Sprintf("chains: chain id %d not supported", e.ChainID)
	}
}

// Is makes errors.Is(err, ErrUnsupportedChain) hold.
func (e *UnsupportedChainError) Is(target error) bool {
	return target == ErrUnsupportedChain
}

func unsupported(chainID uint64, what string) error {
	return &UnsupportedChainError{ChainID: chainID, What: what}
}
