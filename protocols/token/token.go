package token

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Token is an immutable ERC-20 descriptor. Two tokens are the same token when
// they live on the same chain at the same address.
type Token struct {
	ChainID  uint64         `json:"chainId" yaml:"chain_id"`
	Address  common.Address `json:"address" yaml:"address"`
	Decimals uint8          `json:"decimals" yaml:"decimals"`
	Symbol   string         `json:"symbol" yaml:"symbol"`
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
}

// New creates a Token.
func New(chainID uint64, address common.Address, decimals uint8, symbol, name string) Token {
	return Token{
		ChainID:  chainID,
		Address:  address,
		Decimals: decimals,
		Symbol:   symbol,
		Name:     name,
	}
}

// Equals reports whether t and other identify the same on-chain token.
func (t Token) Equals(other Token) bool {
	return t.ChainID == other.ChainID && t.Address == other.Address
}

// SortsBefore reports whether t orders before other under the canonical
// ordering: the numerically smaller address comes first.
func (t Token) SortsBefore(other Token) bool {
	return bytes.Compare(t.Address[:], other.Address[:]) < 0
}

// Key returns the lower-cased hex address used as the identity key.
func (t Token) Key() string {
	return addressKey(t.Address)
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Symbol, t.Address.Hex())
}
