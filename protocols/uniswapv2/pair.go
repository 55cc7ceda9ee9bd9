package uniswapv2

import (
	"bytes"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/defolym3/smart-order-router/protocols/token"
)

// ErrIdenticalAddresses is returned when a pair is requested for a token and itself.
var ErrIdenticalAddresses = errors.New("uniswapv2: identical addresses")

// FactoryParams are the chain-specific inputs to pair address derivation.
type FactoryParams struct {
	Factory      common.Address `json:"factory" yaml:"factory"`
	InitCodeHash common.Hash    `json:"initCodeHash" yaml:"init_code_hash"`
}

// DefaultFactoryParams are the canonical Uniswap V2 factory and pair init code hash.
var DefaultFactoryParams = FactoryParams{
	Factory:      common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f"),
	InitCodeHash: common.HexToHash("0x96e8ac4277198ff8b6f785478aa9a39f403cb768dd02cbee326c3e7da348845f"),
}

// IsZero reports whether p has no factory set.
func (p FactoryParams) IsZero() bool {
	return p.Factory == (common.Address{})
}

// SortTokens returns a and b as (token0, token1), token0 having the smaller address.
func SortTokens(a, b token.Token) (token0, token1 token.Token, err error) {
	if a.Address == b.Address {
		return token.Token{}, token.Token{}, ErrIdenticalAddresses
	}
	if a.SortsBefore(b) {
		return a, b, nil
	}
	return b, a, nil
}

// PairAddress derives the CREATE2 address of the pair for a and b. The result
// does not depend on argument order.
func PairAddress(params FactoryParams, a, b common.Address) (common.Address, error) {
	if a == b {
		return common.Address{}, ErrIdenticalAddresses
	}
	token0, token1 := a, b
	if bytes.Compare(b[:], a[:]) < 0 {
		token0, token1 = b, a
	}
	return computePairAddress(params, token0, token1), nil
}

// computePairAddress expects token0 < token1.
func computePairAddress(params FactoryParams, token0, token1 common.Address) common.Address {
	salt := crypto.Keccak256Hash(token0.Bytes(), token1.Bytes())
	return crypto.CreateAddress2(params.Factory, salt, params.InitCodeHash.Bytes())
}
