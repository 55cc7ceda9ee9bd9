package token

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Indexer builds Accessors from already resolved tokens.
type Indexer struct{}

// NewIndexer creates a new Indexer.
func NewIndexer() *Indexer {
	return &Indexer{}
}

// Index creates an Accessor from a raw slice of tokens.
func (i *Indexer) Index(tokens []Token) *Accessor {
	return NewAccessor(tokens)
}

// Accessor is an immutable snapshot of the tokens produced by one resolution.
// Lookups by address and by symbol are case-insensitive. When two tokens share
// a symbol, the one indexed last wins the symbol slot.
type Accessor struct {
	byAddress map[common.Address]Token
	bySymbol  map[string]Token
	all       []Token
}

// NewAccessor indexes tokens. Tokens sharing an address keep their first
// position in All and the latest value in the lookups.
func NewAccessor(tokens []Token) *Accessor {
	byAddress := make(map[common.Address]Token, len(tokens))
	bySymbol := make(map[string]Token, len(tokens))
	all := make([]Token, 0, len(tokens))

	positions := make(map[common.Address]int, len(tokens))
	for _, t := range tokens {
		if pos, seen := positions[t.Address]; seen {
			all[pos] = t
		} else {
			positions[t.Address] = len(all)
			all = append(all, t)
		}
		byAddress[t.Address] = t
		bySymbol[strings.ToLower(t.Symbol)] = t
	}

	return &Accessor{
		byAddress: byAddress,
		bySymbol:  bySymbol,
		all:       all,
	}
}

// GetByAddress retrieves a token by its hex address, ignoring case.
func (a *Accessor) GetByAddress(address string) (Token, bool) {
	addr, ok := ParseAddress(address)
	if !ok {
		return Token{}, false
	}
	t, ok := a.byAddress[addr]
	return t, ok
}

// Get retrieves a token by its typed address.
func (a *Accessor) Get(address common.Address) (Token, bool) {
	t, ok := a.byAddress[address]
	return t, ok
}

// GetBySymbol retrieves a token by its symbol, ignoring case.
func (a *Accessor) GetBySymbol(symbol string) (Token, bool) {
	t, ok := a.bySymbol[strings.ToLower(strings.TrimSpace(symbol))]
	return t, ok
}

// All returns a defensive copy of every resolved token, in resolution order.
func (a *Accessor) All() []Token {
	allCopy := make([]Token, len(a.all))
	copy(allCopy, a.all)
	return allCopy
}

// Len returns the number of resolved tokens.
func (a *Accessor) Len() int {
	return len(a.all)
}

// ParseAddress accepts a hex address with or without the 0x prefix and in any
// letter case.
func ParseAddress(s string) (common.Address, bool) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, false
	}
	return common.HexToAddress(s), true
}

func addressKey(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}
