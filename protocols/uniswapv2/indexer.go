package uniswapv2

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/defolym3/smart-order-router/protocols/token"
)

// Indexer builds lookup structures over generated candidate pools.
type Indexer struct{}

// NewIndexer creates a new Indexer.
func NewIndexer() *Indexer {
	return &Indexer{}
}

// Index creates an indexed candidate set from a raw slice of pools.
func (i *Indexer) Index(pools []CandidatePool) *IndexableCandidateSet {
	return NewIndexableCandidateSet(pools)
}

// IndexableCandidateSet provides fast, indexed access to candidate pools.
type IndexableCandidateSet struct {
	byID    map[common.Address]CandidatePool
	byToken map[common.Address][]CandidatePool
	all     []CandidatePool
}

// NewIndexableCandidateSet creates a new indexed candidate set. A repeated
// pool ID keeps its first occurrence.
func NewIndexableCandidateSet(pools []CandidatePool) *IndexableCandidateSet {
	byID := make(map[common.Address]CandidatePool, len(pools))
	byToken := make(map[common.Address][]CandidatePool)
	all := make([]CandidatePool, 0, len(pools))

	for _, p := range pools {
		if _, ok := byID[p.ID]; ok {
			continue
		}
		byID[p.ID] = p
		byToken[p.Token0.ID] = append(byToken[p.Token0.ID], p)
		byToken[p.Token1.ID] = append(byToken[p.Token1.ID], p)
		all = append(all, p)
	}

	return &IndexableCandidateSet{
		byID:    byID,
		byToken: byToken,
		all:     all,
	}
}

// GetByAddress retrieves a pool by its address, given in any hex case.
func (s *IndexableCandidateSet) GetByAddress(address string) (CandidatePool, bool) {
	addr, ok := token.ParseAddress(address)
	if !ok {
		return CandidatePool{}, false
	}
	p, ok := s.byID[addr]
	return p, ok
}

// ForToken returns the pools that contain the token, in insertion order.
func (s *IndexableCandidateSet) ForToken(address common.Address) []CandidatePool {
	pools := s.byToken[address]
	out := make([]CandidatePool, len(pools))
	copy(out, pools)
	return out
}

// Len returns the number of distinct pools.
func (s *IndexableCandidateSet) Len() int {
	return len(s.all)
}

// All returns a defensive copy of the slice of all pools.
func (s *IndexableCandidateSet) All() []CandidatePool {
	allCopy := make([]CandidatePool, len(s.all))
	copy(allCopy, s.all)
	return allCopy
}
