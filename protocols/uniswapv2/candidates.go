package uniswapv2

import (
	"context"
	"errors"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"

	"github.com/defolym3/smart-order-router/protocols/token"
)

// Placeholder values carried by every candidate pool. They are not read from
// the chain and must not be used to rank or price pools.
const (
	PlaceholderLiquidity  = "100"
	PlaceholderSupply     = 100
	PlaceholderReserve    = 100
	PlaceholderReserveUSD = 100
)

// Logger defines a standard interface for structured, leveled logging,
// compatible with the standard library's slog.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// PoolToken references one member token of a pool.
type PoolToken struct {
	ID common.Address `json:"id"`
}

// CandidatePool is a pool the router may query for liquidity. Only ID, Token0
// and Token1 are authoritative; the remaining fields hold placeholder values.
type CandidatePool struct {
	ID         common.Address `json:"id"`
	Token0     PoolToken      `json:"token0"`
	Token1     PoolToken      `json:"token1"`
	Liquidity  string         `json:"liquidity"`
	Supply     float64        `json:"supply"`
	Reserve    float64        `json:"reserve"`
	ReserveUSD float64        `json:"reserveUSD"`
}

func newCandidatePool(id common.Address, token0, token1 token.Token) CandidatePool {
	return CandidatePool{
		ID:         id,
		Token0:     PoolToken{ID: token0.Address},
		Token1:     PoolToken{ID: token1.Address},
		Liquidity:  PlaceholderLiquidity,
		Supply:     PlaceholderSupply,
		Reserve:    PlaceholderReserve,
		ReserveUSD: PlaceholderReserveUSD,
	}
}

// GeneratorConfig configures a CandidateGenerator.
type GeneratorConfig struct {
	// DefaultFactory is used for chains without an entry in Factories.
	// The zero value means DefaultFactoryParams.
	DefaultFactory FactoryParams
	Factories      map[uint64]FactoryParams
	Logger         Logger
}

func (c *GeneratorConfig) validate() error {
	if c.Logger == nil {
		return errors.New("config: Logger is required")
	}
	for chainID, p := range c.Factories {
		if p.IsZero() {
			return fmt.Errorf("config: factory for chain %d is empty", chainID)
		}
	}
	return nil
}

// CandidateGenerator derives candidate pools from base tokens without any
// on-chain reads.
type CandidateGenerator struct {
	defaultFactory FactoryParams
	factories      map[uint64]FactoryParams
	logger         Logger
}

// NewCandidateGenerator creates a CandidateGenerator.
func NewCandidateGenerator(cfg *GeneratorConfig) (*CandidateGenerator, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid candidate generator configuration: %w", err)
	}
	defaultFactory := cfg.DefaultFactory
	if defaultFactory.IsZero() {
		defaultFactory = DefaultFactoryParams
	}
	factories := make(map[uint64]FactoryParams, len(cfg.Factories))
	for chainID, p := range cfg.Factories {
		factories[chainID] = p
	}
	return &CandidateGenerator{
		defaultFactory: defaultFactory,
		factories:      factories,
		logger:         cfg.Logger,
	}, nil
}

// FactoryFor returns the factory parameters used for chainID.
func (g *CandidateGenerator) FactoryFor(chainID uint64) FactoryParams {
	if p, ok := g.factories[chainID]; ok {
		return p
	}
	return g.defaultFactory
}

// Generate returns the deduplicated candidate pools for bases paired with each
// other and, when both tokenIn and tokenOut are given, the direct pair plus
// each query token paired with every base. Pairs of a token with itself are
// dropped. The first pair mapping to a pool address wins. The output order is
// a function of the input order only.
func (g *CandidateGenerator) Generate(chainID uint64, bases []token.Token, tokenIn, tokenOut *token.Token) []CandidatePool {
	pairs := make([][2]token.Token, 0, len(bases)*len(bases)+2*len(bases)+1)
	for _, base := range bases {
		for _, other := range bases {
			pairs = append(pairs, [2]token.Token{base, other})
		}
	}
	if tokenIn != nil && tokenOut != nil {
		pairs = append(pairs, [2]token.Token{*tokenIn, *tokenOut})
		for _, base := range bases {
			pairs = append(pairs, [2]token.Token{*tokenIn, base})
		}
		for _, base := range bases {
			pairs = append(pairs, [2]token.Token{*tokenOut, base})
		}
	}

	params := g.FactoryFor(chainID)
	seen := mapset.NewThreadUnsafeSet[common.Address]()
	pools := make([]CandidatePool, 0, len(pairs))

	for _, pair := range pairs {
		token0, token1, err := SortTokens(pair[0], pair[1])
		if err != nil {
			continue
		}
		poolAddr := computePairAddress(params, token0.Address, token1.Address)
		if !seen.Add(poolAddr) {
			continue
		}
		pools = append(pools, newCandidatePool(poolAddr, token0, token1))
	}

	g.logger.Debug("Generated candidate pools",
		"chain_id", chainID,
		"bases", len(bases),
		"pairs", len(pairs),
		"pools", len(pools),
	)
	return pools
}

// PoolProvider supplies candidate pools for a swap.
type PoolProvider interface {
	GetPools(ctx context.Context, tokenIn, tokenOut *token.Token) ([]CandidatePool, error)
}

// BaseTokenSource returns the base tokens configured for a chain, or nothing
// for a chain without configuration.
type BaseTokenSource interface {
	BaseTokens(chainID uint64) []token.Token
}

// StaticPoolProvider is a PoolProvider for when no pool index is available.
// Pools come from the chain's base tokens, so liquidity values are placeholders.
type StaticPoolProvider struct {
	chainID   uint64
	bases     BaseTokenSource
	generator *CandidateGenerator
	logger    Logger
}

// NewStaticPoolProvider creates a StaticPoolProvider bound to chainID.
func NewStaticPoolProvider(chainID uint64, bases BaseTokenSource, generator *CandidateGenerator, logger Logger) *StaticPoolProvider {
	return &StaticPoolProvider{
		chainID:   chainID,
		bases:     bases,
		generator: generator,
		logger:    logger,
	}
}

// GetPools never fails; an unsupported chain yields the direct pair at most.
func (p *StaticPoolProvider) GetPools(_ context.Context, tokenIn, tokenOut *token.Token) ([]CandidatePool, error) {
	bases := p.bases.BaseTokens(p.chainID)
	pools := p.generator.Generate(p.chainID, bases, tokenIn, tokenOut)
	p.logger.Info("Static pool provider generated candidate pools",
		"chain_id", p.chainID,
		"bases", len(bases),
		"pools", len(pools),
	)
	return pools, nil
}
