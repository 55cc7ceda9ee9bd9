package token

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/defolym3/smart-order-router/pkg/multicall"
)

// ErrTransportFailure means a whole batch could not be executed or decoded,
// after the bytes32 fallback for symbols. No tokens are returned with it.
var ErrTransportFailure = errors.New("token: batch call failed")

// Logger defines a standard interface for structured, leveled logging,
// compatible with the standard library's slog.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ResolverConfig holds the dependencies of a Resolver.
type ResolverConfig struct {
	ChainID       uint64
	Caller        multicall.Caller
	Logger        Logger
	PrometheusReg prometheus.Registerer
}

func (c *ResolverConfig) validate() error {
	if c.ChainID == 0 {
		return errors.New("config: ChainID is required")
	}
	if c.Caller == nil {
		return errors.New("config: Caller is required")
	}
	if c.Logger == nil {
		return errors.New("config: Logger is required")
	}
	if c.PrometheusReg == nil {
		return errors.New("config: PrometheusReg is required")
	}
	return nil
}

// Resolver fetches symbol and decimals for ERC-20 addresses through batched
// calls. Addresses that are not readable ERC-20 tokens are left out of the
// result rather than failing the resolution.
type Resolver struct {
	chainID uint64
	caller  multicall.Caller
	logger  Logger
	metrics *Metrics
}

// NewResolver creates a Resolver.
func NewResolver(cfg *ResolverConfig) (*Resolver, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid token resolver configuration: %w", err)
	}
	return &Resolver{
		chainID: cfg.ChainID,
		caller:  cfg.Caller,
		logger:  cfg.Logger,
		metrics: NewMetrics(cfg.PrometheusReg),
	}, nil
}

// ChainID returns the chain the resolver builds tokens for.
func (r *Resolver) ChainID() uint64 {
	return r.chainID
}

type symbolBatch struct {
	*multicall.Batch
	bytes32 bool
}

// GetTokens resolves addresses into an Accessor. Input is lower-cased and
// deduplicated in first-seen order. An address is kept only when both its
// symbol and decimals calls succeed. The error is non-nil only when a batch
// failed as a whole.
func (r *Resolver) GetTokens(ctx context.Context, addresses []string, opts *multicall.CallOptions) (*Accessor, error) {
	timer := prometheus.NewTimer(r.metrics.resolveDuration.WithLabelValues())
	defer timer.ObserveDuration()

	requested, addrs := NormalizeAddresses(addresses)
	r.metrics.tokensTotal.WithLabelValues("requested").Add(float64(requested))
	if malformed := requested - len(addrs); malformed > 0 {
		r.logger.Debug("Skipping malformed token addresses", "count", malformed)
	}
	if len(addrs) == 0 {
		r.metrics.tokensTotal.WithLabelValues("skipped").Add(float64(requested))
		return NewAccessor(nil), nil
	}

	var (
		symbols  symbolBatch
		decimals *multicall.Batch
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		symbols, err = r.fetchSymbols(gctx, addrs, opts)
		return err
	})
	g.Go(func() error {
		var err error
		decimals, err = r.fetchDecimals(gctx, addrs, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tokens := make([]Token, 0, len(addrs))
	for i, addr := range addrs {
		symbol, symErr := symbols.symbolAt(i)
		dec, decErr := decimalsAt(decimals, i)
		if symErr != nil || decErr != nil {
			r.logger.Debug("Dropping token with invalid symbol or decimals",
				"address", addr.Hex(),
				"symbol_error", symErr,
				"decimals_error", decErr,
			)
			continue
		}
		tokens = append(tokens, New(r.chainID, addr, dec, symbol, ""))
	}

	r.metrics.tokensTotal.WithLabelValues("resolved").Add(float64(len(tokens)))
	r.metrics.tokensTotal.WithLabelValues("skipped").Add(float64(requested - len(tokens)))

	logAttrs := []any{
		"chain_id", r.chainID,
		"requested", requested,
		"resolved", len(tokens),
		"bytes32_symbols", symbols.bytes32,
	}
	if symbols.BlockNumber != nil {
		logAttrs = append(logAttrs, "block_number", symbols.BlockNumber.String())
	}
	r.logger.Info("Resolved token symbols and decimals", logAttrs...)

	return NewAccessor(tokens), nil
}

// NormalizeAddresses trims and lower-cases addresses and drops duplicates in
// first-seen order. It returns the number of distinct requested strings and
// the distinct addresses among them that parse.
func NormalizeAddresses(addresses []string) (requested int, parsed []common.Address) {
	seenRaw := mapset.NewThreadUnsafeSet[string]()
	seen := mapset.NewThreadUnsafeSet[common.Address]()
	parsed = make([]common.Address, 0, len(addresses))

	for _, raw := range addresses {
		key := strings.ToLower(strings.TrimSpace(raw))
		if !seenRaw.Add(key) {
			continue
		}
		addr, ok := ParseAddress(key)
		if !ok {
			continue
		}
		if seen.Add(addr) {
			parsed = append(parsed, addr)
		}
	}
	return seenRaw.Cardinality(), parsed
}

// lenient returns opts with per-call decode failures reported as item
// failures.
func lenient(opts *multicall.CallOptions) *multicall.CallOptions {
	out := &multicall.CallOptions{LenientDecode: true}
	if opts != nil {
		out.BlockNumber = opts.BlockNumber
	}
	return out
}

// fetchSymbols decodes the primary batch strictly: a return that is not a
// string fails the batch and switches every address to bytes32.
func (r *Resolver) fetchSymbols(ctx context.Context, addrs []common.Address, opts *multicall.CallOptions) (symbolBatch, error) {
	batch, err := r.callAligned(ctx, addrs, erc20MetadataABI, "symbol", opts)
	if err == nil {
		return symbolBatch{Batch: batch}, nil
	}
	if ctx.Err() != nil {
		r.metrics.transportFailures.WithLabelValues("symbol").Inc()
		return symbolBatch{}, fmt.Errorf("%w: symbol: %w", ErrTransportFailure, err)
	}

	r.logger.Warn("Symbol batch failed with string encoding, retrying with bytes32",
		"count", len(addrs),
		"error", err,
	)
	r.metrics.symbolFallbacks.Inc()

	fallback, fbErr := r.callAligned(ctx, addrs, bytes32SymbolABI, "symbol", lenient(opts))
	if fbErr != nil {
		r.logger.Error("Symbol batch failed with bytes32 encoding",
			"count", len(addrs),
			"error", fbErr,
		)
		r.metrics.transportFailures.WithLabelValues("symbol").Inc()
		return symbolBatch{}, fmt.Errorf("%w: symbol: %w", ErrTransportFailure, errors.Join(err, fbErr))
	}
	return symbolBatch{Batch: fallback, bytes32: true}, nil
}

func (r *Resolver) fetchDecimals(ctx context.Context, addrs []common.Address, opts *multicall.CallOptions) (*multicall.Batch, error) {
	batch, err := r.callAligned(ctx, addrs, erc20MetadataABI, "decimals", lenient(opts))
	if err != nil {
		r.logger.Error("Decimals batch failed", "count", len(addrs), "error", err)
		r.metrics.transportFailures.WithLabelValues("decimals").Inc()
		return nil, fmt.Errorf("%w: decimals: %w", ErrTransportFailure, err)
	}
	return batch, nil
}

// callAligned treats a batch whose length does not match the request as a
// failure of the batch.
func (r *Resolver) callAligned(ctx context.Context, addrs []common.Address, contractABI *abi.ABI, method string, opts *multicall.CallOptions) (*multicall.Batch, error) {
	batch, err := r.caller.CallSameFunction(ctx, addrs, contractABI, method, opts)
	if err != nil {
		return nil, err
	}
	if batch == nil || len(batch.Results) != len(addrs) {
		got := 0
		if batch != nil {
			got = len(batch.Results)
		}
		return nil, fmt.Errorf("%s: got %d results for %d addresses", method, got, len(addrs))
	}
	return batch, nil
}

func (b symbolBatch) symbolAt(i int) (string, error) {
	res := b.Results[i]
	if !res.Success {
		return "", resultErr(res)
	}
	if len(res.Values) == 0 {
		return "", errors.New("symbol: no return value")
	}

	var symbol string
	if b.bytes32 {
		word, ok := res.Values[0].([32]byte)
		if !ok {
			return "", fmt.Errorf("symbol: unexpected type %T", res.Values[0])
		}
		s, err := ParseBytes32Symbol(word)
		if err != nil {
			return "", err
		}
		symbol = s
	} else {
		s, ok := res.Values[0].(string)
		if !ok {
			return "", fmt.Errorf("symbol: unexpected type %T", res.Values[0])
		}
		symbol = s
	}

	if symbol == "" {
		return "", errEmptySymbol
	}
	return symbol, nil
}

func decimalsAt(b *multicall.Batch, i int) (uint8, error) {
	res := b.Results[i]
	if !res.Success {
		return 0, resultErr(res)
	}
	if len(res.Values) == 0 {
		return 0, errors.New("decimals: no return value")
	}
	switch v := res.Values[0].(type) {
	case uint8:
		return v, nil
	case *big.Int:
		if !v.IsUint64() || v.Uint64() > 255 {
			return 0, fmt.Errorf("decimals: %s out of range", v)
		}
		return uint8(v.Uint64()), nil
	default:
		return 0, fmt.Errorf("decimals: unexpected type %T", res.Values[0])
	}
}

func resultErr(res multicall.Result) error {
	if res.Err != nil {
		return res.Err
	}
	return multicall.ErrCallFailed
}
