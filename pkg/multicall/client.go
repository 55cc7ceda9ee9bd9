package multicall

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Logger defines a standard interface for structured, leveled logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContractCaller is the slice of an Ethereum client the multicall client needs.
// *ethclient.Client satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Config holds the configuration for the client.
type Config struct {
	// Address of the Multicall3 contract. Defaults to DefaultAddress.
	Address common.Address
	Caller  ContractCaller
	Logger  Logger
	// MaxBatchSize splits large batches into several eth_calls pinned to the
	// same block. Zero means no limit.
	MaxBatchSize int
}

// validate checks if the configuration is valid.
func (c *Config) validate() error {
	if c.Caller == nil {
		return errors.New("config: Caller is required")
	}
	if c.Logger == nil {
		return errors.New("config: Logger is required")
	}
	if c.MaxBatchSize < 0 {
		return errors.New("config: MaxBatchSize must not be negative")
	}
	return nil
}

// Client is a Caller backed by a Multicall3 contract.
type Client struct {
	address      common.Address
	caller       ContractCaller
	logger       Logger
	maxBatchSize int
	closeFn      func()
}

// NewClient creates a new multicall client.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	address := cfg.Address
	if address == (common.Address{}) {
		address = DefaultAddress
	}
	return &Client{
		address:      address,
		caller:       cfg.Caller,
		logger:       cfg.Logger,
		maxBatchSize: cfg.MaxBatchSize,
	}, nil
}

// Dial connects to an RPC endpoint and returns a client that owns the
// connection. cfg.Caller is ignored.
func Dial(ctx context.Context, url string, cfg Config) (*Client, error) {
	if url == "" {
		return nil, errors.New("config: URL is required")
	}
	rpcClient, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	cfg.Caller = ethclient.NewClient(rpcClient)

	c, err := NewClient(cfg)
	if err != nil {
		rpcClient.Close()
		return nil, err
	}
	c.closeFn = rpcClient.Close
	c.logger.Info("Connected to RPC server", "url", url, "multicall", c.address.Hex())
	return c, nil
}

// Close releases the connection opened by Dial. It is a no-op otherwise.
func (c *Client) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}

// Address returns the Multicall3 contract the client targets.
func (c *Client) Address() common.Address {
	return c.address
}

// CallSameFunction calls method with args on every address and decodes each
// return value with contractABI.
func (c *Client) CallSameFunction(
	ctx context.Context,
	addresses []common.Address,
	contractABI *abi.ABI,
	method string,
	opts *CallOptions,
	args ...any,
) (*Batch, error) {
	if _, ok := contractABI.Methods[method]; !ok {
		return nil, fmt.Errorf("multicall: method %q not found in abi", method)
	}
	callData, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("multicall: packing %s: %w", method, err)
	}

	batch := &Batch{
		BlockNumber: opts.blockNumber(),
		Results:     make([]Result, 0, len(addresses)),
	}
	if len(addresses) == 0 {
		return batch, nil
	}

	for _, chunk := range c.chunks(addresses) {
		blockNumber, results, err := c.aggregate(ctx, chunk, callData, batch.BlockNumber, contractABI, method, opts.lenientDecode())
		if err != nil {
			return nil, err
		}
		// Later chunks read the block the first one landed on.
		if batch.BlockNumber == nil {
			batch.BlockNumber = blockNumber
		}
		batch.Results = append(batch.Results, results...)
	}

	c.logger.Debug("Multicall completed",
		"method", method,
		"calls", len(addresses),
		"block_number", batch.BlockNumber,
	)
	return batch, nil
}

func (c *Client) chunks(addresses []common.Address) [][]common.Address {
	if c.maxBatchSize == 0 || len(addresses) <= c.maxBatchSize {
		return [][]common.Address{addresses}
	}
	var out [][]common.Address
	for start := 0; start < len(addresses); start += c.maxBatchSize {
		end := min(start+c.maxBatchSize, len(addresses))
		out = append(out, addresses[start:end])
	}
	return out
}

func (c *Client) aggregate(
	ctx context.Context,
	addresses []common.Address,
	callData []byte,
	blockNumber *big.Int,
	contractABI *abi.ABI,
	method string,
	lenient bool,
) (*big.Int, []Result, error) {
	calls := make([]call, len(addresses))
	for i, addr := range addresses {
		calls[i] = call{Target: addr, CallData: callData}
	}

	input, err := mcABI.Pack(aggregateMethod, false, calls)
	if err != nil {
		return nil, nil, fmt.Errorf("multicall: packing %s: %w", aggregateMethod, err)
	}

	to := c.address
	raw, err := c.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: input}, blockNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrTransport, method, err)
	}

	var out aggregateResult
	if err := mcABI.UnpackIntoInterface(&out, aggregateMethod, raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: unpacking aggregate: %w", ErrDecode, method, err)
	}
	if len(out.ReturnData) != len(addresses) {
		return nil, nil, fmt.Errorf("%w: %s: got %d results for %d calls", ErrDecode, method, len(out.ReturnData), len(addresses))
	}

	results := make([]Result, len(addresses))
	for i, r := range out.ReturnData {
		switch {
		case !r.Success:
			results[i] = Result{Err: ErrCallFailed}
			continue
		case len(r.ReturnData) == 0:
			results[i] = Result{Err: ErrEmptyReturn}
			continue
		}

		values, err := contractABI.Unpack(method, r.ReturnData)
		if err != nil {
			err = fmt.Errorf("%w: %s on %s: %w", ErrDecode, method, addresses[i].Hex(), err)
			if !lenient {
				return nil, nil, err
			}
			results[i] = Result{Err: err}
			continue
		}
		results[i] = Result{Success: true, Values: values}
	}
	return out.BlockNumber, results, nil
}
