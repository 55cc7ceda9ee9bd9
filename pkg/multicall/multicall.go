// Package multicall batches many read-only contract calls into a single
// eth_call against a Multicall3 deployment.
package multicall

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrTransport is returned when the batch could not be executed at all.
	ErrTransport = errors.New("multicall: transport failure")
	// ErrDecode is returned when a batch came back but could not be decoded
	// with the requested ABI. It fails the whole batch unless the call was made
	// with LenientDecode, in which case it marks the single call instead.
	ErrDecode = errors.New("multicall: decode failure")

	// ErrCallFailed marks a single call that reverted.
	ErrCallFailed = errors.New("multicall: call reverted")
	// ErrEmptyReturn marks a single call that succeeded without return data,
	// which is what a call to an account without code looks like.
	ErrEmptyReturn = errors.New("multicall: empty return data")
)

// CallOptions scopes a batch. A nil *CallOptions reads the latest block.
type CallOptions struct {
	// BlockNumber pins the read to a historical block when set.
	BlockNumber *big.Int
	// LenientDecode reports a call whose return data does not decode as a
	// failed Result wrapping ErrDecode instead of failing the batch.
	LenientDecode bool
}

func (o *CallOptions) lenientDecode() bool {
	return o != nil && o.LenientDecode
}

func (o *CallOptions) blockNumber() *big.Int {
	if o == nil || o.BlockNumber == nil {
		return nil
	}
	return new(big.Int).Set(o.BlockNumber)
}

// Result is the outcome of one call inside a batch.
type Result struct {
	Success bool
	Values  []any
	Err     error
}

// Batch holds the results of a batch, aligned with the requested addresses.
type Batch struct {
	BlockNumber *big.Int
	Results     []Result
}

// Caller executes the same function on many contracts in one logical round-trip.
//
// Per-call failures are reported inside the Batch. An error is returned only
// when the batch as a whole could not be executed or decoded.
type Caller interface {
	CallSameFunction(
		ctx context.Context,
		addresses []common.Address,
		contractABI *abi.ABI,
		method string,
		opts *CallOptions,
		args ...any,
	) (*Batch, error)
}
