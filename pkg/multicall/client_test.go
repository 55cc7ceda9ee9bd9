package multicall

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const symbolABIJSON = `[{"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"}]`

// fakeChain answers tryBlockAndAggregate with canned return data per target.
type fakeChain struct {
	block   int64
	replies map[common.Address]callResult
	err     error

	calls      int
	lastBlock  *big.Int
	lastTarget common.Address
}

func (f *fakeChain) CallContract(_ context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	f.calls++
	f.lastBlock = blockNumber
	f.lastTarget = *msg.To
	if f.err != nil {
		return nil, f.err
	}

	method := mcABI.Methods[aggregateMethod]
	args, err := method.Inputs.Unpack(msg.Data[4:])
	if err != nil {
		return nil, err
	}
	calls := *abi.ConvertType(args[1], new([]call)).(*[]call)

	results := make([]callResult, len(calls))
	for i, c := range calls {
		results[i] = f.replies[c.Target]
	}
	block := f.block
	if blockNumber != nil {
		block = blockNumber.Int64()
	}
	return method.Outputs.Pack(big.NewInt(block), [32]byte{}, results)
}

func newTestClient(t *testing.T, chain ContractCaller, maxBatch int) *Client {
	t.Helper()
	c, err := NewClient(Config{
		Caller:       chain,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxBatchSize: maxBatch,
	})
	require.NoError(t, err)
	return c
}

func packString(t *testing.T, contractABI *abi.ABI, s string) []byte {
	t.Helper()
	out, err := contractABI.Methods["symbol"].Outputs.Pack(s)
	require.NoError(t, err)
	return out
}

func TestClient_CallSameFunction(t *testing.T) {
	symbolABI, err := abi.JSON(strings.NewReader(symbolABIJSON))
	require.NoError(t, err)

	tokenA := common.HexToAddress("0x0000000000000000000000000000000000000a01")
	tokenB := common.HexToAddress("0x0000000000000000000000000000000000000b02")
	reverting := common.HexToAddress("0x0000000000000000000000000000000000000c03")
	eoa := common.HexToAddress("0x0000000000000000000000000000000000000d04")

	replies := map[common.Address]callResult{
		tokenA:    {Success: true, ReturnData: packString(t, &symbolABI, "AAA")},
		tokenB:    {Success: true, ReturnData: packString(t, &symbolABI, "BBB")},
		reverting: {Success: false},
		eoa:       {Success: true},
	}

	t.Run("DecodesPerCallResults", func(t *testing.T) {
		chain := &fakeChain{block: 100, replies: replies}
		c := newTestClient(t, chain, 0)

		batch, err := c.CallSameFunction(context.Background(), []common.Address{tokenA, reverting, eoa, tokenB}, &symbolABI, "symbol", nil)
		require.NoError(t, err)
		require.Len(t, batch.Results, 4)

		assert.True(t, batch.Results[0].Success)
		assert.Equal(t, "AAA", batch.Results[0].Values[0])
		assert.ErrorIs(t, batch.Results[1].Err, ErrCallFailed)
		assert.ErrorIs(t, batch.Results[2].Err, ErrEmptyReturn)
		assert.Equal(t, "BBB", batch.Results[3].Values[0])

		assert.Equal(t, int64(100), batch.BlockNumber.Int64())
		assert.Equal(t, DefaultAddress, chain.lastTarget)
		assert.Nil(t, chain.lastBlock)
	})

	t.Run("PinsBlockNumber", func(t *testing.T) {
		chain := &fakeChain{block: 100, replies: replies}
		c := newTestClient(t, chain, 0)

		batch, err := c.CallSameFunction(context.Background(), []common.Address{tokenA}, &symbolABI, "symbol", &CallOptions{BlockNumber: big.NewInt(42)})
		require.NoError(t, err)
		assert.Equal(t, int64(42), chain.lastBlock.Int64())
		assert.Equal(t, int64(42), batch.BlockNumber.Int64())
	})

	t.Run("ChunksLargeBatches", func(t *testing.T) {
		chain := &fakeChain{block: 7, replies: replies}
		c := newTestClient(t, chain, 2)

		batch, err := c.CallSameFunction(context.Background(), []common.Address{tokenA, tokenB, reverting, tokenA, tokenB}, &symbolABI, "symbol", nil)
		require.NoError(t, err)
		assert.Equal(t, 3, chain.calls)
		require.Len(t, batch.Results, 5)
		assert.Equal(t, "BBB", batch.Results[4].Values[0])
		// chunks after the first are pinned to the first chunk's block
		assert.Equal(t, int64(7), chain.lastBlock.Int64())
	})

	t.Run("UndecodableReturnFailsWholeBatch", func(t *testing.T) {
		var word [32]byte
		copy(word[:], "MKR")
		bad := map[common.Address]callResult{
			tokenA: {Success: true, ReturnData: packString(t, &symbolABI, "AAA")},
			tokenB: {Success: true, ReturnData: word[:]},
		}
		c := newTestClient(t, &fakeChain{block: 1, replies: bad}, 0)

		_, err := c.CallSameFunction(context.Background(), []common.Address{tokenA, tokenB}, &symbolABI, "symbol", nil)
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("LenientDecodeMarksOnlyTheBadCall", func(t *testing.T) {
		var word [32]byte
		copy(word[:], "MKR")
		bad := map[common.Address]callResult{
			tokenA: {Success: true, ReturnData: packString(t, &symbolABI, "AAA")},
			tokenB: {Success: true, ReturnData: word[:]},
		}
		c := newTestClient(t, &fakeChain{block: 1, replies: bad}, 0)

		batch, err := c.CallSameFunction(context.Background(), []common.Address{tokenA, tokenB}, &symbolABI, "symbol", &CallOptions{LenientDecode: true})
		require.NoError(t, err)
		require.Len(t, batch.Results, 2)
		assert.Equal(t, "AAA", batch.Results[0].Values[0])
		assert.False(t, batch.Results[1].Success)
		assert.ErrorIs(t, batch.Results[1].Err, ErrDecode)
	})

	t.Run("TransportErrorIsWrapped", func(t *testing.T) {
		c := newTestClient(t, &fakeChain{err: errors.New("connection refused")}, 0)

		_, err := c.CallSameFunction(context.Background(), []common.Address{tokenA}, &symbolABI, "symbol", nil)
		assert.ErrorIs(t, err, ErrTransport)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("EmptyInputMakesNoCall", func(t *testing.T) {
		chain := &fakeChain{}
		c := newTestClient(t, chain, 0)

		batch, err := c.CallSameFunction(context.Background(), nil, &symbolABI, "symbol", nil)
		require.NoError(t, err)
		assert.Empty(t, batch.Results)
		assert.Zero(t, chain.calls)
	})

	t.Run("UnknownMethod", func(t *testing.T) {
		c := newTestClient(t, &fakeChain{}, 0)
		_, err := c.CallSameFunction(context.Background(), []common.Address{tokenA}, &symbolABI, "decimals", nil)
		assert.Error(t, err)
	})
}

func TestNewClient_Validation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewClient(Config{Logger: logger})
	assert.EqualError(t, err, "config: Caller is required")

	_, err = NewClient(Config{Caller: &fakeChain{}})
	assert.EqualError(t, err, "config: Logger is required")

	_, err = NewClient(Config{Caller: &fakeChain{}, Logger: logger, MaxBatchSize: -1})
	assert.Error(t, err)

	custom := common.HexToAddress("0x00000000000000000000000000000000000000ff")
	c, err := NewClient(Config{Caller: &fakeChain{}, Logger: logger, Address: custom})
	require.NoError(t, err)
	assert.Equal(t, custom, c.Address())
}
