package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/defolym3/smart-order-router/cmd/router/config"
	"github.com/defolym3/smart-order-router/pkg/multicall"
	"github.com/defolym3/smart-order-router/protocols/uniswapv2"
)

type metadata struct {
	symbol   string
	decimals uint8
}

// stubCaller answers symbol and decimals from a table; unknown addresses revert.
type stubCaller struct {
	tokens map[common.Address]metadata
}

func (s *stubCaller) CallSameFunction(_ context.Context, addresses []common.Address, _ *abi.ABI, method string, _ *multicall.CallOptions, _ ...any) (*multicall.Batch, error) {
	batch := &multicall.Batch{Results: make([]multicall.Result, len(addresses))}
	for i, addr := range addresses {
		md, ok := s.tokens[addr]
		if !ok {
			batch.Results[i] = multicall.Result{Err: multicall.ErrCallFailed}
			continue
		}
		switch method {
		case "symbol":
			batch.Results[i] = multicall.Result{Success: true, Values: []any{md.symbol}}
		case "decimals":
			batch.Results[i] = multicall.Result{Success: true, Values: []any{md.decimals}}
		}
	}
	return batch, nil
}

func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	if a.dialCaller == nil {
		a.dialCaller = dialMulticall
	}
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestChainsCmd(t *testing.T) {
	out, err := run(t, &app{}, "chains")
	require.NoError(t, err)
	assert.Contains(t, out, "CHAIN_ID")
	assert.Contains(t, out, "base-mainnet")
	assert.Contains(t, out, "0x4200000000000000000000000000000000000006")
	assert.Contains(t, out, "scroll-mainnet")
}

func TestPoolsCmd(t *testing.T) {
	t.Run("BaseOnly", func(t *testing.T) {
		out, err := run(t, &app{}, "pools", "--chain-id", "8453")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[1], "USDbC")
		assert.Contains(t, lines[1], "WETH")
	})

	t.Run("QueryBySymbolAsJSON", func(t *testing.T) {
		out, err := run(t, &app{}, "pools", "--chain-id", "34443", "--json", "WBTC", "USDT")
		require.NoError(t, err)

		var pools []uniswapv2.CandidatePool
		require.NoError(t, json.Unmarshal([]byte(out), &pools))
		// C(5,2) base pairs; the query tokens are bases themselves.
		assert.Len(t, pools, 10)
		for _, p := range pools {
			assert.Equal(t, uniswapv2.PlaceholderLiquidity, p.Liquidity)
		}
	})

	t.Run("UnsupportedChainYieldsDirectPair", func(t *testing.T) {
		out, err := run(t, &app{}, "pools", "--chain-id", "1",
			"0x6B175474E89094C44Da98b954EedeAC495271d0F",
			"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
		require.NoError(t, err)
		assert.Contains(t, out, "0xA478c2975Ab1Ea89e8196811F51A7B7Ade33eB11")
	})

	t.Run("UnknownSymbol", func(t *testing.T) {
		_, err := run(t, &app{}, "pools", "--chain-id", "8453", "PEPE", "WETH")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown token")
	})

	t.Run("NativeAliasResolvesToWrapped", func(t *testing.T) {
		for _, alias := range []string{"ETH", "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"} {
			out, err := run(t, &app{}, "pools", "--chain-id", "8453", alias, "USDbC")
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(out), "\n")
			require.Len(t, lines, 2)
			assert.Contains(t, lines[1], "WETH")
			assert.Contains(t, lines[1], "USDbC")
		}
	})

	t.Run("FilterByToken", func(t *testing.T) {
		out, err := run(t, &app{}, "pools", "--chain-id", "34443", "--json", "--token", "ETH")
		require.NoError(t, err)

		var pools []uniswapv2.CandidatePool
		require.NoError(t, json.Unmarshal([]byte(out), &pools))
		require.Len(t, pools, 4)
		weth := common.HexToAddress("0x4200000000000000000000000000000000000006")
		for _, p := range pools {
			assert.True(t, p.Token0.ID == weth || p.Token1.ID == weth)
		}
	})

	t.Run("SelectByPoolAddress", func(t *testing.T) {
		out, err := run(t, &app{}, "pools", "--chain-id", "34443", "--json")
		require.NoError(t, err)
		var all []uniswapv2.CandidatePool
		require.NoError(t, json.Unmarshal([]byte(out), &all))
		require.NotEmpty(t, all)
		want := all[len(all)-1].ID

		out, err = run(t, &app{}, "pools", "--chain-id", "34443", "--json", "--pool", strings.ToLower(want.Hex()))
		require.NoError(t, err)
		var picked []uniswapv2.CandidatePool
		require.NoError(t, json.Unmarshal([]byte(out), &picked))
		require.Len(t, picked, 1)
		assert.Equal(t, want, picked[0].ID)

		_, err = run(t, &app{}, "pools", "--chain-id", "34443", "--pool", "0x000000000000000000000000000000000000dEaD")
		assert.Error(t, err)
	})

	t.Run("OneToken", func(t *testing.T) {
		_, err := run(t, &app{}, "pools", "WETH")
		assert.Error(t, err)
	})
}

func TestTokensCmd(t *testing.T) {
	weth := common.HexToAddress("0x4200000000000000000000000000000000000006")
	usdc := common.HexToAddress("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913")
	stub := &stubCaller{tokens: map[common.Address]metadata{
		weth: {"WETH", 18},
		usdc: {"USDC", 6},
	}}

	a := &app{
		dialCaller: func(context.Context, *config.RouterConfig, *slog.Logger) (multicall.Caller, func(), error) {
			return stub, func() {}, nil
		},
	}
	out, err := run(t, a, "tokens", "--chain-id", "8453",
		weth.Hex(), strings.ToLower(usdc.Hex()), "0x000000000000000000000000000000000000dEaD")
	require.NoError(t, err)
	assert.Contains(t, out, "WETH")
	assert.Contains(t, out, "USDC")
	assert.Contains(t, out, "resolved 2 of 3")

	t.Run("DuplicatesCountOnce", func(t *testing.T) {
		out, err := run(t, a, "tokens", "--chain-id", "8453",
			weth.Hex(), strings.ToLower(weth.Hex()), usdc.Hex(), usdc.Hex())
		require.NoError(t, err)
		assert.Contains(t, out, "resolved 2 of 2")
	})
}

func TestTokensCmd_RequiresRPCURL(t *testing.T) {
	_, err := run(t, &app{}, "tokens", "0x4200000000000000000000000000000000000006")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpc_url is required")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	chainsPath := filepath.Join(dir, "chains.yaml")
	require.NoError(t, os.WriteFile(chainsPath, []byte(`
chains:
  - chain_id: 7
    network_name: devnet
    base_tokens:
      - {address: "0x0000000000000000000000000000000000000001", decimals: 18, symbol: AAA}
      - {address: "0x0000000000000000000000000000000000000002", decimals: 18, symbol: BBB}
      - {address: "0x0000000000000000000000000000000000000003", decimals: 18, symbol: CCC}
`), 0o600))
	cfgPath := filepath.Join(dir, "router.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("chain_id: 7\nchains_file: "+chainsPath+"\n"), 0o600))

	out, err := run(t, &app{}, "--config", cfgPath, "chains")
	require.NoError(t, err)
	assert.Contains(t, out, "devnet")
	assert.NotContains(t, out, "base-mainnet")

	out, err = run(t, &app{}, "--config", cfgPath, "pools")
	require.NoError(t, err)
	assert.Contains(t, out, "AAA")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)

	_, err = run(t, &app{}, "--config", filepath.Join(dir, "missing.yaml"), "chains")
	assert.Error(t, err)
}
