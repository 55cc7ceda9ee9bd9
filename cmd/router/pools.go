package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/defolym3/smart-order-router/pkg/chains"
	"github.com/defolym3/smart-order-router/protocols/token"
	"github.com/defolym3/smart-order-router/protocols/uniswapv2"
)

func newPoolsCmd(a *app) *cobra.Command {
	var (
		asJSON      bool
		withToken   string
		poolAddress string
	)

	cmd := &cobra.Command{
		Use:   "pools [TOKEN_IN TOKEN_OUT]",
		Short: "List Uniswap V2 candidate pools for the chain's base tokens",
		Long: `Lists the Uniswap V2 pools derived from the chain's base tokens and,
when two tokens are given, the pools linking them to each other and to
every base. Tokens are addresses, base token symbols or the native currency
(ETH, or its sentinel address), which stands for the wrapped native token.
Liquidity fields are placeholders.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return errors.New("expected no tokens or both TOKEN_IN and TOKEN_OUT")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			chainID := a.cfg.ChainID
			known := a.knownTokens(chainID)
			native, err := a.natives.OnChain(chainID)
			if err != nil {
				a.logger.Debug("No native currency for chain", "chain_id", chainID, "error", err)
			}
			lookup := func(s string) (token.Token, error) {
				return lookupToken(chainID, native, known, s)
			}

			var tokenIn, tokenOut *token.Token
			if len(args) == 2 {
				in, err := lookup(args[0])
				if err != nil {
					return err
				}
				out, err := lookup(args[1])
				if err != nil {
					return err
				}
				tokenIn, tokenOut = &in, &out
			}

			generator, err := uniswapv2.NewCandidateGenerator(&uniswapv2.GeneratorConfig{
				Factories: a.registry.V2Factories(),
				Logger:    a.logger.With("component", "candidate-generator"),
			})
			if err != nil {
				return err
			}
			provider := uniswapv2.NewStaticPoolProvider(chainID, a.registry, generator, a.logger.With("component", "static-pool-provider"))

			generated, err := provider.GetPools(cmd.Context(), tokenIn, tokenOut)
			if err != nil {
				return err
			}
			pools, err := selectPools(uniswapv2.NewIndexer().Index(generated), lookup, withToken, poolAddress)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(pools)
			}

			symbolOf := func(p uniswapv2.PoolToken) string {
				if t, ok := known.Get(p.ID); ok {
					return t.Symbol
				}
				return p.ID.Hex()
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "POOL\tTOKEN0\tTOKEN1")
			for _, p := range pools {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID.Hex(), symbolOf(p.Token0), symbolOf(p.Token1))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print pools as JSON")
	cmd.Flags().StringVar(&withToken, "token", "", "only print pools containing this token")
	cmd.Flags().StringVar(&poolAddress, "pool", "", "only print the pool at this address")
	return cmd
}

// selectPools narrows the candidate set to one pool, to the pools of one
// token, or returns it whole.
func selectPools(
	set *uniswapv2.IndexableCandidateSet,
	lookup func(string) (token.Token, error),
	withToken, poolAddress string,
) ([]uniswapv2.CandidatePool, error) {
	pools := set.All()
	if poolAddress != "" {
		p, ok := set.GetByAddress(poolAddress)
		if !ok {
			return nil, fmt.Errorf("pool %s is not a candidate", poolAddress)
		}
		pools = []uniswapv2.CandidatePool{p}
	}
	if withToken == "" {
		return pools, nil
	}

	t, err := lookup(withToken)
	if err != nil {
		return nil, err
	}
	if poolAddress == "" {
		return set.ForToken(t.Address), nil
	}
	if !containsToken(pools[0], t.Address) {
		return nil, nil
	}
	return pools, nil
}

func containsToken(p uniswapv2.CandidatePool, addr common.Address) bool {
	return p.Token0.ID == addr || p.Token1.ID == addr
}

// knownTokens indexes the chain's base tokens and stables for symbol lookups.
func (a *app) knownTokens(chainID uint64) *token.Accessor {
	tokens := a.registry.BaseTokens(chainID)
	for _, lookup := range []func(uint64) (token.Token, error){
		a.registry.WrappedNative,
		a.registry.USDCOn,
		a.registry.DAIOn,
		a.registry.USDTOn,
	} {
		if t, err := lookup(chainID); err == nil {
			tokens = append(tokens, t)
		}
	}
	return token.NewIndexer().Index(tokens)
}

// lookupToken resolves a native currency alias, an address or a known symbol.
// Aliases are checked first since the native sentinel is itself a valid
// address.
func lookupToken(chainID uint64, native *chains.NativeCurrency, known *token.Accessor, s string) (token.Token, error) {
	if native != nil && native.IsAlias(s) {
		return native.Wrapped, nil
	}
	if addr, ok := token.ParseAddress(s); ok {
		if t, ok := known.Get(addr); ok {
			return t, nil
		}
		return token.New(chainID, addr, 0, "", ""), nil
	}
	if t, ok := known.GetBySymbol(s); ok {
		return t, nil
	}
	return token.Token{}, fmt.Errorf("unknown token %q on chain %d", s, chainID)
}
