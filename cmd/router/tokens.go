package main

import (
	"context"
	"fmt"
	"math/big"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/defolym3/smart-order-router/pkg/multicall"
	"github.com/defolym3/smart-order-router/protocols/token"
)

func newTokensCmd(a *app) *cobra.Command {
	var block int64

	cmd := &cobra.Command{
		Use:   "tokens ADDRESS...",
		Short: "Resolve symbol and decimals for ERC-20 addresses",
		Long: `Resolves symbol and decimals for every address with two batched
multicalls. Addresses that are not readable ERC-20 tokens are left out of
the output.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.RequestTimeout)
			defer cancel()

			caller, closeFn, err := a.dialCaller(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeFn()

			resolver, err := token.NewResolver(&token.ResolverConfig{
				ChainID:       a.cfg.ChainID,
				Caller:        caller,
				Logger:        a.logger.With("component", "token-resolver"),
				PrometheusReg: prometheus.NewRegistry(),
			})
			if err != nil {
				return err
			}

			var opts *multicall.CallOptions
			if block > 0 {
				opts = &multicall.CallOptions{BlockNumber: big.NewInt(block)}
			}
			accessor, err := resolver.GetTokens(ctx, args, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ADDRESS\tSYMBOL\tDECIMALS")
			for _, t := range accessor.All() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", t.Address.Hex(), t.Symbol, t.Decimals)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			requested, _ := token.NormalizeAddresses(args)
			fmt.Fprintf(out, "\nresolved %d of %d\n", accessor.Len(), requested)
			return nil
		},
	}

	cmd.Flags().Int64Var(&block, "block", 0, "block number to read at, latest when zero")
	return cmd
}
