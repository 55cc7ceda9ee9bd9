package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newChainsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chains",
		Short: "List configured chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CHAIN_ID\tNETWORK\tSUPPORTED\tV2\tL1_FEE\tWRAPPED_NATIVE\tBASES")
			for _, id := range a.registry.ChainIDs() {
				c, err := a.registry.Chain(id)
				if err != nil {
					return err
				}
				wrapped := "-"
				if c.WrappedNative != nil {
					wrapped = c.WrappedNative.Address.Hex()
				}
				fmt.Fprintf(w, "%d\t%s\t%t\t%t\t%t\t%s\t%d\n",
					c.ID, c.NetworkName, c.Supported, c.V2Supported, c.HasL1Fee, wrapped, len(c.BaseTokens))
			}
			return w.Flush()
		},
	}
}
