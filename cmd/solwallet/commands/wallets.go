package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func walletsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wallets",
		Short: "List connected wallets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wallets, err := wire.Wallet.ConnectedWallets(cmd.Context())
			if err != nil {
				return err
			}
			if len(wallets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No wallets connected.")
				return nil
			}
			for _, w := range wallets {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", w.Provider, w.Address)
			}
			return nil
		},
	}
}
