package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"solwallet/internal/domain"
)

func connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect <provider>",
		Short: "Connect to a wallet (Phantom or Solflare)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := feedCallbacks(cmd)
			defer stop()

			wallet, err := wire.Wallet.Connect(cmd.Context(), domain.Provider(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connected.\nProvider: %s\nAddress:  %s\n", wallet.Provider, wallet.Address)
			return nil
		},
	}
}

func clusterFromFlag(v string) domain.Cluster {
	switch domain.Cluster(v) {
	case domain.ClusterDevnet:
		return domain.ClusterDevnet
	case domain.ClusterTestnet:
		return domain.ClusterTestnet
	default:
		return domain.ClusterMainnetBeta
	}
}
