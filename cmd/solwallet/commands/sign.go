package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"solwallet/internal/crypto"
)

func signMessageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign-message <address> <message>",
		Short: "Ask a connected wallet to sign a message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := feedCallbacks(cmd)
			defer stop()

			signature, err := wire.Wallet.SignMessage(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signature: %s\n", signature)
			return nil
		},
	}
}

func signTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign-transaction <address> <base58-transaction>",
		Short: "Ask a connected wallet to sign a serialized transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := feedCallbacks(cmd)
			defer stop()

			transaction, err := crypto.B58Decode(args[1])
			if err != nil {
				return fmt.Errorf("transaction is not valid base58: %w", err)
			}
			signed, err := wire.Wallet.SignTransaction(cmd.Context(), args[0], transaction)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed transaction: %s\n", crypto.B58(signed))
			return nil
		},
	}
}
