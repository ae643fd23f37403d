package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"solwallet/internal/app"
)

var (
	home        string
	appURL      string
	redirectURL string
	cluster     string
	redisAddr   string
	timeout     time.Duration
	verbose     bool

	wire *app.Wire
)

// promptLinking prints the deep link for the user to open manually.
type promptLinking struct {
	out io.Writer
}

func (l promptLinking) OpenURL(_ context.Context, url string) error {
	fmt.Fprintf(l.out, "Open this URL in the wallet app:\n\n  %s\n\nPaste the callback URL below once the wallet redirects back.\n", url)
	return nil
}

func Execute() error {
	root := &cobra.Command{
		Use:   "solwallet",
		Short: "Deep-link wallet protocol CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".solwallet")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			log := logrus.New()
			log.SetOutput(cmd.ErrOrStderr())
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			} else {
				log.SetLevel(logrus.WarnLevel)
			}

			cfg := app.Config{
				AppURL:      appURL,
				RedirectURL: redirectURL,
				Cluster:     clusterFromFlag(cluster),
				Timeout:     timeout,
				RedisAddr:   redisAddr,
				Logger:      log,
			}
			if redisAddr == "" {
				cfg.StoragePath = filepath.Join(home, "wallet.json")
			}

			w, err := app.NewWire(cfg, promptLinking{out: cmd.OutOrStdout()}, nil)
			if err != nil {
				return err
			}
			wire = w
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.solwallet)")
	root.PersistentFlags().StringVar(&appURL, "app-url", "https://dapp.example", "dApp URL sent to the wallet")
	root.PersistentFlags().StringVar(&redirectURL, "redirect-url", "", "callback base URL (default app-url)")
	root.PersistentFlags().StringVar(&cluster, "cluster", "mainnet-beta", "cluster: mainnet-beta, devnet or testnet")
	root.PersistentFlags().StringVar(&redisAddr, "redis", "", "redis address for session storage (default file storage)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 0, "callback wait bound, 0 waits forever")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(connectCmd(), disconnectCmd(), signMessageCmd(), signTransactionCmd(), walletsCmd())
	return root.Execute()
}

// feedCallbacks forwards stdin lines to the engine's callback handler while
// an operation waits for its round trip.
func feedCallbacks(cmd *cobra.Command) (stop func()) {
	ctx, cancel := context.WithCancel(cmd.Context())
	go func() {
		sc := bufio.NewScanner(cmd.InOrStdin())
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			if err := wire.Wallet.HandleCallback(ctx, line); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "callback error:", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
	return cancel
}
