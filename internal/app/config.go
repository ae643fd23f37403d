package app

import (
	"time"

	"github.com/sirupsen/logrus"

	"solwallet/internal/domain"
)

// Config holds runtime wiring options for building the engine.
type Config struct {
	AppURL      string         // dApp URL sent on connect, e.g. https://dapp.example
	RedirectURL string         // base the wallet redirects back to; defaults to AppURL
	Cluster     domain.Cluster // defaults to mainnet-beta
	Timeout     time.Duration  // callback wait bound; 0 waits forever

	StoragePath string // JSON storage file; empty selects in-memory storage
	RedisAddr   string // Redis address; when set it wins over StoragePath

	Logger *logrus.Logger // optional; defaults to the standard logger
}
