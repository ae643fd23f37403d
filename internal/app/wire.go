package app

import (
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"solwallet/internal/domain"
	identitysvc "solwallet/internal/services/identity"
	sessionsvc "solwallet/internal/services/session"
	walletsvc "solwallet/internal/services/wallet"
	"solwallet/internal/storage"
)

// Wire bundles the storage backend and services for a host.
type Wire struct {
	Storage  domain.Storage
	Identity domain.IdentityService
	Sessions domain.SessionStore
	Wallet   domain.WalletService
}

// NewWire constructs the dependency graph from cfg. linking is the host's
// URL-opening capability; codec may be nil when transaction signature
// splicing is not needed.
func NewWire(cfg Config, linking domain.Linking, codec domain.TransactionCodec) (*Wire, error) {
	if cfg.AppURL == "" {
		return nil, errors.New("app url is required")
	}
	if linking == nil {
		return nil, errors.New("linking capability is required")
	}
	if cfg.RedirectURL == "" {
		cfg.RedirectURL = cfg.AppURL
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	var store domain.Storage
	switch {
	case cfg.RedisAddr != "":
		store = storage.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	case cfg.StoragePath != "":
		store = storage.NewFile(cfg.StoragePath)
	default:
		store = storage.NewMemory()
	}

	identity := identitysvc.New(store, log)
	sessions := sessionsvc.New(store, log)
	wallet := walletsvc.New(walletsvc.Config{
		AppURL:      cfg.AppURL,
		RedirectURL: cfg.RedirectURL,
		Cluster:     cfg.Cluster,
		Timeout:     cfg.Timeout,
	}, identity, sessions, linking, codec, log)

	return &Wire{
		Storage:  store,
		Identity: identity,
		Sessions: sessions,
		Wallet:   wallet,
	}, nil
}
