package wallet

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"solwallet/internal/crypto"
	"solwallet/internal/domain"
	"solwallet/internal/protocol/deeplink"
)

// Config carries the engine's static options.
type Config struct {
	// AppURL identifies the dApp to the wallet on connect.
	AppURL string
	// RedirectURL is the base the wallet redirects back to; callback paths
	// are appended to it.
	RedirectURL string
	// Cluster defaults to mainnet-beta.
	Cluster domain.Cluster
	// Timeout bounds the wait for a callback. Zero means wait forever;
	// the pending entry then leaks if the callback never arrives.
	Timeout time.Duration
}

// Service composes the identity service, the session store, the deep-link
// builder and the pending-request table into the public operation surface.
//
// Callers must not issue overlapping operations against the same wallet
// address; distinct addresses and operations may be in flight concurrently.
type Service struct {
	cfg      Config
	identity domain.IdentityService
	sessions domain.SessionStore
	linking  domain.Linking
	codec    domain.TransactionCodec
	log      logrus.FieldLogger

	mu            sync.Mutex
	initialized   bool
	nextRequestID uint64
	pending       map[string]chan outcome
	requestWallet map[uint64]string
}

// New returns a wallet service. codec may be nil, in which case
// SignTransaction returns the wallet's serialized transaction unmerged.
func New(cfg Config, identity domain.IdentityService, sessions domain.SessionStore, linking domain.Linking, codec domain.TransactionCodec, log logrus.FieldLogger) *Service {
	if cfg.Cluster == "" {
		cfg.Cluster = domain.ClusterMainnetBeta
	}
	cfg.RedirectURL = strings.TrimSuffix(cfg.RedirectURL, "/")
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		cfg:           cfg,
		identity:      identity,
		sessions:      sessions,
		linking:       linking,
		codec:         codec,
		log:           log,
		pending:       make(map[string]chan outcome),
		requestWallet: make(map[uint64]string),
	}
}

// init ensures the identity exists and the session cache is loaded. The
// initialized flag is set only after a successful load, so a failed load is
// retried by the next operation instead of leaving the cache permanently
// empty. The lock is held across the load so no operation can observe the
// cache before the first load completes.
func (s *Service) init(ctx context.Context) error {
	if err := s.identity.Ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := s.sessions.LoadAll(ctx); err != nil {
		return err
	}
	s.initialized = true
	return nil
}

// Connect opens the provider's connect deep link and waits for the wallet to
// call back with the encrypted session grant.
func (s *Service) Connect(ctx context.Context, provider domain.Provider) (domain.ConnectedWallet, error) {
	if err := s.init(ctx); err != nil {
		return domain.ConnectedWallet{}, err
	}
	if _, ok := deeplink.Info(provider); !ok {
		return domain.ConnectedWallet{}, domain.ErrUnknownProvider
	}
	publicKey, ok := s.identity.PublicKey()
	if !ok {
		return domain.ConnectedWallet{}, errors.New("encryption key is not initialized")
	}

	id, ch := s.mint(kindConnect, "")
	redirect := deeplink.RedirectURL(s.cfg.RedirectURL, deeplink.PathConnect, provider, id)
	u, err := deeplink.BuildConnectURL(provider, s.cfg.AppURL, crypto.B58(publicKey.Slice()), s.cfg.Cluster, redirect)
	if err != nil {
		s.retire(kindConnect, id)
		return domain.ConnectedWallet{}, err
	}

	if err := s.open(ctx, kindConnect, id, u); err != nil {
		return domain.ConnectedWallet{}, err
	}
	out, err := s.await(ctx, kindConnect, id, ch)
	if err != nil {
		return domain.ConnectedWallet{}, err
	}
	return domain.ConnectedWallet{Provider: out.provider, Address: out.address}, nil
}

// Disconnect tells the wallet to drop the session, then removes it locally.
// Fails fast with ErrNotConnected before opening any URL if the address has
// no stored session.
func (s *Service) Disconnect(ctx context.Context, address string) error {
	secret, err := s.sessionFor(ctx, address)
	if err != nil {
		return err
	}

	id, ch := s.mint(kindDisconnect, address)
	redirect := deeplink.RedirectURL(s.cfg.RedirectURL, deeplink.PathDisconnect, secret.Provider, id)
	nonce, payload, err := s.seal(deeplink.DisconnectRequestData{Session: secret.Session}, secret)
	if err != nil {
		s.retire(kindDisconnect, id)
		return err
	}
	u, err := deeplink.BuildDisconnectURL(secret.Provider, s.dappPublicKey(), nonce, payload, redirect)
	if err != nil {
		s.retire(kindDisconnect, id)
		return err
	}

	if err := s.open(ctx, kindDisconnect, id, u); err != nil {
		return err
	}
	_, err = s.await(ctx, kindDisconnect, id, ch)
	return err
}

// SignMessage asks the wallet to sign message and returns the base58
// signature.
func (s *Service) SignMessage(ctx context.Context, address, message string) (string, error) {
	secret, err := s.sessionFor(ctx, address)
	if err != nil {
		return "", err
	}

	id, ch := s.mint(kindSignMessage, address)
	redirect := deeplink.RedirectURL(s.cfg.RedirectURL, deeplink.PathSignMessage, secret.Provider, id)
	nonce, payload, err := s.seal(deeplink.SignMessageRequestData{
		Message: crypto.B58([]byte(message)),
		Session: secret.Session,
		Display: "utf8",
	}, secret)
	if err != nil {
		s.retire(kindSignMessage, id)
		return "", err
	}
	u, err := deeplink.BuildSignMessageURL(secret.Provider, s.dappPublicKey(), nonce, payload, redirect)
	if err != nil {
		s.retire(kindSignMessage, id)
		return "", err
	}

	if err := s.open(ctx, kindSignMessage, id, u); err != nil {
		return "", err
	}
	out, err := s.await(ctx, kindSignMessage, id, ch)
	if err != nil {
		return "", err
	}
	return out.signature, nil
}

// SignTransaction asks the wallet to sign the serialized transaction. The
// caller's transaction must already carry fee payer and recent blockhash.
// The wallet's signatures are spliced onto the original through the
// configured codec so signatures the caller already attached survive.
func (s *Service) SignTransaction(ctx context.Context, address string, transaction []byte) ([]byte, error) {
	secret, err := s.sessionFor(ctx, address)
	if err != nil {
		return nil, err
	}

	id, ch := s.mint(kindSignTransaction, address)
	redirect := deeplink.RedirectURL(s.cfg.RedirectURL, deeplink.PathSignTransaction, secret.Provider, id)
	nonce, payload, err := s.seal(deeplink.SignTransactionRequestData{
		Transaction: crypto.B58(transaction),
		Session:     secret.Session,
	}, secret)
	if err != nil {
		s.retire(kindSignTransaction, id)
		return nil, err
	}
	u, err := deeplink.BuildSignTransactionURL(secret.Provider, s.dappPublicKey(), nonce, payload, redirect)
	if err != nil {
		s.retire(kindSignTransaction, id)
		return nil, err
	}

	if err := s.open(ctx, kindSignTransaction, id, u); err != nil {
		return nil, err
	}
	out, err := s.await(ctx, kindSignTransaction, id, ch)
	if err != nil {
		return nil, err
	}
	if s.codec == nil {
		return out.transaction, nil
	}
	merged, err := s.codec.MergeSignatures(transaction, out.transaction)
	if err != nil {
		return nil, errors.Wrap(err, "merge signatures")
	}
	return merged, nil
}

// ConnectedWallets lists the wallets with a stored session, in index order.
// No round trip to any wallet is made.
func (s *Service) ConnectedWallets(ctx context.Context) ([]domain.ConnectedWallet, error) {
	if err := s.init(ctx); err != nil {
		return nil, err
	}
	secrets := s.sessions.Enumerate()
	out := make([]domain.ConnectedWallet, 0, len(secrets))
	for _, secret := range secrets {
		out = append(out, domain.ConnectedWallet{Provider: secret.Provider, Address: secret.Wallet})
	}
	return out, nil
}

// sessionFor runs init and resolves the stored session for address, failing
// fast when the wallet was never connected.
func (s *Service) sessionFor(ctx context.Context, address string) (domain.ProviderSecret, error) {
	if err := s.init(ctx); err != nil {
		return domain.ProviderSecret{}, err
	}
	secret, ok := s.sessions.Lookup(address)
	if !ok {
		return domain.ProviderSecret{}, domain.ErrNotConnected
	}
	return secret, nil
}

// seal encrypts a request payload under the session's shared secret. Empty
// box output means encryption failed.
func (s *Service) seal(payload any, secret domain.ProviderSecret) (nonce, encrypted string, err error) {
	n, ct := crypto.Seal(payload, secret.SharedSecret)
	if len(n) == 0 || len(ct) == 0 {
		return "", "", errors.New("encrypt request payload")
	}
	return crypto.B58(n), crypto.B58(ct), nil
}

func (s *Service) dappPublicKey() string {
	publicKey, _ := s.identity.PublicKey()
	return crypto.B58(publicKey.Slice())
}

// open dispatches the deep link. A transport failure resolves the operation
// immediately; no callback is expected.
func (s *Service) open(ctx context.Context, kind string, requestID uint64, url string) error {
	s.log.WithField("kind", kind).WithField("url", url).Debug("opening wallet url")
	if err := s.linking.OpenURL(ctx, url); err != nil {
		s.retire(kind, requestID)
		return errors.Wrap(err, "open wallet url")
	}
	return nil
}

// Compile-time assertion that Service implements domain.WalletService.
var _ domain.WalletService = (*Service)(nil)
