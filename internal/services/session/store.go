package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"solwallet/internal/crypto"
	"solwallet/internal/domain"
)

const (
	keyPrefix = "solanaConnectedWallet_"
	indexKey  = keyPrefix + "index"
)

// storedSecret is the persisted JSON shape of one ProviderSecret. Key
// material is base58 so the record stays printable.
type storedSecret struct {
	Provider     domain.Provider `json:"provider"`
	Wallet       string          `json:"wallet"`
	Session      string          `json:"session"`
	PubKey       string          `json:"pubKey"`
	SharedSecret string          `json:"sharedSecret"`
}

// Store owns the ProviderSecret collection. The in-memory cache and the
// persisted records are kept convergent: every mutation writes through to
// storage before updating the cache.
type Store struct {
	storage domain.Storage
	log     logrus.FieldLogger

	mu      sync.Mutex
	secrets map[string]domain.ProviderSecret
	order   []string
}

// New returns a session store backed by the given storage.
func New(storage domain.Storage, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{
		storage: storage,
		log:     log,
		secrets: make(map[string]domain.ProviderSecret),
	}
}

// LoadAll reads the index and every referenced secret into the cache. A
// missing or unparseable index yields an empty set; a single corrupt entry
// is skipped without aborting the rest.
func (s *Store) LoadAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.secrets = make(map[string]domain.ProviderSecret)
	s.order = nil

	index, err := s.readIndex(ctx)
	if err != nil {
		return err
	}
	for _, address := range index {
		raw, ok, err := s.storage.Get(ctx, keyPrefix+address)
		if err != nil {
			return errors.Wrap(err, "load wallet session")
		}
		if !ok {
			// Index entry without a record: treated as not connected.
			s.log.WithField("wallet", address).Warn("indexed wallet has no stored session, skipping")
			continue
		}
		secret, err := decodeSecret(raw)
		if err != nil {
			s.log.WithField("wallet", address).WithError(err).Warn("failed to parse stored session, skipping")
			continue
		}
		s.secrets[address] = secret
		s.order = append(s.order, address)
	}
	return nil
}

// Upsert persists secret under its address and repairs the index if the
// address is missing from it, then updates the cache.
func (s *Store) Upsert(ctx context.Context, secret domain.ProviderSecret) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(storedSecret{
		Provider:     secret.Provider,
		Wallet:       secret.Wallet,
		Session:      secret.Session,
		PubKey:       crypto.B58(secret.PubKey.Slice()),
		SharedSecret: crypto.B58(secret.SharedSecret.Slice()),
	})
	if err != nil {
		return errors.Wrap(err, "encode wallet session")
	}
	if err := s.storage.Set(ctx, keyPrefix+secret.Wallet, string(raw)); err != nil {
		return errors.Wrap(err, "persist wallet session")
	}

	index, err := s.readIndex(ctx)
	if err != nil {
		return err
	}
	if !contains(index, secret.Wallet) {
		index = append(index, secret.Wallet)
		if err := s.writeIndex(ctx, index); err != nil {
			return err
		}
	}

	if _, known := s.secrets[secret.Wallet]; !known {
		s.order = append(s.order, secret.Wallet)
	}
	s.secrets[secret.Wallet] = secret
	return nil
}

// Remove deletes the secret for address and rewrites the index without it,
// then updates the cache.
func (s *Store) Remove(ctx context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.readIndex(ctx)
	if err != nil {
		return err
	}
	remaining := index[:0]
	for _, a := range index {
		if a != address {
			remaining = append(remaining, a)
		}
	}
	if err := s.writeIndex(ctx, remaining); err != nil {
		return err
	}
	if err := s.storage.Remove(ctx, keyPrefix+address); err != nil {
		return errors.Wrap(err, "remove wallet session")
	}

	delete(s.secrets, address)
	for i, a := range s.order {
		if a == address {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Enumerate returns the cached secrets in index order.
func (s *Store) Enumerate() []domain.ProviderSecret {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ProviderSecret, 0, len(s.order))
	for _, address := range s.order {
		if secret, ok := s.secrets[address]; ok {
			out = append(out, secret)
		}
	}
	return out
}

// Lookup returns the cached secret for address.
func (s *Store) Lookup(address string) (domain.ProviderSecret, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	secret, ok := s.secrets[address]
	return secret, ok
}

// readIndex returns the persisted address list. Corruption is non-fatal and
// yields an empty list; the next successful Upsert rewrites the index.
func (s *Store) readIndex(ctx context.Context) ([]string, error) {
	raw, ok, err := s.storage.Get(ctx, indexKey)
	if err != nil {
		return nil, errors.Wrap(err, "load wallet index")
	}
	if !ok {
		return nil, nil
	}
	var index []string
	if err := json.Unmarshal([]byte(raw), &index); err != nil {
		s.log.WithError(err).Warn("failed to parse stored wallet index, ignoring")
		return nil, nil
	}
	return index, nil
}

func (s *Store) writeIndex(ctx context.Context, index []string) error {
	if index == nil {
		index = []string{}
	}
	raw, err := json.Marshal(index)
	if err != nil {
		return errors.Wrap(err, "encode wallet index")
	}
	return errors.Wrap(s.storage.Set(ctx, indexKey, string(raw)), "persist wallet index")
}

func decodeSecret(raw string) (domain.ProviderSecret, error) {
	var rec storedSecret
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return domain.ProviderSecret{}, err
	}
	pubKey, err := crypto.B58Key(rec.PubKey)
	if err != nil {
		return domain.ProviderSecret{}, errors.Wrap(err, "decode pubKey")
	}
	sharedSecret, err := crypto.B58Key(rec.SharedSecret)
	if err != nil {
		return domain.ProviderSecret{}, errors.Wrap(err, "decode sharedSecret")
	}
	return domain.ProviderSecret{
		Provider:     rec.Provider,
		Wallet:       rec.Wallet,
		Session:      rec.Session,
		PubKey:       pubKey,
		SharedSecret: sharedSecret,
	}, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Compile-time assertion that Store implements domain.SessionStore.
var _ domain.SessionStore = (*Store)(nil)
