package identity

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"solwallet/internal/crypto"
	"solwallet/internal/domain"
)

// storageKey holds the base58-encoded secret key across restarts.
const storageKey = "solanaWalletEncryptionKey"

// Service owns the engine's encryption identity. Exactly one identity is
// active at a time; regenerating it invalidates all existing session shared
// secrets without deleting the sessions themselves.
type Service struct {
	storage domain.Storage
	log     logrus.FieldLogger

	mu  sync.Mutex
	key *crypto.KeyPair
}

// New returns an identity service backed by the given storage.
func New(storage domain.Storage, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{storage: storage, log: log}
}

// Ensure loads the persisted identity, generating and persisting a fresh one
// if nothing usable is stored. Idempotent; fails only if storage fails.
func (s *Service) Ensure(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != nil {
		return nil
	}

	stored, ok, err := s.storage.Get(ctx, storageKey)
	if err != nil {
		return errors.Wrap(err, "load encryption key")
	}
	if ok {
		secret, err := crypto.B58Key(stored)
		if err == nil {
			s.key = &crypto.KeyPair{Secret: secret, Public: crypto.PublicFromSecret(secret)}
			return nil
		}
		s.log.WithError(err).Warn("stored encryption key is malformed, regenerating")
	}
	return s.regenerateLocked(ctx)
}

// Regenerate replaces the identity with a fresh key pair and persists it.
func (s *Service) Regenerate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regenerateLocked(ctx)
}

func (s *Service) regenerateLocked(ctx context.Context) error {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		return errors.Wrap(err, "generate encryption key")
	}
	if err := s.storage.Set(ctx, storageKey, crypto.B58(kp.Secret.Slice())); err != nil {
		return errors.Wrap(err, "persist encryption key")
	}
	if s.key != nil {
		crypto.Wipe(s.key.Secret[:])
	}
	s.key = &kp
	s.log.WithField("public_key", crypto.B58(kp.Public.Slice())).Info("encryption key regenerated")
	return nil
}

// PublicKey returns the current encryption public key.
func (s *Service) PublicKey() (domain.Key32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return domain.Key32{}, false
	}
	return s.key.Public, true
}

// SharedSecret derives the session shared secret for a remote ephemeral
// public key. Pure in the loaded identity; commutative with the wallet side.
func (s *Service) SharedSecret(peer domain.Key32) (domain.Key32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return domain.Key32{}, false
	}
	return crypto.SharedSecret(s.key.Secret, peer), true
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
