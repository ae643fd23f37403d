package crypto

import (
	"crypto/rand"
	"encoding/json"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"

	"solwallet/internal/domain"
)

// NonceSize is the nonce length of the box construction.
const NonceSize = 24

// KeyPair is an X25519 key pair for the box construction.
type KeyPair struct {
	Public domain.Key32
	Secret domain.Key32
}

// GenerateKeyPair returns a fresh box key pair.
func GenerateKeyPair() (KeyPair, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{Public: domain.Key32(*pub), Secret: domain.Key32(*priv)}, nil
}

// PublicFromSecret recomputes the public key for a stored secret key.
func PublicFromSecret(secret domain.Key32) domain.Key32 {
	var priv, pub [32]byte
	priv = secret
	curve25519.ScalarBaseMult(&pub, &priv)
	return domain.Key32(pub)
}

// SharedSecret derives the precomputed box key for the local secret key and
// a remote public key. Deterministic and commutative across the two sides.
func SharedSecret(secret, peer domain.Key32) domain.Key32 {
	var shared, priv, pub [32]byte
	priv = secret
	pub = peer
	box.Precompute(&shared, &pub, &priv)
	return domain.Key32(shared)
}

// Seal serializes payload as JSON and encrypts it under the shared secret
// with a fresh random nonce. On failure it returns empty slices rather than
// an error; callers must treat empty output as failure.
func Seal(payload any, secret domain.Key32) (nonce, ciphertext []byte) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, nil
	}
	var n [NonceSize]byte
	if _, err := rand.Read(n[:]); err != nil {
		return nil, nil
	}
	var key [32]byte
	key = secret
	ct := box.SealAfterPrecomputation(nil, raw, &n, &key)
	return n[:], ct
}

// Open authenticates and decrypts a payload sealed under the shared secret.
// Tampered or mis-keyed input yields ok == false.
func Open(ciphertext, nonce []byte, secret domain.Key32) (plaintext []byte, ok bool) {
	if len(nonce) != NonceSize {
		return nil, false
	}
	var n [NonceSize]byte
	copy(n[:], nonce)
	var key [32]byte
	key = secret
	return box.OpenAfterPrecomputation(nil, ciphertext, &n, &key)
}
