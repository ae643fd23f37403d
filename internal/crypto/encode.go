package crypto

import (
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"solwallet/internal/domain"
)

// B58 returns the base58 encoding of b.
func B58(b []byte) string { return base58.Encode(b) }

// B58Decode decodes a base58 string.
func B58Decode(s string) ([]byte, error) { return base58.Decode(s) }

// B58Key decodes a base58 string that must be exactly 32 bytes.
func B58Key(s string) (domain.Key32, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return domain.Key32{}, err
	}
	if len(b) != 32 {
		return domain.Key32{}, errors.Errorf("key is %d bytes, want 32", len(b))
	}
	var k domain.Key32
	copy(k[:], b)
	return k, nil
}
