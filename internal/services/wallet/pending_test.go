package wallet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"solwallet/internal/domain"
)

func TestResolve_ClearsRequestWalletMapping(t *testing.T) {
	s := New(Config{AppURL: "https://dapp.example"}, nil, nil, nil, nil, nil)

	id, ch := s.mint(kindDisconnect, "Addr1")
	s.resolve(kindDisconnect, id, outcome{err: &domain.WalletError{Code: "4001"}})
	require.Error(t, (<-ch).err)

	// The address mapping is retired with the request, even when the handler
	// never consumed it (error and decode-failure resolutions).
	_, ok := s.takeRequestWallet(id)
	require.False(t, ok)
}

func TestRetire_ClearsRequestWalletMapping(t *testing.T) {
	s := New(Config{AppURL: "https://dapp.example"}, nil, nil, nil, nil, nil)

	id, _ := s.mint(kindSignMessage, "Addr1")
	s.retire(kindSignMessage, id)

	_, ok := s.takeRequestWallet(id)
	require.False(t, ok)
}
