package wallet

import (
	"context"
	"strconv"
	"time"

	"solwallet/internal/domain"
)

// Operation kinds used to key pending requests, so a callback can only
// resolve an operation of the kind that issued it.
const (
	kindConnect         = "connect"
	kindDisconnect      = "disconnect"
	kindSignMessage     = "signMessage"
	kindSignTransaction = "signTransaction"
)

// outcome is what a callback resolves a pending operation to. Exactly one of
// the payload fields is meaningful for a given kind.
type outcome struct {
	provider    domain.Provider
	address     string
	signature   string
	transaction []byte
	err         error
}

func pendingKey(kind string, requestID uint64) string {
	return kind + strconv.FormatUint(requestID, 10)
}

// mint registers a new pending request and returns its correlation id and
// result slot. If address is non-empty the id is mapped to it so the
// callback can find the right session.
func (s *Service) mint(kind, address string) (uint64, chan outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextRequestID
	s.nextRequestID++
	ch := make(chan outcome, 1)
	s.pending[pendingKey(kind, id)] = ch
	if address != "" {
		s.requestWallet[id] = address
	}
	return id, ch
}

// resolve delivers an outcome to the pending request and retires it along
// with its address mapping. A callback with no matching pending entry is
// dropped.
func (s *Service) resolve(kind string, requestID uint64, out outcome) {
	s.mu.Lock()
	ch, ok := s.pending[pendingKey(kind, requestID)]
	if ok {
		delete(s.pending, pendingKey(kind, requestID))
		delete(s.requestWallet, requestID)
	}
	s.mu.Unlock()

	if !ok {
		s.log.WithField("requestId", requestID).WithField("kind", kind).
			Warn("callback for unknown request, dropping")
		return
	}
	ch <- out
}

// retire removes a pending request without resolving it (dispatch failure,
// cancellation, timeout).
func (s *Service) retire(kind string, requestID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, pendingKey(kind, requestID))
	delete(s.requestWallet, requestID)
}

// takeRequestWallet consumes the address a request id was issued for.
func (s *Service) takeRequestWallet(requestID uint64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	address, ok := s.requestWallet[requestID]
	if ok {
		delete(s.requestWallet, requestID)
	}
	return address, ok
}

// await blocks until the pending request resolves, the context is done, or
// the configured timeout fires. With no timeout configured a request whose
// callback never arrives waits for the life of the process.
func (s *Service) await(ctx context.Context, kind string, requestID uint64, ch chan outcome) (outcome, error) {
	var timeout <-chan time.Time
	if s.cfg.Timeout > 0 {
		t := time.NewTimer(s.cfg.Timeout)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case out := <-ch:
		if out.err != nil {
			return outcome{}, out.err
		}
		return out, nil
	case <-ctx.Done():
		s.retire(kind, requestID)
		return outcome{}, ctx.Err()
	case <-timeout:
		s.retire(kind, requestID)
		return outcome{}, &domain.WalletError{
			Code:    domain.CodeNoResponse,
			Message: "no callback received before timeout",
		}
	}
}
