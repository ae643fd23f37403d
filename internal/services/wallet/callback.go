package wallet

import (
	"context"
	"encoding/json"
	"strings"

	"solwallet/internal/crypto"
	"solwallet/internal/domain"
	"solwallet/internal/protocol/deeplink"
)

// HandleCallback routes an inbound redirect URL to the pending operation
// that issued it. The host must deliver each wallet redirect here exactly
// once; the delivery mechanism is outside the engine's concern.
func (s *Service) HandleCallback(ctx context.Context, rawURL string) error {
	if err := s.init(ctx); err != nil {
		return err
	}

	base := s.cfg.RedirectURL
	switch {
	case strings.HasPrefix(rawURL, base+deeplink.PathConnect):
		return s.handleConnectCallback(ctx, rawURL)
	case strings.HasPrefix(rawURL, base+deeplink.PathDisconnect):
		return s.handleDisconnectCallback(ctx, rawURL)
	case strings.HasPrefix(rawURL, base+deeplink.PathSignMessage):
		return s.handleSignMessageCallback(rawURL)
	case strings.HasPrefix(rawURL, base+deeplink.PathSignTransaction):
		return s.handleSignTransactionCallback(rawURL)
	}
	s.log.WithField("url", rawURL).Warn("callback url matches no known path")
	return nil
}

// isErrorCallback short-circuits processing when the wallet reported an
// explicit error. The provider's code and message pass through unmapped.
func (s *Service) isErrorCallback(kind string, params domain.CallbackParams) bool {
	code, ok := params.Get("errorCode")
	if !ok {
		return false
	}
	message, _ := params.Get("errorMessage")
	s.log.WithField("kind", kind).WithField("code", code).Error("wallet reported error")
	s.resolve(kind, params.RequestID, outcome{err: &domain.WalletError{Code: code, Message: message}})
	return true
}

func (s *Service) handleConnectCallback(ctx context.Context, rawURL string) error {
	params, err := deeplink.ParseCallback(rawURL)
	if err != nil {
		return err
	}
	if s.isErrorCallback(kindConnect, params) {
		return nil
	}

	info, ok := deeplink.Info(params.Provider)
	if !ok {
		s.failRequest(kindConnect, params.RequestID, "connect response for unknown provider")
		return nil
	}
	encodedKey, hasKey := params.Get(info.EncryptionKeyField)
	nonce, hasNonce := params.Get("nonce")
	data, hasData := params.Get("data")
	if !hasKey || !hasNonce || !hasData {
		s.failRequest(kindConnect, params.RequestID, "connect response missing encryption fields")
		return nil
	}

	walletKey, err := crypto.B58Key(encodedKey)
	if err != nil {
		s.failRequest(kindConnect, params.RequestID, "connect response carries malformed encryption key")
		return nil
	}
	sharedSecret, ok := s.identity.SharedSecret(walletKey)
	if !ok {
		s.failRequest(kindConnect, params.RequestID, "encryption key is not initialized")
		return nil
	}

	var connectData deeplink.ConnectData
	if !s.openInto(data, nonce, sharedSecret, &connectData) {
		s.failRequest(kindConnect, params.RequestID, "failed to decrypt connect response")
		return nil
	}

	secret := domain.ProviderSecret{
		Provider:     params.Provider,
		Wallet:       connectData.PublicKey,
		Session:      connectData.Session,
		PubKey:       walletKey,
		SharedSecret: sharedSecret,
	}
	if err := s.sessions.Upsert(ctx, secret); err != nil {
		s.log.WithError(err).Error("failed to persist wallet session")
		s.failRequest(kindConnect, params.RequestID, "failed to persist wallet session")
		return nil
	}

	s.resolve(kindConnect, params.RequestID, outcome{provider: params.Provider, address: connectData.PublicKey})
	return nil
}

func (s *Service) handleDisconnectCallback(ctx context.Context, rawURL string) error {
	params, err := deeplink.ParseCallback(rawURL)
	if err != nil {
		return err
	}
	if s.isErrorCallback(kindDisconnect, params) {
		return nil
	}

	address, ok := s.takeRequestWallet(params.RequestID)
	if !ok {
		s.resolve(kindDisconnect, params.RequestID, outcome{err: &domain.WalletError{
			Code:    domain.CodeUnknownWallet,
			Message: "unknown wallet for disconnect response",
		}})
		return nil
	}
	if _, known := s.sessions.Lookup(address); !known {
		s.resolve(kindDisconnect, params.RequestID, outcome{err: &domain.WalletError{
			Code:    domain.CodeUnknownWallet,
			Message: "unknown wallet for disconnect response",
		}})
		return nil
	}

	if err := s.sessions.Remove(ctx, address); err != nil {
		s.log.WithError(err).Error("failed to remove wallet session")
		s.failRequest(kindDisconnect, params.RequestID, "failed to remove wallet session")
		return nil
	}

	s.resolve(kindDisconnect, params.RequestID, outcome{provider: params.Provider, address: address})
	return nil
}

func (s *Service) handleSignMessageCallback(rawURL string) error {
	params, err := deeplink.ParseCallback(rawURL)
	if err != nil {
		return err
	}
	if s.isErrorCallback(kindSignMessage, params) {
		return nil
	}

	secret, ok := s.signSession(kindSignMessage, params)
	if !ok {
		return nil
	}
	nonce, _ := params.Get("nonce")
	data, _ := params.Get("data")

	var response deeplink.SignMessageResponseData
	if !s.openInto(data, nonce, secret.SharedSecret, &response) {
		s.failRequest(kindSignMessage, params.RequestID, "failed to decrypt signMessage response")
		return nil
	}

	s.resolve(kindSignMessage, params.RequestID, outcome{provider: params.Provider, signature: response.Signature})
	return nil
}

func (s *Service) handleSignTransactionCallback(rawURL string) error {
	params, err := deeplink.ParseCallback(rawURL)
	if err != nil {
		return err
	}
	if s.isErrorCallback(kindSignTransaction, params) {
		return nil
	}

	secret, ok := s.signSession(kindSignTransaction, params)
	if !ok {
		return nil
	}
	nonce, _ := params.Get("nonce")
	data, _ := params.Get("data")

	var response deeplink.SignTransactionResponseData
	if !s.openInto(data, nonce, secret.SharedSecret, &response) {
		s.failRequest(kindSignTransaction, params.RequestID, "failed to decrypt signTransaction response")
		return nil
	}
	signed, err := crypto.B58Decode(response.Transaction)
	if err != nil {
		s.failRequest(kindSignTransaction, params.RequestID, "signTransaction response carries malformed transaction")
		return nil
	}

	s.resolve(kindSignTransaction, params.RequestID, outcome{provider: params.Provider, transaction: signed})
	return nil
}

// signSession resolves the session a sign callback belongs to via the
// requestId→address map, failing the request when the wallet is unknown or
// the encryption fields are absent.
func (s *Service) signSession(kind string, params domain.CallbackParams) (domain.ProviderSecret, bool) {
	if _, hasNonce := params.Get("nonce"); !hasNonce {
		s.failRequest(kind, params.RequestID, "response missing nonce")
		return domain.ProviderSecret{}, false
	}
	if _, hasData := params.Get("data"); !hasData {
		s.failRequest(kind, params.RequestID, "response missing data")
		return domain.ProviderSecret{}, false
	}

	address, ok := s.takeRequestWallet(params.RequestID)
	if !ok {
		s.resolve(kind, params.RequestID, outcome{err: &domain.WalletError{
			Code:    domain.CodeUnknownWallet,
			Message: "unknown wallet for " + kind + " response",
		}})
		return domain.ProviderSecret{}, false
	}
	secret, known := s.sessions.Lookup(address)
	if !known {
		s.resolve(kind, params.RequestID, outcome{err: &domain.WalletError{
			Code:    domain.CodeUnknownWallet,
			Message: "unknown wallet for " + kind + " response",
		}})
		return domain.ProviderSecret{}, false
	}
	return secret, true
}

// openInto decrypts a base58 data/nonce pair and unmarshals the JSON body.
func (s *Service) openInto(data, nonce string, sharedSecret domain.Key32, v any) bool {
	ct, err := crypto.B58Decode(data)
	if err != nil {
		return false
	}
	n, err := crypto.B58Decode(nonce)
	if err != nil {
		return false
	}
	plaintext, ok := crypto.Open(ct, n, sharedSecret)
	if !ok {
		return false
	}
	return json.Unmarshal(plaintext, v) == nil
}

// failRequest resolves a pending request to the generic unknown_error code.
// The underlying cause is logged but not exposed to the caller.
func (s *Service) failRequest(kind string, requestID uint64, logMessage string) {
	s.log.WithField("kind", kind).WithField("requestId", requestID).Error(logMessage)
	s.resolve(kind, requestID, outcome{err: &domain.WalletError{
		Code:    domain.CodeUnknownError,
		Message: "unknown error for " + kind + " response",
	}})
}
