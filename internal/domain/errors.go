package domain

import (
	"errors"
	"fmt"
)

// Error codes carried by WalletError. Provider-reported codes are passed
// through verbatim and are not limited to this list.
const (
	CodeUnknownError  = "unknown_error"
	CodeUnknownWallet = "unknown_wallet"
	CodeNoResponse    = "no_response"
)

// ErrNotConnected is returned synchronously when an operation targets an
// address with no stored session, before any URL is opened.
var ErrNotConnected = errors.New("wallet not connected")

// ErrUnknownProvider is returned for providers outside the configured set.
var ErrUnknownProvider = errors.New("unknown wallet provider")

// WalletError is a protocol-level failure: either an error the wallet
// reported in its callback, or a generic code minted by the engine when a
// callback could not be processed.
type WalletError struct {
	Code    string
	Message string
}

func (e *WalletError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("wallet error %s", e.Code)
	}
	return fmt.Sprintf("wallet error %s: %s", e.Code, e.Message)
}

// IsWalletCode reports whether err is a WalletError with the given code.
func IsWalletCode(err error, code string) bool {
	var we *WalletError
	return errors.As(err, &we) && we.Code == code
}
