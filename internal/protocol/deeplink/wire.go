package deeplink

// Encrypted payload shapes exchanged with the wallet. Field names follow the
// provider protocol; byte values are base58 strings since they travel inside
// URLs.

// ConnectData is the decrypted body of a connect callback.
type ConnectData struct {
	PublicKey string `json:"public_key"`
	Session   string `json:"session"`
}

// DisconnectRequestData is the plaintext body of a disconnect request.
type DisconnectRequestData struct {
	Session string `json:"session"`
}

// SignMessageRequestData is the plaintext body of a signMessage request.
type SignMessageRequestData struct {
	Message string `json:"message"`
	Session string `json:"session"`
	Display string `json:"display"`
}

// SignMessageResponseData is the decrypted body of a signMessage callback.
type SignMessageResponseData struct {
	Signature string `json:"signature"`
}

// SignTransactionRequestData is the plaintext body of a signTransaction
// request. Transaction is the caller's serialized transaction, base58.
type SignTransactionRequestData struct {
	Transaction string `json:"transaction"`
	Session     string `json:"session"`
}

// SignTransactionResponseData is the decrypted body of a signTransaction
// callback carrying the wallet-signed serialized transaction.
type SignTransactionResponseData struct {
	Transaction string `json:"transaction"`
}
