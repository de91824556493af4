package keyvault

import (
	"encoding/json"
	"fmt"

	"github.com/passbox/keyvault-go/internal/crypto"
)

// AlgorithmAESGCM identifies AES-256-GCM, the only cipher this package
// produces. The algorithm field exists in the blob format so stored data
// remains decryptable if the suite ever changes.
const AlgorithmAESGCM = "aes-256-gcm"

// Key and blob field sizes in bytes.
const (
	// KeySize is the size of all symmetric keys: master, vault, shared,
	// and recovery keys are 256-bit AES keys.
	KeySize = crypto.KeySize

	// SaltSize is the size of a key-derivation salt.
	SaltSize = crypto.SaltSize

	// NonceSize is the size of an encrypted blob's IV.
	NonceSize = crypto.NonceSize

	// TagSize is the size of an encrypted blob's authentication tag.
	TagSize = crypto.TagSize

	// PublicKeySize is the size of an X25519 public key.
	PublicKeySize = crypto.PublicKeySize

	// PrivateKeySize is the size of an X25519 private key.
	PrivateKeySize = crypto.PrivateKeySize
)

// Base64Bytes handles JSON marshaling of binary blob fields. It encodes to
// standard base64 and decodes leniently, accepting standard and URL-safe
// alphabets with or without padding so blobs produced by other
// implementations still parse.
type Base64Bytes []byte

// UnmarshalJSON implements json.Unmarshaler for Base64Bytes.
func (b *Base64Bytes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = nil
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return err
	}
	if encoded == "" {
		*b = nil
		return nil
	}

	decoded, err := crypto.DecodeBase64(encoded)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// EncryptedBlob is the canonical wire form of a single encryption: the IV,
// ciphertext, and authentication tag as separate fields, plus the algorithm
// that produced them. Its JSON encoding uses standard base64 for the binary
// fields, so any implementation of the same format can decrypt it given only
// the key.
type EncryptedBlob struct {
	// IV is the 96-bit nonce, unique per encryption.
	IV Base64Bytes `json:"iv"`
	// Ciphertext is the encrypted payload. Empty plaintext produces an
	// empty ciphertext.
	Ciphertext Base64Bytes `json:"ciphertext"`
	// Tag is the 128-bit GCM authentication tag.
	Tag Base64Bytes `json:"tag"`
	// Algorithm identifies the cipher, always "aes-256-gcm".
	Algorithm string `json:"algorithm"`
}

// Validate checks the blob's structure without touching any key material.
// It returns an InvalidInputError describing the first problem found.
func (b *EncryptedBlob) Validate() error {
	if b == nil {
		return &InvalidInputError{Param: "blob", Reason: "must not be nil"}
	}
	if b.Algorithm != AlgorithmAESGCM {
		return &InvalidInputError{Param: "algorithm", Reason: fmt.Sprintf("unsupported algorithm %q", b.Algorithm)}
	}
	if len(b.IV) != NonceSize {
		return &InvalidInputError{Param: "iv", Reason: fmt.Sprintf("must be %d bytes, got %d", NonceSize, len(b.IV))}
	}
	if len(b.Tag) != TagSize {
		return &InvalidInputError{Param: "tag", Reason: fmt.Sprintf("must be %d bytes, got %d", TagSize, len(b.Tag))}
	}
	return nil
}

// ParseEncryptedBlob decodes and validates a JSON-encoded blob. Malformed
// JSON, bad base64, and structural problems all come back as
// InvalidInputError; parsing never touches key material.
func ParseEncryptedBlob(data []byte) (*EncryptedBlob, error) {
	var blob EncryptedBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, &InvalidInputError{Param: "blob", Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	if err := blob.Validate(); err != nil {
		return nil, err
	}
	return &blob, nil
}
