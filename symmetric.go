package keyvault

import (
	"fmt"

	"github.com/passbox/keyvault-go/internal/crypto"
)

// Encrypt performs authenticated encryption of plaintext under a 256-bit
// key with AES-256-GCM. Every call draws a fresh random IV, so encrypting
// the same plaintext twice produces different blobs. Empty plaintext is
// valid and round-trips to empty.
func Encrypt(plaintext, key []byte) (*EncryptedBlob, error) {
	if len(key) != KeySize {
		return nil, &InvalidInputError{Param: "key", Reason: fmt.Sprintf("must be %d bytes, got %d", KeySize, len(key))}
	}

	nonce, ciphertext, tag, err := crypto.SealAESGCM(key, plaintext)
	if err != nil {
		return nil, err
	}

	return &EncryptedBlob{
		IV:         nonce,
		Ciphertext: ciphertext,
		Tag:        tag,
		Algorithm:  AlgorithmAESGCM,
	}, nil
}

// Decrypt verifies and decrypts a blob produced by Encrypt. The returned
// plaintext is a fresh buffer owned by the caller.
//
// Any verification failure, whether the key is wrong or the IV, ciphertext,
// or tag were altered, returns an AuthenticationError. The two causes are
// deliberately indistinguishable.
func Decrypt(blob *EncryptedBlob, key []byte) ([]byte, error) {
	return decrypt(blob, key, "decrypt")
}

// decrypt is the shared decryption path. The op names the caller's
// operation in AuthenticationError messages.
func decrypt(blob *EncryptedBlob, key []byte, op string) ([]byte, error) {
	if err := blob.Validate(); err != nil {
		return nil, err
	}
	if len(key) != KeySize {
		return nil, &InvalidInputError{Param: "key", Reason: fmt.Sprintf("must be %d bytes, got %d", KeySize, len(key))}
	}

	plaintext, err := crypto.OpenAESGCM(key, blob.IV, blob.Ciphertext, blob.Tag)
	if err != nil {
		return nil, wrapCryptoError(op, err)
	}
	return plaintext, nil
}

// EncryptString encrypts a UTF-8 string. The cipher logic is identical to
// Encrypt; only the text encoding step differs.
func EncryptString(plaintext string, key []byte) (*EncryptedBlob, error) {
	return Encrypt([]byte(plaintext), key)
}

// DecryptString decrypts a blob produced by EncryptString back to a string.
func DecryptString(blob *EncryptedBlob, key []byte) (string, error) {
	plaintext, err := Decrypt(blob, key)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
