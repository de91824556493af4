package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// SealAESGCM encrypts plaintext with AES-256-GCM under key, drawing a fresh
// random 96-bit nonce. The ciphertext and the 128-bit authentication tag are
// returned as separate slices so callers can store them as distinct fields.
func SealAESGCM(key, plaintext []byte) (nonce, ciphertext, tag []byte, err error) {
	aead, err := newAESGCM(key)
	if err != nil {
		return nil, nil, nil, err
	}

	nonce, err = RandomBytes(NonceSize)
	if err != nil {
		return nil, nil, nil, err
	}

	sealed := aead.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - TagSize
	return nonce, sealed[:split], sealed[split:], nil
}

// OpenAESGCM decrypts and authenticates ciphertext produced by SealAESGCM.
// It returns ErrAuthenticationFailed on any verification failure, whether
// the key is wrong or the nonce, ciphertext, or tag were altered. The
// returned plaintext is a freshly allocated buffer owned by the caller.
func OpenAESGCM(key, nonce, ciphertext, tag []byte) ([]byte, error) {
	aead, err := newAESGCM(key)
	if err != nil {
		return nil, err
	}

	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), NonceSize)
	}
	if len(tag) != TagSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidTagSize, len(tag), TagSize)
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

func newAESGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
