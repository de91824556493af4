package crypto

import "errors"

var (
	// ErrAuthenticationFailed is returned when AEAD verification fails.
	// It deliberately does not distinguish a wrong key from tampered or
	// corrupted ciphertext.
	ErrAuthenticationFailed = errors.New("message authentication failed")

	// ErrInvalidKeySize is returned when a symmetric key has the wrong size.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when a nonce has the wrong size.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrInvalidTagSize is returned when an authentication tag has the
	// wrong size.
	ErrInvalidTagSize = errors.New("invalid tag size")

	// ErrInvalidPublicKeySize is returned when an X25519 public key has the
	// wrong size.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrInvalidPrivateKeySize is returned when an X25519 private key has
	// the wrong size.
	ErrInvalidPrivateKeySize = errors.New("invalid private key size")

	// ErrLowOrderPoint is returned when key agreement produces an all-zero
	// shared secret, which happens only for adversarial low-order public
	// keys.
	ErrLowOrderPoint = errors.New("public key produces an all-zero shared secret")
)
