package crypto

import (
	"fmt"

	"github.com/cloudflare/circl/dh/x25519"
)

// GenerateX25519 generates a new X25519 key pair. The private key is 32
// cryptographically random bytes; the public key is the corresponding
// Curve25519 point. Both are returned as freshly allocated slices.
func GenerateX25519() (publicKey, privateKey []byte, err error) {
	privateKey, err = RandomBytes(PrivateKeySize)
	if err != nil {
		return nil, nil, err
	}

	var secret, public x25519.Key
	copy(secret[:], privateKey)
	x25519.KeyGen(&public, &secret)
	Zeroize(secret[:])

	publicKey = make([]byte, PublicKeySize)
	copy(publicKey, public[:])
	return publicKey, privateKey, nil
}

// X25519PublicKey computes the public key for an X25519 private key.
func X25519PublicKey(privateKey []byte) ([]byte, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidPrivateKeySize, len(privateKey), PrivateKeySize)
	}

	var secret, public x25519.Key
	copy(secret[:], privateKey)
	x25519.KeyGen(&public, &secret)
	Zeroize(secret[:])

	publicKey := make([]byte, PublicKeySize)
	copy(publicKey, public[:])
	return publicKey, nil
}

// DeriveSharedKey performs X25519 Diffie-Hellman between privateKey and
// publicKey, then stretches the raw shared secret through HKDF-SHA-256 under
// the given context label into a 256-bit key. The raw shared secret never
// leaves this function.
func DeriveSharedKey(privateKey, publicKey []byte, context string) ([]byte, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidPrivateKeySize, len(privateKey), PrivateKeySize)
	}
	if len(publicKey) != PublicKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidPublicKeySize, len(publicKey), PublicKeySize)
	}

	var shared, secret, public x25519.Key
	copy(secret[:], privateKey)
	copy(public[:], publicKey)
	ok := x25519.Shared(&shared, &secret, &public)
	Zeroize(secret[:])
	if !ok {
		return nil, ErrLowOrderPoint
	}

	key, err := DeriveKey(shared[:], nil, []byte(context), KeySize)
	Zeroize(shared[:])
	if err != nil {
		return nil, err
	}
	return key, nil
}
