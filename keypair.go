package keyvault

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/passbox/keyvault-go/internal/crypto"
)

// KeyPair holds an X25519 key pair used for sharing vault keys between
// users.
type KeyPair struct {
	// PublicKey is the raw X25519 public key. It is non-secret and is
	// published so other users can share vault keys with its owner.
	PublicKey []byte
	// PrivateKey is the raw X25519 private key. Persist it only wrapped
	// under the master key (see WrapPrivateKey).
	PrivateKey []byte
}

// GenerateKeyPair creates a new X25519 key pair from 32 cryptographically
// random bytes.
func GenerateKeyPair() (*KeyPair, error) {
	publicKey, privateKey, err := crypto.GenerateX25519()
	if err != nil {
		return nil, err
	}

	return &KeyPair{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}, nil
}

// KeyPairFromPrivateKey reconstructs a key pair from the private key alone
// by recomputing the public point. Use it after unwrapping a stored private
// key to recover the full pair.
func KeyPairFromPrivateKey(privateKey []byte) (*KeyPair, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, &InvalidInputError{Param: "privateKey", Reason: fmt.Sprintf("must be %d bytes, got %d", PrivateKeySize, len(privateKey))}
	}

	publicKey, err := crypto.X25519PublicKey(privateKey)
	if err != nil {
		return nil, err
	}

	owned := make([]byte, PrivateKeySize)
	copy(owned, privateKey)

	return &KeyPair{
		PublicKey:  publicKey,
		PrivateKey: owned,
	}, nil
}

// DeriveSharedKey performs X25519 Diffie-Hellman between myPrivate and
// theirPublic and stretches the result through HKDF-SHA-256 into a 256-bit
// symmetric key. Both sides derive the identical key:
//
//	DeriveSharedKey(privA, pubB) == DeriveSharedKey(privB, pubA)
//
// The raw ECDH output is never returned; it is stretched under a fixed
// context label before use so it is safe as a cipher key.
func DeriveSharedKey(myPrivate, theirPublic []byte) ([]byte, error) {
	if len(myPrivate) != PrivateKeySize {
		return nil, &InvalidInputError{Param: "privateKey", Reason: fmt.Sprintf("must be %d bytes, got %d", PrivateKeySize, len(myPrivate))}
	}
	if len(theirPublic) != PublicKeySize {
		return nil, &InvalidInputError{Param: "publicKey", Reason: fmt.Sprintf("must be %d bytes, got %d", PublicKeySize, len(theirPublic))}
	}

	key, err := crypto.DeriveSharedKey(myPrivate, theirPublic, crypto.ContextSharedKey)
	if err != nil {
		return nil, wrapCryptoError("derive shared key", err)
	}
	return key, nil
}

// PublicKeyFingerprint returns a short human-checkable identifier for a
// public key, in the form "SHA256:<hex>". Users compare fingerprints
// out-of-band before sharing a vault to defeat key substitution.
func PublicKeyFingerprint(publicKey []byte) (string, error) {
	if len(publicKey) != PublicKeySize {
		return "", &InvalidInputError{Param: "publicKey", Reason: fmt.Sprintf("must be %d bytes, got %d", PublicKeySize, len(publicKey))}
	}

	sum := sha256.Sum256(publicKey)
	return "SHA256:" + hex.EncodeToString(sum[:]), nil
}

// WrapPrivateKey encrypts a private key under the master key for storage.
// The stored blob is the only form in which a private key may leave the
// process.
func WrapPrivateKey(privateKey, masterKey []byte) (*EncryptedBlob, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, &InvalidInputError{Param: "privateKey", Reason: fmt.Sprintf("must be %d bytes, got %d", PrivateKeySize, len(privateKey))}
	}
	return Encrypt(privateKey, masterKey)
}

// UnwrapPrivateKey decrypts a private key wrapped with WrapPrivateKey.
// A wrong master key or a tampered blob returns an AuthenticationError.
func UnwrapPrivateKey(blob *EncryptedBlob, masterKey []byte) ([]byte, error) {
	privateKey, err := decrypt(blob, masterKey, "unwrap private key")
	if err != nil {
		return nil, err
	}
	if len(privateKey) != PrivateKeySize {
		crypto.Zeroize(privateKey)
		return nil, &InvalidInputError{Param: "blob", Reason: fmt.Sprintf("wrapped payload is %d bytes, want a %d-byte private key", len(privateKey), PrivateKeySize)}
	}
	return privateKey, nil
}
