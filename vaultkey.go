package keyvault

import (
	"fmt"

	"github.com/passbox/keyvault-go/internal/crypto"
)

// CreateVaultKey generates a fresh random 256-bit vault key and wraps it
// under the caller's master key. The plaintext vault key is returned for
// immediate use; the wrapped copy is what gets persisted. Zeroize the
// plaintext key when the session ends.
func CreateVaultKey(masterKey []byte) (vaultKey []byte, encrypted *EncryptedBlob, err error) {
	if len(masterKey) != KeySize {
		return nil, nil, &InvalidInputError{Param: "masterKey", Reason: fmt.Sprintf("must be %d bytes, got %d", KeySize, len(masterKey))}
	}

	vaultKey, err = crypto.RandomBytes(KeySize)
	if err != nil {
		return nil, nil, err
	}

	encrypted, err = Encrypt(vaultKey, masterKey)
	if err != nil {
		crypto.Zeroize(vaultKey)
		return nil, nil, err
	}
	return vaultKey, encrypted, nil
}

// DecryptVaultKey unwraps a vault key wrapped by CreateVaultKey. A wrong
// master key or a tampered blob returns an AuthenticationError.
func DecryptVaultKey(encrypted *EncryptedBlob, masterKey []byte) ([]byte, error) {
	vaultKey, err := decrypt(encrypted, masterKey, "decrypt vault key")
	if err != nil {
		return nil, err
	}
	if len(vaultKey) != KeySize {
		crypto.Zeroize(vaultKey)
		return nil, &InvalidInputError{Param: "blob", Reason: fmt.Sprintf("wrapped payload is %d bytes, want a %d-byte vault key", len(vaultKey), KeySize)}
	}
	return vaultKey, nil
}

// EncryptSecret encrypts a secret value under a vault key. It is the
// Symmetric module scoped to "value under vault key": identical cipher
// logic, string-typed plaintext.
func EncryptSecret(value string, vaultKey []byte) (*EncryptedBlob, error) {
	if len(vaultKey) != KeySize {
		return nil, &InvalidInputError{Param: "vaultKey", Reason: fmt.Sprintf("must be %d bytes, got %d", KeySize, len(vaultKey))}
	}
	return EncryptString(value, vaultKey)
}

// DecryptSecret decrypts a secret value encrypted with EncryptSecret.
func DecryptSecret(blob *EncryptedBlob, vaultKey []byte) (string, error) {
	value, err := decrypt(blob, vaultKey, "decrypt secret")
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// WrapVaultKeyForSharing wraps a vault key for one specific recipient. The
// wrap key is derived by X25519 between the sender's private key and the
// recipient's public key, stretched under a wrap-specific context label, so
// the resulting blob is readable only by those two parties.
//
// Each recipient gets an independently wrapped copy of the same vault key.
// Revoking a member means deleting their copy; it does not rotate the
// underlying vault key. A former member who already fetched their copy can
// still decrypt secrets under that key until the vault is explicitly
// re-keyed (new vault key, re-wrapped for remaining members, secrets
// re-encrypted with ReEncryptSecret).
func WrapVaultKeyForSharing(vaultKey, myPrivate, theirPublic []byte) (*EncryptedBlob, error) {
	if len(vaultKey) != KeySize {
		return nil, &InvalidInputError{Param: "vaultKey", Reason: fmt.Sprintf("must be %d bytes, got %d", KeySize, len(vaultKey))}
	}

	wrapKey, err := deriveWrapKey(myPrivate, theirPublic)
	if err != nil {
		return nil, err
	}
	defer crypto.Zeroize(wrapKey)

	return Encrypt(vaultKey, wrapKey)
}

// UnwrapSharedVaultKey unwraps a vault key shared via WrapVaultKeyForSharing,
// using the recipient's private key and the sender's public key. ECDH
// symmetry guarantees both sides derive the same wrap key.
func UnwrapSharedVaultKey(blob *EncryptedBlob, myPrivate, senderPublic []byte) ([]byte, error) {
	wrapKey, err := deriveWrapKey(myPrivate, senderPublic)
	if err != nil {
		return nil, err
	}
	defer crypto.Zeroize(wrapKey)

	vaultKey, err := decrypt(blob, wrapKey, "unwrap shared vault key")
	if err != nil {
		return nil, err
	}
	if len(vaultKey) != KeySize {
		crypto.Zeroize(vaultKey)
		return nil, &InvalidInputError{Param: "blob", Reason: fmt.Sprintf("wrapped payload is %d bytes, want a %d-byte vault key", len(vaultKey), KeySize)}
	}
	return vaultKey, nil
}

// ReEncryptSecret decrypts a secret under the old vault key and re-encrypts
// it under the new one, for use during an explicit vault re-key. The
// intermediate plaintext is zeroized before returning.
func ReEncryptSecret(blob *EncryptedBlob, oldVaultKey, newVaultKey []byte) (*EncryptedBlob, error) {
	if len(newVaultKey) != KeySize {
		return nil, &InvalidInputError{Param: "newVaultKey", Reason: fmt.Sprintf("must be %d bytes, got %d", KeySize, len(newVaultKey))}
	}

	value, err := decrypt(blob, oldVaultKey, "re-encrypt secret")
	if err != nil {
		return nil, err
	}
	defer crypto.Zeroize(value)

	return Encrypt(value, newVaultKey)
}

// deriveWrapKey derives the member-specific key-wrap key from an X25519
// exchange. It uses a context label distinct from DeriveSharedKey's so wrap
// keys and general-purpose shared keys are independent even for the same
// pair of users.
func deriveWrapKey(privateKey, publicKey []byte) ([]byte, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, &InvalidInputError{Param: "privateKey", Reason: fmt.Sprintf("must be %d bytes, got %d", PrivateKeySize, len(privateKey))}
	}
	if len(publicKey) != PublicKeySize {
		return nil, &InvalidInputError{Param: "publicKey", Reason: fmt.Sprintf("must be %d bytes, got %d", PublicKeySize, len(publicKey))}
	}

	wrapKey, err := crypto.DeriveSharedKey(privateKey, publicKey, crypto.ContextVaultKeyWrap)
	if err != nil {
		return nil, wrapCryptoError("derive wrap key", err)
	}
	return wrapKey, nil
}
