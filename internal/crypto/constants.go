package crypto

const (
	// KeySize is the size of all symmetric keys in bytes (AES-256).
	KeySize = 32

	// NonceSize is the size of an AES-GCM nonce in bytes.
	NonceSize = 12

	// TagSize is the size of an AES-GCM authentication tag in bytes.
	TagSize = 16

	// SaltSize is the size of a key-derivation salt in bytes.
	SaltSize = 32

	// PublicKeySize is the size of an X25519 public key in bytes.
	PublicKeySize = 32

	// PrivateKeySize is the size of an X25519 private key in bytes.
	PrivateKeySize = 32
)

// HKDF context labels. Each use of a derived key gets its own fixed label so
// keys derived from the same shared secret for different purposes are
// cryptographically independent.
const (
	// ContextSharedKey labels general-purpose keys returned to callers by
	// the shared-key derivation.
	ContextSharedKey = "passbox:shared-key:v1"

	// ContextVaultKeyWrap labels keys that wrap a vault key for a specific
	// recipient.
	ContextVaultKeyWrap = "passbox:vault-key-wrap:v1"
)
