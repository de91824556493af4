// Package crypto provides the cryptographic primitives for the PassBox
// key-management core. It implements password-based key derivation,
// authenticated encryption, and elliptic-curve key agreement using modern,
// standardized algorithms.
//
// # Algorithm Suite
//
// The package uses the following cryptographic algorithms:
//
//   - Argon2id (RFC 9106): Memory-hard password hashing for deriving the
//     Master Key from a user password. Cost parameters are supplied per
//     call so they can be tuned per account.
//
//   - AES-256-GCM: Authenticated encryption (AEAD) for all key wrapping
//     and secret encryption. Provides confidentiality and integrity with a
//     96-bit nonce and 128-bit tag.
//
//   - X25519 (RFC 7748): Diffie-Hellman key agreement over Curve25519 for
//     sharing vault keys between users.
//
//   - HKDF-SHA-256 (RFC 5869): Key derivation for stretching X25519 shared
//     secrets into cipher keys, with explicit context labels for domain
//     separation.
//
// # Critical Security Notes
//
// AES-GCM nonces MUST be unique for each encryption with the same key.
// Nonce reuse completely breaks the security of AES-GCM, allowing attackers
// to recover the authentication key and forge messages. SealAESGCM draws a
// fresh random nonce on every call and never accepts one from the caller.
//
// The raw X25519 shared secret is never exposed outside this package and
// never used directly as a cipher key; DeriveSharedKey stretches it through
// HKDF with a caller-supplied context label before returning it.
//
// Authentication failures are reported as ErrAuthenticationFailed without
// distinguishing a wrong key from tampered ciphertext. Both present
// identically, and the distinction would hand an attacker an oracle.
//
// # Randomness
//
// All random material (nonces, salts, keys) comes from crypto/rand. The
// source can be overridden in tests via SetRandReaderForTesting; there is
// no way to override it in production code.
package crypto
