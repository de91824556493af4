package crypto

import "golang.org/x/crypto/argon2"

// DeriveArgon2id derives a 256-bit key from password and salt using Argon2id
// with the given cost parameters. The derivation is deterministic: the same
// inputs always yield the same key, and there is no notion of a wrong
// password at this layer.
//
// Callers must validate that iterations and parallelism are non-zero before
// calling; argon2 panics on zero values.
func DeriveArgon2id(password, salt []byte, iterations, memoryKB uint32, parallelism uint8) []byte {
	return argon2.IDKey(password, salt, iterations, memoryKB, parallelism, KeySize)
}
