package keyvault

import "github.com/passbox/keyvault-go/internal/crypto"

// Zeroize overwrites a buffer with zeros. Call it on the master key, vault
// keys, recovery keys, and private keys as soon as they are no longer
// needed: logout, process exit, key rotation.
//
// Zeroizing is best effort. Go's runtime may have copied the bytes during
// garbage collection or stack growth; Zeroize clears the copy the caller
// holds.
func Zeroize(b []byte) {
	crypto.Zeroize(b)
}

// LockBuffer pins a buffer's pages into RAM so key material is never
// written to swap. It is a no-op on platforms without mlock support and may
// fail where the process's locked-memory quota is exhausted; treat failure
// as advisory.
func LockBuffer(b []byte) error {
	return crypto.LockMemory(b)
}

// UnlockBuffer releases pages pinned with LockBuffer. Call it after
// zeroizing the buffer.
func UnlockBuffer(b []byte) error {
	return crypto.UnlockMemory(b)
}
