//go:build linux || darwin

package crypto

import "golang.org/x/sys/unix"

// LockMemory pins a buffer's pages into RAM so key material is never
// written to swap. Best effort: the kernel may refuse when the process
// is over its RLIMIT_MEMLOCK quota.
func LockMemory(b []byte) error { return unix.Mlock(b) }

// UnlockMemory releases pages previously pinned with LockMemory.
func UnlockMemory(b []byte) error { return unix.Munlock(b) }
