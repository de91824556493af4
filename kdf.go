package keyvault

import (
	"fmt"

	"github.com/passbox/keyvault-go/internal/crypto"
)

// Params holds the Argon2id cost parameters. They are non-secret and are
// persisted per user alongside the salt, so derivation stays reproducible
// for existing accounts while new registrations can adopt stronger costs.
type Params struct {
	// Iterations is the number of passes over memory.
	Iterations uint32 `json:"iterations"`
	// MemoryKB is the working memory in KiB.
	MemoryKB uint32 `json:"memory"`
	// Parallelism is the number of lanes.
	Parallelism uint8 `json:"parallelism"`
}

// DefaultParams returns the cost parameters for new accounts: 3 iterations
// over 64 MiB with 4 lanes. Interactive derivation with these costs takes on
// the order of a second on commodity hardware.
func DefaultParams() Params {
	return Params{Iterations: 3, MemoryKB: 64 * 1024, Parallelism: 4}
}

// Validate checks that the parameters are usable. Argon2id requires at
// least one iteration, one lane, and 8 KiB of memory per lane.
func (p Params) Validate() error {
	if p.Iterations < 1 {
		return &InvalidInputError{Param: "params", Reason: "iterations must be at least 1"}
	}
	if p.Parallelism < 1 {
		return &InvalidInputError{Param: "params", Reason: "parallelism must be at least 1"}
	}
	if p.MemoryKB < 8*uint32(p.Parallelism) {
		return &InvalidInputError{Param: "params", Reason: fmt.Sprintf("memory must be at least %d KiB for %d lanes", 8*uint32(p.Parallelism), p.Parallelism)}
	}
	return nil
}

// GenerateSalt returns a fresh random 32-byte key-derivation salt. The salt
// is non-secret and is stored per user next to their Params.
func GenerateSalt() ([]byte, error) {
	return crypto.RandomBytes(SaltSize)
}

// DeriveMasterKey derives the 256-bit master key from a password. The same
// password, salt, and params always produce the same key; there is no wrong
// password error here, only downstream decryption failure.
//
// Derivation takes on the order of a second with DefaultParams. Treat it
// as a blocking call and keep it off latency-sensitive paths.
//
// The password is accepted as bytes so the caller can zeroize it afterward.
func DeriveMasterKey(password, salt []byte, params Params) ([]byte, error) {
	if len(password) == 0 {
		return nil, &InvalidInputError{Param: "password", Reason: "must not be empty"}
	}
	if len(salt) != SaltSize {
		return nil, &InvalidInputError{Param: "salt", Reason: fmt.Sprintf("must be %d bytes, got %d", SaltSize, len(salt))}
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return crypto.DeriveArgon2id(password, salt, params.Iterations, params.MemoryKB, params.Parallelism), nil
}
