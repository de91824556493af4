package keyvault

import (
	"errors"
	"fmt"

	"github.com/passbox/keyvault-go/internal/crypto"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrAuthentication is returned when decryption fails verification.
	// A wrong key and a tampered blob are deliberately indistinguishable.
	ErrAuthentication = errors.New("message authentication failed")

	// ErrInvalidInput is returned when an argument is malformed: wrong
	// length, unknown algorithm, or out-of-range parameters.
	ErrInvalidInput = errors.New("invalid input")
)

// KeyVaultError is implemented by all errors returned by this package.
type KeyVaultError interface {
	error
	KeyVaultError() // marker method
}

// AuthenticationError indicates that an encrypted blob failed verification
// during Op. It carries no detail about why: distinguishing a wrong key from
// tampered ciphertext would leak information an attacker can use.
type AuthenticationError struct {
	Op string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s: message authentication failed", e.Op)
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

// KeyVaultError implements the KeyVaultError interface.
func (e *AuthenticationError) KeyVaultError() {}

// InvalidInputError indicates that an argument was malformed before any
// cryptographic work started.
type InvalidInputError struct {
	Param  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// Is implements errors.Is for sentinel error matching.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// KeyVaultError implements the KeyVaultError interface.
func (e *InvalidInputError) KeyVaultError() {}

// wrapCryptoError converts internal crypto errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapCryptoError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, crypto.ErrAuthenticationFailed) {
		return &AuthenticationError{Op: op}
	}

	if errors.Is(err, crypto.ErrLowOrderPoint) {
		return &InvalidInputError{Param: "publicKey", Reason: "low-order point"}
	}

	return err
}
