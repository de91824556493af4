package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// randReader is the random source used for all key, salt, and nonce
// generation. It defaults to nil (which uses crypto/rand) but can be
// overridden for testing.
var randReader io.Reader

// RandomBytes returns n cryptographically secure random bytes.
func RandomBytes(n int) ([]byte, error) {
	r := randReader
	if r == nil {
		r = rand.Reader
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return b, nil
}
