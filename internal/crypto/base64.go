package crypto

import (
	"encoding/base64"
)

// ToBase64 encodes bytes to standard base64 with padding. This is the
// canonical wire encoding for all binary fields.
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// FromBase64 decodes standard base64 (with padding) to bytes.
func FromBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// DecodeBase64 decodes base64 to bytes, accepting variant encodings.
// Decoding is lenient so blobs produced by other implementations still
// parse: standard and URL-safe alphabets, with or without padding.
func DecodeBase64(s string) ([]byte, error) {
	// Try standard base64 with padding first
	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	// Try standard base64 without padding
	data, err = base64.RawStdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	// Try URL-safe without padding
	data, err = base64.RawURLEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	// Try URL-safe with padding
	return base64.URLEncoding.DecodeString(s)
}
