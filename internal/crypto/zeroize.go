package crypto

// Zeroize overwrites a byte slice in memory with zeros. Call it on key
// material as soon as the key is no longer needed.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
