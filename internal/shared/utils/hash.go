package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hasher provides SHA-256 hashing for lock keys and cache keys
type Hasher struct{}

// DefaultHasher returns the hasher used for lock file names
func DefaultHasher() *Hasher {
	return &Hasher{}
}

// Hash computes a hex-encoded hash of the input data
func (h *Hasher) Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashString computes a hash of a string
func (h *Hasher) HashString(s string) string {
	return h.Hash([]byte(s))
}

// ShortHash truncates a hash to n characters for file names and logs
func ShortHash(fullHash string, n int) string {
	if len(fullHash) < n {
		return fullHash
	}
	return fullHash[:n]
}
