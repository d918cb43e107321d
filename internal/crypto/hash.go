package crypto

import (
	sha256 "github.com/minio/sha256-simd"
)

// Hash returns the SHA-256 digest of data.
func Hash(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}
