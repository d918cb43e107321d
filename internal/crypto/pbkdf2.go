package crypto

import (
	sha256 "github.com/minio/sha256-simd"
	"golang.org/x/crypto/pbkdf2"
)

// DeriveKey derives a 32-byte AES key from a password with
// PBKDF2-HMAC-SHA256, 100000 iterations and the fixed DefaultSalt.
func DeriveKey(password string) []byte {
	return deriveKey([]byte(password), DefaultSalt)
}

func deriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, PBKDF2Iterations, AESKeySize, sha256.New)
}
