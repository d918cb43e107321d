package crypto

import (
	gocrypto "crypto"
	"crypto/rsa"
	_ "crypto/sha256" // registers crypto.SHA256 for the PSS encoder
	"fmt"
	"io"
)

// Sign signs a pre-computed SHA-256 digest with RSA-PSS (SHA-256 for both
// the message hash and MGF1, 32-byte salt). The digest is not hashed again.
func (k *PrivateKey) Sign(digest []byte) ([]byte, error) {
	return k.SignPSS(nil, digest, PSSSaltLength)
}

// SignPSS is Sign with an explicit random source and salt length. A nil
// reader uses the package random source. Signatures are randomized: two
// signatures of the same digest differ but both verify.
func (k *PrivateKey) SignPSS(rand io.Reader, digest []byte, saltLength int) ([]byte, error) {
	if len(digest) != DigestSize {
		return nil, fmt.Errorf("%w: digest is %d bytes, want %d", ErrSigningFailed, len(digest), DigestSize)
	}
	if saltLength <= 0 {
		return nil, fmt.Errorf("%w: invalid salt length %d", ErrSigningFailed, saltLength)
	}

	opts := &rsa.PSSOptions{
		SaltLength: saltLength,
		Hash:       gocrypto.SHA256,
	}
	sig, err := rsa.SignPSS(randomSource(rand), k.key, gocrypto.SHA256, digest, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}

	return sig, nil
}
