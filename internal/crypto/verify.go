package crypto

import (
	gocrypto "crypto"
	"crypto/rsa"
	"fmt"
)

// CheckSignature verifies an RSA-PSS signature over a SHA-256 digest. The
// salt length is detected from the signature. Any padding, hash or length
// mismatch returns ErrVerificationFailed.
func (k *PublicKey) CheckSignature(digest, signature []byte) error {
	if k == nil || k.key == nil {
		return ErrVerificationFailed
	}

	opts := &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
		Hash:       gocrypto.SHA256,
	}
	if err := rsa.VerifyPSS(k.key, gocrypto.SHA256, digest, signature, opts); err != nil {
		return fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	return nil
}

// Verify reports whether signature is a valid RSA-PSS signature of digest.
// It never panics on malformed input.
func (k *PublicKey) Verify(digest, signature []byte) bool {
	return k.CheckSignature(digest, signature) == nil
}

// CheckSignature verifies against the key's public half.
func (k *PrivateKey) CheckSignature(digest, signature []byte) error {
	return k.public.CheckSignature(digest, signature)
}

// Verify reports whether signature is valid under the key's public half.
func (k *PrivateKey) Verify(digest, signature []byte) bool {
	return k.public.Verify(digest, signature)
}
