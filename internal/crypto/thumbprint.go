package crypto

import (
	gocrypto "crypto"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// Thumbprint returns the RFC 7638 SHA-256 thumbprint of the public key,
// base64url-encoded.
func (k *PublicKey) Thumbprint() (string, error) {
	key, err := jwk.FromRaw(k.key)
	if err != nil {
		return "", fmt.Errorf("failed to build JWK: %w", err)
	}
	sum, err := key.Thumbprint(gocrypto.SHA256)
	if err != nil {
		return "", fmt.Errorf("failed to compute thumbprint: %w", err)
	}
	return ToBase64URL(sum), nil
}

// Thumbprint returns the thumbprint of the key's public half.
func (k *PrivateKey) Thumbprint() (string, error) {
	return k.public.Thumbprint()
}
