package arweave

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nestdotland/arweave-go/internal/crypto"
)

// Wallet holds an RSA private key and signs on its behalf. A Wallet is
// immutable and safe for concurrent use.
type Wallet struct {
	key *crypto.PrivateKey
}

// PublicKey is the verifying half of a wallet, as carried in a transaction
// owner field.
type PublicKey struct {
	key *crypto.PublicKey
}

// GenerateWallet creates a wallet with a fresh 4096-bit key.
func GenerateWallet() (*Wallet, error) {
	key, err := crypto.GenerateKey(nil)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &Wallet{key: key}, nil
}

// LoadWallet parses a private JWK document. The CRT fields are optional.
func LoadWallet(jwkJSON []byte) (*Wallet, error) {
	doc, err := crypto.ParseJWK(jwkJSON)
	if err != nil {
		return nil, wrapKeyError(err)
	}
	c, err := crypto.ParsePrivate(doc)
	if err != nil {
		return nil, wrapKeyError(err)
	}
	key, err := crypto.NewPrivateKey(c)
	if err != nil {
		return nil, wrapKeyError(err)
	}
	return &Wallet{key: key}, nil
}

// LoadWalletFile reads and parses a JWK keyfile.
func LoadWalletFile(path string) (*Wallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wallet: %w", err)
	}
	return LoadWallet(data)
}

// LoadPublicKey parses a JWK document and keeps only its public half.
func LoadPublicKey(jwkJSON []byte) (*PublicKey, error) {
	doc, err := crypto.ParseJWK(jwkJSON)
	if err != nil {
		return nil, wrapKeyError(err)
	}
	c, err := crypto.ParsePublic(doc)
	if err != nil {
		return nil, wrapKeyError(err)
	}
	key, err := crypto.NewPublicKey(c)
	if err != nil {
		return nil, wrapKeyError(err)
	}
	return &PublicKey{key: key}, nil
}

// PublicKeyFromOwner rebuilds a public key from a transaction owner field.
func PublicKeyFromOwner(owner string) (*PublicKey, error) {
	key, err := crypto.PublicKeyFromOwner(owner)
	if err != nil {
		return nil, wrapKeyError(err)
	}
	return &PublicKey{key: key}, nil
}

// Address returns the wallet address.
func (w *Wallet) Address() string { return w.key.Address() }

// Owner returns the base64url-encoded modulus.
func (w *Wallet) Owner() string { return w.key.Owner() }

// PublicKey returns the verifying half of the wallet.
func (w *Wallet) PublicKey() *PublicKey { return &PublicKey{key: w.key.Public()} }

// JWK returns the private key as a JSON JWK document.
func (w *Wallet) JWK() ([]byte, error) {
	return json.Marshal(w.key.JWK())
}

// Thumbprint returns the RFC 7638 SHA-256 thumbprint of the public key.
func (w *Wallet) Thumbprint() (string, error) { return w.key.Thumbprint() }

// Sign signs a 32-byte SHA-256 digest with RSA-PSS.
func (w *Wallet) Sign(digest []byte) ([]byte, error) { return w.key.Sign(digest) }

// Verify reports whether signature is a valid signature of digest by this
// wallet.
func (w *Wallet) Verify(digest, signature []byte) bool { return w.key.Verify(digest, signature) }

// Address returns the address derived from the key.
func (k *PublicKey) Address() string { return k.key.Address() }

// Owner returns the base64url-encoded modulus.
func (k *PublicKey) Owner() string { return k.key.Owner() }

// JWK returns the public key as a JSON JWK document.
func (k *PublicKey) JWK() ([]byte, error) {
	return json.Marshal(k.key.JWK())
}

// Thumbprint returns the RFC 7638 SHA-256 thumbprint.
func (k *PublicKey) Thumbprint() (string, error) { return k.key.Thumbprint() }

// Verify reports whether signature is a valid RSA-PSS signature of digest.
func (k *PublicKey) Verify(digest, signature []byte) bool { return k.key.Verify(digest, signature) }

// Hash returns the SHA-256 digest of data, the input expected by Sign and
// Verify.
func Hash(data []byte) []byte { return crypto.Hash(data) }
