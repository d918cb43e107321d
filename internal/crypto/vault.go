package crypto

import (
	"fmt"
	"io"
)

// Vault performs password-based AES-256-CBC encryption. The key is derived
// with PBKDF2 at every call and never stored; the output layout is
// IV (16 bytes) || ciphertext with no header.
type Vault struct {
	salt []byte
	rand io.Reader
}

// VaultOption configures a Vault.
type VaultOption func(*Vault)

// WithSalt replaces the fixed DefaultSalt. The salt is not part of the
// ciphertext; callers must store it to decrypt later. An empty salt keeps
// the default.
func WithSalt(salt []byte) VaultOption {
	return func(v *Vault) {
		if len(salt) > 0 {
			v.salt = append([]byte(nil), salt...)
		}
	}
}

// WithRandReader sets the source of IVs. Nil uses the package random source.
func WithRandReader(r io.Reader) VaultOption {
	return func(v *Vault) {
		v.rand = r
	}
}

// NewVault creates a vault. Without options it is compatible with existing
// wallet exports (fixed salt "salt", OS entropy for IVs).
func NewVault(opts ...VaultOption) *Vault {
	v := &Vault{salt: DefaultSalt}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// DeriveKey derives the 32-byte AES key for password.
func (v *Vault) DeriveKey(password string) []byte {
	return deriveKey([]byte(password), v.salt)
}

// Encrypt encrypts plaintext under a key derived from password, with a
// fresh random IV prepended to the output.
func (v *Vault) Encrypt(password string, plaintext []byte) ([]byte, error) {
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(randomSource(v.rand), iv); err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	key := v.DeriveKey(password)
	defer clear(key)

	return EncryptAES(key, plaintext, iv)
}

// Decrypt reverses Encrypt. It fails with ErrDecryptionFailed on input
// shorter than the IV, a partial block, or invalid padding, which is also
// how a wrong password surfaces.
func (v *Vault) Decrypt(password string, data []byte) ([]byte, error) {
	if len(data) < IVSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryptionFailed)
	}

	key := v.DeriveKey(password)
	defer clear(key)

	return DecryptAES(key, data)
}

var defaultVault = NewVault()

// Encrypt encrypts plaintext with the default vault.
func Encrypt(password string, plaintext []byte) ([]byte, error) {
	return defaultVault.Encrypt(password, plaintext)
}

// Decrypt decrypts data with the default vault.
func Decrypt(password string, data []byte) ([]byte, error) {
	return defaultVault.Decrypt(password, data)
}
