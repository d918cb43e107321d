package arweave

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nestdotland/arweave-go/internal/crypto"
)

// ExportVersion is the current export format version.
const ExportVersion = 1

// ExportSaltSize is the size of the random PBKDF2 salt of an export.
const ExportSaltSize = 16

// ExportedWallet is a password-encrypted wallet.
//
// Ciphertext is the raw vault output, IV || AES-256-CBC(JWK JSON), under a
// key derived with PBKDF2-HMAC-SHA256 from the password and Salt. An empty
// Salt means the fixed salt "salt" used by plain vault ciphertexts.
type ExportedWallet struct {
	// Version is the export format version. MUST be 1.
	Version int `json:"version"`
	// Address is the address of the encrypted wallet.
	Address string `json:"address"`
	// Salt is the base64url PBKDF2 salt.
	Salt string `json:"salt,omitempty"`
	// Ciphertext is the base64url vault output.
	Ciphertext string `json:"ciphertext"`
	// ExportedAt is the export timestamp. Informational only.
	ExportedAt time.Time `json:"exportedAt"`
}

// Validate checks the structure of the export without decrypting it.
func (e *ExportedWallet) Validate() error {
	var problems []string

	if e.Version != ExportVersion {
		problems = append(problems, fmt.Sprintf("unsupported version %d, expected %d", e.Version, ExportVersion))
	}

	if e.Address == "" {
		problems = append(problems, "address is required")
	} else if addr, err := crypto.FromBase64URL(e.Address); err != nil || len(addr) != crypto.DigestSize {
		problems = append(problems, "address must be a base64url SHA-256 digest")
	}

	if e.Salt != "" {
		if _, err := crypto.FromBase64URL(e.Salt); err != nil {
			problems = append(problems, "invalid salt encoding")
		}
	}

	if e.Ciphertext == "" {
		problems = append(problems, "ciphertext is required")
	} else if ct, err := crypto.FromBase64URL(e.Ciphertext); err != nil {
		problems = append(problems, "invalid ciphertext encoding")
	} else if len(ct) < crypto.IVSize+crypto.AESBlockSize || len(ct)%crypto.AESBlockSize != 0 {
		problems = append(problems, fmt.Sprintf("ciphertext size %d is not IV plus whole blocks", len(ct)))
	}

	if len(problems) > 0 {
		return &ValidationError{Errors: problems}
	}
	return nil
}

// Encrypt returns the JWK encrypted with the fixed-salt vault, as
// IV || ciphertext.
func (w *Wallet) Encrypt(password string) ([]byte, error) {
	jwk, err := w.JWK()
	if err != nil {
		return nil, fmt.Errorf("marshal jwk: %w", err) //coverage:ignore
	}
	defer clear(jwk)
	return crypto.Encrypt(password, jwk)
}

// DecryptWallet reverses Wallet.Encrypt.
func DecryptWallet(password string, data []byte) (*Wallet, error) {
	return decryptWallet(crypto.NewVault(), password, data)
}

func decryptWallet(v *crypto.Vault, password string, data []byte) (*Wallet, error) {
	plaintext, err := v.Decrypt(password, data)
	if err != nil {
		return nil, &DecryptionError{Stage: "aes", Err: err}
	}
	defer clear(plaintext)

	w, err := LoadWallet(plaintext)
	if err != nil {
		return nil, &DecryptionError{Stage: "jwk", Err: err}
	}
	return w, nil
}

// Export encrypts the wallet under password with a fresh random salt.
// WARNING: the result protects private key material only as well as the
// password does.
func (w *Wallet) Export(password string) (*ExportedWallet, error) {
	salt, err := crypto.RandomBytes(ExportSaltSize)
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	jwk, err := w.JWK()
	if err != nil {
		return nil, fmt.Errorf("marshal jwk: %w", err) //coverage:ignore
	}
	defer clear(jwk)

	ct, err := crypto.NewVault(crypto.WithSalt(salt)).Encrypt(password, jwk)
	if err != nil {
		return nil, fmt.Errorf("encrypt wallet: %w", err)
	}

	return &ExportedWallet{
		Version:    ExportVersion,
		Address:    w.Address(),
		Salt:       crypto.ToBase64URL(salt),
		Ciphertext: crypto.ToBase64URL(ct),
		ExportedAt: time.Now().UTC(),
	}, nil
}

// Import decrypts the export. A wrong password fails with an error
// matching ErrDecryptionFailed; a wallet whose address differs from the
// recorded one fails with ErrInvalidImportData.
func (e *ExportedWallet) Import(password string) (*Wallet, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	// Validate() already checked both encodings.
	salt, _ := crypto.FromBase64URL(e.Salt)
	ct, _ := crypto.FromBase64URL(e.Ciphertext)

	w, err := decryptWallet(crypto.NewVault(crypto.WithSalt(salt)), password, ct)
	if err != nil {
		return nil, err
	}
	if w.Address() != e.Address {
		return nil, fmt.Errorf("%w: address mismatch: export records %s, key is %s",
			ErrInvalidImportData, e.Address, w.Address())
	}
	return w, nil
}

// ImportWallet parses exported JSON and decrypts it.
func ImportWallet(data []byte, password string) (*Wallet, error) {
	var exported ExportedWallet
	if err := json.Unmarshal(data, &exported); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImportData, err)
	}
	return exported.Import(password)
}

// ExportToFile writes an export to a JSON file with permissions 0600.
func (w *Wallet) ExportToFile(filePath, password string) error {
	exported, err := w.Export(password)
	if err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err) //coverage:ignore
	}

	if err := os.WriteFile(filePath, jsonData, 0600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// ImportWalletFromFile reads an export written by ExportToFile.
func ImportWalletFromFile(filePath, password string) (*Wallet, error) {
	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ImportWallet(jsonData, password)
}
