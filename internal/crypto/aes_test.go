package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"testing"
)

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestEncryptAES_DecryptAES_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty", []byte{}},
		{"short", []byte("wallet!")},
		{"one block minus one", make([]byte, 15)},
		{"exact block", make([]byte, 16)},
		{"json", []byte(`{"kty":"RSA","n":"AQAB"}`)},
		{"binary", []byte{0x00, 0xff, 0x7f, 0x80}},
		{"large", make([]byte, 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := make([]byte, AESKeySize)
			if _, err := rand.Read(key); err != nil {
				t.Fatal(err)
			}

			iv := make([]byte, IVSize)
			if _, err := rand.Read(iv); err != nil {
				t.Fatal(err)
			}

			ciphertext, err := EncryptAES(key, tt.plaintext, iv)
			if err != nil {
				t.Fatalf("EncryptAES() error = %v", err)
			}

			// Padding always adds between 1 and 16 bytes.
			expectedLen := IVSize + (len(tt.plaintext)/AESBlockSize+1)*AESBlockSize
			if len(ciphertext) != expectedLen {
				t.Errorf("ciphertext length = %d, want %d", len(ciphertext), expectedLen)
			}

			if !bytes.Equal(ciphertext[:IVSize], iv) {
				t.Error("ciphertext doesn't start with IV")
			}

			decrypted, err := DecryptAES(key, ciphertext)
			if err != nil {
				t.Fatalf("DecryptAES() error = %v", err)
			}

			if !bytes.Equal(decrypted, tt.plaintext) {
				t.Errorf("decrypted = %v, want %v", decrypted, tt.plaintext)
			}
		})
	}
}

func TestEncryptAES_KnownAnswer(t *testing.T) {
	key := mustHex(t, "5d75733bf88734953119e0539199f28cabe2ccdd0a1a3fa30f42b8c8964c0eb7")
	iv := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	want := mustHex(t, "000102030405060708090a0b0c0d0e0fdad6bc7297209599ac4062c0039ed4e1")

	got, err := EncryptAES(key, []byte("wallet!"), iv)
	if err != nil {
		t.Fatalf("EncryptAES() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("EncryptAES() = %x, want %x", got, want)
	}
}

func TestEncryptAES_InvalidKeySize(t *testing.T) {
	tests := []struct {
		name    string
		keySize int
	}{
		{"empty", 0},
		{"aes-128", 16},
		{"aes-192", 24},
		{"too long", 64},
	}

	iv := make([]byte, IVSize)
	plaintext := []byte("test")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := make([]byte, tt.keySize)
			_, err := EncryptAES(key, plaintext, iv)
			if !errors.Is(err, ErrInvalidKeySize) {
				t.Errorf("EncryptAES() error = %v, want %v", err, ErrInvalidKeySize)
			}
		})
	}
}

func TestEncryptAES_InvalidIVSize(t *testing.T) {
	key := make([]byte, AESKeySize)

	for _, size := range []int{0, 12, 32} {
		_, err := EncryptAES(key, []byte("test"), make([]byte, size))
		if !errors.Is(err, ErrInvalidIVSize) {
			t.Errorf("EncryptAES() with %d-byte IV error = %v, want %v", size, err, ErrInvalidIVSize)
		}
	}
}

func TestDecryptAES_InvalidKeySize(t *testing.T) {
	_, err := DecryptAES(make([]byte, 16), make([]byte, 32))
	if !errors.Is(err, ErrInvalidKeySize) {
		t.Errorf("DecryptAES() error = %v, want %v", err, ErrInvalidKeySize)
	}
}

func TestDecryptAES_Malformed(t *testing.T) {
	key := make([]byte, AESKeySize)

	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"shorter than iv", IVSize - 1},
		{"iv only", IVSize},
		{"partial block", IVSize + 7},
		{"block and a half", IVSize + 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecryptAES(key, make([]byte, tt.size))
			if !errors.Is(err, ErrDecryptionFailed) {
				t.Errorf("DecryptAES() error = %v, want %v", err, ErrDecryptionFailed)
			}
		})
	}
}

func TestPKCS7Unpad(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    []byte
		wantErr bool
	}{
		{"one byte pad", append(bytes.Repeat([]byte{'a'}, 15), 0x01), bytes.Repeat([]byte{'a'}, 15), false},
		{"full block pad", bytes.Repeat([]byte{0x10}, 16), []byte{}, false},
		{"zero pad byte", make([]byte, 16), nil, true},
		{"pad larger than block", bytes.Repeat([]byte{0x11}, 16), nil, true},
		{"inconsistent pad", append(bytes.Repeat([]byte{'a'}, 14), 0x01, 0x02), nil, true},
		{"not block aligned", []byte{0x01}, nil, true},
		{"empty", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pkcs7Unpad(tt.data)
			if tt.wantErr {
				if !errors.Is(err, ErrDecryptionFailed) {
					t.Errorf("pkcs7Unpad() error = %v, want %v", err, ErrDecryptionFailed)
				}
				return
			}
			if err != nil {
				t.Fatalf("pkcs7Unpad() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("pkcs7Unpad() = %x, want %x", got, tt.want)
			}
		})
	}
}

func BenchmarkEncryptAES(b *testing.B) {
	key := make([]byte, AESKeySize)
	iv := make([]byte, IVSize)
	plaintext := make([]byte, 4096)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = EncryptAES(key, plaintext, iv)
	}
}

func BenchmarkDecryptAES(b *testing.B) {
	key := make([]byte, AESKeySize)
	iv := make([]byte, IVSize)
	ciphertext, _ := EncryptAES(key, make([]byte, 4096), iv)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = DecryptAES(key, ciphertext)
	}
}
