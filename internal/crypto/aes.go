package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"fmt"
)

// EncryptAES encrypts plaintext with AES-256-CBC and PKCS#7 padding.
// Returns: iv (16 bytes) || ciphertext
func EncryptAES(key, plaintext, iv []byte) ([]byte, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AESKeySize)
	}

	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidIVSize, len(iv), IVSize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := pkcs7Pad(plaintext)
	out := make([]byte, IVSize+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[IVSize:], padded)
	clear(padded)

	return out, nil
}

// DecryptAES decrypts data produced by EncryptAES.
// The input format is: iv (16 bytes) || ciphertext
func DecryptAES(key, data []byte) ([]byte, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AESKeySize)
	}

	if len(data) < IVSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryptionFailed)
	}

	iv := data[:IVSize]
	body := data[IVSize:]
	if len(body) == 0 || len(body)%AESBlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not a whole number of blocks", ErrDecryptionFailed)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	plaintext := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, body)

	unpadded, err := pkcs7Unpad(plaintext)
	if err != nil {
		clear(plaintext)
		return nil, err
	}

	return unpadded, nil
}

func pkcs7Pad(data []byte) []byte {
	pad := AESBlockSize - len(data)%AESBlockSize
	out := make([]byte, len(data)+pad)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(pad)
	}
	return out
}

// pkcs7Unpad checks the padding in constant time with respect to its value.
func pkcs7Unpad(data []byte) ([]byte, error) {
	n := len(data)
	if n == 0 || n%AESBlockSize != 0 {
		return nil, ErrDecryptionFailed
	}

	pad := int(data[n-1])
	good := subtle.ConstantTimeLessOrEq(1, pad) & subtle.ConstantTimeLessOrEq(pad, AESBlockSize)
	for i := 1; i <= AESBlockSize; i++ {
		inPad := subtle.ConstantTimeLessOrEq(i, pad)
		match := subtle.ConstantTimeByteEq(data[n-i], byte(pad))
		good &= subtle.ConstantTimeSelect(inPad, match, 1)
	}
	if good != 1 {
		return nil, fmt.Errorf("%w: invalid padding", ErrDecryptionFailed)
	}

	return data[:n-pad], nil
}
