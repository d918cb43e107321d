package crypto

import "errors"

var (
	// ErrInvalidKeyType is returned when a JWK's kty is not "RSA".
	ErrInvalidKeyType = errors.New("invalid key type")

	// ErrMalformedEncoding is returned when a JWK field is not valid
	// base64url or the document is not valid JSON.
	ErrMalformedEncoding = errors.New("malformed encoding")

	// ErrInvalidKeyComponents is returned when a required key field is
	// missing, or the CRT factors are inconsistent with the modulus.
	ErrInvalidKeyComponents = errors.New("invalid key components")

	// ErrSigningFailed is returned when the RSA backend rejects a signing
	// operation.
	ErrSigningFailed = errors.New("signing failed")

	// ErrVerificationFailed is returned by CheckSignature when a signature
	// does not validate.
	ErrVerificationFailed = errors.New("signature verification failed")

	// ErrDecryptionFailed is returned when vault decryption fails because of
	// bad padding or truncated ciphertext.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidIVSize is returned when the IV size is invalid.
	ErrInvalidIVSize = errors.New("invalid IV size")
)
