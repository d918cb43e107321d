package crypto

const (
	// KeyTypeRSA is the only JWK key type accepted by this package.
	KeyTypeRSA = "RSA"

	// KeyBits is the modulus size used by GenerateKey.
	KeyBits = 4096
	// PublicExponent is the RSA public exponent used for generated keys and
	// for owners reconstructed from a bare modulus.
	PublicExponent = 65537

	// DigestSize is the size of a SHA-256 digest in bytes. Signing expects
	// digests of exactly this size.
	DigestSize = 32
	// PSSSaltLength is the default RSA-PSS salt length in bytes.
	PSSSaltLength = 32

	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESBlockSize is the AES block size, which is also the CBC IV size.
	AESBlockSize = 16
	// IVSize is the size of the IV prepended to vault ciphertexts.
	IVSize = AESBlockSize

	// PBKDF2Iterations is the PBKDF2-HMAC-SHA256 iteration count.
	PBKDF2Iterations = 100000
)

// DefaultSalt is the fixed PBKDF2 salt used by existing wallet exports.
// It is not secret and not random; see Vault and WithSalt for per-wallet salts.
var DefaultSalt = []byte("salt")
