// Package crypto provides the cryptographic core of the Arweave client:
// RSA key assembly from JSON Web Keys, RSA-PSS signing and verification over
// transaction digests, and password-based encryption for wallet export.
//
// # Algorithm Suite
//
//   - RSA-PSS with SHA-256 as message and MGF1 hash, 32-byte salt. Signing
//     consumes a pre-computed SHA-256 digest; callers hash first.
//
//   - AES-256-CBC with PKCS#7 padding. Output is IV (16 bytes) || ciphertext.
//
//   - PBKDF2-HMAC-SHA256, 100000 iterations, 32-byte key. The default salt is
//     the fixed string "salt" for compatibility with existing exports; use
//     [WithSalt] to layer per-wallet salts on top.
//
//   - SHA-384 deep hashing for transaction signature data.
//
// # Key Material
//
// [ParsePrivate] and [ParsePublic] turn a [JWK] into plain component bags
// with no dependency on the signing backend. [FromComponents] assembles them
// into either a [*PrivateKey] (sign and verify) or a [*PublicKey] (verify
// only). The CRT fields p, q, dp, dq and qi are optional as a group; when
// present they must be consistent with n, and when absent the key is built
// from (n, e, d) alone.
//
// # Errors
//
// Malformed external input never panics. Failures are reported with the
// sentinel errors in this package and can be checked with errors.Is.
// Signature verification failure is an expected outcome: [PublicKey.Verify]
// returns false, and [PublicKey.CheckSignature] returns
// [ErrVerificationFailed].
//
// # Randomness
//
// Key generation, PSS salts and vault IVs read from crypto/rand unless a
// reader is supplied. [NewDeterministicReader] yields reproducible bytes for
// test vectors.
package crypto
