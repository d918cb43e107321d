package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"
	"math/big"
)

// randReader is the random source used for key generation, PSS salts and
// vault IVs. It defaults to nil (which uses crypto/rand) but can be
// overridden for testing.
var randReader io.Reader

func randomSource(r io.Reader) io.Reader {
	if r != nil {
		return r
	}
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// KeyMaterial is an assembled RSA key. It is either a *PublicKey, which can
// only verify, or a *PrivateKey, which can sign and verify.
type KeyMaterial interface {
	// Public returns the verifying half of the key.
	Public() *PublicKey
	keyMaterial()
}

// PublicKey is an RSA public key used for RSA-PSS verification.
type PublicKey struct {
	key *rsa.PublicKey
}

// PrivateKey is an RSA private key used for RSA-PSS signing. It is immutable
// after construction and safe for concurrent use.
type PrivateKey struct {
	key    *rsa.PrivateKey
	public *PublicKey
}

func (*PublicKey) keyMaterial()  {}
func (*PrivateKey) keyMaterial() {}

// FromComponents assembles key material from a component set produced by
// ParsePublic or ParsePrivate.
func FromComponents(c Components) (KeyMaterial, error) {
	switch c := c.(type) {
	case *PrivateComponents:
		return NewPrivateKey(c)
	case *PublicComponents:
		return NewPublicKey(c)
	default:
		return nil, fmt.Errorf("%w: unsupported component set %T", ErrInvalidKeyComponents, c)
	}
}

// NewPublicKey builds a public key from (n, e).
func NewPublicKey(c *PublicComponents) (*PublicKey, error) {
	if c == nil || c.N == nil || c.E == nil {
		return nil, fmt.Errorf("%w: missing n or e", ErrInvalidKeyComponents)
	}
	if c.N.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrInvalidKeyComponents)
	}
	if !c.E.IsInt64() || c.E.Int64() < 2 || c.E.Int64() > 1<<31-1 {
		return nil, fmt.Errorf("%w: public exponent out of range", ErrInvalidKeyComponents)
	}

	return &PublicKey{key: &rsa.PublicKey{
		N: new(big.Int).Set(c.N),
		E: int(c.E.Int64()),
	}}, nil
}

// NewPrivateKey builds a private key from (n, e, d) and, when present, the
// prime factors [p, q] and the CRT coefficients dp, dq and qi. The CRT
// values are checked against d, p and q but are installed as given.
func NewPrivateKey(c *PrivateComponents) (*PrivateKey, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil components", ErrInvalidKeyComponents)
	}
	pub, err := NewPublicKey(&c.PublicComponents)
	if err != nil {
		return nil, err
	}
	if c.D == nil || c.D.Sign() <= 0 || c.D.Cmp(c.N) >= 0 {
		return nil, fmt.Errorf("%w: private exponent out of range", ErrInvalidKeyComponents)
	}
	if (c.P == nil) != (c.Q == nil) {
		return nil, fmt.Errorf("%w: p and q must be supplied together", ErrInvalidKeyComponents)
	}
	crt := 0
	for _, v := range []*big.Int{c.DP, c.DQ, c.QI} {
		if v != nil {
			crt++
		}
	}
	if crt != 0 && crt != 3 {
		return nil, fmt.Errorf("%w: dp, dq and qi must be supplied together", ErrInvalidKeyComponents)
	}
	if crt == 3 && !c.HasFactors() {
		return nil, fmt.Errorf("%w: CRT coefficients without p and q", ErrInvalidKeyComponents)
	}

	key := &rsa.PrivateKey{
		PublicKey: *pub.key,
		D:         new(big.Int).Set(c.D),
	}

	if c.HasFactors() {
		if err := checkFactors(c); err != nil {
			return nil, err
		}
		key.Primes = []*big.Int{new(big.Int).Set(c.P), new(big.Int).Set(c.Q)}
		if c.HasCRT() {
			key.Precomputed.Dp = new(big.Int).Set(c.DP)
			key.Precomputed.Dq = new(big.Int).Set(c.DQ)
			key.Precomputed.Qinv = new(big.Int).Set(c.QI)
		}
		if err := key.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKeyComponents, err)
		}
	} else if err := checkExponents(key); err != nil {
		return nil, err
	}

	key.Precompute()

	return &PrivateKey{key: key, public: pub}, nil
}

// checkFactors verifies n = p*q and, when present, the CRT coefficients.
func checkFactors(c *PrivateComponents) error {
	one := big.NewInt(1)
	if c.P.Cmp(one) <= 0 || c.Q.Cmp(one) <= 0 {
		return fmt.Errorf("%w: prime factors out of range", ErrInvalidKeyComponents)
	}
	if new(big.Int).Mul(c.P, c.Q).Cmp(c.N) != 0 {
		return fmt.Errorf("%w: n != p*q", ErrInvalidKeyComponents)
	}
	if !c.HasCRT() {
		return nil
	}

	pm1 := new(big.Int).Sub(c.P, one)
	qm1 := new(big.Int).Sub(c.Q, one)
	if new(big.Int).Mod(c.D, pm1).Cmp(c.DP) != 0 {
		return fmt.Errorf("%w: dp != d mod (p-1)", ErrInvalidKeyComponents)
	}
	if new(big.Int).Mod(c.D, qm1).Cmp(c.DQ) != 0 {
		return fmt.Errorf("%w: dq != d mod (q-1)", ErrInvalidKeyComponents)
	}
	qi := new(big.Int).Mul(c.QI, c.Q)
	if qi.Mod(qi, c.P).Cmp(one) != 0 {
		return fmt.Errorf("%w: qi*q != 1 mod p", ErrInvalidKeyComponents)
	}
	return nil
}

// checkExponents probes a factorless key: (2^e)^d must be 2 mod n.
func checkExponents(key *rsa.PrivateKey) error {
	two := big.NewInt(2)
	if key.N.Cmp(two) <= 0 {
		return fmt.Errorf("%w: modulus too small", ErrInvalidKeyComponents)
	}
	c := new(big.Int).Exp(two, big.NewInt(int64(key.E)), key.N)
	if c.Exp(c, key.D, key.N).Cmp(two) != 0 {
		return fmt.Errorf("%w: d is not the inverse of e", ErrInvalidKeyComponents)
	}
	return nil
}

// GenerateKey creates a new 4096-bit RSA key with public exponent 65537.
// A nil reader uses the package random source.
func GenerateKey(rand io.Reader) (*PrivateKey, error) {
	key, err := rsa.GenerateKey(randomSource(rand), KeyBits)
	if err != nil {
		return nil, err
	}
	key.Precompute()
	return &PrivateKey{
		key:    key,
		public: &PublicKey{key: &key.PublicKey},
	}, nil
}

// PublicKeyFromOwner rebuilds a public key from a base64url-encoded modulus,
// as carried in a transaction's owner field. The exponent is 65537.
func PublicKeyFromOwner(owner string) (*PublicKey, error) {
	raw, err := FromBase64URL(owner)
	if err != nil {
		return nil, fmt.Errorf("%w: owner: %v", ErrMalformedEncoding, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty owner", ErrInvalidKeyComponents)
	}
	return NewPublicKey(&PublicComponents{
		N: new(big.Int).SetBytes(raw),
		E: big.NewInt(PublicExponent),
	})
}

// Public returns the key itself.
func (k *PublicKey) Public() *PublicKey { return k }

// Components returns a copy of (n, e).
func (k *PublicKey) Components() *PublicComponents {
	return &PublicComponents{
		N: new(big.Int).Set(k.key.N),
		E: big.NewInt(int64(k.key.E)),
	}
}

// Size returns the modulus size in bytes, which is also the signature size.
func (k *PublicKey) Size() int { return k.key.Size() }

// Owner returns the base64url-encoded modulus.
func (k *PublicKey) Owner() string {
	return ToBase64URL(k.key.N.Bytes())
}

// Address returns the wallet address: base64url(SHA-256(modulus)).
func (k *PublicKey) Address() string {
	return ToBase64URL(Hash(k.key.N.Bytes()))
}

// Public returns the verifying half of the key.
func (k *PrivateKey) Public() *PublicKey { return k.public }

// Components returns a copy of the key's numeric fields. The CRT fields are
// nil when the key was assembled without prime factors.
func (k *PrivateKey) Components() *PrivateComponents {
	c := &PrivateComponents{
		PublicComponents: *k.public.Components(),
		D:                new(big.Int).Set(k.key.D),
	}
	if len(k.key.Primes) != 2 {
		return c
	}

	p, q := k.key.Primes[0], k.key.Primes[1]
	c.P = new(big.Int).Set(p)
	c.Q = new(big.Int).Set(q)

	pre := k.key.Precomputed
	if pre.Dp != nil && pre.Dq != nil && pre.Qinv != nil {
		c.DP = new(big.Int).Set(pre.Dp)
		c.DQ = new(big.Int).Set(pre.Dq)
		c.QI = new(big.Int).Set(pre.Qinv)
		return c
	}

	one := big.NewInt(1)
	c.DP = new(big.Int).Mod(k.key.D, new(big.Int).Sub(p, one))
	c.DQ = new(big.Int).Mod(k.key.D, new(big.Int).Sub(q, one))
	c.QI = new(big.Int).ModInverse(q, p)
	return c
}

// JWK returns the private key as a JWK document.
func (k *PrivateKey) JWK() JWK { return k.Components().JWK() }

// JWK returns the public key as a JWK document.
func (k *PublicKey) JWK() JWK { return k.Components().JWK() }

// Size returns the modulus size in bytes.
func (k *PrivateKey) Size() int { return k.public.Size() }

// Owner returns the base64url-encoded modulus.
func (k *PrivateKey) Owner() string { return k.public.Owner() }

// Address returns the wallet address derived from the modulus.
func (k *PrivateKey) Address() string { return k.public.Address() }
