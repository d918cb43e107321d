package crypto

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// JWK is an RSA JSON Web Key document. Numeric fields are base64url-encoded
// (no padding) big-endian unsigned integers.
type JWK struct {
	KeyType string `json:"kty"`
	N       string `json:"n"`
	E       string `json:"e"`
	D       string `json:"d,omitempty"`
	P       string `json:"p,omitempty"`
	Q       string `json:"q,omitempty"`
	DP      string `json:"dp,omitempty"`
	DQ      string `json:"dq,omitempty"`
	QI      string `json:"qi,omitempty"`
}

// Components is implemented by *PublicComponents and *PrivateComponents.
type Components interface {
	components()
}

// PublicComponents holds the numeric fields of an RSA public key.
type PublicComponents struct {
	N *big.Int
	E *big.Int
}

// PrivateComponents holds the numeric fields of an RSA private key. The CRT
// fields are nil when absent from the source document.
type PrivateComponents struct {
	PublicComponents
	D  *big.Int
	P  *big.Int
	Q  *big.Int
	DP *big.Int
	DQ *big.Int
	QI *big.Int
}

func (*PublicComponents) components() {}

// HasFactors reports whether both prime factors are present.
func (c *PrivateComponents) HasFactors() bool {
	return c.P != nil && c.Q != nil
}

// HasCRT reports whether all three CRT coefficients are present.
func (c *PrivateComponents) HasCRT() bool {
	return c.DP != nil && c.DQ != nil && c.QI != nil
}

// ParseJWK decodes a JSON JWK document.
func ParseJWK(data []byte) (JWK, error) {
	var doc JWK
	if err := json.Unmarshal(data, &doc); err != nil {
		return JWK{}, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	return doc, nil
}

// ParsePublic extracts the public components from a JWK. Private fields, if
// present, are ignored.
func ParsePublic(doc JWK) (*PublicComponents, error) {
	if doc.KeyType != KeyTypeRSA {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKeyType, doc.KeyType)
	}

	n, err := decodeRequired("n", doc.N)
	if err != nil {
		return nil, err
	}
	e, err := decodeRequired("e", doc.E)
	if err != nil {
		return nil, err
	}

	return &PublicComponents{N: n, E: e}, nil
}

// ParsePrivate extracts the private components from a JWK. The CRT fields
// p, q, dp, dq and qi are optional.
func ParsePrivate(doc JWK) (*PrivateComponents, error) {
	pub, err := ParsePublic(doc)
	if err != nil {
		return nil, err
	}

	d, err := decodeRequired("d", doc.D)
	if err != nil {
		return nil, err
	}

	c := &PrivateComponents{PublicComponents: *pub, D: d}

	optional := []struct {
		name  string
		value string
		dst   **big.Int
	}{
		{"p", doc.P, &c.P},
		{"q", doc.Q, &c.Q},
		{"dp", doc.DP, &c.DP},
		{"dq", doc.DQ, &c.DQ},
		{"qi", doc.QI, &c.QI},
	}
	for _, f := range optional {
		if f.value == "" {
			continue
		}
		if *f.dst, err = decodeRequired(f.name, f.value); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// JWK encodes the components as a public JWK document.
func (c *PublicComponents) JWK() JWK {
	return JWK{
		KeyType: KeyTypeRSA,
		N:       encodeInt(c.N),
		E:       encodeInt(c.E),
	}
}

// JWK encodes the components as a private JWK document. Absent CRT fields
// are omitted.
func (c *PrivateComponents) JWK() JWK {
	doc := c.PublicComponents.JWK()
	doc.D = encodeInt(c.D)
	doc.P = encodeInt(c.P)
	doc.Q = encodeInt(c.Q)
	doc.DP = encodeInt(c.DP)
	doc.DQ = encodeInt(c.DQ)
	doc.QI = encodeInt(c.QI)
	return doc
}

func decodeRequired(name, value string) (*big.Int, error) {
	if value == "" {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidKeyComponents, name)
	}
	raw, err := FromBase64URL(value)
	if err != nil {
		return nil, fmt.Errorf("%w: field %s: %v", ErrMalformedEncoding, name, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty %s", ErrInvalidKeyComponents, name)
	}
	return new(big.Int).SetBytes(raw), nil
}

func encodeInt(x *big.Int) string {
	if x == nil {
		return ""
	}
	return ToBase64URL(x.Bytes())
}
