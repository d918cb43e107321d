package crypto

import (
	"io"

	"github.com/cloudflare/circl/xof"
)

// NewDeterministicReader returns an unbounded stream of SHAKE-256 output
// keyed by seed. It is meant for reproducible test vectors and must never
// be used as a production random source.
func NewDeterministicReader(seed []byte) io.Reader {
	x := xof.SHAKE256.New()
	_, _ = x.Write(seed)
	return x
}

// RandomBytes returns n bytes from the package random source.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(randomSource(nil), b); err != nil {
		return nil, err
	}
	return b, nil
}
