// Package winston implements the Winston amount: the smallest indivisible
// unit of the ledger's native token, as an arbitrary-precision non-negative
// integer.
//
// The text form is an unsigned base-10 ASCII string with no sign, no
// separators, no decimal point and no leading zeros ("0" for zero). Node
// responses carry balances, fees and quantities in this form.
package winston

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidAmount is returned when input is not a canonical non-negative
// decimal string, or an operation would produce a negative amount.
var ErrInvalidAmount = errors.New("invalid amount")

// PerAR is the number of winston in one AR.
const PerAR = 1_000_000_000_000

var perAR = big.NewInt(PerAR)

// Winston is a non-negative amount. The zero value is 0. Values are
// immutable; arithmetic returns new values.
type Winston struct {
	v *big.Int
}

// New returns the amount n.
func New(n uint64) Winston {
	return Winston{v: new(big.Int).SetUint64(n)}
}

// Zero returns the zero amount.
func Zero() Winston {
	return Winston{}
}

// FromBigInt returns an amount equal to x. Negative values are rejected.
func FromBigInt(x *big.Int) (Winston, error) {
	if x == nil {
		return Winston{}, nil
	}
	if x.Sign() < 0 {
		return Winston{}, fmt.Errorf("%w: negative value %s", ErrInvalidAmount, x)
	}
	return Winston{v: new(big.Int).Set(x)}, nil
}

// Decode parses a canonical decimal string.
func Decode(s string) (Winston, error) {
	return DecodeBytes([]byte(s))
}

// DecodeBytes parses a canonical decimal byte string. Only ASCII digits are
// accepted and a multi-digit value may not start with '0'.
func DecodeBytes(b []byte) (Winston, error) {
	if len(b) == 0 {
		return Winston{}, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return Winston{}, fmt.Errorf("%w: %q is not a decimal digit", ErrInvalidAmount, c)
		}
	}
	if len(b) > 1 && b[0] == '0' {
		return Winston{}, fmt.Errorf("%w: leading zero in %q", ErrInvalidAmount, b)
	}

	v, ok := new(big.Int).SetString(string(b), 10)
	if !ok {
		return Winston{}, fmt.Errorf("%w: %q", ErrInvalidAmount, b)
	}
	return Winston{v: v}, nil
}

func (w Winston) int() *big.Int {
	if w.v == nil {
		return new(big.Int)
	}
	return w.v
}

// BigInt returns a copy of the amount as a big.Int.
func (w Winston) BigInt() *big.Int {
	return new(big.Int).Set(w.int())
}

// String returns the canonical decimal form.
func (w Winston) String() string {
	return w.int().String()
}

// Add returns w + other.
func (w Winston) Add(other Winston) Winston {
	return Winston{v: new(big.Int).Add(w.int(), other.int())}
}

// Sub returns w - other, or ErrInvalidAmount if other is larger.
func (w Winston) Sub(other Winston) (Winston, error) {
	if w.Cmp(other) < 0 {
		return Winston{}, fmt.Errorf("%w: %s - %s is negative", ErrInvalidAmount, w, other)
	}
	return Winston{v: new(big.Int).Sub(w.int(), other.int())}, nil
}

// Sum adds all amounts.
func Sum(amounts ...Winston) Winston {
	total := new(big.Int)
	for _, a := range amounts {
		total.Add(total, a.int())
	}
	return Winston{v: total}
}

// Cmp compares w and other and returns -1, 0 or +1.
func (w Winston) Cmp(other Winston) int {
	return w.int().Cmp(other.int())
}

// IsZero reports whether the amount is 0.
func (w Winston) IsZero() bool {
	return w.int().Sign() == 0
}

// AR formats the amount in AR with up to twelve fractional digits and no
// trailing zeros.
func (w Winston) AR() string {
	q, r := new(big.Int).QuoRem(w.int(), perAR, new(big.Int))
	if r.Sign() == 0 {
		return q.String()
	}
	frac := strings.TrimRight(fmt.Sprintf("%012s", r.String()), "0")
	return q.String() + "." + frac
}

// MarshalText implements encoding.TextMarshaler.
func (w Winston) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Winston) UnmarshalText(text []byte) error {
	v, err := DecodeBytes(text)
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// MarshalJSON encodes the amount as a quoted decimal string.
func (w Winston) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

// UnmarshalJSON accepts a quoted decimal string or a bare JSON integer.
// JSON null leaves the value unchanged.
func (w *Winston) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		return w.UnmarshalText([]byte(s))
	}
	return w.UnmarshalText(data)
}
