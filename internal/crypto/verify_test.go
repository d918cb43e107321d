package crypto

import (
	"errors"
	"testing"
)

func TestVerify_ValidSignature(t *testing.T) {
	key := loadFixtureKey(t)
	digest := Hash([]byte("hello"))

	sig, err := key.Sign(digest)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	pub, err := PublicKeyFromOwner(key.Owner())
	if err != nil {
		t.Fatalf("PublicKeyFromOwner() error = %v", err)
	}
	if !pub.Verify(digest, sig) {
		t.Error("Verify() = false, want true")
	}
}

func TestVerify_TamperedDigest(t *testing.T) {
	key := loadFixtureKey(t)

	sig, err := key.Sign(Hash([]byte("hello")))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	if key.Verify(Hash([]byte("hellp")), sig) {
		t.Error("Verify() = true for a different digest")
	}
	err = key.CheckSignature(Hash([]byte("hellp")), sig)
	if !errors.Is(err, ErrVerificationFailed) {
		t.Errorf("CheckSignature() error = %v, want %v", err, ErrVerificationFailed)
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	key := loadFixtureKey(t)
	digest := Hash([]byte("hello"))

	sig, err := key.Sign(digest)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	for _, i := range []int{0, len(sig) / 2, len(sig) - 1} {
		tampered := append([]byte(nil), sig...)
		tampered[i] ^= 0x01
		if key.Verify(digest, tampered) {
			t.Errorf("Verify() = true with byte %d flipped", i)
		}
	}
}

func TestVerify_WrongKey(t *testing.T) {
	signer := loadFixtureKey(t)
	other := newTestKey(t)
	digest := Hash([]byte("hello"))

	sig, err := signer.Sign(digest)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if other.Verify(digest, sig) {
		t.Error("Verify() = true under an unrelated key")
	}

	sig2, err := other.Sign(digest)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if signer.Verify(digest, sig2) {
		t.Error("Verify() = true under an unrelated key")
	}
}

func TestVerify_DifferentDigests(t *testing.T) {
	key := newTestKey(t)
	d1 := Hash([]byte("first"))
	d2 := Hash([]byte("second"))

	sig, err := key.Sign(d1)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if !key.Verify(d1, sig) {
		t.Error("Verify(d1) = false, want true")
	}
	if key.Verify(d2, sig) {
		t.Error("Verify(d2) = true, want false")
	}
}

func TestVerify_Malformed(t *testing.T) {
	key := loadFixtureKey(t)
	digest := Hash([]byte("hello"))

	tests := []struct {
		name      string
		digest    []byte
		signature []byte
	}{
		{"nil signature", digest, nil},
		{"empty signature", digest, []byte{}},
		{"short signature", digest, make([]byte, 16)},
		{"long signature", digest, make([]byte, key.Size()+1)},
		{"all 0xff", digest, fill(key.Size(), 0xff)},
		{"zero signature", digest, make([]byte, key.Size())},
		{"nil digest", nil, make([]byte, key.Size())},
		{"short digest", digest[:16], make([]byte, key.Size())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if key.Verify(tt.digest, tt.signature) {
				t.Error("Verify() = true, want false")
			}
			if err := key.CheckSignature(tt.digest, tt.signature); !errors.Is(err, ErrVerificationFailed) {
				t.Errorf("CheckSignature() error = %v, want %v", err, ErrVerificationFailed)
			}
		})
	}
}

func TestVerify_NilKey(t *testing.T) {
	var pub *PublicKey
	if pub.Verify(Hash(nil), make([]byte, 512)) {
		t.Error("Verify() on nil key = true")
	}
}

func fill(n int, b byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func BenchmarkVerify(b *testing.B) {
	key := loadFixtureKey(b)
	digest := Hash([]byte("benchmark"))
	sig, err := key.Sign(digest)
	if err != nil {
		b.Fatal(err)
	}
	pub := key.Public()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pub.Verify(digest, sig)
	}
}
