package ed25519

import (
	"bytes"
	"crypto/rand"
	"errors"
	"math/big"
	"testing"
)

// The group order L as a big.Int.
func bigL() *big.Int {
	l, _ := new(big.Int).SetString(
		"1000000000000000000000000000000014DEF9DEA2F79CD65812631A5CF5D3ED", 16)
	return l
}

func scToBig(s *sc) *big.Int {
	var b [32]byte
	s.BytesInto(&b)
	var rev [32]byte
	for i := 0; i < 32; i++ {
		rev[i] = b[31-i]
	}
	return new(big.Int).SetBytes(rev[:])
}

func randScalarBytes(t *testing.T) [32]byte {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestScalarReduce(t *testing.T) {
	L := bigL()
	for i := 0; i < 200; i++ {
		b := randScalarBytes(t)

		var s sc
		s.SetBytesReduce(b[:])

		var rev [32]byte
		for j := 0; j < 32; j++ {
			rev[j] = b[31-j]
		}
		want := new(big.Int).SetBytes(rev[:])
		want.Mod(want, L)

		if scToBig(&s).Cmp(want) != 0 {
			t.Fatalf("reduce mismatch (i=%d)", i)
		}
	}
}

func TestScalarMulAdd(t *testing.T) {
	L := bigL()
	for i := 0; i < 100; i++ {
		ab := randScalarBytes(t)
		bb := randScalarBytes(t)
		cb := randScalarBytes(t)

		var a, b, c, m, ma, su sc
		a.SetBytesReduce(ab[:])
		b.SetBytesReduce(bb[:])
		c.SetBytesReduce(cb[:])

		m.Mul(&a, &b)
		ma.MulAdd(&a, &b, &c)
		su.Add(&a, &b)

		ba, bbv, bc := scToBig(&a), scToBig(&b), scToBig(&c)

		want := new(big.Int).Mul(ba, bbv)
		want.Mod(want, L)
		if scToBig(&m).Cmp(want) != 0 {
			t.Fatalf("mul mismatch (i=%d)", i)
		}

		want.Mul(ba, bbv)
		want.Add(want, bc)
		want.Mod(want, L)
		if scToBig(&ma).Cmp(want) != 0 {
			t.Fatalf("muladd mismatch (i=%d)", i)
		}

		want.Add(ba, bbv)
		want.Mod(want, L)
		if scToBig(&su).Cmp(want) != 0 {
			t.Fatalf("add mismatch (i=%d)", i)
		}
	}
}

func TestScalarCanonicalBounds(t *testing.T) {
	// L - 1 decodes; L and L + 1 do not; neither does 2^256 - 1.
	lm1 := must_hex("ecd3f55c1a631258d69cf7a2def9de1400000000000000000000000000000010")
	lEnc := must_hex("edd3f55c1a631258d69cf7a2def9de1400000000000000000000000000000010")
	lp1 := must_hex("eed3f55c1a631258d69cf7a2def9de1400000000000000000000000000000010")
	allOnes := bytes.Repeat([]byte{0xFF}, 32)

	var s sc
	if s.SetCanonicalBytes(lm1) != 1 {
		t.Fatal("L-1 rejected")
	}
	if s.SetCanonicalBytes(lEnc) != 0 {
		t.Fatal("L accepted")
	}
	if s.SetCanonicalBytes(lp1) != 0 {
		t.Fatal("L+1 accepted")
	}
	if s.SetCanonicalBytes(allOnes) != 0 {
		t.Fatal("2^256-1 accepted")
	}

	// Rejection forces the value to zero.
	s.SetCanonicalBytes(lEnc)
	if s.IsZero() != 1 {
		t.Fatal("rejected scalar not zeroed")
	}
}

func TestNormalizeScalar(t *testing.T) {
	var zero [32]byte
	if _, err := normalize_scalar(zero[:], true); !errors.Is(err, ErrScalarOutOfRange) {
		t.Fatal("strict mode accepted zero")
	}
	lEnc := must_hex("edd3f55c1a631258d69cf7a2def9de1400000000000000000000000000000010")
	if _, err := normalize_scalar(lEnc, true); !errors.Is(err, ErrScalarOutOfRange) {
		t.Fatal("strict mode accepted L")
	}
	if _, err := normalize_scalar(zero[:3], false); !errors.Is(err, ErrInvalidLength) {
		t.Fatal("short scalar accepted")
	}
	// Non-strict mode takes any 32 bytes as-is.
	allOnes := bytes.Repeat([]byte{0xFF}, 32)
	nb, err := normalize_scalar(allOnes, false)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(nb[:], allOnes) {
		t.Fatal("non-strict normalization altered the scalar")
	}
}

func TestSha512ModqLE(t *testing.T) {
	// Splitting the input across parts must not change the digest.
	a := []byte("split")
	b := []byte("invariance")
	s1 := sha512_modq_le(a, b)
	s2 := sha512_modq_le(append(append([]byte{}, a...), b...))
	if scToBig(&s1).Cmp(scToBig(&s2)) != 0 {
		t.Fatal("part splitting changed the result")
	}

	// And the result is always in range.
	L := bigL()
	for i := 0; i < 50; i++ {
		m := randScalarBytes(t)
		s := sha512_modq_le(m[:])
		if scToBig(&s).Cmp(L) >= 0 {
			t.Fatalf("hash scalar not reduced (i=%d)", i)
		}
	}
}
