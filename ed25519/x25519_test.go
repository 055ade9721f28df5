package ed25519

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	xcurve "golang.org/x/crypto/curve25519"
)

// RFC 7748, section 5.2 test vectors.
var x25519KAT = []struct {
	scalar, u, out string
}{
	{
		"a546e36bf0527c9d3b16154b82465edd62144c0ac1fc5a18506a2244ba449ac4",
		"e6db6867583030db3594c1a424b15f7c726624ec26b3353b10a903a6d0ab1c4c",
		"c3da55379de9c6908e94ea4df28d084f32eccf03491c71f754b4075577a28552",
	},
	{
		// The u coordinate has its top bit set; RFC 7748 requires it
		// to be masked before use.
		"4b66e9d4d1b4673c5ad22691957d6af5c11b6421e0ea01d42ca4169e7918ba0d",
		"e5210f12786811d3f4b7959d0538ae2c31dbe7106fc03c3efc4cd549c715a493",
		"95cbde9476e8907d7aade45cb4b873f88b595a68799fa152e6f8f7647aac7957",
	},
}

func TestX25519KAT(t *testing.T) {
	for i, v := range x25519KAT {
		out, err := X25519(must_hex(v.scalar), must_hex(v.u))
		if err != nil {
			t.Fatal(err)
		}
		if bytes_to_hex(out) != v.out {
			t.Fatalf("wrong output (vector %d)", i+1)
		}
	}
}

// RFC 7748, section 6.1: full Diffie-Hellman exchange.
func TestX25519DiffieHellman(t *testing.T) {
	a := must_hex("77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a")
	b := must_hex("5dab087e624a8a4b79e17f8b83800ee66f3bb1292618b6fd1c2f8b27ff88e0eb")

	A, err := X25519(a, X25519Basepoint)
	if err != nil {
		t.Fatal(err)
	}
	B, err := X25519(b, X25519Basepoint)
	if err != nil {
		t.Fatal(err)
	}

	if bytes_to_hex(A) != "8520f0098930a754748b7ddcb43ef75a0dbf3a0d26381af4eba4a98eaa9b4e6a" {
		t.Fatal("wrong public key for a")
	}
	if bytes_to_hex(B) != "de9edb7d7b7dc1b4d35b61c2ece435373f8343c85b78674dadfc7e146f882b4f" {
		t.Fatal("wrong public key for b")
	}

	kab, err := X25519(a, B)
	if err != nil {
		t.Fatal(err)
	}
	kba, err := X25519(b, A)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(kab, kba) {
		t.Fatal("shared secrets disagree")
	}
	if bytes_to_hex(kab) != "4a5d9d5ba4ce2de1728e3bf480350f25e07e21c947d19e3376f09b3c1e161742" {
		t.Fatal("wrong shared secret")
	}
}

func TestX25519SmallOrderInputs(t *testing.T) {
	var k [32]byte
	if _, err := rand.Read(k[:]); err != nil {
		t.Fatal(err)
	}

	// u = 0 and u = 1 are small-order points; the ladder maps them to
	// the zero output, which must be refused.
	var zero [32]byte
	if _, err := X25519(k[:], zero[:]); !errors.Is(err, ErrInvalidSharedSecret) {
		t.Fatal("u=0 did not error")
	}
	one := make([]byte, 32)
	one[0] = 1
	if _, err := X25519(k[:], one); !errors.Is(err, ErrInvalidSharedSecret) {
		t.Fatal("u=1 did not error")
	}

	if _, err := X25519(k[:5], zero[:]); !errors.Is(err, ErrInvalidLength) {
		t.Fatal("short scalar accepted")
	}
}

// Agreement with golang.org/x/crypto on random inputs, including the
// error cases.
func TestX25519CrossCheck(t *testing.T) {
	for i := 0; i < 30; i++ {
		var k, u [32]byte
		if _, err := rand.Read(k[:]); err != nil {
			t.Fatal(err)
		}
		if _, err := rand.Read(u[:]); err != nil {
			t.Fatal(err)
		}

		mine, errMine := X25519(k[:], u[:])
		theirs, errTheirs := xcurve.X25519(k[:], u[:])

		if (errMine == nil) != (errTheirs == nil) {
			t.Fatalf("error disagreement with x/crypto (i=%d)", i)
		}
		if errMine == nil && !bytes.Equal(mine, theirs) {
			t.Fatalf("output disagreement with x/crypto (i=%d)", i)
		}
	}
}

func TestX25519FromEd25519Seed(t *testing.T) {
	seed, _, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	priv, err := X25519FromEd25519Seed(seed)
	if err != nil {
		t.Fatal(err)
	}

	// The derived key is already clamped.
	if priv[0]&7 != 0 || priv[31]&128 != 0 || priv[31]&64 == 0 {
		t.Fatal("derived key not clamped")
	}

	// Two sides deriving from Ed25519 seeds can run a normal
	// exchange.
	seed2, _, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	priv2, err := X25519FromEd25519Seed(seed2)
	if err != nil {
		t.Fatal(err)
	}

	pub1, err := X25519(priv, X25519Basepoint)
	if err != nil {
		t.Fatal(err)
	}
	pub2, err := X25519(priv2, X25519Basepoint)
	if err != nil {
		t.Fatal(err)
	}
	k12, err := X25519(priv, pub2)
	if err != nil {
		t.Fatal(err)
	}
	k21, err := X25519(priv2, pub1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(k12, k21) {
		t.Fatal("seed-derived exchange disagrees")
	}

	if _, err := X25519FromEd25519Seed(seed[:31]); !errors.Is(err, ErrInvalidLength) {
		t.Fatal("short seed accepted")
	}
}

func BenchmarkX25519(b *testing.B) {
	var k [32]byte
	rand.Read(k[:])
	u := X25519Basepoint
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := X25519(k[:], u)
		if err != nil {
			b.Fatal(err)
		}
		u = out
	}
}
