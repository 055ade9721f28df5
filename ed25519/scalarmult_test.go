package ed25519

import (
	"math/big"
	"testing"
)

// Scalars chosen to have wildly different digit patterns: the uniform-
// work tests must see no difference between them.
func skewedScalars(t *testing.T) [][32]byte {
	var out [][32]byte

	one := [32]byte{1}
	out = append(out, one)

	// 2^200: a single nonzero window.
	var pow [32]byte
	pow[25] = 1
	out = append(out, pow)

	// L - 1: dense digits.
	var lm1 sc
	lm1.SetCanonicalBytes(must_hex(
		"ecd3f55c1a631258d69cf7a2def9de1400000000000000000000000000000010"))
	var lm1b [32]byte
	lm1.BytesInto(&lm1b)
	out = append(out, lm1b)

	// A few random ones.
	for i := 0; i < 8; i++ {
		var b [32]byte
		copy(b[:], randReducedScalar(t))
		out = append(out, b)
	}
	return out
}

func TestWnafDigits(t *testing.T) {
	for _, w := range []int{2, 4, 8, 16} {
		windows := 1 + 256/w
		wsize := 1 << (w - 1)

		for _, nb := range skewedScalars(t) {
			digits := wnaf_digits(&nb, w)
			if len(digits) != windows {
				t.Fatalf("w=%d: %d digits, want %d", w, len(digits), windows)
			}
			for k, d := range digits {
				if d < -wsize || d > wsize {
					t.Fatalf("w=%d: digit %d out of range at window %d", w, d, k)
				}
			}

			// The signed digits must still sum back to the scalar.
			sum := new(big.Int)
			for k, d := range digits {
				term := new(big.Int).Lsh(big.NewInt(int64(d)), uint(k*w))
				sum.Add(sum, term)
			}
			want := new(big.Int).SetBytes(reverse32(nb[:]))
			if sum.Cmp(want) != 0 {
				t.Fatalf("w=%d: digit decomposition does not reconstruct scalar", w)
			}
		}
	}
}

// The constant-time contract, checked as executed work: the number of
// masked table selections, masked negations, masked swaps and group
// additions performed by the multiplication core must be a function
// of the window width alone, identical for every scalar. A regression
// that skips work for zero digits, branches on the digit sign, or
// indexes the table directly shows up here as a diverging tally.
func TestWnafUniformWork(t *testing.T) {
	for _, w := range []int{2, 4, 8} {
		windows := 1 + 256/w
		wsize := 1 << (w - 1)

		base := randPoint(t)
		pre := build_precomp(base, w)

		want := wnaf_trace{
			selects: windows * (wsize - 1),
			negs:    windows,
			swaps:   2 * windows,
			adds:    windows,
		}

		for _, nb := range skewedScalars(t) {
			var tr wnaf_trace
			got := wnaf_mul_traced(pre, w, &nb, &tr)
			if tr != want {
				t.Fatalf("w=%d: work depends on scalar: got %+v, want %+v",
					w, tr, want)
			}

			// And the routed result is still the right point.
			ref, err := base.Extended().MultiplyUnsafe(nb[:])
			if err != nil {
				t.Fatal(err)
			}
			if got.Equal(ref) != 1 {
				t.Fatalf("w=%d: traced multiply wrong for skewed scalar", w)
			}
		}
	}
}
