package ed25519

import (
	"crypto/sha512"
	"math/bits"
)

// Arithmetic on integers modulo the prime group order
//
//	L = 2^252 + 27742317777372353535851937790883648493
//
// A scalar is held as four 64-bit limbs in little-endian order.
// Reductions rely on 2^252 = -l0 (mod L), with l0 the 125-bit tail of
// L. All functions here are constant-time.
type sc [4]uint64

// l0 = L - 2^252
const (
	sc_l0_lo uint64 = 0x5812631A5CF5D3ED
	sc_l0_hi uint64 = 0x14DEF9DEA2F79CD6
)

var scOrder = [4]uint64{
	0x5812631A5CF5D3ED, 0x14DEF9DEA2F79CD6,
	0x0000000000000000, 0x1000000000000000,
}

// Reduce a 256-bit value modulo L. The input may be any integer below
// 2^256; the output is fully reduced.
func sc_reduce256(d *sc, a *sc) {
	// Split at bit 252: a = ah*2^252 + al, so a = al - ah*l0 (mod L).
	ah := a[3] >> 60
	a0, a1, a2 := a[0], a[1], a[2]
	a3 := a[3] & 0x0FFFFFFFFFFFFFFF

	u1, u0 := bits.Mul64(ah, sc_l0_lo)
	u2, lo := bits.Mul64(ah, sc_l0_hi)
	var cc uint64
	u1, cc = bits.Add64(u1, lo, 0)
	u2 += cc

	var bb uint64
	d[0], bb = bits.Sub64(a0, u0, 0)
	d[1], bb = bits.Sub64(a1, u1, bb)
	d[2], bb = bits.Sub64(a2, u2, bb)
	d[3], bb = bits.Sub64(a3, 0, bb)

	// al < 2^252 < L, so a single conditional add-back of L settles
	// the borrow and the result is already canonical.
	m := -bb
	d[0], cc = bits.Add64(d[0], scOrder[0]&m, 0)
	d[1], cc = bits.Add64(d[1], scOrder[1]&m, cc)
	d[2], cc = bits.Add64(d[2], scOrder[2]&m, cc)
	d[3], _ = bits.Add64(d[3], scOrder[3]&m, cc)
}

// Reduce a 320-bit value (five limbs, little-endian) modulo L.
func sc_reduce320(d *sc, a *[5]uint64) {
	// Fold the top limb through 2^256 = -16*l0 (mod L).
	m1, m0 := bits.Mul64(a[4], sc_l0_lo)
	m2, lo := bits.Mul64(a[4], sc_l0_hi)
	var cc uint64
	m1, cc = bits.Add64(m1, lo, 0)
	m2 += cc

	m3 := m2 >> 60
	m2 = m2<<4 | m1>>60
	m1 = m1<<4 | m0>>60
	m0 <<= 4

	var t sc
	var bb uint64
	t[0], bb = bits.Sub64(a[0], m0, 0)
	t[1], bb = bits.Sub64(a[1], m1, bb)
	t[2], bb = bits.Sub64(a[2], m2, bb)
	t[3], bb = bits.Sub64(a[3], m3, bb)

	// The subtrahend is below 2^193, so one add-back of L covers any
	// borrow; the result then fits 256 bits and the final fold
	// finishes the reduction.
	mm := -bb
	t[0], cc = bits.Add64(t[0], scOrder[0]&mm, 0)
	t[1], cc = bits.Add64(t[1], scOrder[1]&mm, cc)
	t[2], cc = bits.Add64(t[2], scOrder[2]&mm, cc)
	t[3], _ = bits.Add64(t[3], scOrder[3]&mm, cc)

	sc_reduce256(d, &t)
}

// Reduce a little-endian multi-limb value (at least four limbs) modulo
// L, folding one limb at a time from the top.
func sc_reduce_wide(d *sc, a []uint64) {
	n := len(a)
	var r sc
	copy(r[:], a[n-4:])
	sc_reduce256(&r, &r)
	for i := n - 5; i >= 0; i-- {
		v := [5]uint64{a[i], r[0], r[1], r[2], r[3]}
		sc_reduce320(&r, &v)
	}
	*d = r
}

// Decode a scalar from 32 little-endian bytes, requiring the canonical
// range [0, L). Returns 1 on success, 0 if the value is out of range
// (in which case s is forced to zero).
func (s *sc) SetCanonicalBytes(src []byte) int {
	if len(src) != 32 {
		s.Zero()
		return 0
	}
	var t sc
	t[0] = le64(src[0:8])
	t[1] = le64(src[8:16])
	t[2] = le64(src[16:24])
	t[3] = le64(src[24:32])

	var bb uint64
	_, bb = bits.Sub64(t[0], scOrder[0], 0)
	_, bb = bits.Sub64(t[1], scOrder[1], bb)
	_, bb = bits.Sub64(t[2], scOrder[2], bb)
	_, bb = bits.Sub64(t[3], scOrder[3], bb)

	// bb == 1 iff t < L.
	m := -bb
	s[0] = t[0] & m
	s[1] = t[1] & m
	s[2] = t[2] & m
	s[3] = t[3] & m
	return int(bb)
}

// Decode a scalar from 32 little-endian bytes, reducing modulo L.
func (s *sc) SetBytesReduce(src []byte) *sc {
	var t sc
	t[0] = le64(src[0:8])
	t[1] = le64(src[8:16])
	t[2] = le64(src[16:24])
	t[3] = le64(src[24:32])
	sc_reduce256(s, &t)
	return s
}

// Set s to 0. Returns s.
func (s *sc) Zero() *sc {
	*s = sc{}
	return s
}

// Returns 1 if s == 0, 0 otherwise.
func (s *sc) IsZero() int {
	z := s[0] | s[1] | s[2] | s[3]
	return int(1 - ((z | -z) >> 63))
}

// Encode s into dst (32 bytes, little-endian).
func (s *sc) BytesInto(dst *[32]byte) {
	put_le64(dst[0:8], s[0])
	put_le64(dst[8:16], s[1])
	put_le64(dst[16:24], s[2])
	put_le64(dst[24:32], s[3])
}

// Encode s into a fresh 32-byte slice.
func (s *sc) Bytes() []byte {
	var buf [32]byte
	s.BytesInto(&buf)
	return buf[:]
}

// Set s to a + b (mod L). Returns s.
func (s *sc) Add(a, b *sc) *sc {
	var t sc
	var cc uint64
	t[0], cc = bits.Add64(a[0], b[0], 0)
	t[1], cc = bits.Add64(a[1], b[1], cc)
	t[2], cc = bits.Add64(a[2], b[2], cc)
	t[3], _ = bits.Add64(a[3], b[3], cc)
	// Reduced operands sum below 2^253: no carry out, one fold.
	sc_reduce256(s, &t)
	return s
}

// Set s to a * b (mod L). Returns s.
func (s *sc) Mul(a, b *sc) *sc {
	var w [8]uint64
	sc_mul_wide(&w, a, b)
	sc_reduce_wide(s, w[:])
	return s
}

// Set s to a * b + c (mod L); this is the combination used to close a
// signature. Returns s.
func (s *sc) MulAdd(a, b, c *sc) *sc {
	var w [8]uint64
	sc_mul_wide(&w, a, b)
	var cc uint64
	w[0], cc = bits.Add64(w[0], c[0], 0)
	w[1], cc = bits.Add64(w[1], c[1], cc)
	w[2], cc = bits.Add64(w[2], c[2], cc)
	w[3], cc = bits.Add64(w[3], c[3], cc)
	w[4], cc = bits.Add64(w[4], 0, cc)
	w[5], cc = bits.Add64(w[5], 0, cc)
	w[6], cc = bits.Add64(w[6], 0, cc)
	w[7], _ = bits.Add64(w[7], 0, cc)
	sc_reduce_wide(s, w[:])
	return s
}

// Schoolbook 4x4-limb multiply into an 8-limb result.
func sc_mul_wide(w *[8]uint64, a, b *sc) {
	var cc uint64

	w[1], w[0] = bits.Mul64(a[0], b[0])
	w[3], w[2] = bits.Mul64(a[0], b[2])
	hi, lo := bits.Mul64(a[0], b[1])
	w[1], cc = bits.Add64(w[1], lo, 0)
	w[2], cc = bits.Add64(w[2], hi, cc)
	w[3], _ = bits.Add64(w[3], 0, cc)
	hi, lo = bits.Mul64(a[0], b[3])
	w[3], cc = bits.Add64(w[3], lo, 0)
	w[4] = hi + cc

	for i := 1; i < 4; i++ {
		var carry, t uint64
		carry = 0
		for j := 0; j < 4; j++ {
			hi, lo = bits.Mul64(a[i], b[j])
			lo, cc = bits.Add64(lo, carry, 0)
			hi, _ = bits.Add64(hi, 0, cc)
			t, cc = bits.Add64(w[i+j], lo, 0)
			w[i+j] = t
			carry = hi + cc
		}
		w[i+4] = carry
	}
}

// Concatenate the given byte slices, hash with SHA-512, and interpret
// the 64-byte digest as a little-endian integer reduced modulo L
// (RFC 8032 uses this for both nonce and challenge derivation).
func sha512_modq_le(parts ...[]byte) sc {
	h := sha512.New()
	for _, p := range parts {
		h.Write(p)
	}
	var digest [64]byte
	h.Sum(digest[:0])

	var w [8]uint64
	for i := 0; i < 8; i++ {
		w[i] = le64(digest[8*i : 8*i+8])
	}
	var s sc
	sc_reduce_wide(&s, w[:])
	return s
}

// Range-gate a caller-supplied 32-byte scalar. In strict mode the
// value must lie in (0, L): this is the constant-time multiplication
// contract, where a zero or unreduced scalar is a caller bug rather
// than a value to fix up silently. In non-strict mode any 256-bit
// value is accepted (public-input paths). The scalar is returned in
// canonical little-endian bytes.
func normalize_scalar(src []byte, strict bool) ([32]byte, error) {
	var out [32]byte
	if len(src) != 32 {
		return out, ErrInvalidLength
	}
	if !strict {
		copy(out[:], src)
		return out, nil
	}
	var s sc
	if s.SetCanonicalBytes(src) != 1 || s.IsZero() == 1 {
		return out, ErrScalarOutOfRange
	}
	s.BytesInto(&out)
	return out, nil
}
