package ed25519

import (
	"math/bits"
)

// Arithmetic in the field GF(2^255-19), over which both the twisted
// Edwards curve and the Montgomery curve are defined.
//
// A field element is held as five limbs in radix 2^51:
//
//	v = l[0] + l[1]*2^51 + l[2]*2^102 + l[3]*2^153 + l[4]*2^204
//
// Between operations, limbs are allowed to exceed 51 bits slightly
// (carry slack); canonical reduction to [0, p-1] happens only on
// encoding and comparisons. All functions in this file are
// constant-time unless documented otherwise.
type gf [5]uint64

const low51mask uint64 = (1 << 51) - 1

var (
	gfZero gf
	gfOne  = gf{1, 0, 0, 0, 0}

	// Curve constant d = -121665/121666 mod p.
	gfD = gf{
		929955233495203, 466365720129213, 1662059464998953,
		2033849074728123, 1442794654840575,
	}

	// 2*d
	gf2D = gf{
		1859910466990425, 932731440258426, 1072319116312658,
		1815898335770999, 633789495995903,
	}

	// sqrt(-1), the canonical (even) root.
	gfSqrtM1 = gf{
		1718705420411056, 234908883556509, 2233514472574048,
		2117202627021982, 765476049583133,
	}

	// 1/sqrt(a-d) = 1/sqrt(-1-d)
	gfInvSqrtAMinusD = gf{
		278908739862762, 821645201101625, 8113234426968,
		1777959178193151, 2118520810568447,
	}

	// sqrt(a*d-1) = sqrt(-d-1)
	gfSqrtAdMinusOne = gf{
		2241493124984347, 425987919032274, 2207028919301688,
		1220490630685848, 974799131293748,
	}

	// (d-1)^2
	gfDMinusOneSq = gf{
		1507062230895904, 1572317787530805, 683053064812840,
		317374165784489, 1572899562415810,
	}

	// 1-d^2
	gfOneMinusDSq = gf{
		1136626929484150, 1998550399581263, 496427632559748,
		118527312129759, 45110755273534,
	}
)

// Set v to a. Returns v.
func (v *gf) Set(a *gf) *gf {
	*v = *a
	return v
}

// Set v to 0. Returns v.
func (v *gf) Zero() *gf {
	*v = gfZero
	return v
}

// Set v to 1. Returns v.
func (v *gf) One() *gf {
	*v = gfOne
	return v
}

// Bring all limbs below 2^52 (l[0] may keep a small excess from the
// folded top carry).
func (v *gf) carryPropagate() *gf {
	c0 := v[0] >> 51
	c1 := v[1] >> 51
	c2 := v[2] >> 51
	c3 := v[3] >> 51
	c4 := v[4] >> 51

	v[0] = v[0]&low51mask + c4*19
	v[1] = v[1]&low51mask + c0
	v[2] = v[2]&low51mask + c1
	v[3] = v[3]&low51mask + c2
	v[4] = v[4]&low51mask + c3

	return v
}

// Reduce v to its canonical representative in [0, p-1].
func (v *gf) reduce() *gf {
	v.carryPropagate()

	// Now v < 2^255 + small. If v >= p then v + 19 overflows bit 255;
	// the chained carry c ends up 1 exactly in that case.
	c := (v[0] + 19) >> 51
	c = (v[1] + c) >> 51
	c = (v[2] + c) >> 51
	c = (v[3] + c) >> 51
	c = (v[4] + c) >> 51

	v[0] += 19 * c

	v[1] += v[0] >> 51
	v[0] &= low51mask
	v[2] += v[1] >> 51
	v[1] &= low51mask
	v[3] += v[2] >> 51
	v[2] &= low51mask
	v[4] += v[3] >> 51
	v[3] &= low51mask
	v[4] &= low51mask

	return v
}

// Set v to a + b. Returns v.
func (v *gf) Add(a, b *gf) *gf {
	v[0] = a[0] + b[0]
	v[1] = a[1] + b[1]
	v[2] = a[2] + b[2]
	v[3] = a[3] + b[3]
	v[4] = a[4] + b[4]
	return v.carryPropagate()
}

// Set v to a - b. Returns v.
func (v *gf) Sub(a, b *gf) *gf {
	// 2*p is added first so that the limb subtractions cannot
	// underflow for any reduced-or-lightly-carried operand.
	v[0] = (a[0] + 0xFFFFFFFFFFFDA) - b[0]
	v[1] = (a[1] + 0xFFFFFFFFFFFFE) - b[1]
	v[2] = (a[2] + 0xFFFFFFFFFFFFE) - b[2]
	v[3] = (a[3] + 0xFFFFFFFFFFFFE) - b[3]
	v[4] = (a[4] + 0xFFFFFFFFFFFFE) - b[4]
	return v.carryPropagate()
}

// Set v to -a. Returns v.
func (v *gf) Neg(a *gf) *gf {
	return v.Sub(&gfZero, a)
}

// 128-bit accumulator for the limb products.
type uint128 struct {
	lo, hi uint64
}

func mul64(a, b uint64) uint128 {
	hi, lo := bits.Mul64(a, b)
	return uint128{lo, hi}
}

func add_mul64(v uint128, a, b uint64) uint128 {
	hi, lo := bits.Mul64(a, b)
	lo, c := bits.Add64(lo, v.lo, 0)
	hi, _ = bits.Add64(hi, v.hi, c)
	return uint128{lo, hi}
}

func shift_right_51(a uint128) uint64 {
	return (a.hi << (64 - 51)) | (a.lo >> 51)
}

// Set v to a * b. Returns v.
func (v *gf) Mul(a, b *gf) *gf {
	a0, a1, a2, a3, a4 := a[0], a[1], a[2], a[3], a[4]
	b0, b1, b2, b3, b4 := b[0], b[1], b[2], b[3], b[4]

	// Products crossing the 2^255 boundary are folded back through
	// 2^255 = 19 mod p.
	b1_19 := b1 * 19
	b2_19 := b2 * 19
	b3_19 := b3 * 19
	b4_19 := b4 * 19

	r0 := mul64(a0, b0)
	r0 = add_mul64(r0, a1, b4_19)
	r0 = add_mul64(r0, a2, b3_19)
	r0 = add_mul64(r0, a3, b2_19)
	r0 = add_mul64(r0, a4, b1_19)

	r1 := mul64(a0, b1)
	r1 = add_mul64(r1, a1, b0)
	r1 = add_mul64(r1, a2, b4_19)
	r1 = add_mul64(r1, a3, b3_19)
	r1 = add_mul64(r1, a4, b2_19)

	r2 := mul64(a0, b2)
	r2 = add_mul64(r2, a1, b1)
	r2 = add_mul64(r2, a2, b0)
	r2 = add_mul64(r2, a3, b4_19)
	r2 = add_mul64(r2, a4, b3_19)

	r3 := mul64(a0, b3)
	r3 = add_mul64(r3, a1, b2)
	r3 = add_mul64(r3, a2, b1)
	r3 = add_mul64(r3, a3, b0)
	r3 = add_mul64(r3, a4, b4_19)

	r4 := mul64(a0, b4)
	r4 = add_mul64(r4, a1, b3)
	r4 = add_mul64(r4, a2, b2)
	r4 = add_mul64(r4, a3, b1)
	r4 = add_mul64(r4, a4, b0)

	c0 := shift_right_51(r0)
	c1 := shift_right_51(r1)
	c2 := shift_right_51(r2)
	c3 := shift_right_51(r3)
	c4 := shift_right_51(r4)

	v[0] = r0.lo&low51mask + c4*19
	v[1] = r1.lo&low51mask + c0
	v[2] = r2.lo&low51mask + c1
	v[3] = r3.lo&low51mask + c2
	v[4] = r4.lo&low51mask + c3

	return v.carryPropagate()
}

// Set v to a^2. Returns v.
func (v *gf) Square(a *gf) *gf {
	l0, l1, l2, l3, l4 := a[0], a[1], a[2], a[3], a[4]

	l0_2 := l0 * 2
	l1_2 := l1 * 2

	l1_38 := l1 * 38
	l2_38 := l2 * 38
	l3_38 := l3 * 38

	l3_19 := l3 * 19
	l4_19 := l4 * 19

	r0 := mul64(l0, l0)
	r0 = add_mul64(r0, l1_38, l4)
	r0 = add_mul64(r0, l2_38, l3)

	r1 := mul64(l0_2, l1)
	r1 = add_mul64(r1, l2_38, l4)
	r1 = add_mul64(r1, l3_19, l3)

	r2 := mul64(l0_2, l2)
	r2 = add_mul64(r2, l1, l1)
	r2 = add_mul64(r2, l3_38, l4)

	r3 := mul64(l0_2, l3)
	r3 = add_mul64(r3, l1_2, l2)
	r3 = add_mul64(r3, l4_19, l4)

	r4 := mul64(l0_2, l4)
	r4 = add_mul64(r4, l1_2, l3)
	r4 = add_mul64(r4, l2, l2)

	c0 := shift_right_51(r0)
	c1 := shift_right_51(r1)
	c2 := shift_right_51(r2)
	c3 := shift_right_51(r3)
	c4 := shift_right_51(r4)

	v[0] = r0.lo&low51mask + c4*19
	v[1] = r1.lo&low51mask + c0
	v[2] = r2.lo&low51mask + c1
	v[3] = r3.lo&low51mask + c2
	v[4] = r4.lo&low51mask + c3

	return v.carryPropagate()
}

// Set v to a * b where b is a small constant. Returns v.
func (v *gf) Mul32(a *gf, b uint32) *gf {
	bb := uint64(b)
	x0hi, x0lo := bits.Mul64(a[0], bb)
	x1hi, x1lo := bits.Mul64(a[1], bb)
	x2hi, x2lo := bits.Mul64(a[2], bb)
	x3hi, x3lo := bits.Mul64(a[3], bb)
	x4hi, x4lo := bits.Mul64(a[4], bb)

	// The partial products fit well under 2^115, so folding the high
	// words directly into the next limb cannot overflow.
	v[0] = (x0lo & low51mask) + 19*((x4hi<<13)|(x4lo>>51))
	v[1] = (x1lo & low51mask) + ((x0hi << 13) | (x0lo >> 51))
	v[2] = (x2lo & low51mask) + ((x1hi << 13) | (x1lo >> 51))
	v[3] = (x3lo & low51mask) + ((x2hi << 13) | (x2lo >> 51))
	v[4] = (x4lo & low51mask) + ((x3hi << 13) | (x3lo >> 51))

	return v.carryPropagate()
}

// Decode a field element from 32 bytes in little-endian order. Bit 255
// is ignored, and non-canonical values (p to 2^255-1) are accepted, as
// per RFC 7748 and RFC 8032 conventions; canonicality checks, where
// needed, are done by the callers on re-encoding.
func (v *gf) SetBytes(src []byte) *gf {
	_ = src[31]
	v[0] = le64(src[0:8]) & low51mask
	v[1] = (le64(src[6:14]) >> 3) & low51mask
	v[2] = (le64(src[12:20]) >> 6) & low51mask
	v[3] = (le64(src[19:27]) >> 1) & low51mask
	v[4] = (le64(src[24:32]) >> 12) & low51mask
	return v
}

// Encode v into dst (32 bytes, little-endian, canonical).
func (v *gf) BytesInto(dst *[32]byte) {
	var t gf
	t.Set(v).reduce()

	put_le64(dst[0:8], t[0]|t[1]<<51)
	put_le64(dst[8:16], t[1]>>13|t[2]<<38)
	put_le64(dst[16:24], t[2]>>26|t[3]<<25)
	put_le64(dst[24:32], t[3]>>39|t[4]<<12)
}

// Encode v into a fresh 32-byte slice.
func (v *gf) Bytes() []byte {
	var buf [32]byte
	v.BytesInto(&buf)
	return buf[:]
}

// Returns 1 if v == a, 0 otherwise.
func (v *gf) Equal(a *gf) int {
	var bv, ba [32]byte
	v.BytesInto(&bv)
	a.BytesInto(&ba)
	return ct_bytes_eq(bv[:], ba[:])
}

// Returns 1 if v == 0, 0 otherwise.
func (v *gf) IsZero() int {
	return v.Equal(&gfZero)
}

// Returns 1 if v is negative (canonical representative is odd), 0
// otherwise.
func (v *gf) IsNegative() int {
	var b [32]byte
	v.BytesInto(&b)
	return int(b[0] & 1)
}

// Set v to a if cond == 1, b if cond == 0. Returns v.
func (v *gf) Select(a, b *gf, cond int) *gf {
	m := uint64(cond) * ^uint64(0)
	v[0] = (m & a[0]) | (^m & b[0])
	v[1] = (m & a[1]) | (^m & b[1])
	v[2] = (m & a[2]) | (^m & b[2])
	v[3] = (m & a[3]) | (^m & b[3])
	v[4] = (m & a[4]) | (^m & b[4])
	return v
}

// Swap v and a if cond == 1, leave both unchanged if cond == 0.
func (v *gf) Swap(a *gf, cond int) {
	m := uint64(cond) * ^uint64(0)
	for i := 0; i < 5; i++ {
		t := m & (v[i] ^ a[i])
		v[i] ^= t
		a[i] ^= t
	}
}

// Set v to -a if cond == 1, a if cond == 0. Returns v.
func (v *gf) CondNeg(a *gf, cond int) *gf {
	var t gf
	t.Neg(a)
	return v.Select(&t, a, cond)
}

// Set v to |a| (the representative with even canonical encoding).
// Returns v.
func (v *gf) Abs(a *gf) *gf {
	return v.CondNeg(a, a.IsNegative())
}

// Set v to 1/a mod p, computed as a^(p-2). Since p-2 = 8*(2^252-3)+3,
// the exponentiation reuses the (p-5)/8 chain: three squarings of
// a^(2^252-3), times a^3. The inverse of zero is zero; callers that
// must report NonInvertible check IsZero first.
func (v *gf) Invert(a *gf) *gf {
	pow, cubed := gf_pow22523(a)
	pow.Square(&pow)
	pow.Square(&pow)
	pow.Square(&pow)
	return v.Mul(&pow, &cubed)
}

// Invert a batch of field elements in place using Montgomery's trick:
// one full inversion plus three multiplications per nonzero entry. The relative order
// of elements is preserved. Zero entries are passed over: they never
// enter the running product and their output slot is left untouched.
func gf_invert_batch(xs []gf) {
	n := len(xs)
	if n == 0 {
		return
	}

	// Prefix products over the nonzero entries.
	scratch := make([]gf, n)
	var acc gf
	acc.One()
	for i := 0; i < n; i++ {
		scratch[i] = acc
		if xs[i].IsZero() == 0 {
			acc.Mul(&acc, &xs[i])
		}
	}

	var inv gf
	inv.Invert(&acc)

	for i := n - 1; i >= 0; i-- {
		if xs[i].IsZero() == 0 {
			var t gf
			t.Mul(&inv, &scratch[i])
			inv.Mul(&inv, &xs[i])
			xs[i] = t
		}
	}
}

// Compute a^((p-5)/8) = a^(2^252-3) together with a^3. Both values
// come out of one shared addition chain; the first is the core of
// square-root extraction, field inversion and the Montgomery ladder's
// final division.
func gf_pow22523(a *gf) (pow, cubed gf) {
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t gf

	z2.Square(a)        // 2
	cubed.Mul(&z2, a)   // 3
	t.Square(&z2)       // 4
	t.Square(&t)        // 8
	z9.Mul(&t, a)       // 9
	z11.Mul(&z9, &z2)   // 11
	t.Square(&z11)      // 22
	z2_5_0.Mul(&t, &z9) // 31 = 2^5 - 2^0

	t.Square(&z2_5_0)
	for i := 0; i < 4; i++ {
		t.Square(&t)
	}
	z2_10_0.Mul(&t, &z2_5_0)

	t.Square(&z2_10_0)
	for i := 0; i < 9; i++ {
		t.Square(&t)
	}
	z2_20_0.Mul(&t, &z2_10_0)

	t.Square(&z2_20_0)
	for i := 0; i < 19; i++ {
		t.Square(&t)
	}
	t.Mul(&t, &z2_20_0)

	t.Square(&t)
	for i := 0; i < 9; i++ {
		t.Square(&t)
	}
	z2_50_0.Mul(&t, &z2_10_0)

	t.Square(&z2_50_0)
	for i := 0; i < 49; i++ {
		t.Square(&t)
	}
	z2_100_0.Mul(&t, &z2_50_0)

	t.Square(&z2_100_0)
	for i := 0; i < 99; i++ {
		t.Square(&t)
	}
	t.Mul(&t, &z2_100_0)

	t.Square(&t)
	for i := 0; i < 49; i++ {
		t.Square(&t)
	}
	t.Mul(&t, &z2_50_0) // 2^250 - 2^0

	t.Square(&t)
	t.Square(&t) // 2^252 - 2^2

	pow.Mul(&t, a) // 2^252 - 3
	return pow, cubed
}

// Square-root of a ratio, per the uv_ratio construction shared by
// point decompression (RFC 8032, 5.1.3) and the ristretto255 inverse
// square root:
//
//	x = u * v^3 * (u * v^7)^((p-5)/8)
//
// If v*x^2 == u, the root is x; if v*x^2 == -u, the root is x*sqrt(-1).
// Otherwise u/v is not a square and no root exists; the returned value
// is then a square root of sqrt(-1)*u/v: x*sqrt(-1) when
// v*x^2 == -u*sqrt(-1), x when v*x^2 == u*sqrt(-1). Every outcome costs
// the same. The returned value is always non-negative. ok is 1 when
// the root is valid, 0 otherwise.
func (v *gf) SqrtRatio(u, w *gf) (ok int) {
	var w2, w3, w7, uw7, x, check, negU, negUI, xI gf

	w2.Square(w)
	w3.Mul(&w2, w)
	w7.Mul(&w3, &w3)
	w7.Mul(&w7, w)

	uw7.Mul(u, &w7)
	pow, _ := gf_pow22523(&uw7)
	x.Mul(u, &w3)
	x.Mul(&x, &pow)

	check.Square(&x)
	check.Mul(&check, w)

	negU.Neg(u)
	negUI.Mul(&negU, &gfSqrtM1)
	xI.Mul(&x, &gfSqrtM1)

	correct := check.Equal(u)
	flipped := check.Equal(&negU)
	noRoot := check.Equal(&negUI)

	// Same work on every path; only the selection depends on the
	// outcome.
	x.Select(&xI, &x, flipped|noRoot)
	v.Abs(&x)

	return correct | flipped
}

// Set v to 1/sqrt(a), valid only when a is a nonzero square. Returns 1
// on success, 0 if a is not a square (or zero).
func (v *gf) InvSqrt(a *gf) (ok int) {
	return v.SqrtRatio(&gfOne, a)
}
