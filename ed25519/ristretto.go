package ed25519

// The ristretto255 prime-order group (CFRG draft), built as a
// quotient of the Edwards curve: each group element is a coset of
// four curve points (an even point plus the 4-torsion subgroup),
// represented here by one of them. Encoding and
// decoding pick out a canonical representative, which is what removes
// the cofactor pitfalls of raw Edwards points. Elements of this group
// and plain curve points must never be mixed; the API keeps the two
// types apart on purpose.

// RistrettoPoint is an element of the ristretto255 group. The zero
// value is not a valid element; obtain elements from decoding,
// RistrettoBase, RistrettoIdentity or FromUniformBytes.
type RistrettoPoint struct {
	e ExtendedPoint
}

// RistrettoBase returns the group's standard generator (the coset of
// the Edwards base point).
func RistrettoBase() *RistrettoPoint {
	return &RistrettoPoint{e: *basePoint.Extended()}
}

// RistrettoIdentity returns the neutral element.
func RistrettoIdentity() *RistrettoPoint {
	return &RistrettoPoint{e: epIdentity}
}

// DecodeRistretto decodes a canonical 32-byte element encoding.
// Exactly one encoding exists per element: non-canonical field
// values, negative s, and strings that do not hit the curve are all
// rejected with ErrInvalidEncoding.
func DecodeRistretto(src []byte) (*RistrettoPoint, error) {
	if len(src) != 32 {
		return nil, ErrInvalidLength
	}

	var s gf
	s.SetBytes(src)

	// The canonicality test is a bytewise round-trip of the raw
	// input, done before any arithmetic: SetBytes reduces silently,
	// so a non-canonical input would otherwise alias a valid smaller
	// value and decode without complaint.
	var chk [32]byte
	s.BytesInto(&chk)
	if ct_bytes_eq(chk[:], src) != 1 {
		return nil, ErrInvalidEncoding
	}
	if s.IsNegative() == 1 {
		return nil, ErrInvalidEncoding
	}

	var ss, u1, u2, u2sqr, v, t0, t1 gf
	ss.Square(&s)
	u1.Sub(&gfOne, &ss)
	u2.Add(&gfOne, &ss)
	u2sqr.Square(&u2)

	// v = -(d*u1^2) - u2^2
	t0.Square(&u1)
	t0.Mul(&t0, &gfD)
	v.Neg(&t0)
	v.Sub(&v, &u2sqr)

	var invsqrt gf
	t1.Mul(&v, &u2sqr)
	ok := invsqrt.InvSqrt(&t1)

	var denX, denY, x, y, t gf
	denX.Mul(&invsqrt, &u2)
	denY.Mul(&invsqrt, &denX)
	denY.Mul(&denY, &v)

	x.Mul(&s, &denX)
	x.Add(&x, &x)
	x.Abs(&x)
	y.Mul(&u1, &denY)
	t.Mul(&x, &y)

	if ok != 1 || t.IsNegative() == 1 || y.IsZero() == 1 {
		return nil, ErrInvalidEncoding
	}

	var p RistrettoPoint
	p.e.x.Set(&x)
	p.e.y.Set(&y)
	p.e.z.One()
	p.e.t.Set(&t)
	return &p, nil
}

// Encode p into dst. Every representative of a coset encodes to the
// same canonical 32 bytes.
func (p *RistrettoPoint) BytesInto(dst *[32]byte) {
	x0, y0, z0, t0 := &p.e.x, &p.e.y, &p.e.z, &p.e.t

	var u1, u2, t gf
	u1.Add(z0, y0)
	t.Sub(z0, y0)
	u1.Mul(&u1, &t)
	u2.Mul(x0, y0)

	var invsqrt gf
	t.Square(&u2)
	t.Mul(&t, &u1)
	invsqrt.InvSqrt(&t)

	var den1, den2, zInv gf
	den1.Mul(&invsqrt, &u1)
	den2.Mul(&invsqrt, &u2)
	zInv.Mul(&den1, &den2)
	zInv.Mul(&zInv, t0)

	var ix, iy, enchDen gf
	ix.Mul(x0, &gfSqrtM1)
	iy.Mul(y0, &gfSqrtM1)
	enchDen.Mul(&den1, &gfInvSqrtAMinusD)

	// Rotate by sqrt(-1) when t*zInv is negative: that selects the
	// even coset representative.
	t.Mul(t0, &zInv)
	rotate := t.IsNegative()

	var x, y, denInv gf
	x.Select(&iy, x0, rotate)
	y.Select(&ix, y0, rotate)
	denInv.Select(&enchDen, &den2, rotate)

	t.Mul(&x, &zInv)
	y.CondNeg(&y, t.IsNegative())

	var s gf
	s.Sub(z0, &y)
	s.Mul(&s, &denInv)
	s.Abs(&s)

	s.BytesInto(dst)
}

// Encode p into a fresh 32-byte slice.
func (p *RistrettoPoint) Bytes() []byte {
	var buf [32]byte
	p.BytesInto(&buf)
	return buf[:]
}

// The one-way map of the draft (an Elligator 2 variant): sends one
// field element to one group element. Not injective, and on its own
// not uniform; FromUniformBytes sums two independent applications.
func ristretto_map(t *gf) ExtendedPoint {
	var r, u, v, c, n, t2 gf

	t2.Square(t)
	r.Mul(&gfSqrtM1, &t2)

	u.Add(&r, &gfOne)
	u.Mul(&u, &gfOneMinusDSq)

	// v = (-1 - r*d) * (r + d)
	c.Neg(&gfOne)
	v.Mul(&r, &gfD)
	v.Sub(&c, &v)
	t2.Add(&r, &gfD)
	v.Mul(&v, &t2)

	var s gf
	wasSquare := s.SqrtRatio(&u, &v)

	var sPrime gf
	sPrime.Mul(&s, t)
	sPrime.Abs(&sPrime)
	sPrime.Neg(&sPrime)

	s.Select(&s, &sPrime, wasSquare)
	c.Select(&c, &r, wasSquare)

	// n = c * (r - 1) * (d-1)^2 - v
	n.Sub(&r, &gfOne)
	n.Mul(&n, &c)
	n.Mul(&n, &gfDMinusOneSq)
	n.Sub(&n, &v)

	var w0, w1, w2, w3 gf
	w0.Mul(&s, &v)
	w0.Add(&w0, &w0)
	w1.Mul(&n, &gfSqrtAdMinusOne)
	t2.Square(&s)
	w2.Sub(&gfOne, &t2)
	w3.Add(&gfOne, &t2)

	var e ExtendedPoint
	e.x.Mul(&w0, &w3)
	e.y.Mul(&w2, &w1)
	e.z.Mul(&w1, &w3)
	e.t.Mul(&w0, &w2)
	return e
}

// FromUniformBytes hashes 64 uniform bytes onto the group: the two
// 32-byte halves are reduced to field elements (bit 255 dropped),
// mapped independently, and the resulting points added. The sum of
// two independent maps is what makes the output distribution
// indistinguishable from uniform.
func FromUniformBytes(src []byte) (*RistrettoPoint, error) {
	if len(src) != 64 {
		return nil, ErrInvalidLength
	}

	var f0, f1 gf
	f0.SetBytes(src[:32])
	f1.SetBytes(src[32:])

	e0 := ristretto_map(&f0)
	e1 := ristretto_map(&f1)

	var p RistrettoPoint
	p.e.Add(&e0, &e1)
	return &p, nil
}

// Equal returns 1 if p and q are the same group element. Cosets make
// this a two-branch test: representatives differ by a 4-torsion point
// iff x1*y2 == y1*x2 or y1*y2 == x1*x2.
func (p *RistrettoPoint) Equal(q *RistrettoPoint) int {
	var x1y2, y1x2, y1y2, x1x2 gf
	x1y2.Mul(&p.e.x, &q.e.y)
	y1x2.Mul(&p.e.y, &q.e.x)
	y1y2.Mul(&p.e.y, &q.e.y)
	x1x2.Mul(&p.e.x, &q.e.x)
	return x1y2.Equal(&y1x2) | y1y2.Equal(&x1x2)
}

// Add returns p + q.
func (p *RistrettoPoint) Add(q *RistrettoPoint) *RistrettoPoint {
	var r RistrettoPoint
	r.e.Add(&p.e, &q.e)
	return &r
}

// Sub returns p - q.
func (p *RistrettoPoint) Sub(q *RistrettoPoint) *RistrettoPoint {
	var r RistrettoPoint
	r.e.Sub(&p.e, &q.e)
	return &r
}

// Neg returns -p.
func (p *RistrettoPoint) Neg() *RistrettoPoint {
	var r RistrettoPoint
	r.e.Neg(&p.e)
	return &r
}

// Multiply computes scalar*p in constant time. The scalar follows the
// same strict (0, L) contract as Point.Multiply.
func (p *RistrettoPoint) Multiply(scalar []byte) (*RistrettoPoint, error) {
	a, err := p.e.ToAffine()
	if err != nil {
		return nil, err
	}
	m, err := a.Multiply(scalar)
	if err != nil {
		return nil, err
	}
	return &RistrettoPoint{e: *m.Extended()}, nil
}

// MultiplyUnsafe computes scalar*p in variable time, for public
// scalars only.
func (p *RistrettoPoint) MultiplyUnsafe(scalar []byte) (*RistrettoPoint, error) {
	m, err := p.e.MultiplyUnsafe(scalar)
	if err != nil {
		return nil, err
	}
	return &RistrettoPoint{e: *m}, nil
}
