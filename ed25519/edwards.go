package ed25519

// Group operations on the twisted Edwards curve
//
//	-x^2 + y^2 = 1 + d*x^2*y^2  over GF(2^255-19)
//
// with d = -121665/121666. Points are carried either in affine form
// (the stable, encodable representation) or in extended projective
// coordinates (X:Y:Z:T) with x = X/Z, y = Y/Z, T = X*Y/Z, which admit
// complete, unified addition formulas (Hisil-Wong-Carter-Dawson 2008,
// a = -1 variants).

// An affine curve point. The zero value is not a valid point; obtain
// points from decoding, from Base(), or from arithmetic. A point used
// as the base of repeated scalar multiplications carries a window-size
// hint for its precomputation table (default 8).
type Point struct {
	x, y   gf
	window int
}

// A point in extended projective coordinates. Invariants: Z != 0 and
// X*Y = Z*T.
type ExtendedPoint struct {
	x, y, z, t gf
}

// Cofactor is the ratio between the full curve order and the prime
// subgroup order L.
const Cofactor = 8

var epIdentity = ExtendedPoint{gfZero, gfOne, gfOne, gfZero}

// The standard base point (x, 4/5) with x even, decoded once from its
// canonical 32-byte form; going through the decoder validates the
// curve equation on the hard-coded constant.
var basePoint Point

// Canonical encoding of the base point: y = 4/5, sign bit clear.
var base_point_enc = must_hex(
	"5866666666666666666666666666666666666666666666666666666666666666")

// Encodings of the eight 8-torsion points, in subgroup order: entry k
// is k*T8 for a fixed order-8 generator T8. Entry 0 is the identity.
// Useful as test vectors and for small-subgroup checks.
var EightTorsion = [8][]byte{
	must_hex("0100000000000000000000000000000000000000000000000000000000000000"),
	must_hex("c7176a703d4dd84fba3c0b760d10670f2a2053fa2c39ccc64ec7fd7792ac037a"),
	must_hex("0000000000000000000000000000000000000000000000000000000000000080"),
	must_hex("26e8958fc2b227b045c3f489f2ef98f0d5dfac05d3c63339b13802886d53fc05"),
	must_hex("ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f"),
	must_hex("26e8958fc2b227b045c3f489f2ef98f0d5dfac05d3c63339b13802886d53fc85"),
	must_hex("0000000000000000000000000000000000000000000000000000000000000000"),
	must_hex("c7176a703d4dd84fba3c0b760d10670f2a2053fa2c39ccc64ec7fd7792ac03fa"),
}

func init() {
	p, err := DecodePoint(base_point_enc)
	if err != nil {
		panic("ed25519: base point does not decode")
	}
	basePoint = *p
}

// Base returns the standard base point B.
func Base() *Point {
	b := basePoint
	return &b
}

// Identity returns the neutral element (0, 1) in extended form.
func Identity() *ExtendedPoint {
	e := epIdentity
	return &e
}

// Set p to q. Returns p.
func (p *ExtendedPoint) Set(q *ExtendedPoint) *ExtendedPoint {
	*p = *q
	return p
}

// Lift an affine point to extended coordinates (Z = 1). Returns p.
func (p *ExtendedPoint) FromAffine(a *Point) *ExtendedPoint {
	p.x.Set(&a.x)
	p.y.Set(&a.y)
	p.z.One()
	p.t.Mul(&a.x, &a.y)
	return p
}

// Set p to q + r using the unified a = -1 addition (add-2008-hwcd-3,
// 8M). The formula has no exceptional cases: it is valid for doubling
// and for adding the identity, which keeps the constant-time
// multiplication ladder free of special cases. Returns p.
func (p *ExtendedPoint) Add(q, r *ExtendedPoint) *ExtendedPoint {
	var a, b, c, d, e, f, g, h, t1, t2 gf

	t1.Sub(&q.y, &q.x)
	t2.Sub(&r.y, &r.x)
	a.Mul(&t1, &t2) // A = (Y1-X1)*(Y2-X2)
	t1.Add(&q.y, &q.x)
	t2.Add(&r.y, &r.x)
	b.Mul(&t1, &t2) // B = (Y1+X1)*(Y2+X2)
	c.Mul(&q.t, &r.t)
	c.Mul(&c, &gf2D) // C = 2d*T1*T2
	d.Mul(&q.z, &r.z)
	d.Add(&d, &d) // D = 2*Z1*Z2
	e.Sub(&b, &a)
	f.Sub(&d, &c)
	g.Add(&d, &c)
	h.Add(&b, &a)

	p.x.Mul(&e, &f)
	p.y.Mul(&g, &h)
	p.t.Mul(&e, &h)
	p.z.Mul(&f, &g)
	return p
}

// Set p to q - r. Returns p.
func (p *ExtendedPoint) Sub(q, r *ExtendedPoint) *ExtendedPoint {
	var nr ExtendedPoint
	nr.Neg(r)
	return p.Add(q, &nr)
}

// Set p to 2*q using the dedicated a = -1 doubling (dbl-2008-hwcd).
// Returns p.
func (p *ExtendedPoint) Double(q *ExtendedPoint) *ExtendedPoint {
	var a, b, c, d, e, f, g, h, t0 gf

	a.Square(&q.x)
	b.Square(&q.y)
	c.Square(&q.z)
	c.Add(&c, &c) // C = 2*Z1^2
	d.Neg(&a)     // D = a*A, a = -1

	t0.Add(&q.x, &q.y)
	t0.Square(&t0)
	e.Sub(&t0, &a)
	e.Sub(&e, &b) // E = (X1+Y1)^2 - A - B

	g.Add(&d, &b)
	f.Sub(&g, &c)
	h.Sub(&d, &b)

	p.x.Mul(&e, &f)
	p.y.Mul(&g, &h)
	p.t.Mul(&e, &h)
	p.z.Mul(&f, &g)
	return p
}

// Set p to -q, i.e. (-X, Y, Z, -T). Returns p.
func (p *ExtendedPoint) Neg(q *ExtendedPoint) *ExtendedPoint {
	p.x.Neg(&q.x)
	p.y.Set(&q.y)
	p.z.Set(&q.z)
	p.t.Neg(&q.t)
	return p
}

// Set p to q if cond == 1, leave p unchanged if cond == 0. Branchless.
func (p *ExtendedPoint) CondSet(q *ExtendedPoint, cond int) {
	p.x.Select(&q.x, &p.x, cond)
	p.y.Select(&q.y, &p.y, cond)
	p.z.Select(&q.z, &p.z, cond)
	p.t.Select(&q.t, &p.t, cond)
}

// Swap p and q if cond == 1, leave both unchanged if cond == 0.
// Branchless.
func (p *ExtendedPoint) CondSwap(q *ExtendedPoint, cond int) {
	p.x.Swap(&q.x, cond)
	p.y.Swap(&q.y, cond)
	p.z.Swap(&q.z, cond)
	p.t.Swap(&q.t, cond)
}

// Set p to -p if cond == 1, leave p unchanged if cond == 0.
// Branchless.
func (p *ExtendedPoint) CondNeg(cond int) {
	p.x.CondNeg(&p.x, cond)
	p.t.CondNeg(&p.t, cond)
}

// Set p to 8*q. Returns p.
func (p *ExtendedPoint) MulByCofactor(q *ExtendedPoint) *ExtendedPoint {
	p.Double(q)
	p.Double(p)
	return p.Double(p)
}

// Returns 1 if p and q represent the same affine point. Equality is
// projective: X1*Z2 == X2*Z1 and Y1*Z2 == Y2*Z1, so no inversion is
// needed.
func (p *ExtendedPoint) Equal(q *ExtendedPoint) int {
	var t1, t2, t3, t4 gf
	t1.Mul(&p.x, &q.z)
	t2.Mul(&q.x, &p.z)
	t3.Mul(&p.y, &q.z)
	t4.Mul(&q.y, &p.z)
	return t1.Equal(&t2) & t3.Equal(&t4)
}

// IsIdentity returns 1 if p is the neutral element.
func (p *ExtendedPoint) IsIdentity() int {
	return p.Equal(&epIdentity)
}

// Convert p to affine coordinates, dividing by Z. The Z != 0 invariant
// makes the inversion total, but a corrupted point is still reported
// rather than silently mapped through 1/0 = 0.
func (p *ExtendedPoint) ToAffine() (*Point, error) {
	if p.z.IsZero() == 1 {
		return nil, ErrNonInvertible
	}
	var zinv gf
	zinv.Invert(&p.z)
	return p.to_affine_with_zinv(&zinv), nil
}

// Convert p to affine using a caller-supplied 1/Z (batch use).
func (p *ExtendedPoint) to_affine_with_zinv(zinv *gf) *Point {
	var a Point
	a.x.Mul(&p.x, zinv)
	a.y.Mul(&p.y, zinv)
	a.window = defaultWindow
	return &a
}

// Normalize a batch of extended points to Z = 1 in place. The Z
// coordinates are inverted together (one field inversion total), each
// point converted to affine and re-lifted. Used both to amortize
// precomputation tables and to give the multiplication ladder a final
// conversion whose cost does not depend on which accumulator carries
// the result.
func normalize_batch(ps []ExtendedPoint) {
	zs := make([]gf, len(ps))
	for i := range ps {
		zs[i] = ps[i].z
	}
	gf_invert_batch(zs)
	for i := range ps {
		a := ps[i].to_affine_with_zinv(&zs[i])
		ps[i].FromAffine(a)
	}
}

// Affine accessors and arithmetic. Affine points are value-like;
// operations go through extended coordinates.

// Returns 1 if p and q are the same point.
func (p *Point) Equal(q *Point) int {
	return p.x.Equal(&q.x) & p.y.Equal(&q.y)
}

// Negate returns (-x, y).
func (p *Point) Negate() *Point {
	var n Point
	n.x.Neg(&p.x)
	n.y.Set(&p.y)
	n.window = p.window
	return &n
}

// Add returns p + q.
func (p *Point) Add(q *Point) *Point {
	var ep, eq ExtendedPoint
	ep.FromAffine(p)
	eq.FromAffine(q)
	ep.Add(&ep, &eq)
	a, _ := ep.ToAffine()
	return a
}

// Extended returns p lifted to extended coordinates.
func (p *Point) Extended() *ExtendedPoint {
	var e ExtendedPoint
	return e.FromAffine(p)
}

// Bytes encodes p in the compressed affine form.
func (p *ExtendedPoint) Bytes() ([]byte, error) {
	a, err := p.ToAffine()
	if err != nil {
		return nil, err
	}
	return a.Bytes(), nil
}
