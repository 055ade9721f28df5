package ed25519

import (
	"sync"
)

// Scalar multiplication.
//
// The constant-time path uses a windowed signed-digit (wNAF)
// decomposition against a table of precomputed multiples of the base.
// Four details keep both the operation count and the memory-access
// pattern independent of the scalar:
//
//   - signed digits: a window value above 2^(w-1) borrows from the
//     next window, so every nonzero digit maps to exactly one table
//     entry, possibly negated;
//   - table entries are picked by scanning the entire window group
//     with masked selection, never by indexing with the digit, and
//     the digit's sign is applied as a masked negation;
//   - a decoy accumulator absorbs one group addition for every zero
//     digit (routed by a masked swap), so zero windows cost the same
//     as nonzero ones;
//   - the result and the decoy are batch-normalized together, so the
//     final inversion work does not depend on which accumulator did
//     the real work.
//
// The variable-time path is a plain double-and-add for public inputs.

const defaultWindow = 8

// A precomputation table for one affine base: windows*2^(w-1) points,
// where group k holds {1, 2, ..., 2^(w-1)} times 2^(k*w)*base, all
// normalized to Z = 1. Entries are pure functions of (base, w);
// correctness never depends on cache hits, only speed does.
type precomp struct {
	window int
	points []ExtendedPoint
}

var precomp_cache = struct {
	sync.Mutex
	m map[[32]byte]*precomp
}{m: make(map[[32]byte]*precomp)}

func valid_window(w int) bool {
	switch w {
	case 2, 4, 8, 16:
		return true
	}
	return false
}

// SetWindowSize fixes the precomputation window used when p is the
// base of scalar multiplications, and drops any table built for a
// different width. Valid widths are 2, 4, 8 and 16 (256 must split
// into whole windows).
func (p *Point) SetWindowSize(w int) error {
	if !valid_window(w) {
		return ErrInvalidWindow
	}
	p.window = w
	var key [32]byte
	p.BytesInto(&key)
	precomp_cache.Lock()
	delete(precomp_cache.m, key)
	precomp_cache.Unlock()
	return nil
}

// Build the precomputation table for a base point and window width.
func build_precomp(base *Point, w int) []ExtendedPoint {
	windows := 1 + 256/w
	wsize := 1 << (w - 1)

	points := make([]ExtendedPoint, 0, windows*wsize)
	p := base.Extended()
	for k := 0; k < windows; k++ {
		b := *p
		points = append(points, b)
		for i := 1; i < wsize; i++ {
			b.Add(&b, p)
			points = append(points, b)
		}
		// b is now 2^(w-1) * 2^(k*w) * base; one doubling moves to
		// the next window's unit multiple.
		p.Double(&b)
	}
	normalize_batch(points)
	return points
}

// Fetch (building if needed) the table for p at its current window
// size. The cache is keyed by the canonical encoding of the base, so
// equal points share one entry regardless of provenance. The build
// happens under the lock: a concurrent caller either finds no entry
// or a complete one, never a partial table.
func lookup_precomp(p *Point) ([]ExtendedPoint, int, error) {
	w := p.window
	if w == 0 {
		w = defaultWindow
	}
	if !valid_window(w) {
		return nil, 0, ErrInvalidWindow
	}

	var key [32]byte
	p.BytesInto(&key)

	precomp_cache.Lock()
	defer precomp_cache.Unlock()
	if e, ok := precomp_cache.m[key]; ok && e.window == w {
		return e.points, w, nil
	}
	pts := build_precomp(p, w)
	precomp_cache.m[key] = &precomp{window: w, points: pts}
	return pts, w, nil
}

// Read w bits of the scalar starting at bit position pos. The window
// widths divide 8 or are 16, so a window never spans more than two
// bytes.
func window_bits(nb *[32]byte, pos, w int) int {
	v := int(nb[pos/8]) >> (pos % 8)
	if w == 16 {
		v |= int(nb[pos/8+1]) << 8
	}
	return v & ((1 << w) - 1)
}

// Signed-digit decomposition of the scalar, branchless: a window value
// above 2^(w-1) becomes negative and lends 1 to the next window, so
// digits end up in [-2^(w-1), 2^(w-1)]. Only the public values k and w
// steer control flow; the borrow is computed by arithmetic, not by
// comparison.
func wnaf_digits(nb *[32]byte, w int) []int {
	windows := 1 + 256/w
	wsize := 1 << (w - 1)

	digits := make([]int, windows)
	carry := 0
	for k := 0; k < windows; k++ {
		wb := carry
		if k < 256/w {
			wb += window_bits(nb, k*w, w)
		}
		borrow := (wb + wsize - 1) >> w // 1 iff wb > 2^(w-1)
		wb -= borrow << w
		carry = borrow
		digits[k] = wb
	}
	return digits
}

// Operation tally for the multiplication core. The tests use it to
// check that the amount of group-level work is the same for every
// scalar; production callers pass nil. tr is public data, so the nil
// checks do not depend on the scalar.
type wnaf_trace struct {
	selects, negs, swaps, adds int
}

// Core wNAF multiplication. nb is the canonical little-endian scalar,
// pre the table for (base, w). Returns the result in extended form
// with Z = 1.
//
// Nothing in the loop branches on, or indexes memory by, digit
// values: every window scans its full table group with masked
// selection, applies one masked negation, and issues exactly one
// group addition. The conditional swap routes that addition into the
// decoy accumulator on zero digits (the decoy absorbs the group's
// unit entry, negated on odd windows so its sum does not drift toward
// a recognizable multiple of the base).
func wnaf_mul(pre []ExtendedPoint, w int, nb *[32]byte) *ExtendedPoint {
	return wnaf_mul_traced(pre, w, nb, nil)
}

func wnaf_mul_traced(pre []ExtendedPoint, w int, nb *[32]byte, tr *wnaf_trace) *ExtendedPoint {
	wsize := 1 << (w - 1)
	digits := wnaf_digits(nb, w)

	acc := epIdentity
	decoy := epIdentity

	for k, wb := range digits {
		// Branchless sign, magnitude and zero test of the digit.
		neg := int(uint32(wb) >> 31)
		mag := (wb ^ -neg) + neg
		zero := ct_eq_int(mag, 0)

		// Scan the whole window group, keeping entry mag-1 with
		// masked selection. A zero digit (and digit 1) keeps the
		// unit entry, which doubles as the decoy.
		offset := k * wsize
		t := pre[offset]
		for j := 2; j <= wsize; j++ {
			t.CondSet(&pre[offset+j-1], ct_eq_int(j, mag))
			if tr != nil {
				tr.selects++
			}
		}

		// Negate for negative digits; for the decoy, on odd windows.
		flip := (zero & (k & 1)) | ((1 - zero) & neg)
		t.CondNeg(flip)
		if tr != nil {
			tr.negs++
		}

		// One addition per window: swap the decoy into the live slot
		// for zero digits, add, swap back.
		acc.CondSwap(&decoy, zero)
		acc.Add(&acc, &t)
		acc.CondSwap(&decoy, zero)
		if tr != nil {
			tr.swaps += 2
			tr.adds++
		}
	}

	// Normalize result and decoy together: one shared batch inversion
	// whichever accumulator holds the answer.
	pair := [2]ExtendedPoint{acc, decoy}
	normalize_batch(pair[:])
	out := pair[0]
	return &out
}

// Multiply computes scalar*p in constant time: the work done and the
// memory locations touched depend on the window width and table size,
// never on the scalar's digits (see wnaf_mul). The scalar is 32
// little-endian bytes and must be in (0, L): anything else is a
// caller bug reported as ErrScalarOutOfRange (or ErrInvalidLength).
// The precomputation table for p is built on first use and reused for
// subsequent calls with the same base.
func (p *Point) Multiply(scalar []byte) (*Point, error) {
	nb, err := normalize_scalar(scalar, true)
	if err != nil {
		return nil, err
	}
	pre, w, err := lookup_precomp(p)
	if err != nil {
		return nil, err
	}
	e := wnaf_mul(pre, w, &nb)
	return e.to_affine_with_zinv(&gfOne), nil
}

// MultiplyUnsafe computes scalar*p in variable time: branches and
// table indices depend on scalar bits. It accepts any 256-bit scalar
// (not reduced modulo L) and must only ever see public inputs, such
// as during signature verification.
func (p *ExtendedPoint) MultiplyUnsafe(scalar []byte) (*ExtendedPoint, error) {
	nb, err := normalize_scalar(scalar, false)
	if err != nil {
		return nil, err
	}

	// Multiplying a non-generator base by 1 is a copy. Only public
	// inputs reach this path, so the shortcut leaks nothing useful.
	if is_one_le(&nb) && p.Equal(basePoint.Extended()) != 1 {
		out := *p
		return &out, nil
	}

	acc := epIdentity
	for i := 255; i >= 0; i-- {
		acc.Double(&acc)
		if (nb[i/8]>>(i%8))&1 == 1 {
			acc.Add(&acc, p)
		}
	}
	out := acc
	return &out, nil
}

func is_one_le(nb *[32]byte) bool {
	if nb[0] != 1 {
		return false
	}
	for _, b := range nb[1:] {
		if b != 0 {
			return false
		}
	}
	return true
}
