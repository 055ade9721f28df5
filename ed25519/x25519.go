package ed25519

import (
	"crypto/sha512"
)

// X25519 Diffie-Hellman over the Montgomery form of the curve
// (RFC 7748). Only u coordinates travel: the ladder below never needs
// v, and inputs that are not on the curve at all simply flow through
// the arithmetic (that is the "twist security" of curve25519).

// X25519Basepoint is the canonical generator u = 9.
var X25519Basepoint = []byte{
	9, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Clamp a 32-byte scalar per RFC 7748: clear the low three bits (kill
// the cofactor), clear the top bit, set bit 254 (fixed ladder
// length).
func x25519_clamp(k []byte) [32]byte {
	var e [32]byte
	copy(e[:], k)
	e[0] &= 248
	e[31] &= 127
	e[31] |= 64
	return e
}

// The Montgomery ladder: 255 iterations over bits 254..0 of the
// clamped scalar. Each iteration performs the same field operations
// in the same order; the only data-dependent action is the
// conditional swap, which is a branchless masked exchange. x1 is the
// input u coordinate; (x2:z2) and (x3:z3) track the two ladder arms.
func montgomery_ladder(scalar *[32]byte, u *gf) gf {
	var x1, x2, z2, x3, z3 gf
	x1.Set(u)
	x2.One()
	z2.Zero()
	x3.Set(u)
	z3.One()

	swap := 0
	for t := 254; t >= 0; t-- {
		bit := int(scalar[t/8]>>(t%8)) & 1
		swap ^= bit
		x2.Swap(&x3, swap)
		z2.Swap(&z3, swap)
		swap = bit

		var a, aa, b, bb, e, c, d, da, cb gf
		a.Add(&x2, &z2)
		aa.Square(&a)
		b.Sub(&x2, &z2)
		bb.Square(&b)
		e.Sub(&aa, &bb)
		c.Add(&x3, &z3)
		d.Sub(&x3, &z3)
		da.Mul(&d, &a)
		cb.Mul(&c, &b)

		x3.Add(&da, &cb)
		x3.Square(&x3)
		z3.Sub(&da, &cb)
		z3.Square(&z3)
		z3.Mul(&z3, &x1)
		x2.Mul(&aa, &bb)
		z2.Mul32(&e, 121665)
		z2.Add(&z2, &aa)
		z2.Mul(&z2, &e)
	}
	x2.Swap(&x3, swap)
	z2.Swap(&z3, swap)

	// z2^(p-2) goes through the shared 2^252-3 power chain.
	z2.Invert(&z2)
	x2.Mul(&x2, &z2)
	return x2
}

// X25519 computes scalar * u and returns the resulting u coordinate
// as 32 bytes. The scalar is clamped before use; bit 255 of the u
// coordinate is masked off as RFC 7748 requires. An all-zero result
// means the peer's input was a small-order point and the "shared
// secret" contains no contribution from the scalar; that is rejected
// with ErrInvalidSharedSecret rather than handed to the caller.
func X25519(scalar, u []byte) ([]byte, error) {
	if len(scalar) != 32 || len(u) != 32 {
		return nil, ErrInvalidLength
	}

	e := x25519_clamp(scalar)
	var uu gf
	uu.SetBytes(u)

	x := montgomery_ladder(&e, &uu)

	out := x.Bytes()
	var zero [32]byte
	if ct_bytes_eq(out, zero[:]) == 1 {
		return nil, ErrInvalidSharedSecret
	}
	return out, nil
}

// X25519FromEd25519Seed derives the X25519 private key that
// corresponds to an Ed25519 seed: the clamped low half of
// SHA-512(seed). This lets one 32-byte secret serve both a signing
// identity and an ECDH role; the public montgomery key is then
// X25519(priv, X25519Basepoint).
func X25519FromEd25519Seed(seed []byte) ([]byte, error) {
	if len(seed) != SeedSize && len(seed) != 2*SeedSize {
		return nil, ErrInvalidLength
	}
	h := sha512.Sum512(seed[:SeedSize])
	e := x25519_clamp(h[:32])
	return e[:], nil
}
