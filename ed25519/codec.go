package ed25519

// Compressed point encoding and decoding, RFC 8032, section 5.1.3.
// The 32-byte form is the little-endian y coordinate with the sign of
// x (its low bit) stored in the top bit of the last byte.

// Encode p into dst.
func (p *Point) BytesInto(dst *[32]byte) {
	p.y.BytesInto(dst)
	dst[31] |= byte(p.x.IsNegative()) << 7
}

// Encode p into a fresh 32-byte slice.
func (p *Point) Bytes() []byte {
	var buf [32]byte
	p.BytesInto(&buf)
	return buf[:]
}

// DecodePoint decodes a canonical 32-byte compressed point. The y
// coordinate must be in [0, p): re-encodings of the same point
// compare bytewise equal. For the permissive ZIP215 rules used during
// signature verification, see the non-strict decoder.
func DecodePoint(src []byte) (*Point, error) {
	return decode_point(src, true)
}

func decode_point(src []byte, strict bool) (*Point, error) {
	if len(src) != 32 {
		return nil, ErrInvalidLength
	}

	var yb [32]byte
	copy(yb[:], src)
	sign := int(yb[31] >> 7)
	yb[31] &= 0x7F

	var p Point
	p.y.SetBytes(yb[:])
	p.window = defaultWindow

	if strict {
		// SetBytes reduces mod p; a non-canonical y (p..2^255-1)
		// would silently alias a smaller value, so reject any input
		// that does not round-trip.
		var chk [32]byte
		p.y.BytesInto(&chk)
		if ct_bytes_eq(chk[:], yb[:]) != 1 {
			return nil, ErrInvalidPoint
		}
	}

	// Recover x from x^2 = (y^2 - 1) / (d*y^2 + 1).
	var y2, u, v gf
	y2.Square(&p.y)
	u.Sub(&y2, &gfOne)
	v.Mul(&y2, &gfD)
	v.Add(&v, &gfOne)
	if p.x.SqrtRatio(&u, &v) != 1 {
		return nil, ErrInvalidPoint
	}

	// The recovered root is even; apply the encoded sign. "Negative
	// zero" is not a valid encoding.
	if sign == 1 {
		if p.x.IsZero() == 1 {
			return nil, ErrInvalidPoint
		}
		p.x.Neg(&p.x)
	}

	return &p, nil
}
