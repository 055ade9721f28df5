package ed25519

// Verify reports whether sig is a valid signature of msg under the
// 32-byte public key. Validity follows the ZIP215 rules, which make
// the predicate stable across implementations and usable in consensus
// settings:
//
//   - the encodings of R and A are decoded non-strictly: y
//     coordinates in [p, 2^255) are accepted;
//   - s must be canonical, 0 <= s < L (malleability rejection);
//   - the group equation is checked on the prime-order component
//     only: [8](s*B - R - k*A) == O.
//
// Without the cofactor multiplication, two verifiers could disagree
// about signatures involving small-subgroup components; with it, the
// predicate is closed under the 8-torsion coset.
//
// All inputs here are public, so the variable-time scalar
// multiplication path is used throughout. The function is total: any
// malformed input yields false.
func Verify(public, msg, sig []byte) bool {
	if len(public) != PublicKeySize {
		return false
	}
	A, err := decode_point(public, false)
	if err != nil {
		return false
	}

	R, s, err := decode_signature(sig)
	if err != nil {
		return false
	}

	// The challenge hashes the received encodings verbatim, not
	// re-encodings: a non-canonical R must keep its wire form here.
	k := sha512_modq_le(sig[:32], public, msg)

	sB, err := Base().Extended().MultiplyUnsafe(s.Bytes())
	if err != nil {
		return false
	}
	kA, err := A.Extended().MultiplyUnsafe(k.Bytes())
	if err != nil {
		return false
	}

	var c ExtendedPoint
	c.Sub(sB, R.Extended())
	c.Sub(&c, kA)
	c.MulByCofactor(&c)
	return c.IsIdentity() == 1
}

// Split a 64-byte signature into its point and scalar halves. The
// error kinds stay distinct: a wrong length, an R that is not a curve
// point (even under the permissive ZIP215 decoding), and an s outside
// [0, L) are three different caller mistakes.
func decode_signature(sig []byte) (*Point, *sc, error) {
	if len(sig) != SignatureSize {
		return nil, nil, ErrInvalidLength
	}
	r, err := decode_point(sig[:32], false)
	if err != nil {
		return nil, nil, ErrInvalidPoint
	}
	var s sc
	if s.SetCanonicalBytes(sig[32:]) != 1 {
		return nil, nil, ErrInvalidSignature
	}
	return r, &s, nil
}
