package ed25519

// Sign produces a deterministic Ed25519 signature of msg under the
// given seed (RFC 8032, section 5.1.6): with (a, prefix) the expanded
// key,
//
//	r = SHA-512(prefix || msg) mod L
//	R = r*B
//	k = SHA-512(enc(R) || enc(A) || msg) mod L
//	s = r + k*a mod L
//
// and the signature is enc(R) || le32(s), 64 bytes. Signing the same
// (seed, msg) twice yields identical bytes; there is no randomness to
// get wrong. Both scalar multiplications run on the constant-time
// path.
func Sign(seed, msg []byte) ([]byte, error) {
	a, prefix, err := expand_seed(seed)
	if err != nil {
		return nil, err
	}
	A, err := Base().Multiply(a.Bytes())
	if err != nil {
		return nil, err
	}

	r := sha512_modq_le(prefix[:], msg)
	R, err := Base().Multiply(r.Bytes())
	if err != nil {
		return nil, err
	}

	rb := R.Bytes()
	k := sha512_modq_le(rb, A.Bytes(), msg)

	var s sc
	s.MulAdd(&k, &a, &r)

	sig := make([]byte, SignatureSize)
	copy(sig[:32], rb)
	copy(sig[32:], s.Bytes())
	return sig, nil
}
