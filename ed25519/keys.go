package ed25519

import (
	"crypto/rand"
	"crypto/sha512"
	"io"
)

const (
	// SeedSize is the size of an Ed25519 private seed.
	SeedSize = 32

	// PublicKeySize is the size of a compressed public key.
	PublicKeySize = 32

	// SignatureSize is the size of a signature (R followed by s).
	SignatureSize = 64
)

// Key expansion per RFC 8032, section 5.1.5: the seed is hashed with
// SHA-512; the low half is clamped and becomes the secret scalar, the
// high half is the deterministic-nonce prefix.
//
// A 64-byte input is accepted as the common seed-then-public-key
// private key layout of other libraries; only the first 32 bytes are
// the seed.
func expand_seed(seed []byte) (a sc, prefix [32]byte, err error) {
	if len(seed) != SeedSize && len(seed) != 2*SeedSize {
		return a, prefix, ErrInvalidLength
	}
	h := sha512.Sum512(seed[:SeedSize])

	var head [32]byte
	copy(head[:], h[:32])
	head[0] &= 0xF8
	head[31] &= 0x7F
	head[31] |= 0x40

	a.SetBytesReduce(head[:])
	copy(prefix[:], h[32:])
	return a, prefix, nil
}

// PublicKey derives the 32-byte public key A = a*B for the given
// seed.
func PublicKey(seed []byte) ([]byte, error) {
	a, _, err := expand_seed(seed)
	if err != nil {
		return nil, err
	}
	A, err := Base().Multiply(a.Bytes())
	if err != nil {
		return nil, err
	}
	return A.Bytes(), nil
}

// GenerateKey creates a new key pair, returning the private seed and
// the public key. The random source MUST be cryptographically secure;
// if rng is nil, the operating system's RNG is used (through
// crypto/rand.Reader).
func GenerateKey(rng io.Reader) (seed, public []byte, err error) {
	if rng == nil {
		rng = rand.Reader
	}
	seed = make([]byte, SeedSize)
	if _, err = io.ReadFull(rng, seed); err != nil {
		return nil, nil, err
	}
	public, err = PublicKey(seed)
	if err != nil {
		return nil, nil, err
	}
	return seed, public, nil
}
