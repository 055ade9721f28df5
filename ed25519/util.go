package ed25519

import (
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
)

// Byte-level helpers shared across the package.

func le64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

func put_le64(b []byte, v uint64) {
	binary.LittleEndian.PutUint64(b, v)
}

// Constant-time byte equality; returns 1 if equal, 0 otherwise. The
// slices must have the same length.
func ct_bytes_eq(a, b []byte) int {
	return subtle.ConstantTimeCompare(a, b)
}

// Constant-time equality of two small non-negative integers (below
// 2^31); returns 1 if equal, 0 otherwise.
func ct_eq_int(a, b int) int {
	x := uint32(a ^ b)
	return int(1 - ((x | -x) >> 31))
}

// Decode a hex string into bytes. Not constant-time; used for fixed
// constants and test material, never on secrets.
func hex_to_bytes(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	return b, nil
}

// Like hex_to_bytes but for values that are known-good at build time.
func must_hex(s string) []byte {
	b, err := hex_to_bytes(s)
	if err != nil {
		panic("ed25519: bad built-in constant")
	}
	return b
}

// Encode bytes as a lowercase hex string.
func bytes_to_hex(b []byte) string {
	return hex.EncodeToString(b)
}
