package ed25519

import (
	"errors"
)

// Error kinds surfaced by this package. Each failure condition maps to
// exactly one of these sentinels so that callers can tell, with
// errors.Is, a malformed point from a malformed signature from an
// out-of-range scalar; the distinctions matter to protocols built on
// top. Verification itself never returns an error: it is a plain
// boolean.
var (
	// A byte-slice argument does not have the required length.
	ErrInvalidLength = errors.New("Invalid input length")

	// A 32-byte string does not decode to a curve point.
	ErrInvalidPoint = errors.New("Invalid point encoding")

	// A signature is structurally unusable (scalar part not in [0, L)).
	ErrInvalidSignature = errors.New("Invalid signature")

	// A byte string is not a canonical encoding (ristretto255 group
	// element, or malformed hex input).
	ErrInvalidEncoding = errors.New("Invalid encoding")

	// An X25519 exchange produced the all-zero shared secret
	// (non-contributory peer input).
	ErrInvalidSharedSecret = errors.New("Invalid shared secret")

	// A scalar is outside the range required by the operation.
	ErrScalarOutOfRange = errors.New("Scalar out of range")

	// A precomputation window size other than 2, 4, 8 or 16.
	ErrInvalidWindow = errors.New("Invalid window size")

	// Field inversion of zero.
	ErrNonInvertible = errors.New("Non-invertible field element")
)
