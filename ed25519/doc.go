// This package implements the Ed25519 signature scheme (RFC 8032)
// from the field up, together with the two constructions that share
// its arithmetic: X25519 Diffie-Hellman key exchange (RFC 7748) and
// the ristretto255 prime-order group (CFRG draft). Nothing is
// delegated to another curve library; the module carries its own
// GF(2^255-19) arithmetic (five 51-bit limbs), its own mod-L scalar
// arithmetic, and its own group logic in extended twisted-Edwards
// coordinates.
//
// Signing keys are 32-byte seeds ([SeedSize]); the 64-byte
// seed-then-public-key form used by some libraries is accepted
// wherever a seed is, with only the first 32 bytes read. A key pair
// is created with [GenerateKey] (pass nil to use the operating
// system's RNG), or the public key is derived from an existing seed
// with [PublicKey]. Signatures are produced with [Sign] and are fully
// deterministic: the same seed and message always give the same 64
// bytes.
//
// Verification ([Verify]) follows the ZIP215 validity rules rather
// than the strictest reading of RFC 8032: point encodings are
// accepted even when the y coordinate is not canonically reduced, the
// s component must be in [0, L), and the group equation is checked
// after multiplying by the cofactor 8. These rules are the ones under
// which all correctly produced signatures validate, verifiers cannot
// be made to disagree by torsion tricks, and batchable and serial
// verification agree; they are the right choice when signatures feed
// consensus decisions.
//
// [X25519] performs the RFC 7748 function on 32-byte scalars and u
// coordinates ([X25519Basepoint] is the generator), with the all-zero
// output rejected; [X25519FromEd25519Seed] derives the Montgomery
// private key matching an Ed25519 seed, for protocols that use one
// identity for both signing and key agreement.
//
// The ristretto255 group ([RistrettoPoint]) offers prime-order group
// elements with a single canonical 32-byte encoding and a 64-byte
// hash-to-group ([FromUniformBytes]); it is the safe substrate for
// discrete-log protocols that would otherwise trip over the Edwards
// cofactor.
//
// Lower-level curve operations are exposed through [Point] (affine)
// and [ExtendedPoint]: decoding ([DecodePoint]), the group law, and
// scalar multiplication. [Point.Multiply] is constant-time and keyed
// to a per-base precomputation table (window width adjustable with
// [Point.SetWindowSize]); [ExtendedPoint.MultiplyUnsafe] is
// variable-time and reserved for public inputs. Operations that touch
// secret material - signing, constant-time multiplication, the X25519
// ladder - avoid secret-dependent branches and memory indexing
// throughout: table lookups are full masked scans, signs are applied
// by masked negation, and the fixed-limb field arithmetic keeps the
// property down to the word level.
//
// Errors are reported as sentinel values ([ErrInvalidPoint],
// [ErrInvalidSignature], [ErrInvalidEncoding], ...) so callers can
// distinguish failure classes with errors.Is. [Verify] never returns
// an error: it is a total boolean predicate.
package ed25519
