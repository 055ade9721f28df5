package ed25519

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexHelpers(t *testing.T) {
	b, err := hex_to_bytes("00ff10")
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xFF, 0x10}, b)
	assert.Equal(t, "00ff10", bytes_to_hex(b))

	_, err = hex_to_bytes("zz")
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	_, err = hex_to_bytes("abc")
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestLittleEndianHelpers(t *testing.T) {
	buf := make([]byte, 8)
	put_le64(buf, 0x0102030405060708)
	assert.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, buf)
	assert.Equal(t, uint64(0x0102030405060708), le64(buf))
}

func TestConstantTimeEq(t *testing.T) {
	a := []byte{1, 2, 3}
	assert.Equal(t, 1, ct_bytes_eq(a, []byte{1, 2, 3}))
	assert.Equal(t, 0, ct_bytes_eq(a, []byte{1, 2, 4}))
}
