package byteconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBtoh(t *testing.T) {
	assert.Equal(t, "DEAD", Btoh([]byte{0xDE, 0xAD}, 4))
	assert.Equal(t, "EAD", Btoh([]byte{0xDE, 0xAD}, 3))
	assert.Equal(t, "0F", Btoh([]byte{0x0F}, 2))
	assert.Equal(t, "F", Btoh([]byte{0x0F}, 1))
}

func TestU16tob(t *testing.T) {
	assert.Equal(t, []byte{0x12, 0x34}, U16tob(0x1234))
	assert.Equal(t, []byte{0x00, 0x00}, U16tob(0))
}

func TestU16toh(t *testing.T) {
	assert.Equal(t, "0234", U16toh(0x234, 4))
	assert.Equal(t, "234", U16toh(0x234, 3))
	assert.Equal(t, "FFF", U16toh(0xFFF, 3))
}

func TestU8toh(t *testing.T) {
	assert.Equal(t, "A", U8toh(0x0A, 1))
	assert.Equal(t, "4A", U8toh(0x4A, 2))
	assert.Equal(t, "00", U8toh(0x00, 2))
}
