package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferReadWriteRoundTrip(t *testing.T) {
	buf := NewBuffer(16)
	require.NoError(t, buf.WriteU8(0xAB))
	require.NoError(t, buf.WriteU16(0x1234))
	require.NoError(t, buf.WriteU32(0xDEADBEEF))
	assert.Equal(t, 7, buf.Pos())

	buf.pos = 0
	b, err := buf.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)

	u16, err := buf.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)

	u32, err := buf.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)
}

func TestBufferWritePastCapacityFails(t *testing.T) {
	buf := NewBuffer(1)
	require.NoError(t, buf.WriteU8(1))
	_, err := buf.ReadU8()
	assert.ErrorIs(t, err, ErrInvalidInput) // cursor sits at capacity, so reading fails too
	buf2 := NewBuffer(1)
	require.NoError(t, buf2.WriteU8(1))
	require.Error(t, buf2.WriteU8(2))
}

func TestBufferGetRangeOutOfBounds(t *testing.T) {
	buf := NewBuffer(4)
	_, err := buf.GetRange(2, 3)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = buf.GetRange(0, 4)
	assert.NoError(t, err)
}

func TestBufferSetU16BackPatch(t *testing.T) {
	buf := NewBuffer(8)
	require.NoError(t, buf.WriteU16(0))
	placeholderPos := 0
	require.NoError(t, buf.WriteU8(1))
	require.NoError(t, buf.WriteU8(2))
	require.NoError(t, buf.WriteU8(3))

	size := buf.Pos() - (placeholderPos + 2)
	require.NoError(t, buf.SetU16(placeholderPos, uint16(size)))

	buf.pos = 0
	v, err := buf.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(3), v)
}

func TestBufferSeekOutOfRange(t *testing.T) {
	buf := NewBuffer(4)
	assert.Error(t, buf.Seek(-1))
	assert.Error(t, buf.Seek(5))
	assert.NoError(t, buf.Seek(4))
}
