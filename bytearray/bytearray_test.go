package bytearray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedWidth_RoundTripsAcrossChunkBoundaries(t *testing.T) {
	b := New(8) // tiny chunks force several boundary crossings

	b.WriteFuint8(0xAB)
	b.WriteFint16(-100)
	b.WriteFuint32(0xdeadbeef)
	b.WriteFint64(-1234567890123)
	b.WriteFloat(3.25)
	b.WriteDouble(-6.5)
	b.SetPosition(0)

	v8, err := b.ReadFuint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAB), v8)

	v16, err := b.ReadFint16()
	require.NoError(t, err)
	assert.Equal(t, int16(-100), v16)

	v32, err := b.ReadFuint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), v32)

	v64, err := b.ReadFint64()
	require.NoError(t, err)
	assert.Equal(t, int64(-1234567890123), v64)

	f32, err := b.ReadFloat()
	require.NoError(t, err)
	assert.Equal(t, float32(3.25), f32)

	f64, err := b.ReadDouble()
	require.NoError(t, err)
	assert.Equal(t, -6.5, f64)
}

func TestLittleEndian_ProducesByteSwappedEncoding(t *testing.T) {
	big := New(16)
	big.WriteFuint32(0x01020304)

	little := New(16)
	little.SetLittleEndian(true)
	little.WriteFuint32(0x01020304)

	big.SetPosition(0)
	little.SetPosition(0)
	assert.NotEqual(t, big.Bytes(), little.Bytes())
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, big.Bytes())
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, little.Bytes())
}

func TestVarint_CompressesSmallValuesAndRoundTrips(t *testing.T) {
	b := New(16)
	b.WriteInt32(5)
	b.WriteInt32(-5)
	b.WriteUint64(300)

	assert.Less(t, b.Size(), 16) // small values use fewer than the fixed-width equivalent
	b.SetPosition(0)

	v1, err := b.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(5), v1)

	v2, err := b.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-5), v2)

	v3, err := b.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(300), v3)
}

func TestStrings_RoundTripAllLengthPrefixForms(t *testing.T) {
	b := New(4)
	b.WriteStringF16("abc")
	b.WriteStringF32("defgh")
	b.WriteStringF64("ij")
	b.WriteStringVint("klmno")
	b.WriteStringWithoutLength("tail")
	b.SetPosition(0)

	s1, err := b.ReadStringF16()
	require.NoError(t, err)
	assert.Equal(t, "abc", s1)

	s2, err := b.ReadStringF32()
	require.NoError(t, err)
	assert.Equal(t, "defgh", s2)

	s3, err := b.ReadStringF64()
	require.NoError(t, err)
	assert.Equal(t, "ij", s3)

	s4, err := b.ReadStringVint()
	require.NoError(t, err)
	assert.Equal(t, "klmno", s4)

	remainder := make([]byte, 4)
	_, err = b.Read(remainder)
	require.NoError(t, err)
	assert.Equal(t, "tail", string(remainder))
}

func TestRead_ShortReadDoesNotAdvanceOrPanic(t *testing.T) {
	b := New(8)
	b.WriteFuint8(1)
	b.SetPosition(0)

	buf := make([]byte, 10)
	_, err := b.Read(buf)
	assert.ErrorIs(t, err, ErrShortRead)
	assert.Equal(t, 0, b.Position())
}

func TestSetPosition_RereadsAlreadyWrittenData(t *testing.T) {
	b := New(4)
	b.WriteFuint32(1)
	b.WriteFuint32(2)

	b.SetPosition(0)
	v, err := b.ReadFuint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v)

	b.SetPosition(4)
	v, err = b.ReadFuint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), v)
}

func TestReadBuffers_SpansMultipleChunksWithoutCopying(t *testing.T) {
	b := New(4)
	data := []byte("0123456789")
	_, err := b.Write(data)
	require.NoError(t, err)
	b.SetPosition(0)

	bufs := b.ReadBuffers(-1)
	var flat []byte
	for _, buf := range bufs {
		flat = append(flat, buf...)
	}
	assert.Equal(t, data, flat)
	assert.Greater(t, len(bufs), 1) // proves it actually spans chunk boundaries
}

func TestWriteBuffers_FillDirectlyThenSetPosition(t *testing.T) {
	b := New(4)
	bufs := b.WriteBuffers(6)
	written := 0
	for _, buf := range bufs {
		for i := range buf {
			buf[i] = byte('a' + written)
			written++
			if written >= 6 {
				break
			}
		}
	}
	b.SetPosition(b.Position() + 6)
	b.SetPosition(0)

	assert.Equal(t, "abcdef", b.String())
}

func TestHexString_MatchesWrittenBytes(t *testing.T) {
	b := New(16)
	_, err := b.Write([]byte{0xde, 0xad, 0xbe, 0xef})
	require.NoError(t, err)
	b.SetPosition(0)
	assert.Equal(t, "deadbeef", b.HexString())
}
