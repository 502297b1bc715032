package bytearray

import (
	"encoding/binary"
	"math"
)

func (b *ByteArray) order() binary.ByteOrder {
	if b.little {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// WriteFint8 writes a single uncompressed byte.
func (b *ByteArray) WriteFint8(v int8) { b.WriteFuint8(uint8(v)) }

// WriteFuint8 writes a single uncompressed byte.
func (b *ByteArray) WriteFuint8(v uint8) { _, _ = b.Write([]byte{v}) }

// WriteFint16 writes a fixed-width, endian-selected int16.
func (b *ByteArray) WriteFint16(v int16) { b.WriteFuint16(uint16(v)) }

// WriteFuint16 writes a fixed-width, endian-selected uint16.
func (b *ByteArray) WriteFuint16(v uint16) {
	var tmp [2]byte
	b.order().PutUint16(tmp[:], v)
	_, _ = b.Write(tmp[:])
}

// WriteFint32 writes a fixed-width, endian-selected int32.
func (b *ByteArray) WriteFint32(v int32) { b.WriteFuint32(uint32(v)) }

// WriteFuint32 writes a fixed-width, endian-selected uint32.
func (b *ByteArray) WriteFuint32(v uint32) {
	var tmp [4]byte
	b.order().PutUint32(tmp[:], v)
	_, _ = b.Write(tmp[:])
}

// WriteFint64 writes a fixed-width, endian-selected int64.
func (b *ByteArray) WriteFint64(v int64) { b.WriteFuint64(uint64(v)) }

// WriteFuint64 writes a fixed-width, endian-selected uint64.
func (b *ByteArray) WriteFuint64(v uint64) {
	var tmp [8]byte
	b.order().PutUint64(tmp[:], v)
	_, _ = b.Write(tmp[:])
}

// WriteFloat writes a float32 as its fixed-width bit pattern.
func (b *ByteArray) WriteFloat(v float32) { b.WriteFuint32(math.Float32bits(v)) }

// WriteDouble writes a float64 as its fixed-width bit pattern.
func (b *ByteArray) WriteDouble(v float64) { b.WriteFuint64(math.Float64bits(v)) }

// ReadFint8 reads a single uncompressed byte.
func (b *ByteArray) ReadFint8() (int8, error) {
	v, err := b.ReadFuint8()
	return int8(v), err
}

// ReadFuint8 reads a single uncompressed byte.
func (b *ByteArray) ReadFuint8() (uint8, error) {
	var tmp [1]byte
	if _, err := b.Read(tmp[:]); err != nil {
		return 0, err
	}
	return tmp[0], nil
}

// ReadFint16 reads a fixed-width, endian-selected int16.
func (b *ByteArray) ReadFint16() (int16, error) {
	v, err := b.ReadFuint16()
	return int16(v), err
}

// ReadFuint16 reads a fixed-width, endian-selected uint16.
func (b *ByteArray) ReadFuint16() (uint16, error) {
	var tmp [2]byte
	if _, err := b.Read(tmp[:]); err != nil {
		return 0, err
	}
	return b.order().Uint16(tmp[:]), nil
}

// ReadFint32 reads a fixed-width, endian-selected int32.
func (b *ByteArray) ReadFint32() (int32, error) {
	v, err := b.ReadFuint32()
	return int32(v), err
}

// ReadFuint32 reads a fixed-width, endian-selected uint32.
func (b *ByteArray) ReadFuint32() (uint32, error) {
	var tmp [4]byte
	if _, err := b.Read(tmp[:]); err != nil {
		return 0, err
	}
	return b.order().Uint32(tmp[:]), nil
}

// ReadFint64 reads a fixed-width, endian-selected int64.
func (b *ByteArray) ReadFint64() (int64, error) {
	v, err := b.ReadFuint64()
	return int64(v), err
}

// ReadFuint64 reads a fixed-width, endian-selected uint64.
func (b *ByteArray) ReadFuint64() (uint64, error) {
	var tmp [8]byte
	if _, err := b.Read(tmp[:]); err != nil {
		return 0, err
	}
	return b.order().Uint64(tmp[:]), nil
}

// ReadFloat reads a float32 from its fixed-width bit pattern.
func (b *ByteArray) ReadFloat() (float32, error) {
	v, err := b.ReadFuint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadDouble reads a float64 from its fixed-width bit pattern.
func (b *ByteArray) ReadDouble() (float64, error) {
	v, err := b.ReadFuint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}
