package bytearray

// encodeZigzag32 maps a signed 32-bit value onto an unsigned one so
// small-magnitude negatives compress as well as small positives,
// mirroring the original's EncodeZigzag<uint32_t>(int32_t).
func encodeZigzag32(v int32) uint32 {
	if v < 0 {
		return uint32(-v)*2 - 1
	}
	return uint32(v) * 2
}

func decodeZigzag32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

func encodeZigzag64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)*2 - 1
	}
	return uint64(v) * 2
}

func decodeZigzag64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// WriteInt32 writes v zigzag-encoded then varint-compressed.
func (b *ByteArray) WriteInt32(v int32) { b.WriteUint32(encodeZigzag32(v)) }

// WriteUint32 writes v varint-compressed (7 bits per byte, high bit
// set on every byte but the last).
func (b *ByteArray) WriteUint32(v uint32) {
	var tmp [5]byte
	i := 0
	for v >= 0x80 {
		tmp[i] = byte(v&0x7f) | 0x80
		v >>= 7
		i++
	}
	tmp[i] = byte(v)
	i++
	_, _ = b.Write(tmp[:i])
}

// WriteInt64 writes v zigzag-encoded then varint-compressed.
func (b *ByteArray) WriteInt64(v int64) { b.WriteUint64(encodeZigzag64(v)) }

// WriteUint64 writes v varint-compressed.
func (b *ByteArray) WriteUint64(v uint64) {
	var tmp [10]byte
	i := 0
	for v >= 0x80 {
		tmp[i] = byte(v&0x7f) | 0x80
		v >>= 7
		i++
	}
	tmp[i] = byte(v)
	i++
	_, _ = b.Write(tmp[:i])
}

// ReadInt32 reads a varint-compressed, zigzag-decoded int32.
func (b *ByteArray) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	return decodeZigzag32(v), err
}

// ReadUint32 reads a varint-compressed uint32.
func (b *ByteArray) ReadUint32() (uint32, error) {
	var result uint32
	for shift := uint(0); shift < 32; shift += 7 {
		v, err := b.ReadFuint8()
		if err != nil {
			return 0, err
		}
		if v < 0x80 {
			result |= uint32(v) << shift
			break
		}
		result |= uint32(v&0x7f) << shift
	}
	return result, nil
}

// ReadInt64 reads a varint-compressed, zigzag-decoded int64.
func (b *ByteArray) ReadInt64() (int64, error) {
	v, err := b.ReadUint64()
	return decodeZigzag64(v), err
}

// ReadUint64 reads a varint-compressed uint64.
func (b *ByteArray) ReadUint64() (uint64, error) {
	var result uint64
	for shift := uint(0); shift < 64; shift += 7 {
		v, err := b.ReadFuint8()
		if err != nil {
			return 0, err
		}
		if v < 0x80 {
			result |= uint64(v) << shift
			break
		}
		result |= uint64(v&0x7f) << shift
	}
	return result, nil
}
