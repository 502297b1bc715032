package bytearray

// WriteStringF16 writes value prefixed with its length as a fixed
// uint16.
func (b *ByteArray) WriteStringF16(value string) {
	b.WriteFuint16(uint16(len(value)))
	_, _ = b.Write([]byte(value))
}

// WriteStringF32 writes value prefixed with its length as a fixed
// uint32.
func (b *ByteArray) WriteStringF32(value string) {
	b.WriteFuint32(uint32(len(value)))
	_, _ = b.Write([]byte(value))
}

// WriteStringF64 writes value prefixed with its length as a fixed
// uint64.
func (b *ByteArray) WriteStringF64(value string) {
	b.WriteFuint64(uint64(len(value)))
	_, _ = b.Write([]byte(value))
}

// WriteStringVint writes value prefixed with its length as a varint.
// See the package doc for why this differs from the original's
// writeStringVint, which prefixes with a fixed uint64 despite the name.
func (b *ByteArray) WriteStringVint(value string) {
	b.WriteUint64(uint64(len(value)))
	_, _ = b.Write([]byte(value))
}

// WriteStringWithoutLength writes value with no length prefix at all.
func (b *ByteArray) WriteStringWithoutLength(value string) {
	_, _ = b.Write([]byte(value))
}

// ReadStringF16 reads a WriteStringF16-encoded string.
func (b *ByteArray) ReadStringF16() (string, error) {
	n, err := b.ReadFuint16()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := b.Read(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadStringF32 reads a WriteStringF32-encoded string.
func (b *ByteArray) ReadStringF32() (string, error) {
	n, err := b.ReadFuint32()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := b.Read(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadStringF64 reads a WriteStringF64-encoded string.
func (b *ByteArray) ReadStringF64() (string, error) {
	n, err := b.ReadFuint64()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := b.Read(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadStringVint reads a WriteStringVint-encoded string.
func (b *ByteArray) ReadStringVint() (string, error) {
	n, err := b.ReadUint64()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := b.Read(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
