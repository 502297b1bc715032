package bytearray

// ReadBuffers returns up to length bytes of unread data (ReadSize() if
// length is negative or exceeds it) as a slice of slices, each backed
// directly by a chunk's storage (no copy), in cursor order. It does
// not advance the cursor. This is the Go analogue of getReadBuffers,
// shaped for vectored I/O (readv/writev-style callers, e.g. a future
// httpcodec body writer) that want to avoid flattening the buffer into
// one contiguous allocation.
func (b *ByteArray) ReadBuffers(length int) [][]byte {
	avail := b.ReadSize()
	if length < 0 || length > avail {
		length = avail
	}
	return b.buffersFrom(b.position, length)
}

// ReadBuffersAt is ReadBuffers starting from an arbitrary position
// instead of the cursor.
func (b *ByteArray) ReadBuffersAt(position, length int) [][]byte {
	avail := b.size - position
	if length < 0 || length > avail {
		length = avail
	}
	return b.buffersFrom(position, length)
}

func (b *ByteArray) buffersFrom(position, length int) [][]byte {
	if length <= 0 {
		return nil
	}
	var out [][]byte
	cur := b.nodeAt(position)
	npos := position % b.baseSize
	remaining := length
	for remaining > 0 {
		avail := len(cur.buf) - npos
		take := avail
		if take > remaining {
			take = remaining
		}
		out = append(out, cur.buf[npos:npos+take])
		remaining -= take
		cur = cur.next
		npos = 0
	}
	return out
}

// WriteBuffers grows the buffer by length bytes (without advancing the
// cursor or Size) and returns the newly available capacity as a slice
// of writable chunk slices, the Go analogue of getWriteBuffers: a
// caller (e.g. a vectored socket read) fills these directly, then
// calls SetPosition to record how much was actually written.
func (b *ByteArray) WriteBuffers(length int) [][]byte {
	if length <= 0 {
		return nil
	}
	b.addCapacity(length)
	return b.buffersFrom(b.position, length)
}
