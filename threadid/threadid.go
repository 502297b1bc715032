package threadid

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

var stackBufPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 64)
		return &buf
	},
}

// goroutinePrefix is the fixed header runtime.Stack always emits first.
var goroutinePrefix = []byte("goroutine ")

// Current returns the id of the calling goroutine.
//
// This is intentionally not cached per-goroutine: Go provides no hook to
// run initialization once per goroutine lifetime, so every call pays the
// cost of a small runtime.Stack capture. Callers that need this on a hot
// path (fiber's thread-locals) should call it once per swap, not per
// statement.
func Current() uint64 {
	bufp := stackBufPool.Get().(*[]byte)
	defer stackBufPool.Put(bufp)
	buf := *bufp

	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			buf = buf[:n]
			break
		}
		buf = make([]byte, len(buf)*2)
	}
	*bufp = buf

	if !bytes.HasPrefix(buf, goroutinePrefix) {
		return 0
	}
	rest := buf[len(goroutinePrefix):]
	end := bytes.IndexByte(rest, ' ')
	if end < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(rest[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
