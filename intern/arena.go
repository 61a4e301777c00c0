package intern

import (
	"math/bits"
	"unsafe"
)

// view is a read-only window over bytes that are never moved. The byte at
// ptr[n] is always 0, so ptr can be handed to code expecting a C string.
type view struct {
	ptr *byte
	n   int
}

// terminator backs the views of empty static strings, which have no
// caller-owned byte to point at.
var terminator byte

func (v view) String() string {
	return unsafe.String(v.ptr, v.n)
}

// bytes returns the payload with cap == len, so appending to the result can
// never overwrite the terminator.
func (v view) bytes() []byte {
	return unsafe.Slice(v.ptr, v.n)
}

// staticView aliases s without copying it. The caller guarantees that s is
// followed by a 0 byte and outlives the interner.
func staticView(s string) view {
	if len(s) == 0 {
		return view{ptr: &terminator}
	}
	return view{ptr: unsafe.StringData(s), n: len(s)}
}

// arena hands out stable copies of strings.
//
// The current buffer is created with a fixed capacity and only ever appended
// to within that capacity, so its backing array never relocates. When a
// string does not fit, the buffer is retired and a larger one replaces it.
// Retired buffers are frozen but kept for as long as the arena lives.
type arena struct {
	buf     []byte
	retired [][]byte
}

func newArena(capacity int) arena {
	return arena{buf: make([]byte, 0, nextPowerOfTwo(capacity))}
}

// allocate copies s followed by a 0 byte into the arena and returns a view
// of the copy (terminator excluded).
func allocate[T string | []byte](a *arena, s T) view {
	needed := len(s) + 1
	if c := cap(a.buf); c-len(a.buf) < needed {
		a.retired = append(a.retired, a.buf)
		a.buf = make([]byte, 0, nextPowerOfTwo(max(c, needed)+1))
	}

	start := len(a.buf)
	a.buf = append(a.buf, s...)
	a.buf = append(a.buf, 0)

	return view{ptr: &a.buf[start], n: len(s)}
}

// used returns the number of bytes handed out, terminators included.
func (a *arena) used() int {
	n := len(a.buf)
	for _, b := range a.retired {
		n += len(b)
	}
	return n
}

// reserved returns the number of bytes held by all buffers.
func (a *arena) reserved() int {
	n := cap(a.buf)
	for _, b := range a.retired {
		n += cap(b)
	}
	return n
}

// nextPowerOfTwo returns the smallest power of two >= n, and 1 for n <= 1.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
