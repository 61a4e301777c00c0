package capi

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/sintern/intern"
)

// newHandle returns a handle that is deleted when the test ends, which
// also releases any pinned addresses.
func newHandle(t *testing.T, r *Registry, capacity uint32) Handle {
	t.Helper()
	h := r.New(capacity)
	t.Cleanup(func() { r.Delete(h) })
	return h
}

// cbytes mimics a buffer owned by the host: not terminated, and reused.
func cbytes(s string) (*byte, uint32) {
	b := []byte(s)
	if len(b) == 0 {
		return nil, 0
	}
	return &b[0], uint32(len(b))
}

func cstring(ptr *byte, n uint32) string {
	return string(unsafe.Slice(ptr, n))
}

func TestGetIdentifier(t *testing.T) {
	r := NewRegistry()
	h := newHandle(t, r, 8)

	hello := get(r, h, "Hello")
	world := get(r, h, "world")
	assert.Equal(t, intern.ID(0), hello)
	assert.Equal(t, intern.ID(1), world)
	assert.Equal(t, hello, get(r, h, "Hello"))

	assert.Equal(t, "Hello", cstring(r.GetAddress(h, hello), r.GetLength(h, hello)))
	assert.Equal(t, "world", cstring(r.GetAddress(h, world), r.GetLength(h, world)))
}

func TestGetAddressIsTerminated(t *testing.T) {
	r := NewRegistry()
	h := newHandle(t, r, 4)

	for _, s := range []string{"", "a", "architecture"} {
		id := get(r, h, s)
		n := r.GetLength(h, id)
		assert.Equal(t, uint32(len(s)), n)
		assert.Equal(t, byte(0), unsafe.Slice(r.GetAddress(h, id), n+1)[n])
	}
}

func TestGetAddressPinsOnce(t *testing.T) {
	r := NewRegistry()
	h := newHandle(t, r, 8)

	clk := get(r, h, "clk")
	rst := get(r, h, "rst")
	want := r.GetAddress(h, clk)

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	for i := 0; i < 100_000; i++ {
		if r.GetAddress(h, clk) != want {
			t.Fatal("address of clk moved")
		}
	}

	runtime.GC()
	runtime.ReadMemStats(&after)

	growth := int64(after.HeapAlloc) - int64(before.HeapAlloc)
	assert.True(t, growth < 64<<10, "heap grew by %d bytes", growth)
	assert.Equal(t, 1, r.get(h).pins)

	r.GetAddress(h, rst)
	r.GetAddress(h, rst)
	assert.Equal(t, 2, r.get(h).pins)
}

func TestGetIdentifierNoCreate(t *testing.T) {
	r := NewRegistry()
	h := newHandle(t, r, 8)

	first := get(r, h, "first")
	assert.Equal(t, intern.ID(0), first)

	assert.Equal(t, intern.ID(0), noCreate(r, h, "missing"))

	second := get(r, h, "second")
	assert.Equal(t, second, noCreate(r, h, "second"))

	// Identifier 0 cannot be told apart from "not found".
	assert.Panics(t, func() { noCreate(r, h, "first") })

	id, ok := lookup(r, h, "first")
	assert.True(t, ok)
	assert.Equal(t, first, id)

	_, ok = lookup(r, h, "missing")
	assert.False(t, ok)
}

func TestGetIdentifierStatic(t *testing.T) {
	r := NewRegistry()
	h := newHandle(t, r, 8)

	// Host-owned, terminated and eternal.
	lit := "process\x00"
	ptr := unsafe.StringData(lit)

	id := r.GetIdentifierStatic(h, ptr, 7)
	assert.Equal(t, uintptr(unsafe.Pointer(ptr)), uintptr(unsafe.Pointer(r.GetAddress(h, id))))
	assert.Equal(t, id, get(r, h, "process"))
}

func TestGetIdentifierExtra(t *testing.T) {
	r := NewRegistry()
	h := newHandle(t, r, 8)

	get(r, h, "a")
	hidden := extra(r, h, "hidden")
	assert.Equal(t, intern.ID(1), hidden)

	_, ok := lookup(r, h, "hidden")
	assert.False(t, ok)
	assert.Equal(t, "hidden", cstring(r.GetAddress(h, hidden), r.GetLength(h, hidden)))
}

func TestGetLast(t *testing.T) {
	r := NewRegistry()
	h := newHandle(t, r, 8)

	assert.Panics(t, func() { r.GetLast(h) })

	get(r, h, "a")
	get(r, h, "b")
	get(r, h, "a")
	assert.Equal(t, intern.ID(1), r.GetLast(h))
}

func TestTags(t *testing.T) {
	r := NewRegistry()
	h := newHandle(t, r, 8)

	id := get(r, h, "signal")
	assert.Equal(t, uint32(0), r.GetTag(h, id))
	r.SetTag(h, id, 7)
	assert.Equal(t, uint32(7), r.GetTag(h, id))
	assert.Equal(t, uint32(7), r.Interner(h).Tag(id))
}

func TestAddressesSurviveGrowth(t *testing.T) {
	r := NewRegistry()
	h := newHandle(t, r, 1)

	ids := make([]intern.ID, 0, 100)
	addrs := make([]*byte, 0, 100)
	for i := 0; i < 100; i++ {
		id := get(r, h, string(rune('a'+i%26))+string(rune('A'+i/26)))
		ids = append(ids, id)
		addrs = append(addrs, r.GetAddress(h, id))
	}

	for i, id := range ids {
		assert.Equal(t, uintptr(unsafe.Pointer(addrs[i])), uintptr(unsafe.Pointer(r.GetAddress(h, id))))
		assert.Equal(t, 2, int(r.GetLength(h, id)))
	}
}

func TestHandlesAreIndependent(t *testing.T) {
	r := NewRegistry()
	a := newHandle(t, r, 8)
	b := newHandle(t, r, 8)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, r.Len())

	get(r, a, "only in a")
	assert.Equal(t, intern.ID(0), get(r, b, "first in b"))

	_, ok := lookup(r, b, "only in a")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	r := NewRegistry()
	h := r.New(8)
	id := get(r, h, "gone")
	r.GetAddress(h, id)

	r.Delete(h)
	assert.Equal(t, 0, r.Len())
	assert.Panics(t, func() { r.GetLength(h, id) })
	assert.Panics(t, func() { r.Delete(h) })
}

func TestUnknownHandlePanics(t *testing.T) {
	r := NewRegistry()
	assert.Panics(t, func() { get(r, 0, "x") })
	assert.Panics(t, func() { r.GetLast(42) })
}

// The helpers below call the registry the way a host does, through a
// pointer and a length.

func get(r *Registry, h Handle, s string) intern.ID {
	ptr, n := cbytes(s)
	return r.GetIdentifier(h, ptr, n)
}

func noCreate(r *Registry, h Handle, s string) intern.ID {
	ptr, n := cbytes(s)
	return r.GetIdentifierNoCreate(h, ptr, n)
}

func lookup(r *Registry, h Handle, s string) (intern.ID, bool) {
	ptr, n := cbytes(s)
	return r.LookupIdentifier(h, ptr, n)
}

func extra(r *Registry, h Handle, s string) intern.ID {
	ptr, n := cbytes(s)
	return r.GetIdentifierExtra(h, ptr, n)
}
