package intern

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/alecthomas/assert/v2"
)

func addr(p *byte) uintptr {
	return uintptr(unsafe.Pointer(p))
}

func TestInternerSanity(t *testing.T) {
	in := New(8)

	// Two equal strings at different addresses, so nothing passes by
	// comparing pointers.
	hello := "Hello"
	hello2 := strings.Clone(hello)
	assert.Equal(t, hello, hello2)
	assert.NotEqual(t, addr(unsafe.StringData(hello)), addr(unsafe.StringData(hello2)))

	idHello := in.Intern(hello)
	idWorld := in.Intern("world")
	assert.Equal(t, ID(0), idHello)
	assert.Equal(t, ID(1), idWorld)

	assert.Equal(t, hello, in.Lookup(idHello))
	assert.Equal(t, hello2, in.Lookup(idHello))
	assert.Equal(t, idHello, in.Intern(hello2))
	assert.Equal(t, "world", in.Lookup(idWorld))

	// Forces several buffer growths.
	for i, c := 0, 'A'; c <= 'Z'; i, c = i+1, c+1 {
		assert.Equal(t, ID(i+2), in.Intern(string(c)))
	}
}

func TestInternIsIdempotent(t *testing.T) {
	in := New(16)

	words := []string{"alpha", "beta", "", "gamma", "alpha", "beta", ""}
	want := []ID{0, 1, 2, 3, 0, 1, 2}

	for i, w := range words {
		assert.Equal(t, want[i], in.Intern(w), "word %q", w)
	}
	assert.Equal(t, 4, in.Len())

	for i, w := range words {
		assert.Equal(t, w, in.Lookup(want[i]))
	}
}

func TestInternBytes(t *testing.T) {
	in := New(4)

	buf := []byte("signal")
	id := in.InternBytes(buf)

	// The interner owns a copy.
	buf[0] = 'S'
	assert.Equal(t, "signal", in.Lookup(id))
	assert.Equal(t, id, in.Intern("signal"))
	assert.Equal(t, ID(1), in.InternBytes(buf))

	got, ok := in.GetIDBytes([]byte("Signal"))
	assert.True(t, ok)
	assert.Equal(t, ID(1), got)
}

func TestGetID(t *testing.T) {
	in := New(8)

	_, ok := in.GetID("entity")
	assert.False(t, ok)
	assert.Equal(t, 0, in.Len(), "GetID must not allocate")

	id := in.Intern("entity")
	got, ok := in.GetID("entity")
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestGetLast(t *testing.T) {
	in := New(8)

	_, ok := in.GetLast()
	assert.False(t, ok)

	in.Intern("a")
	in.Intern("b")
	last, ok := in.GetLast()
	assert.True(t, ok)
	assert.Equal(t, ID(1), last)

	// Re-interning does not advance it.
	in.Intern("a")
	last, _ = in.GetLast()
	assert.Equal(t, ID(1), last)

	in.InternExtra("c")
	last, _ = in.GetLast()
	assert.Equal(t, ID(2), last)
}

func TestTags(t *testing.T) {
	in := New(8)

	a := in.Intern("a")
	b := in.Intern("b")
	assert.Equal(t, uint32(0), in.Tag(a))
	assert.Equal(t, uint32(0), in.Tag(b))

	in.SetTag(a, 42)
	in.SetTag(b, 0xffffffff)
	assert.Equal(t, uint32(42), in.Tag(a))
	assert.Equal(t, uint32(0xffffffff), in.Tag(b))

	// Re-interning keeps the tag.
	assert.Equal(t, a, in.Intern("a"))
	assert.Equal(t, uint32(42), in.Tag(a))
}

func TestInvalidIdentifierPanics(t *testing.T) {
	in := New(8)
	in.Intern("only")

	assert.Panics(t, func() { in.Lookup(1) })
	assert.Panics(t, func() { in.Tag(7) })
	assert.Panics(t, func() { in.SetTag(1, 1) })
	assert.Panics(t, func() { in.Address(1) })
}

func TestGrowthKeepsViews(t *testing.T) {
	in := New(1)

	type seen struct {
		id   ID
		s    string
		addr uintptr
	}
	var all []seen

	for i := 0; i < 200; i++ {
		s := strings.Repeat(string(rune('a'+i%26)), i%37+1) + string(rune('0'+i%10))
		id := in.Intern(s)
		all = append(all, seen{id: id, s: s, addr: addr(in.Address(id))})
	}
	// One string much larger than any buffer so far.
	big := strings.Repeat("x", 10_000)
	bigID := in.Intern(big)

	assert.True(t, in.Stats().Buffers > 1)
	for _, e := range all {
		assert.Equal(t, e.s, in.Lookup(e.id))
		assert.Equal(t, e.addr, addr(in.Address(e.id)), "address of %d moved", e.id)
	}
	assert.Equal(t, big, in.Lookup(bigID))
}

func TestAddressIsTerminated(t *testing.T) {
	in := New(2)

	for _, s := range []string{"", "a", "process", "with\x00nul"} {
		id := in.Intern(s)
		n := in.Length(id)
		assert.Equal(t, len(s), n)

		b := unsafe.Slice(in.Address(id), n+1)
		assert.Equal(t, s, string(b[:n]))
		assert.Equal(t, byte(0), b[n])
	}
}

func TestLookupBytesCannotClobberTerminator(t *testing.T) {
	in := New(64)
	a := in.Intern("abc")
	b := in.Intern("def")

	got := in.LookupBytes(a)
	assert.Equal(t, len(got), cap(got))

	_ = append(got, 'Z')
	assert.Equal(t, "abc", in.Lookup(a))
	assert.Equal(t, "def", in.Lookup(b))
	assert.Equal(t, byte(0), unsafe.Slice(in.Address(a), 4)[3])
}

func TestInternStatic(t *testing.T) {
	in := New(8)

	lit := "architecture\x00"
	name := lit[:len(lit)-1]

	id := in.InternStatic(name)
	assert.Equal(t, addr(unsafe.StringData(name)), addr(in.Address(id)), "static strings are not copied")
	assert.Equal(t, 0, in.Stats().BytesUsed)

	// It is registered like any other string.
	assert.Equal(t, id, in.Intern("architecture"))
	got, ok := in.GetID("architecture")
	assert.True(t, ok)
	assert.Equal(t, id, got)

	// A spelling that is already interned is not registered again.
	copied := in.Intern("entity")
	assert.Equal(t, copied, in.InternStatic("entity\x00"[:6]))
	assert.NotEqual(t, addr(unsafe.StringData("entity\x00")), addr(in.Address(copied)))
}

func TestInternStaticEmpty(t *testing.T) {
	in := New(8)

	id := in.InternStatic("")
	assert.Equal(t, "", in.Lookup(id))
	assert.True(t, in.Address(id) != nil)
	assert.Equal(t, byte(0), *in.Address(id))
}

func TestInternExtraIsNotDeduplicated(t *testing.T) {
	in := New(8)
	in.Intern("a")

	extra := in.InternExtra("X")
	assert.Equal(t, ID(1), extra)
	assert.Equal(t, "X", in.Lookup(extra))

	_, ok := in.GetID("X")
	assert.False(t, ok, "InternExtra must not register the string")

	// Ordinary interning allocates a distinct alias.
	id := in.Intern("X")
	assert.NotEqual(t, extra, id)
	assert.Equal(t, ID(2), id)

	got, ok := in.GetID("X")
	assert.True(t, ok)
	assert.Equal(t, id, got)
	assert.Equal(t, "X", in.Lookup(extra))
}

func TestAll(t *testing.T) {
	in := New(8)
	words := []string{"library", "use", "all", "work"}
	for _, w := range words {
		in.Intern(w)
	}
	in.InternExtra("<anonymous>")

	var ids []ID
	var got []string
	for id, s := range in.All() {
		ids = append(ids, id)
		got = append(got, s)
	}
	assert.Equal(t, []ID{0, 1, 2, 3, 4}, ids)
	assert.Equal(t, append(words, "<anonymous>"), got)

	// Early exit.
	n := 0
	for range in.All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestStats(t *testing.T) {
	in := New(8)
	in.Intern("Hello")
	in.Intern("world")
	for c := 'A'; c <= 'Z'; c++ {
		in.Intern(string(c))
	}
	in.InternExtra("extra")

	stats := in.Stats()
	assert.Equal(t, 29, stats.Entries)
	assert.Equal(t, 28, stats.Registered)
	// 8: Hello | 16: world A-E | 32: F-U | 64: V-Z extra
	assert.Equal(t, 4, stats.Buffers)
	assert.Equal(t, 6+16+32+10+6, stats.BytesUsed)
	assert.Equal(t, 8+16+32+64, stats.BytesReserved)
	assert.Equal(t, 64, stats.CurrentCapacity)
}

func BenchmarkIntern(b *testing.B) {
	words := make([]string, 1024)
	for i := range words {
		words[i] = strings.Repeat("w", i%17+1) + string(rune('a'+i%26))
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		in := New(4096)
		for _, w := range words {
			in.Intern(w)
		}
	}
}

func BenchmarkInternBytesHit(b *testing.B) {
	in := New(64)
	key := []byte("architecture")
	in.InternBytes(key)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		in.InternBytes(key)
	}
}
