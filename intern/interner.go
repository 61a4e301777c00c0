// Package intern maps strings to small, dense identifiers.
//
// Identifiers are allocated sequentially starting at 0, so they can be used
// as indices into side tables and reserved up front for fixed vocabularies
// such as keywords. Interned strings are copied into an arena whose buffers
// never move: a string returned by Lookup, and the address returned by
// Address, stay valid for as long as the Interner is reachable. Every stored
// string is followed by a 0 byte so its address can be passed to C.
//
// An Interner is not safe for concurrent use.
//
// Example usage:
//
//	in := intern.New(1024)
//	hello := in.Intern("hello")
//	in.Intern("hello") == hello // true
//	in.Lookup(hello)            // "hello"
package intern

import (
	"fmt"
	"iter"
	"unsafe"
)

// ID identifies an interned string.
//
// Two identifiers obtained through Intern, InternBytes or InternStatic are
// equal iff their strings are equal. InternExtra deliberately breaks this.
type ID uint32

// Interner owns the string arena, the identifier table and the lookup map.
type Interner struct {
	arena arena
	table table
	dedup dedup
}

// New creates an interner whose first arena buffer holds capacity bytes,
// rounded up to the next power of two. The arena grows as needed, so this
// is only an initial guess.
func New(capacity int) *Interner {
	return &Interner{
		arena: newArena(capacity),
		dedup: newDedup(),
	}
}

// Intern returns the identifier of s, copying s into the arena the first
// time it is seen.
func (in *Interner) Intern(s string) ID {
	if id, ok := in.dedup.get(s); ok {
		return id
	}
	return in.create(allocate(&in.arena, s))
}

// InternBytes is like Intern but takes a byte slice. b is not retained.
func (in *Interner) InternBytes(b []byte) ID {
	if id, ok := in.dedup.getBytes(b); ok {
		return id
	}
	return in.create(allocate(&in.arena, b))
}

// InternStatic is like Intern but does not copy s when it is new.
//
// s must be immediately followed in memory by a 0 byte and must outlive the
// interner. Slicing a constant with an explicit terminator satisfies both:
//
//	in.InternStatic("begin\x00"[:5])
func (in *Interner) InternStatic(s string) ID {
	if id, ok := in.dedup.get(s); ok {
		return id
	}
	return in.create(staticView(s))
}

// InternExtra copies s and allocates a fresh identifier for it without
// registering s for lookup. Intern and GetID never return the identifier
// produced here.
//
// s must not already be interned; this is only checked in builds without
// the release tag. It is meant for initialisation sequences that reserve
// identifiers for spellings that ordinary interning never produces.
func (in *Interner) InternExtra(s string) ID {
	if debugChecks {
		if id, ok := in.dedup.get(s); ok {
			panic(fmt.Sprintf("intern: InternExtra(%q): already interned as %d", s, id))
		}
	}
	return in.table.append(allocate(&in.arena, s))
}

// GetID returns the identifier of s if it has been interned.
func (in *Interner) GetID(s string) (ID, bool) {
	return in.dedup.get(s)
}

// GetIDBytes is like GetID but takes a byte slice. It does not allocate.
func (in *Interner) GetIDBytes(b []byte) (ID, bool) {
	return in.dedup.getBytes(b)
}

// GetLast returns the most recently allocated identifier. It reports false
// if nothing has been interned yet.
func (in *Interner) GetLast() (ID, bool) {
	return in.table.last()
}

// Lookup returns the string of id. It panics if id was not returned by this
// interner.
func (in *Interner) Lookup(id ID) string {
	return in.table.at(id).view.String()
}

// LookupBytes returns the bytes of id without copying. The result must not
// be modified.
func (in *Interner) LookupBytes(id ID) []byte {
	return in.table.at(id).view.bytes()
}

// Address returns a pointer to the first byte of the string of id. The
// string is followed by a 0 byte, so the pointer is a valid C string.
func (in *Interner) Address(id ID) *byte {
	return in.table.at(id).view.ptr
}

// Length returns the length in bytes of the string of id, terminator
// excluded.
func (in *Interner) Length(id ID) int {
	return in.table.at(id).view.n
}

// Tag returns the auxiliary value attached to id. It is 0 until SetTag is
// called.
func (in *Interner) Tag(id ID) uint32 {
	return in.table.at(id).tag
}

// SetTag attaches an auxiliary value to id. The interner gives it no
// meaning.
func (in *Interner) SetTag(id ID, tag uint32) {
	in.table.at(id).tag = tag
}

// Len returns the number of identifiers allocated so far.
func (in *Interner) Len() int {
	return in.table.len()
}

// All iterates over every identifier in allocation order.
func (in *Interner) All() iter.Seq2[ID, string] {
	return func(yield func(ID, string) bool) {
		for i := range in.table.entries {
			if !yield(ID(i), in.table.entries[i].view.String()) {
				return
			}
		}
	}
}

// create allocates an identifier for v and registers it for lookup.
func (in *Interner) create(v view) ID {
	id := in.table.append(v)
	in.dedup.insert(v, id)

	if debugChecks {
		s := v.String()
		if in.Lookup(id) != s || in.Intern(s) != id {
			panic(fmt.Sprintf("intern: identifier %d does not round-trip", id))
		}
		if *(*byte)(unsafe.Add(unsafe.Pointer(v.ptr), v.n)) != 0 {
			panic(fmt.Sprintf("intern: identifier %d is not 0-terminated", id))
		}
	}

	return id
}
