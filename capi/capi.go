// Package capi adapts the interner to a boundary that only passes integers
// and raw pointer/length pairs, for linking into a foreign host program.
//
// Interners are referred to by Handle so the host never holds a Go pointer
// to the interner itself. Addresses of interned strings are handed out
// directly: their arena buffers never move, and they are pinned for the
// lifetime of the handle so the host may keep them.
//
// As in the core, misuse panics: unknown handles, identifiers not obtained
// from the same handle, GetLast on an empty interner and a genuine
// identifier 0 in GetIdentifierNoCreate.
package capi

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/robinvdvleuten/sintern/intern"
)

// Handle names an interner created by a Registry. The zero Handle is never
// valid.
type Handle uint32

type instance struct {
	names  *intern.Interner
	pinner runtime.Pinner

	// pinned[id] is set once the address of id has been pinned. Every Pin
	// call adds a reference, so each address is pinned at most once.
	pinned []bool
	pins   int
}

// address returns the address of id, pinning it on first use.
func (inst *instance) address(id intern.ID) *byte {
	ptr := inst.names.Address(id)
	if int(id) < len(inst.pinned) && inst.pinned[id] {
		return ptr
	}
	if n := int(id) + 1; n > len(inst.pinned) {
		inst.pinned = append(inst.pinned, make([]bool, n-len(inst.pinned))...)
	}
	// Pinning memory that is not Go-allocated, such as static strings
	// owned by the host, is a no-op.
	inst.pinner.Pin(ptr)
	inst.pinned[id] = true
	inst.pins++
	return ptr
}

// Registry owns the interners reachable through handles.
type Registry struct {
	mu        sync.Mutex
	next      Handle
	instances map[Handle]*instance
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		next:      1,
		instances: make(map[Handle]*instance),
	}
}

// New creates an interner whose first buffer holds capacity bytes.
func (r *Registry) New(capacity uint32) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.next
	if h == 0 {
		panic("capi: handle space exhausted")
	}
	r.next++
	r.instances[h] = &instance{names: intern.New(int(capacity))}
	return h
}

// Delete releases the interner of h. Identifiers and addresses obtained
// from it become invalid.
func (r *Registry) Delete(h Handle) {
	r.mu.Lock()
	inst, ok := r.instances[h]
	delete(r.instances, h)
	r.mu.Unlock()

	if !ok {
		panic(fmt.Sprintf("capi: unknown handle %d", h))
	}
	inst.pinner.Unpin()
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}

// Interner returns the interner behind h, for Go code sharing the process
// with the foreign host.
func (r *Registry) Interner(h Handle) *intern.Interner {
	return r.get(h).names
}

func (r *Registry) get(h Handle) *instance {
	r.mu.Lock()
	inst, ok := r.instances[h]
	r.mu.Unlock()

	if !ok {
		panic(fmt.Sprintf("capi: unknown handle %d", h))
	}
	return inst
}

// GetIdentifier interns the n bytes at ptr. They need not be terminated
// and are not retained.
func (r *Registry) GetIdentifier(h Handle, ptr *byte, n uint32) intern.ID {
	return r.get(h).names.InternBytes(unsafe.Slice(ptr, n))
}

// GetIdentifierNoCreate returns the identifier of the n bytes at ptr, or 0
// if they were never interned. Since 0 doubles as "not found", it panics
// if the string genuinely has identifier 0; use LookupIdentifier to tell
// the cases apart.
func (r *Registry) GetIdentifierNoCreate(h Handle, ptr *byte, n uint32) intern.ID {
	id, ok := r.get(h).names.GetIDBytes(unsafe.Slice(ptr, n))
	if !ok {
		return 0
	}
	if id == 0 {
		panic("capi: string has identifier 0, which is reserved to mean not found")
	}
	return id
}

// LookupIdentifier is GetIdentifierNoCreate with an explicit found flag.
func (r *Registry) LookupIdentifier(h Handle, ptr *byte, n uint32) (intern.ID, bool) {
	return r.get(h).names.GetIDBytes(unsafe.Slice(ptr, n))
}

// GetIdentifierStatic interns the n bytes at ptr without copying them.
// ptr[n] must be 0 and the bytes must outlive the interner.
func (r *Registry) GetIdentifierStatic(h Handle, ptr *byte, n uint32) intern.ID {
	return r.get(h).names.InternStatic(unsafe.String(ptr, n))
}

// GetIdentifierExtra allocates a fresh identifier for the n bytes at ptr
// without registering them for lookup. See intern.Interner.InternExtra.
func (r *Registry) GetIdentifierExtra(h Handle, ptr *byte, n uint32) intern.ID {
	return r.get(h).names.InternExtra(unsafe.String(ptr, n))
}

// GetAddress returns the address of the string of id. The string is
// followed by a 0 byte and stays at this address until Delete.
func (r *Registry) GetAddress(h Handle, id intern.ID) *byte {
	return r.get(h).address(id)
}

// GetLength returns the length in bytes of the string of id.
func (r *Registry) GetLength(h Handle, id intern.ID) uint32 {
	return uint32(r.get(h).names.Length(id))
}

// GetLast returns the most recently allocated identifier. It panics if the
// interner is empty.
func (r *Registry) GetLast(h Handle) intern.ID {
	id, ok := r.get(h).names.GetLast()
	if !ok {
		panic("capi: GetLast on an interner that contains no strings")
	}
	return id
}

// GetTag returns the auxiliary value of id.
func (r *Registry) GetTag(h Handle, id intern.ID) uint32 {
	return r.get(h).names.Tag(id)
}

// SetTag sets the auxiliary value of id.
func (r *Registry) SetTag(h Handle, id intern.ID, tag uint32) {
	r.get(h).names.SetTag(id, tag)
}
