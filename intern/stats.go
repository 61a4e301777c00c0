package intern

// Stats describes the memory held by an Interner.
type Stats struct {
	// Entries is the number of allocated identifiers.
	Entries int
	// Registered is the number of identifiers reachable through GetID.
	// Identifiers created by InternExtra are not counted.
	Registered int
	// Buffers is the number of arena buffers, the current one included.
	Buffers int
	// BytesUsed counts arena bytes handed out, terminators included.
	// Strings registered with InternStatic are not stored in the arena.
	BytesUsed int
	// BytesReserved counts the capacity of all arena buffers.
	BytesReserved int
	// CurrentCapacity is the capacity of the buffer new strings go to.
	CurrentCapacity int
}

// Stats returns a snapshot of the interner's size.
func (in *Interner) Stats() Stats {
	return Stats{
		Entries:         in.table.len(),
		Registered:      in.dedup.len(),
		Buffers:         len(in.arena.retired) + 1,
		BytesUsed:       in.arena.used(),
		BytesReserved:   in.arena.reserved(),
		CurrentCapacity: cap(in.arena.buf),
	}
}
