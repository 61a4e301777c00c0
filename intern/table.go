package intern

import (
	"fmt"
	"math"
)

type entry struct {
	view view
	tag  uint32
}

// table is the dense, append-only list of entries. An identifier is the
// index of its entry.
type table struct {
	entries []entry
}

func (t *table) append(v view) ID {
	if uint64(len(t.entries)) > math.MaxUint32 {
		panic("intern: identifier space exhausted")
	}
	id := ID(len(t.entries))
	t.entries = append(t.entries, entry{view: v})
	return id
}

// at panics if id was not handed out by this table.
func (t *table) at(id ID) *entry {
	if int(id) >= len(t.entries) {
		panic(fmt.Sprintf("intern: identifier %d out of range [0, %d)", id, len(t.entries)))
	}
	return &t.entries[id]
}

func (t *table) last() (ID, bool) {
	if len(t.entries) == 0 {
		return 0, false
	}
	return ID(len(t.entries) - 1), true
}

func (t *table) len() int {
	return len(t.entries)
}
