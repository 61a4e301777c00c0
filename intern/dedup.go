package intern

// dedup maps string content to the identifier registered for it. Keys alias
// arena (or caller-eternal) memory instead of owning a copy.
type dedup struct {
	m map[string]ID
}

func newDedup() dedup {
	return dedup{m: make(map[string]ID)}
}

func (d *dedup) get(s string) (ID, bool) {
	id, ok := d.m[s]
	return id, ok
}

// getBytes does not allocate: the compiler recognises m[string(b)].
func (d *dedup) getBytes(b []byte) (ID, bool) {
	id, ok := d.m[string(b)]
	return id, ok
}

func (d *dedup) insert(v view, id ID) {
	d.m[v.String()] = id
}

func (d *dedup) len() int {
	return len(d.m)
}
