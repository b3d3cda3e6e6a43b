package script

// Well known variables seeded by the host.
const (
	VarWorkdir  = "workdir"
	VarFilename = "filename"
	VarArch     = "arch"
)

// Variables is an insertion-ordered string table.
type Variables struct {
	keys   []string
	values map[string]string
}

// NewVariables creates an empty table.
func NewVariables() *Variables {
	return &Variables{values: make(map[string]string)}
}

// NewVariablesFrom creates a table seeded with the given pairs, in order.
// pairs must have an even length: key, value, key, value...
func NewVariablesFrom(pairs ...string) *Variables {
	v := NewVariables()
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v
}

// Lookup returns the value of key and whether it was set.
func (v *Variables) Lookup(key string) (string, bool) {
	value, ok := v.values[key]
	return value, ok
}

// Get returns the value of key or "".
func (v *Variables) Get(key string) string {
	return v.values[key]
}

// Set adds or replaces key. Replacing keeps the original position.
func (v *Variables) Set(key, value string) {
	if _, ok := v.values[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.values[key] = value
}

// Keys returns the keys in insertion order.
func (v *Variables) Keys() []string {
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Len is the number of variables.
func (v *Variables) Len() int {
	return len(v.keys)
}
