package properties

import (
	"maps"
	"slices"
)

// Map is a mutable mapping from property key to value. Later writes overwrite
// earlier ones.
type Map map[string]string

// Merge copies every entry of src into m, overwriting existing keys, including
// with empty values. It returns m for chaining. A nil m is not allowed.
func (m Map) Merge(src Map) Map {
	maps.Copy(m, src)
	return m
}

// Clone returns a copy of m that shares no storage with it. Cloning nil
// yields an empty, non-nil map.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	maps.Copy(out, m)
	return out
}

// Keys returns the keys of m in lexicographic order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Lookup returns the value stored under key and whether it was present.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
