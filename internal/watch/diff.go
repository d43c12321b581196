package watch

import "github.com/redhatinsights/propmerge/internal/properties"

// Changes lists the keys that differ between two merge results, each sorted.
type Changes struct {
	Added   []string
	Changed []string
	Removed []string
}

// Empty reports whether nothing changed.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Changed) == 0 && len(c.Removed) == 0
}

// Diff compares before with after.
func Diff(before, after properties.Map) Changes {
	var c Changes
	for _, k := range after.Keys() {
		old, ok := before[k]
		switch {
		case !ok:
			c.Added = append(c.Added, k)
		case old != after[k]:
			c.Changed = append(c.Changed, k)
		}
	}
	for _, k := range before.Keys() {
		if _, ok := after[k]; !ok {
			c.Removed = append(c.Removed, k)
		}
	}
	return c
}
