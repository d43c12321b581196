package merge

import (
	"io/fs"

	"github.com/redhatinsights/propmerge/internal/properties"
)

// Origin names the source a property value came from.
type Origin string

const (
	OriginDefaults    Origin = "defaults"
	OriginLocations   Origin = "locations"
	OriginConfigPath  Origin = "config-path"
	OriginEnvironment Origin = "environment"
)

// Trace records how a merge result was assembled.
type Trace struct {
	// Origins maps every merged key to the source of its winning value.
	Origins map[string]Origin
	// Files lists the filesystem paths the merge read or tried to read, in
	// load order. Resources count with every on-disk path they could be
	// read from; resources without one, like embedded files, are left out.
	Files []string
	// Skipped holds the optional sources that failed, in load order.
	Skipped []*RecoverableSourceError
}

func newTrace() *Trace {
	return &Trace{Origins: make(map[string]Origin)}
}

// apply merges src into dst and records origin for its keys.
func (t *Trace) apply(dst, src properties.Map, origin Origin) {
	dst.Merge(src)
	for k := range src {
		t.Origins[k] = origin
	}
}

func (t *Trace) addFiles(paths ...string) {
	for _, p := range paths {
		if p != "" {
			t.Files = append(t.Files, p)
		}
	}
}

// resourceFiles returns the on-disk paths behind name when fsys can tell them,
// as *resource.Path does.
func resourceFiles(fsys fs.FS, name string) []string {
	lister, ok := fsys.(interface{ Candidates(name string) []string })
	if !ok {
		return nil
	}
	return lister.Candidates(name)
}
