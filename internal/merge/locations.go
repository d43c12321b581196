package merge

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/redhatinsights/propmerge/internal/properties"
)

// LocationLoader loads the explicitly registered property locations as one map.
type LocationLoader interface {
	Load() (properties.Map, error)
}

// LoadFunc adapts a function to LocationLoader.
type LoadFunc func() (properties.Map, error)

// Load calls f.
func (f LoadFunc) Load() (properties.Map, error) { return f() }

// ClasspathPrefix marks a location that is read from the resource path instead
// of the filesystem.
const ClasspathPrefix = "classpath:"

// FileLocations loads an ordered list of property files. Later files override
// keys of earlier ones.
type FileLocations struct {
	Paths []string
	// Resources serves locations written as "classpath:<name>".
	Resources fs.FS
	// IgnoreResourceNotFound skips missing files with a warning instead of
	// failing.
	IgnoreResourceNotFound bool
	Encoding               properties.Encoding
	Logger                 Warner
}

// Load implements LocationLoader.
func (l *FileLocations) Load() (properties.Map, error) {
	merged := properties.Map{}
	for _, loc := range l.Paths {
		props, err := l.read(loc)
		if err != nil {
			if l.IgnoreResourceNotFound && errors.Is(err, fs.ErrNotExist) {
				l.logger().Warn("properties location not found, skipping", "location", loc, "error", err)
				continue
			}
			return nil, fmt.Errorf("failed to load properties location %s: %w", loc, err)
		}
		merged.Merge(props)
	}
	return merged, nil
}

// Files returns the filesystem paths the locations are read from. Classpath
// locations contribute the on-disk candidates of their resource, if any.
func (l *FileLocations) Files() []string {
	var files []string
	for _, loc := range l.Paths {
		if name, ok := strings.CutPrefix(loc, ClasspathPrefix); ok {
			files = append(files, resourceFiles(l.Resources, name)...)
			continue
		}
		files = append(files, loc)
	}
	return files
}

func (l *FileLocations) read(loc string) (properties.Map, error) {
	name, ok := strings.CutPrefix(loc, ClasspathPrefix)
	if !ok {
		return properties.ReadFile(loc, l.Encoding)
	}
	if l.Resources == nil {
		return nil, ErrNoResources
	}
	return properties.ReadFS(l.Resources, name, l.Encoding)
}

func (l *FileLocations) logger() Warner {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}
