// Package resource resolves bundled resources by logical name, the way a
// classpath does: an ordered list of roots is searched and the first root
// holding the name wins.
package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Path is an ordered list of filesystems searched for resources. It
// implements fs.FS.
type Path struct {
	roots []root
}

type root struct {
	fsys fs.FS
	// dir is the directory behind fsys, empty for roots that are not on disk.
	dir string
}

// New returns a Path searching roots in order.
func New(roots ...fs.FS) *Path {
	p := &Path{roots: make([]root, 0, len(roots))}
	for _, fsys := range roots {
		p.roots = append(p.roots, root{fsys: fsys})
	}
	return p
}

// Dirs returns a Path over the given directories. Directories that do not
// exist are kept; lookups in them simply miss.
func Dirs(dirs ...string) *Path {
	p := &Path{roots: make([]root, 0, len(dirs))}
	for _, dir := range dirs {
		p.roots = append(p.roots, root{fsys: os.DirFS(dir), dir: dir})
	}
	return p
}

// Open opens the first resource called name. A leading slash is ignored.
func (p *Path) Open(name string) (fs.File, error) {
	clean, ok := cleanName(name)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	for _, r := range p.roots {
		f, err := r.fsys.Open(clean)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to open resource %s: %w", name, err)
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// Candidates returns the on-disk paths name would be read from, one per
// directory root, in search order. Roots that are not directories are left
// out. A file created at any of them can change what Open returns.
func (p *Path) Candidates(name string) []string {
	clean, ok := cleanName(name)
	if !ok {
		return nil
	}
	var paths []string
	for _, r := range p.roots {
		if r.dir != "" {
			paths = append(paths, filepath.Join(r.dir, filepath.FromSlash(clean)))
		}
	}
	return paths
}

func cleanName(name string) (string, bool) {
	clean := strings.TrimPrefix(name, "/")
	return clean, fs.ValidPath(clean)
}
