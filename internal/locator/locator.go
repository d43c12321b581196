// Package locator resolves a logical configuration file name to a single
// file on disk by searching a list of configuration directories.
package locator

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:generate mockgen -source=locator.go -destination=../mock/locator_mock.go -package=mock

// FileLocator resolves name to exactly one filesystem path.
type FileLocator interface {
	// FindUniqueFile returns the only file matching name. It returns
	// ErrNotFound when nothing matches and an *AmbiguousError when more than
	// one file does.
	FindUniqueFile(name string) (string, error)
}

// ErrNotFound is returned when no file matches the requested name.
var ErrNotFound = errors.New("file not found on search path")

// ErrAmbiguous matches any *AmbiguousError through errors.Is.
var ErrAmbiguous = errors.New("file name is ambiguous on search path")

// AmbiguousError reports every file that matched a name.
type AmbiguousError struct {
	Name    string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%s matches %d files: %s", e.Name, len(e.Matches), strings.Join(e.Matches, ", "))
}

// Is reports whether target is ErrAmbiguous.
func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguous
}

// SearchPath looks for files by base name under a set of root directories,
// descending into subdirectories.
type SearchPath struct {
	Roots []string
}

// FindUniqueFile implements FileLocator. A name containing a path separator
// is matched against the path relative to each root instead of the base name.
func (s *SearchPath) FindUniqueFile(name string) (string, error) {
	matches, err := s.FindFiles(name)
	if err != nil {
		return "", err
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{Name: name, Matches: matches}
	}
}

// FindFiles returns every regular file under the roots matching name, sorted.
// Missing roots are ignored, as are subdirectories that cannot be read.
func (s *SearchPath) FindFiles(name string) ([]string, error) {
	if name == "" {
		return nil, fmt.Errorf("empty file name")
	}
	want := filepath.Clean(filepath.FromSlash(name))
	byRelPath := strings.ContainsRune(want, filepath.Separator)

	seen := make(map[string]bool)
	var matches []string
	for _, root := range s.Roots {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && path != root {
					slog.Debug("skipping unreadable directory", "dir", path, "error", err)
					return fs.SkipDir
				}
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}

			candidate := d.Name()
			if byRelPath {
				rel, err := filepath.Rel(root, path)
				if err != nil {
					return nil
				}
				candidate = rel
			}
			if candidate != want {
				return nil
			}

			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			if !seen[abs] {
				seen[abs] = true
				matches = append(matches, abs)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search %s: %w", root, err)
		}
	}

	sort.Strings(matches)
	return matches, nil
}
