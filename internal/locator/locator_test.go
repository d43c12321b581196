package locator

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte("k=v\n"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestSearchPath_FindUniqueFile(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	writeFile(t, filepath.Join(root, "services", "app", "app.properties"))
	writeFile(t, filepath.Join(root, "shared.properties"))
	writeFile(t, filepath.Join(other, "nested", "shared.properties"))

	s := &SearchPath{Roots: []string{root, other, filepath.Join(root, "nonexistent")}}

	t.Run("unique match in subdirectory", func(t *testing.T) {
		got, err := s.FindUniqueFile("app.properties")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := filepath.Join(root, "services", "app", "app.properties")
		if got != want {
			t.Errorf("got %s, want %s", got, want)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.FindUniqueFile("missing.properties")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ambiguous", func(t *testing.T) {
		_, err := s.FindUniqueFile("shared.properties")
		if !errors.Is(err, ErrAmbiguous) {
			t.Fatalf("expected ErrAmbiguous, got %v", err)
		}
		var ambiguous *AmbiguousError
		if !errors.As(err, &ambiguous) {
			t.Fatalf("expected *AmbiguousError, got %T", err)
		}
		want := []string{
			filepath.Join(other, "nested", "shared.properties"),
			filepath.Join(root, "shared.properties"),
		}
		sort.Strings(want)
		if diff := cmp.Diff(want, ambiguous.Matches); diff != "" {
			t.Errorf("Matches mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("relative path disambiguates", func(t *testing.T) {
		got, err := s.FindUniqueFile("nested/shared.properties")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := filepath.Join(other, "nested", "shared.properties"); got != want {
			t.Errorf("got %s, want %s", got, want)
		}
	})
}

func TestSearchPath_NoRoots(t *testing.T) {
	s := &SearchPath{}
	if _, err := s.FindUniqueFile("app.properties"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchPath_SameRootTwice(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.properties"))

	s := &SearchPath{Roots: []string{root, root}}
	if _, err := s.FindUniqueFile("app.properties"); err != nil {
		t.Errorf("a file reached through two roots should still be unique: %v", err)
	}
}
