package merge

import (
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhatinsights/propmerge/internal/properties"
	"github.com/redhatinsights/propmerge/internal/resource"
)

func TestFileLocations_LaterOverridesEarlier(t *testing.T) {
	dir := t.TempDir()
	first := writeProperties(t, filepath.Join(dir, "first.properties"), "a=1\nb=1\n")
	second := writeProperties(t, filepath.Join(dir, "second.properties"), "b=2\n")

	l := &FileLocations{Paths: []string{first, second}}
	got, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, properties.Map{"a": "1", "b": "2"}, got)
}

func TestFileLocations_Missing(t *testing.T) {
	dir := t.TempDir()
	present := writeProperties(t, filepath.Join(dir, "present.properties"), "a=1\n")
	missing := filepath.Join(dir, "missing.properties")

	t.Run("fails by default", func(t *testing.T) {
		l := &FileLocations{Paths: []string{present, missing}}
		_, err := l.Load()
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("skipped when ignored", func(t *testing.T) {
		logger, logs := bufferLogger()
		l := &FileLocations{Paths: []string{missing, present}, IgnoreResourceNotFound: true, Logger: logger}
		got, err := l.Load()
		require.NoError(t, err)
		assert.Equal(t, properties.Map{"a": "1"}, got)
		assert.Contains(t, logs.String(), "missing.properties")
	})
}

func TestFileLocations_MalformedAlwaysFails(t *testing.T) {
	dir := t.TempDir()
	bad := writeProperties(t, filepath.Join(dir, "bad.properties"), "x=\\uGGGG\n")

	l := &FileLocations{Paths: []string{bad}, IgnoreResourceNotFound: true}
	_, err := l.Load()
	assert.Error(t, err)
}

func TestFileLocations_Classpath(t *testing.T) {
	dir := t.TempDir()
	onDisk := writeProperties(t, filepath.Join(dir, "disk.properties"), "b=disk\n")

	l := &FileLocations{
		Paths:     []string{"classpath:app/base.properties", onDisk},
		Resources: fstest.MapFS{"app/base.properties": {Data: []byte("a=cp\nb=cp\n")}},
	}
	got, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, properties.Map{"a": "cp", "b": "disk"}, got)
	assert.Equal(t, []string{onDisk}, l.Files())
}

func TestFileLocations_ClasspathFilesOnDisk(t *testing.T) {
	dir := t.TempDir()
	cp := writeProperties(t, filepath.Join(dir, "cp", "app", "base.properties"), "a=cp\n")
	onDisk := writeProperties(t, filepath.Join(dir, "disk.properties"), "b=disk\n")

	l := &FileLocations{
		Paths:     []string{"classpath:app/base.properties", onDisk},
		Resources: resource.Dirs(filepath.Join(dir, "cp")),
	}
	got, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, properties.Map{"a": "cp", "b": "disk"}, got)
	assert.Equal(t, []string{cp, onDisk}, l.Files())
}

func TestFileLocations_ClasspathWithoutResources(t *testing.T) {
	l := &FileLocations{Paths: []string{"classpath:app/base.properties"}}
	_, err := l.Load()
	assert.ErrorIs(t, err, ErrNoResources)
}
