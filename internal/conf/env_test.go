package conf

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConfigSource_Environment(t *testing.T) {
	tmpDir := t.TempDir()
	mainConfigPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(mainConfigPath, []byte(`
defaults-resource = "app/defaults.properties"
config-path-file = "app.properties"
log-level = "WARN"
ignore-resource-not-found = true
`), 0644); err != nil {
		t.Fatalf("failed to write main config: %v", err)
	}

	cs := &ConfigSource{
		Path:      mainConfigPath,
		DropInDir: filepath.Join(tmpDir, "config.toml.d"),
		Environ: map[string]string{
			"PROPMERGE_CONFIG_PATH_FILE":          "env.properties",
			"PROPMERGE_SEARCH_PATHS":              "/srv/a:/srv/b",
			"PROPMERGE_LOCATIONS":                 "/etc/one.properties,classpath:two.properties",
			"PROPMERGE_LOG_LEVEL":                 "INFO",
			"PROPMERGE_IGNORE_RESOURCE_NOT_FOUND": "false",
			"UNRELATED":                           "x",
		},
	}

	config, err := cs.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := builtin()
	expected.DefaultsResource = "app/defaults.properties"
	expected.ConfigPathFile = "env.properties"
	expected.SearchPaths = []string{"/srv/a", "/srv/b"}
	expected.Locations = []string{"/etc/one.properties", "classpath:two.properties"}
	// INFO is the zero level but is still applied
	expected.LogLevel = slog.LevelInfo
	// false cannot reset a value a file set to true
	expected.IgnoreResourceNotFound = true

	if diff := cmp.Diff(expected, config); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigSource_EnvironmentInvalidLevel(t *testing.T) {
	cs := &ConfigSource{
		Path:    filepath.Join(t.TempDir(), "config.toml"),
		Environ: map[string]string{"PROPMERGE_LOG_LEVEL": "LOUD"},
	}
	if _, err := cs.Read(); err == nil {
		t.Error("expected error but got none")
	}
}

func TestConfigSource_EnvironmentInvalidBool(t *testing.T) {
	cs := &ConfigSource{
		Path:    filepath.Join(t.TempDir(), "config.toml"),
		Environ: map[string]string{"PROPMERGE_IGNORE_RESOURCE_NOT_FOUND": "maybe"},
	}
	if _, err := cs.Read(); err == nil {
		t.Error("expected error but got none")
	}
}
