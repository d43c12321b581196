package conf

import (
	"os"
	"path/filepath"
	"testing"
)

// TestMissingKeysInDropin tests what happens when a drop-in file
// doesn't specify certain keys - they should NOT overwrite the base config
func TestMissingKeysInDropin(t *testing.T) {
	tmpDir := t.TempDir()
	mainConfigPath := filepath.Join(tmpDir, "config.toml")
	dropinDir := filepath.Join(tmpDir, "config.toml.d")
	if err := os.Mkdir(dropinDir, 0755); err != nil {
		t.Fatalf("failed to create drop-in directory: %v", err)
	}

	writeFile(t, mainConfigPath, `
defaults-resource = "app/defaults.properties"
config-path-file = "app.properties"
env-var = "APP_PROPERTIES"
encoding = "iso-8859-1"
`)
	// Only config-path-file is overridden, the rest must survive
	writeFile(t, filepath.Join(dropinDir, "10-name.toml"), `config-path-file = "service.properties"`)

	cs := &ConfigSource{Path: mainConfigPath, DropInDir: dropinDir, Environ: noEnvironment()}
	config, err := cs.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.DefaultsResource != "app/defaults.properties" {
		t.Errorf("expected DefaultsResource preserved, got %s", config.DefaultsResource)
	}
	if config.ConfigPathFile != "service.properties" {
		t.Errorf("expected ConfigPathFile=service.properties (overridden), got %s", config.ConfigPathFile)
	}
	if config.EnvVar != "APP_PROPERTIES" {
		t.Errorf("expected EnvVar preserved, got %s", config.EnvVar)
	}
	if config.Encoding != "iso-8859-1" {
		t.Errorf("expected Encoding preserved, got %s", config.Encoding)
	}
}

// TestEmptyStringOverwrite tests if we can actually set values to empty strings
func TestEmptyStringOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	mainConfigPath := filepath.Join(tmpDir, "config.toml")
	dropinDir := filepath.Join(tmpDir, "config.toml.d")
	if err := os.Mkdir(dropinDir, 0755); err != nil {
		t.Fatalf("failed to create drop-in directory: %v", err)
	}

	writeFile(t, mainConfigPath, `
defaults-resource = "app/defaults.properties"
config-path-file = "app.properties"
`)
	writeFile(t, filepath.Join(dropinDir, "10-override.toml"), `
defaults-resource = ""
config-path-file = ""
`)

	cs := &ConfigSource{Path: mainConfigPath, DropInDir: dropinDir, Environ: noEnvironment()}
	config, err := cs.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.DefaultsResource != "" {
		t.Errorf("defaults-resource was not overridden to empty: got %s", config.DefaultsResource)
	}
	if config.ConfigPathFile != "" {
		t.Errorf("config-path-file was not overridden to empty: got %s", config.ConfigPathFile)
	}
}
