package conf

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultPath is the main settings file.
	DefaultPath = "/etc/propmerge/config.toml"
	// DefaultDropInDir holds drop-in settings files.
	DefaultDropInDir = "/etc/propmerge/config.toml.d/"
)

// defaultConfig contains the embedded default settings. It is the base layer
// applied before the main file, drop-in files and the environment.
//
//go:embed default.toml
var defaultConfig string

// Config holds the resolved settings of the property merge.
type Config struct {
	// DefaultsResource names the default properties on the classpath.
	DefaultsResource string
	// Classpath lists the directories searched for resources, in order.
	Classpath []string
	// ConfigPathFile is the properties file name looked up on SearchPaths.
	ConfigPathFile string
	SearchPaths    []string
	// Locations are the registered properties files, loaded in order.
	Locations              []string
	IgnoreResourceNotFound bool
	// EnvVar names the variable holding an absolute properties file path.
	EnvVar   string
	Encoding string
	LogLevel slog.Level
}

// Update applies non-nil values from a configDTO.
func (c *Config) Update(dto configDTO) {
	if dto.DefaultsResource != nil {
		c.DefaultsResource = *dto.DefaultsResource
	}
	if dto.Classpath != nil {
		c.Classpath = *dto.Classpath
	}
	if dto.ConfigPathFile != nil {
		c.ConfigPathFile = *dto.ConfigPathFile
	}
	if dto.SearchPaths != nil {
		c.SearchPaths = *dto.SearchPaths
	}
	if dto.Locations != nil {
		c.Locations = *dto.Locations
	}
	if dto.IgnoreResourceNotFound != nil {
		c.IgnoreResourceNotFound = *dto.IgnoreResourceNotFound
	}
	if dto.EnvVar != nil {
		c.EnvVar = *dto.EnvVar
	}
	if dto.Encoding != nil {
		c.Encoding = *dto.Encoding
	}
	if dto.LogLevel != nil {
		if level, ok := ParseLevel(*dto.LogLevel); ok {
			c.LogLevel = level
		}
	}
}

// ParseLevel maps DEBUG, INFO, WARN and ERROR (any case) to a slog.Level.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// ConfigSource orchestrates loading settings from multiple sources.
// See the Read method.
type ConfigSource struct {
	Path      string
	DropInDir string
	// Environ replaces the process environment when non-nil.
	Environ map[string]string
}

// DefaultSource reads the settings from their system-wide locations.
func DefaultSource() *ConfigSource {
	return &ConfigSource{Path: DefaultPath, DropInDir: DefaultDropInDir}
}

// SourceFor reads the settings from path and its "<path>.d" drop-in directory.
func SourceFor(path string) *ConfigSource {
	return &ConfigSource{Path: path, DropInDir: path + ".d"}
}

// Read loads and returns the complete Config by merging all layers:
// 1. Embedded defaults
// 2. Main settings file
// 3. Drop-in files
// 4. PROPMERGE_* environment variables
func (cs *ConfigSource) Read() (Config, error) {
	resolved := Config{}

	dto, err := parseConfigDTO(defaultConfig)
	if err != nil {
		slog.Error("failed to parse embedded defaults", "error", err)
		return resolved, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}
	resolved.Update(dto)

	data, err := os.ReadFile(cs.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			return resolved, fmt.Errorf("failed to load %s: %w", cs.Path, err)
		}
	} else {
		mainDTO, err := parseConfigDTO(string(data))
		if err != nil {
			// A malformed file is an error, silently ignoring it would hide
			// the problem from the user.
			return resolved, fmt.Errorf("failed to parse %s: %w", cs.Path, err)
		}
		resolved.Update(mainDTO)
	}

	dropInDTOs, err := cs.parseDropInFiles()
	if err != nil {
		slog.Error("failed to load drop-in files", "error", err, "dir", cs.DropInDir)
		return resolved, err
	}
	for _, dropInDTO := range dropInDTOs {
		resolved.Update(dropInDTO)
	}

	if err := applyEnvironment(&resolved, cs.Environ); err != nil {
		return resolved, err
	}

	return resolved, nil
}

type configDTO struct {
	DefaultsResource       *string   `toml:"defaults-resource"`
	Classpath              *[]string `toml:"classpath"`
	ConfigPathFile         *string   `toml:"config-path-file"`
	SearchPaths            *[]string `toml:"search-paths"`
	Locations              *[]string `toml:"locations"`
	IgnoreResourceNotFound *bool     `toml:"ignore-resource-not-found"`
	EnvVar                 *string   `toml:"env-var"`
	Encoding               *string   `toml:"encoding"`
	LogLevel               *string   `toml:"log-level"`
}

// parseConfigDTO parses a TOML string into a configDTO. Unknown keys are
// rejected so that typos do not go unnoticed.
func parseConfigDTO(data string) (configDTO, error) {
	var dto configDTO

	md, err := toml.Decode(data, &dto)
	if err != nil {
		return dto, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return dto, fmt.Errorf("unknown settings: %s", strings.Join(keys, ", "))
	}

	return dto, nil
}

// findDropInFiles returns sorted paths to drop-in settings files.
// Returns nil if the drop-in directory doesn't exist (not an error).
func (cs *ConfigSource) findDropInFiles() ([]string, error) {
	if cs.DropInDir == "" {
		return nil, nil
	}
	if _, err := os.Stat(cs.DropInDir); os.IsNotExist(err) {
		return nil, nil
	}

	entries, err := os.ReadDir(cs.DropInDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read drop-in directory %s: %w", cs.DropInDir, err)
	}

	var filenames []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".toml") {
			filenames = append(filenames, filepath.Join(cs.DropInDir, entry.Name()))
		}
	}
	sort.Strings(filenames)

	return filenames, nil
}

// parseDropInFiles loads .toml files.
func (cs *ConfigSource) parseDropInFiles() ([]configDTO, error) {
	paths, err := cs.findDropInFiles()
	if err != nil {
		return nil, err
	}

	var dtos []configDTO
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		dto, err := parseConfigDTO(string(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		dtos = append(dtos, dto)
	}

	return dtos, nil
}
