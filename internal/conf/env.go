package conf

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every settings environment variable.
const EnvPrefix = "PROPMERGE_"

// envConfig mirrors Config for the environment layer. Lists of directories
// are colon separated like PATH, locations are comma separated.
type envConfig struct {
	DefaultsResource       string   `env:"DEFAULTS_RESOURCE"`
	Classpath              []string `env:"CLASSPATH" envSeparator:":"`
	ConfigPathFile         string   `env:"CONFIG_PATH_FILE"`
	SearchPaths            []string `env:"SEARCH_PATHS" envSeparator:":"`
	Locations              []string `env:"LOCATIONS" envSeparator:","`
	IgnoreResourceNotFound bool     `env:"IGNORE_RESOURCE_NOT_FOUND"`
	EnvVar                 string   `env:"ENV_VAR"`
	Encoding               string   `env:"ENCODING"`
	LogLevel               string   `env:"LOG_LEVEL"`
}

// applyEnvironment overlays the non-empty PROPMERGE_* variables on c. An
// empty variable cannot clear a value, and a false boolean cannot reset one
// set to true by a file.
func applyEnvironment(c *Config, environ map[string]string) error {
	var e envConfig
	if err := env.ParseWithOptions(&e, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	overlay := Config{
		DefaultsResource:       e.DefaultsResource,
		Classpath:              e.Classpath,
		ConfigPathFile:         e.ConfigPathFile,
		SearchPaths:            e.SearchPaths,
		Locations:              e.Locations,
		IgnoreResourceNotFound: e.IgnoreResourceNotFound,
		EnvVar:                 e.EnvVar,
		Encoding:               e.Encoding,
	}
	if err := mergo.Merge(c, overlay, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to merge environment settings: %w", err)
	}

	if e.LogLevel != "" {
		level, ok := ParseLevel(e.LogLevel)
		if !ok {
			return fmt.Errorf("invalid %sLOG_LEVEL %q", EnvPrefix, e.LogLevel)
		}
		c.LogLevel = level
	}
	return nil
}
