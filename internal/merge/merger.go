package merge

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/redhatinsights/propmerge/internal/locator"
	"github.com/redhatinsights/propmerge/internal/properties"
)

// DefaultEnvVar is the environment variable consulted when Merger.EnvVar is
// empty.
const DefaultEnvVar = "CONFIG_PROPERTIES_VAR"

// Warner receives warnings about skipped sources. *slog.Logger satisfies it.
type Warner interface {
	Warn(msg string, args ...any)
}

// Merger merges properties from the default resource, the registered
// locations, the config path and the environment, in that order. Every source
// is optional; a zero Merger returns an empty map.
type Merger struct {
	// DefaultsResource is the name of the default properties on Resources.
	DefaultsResource string
	Resources        fs.FS

	Locations LocationLoader

	// ConfigPathFile is the logical file name handed to Locator.
	ConfigPathFile string
	Locator        locator.FileLocator

	// EnvVar names the variable holding an absolute path to a properties
	// file. Defaults to DefaultEnvVar.
	EnvVar    string
	LookupEnv func(string) (string, bool)

	Encoding properties.Encoding
	Logger   Warner
}

// Merge returns the merged properties. The returned map belongs to the caller.
func (m *Merger) Merge() (properties.Map, error) {
	merged, _, err := m.MergeTrace()
	return merged, err
}

// MergeTrace is Merge that also reports where every value came from and which
// sources were skipped. On error the trace is still returned, holding the
// files consulted so far.
func (m *Merger) MergeTrace() (properties.Map, *Trace, error) {
	merged := properties.Map{}
	trace := newTrace()

	if m.DefaultsResource != "" {
		if err := m.mergeDefaults(merged, trace); err != nil {
			return nil, trace, err
		}
	}
	if m.Locations != nil {
		if err := m.mergeLocations(merged, trace); err != nil {
			return nil, trace, err
		}
	}
	if m.ConfigPathFile != "" {
		m.mergeConfigPath(merged, trace)
	}
	m.mergeEnvironment(merged, trace)

	return merged, trace, nil
}

func (m *Merger) mergeDefaults(merged properties.Map, trace *Trace) error {
	trace.addFiles(resourceFiles(m.Resources, m.DefaultsResource)...)
	defaults, err := m.loadDefaults()
	if err != nil {
		return err
	}
	trace.apply(merged, defaults, OriginDefaults)
	return nil
}

func (m *Merger) mergeLocations(merged properties.Map, trace *Trace) error {
	if lister, ok := m.Locations.(interface{ Files() []string }); ok {
		trace.addFiles(lister.Files()...)
	}
	registered, err := m.Locations.Load()
	if err != nil {
		return fmt.Errorf("failed to load registered locations: %w", err)
	}
	trace.apply(merged, registered, OriginLocations)
	return nil
}

func (m *Merger) mergeConfigPath(merged properties.Map, trace *Trace) {
	path, props, err := m.loadConfigPath()
	trace.addFiles(path)
	if err != nil {
		m.skip(trace, OriginConfigPath, m.ConfigPathFile, err,
			"error loading properties from config path, using defaults", "file", m.ConfigPathFile)
		return
	}
	trace.apply(merged, props, OriginConfigPath)
}

func (m *Merger) mergeEnvironment(merged properties.Map, trace *Trace) {
	name := m.envVar()
	path, ok := m.lookupEnv(name)
	if !ok || path == "" {
		return
	}
	trace.addFiles(path)
	props, err := m.loadEnvPath(path)
	if err != nil {
		m.skip(trace, OriginEnvironment, path, err,
			"error loading properties from file named by environment, using defaults",
			"variable", name, "file", path)
		return
	}
	trace.apply(merged, props, OriginEnvironment)
}

// skip warns about a failed optional source and records it in trace.
func (m *Merger) skip(trace *Trace, origin Origin, name string, err error, msg string, args ...any) {
	m.logger().Warn(msg, append(args, "error", err)...)
	trace.Skipped = append(trace.Skipped, &RecoverableSourceError{Origin: origin, Name: name, Err: err})
}

func (m *Merger) loadDefaults() (properties.Map, error) {
	if m.Resources == nil {
		return nil, &FatalConfigError{Resource: m.DefaultsResource, Err: ErrNoResources}
	}
	props, err := properties.ReadFS(m.Resources, m.DefaultsResource, m.Encoding)
	if err != nil {
		return nil, &FatalConfigError{Resource: m.DefaultsResource, Err: err}
	}
	return props, nil
}

// loadConfigPath returns the located path alongside the result so the caller
// can watch it even when parsing failed.
func (m *Merger) loadConfigPath() (string, properties.Map, error) {
	if m.Locator == nil {
		return "", nil, ErrNoLocator
	}
	path, err := m.Locator.FindUniqueFile(m.ConfigPathFile)
	if err != nil {
		return "", nil, err
	}
	props, err := properties.ReadFile(path, m.Encoding)
	return path, props, err
}

func (m *Merger) loadEnvPath(path string) (properties.Map, error) {
	if !filepath.IsAbs(path) {
		return nil, ErrRelativePath
	}
	return properties.ReadFile(path, m.Encoding)
}

func (m *Merger) envVar() string {
	if m.EnvVar == "" {
		return DefaultEnvVar
	}
	return m.EnvVar
}

func (m *Merger) lookupEnv(name string) (string, bool) {
	if m.LookupEnv == nil {
		return os.LookupEnv(name)
	}
	return m.LookupEnv(name)
}

func (m *Merger) logger() Warner {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}
