package conf

import (
	"log/slog"

	"github.com/redhatinsights/propmerge/internal/locator"
	"github.com/redhatinsights/propmerge/internal/merge"
	"github.com/redhatinsights/propmerge/internal/properties"
	"github.com/redhatinsights/propmerge/internal/resource"
)

// NewMerger builds a merge.Merger from the settings.
func (c Config) NewMerger(logger *slog.Logger) (*merge.Merger, error) {
	enc, err := properties.ParseEncoding(c.Encoding)
	if err != nil {
		return nil, err
	}

	// A nil *slog.Logger must not end up inside the interface.
	var warner merge.Warner
	if logger != nil {
		warner = logger
	}

	resources := resource.Dirs(c.Classpath...)
	m := &merge.Merger{
		DefaultsResource: c.DefaultsResource,
		Resources:        resources,
		ConfigPathFile:   c.ConfigPathFile,
		Locator:          c.Locator(),
		EnvVar:           c.EnvVar,
		Encoding:         enc,
		Logger:           warner,
	}
	if len(c.Locations) > 0 {
		m.Locations = &merge.FileLocations{
			Paths:                  c.Locations,
			Resources:              resources,
			IgnoreResourceNotFound: c.IgnoreResourceNotFound,
			Encoding:               enc,
			Logger:                 warner,
		}
	}
	return m, nil
}

// Locator returns the file locator searching SearchPaths.
func (c Config) Locator() *locator.SearchPath {
	return &locator.SearchPath{Roots: c.SearchPaths}
}
