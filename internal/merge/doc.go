// Package merge builds one property map out of up to four optional sources.
//
// # Load Order
//
// Sources are applied in a fixed order and later sources overwrite keys set by
// earlier ones:
//
//  1. Default properties, a resource looked up on the resource path
//  2. Registered locations, an ordered list of property files
//  3. The properties file found by the file locator on the config search path
//  4. The file whose absolute path is held in an environment variable
//
// Only a failure to load the default properties aborts the merge. A failing
// registered-locations loader is also returned because that loader decides
// itself what it tolerates (see FileLocations.IgnoreResourceNotFound). Steps 3
// and 4 are best effort: on any error a warning is logged and the values
// accumulated so far are kept.
//
// # Usage
//
//	m := &merge.Merger{
//	    DefaultsResource: "app/defaults.properties",
//	    Resources:        resource.Dirs("/usr/share/app"),
//	    Locations:        &merge.FileLocations{Paths: []string{"/etc/app/app.properties"}},
//	    ConfigPathFile:   "app.properties",
//	    Locator:          &locator.SearchPath{Roots: []string{"/etc/app/conf.d"}},
//	}
//	props, err := m.Merge()
package merge
