// Package conf loads the settings that drive a property merge: which default
// resource to read, where the classpath and config search paths are, which
// locations are registered and which environment variable may name an
// override file.
//
// # Usage
//
//	cs := conf.DefaultSource()
//	config, err := cs.Read()
//	if err != nil {
//	    return err
//	}
//	merger, err := config.NewMerger(slog.Default())
//
// For a custom settings file, use SourceFor or fill in ConfigSource:
//
//	cs := &conf.ConfigSource{
//	    Path:      "/custom/path/config.toml",
//	    DropInDir: "/custom/path/config.toml.d",
//	}
//
// # Load Order
//
// Settings are loaded and applied in four layers:
//
//  1. Embedded defaults
//  2. Main settings file: /etc/propmerge/config.toml
//  3. Drop-in files: /etc/propmerge/config.toml.d/*.toml, in lexicographic order
//  4. PROPMERGE_* environment variables
//
// # Internal Architecture
//
//   - configDTO: internal struct with pointer fields for TOML parsing.
//     Pointers distinguish "not set" (nil) from "set to zero value", so a
//     drop-in can set a value to the empty string.
//
//   - Config: public struct with value fields. Its Update method applies a
//     DTO on top of it.
//
//   - envConfig: the environment layer, parsed with caarlos0/env and overlaid
//     with mergo. Only non-empty variables take effect.
package conf
