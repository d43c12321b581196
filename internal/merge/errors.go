package merge

import (
	"errors"
	"fmt"
)

var (
	// ErrRelativePath is reported when the environment names a relative path.
	ErrRelativePath = errors.New("path is not absolute")
	// ErrNoResources is reported when default properties are requested but no
	// resource filesystem is configured.
	ErrNoResources = errors.New("no resource path configured")
	// ErrNoLocator is reported when a config path file is requested but no
	// file locator is configured.
	ErrNoLocator = errors.New("no file locator configured")
)

// FatalConfigError means the default properties could not be loaded. It aborts
// the merge.
type FatalConfigError struct {
	Resource string
	Err      error
}

func (e *FatalConfigError) Error() string {
	return fmt.Sprintf("failed to load default properties %s: %v", e.Resource, e.Err)
}

func (e *FatalConfigError) Unwrap() error { return e.Err }

// RecoverableSourceError describes an optional source that was skipped.
type RecoverableSourceError struct {
	Origin Origin
	// Name is the file name or path the source was configured with.
	Name string
	Err  error
}

func (e *RecoverableSourceError) Error() string {
	return fmt.Sprintf("skipped %s source %s: %v", e.Origin, e.Name, e.Err)
}

func (e *RecoverableSourceError) Unwrap() error { return e.Err }
