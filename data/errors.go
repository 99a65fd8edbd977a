package data

import (
	"errors"
	"sync"
)

// Standard errors that store backends and namespace operations should use.
var (
	// Configuration errors
	ErrConfigMissing = errors.New("ossfm: store configuration missing")

	// Remote store errors
	ErrNotExist      = errors.New("ossfm: object does not exist")
	ErrExist         = errors.New("ossfm: object already exists")
	ErrNetworkOrAuth = errors.New("ossfm: store unreachable or credentials rejected")

	// Namespace errors
	ErrUnsupported     = errors.New("ossfm: operation not supported")
	ErrPartialMutation = errors.New("ossfm: mutation partially applied")
	ErrInvalid         = errors.New("ossfm: invalid argument")

	// Reader errors
	ErrNotReadable = errors.New("ossfm: object is not a readable text file")
)

// Message maps an error onto a single human-readable line.
// Errors outside the taxonomy are returned as-is.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfigMissing):
		return "No storage configuration found, run 'ossfm configure' first"
	case errors.Is(err, ErrNetworkOrAuth):
		return "Connection failed, check endpoint and credentials: " + err.Error()
	case errors.Is(err, ErrPartialMutation):
		return "Operation incomplete, a duplicate object may exist: " + err.Error()
	case errors.Is(err, ErrNotExist):
		return "Not found: " + err.Error()
	case errors.Is(err, ErrUnsupported):
		return "Not supported: " + err.Error()
	default:
		return err.Error()
	}
}

// Errors collects multiple errors, for batch operations that keep going after a failure.
type Errors struct {
	mu     sync.RWMutex
	errors []error
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = append(e.errors, err)
}

func (e *Errors) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.errors)
}

func (e *Errors) Errors() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.errors) == 0 {
		return nil
	}

	return errors.Join(e.errors...)
}
