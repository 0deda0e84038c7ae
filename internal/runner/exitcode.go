package runner

import (
	"errors"
	"fmt"

	"github.com/julianshen/chunkmap/internal/registry"
)

// ExitError is returned when a command should exit with a non-zero code.
// Using a typed error instead of os.Exit ensures deferred cleanup runs.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFromError maps err to a process exit code: 0 for nil, the
// embedded code for an *ExitError and 1 for anything else.
func ExitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// userError reports whether err stems from the registry contents or the
// requested chunk rather than from an internal failure.
func userError(err error) bool {
	return errors.Is(err, registry.ErrRegistryNotFound) ||
		errors.Is(err, registry.ErrMalformedRegistry) ||
		errors.Is(err, registry.ErrNoCurrentChunk) ||
		errors.Is(err, registry.ErrChunkNotFound)
}

func exitWith(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}
