package trayicon

import (
	"errors"
	"fmt"
)

// Errors returned by this package. More kinds may be added over time, so
// callers should test with errors.Is and errors.As and keep a default case.
var (
	// ErrNotMainThread is returned when a tray icon is created away from the
	// thread running the platform event loop and the platform can tell.
	ErrNotMainThread = errors.New("not on the main thread")

	// ErrClosed is returned by operations on a handle after Close.
	ErrClosed = errors.New("tray icon closed")
)

// OSError wraps a failure reported by the operating system.
type OSError struct {
	Err error
}

func (e *OSError) Error() string {
	return fmt.Sprintf("OS error: %v", e.Err)
}

func (e *OSError) Unwrap() error {
	return e.Err
}

func osError(err error) error {
	if err == nil {
		return nil
	}
	return &OSError{Err: err}
}
