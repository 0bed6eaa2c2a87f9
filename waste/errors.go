package waste

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned by Classify before a successful Initialize.
var ErrNotInitialized = errors.New("classifier is not initialized")

// ModelLoadError reports that the classifier model could not be fetched or
// initialized. The feature stays unavailable until Initialize is retried.
type ModelLoadError struct {
	Err error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("load model: %v", e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

// FrameError is a failure while classifying a single frame. Callers running a
// capture loop skip the frame and keep going.
type FrameError struct {
	Err error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("classify frame: %v", e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }

// IsModelLoadError reports whether err carries a *ModelLoadError.
func IsModelLoadError(err error) bool {
	var target *ModelLoadError
	return errors.As(err, &target)
}
