package ayurflow

import (
	"context"
	"errors"
)

// ErrCancelled marks stage fields skipped after the invocation's context
// was cancelled.
var ErrCancelled = errors.New("invocation cancelled")

// IsCancellationError distinguishes a cancelled collaborator call from an
// ordinary failure so the stage field gets a cancel marker, not a plain
// error marker.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, ErrCancelled)
}
