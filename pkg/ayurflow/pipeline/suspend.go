package pipeline

import (
	"context"

	"github.com/ayur-ai/ayurflow/pkg/ayurflow"
)

// RunChan is the suspendable entry point: it runs the same five-stage flow
// as Run and delivers the completed Record on the returned channel. Given
// identical input and collaborator behaviour, the Record is identical to a
// blocking Run. The channel is buffered and always receives exactly one
// Record before closing, so a cancelled caller observes either nothing or
// a fully populated Record, never a half-merged one.
func (e *Engine) RunChan(ctx context.Context, rawInput string) <-chan *ayurflow.Record {
	out := make(chan *ayurflow.Record, 1)

	go func() {
		defer close(out)
		out <- e.Run(ctx, rawInput)
	}()

	return out
}

// Await drains a RunChan result, falling back to the context error path
// when the caller's own context dies first. The pipeline goroutine still
// completes and its Record is discarded.
func Await(ctx context.Context, ch <-chan *ayurflow.Record) (*ayurflow.Record, error) {
	select {
	case rec := <-ch:
		return rec, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
