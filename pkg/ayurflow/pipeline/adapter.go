package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ayur-ai/ayurflow/pkg/ayurflow"
)

// Collaborator is the injected domain callable one stage wraps: symptom
// parsing, dosha assessment, guidance generation, safety review, or final
// formatting. It reads fields written by earlier stages and returns the
// structured output for its own field: an ayurflow.Payload for mapping
// fields, a string for ayurflow.FieldResponse. The Record is a read-only
// view; the engine performs the merge.
type Collaborator func(ctx context.Context, rec *ayurflow.Record) (any, error)

// Observer receives the outcome of each stage as it completes. Calls are
// best-effort: a panicking observer is swallowed and never affects the run.
type Observer func(ctx context.Context, out ayurflow.Outcome)

// Adapter binds one collaborator to the field it owns and contains every
// failure at its boundary. run always returns a partial update, even when
// the collaborator fails, panics, returns a malformed value, or the
// context is already cancelled.
type Adapter struct {
	name   string
	field  ayurflow.Field
	collab Collaborator
}

func NewAdapter(name string, field ayurflow.Field, collab Collaborator) *Adapter {
	return &Adapter{name: name, field: field, collab: collab}
}

func (a *Adapter) Name() string         { return a.name }
func (a *Adapter) Field() ayurflow.Field { return a.field }

func (a *Adapter) run(ctx context.Context, rec *ayurflow.Record, log *zap.Logger) (upd ayurflow.Update, out ayurflow.Outcome) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("stage %s: panic: %v", a.name, r)
			log.Error("stage panicked", zap.String("stage", a.name), zap.Any("panic", r))
			upd = a.failureUpdate(err)
			out = ayurflow.Failed(a.name, a.field, time.Since(start), err)
		}
	}()

	if err := ctx.Err(); err != nil {
		return a.cancelUpdate(err), ayurflow.Cancelled(a.name, a.field, err)
	}

	log.Debug("stage starting", zap.String("stage", a.name))

	raw, err := a.collab(ctx, rec)
	elapsed := time.Since(start)
	if err != nil {
		if ayurflow.IsCancellationError(err) {
			log.Warn("stage cancelled", zap.String("stage", a.name), zap.Error(err))
			return a.cancelUpdate(err), ayurflow.Cancelled(a.name, a.field, err)
		}
		log.Warn("stage failed", zap.String("stage", a.name), zap.Error(err))
		return a.failureUpdate(err), ayurflow.Failed(a.name, a.field, elapsed, err)
	}

	value, err := a.coerce(raw)
	if err != nil {
		log.Warn("stage returned malformed output", zap.String("stage", a.name), zap.Error(err))
		return a.failureUpdate(err), ayurflow.Failed(a.name, a.field, elapsed, err)
	}

	log.Debug("stage complete", zap.String("stage", a.name), zap.Duration("took", elapsed))
	return ayurflow.Update{a.field: value}, ayurflow.Succeeded(a.name, a.field, elapsed)
}

// coerce validates the collaborator's output against the owned field's
// expected shape. Anything else counts as a collaborator failure.
func (a *Adapter) coerce(raw any) (any, error) {
	if a.field == ayurflow.FieldResponse {
		s, ok := raw.(string)
		if !ok || s == "" {
			return nil, fmt.Errorf("stage %s: expected non-empty string output, got %T", a.name, raw)
		}
		return s, nil
	}
	switch v := raw.(type) {
	case ayurflow.Payload:
		if len(v) > 0 {
			return v, nil
		}
	case map[string]any:
		if len(v) > 0 {
			return ayurflow.Payload(v), nil
		}
	}
	return nil, fmt.Errorf("stage %s: expected non-empty payload output, got %T", a.name, raw)
}

func (a *Adapter) failureUpdate(err error) ayurflow.Update {
	if a.field == ayurflow.FieldResponse {
		return ayurflow.Update{a.field: fallbackResponse(err)}
	}
	return ayurflow.Update{a.field: ayurflow.ErrorPayload(err)}
}

func (a *Adapter) cancelUpdate(err error) ayurflow.Update {
	if a.field == ayurflow.FieldResponse {
		return ayurflow.Update{a.field: fallbackResponse(err)}
	}
	return ayurflow.Update{a.field: ayurflow.CancelPayload(err)}
}
