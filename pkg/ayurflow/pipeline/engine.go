package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ayur-ai/ayurflow/pkg/ayurflow"
)

// ErrBadAssembly is returned by New when the pipeline is constructed with
// missing, duplicated, or misordered stage bindings. It is the only hard
// failure the engine ever surfaces; everything at run time degrades into
// markers on the Record instead.
var ErrBadAssembly = errors.New("pipeline: bad assembly")

// fallbackResponse is the formatter-of-last-resort: it guarantees a
// non-empty, fail-closed final response even when the formatter stage
// itself failed or was cancelled.
func fallbackResponse(err error) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return fmt.Sprintf(`AN ERROR OCCURRED WHILE PROCESSING YOUR REQUEST

%s

No recommendations can be shown. Please consult a qualified healthcare
professional directly.

---
SAFETY NOTICE: This is educational Ayurvedic guidance only. It is NOT a
medical diagnosis or prescription. Always consult a qualified Ayurvedic
practitioner (BAMS) and licensed physician before starting any treatment.
In emergencies, contact medical services immediately.`, msg)
}

type Option func(*Engine)

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

func WithObserver(obs Observer) Option {
	return func(e *Engine) { e.obs = obs }
}

// Engine owns the fixed stage order and drives execution. It holds no
// mutable state between invocations; each Run builds a fresh Record.
type Engine struct {
	adapters []*Adapter
	log      *zap.Logger
	obs      Observer
}

// New assembles the engine from exactly five adapters bound, in order, to
// structured_symptoms, dosha_analysis, guidance, safety_flags and
// final_response. Any other assembly fails immediately with ErrBadAssembly;
// no Record is ever created for a misassembled pipeline.
func New(adapters []*Adapter, opts ...Option) (*Engine, error) {
	if len(adapters) != len(ayurflow.StageFields) {
		return nil, fmt.Errorf("%w: want %d stages, got %d", ErrBadAssembly, len(ayurflow.StageFields), len(adapters))
	}
	for i, a := range adapters {
		if a == nil {
			return nil, fmt.Errorf("%w: stage %d is nil", ErrBadAssembly, i)
		}
		if a.collab == nil {
			return nil, fmt.Errorf("%w: stage %q has no collaborator", ErrBadAssembly, a.name)
		}
		if want := ayurflow.StageFields[i]; a.field != want {
			return nil, fmt.Errorf("%w: stage %d owns %q, want %q", ErrBadAssembly, i, a.field, want)
		}
	}

	e := &Engine{adapters: adapters, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run executes all five stages in fixed order, merging each partial update
// into the Record. It never returns an error and never skips the merge: a
// cancelled context turns remaining stage fields into cancel markers, and
// the returned Record always carries a non-empty FinalResponse.
func (e *Engine) Run(ctx context.Context, rawInput string) *ayurflow.Record {
	rec := ayurflow.NewRecord(rawInput)
	e.log.Debug("pipeline starting", zap.String("record", rec.ID.String()))

	for _, a := range e.adapters {
		upd, out := a.run(ctx, rec, e.log)
		rec.Apply(upd)
		rec.AppendTrace(out)
		e.notify(ctx, out)
	}

	// The formatter adapter already fails closed, but nothing downstream
	// may ever observe an empty response.
	if rec.FinalResponse == "" {
		rec.Apply(ayurflow.Update{ayurflow.FieldResponse: fallbackResponse(errors.New("no response produced"))})
	}

	e.log.Debug("pipeline complete", zap.String("record", rec.ID.String()))
	return rec
}

func (e *Engine) notify(ctx context.Context, out ayurflow.Outcome) {
	if e.obs == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("observer panicked", zap.Any("panic", r))
		}
	}()
	e.obs(ctx, out)
}
