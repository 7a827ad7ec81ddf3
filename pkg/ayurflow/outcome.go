package ayurflow

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Outcome is the result of running one stage: success, failure, or cancel.
// Failures are already contained into the Record as error markers by the
// time an Outcome is observed; the Outcome exists for tracing and progress
// signalling, never for control flow.
type Outcome struct {
	id        uuid.UUID
	stage     string
	field     Field
	createdAt time.Time
	duration  time.Duration
	err       error
	isSuccess bool
	isCancel  bool
}

func Succeeded(stage string, field Field, d time.Duration) Outcome {
	return Outcome{
		id:        uuid.New(),
		stage:     stage,
		field:     field,
		createdAt: time.Now().UTC(),
		duration:  d,
		isSuccess: true,
	}
}

func Failed(stage string, field Field, d time.Duration, err error) Outcome {
	return Outcome{
		id:        uuid.New(),
		stage:     stage,
		field:     field,
		createdAt: time.Now().UTC(),
		duration:  d,
		err:       err,
	}
}

func Cancelled(stage string, field Field, err error) Outcome {
	return Outcome{
		id:        uuid.New(),
		stage:     stage,
		field:     field,
		createdAt: time.Now().UTC(),
		err:       err,
		isCancel:  true,
	}
}

func (o Outcome) ID() uuid.UUID           { return o.id }
func (o Outcome) Stage() string           { return o.stage }
func (o Outcome) Field() Field            { return o.field }
func (o Outcome) CreatedAt() time.Time    { return o.createdAt }
func (o Outcome) Duration() time.Duration { return o.duration }
func (o Outcome) Err() error              { return o.err }
func (o Outcome) IsSuccess() bool         { return o.isSuccess }
func (o Outcome) IsCancel() bool          { return o.isCancel }
func (o Outcome) IsFailure() bool         { return !o.isSuccess && !o.isCancel }

func (o Outcome) status() string {
	switch {
	case o.isSuccess:
		return "success"
	case o.isCancel:
		return "cancelled"
	default:
		return "failed"
	}
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	v := struct {
		Stage      string `json:"stage"`
		Field      string `json:"field"`
		Status     string `json:"status"`
		Error      string `json:"error,omitempty"`
		DurationMS int64  `json:"duration_ms"`
	}{
		Stage:      o.stage,
		Field:      string(o.field),
		Status:     o.status(),
		DurationMS: o.duration.Milliseconds(),
	}
	if o.err != nil {
		v.Error = o.err.Error()
	}
	return json.Marshal(v)
}
