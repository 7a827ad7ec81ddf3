// Package ayurflow defines the shared state threaded through the
// consultation pipeline: the Record, the stage payloads, and the
// per-stage Outcome trichotomy.
//
// Highlights:
// - Record: one append-only state object per invocation
// - Payload: a stage's structured output with non-panicking accessors
// - ErrorPayload/CancelPayload: explicit failure markers, never absent fields
// - Update: a partial, field-level write merged centrally by the engine
// - Outcome: success/failure/cancel result of a single stage run
package ayurflow
