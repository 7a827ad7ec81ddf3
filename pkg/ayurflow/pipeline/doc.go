// Package pipeline drives the fixed five-stage consultation flow:
// symptom -> dosha -> guidance -> safety -> formatter.
//
// Highlights:
// - Collaborator: the injected domain callable a stage wraps
// - Adapter: failure-containing bridge from a collaborator to the engine;
//   a collaborator error, panic, or malformed output becomes an error
//   marker in the stage's field, never a propagated failure
// - Engine: owns the ordering and the write-once merge; Run blocks,
//   RunChan suspends at stage boundaries with identical output
// - the safety gate is one-directional: once safe_to_recommend is false,
//   only the formatter remains and it fails closed
package pipeline
