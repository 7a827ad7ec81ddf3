// Package agents provides the built-in, deterministic collaborators for
// the five consultation stages: symptom parsing, dosha assessment,
// guidance generation, safety review, and final formatting.
//
// All collaborators here are rule-based (keyword tables and treatment
// principles) so the default pipeline runs without any model backend.
// The guidance stage can be swapped for an LLM-backed collaborator via
// Options.Guidance.
package agents
