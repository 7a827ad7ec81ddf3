package ayurflow

// Well-known payload keys shared between stages and the formatter.
const (
	KeyError     = "error"
	KeyCancelled = "cancelled"

	KeySymptoms   = "symptoms"
	KeyProperties = "properties"
	KeySeverity   = "severity"
	KeyDuration   = "duration"

	KeyPrimaryDosha   = "primary_dosha"
	KeySecondaryDosha = "secondary_dosha"
	KeyVataScore      = "vata_score"
	KeyPittaScore     = "pitta_score"
	KeyKaphaScore     = "kapha_score"
	KeyConfidence     = "confidence"
	KeyReasoning      = "reasoning"

	KeyLifestyle     = "lifestyle"
	KeyDiet          = "diet"
	KeyHerbs         = "herbs"
	KeyExercise      = "exercise"
	KeyWhenToConsult = "when_to_consult"

	KeyRiskLevel             = "risk_level"
	KeySafeToRecommend       = "safe_to_recommend"
	KeyWarnings              = "warnings"
	KeyContraindications     = "contraindications"
	KeyMandatoryConsultation = "mandatory_consultation"
	KeyWhenToStop            = "when_to_stop"
)

// Payload is the structured output of one stage. Stages exchange plain
// mappings so a failed or partial upstream result never breaks a reader;
// all accessors return zero values instead of panicking.
type Payload map[string]any

// ErrorPayload builds the explicit failure marker a stage's field holds
// when its collaborator failed. Downstream stages detect it with IsError.
func ErrorPayload(err error) Payload {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Payload{KeyError: msg}
}

// CancelPayload marks a stage that was skipped because the invocation was
// cancelled. It is also an error marker: IsError reports true for it.
func CancelPayload(err error) Payload {
	p := ErrorPayload(err)
	p[KeyCancelled] = true
	return p
}

func (p Payload) IsEmpty() bool {
	return len(p) == 0
}

// IsError reports whether the payload is a failure marker.
func (p Payload) IsError() bool {
	_, ok := p[KeyError]
	return ok
}

// IsCancel reports whether the payload marks a stage skipped on cancellation.
func (p Payload) IsCancel() bool {
	return p.GetBool(KeyCancelled)
}

func (p Payload) Err() string {
	return p.GetString(KeyError)
}

func (p Payload) GetString(key string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return ""
}

func (p Payload) GetBool(key string) bool {
	if b, ok := p[key].(bool); ok {
		return b
	}
	return false
}

func (p Payload) GetFloat(key string) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// GetStrings returns a string slice value, tolerating both []string and
// []any encodings (the latter appears after JSON round-trips).
func (p Payload) GetStrings(key string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// SafeToRecommend is the gate read. It fails closed: an empty payload, a
// failure marker, or a missing/mistyped key all read as "do not recommend".
func (p Payload) SafeToRecommend() bool {
	if p.IsEmpty() || p.IsError() {
		return false
	}
	return p.GetBool(KeySafeToRecommend)
}
