package ayurflow

import (
	"time"

	"github.com/google/uuid"
)

// Field names the Record attribute a stage owns. Update keys and the fixed
// stage order are expressed in terms of these.
type Field string

const (
	FieldRawInput Field = "raw_input"
	FieldSymptoms Field = "structured_symptoms"
	FieldDosha    Field = "dosha_analysis"
	FieldGuidance Field = "guidance"
	FieldSafety   Field = "safety_flags"
	FieldResponse Field = "final_response"
)

// StageFields is the fixed write order of the five stage-owned fields.
var StageFields = []Field{FieldSymptoms, FieldDosha, FieldGuidance, FieldSafety, FieldResponse}

// Update is a partial, field-level write returned by a stage. Payload
// fields carry a Payload value; FieldResponse carries a string. A stage
// never mutates the Record directly; the engine merges its Update.
type Update map[Field]any

// Record is the shared state of one pipeline invocation. It is created
// with RawInput set and every other field at a defined empty value, then
// extended additively by each stage in order. Records are never reused
// across invocations.
type Record struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	RawInput           string  `json:"raw_input"`
	StructuredSymptoms Payload `json:"structured_symptoms"`
	DoshaAnalysis      Payload `json:"dosha_analysis"`
	Guidance           Payload `json:"guidance"`
	SafetyFlags        Payload `json:"safety_flags"`
	FinalResponse      string  `json:"final_response"`

	Trace []Outcome `json:"trace,omitempty"`
}

func NewRecord(rawInput string) *Record {
	return &Record{
		ID:                 uuid.New(),
		CreatedAt:          time.Now().UTC(),
		RawInput:           rawInput,
		StructuredSymptoms: Payload{},
		DoshaAnalysis:      Payload{},
		Guidance:           Payload{},
		SafetyFlags:        Payload{},
	}
}

// Apply merges a partial update into the Record with field-level overwrite
// of empty placeholders only. Fields already written stay untouched, so
// applying the same update twice produces no additional mutation. RawInput
// is set once at creation and is never a valid update target.
func (r *Record) Apply(u Update) {
	for field, value := range u {
		switch field {
		case FieldSymptoms:
			r.StructuredSymptoms = mergePayload(r.StructuredSymptoms, value)
		case FieldDosha:
			r.DoshaAnalysis = mergePayload(r.DoshaAnalysis, value)
		case FieldGuidance:
			r.Guidance = mergePayload(r.Guidance, value)
		case FieldSafety:
			r.SafetyFlags = mergePayload(r.SafetyFlags, value)
		case FieldResponse:
			if r.FinalResponse == "" {
				if s, ok := value.(string); ok {
					r.FinalResponse = s
				}
			}
		}
	}
}

// FieldPayload returns the payload currently held by a stage-owned mapping
// field. FieldRawInput and FieldResponse are not mappings and return nil.
func (r *Record) FieldPayload(f Field) Payload {
	switch f {
	case FieldSymptoms:
		return r.StructuredSymptoms
	case FieldDosha:
		return r.DoshaAnalysis
	case FieldGuidance:
		return r.Guidance
	case FieldSafety:
		return r.SafetyFlags
	}
	return nil
}

// Written reports whether a stage-owned field already holds a value.
func (r *Record) Written(f Field) bool {
	if f == FieldResponse {
		return r.FinalResponse != ""
	}
	if f == FieldRawInput {
		return true
	}
	return !r.FieldPayload(f).IsEmpty()
}

// AppendTrace records a stage outcome. Trace entries are engine bookkeeping,
// not stage-owned state, and do not participate in the write-once merge.
func (r *Record) AppendTrace(out Outcome) {
	r.Trace = append(r.Trace, out)
}

func mergePayload(current Payload, value any) Payload {
	if !current.IsEmpty() {
		return current
	}
	switch v := value.(type) {
	case Payload:
		if v != nil {
			return v
		}
	case map[string]any:
		if v != nil {
			return Payload(v)
		}
	}
	return current
}
