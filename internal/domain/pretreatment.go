package domain

import (
	"encoding/json"
	"fmt"
)

// Counter names one progress field of the pre-treatment state document.
type Counter string

const (
	CounterUnderstandYourself Counter = "understandYourself"
	CounterUnderstandEmotions Counter = "understandEmotions"
	CounterAboutDBT           Counter = "aboutDBT"
	CounterDBTSkills          Counter = "dbtSkills"
	CounterDBTJourney         Counter = "dbtJourney"

	// CounterStepsCompleted is the top-level stepsCompleted field rather
	// than a member of dbtOverviewPartsCompleted.
	CounterStepsCompleted Counter = "stepsCompleted"
)

const (
	fieldStepsCompleted = "stepsCompleted"
	fieldOverviewParts  = "dbtOverviewPartsCompleted"
)

var counterMax = map[Counter]int{
	CounterUnderstandYourself: 3,
	CounterUnderstandEmotions: 3,
	CounterAboutDBT:           3,
	CounterDBTSkills:          6,
	CounterDBTJourney:         4,
	CounterStepsCompleted:     4,
}

// OverviewCounters lists the dbtOverviewPartsCompleted members in display order.
var OverviewCounters = []Counter{
	CounterUnderstandYourself,
	CounterUnderstandEmotions,
	CounterAboutDBT,
	CounterDBTSkills,
	CounterDBTJourney,
}

// Valid reports whether c is a known counter.
func (c Counter) Valid() bool {
	_, ok := counterMax[c]
	return ok
}

// Max returns the highest step the counter can hold, or 0 if unknown.
func (c Counter) Max() int {
	return counterMax[c]
}

// PreTreatmentState is the shared server document tracking onboarding and
// psychoeducation progress. Members the client does not interpret are kept
// verbatim so a read-modify-write only changes the counter it targets.
type PreTreatmentState struct {
	fields map[string]json.RawMessage
}

// NewPreTreatmentState returns an empty document.
func NewPreTreatmentState() PreTreatmentState {
	return PreTreatmentState{fields: map[string]json.RawMessage{}}
}

func (s *PreTreatmentState) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	s.fields = fields
	return nil
}

func (s PreTreatmentState) MarshalJSON() ([]byte, error) {
	if s.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.fields)
}

// Validate checks that the counter members, when present, are integers.
func (s PreTreatmentState) Validate() error {
	if raw, ok := s.fields[fieldStepsCompleted]; ok && !isNull(raw) {
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("%s: %w", fieldStepsCompleted, err)
		}
	}
	parts, err := s.parts()
	if err != nil {
		return err
	}
	for _, c := range OverviewCounters {
		raw, ok := parts[string(c)]
		if !ok || isNull(raw) {
			continue
		}
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("%s.%s: %w", fieldOverviewParts, c, err)
		}
	}
	return nil
}

// Counter returns the stored value of c, or 0 when absent.
func (s PreTreatmentState) Counter(c Counter) int {
	var raw json.RawMessage
	if c == CounterStepsCompleted {
		raw = s.fields[fieldStepsCompleted]
	} else {
		parts, err := s.parts()
		if err != nil {
			return 0
		}
		raw = parts[string(c)]
	}
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	return n
}

// WithCounter returns a copy of the document with c set to value. Every
// other member, including other counters, is carried over unchanged.
func (s PreTreatmentState) WithCounter(c Counter, value int) (PreTreatmentState, error) {
	if !c.Valid() {
		return PreTreatmentState{}, fmt.Errorf("unknown counter %q", c)
	}
	out := s.Clone()
	encoded, err := json.Marshal(value)
	if err != nil {
		return PreTreatmentState{}, err
	}

	if c == CounterStepsCompleted {
		out.fields[fieldStepsCompleted] = encoded
		return out, nil
	}

	parts, err := s.parts()
	if err != nil {
		return PreTreatmentState{}, err
	}
	merged := make(map[string]json.RawMessage, len(parts)+1)
	for k, v := range parts {
		merged[k] = v
	}
	merged[string(c)] = encoded
	rawParts, err := json.Marshal(merged)
	if err != nil {
		return PreTreatmentState{}, err
	}
	out.fields[fieldOverviewParts] = rawParts
	return out, nil
}

// Clone returns a document that shares no maps with s.
func (s PreTreatmentState) Clone() PreTreatmentState {
	out := NewPreTreatmentState()
	for k, v := range s.fields {
		cp := make(json.RawMessage, len(v))
		copy(cp, v)
		out.fields[k] = cp
	}
	return out
}

// Raw returns the undecoded member stored under key.
func (s PreTreatmentState) Raw(key string) (json.RawMessage, bool) {
	v, ok := s.fields[key]
	return v, ok
}

func (s PreTreatmentState) parts() (map[string]json.RawMessage, error) {
	raw, ok := s.fields[fieldOverviewParts]
	if !ok || isNull(raw) {
		return map[string]json.RawMessage{}, nil
	}
	var parts map[string]json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return nil, fmt.Errorf("%s: %w", fieldOverviewParts, err)
	}
	if parts == nil {
		parts = map[string]json.RawMessage{}
	}
	return parts, nil
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
