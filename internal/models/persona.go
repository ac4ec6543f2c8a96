package models

// JourneyStage is a coarse position in the student journey inferred from
// the query.
type JourneyStage string

const (
	StageExploring  JourneyStage = "exploring"
	StageComparing  JourneyStage = "comparing"
	StageReady      JourneyStage = "ready_to_enroll"
	StageTransition JourneyStage = "career_transition"
)

// PersonaRecord is a static reference archetype loaded from the persona
// store. Records are immutable during a request.
type PersonaRecord struct {
	ArchetypeName  string `json:"archetype_name" yaml:"archetype_name"`
	VisaType       string `json:"visa_type" yaml:"visa_type"`
	Location       string `json:"location" yaml:"location"`
	IsRegional     bool   `json:"is_regional" yaml:"is_regional"`
	PreviousField  string `json:"previous_field" yaml:"previous_field"`
	EmotionalState string `json:"emotional_state" yaml:"emotional_state"`
	FirstName      string `json:"first_name" yaml:"first_name"`
	Goal           string `json:"goal,omitempty" yaml:"goal,omitempty"`
}

// PersonaDetection is the advisory outcome of matching a query against the
// candidate archetypes. Persona is nil when no candidate scores above the
// minimum confidence.
type PersonaDetection struct {
	Persona        *PersonaRecord `json:"persona,omitempty"`
	Confidence     int            `json:"confidence"`
	Signals        []string       `json:"signals"`
	JourneyStage   JourneyStage   `json:"journey_stage"`
	EmotionalNeeds []string       `json:"emotional_needs"`
}
