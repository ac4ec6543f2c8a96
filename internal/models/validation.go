package models

// ResponseType classifies a validated response for downstream handling.
type ResponseType string

const (
	ResponseNormal           ResponseType = "normal"
	ResponseCrisis           ResponseType = "crisis"
	ResponseEmotionalSupport ResponseType = "emotional_support"
	ResponseBlocked          ResponseType = "blocked"
)

// ValidationResult is the outcome of post-processing a generated response.
// IsValid is advisory: the sanitized response is always usable.
type ValidationResult struct {
	IsValid                 bool         `json:"is_valid"`
	SanitizedResponse       string       `json:"sanitized_response"`
	Violations              []string     `json:"violations"`
	RequiresHumanEscalation bool         `json:"requires_human_escalation"`
	ResponseType            ResponseType `json:"response_type"`
}
