package models

// IntentType categorizes what the user is trying to do this turn.
type IntentType string

const (
	IntentCourseInquiry   IntentType = "course_inquiry"
	IntentBooking         IntentType = "booking"
	IntentCareerAdvice    IntentType = "career_advice"
	IntentVisaSupport     IntentType = "visa_support"
	IntentPricing         IntentType = "pricing"
	IntentGeneralQuestion IntentType = "general_question"
)

// SearchStrategy suggests how downstream retrieval should query the
// knowledge base for this intent.
type SearchStrategy string

const (
	SearchSemantic     SearchStrategy = "semantic"
	SearchRelationship SearchStrategy = "relationship"
	SearchHybrid       SearchStrategy = "hybrid"
)

// Intent is the classifier's reading of a single user turn.
type Intent struct {
	Type                IntentType     `json:"type"`
	Confidence          float64        `json:"confidence"`
	Entities            []string       `json:"entities"`
	SearchStrategy      SearchStrategy `json:"search_strategy"`
	ClarificationNeeded bool           `json:"clarification_needed"`
	SuggestedQueries    []string       `json:"suggested_queries,omitempty"`
}

// GenericIntent is the default used when classification fails or times out.
func GenericIntent() Intent {
	return Intent{
		Type:           IntentGeneralQuestion,
		Confidence:     0.3,
		Entities:       []string{},
		SearchStrategy: SearchSemantic,
	}
}
