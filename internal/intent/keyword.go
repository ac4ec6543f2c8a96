package intent

import (
	"strings"

	"github.com/xaenox/pathway-assist/internal/models"
)

// keywordRule maps query keywords to an intent type. Rules are evaluated in
// order; the first match wins.
type keywordRule struct {
	intentType models.IntentType
	strategy   models.SearchStrategy
	keywords   []string
}

var keywordRules = []keywordRule{
	{models.IntentBooking, models.SearchRelationship, []string{
		"book", "booking", "appointment", "consultation", "schedule", "call back", "callback", "speak to someone"}},
	{models.IntentVisaSupport, models.SearchHybrid, []string{
		"visa", "immigration", "485", "500", "permanent residency", "work rights", "international student"}},
	{models.IntentPricing, models.SearchRelationship, []string{
		"price", "cost", "fee", "payment plan", "how much", "discount", "afford"}},
	{models.IntentCareerAdvice, models.SearchHybrid, []string{
		"career", "job", "salary", "employment", "industry", "get hired", "transition"}},
	{models.IntentCourseInquiry, models.SearchSemantic, []string{
		"course", "bootcamp", "program", "curriculum", "syllabus", "learn", "study", "certificate"}},
}

// KeywordClassifier is the offline fallback when the LLM classifier is
// unavailable. Confidence is fixed and low so downstream consumers can tell
// a keyword guess from a model classification.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (c *KeywordClassifier) Classify(query string) models.Intent {
	text := strings.ToLower(query)

	for _, rule := range keywordRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return models.Intent{
					Type:           rule.intentType,
					Confidence:     0.6,
					Entities:       []string{keyword},
					SearchStrategy: rule.strategy,
				}
			}
		}
	}

	return models.GenericIntent()
}
