package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/xaenox/pathway-assist/internal/models"
	"go.uber.org/zap"
)

// Classifier maps a user query to an Intent. Implementations must degrade
// to a usable default rather than fail the turn.
type Classifier interface {
	Classify(ctx context.Context, query string, history []models.HistoryEntry) models.Intent
}

type gptIntentResponse struct {
	Type                string   `json:"type"`
	Confidence          float64  `json:"confidence"`
	Entities            []string `json:"entities"`
	SearchStrategy      string   `json:"search_strategy"`
	ClarificationNeeded bool     `json:"clarification_needed"`
	SuggestedQueries    []string `json:"suggested_queries"`
}

// GPTClassifier asks the LLM for a structured intent. Any API or parse
// failure falls back to the keyword classifier.
type GPTClassifier struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	fallback    *KeywordClassifier
	logger      *zap.Logger
}

func NewGPTClassifier(apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) *GPTClassifier {
	return &GPTClassifier{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		fallback:    NewKeywordClassifier(),
		logger:      logger,
	}
}

func (c *GPTClassifier) Classify(ctx context.Context, query string, history []models.HistoryEntry) models.Intent {
	prompt := fmt.Sprintf(`Classify the intent of a prospective student's message to a vocational education provider.

Intent types: course_inquiry, booking, career_advice, visa_support, pricing, general_question
Search strategies: semantic, relationship, hybrid

Return a JSON object with this structure:
{
    "type": "intent_type",
    "confidence": 0.0,
    "entities": ["entity1", ...],
    "search_strategy": "strategy",
    "clarification_needed": false,
    "suggested_queries": ["query1", ...]
}

Message: %s`, query)

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	for _, h := range history {
		messages = append(messages, openai.ChatCompletionMessage{Role: h.Role, Content: h.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
		},
	)

	if err != nil {
		c.logger.Error("Failed to get intent classification", zap.Error(err))
		return c.fallback.Classify(query)
	}
	if len(resp.Choices) == 0 {
		return c.fallback.Classify(query)
	}

	var parsed gptIntentResponse
	response := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		c.logger.Error("Failed to parse intent classification",
			zap.Error(err),
			zap.String("response", response))
		return c.fallback.Classify(query)
	}

	intent := models.Intent{
		Type:                models.IntentType(parsed.Type),
		Confidence:          parsed.Confidence,
		Entities:            parsed.Entities,
		SearchStrategy:      models.SearchStrategy(parsed.SearchStrategy),
		ClarificationNeeded: parsed.ClarificationNeeded,
		SuggestedQueries:    parsed.SuggestedQueries,
	}
	if !validIntentType(intent.Type) {
		intent.Type = models.IntentGeneralQuestion
	}
	if !validStrategy(intent.SearchStrategy) {
		intent.SearchStrategy = models.SearchSemantic
	}
	if intent.Entities == nil {
		intent.Entities = []string{}
	}
	return intent
}

func validIntentType(t models.IntentType) bool {
	switch t {
	case models.IntentCourseInquiry, models.IntentBooking, models.IntentCareerAdvice,
		models.IntentVisaSupport, models.IntentPricing, models.IntentGeneralQuestion:
		return true
	}
	return false
}

func validStrategy(s models.SearchStrategy) bool {
	switch s {
	case models.SearchSemantic, models.SearchRelationship, models.SearchHybrid:
		return true
	}
	return false
}
