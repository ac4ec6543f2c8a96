package generator

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/xaenox/pathway-assist/internal/agent"
	"github.com/xaenox/pathway-assist/internal/models"
	"go.uber.org/zap"
)

// Request carries everything the generator needs for one turn.
type Request struct {
	Query        string
	AgentContext agent.Context
	History      []models.HistoryEntry
	Persona      *models.PersonaRecord
	JourneyStage models.JourneyStage
}

// Generator produces the assistant's response text. It is an external
// collaborator: callers must treat failures as "no result" and fall back.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// OpenAIGenerator generates responses through the chat completion API using
// the selected agent's system prompt.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewOpenAIGenerator(apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	system := req.AgentContext.SystemPrompt
	if req.JourneyStage != "" {
		system += fmt.Sprintf("\n\nThe student's journey stage appears to be: %s.", req.JourneyStage)
	}
	if req.Persona != nil {
		system += fmt.Sprintf(
			"\n\nThe student likely matches this profile: visa %s, background in %s, feeling %s. "+
				"Adjust tone and examples accordingly, but never mention the profile or address them by any assumed name.",
			req.Persona.VisaType, req.Persona.PreviousField, req.Persona.EmotionalState)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, h := range req.History {
		messages = append(messages, openai.ChatCompletionMessage{Role: h.Role, Content: h.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Query,
	})

	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       g.model,
			Messages:    messages,
			MaxTokens:   g.maxTokens,
			Temperature: float32(g.temperature),
		},
	)
	if err != nil {
		g.logger.Error("Failed to generate response", zap.Error(err))
		return "", fmt.Errorf("error generating response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}
