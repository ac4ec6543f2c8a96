package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/xaenox/pathway-assist/internal/agent"
	"github.com/xaenox/pathway-assist/internal/generator"
	"github.com/xaenox/pathway-assist/internal/intent"
	"github.com/xaenox/pathway-assist/internal/models"
	"github.com/xaenox/pathway-assist/internal/persona"
	"github.com/xaenox/pathway-assist/internal/security"
	"github.com/xaenox/pathway-assist/internal/storage"
	"github.com/xaenox/pathway-assist/internal/validator"
	"go.uber.org/zap"
)

// fallbackResponse is returned when response generation fails. The user
// must always see text, never a raw error.
const fallbackResponse = "I'm sorry, I'm having trouble answering that right now. " +
	"Please try again in a moment, or call us directly and our team will help you."

// TurnRequest is one inbound conversational turn.
type TurnRequest struct {
	Content         string                `json:"content"`
	Channel         models.Channel        `json:"channel"`
	SessionID       string                `json:"session_id"`
	UserID          string                `json:"user_id,omitempty"`
	UserDisplayName string                `json:"user_display_name,omitempty"`
	History         []models.HistoryEntry `json:"conversation_history,omitempty"`
}

// TurnResponse is the envelope returned to the transport.
type TurnResponse struct {
	Blocked        bool               `json:"blocked"`
	SecurityReason string             `json:"security_reason,omitempty"`
	Response       string             `json:"response"`
	Diagnostics    models.Diagnostics `json:"diagnostics"`
}

// Orchestrator sequences the pipeline for each turn: scan, classify and
// detect in parallel, route, generate, validate, persist.
type Orchestrator struct {
	scanner    *security.Scanner
	classifier intent.Classifier
	detector   *persona.Detector
	router     *agent.Router
	generator  generator.Generator
	validator  *validator.Validator
	store      storage.Storage
	personas   persona.Store
	logger     *zap.Logger
}

func New(
	scanner *security.Scanner,
	classifier intent.Classifier,
	detector *persona.Detector,
	router *agent.Router,
	gen generator.Generator,
	v *validator.Validator,
	store storage.Storage,
	personas persona.Store,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		scanner:    scanner,
		classifier: classifier,
		detector:   detector,
		router:     router,
		generator:  gen,
		validator:  v,
		store:      store,
		personas:   personas,
		logger:     logger,
	}
}

// HandleTurn runs the full pipeline for one inbound message.
func (o *Orchestrator) HandleTurn(ctx context.Context, req TurnRequest) TurnResponse {
	scan := o.scanner.QuickScan(ctx, models.ScanRequest{
		Content:   req.Content,
		Channel:   req.Channel,
		SessionID: req.SessionID,
		UserID:    req.UserID,
	})

	// Hard short-circuit: a blocked turn never reaches classification,
	// persona detection, or the agent.
	if !scan.Allowed {
		return TurnResponse{
			Blocked:        true,
			SecurityReason: scan.Reason,
			Response:       scan.SafeContent,
			Diagnostics: models.Diagnostics{
				Security: scan,
				Agent:    "",
			},
		}
	}

	// Intent classification and persona detection are independent and run
	// concurrently; both default on failure.
	intentCh := make(chan models.Intent, 1)
	personaCh := make(chan models.PersonaDetection, 1)

	go func() {
		// A panicking collaborator must not take the process down; the turn
		// proceeds with the generic intent.
		defer func() {
			if r := recover(); r != nil {
				o.logger.Error("intent classification panicked",
					zap.Any("panic", r),
					zap.String("session_id", req.SessionID))
				intentCh <- models.GenericIntent()
			}
		}()
		intentCh <- o.classifier.Classify(ctx, req.Content, req.History)
	}()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				o.logger.Error("persona detection panicked",
					zap.Any("panic", r),
					zap.String("session_id", req.SessionID))
				personaCh <- models.PersonaDetection{Signals: []string{}, EmotionalNeeds: []string{}}
			}
		}()
		personaCh <- o.detector.Detect(ctx, req.Content)
	}()

	turnIntent := <-intentCh
	detection := <-personaCh

	agentName := o.router.Route(req.Content, turnIntent, req.SessionID)
	agentCtx := agent.ContextFor(agentName)

	response, err := o.generator.Generate(ctx, generator.Request{
		Query:        req.Content,
		AgentContext: agentCtx,
		History:      req.History,
		Persona:      detection.Persona,
		JourneyStage: detection.JourneyStage,
	})
	if err != nil {
		o.logger.Error("response generation failed, using fallback",
			zap.Error(err),
			zap.String("session_id", req.SessionID),
			zap.String("agent", agentName))
		response = fallbackResponse
	}

	validation := o.validator.Validate(response, validator.Context{
		SecurityFlags:     scan.Flags,
		UserDisplayName:   req.UserDisplayName,
		PersonaFirstNames: o.personaFirstNames(ctx),
	})
	if !validation.IsValid {
		o.logger.Warn("response required sanitization",
			zap.Strings("violations", validation.Violations),
			zap.String("session_id", req.SessionID))
	}

	o.persistTurn(ctx, req, validation.SanitizedResponse, agentName)

	diagnostics := models.Diagnostics{
		Security: scan,
		Agent:    agentName,
		Intent:   &turnIntent,
	}
	if detection.Persona != nil {
		diagnostics.PersonaMatch = &models.PersonaMatch{
			Name:       detection.Persona.ArchetypeName,
			Similarity: detection.Confidence,
		}
	}

	return TurnResponse{
		Blocked:     false,
		Response:    validation.SanitizedResponse,
		Diagnostics: diagnostics,
	}
}

// HandleVoiceTurn scans a call transcript and returns the call-handling
// decision for the telephony transport.
func (o *Orchestrator) HandleVoiceTurn(ctx context.Context, req TurnRequest) models.AgentDecision {
	scan := o.scanner.QuickScan(ctx, models.ScanRequest{
		Content:   req.Content,
		Channel:   models.ChannelVoice,
		SessionID: req.SessionID,
		UserID:    req.UserID,
	})

	turnIntent := models.GenericIntent()
	if scan.Allowed {
		turnIntent = o.classifier.Classify(ctx, req.Content, req.History)
	}

	return agent.DecideCallAction(scan, turnIntent)
}

// personaFirstNames collects archetype first names for leakage checks. A
// store failure just means no names to redact.
func (o *Orchestrator) personaFirstNames(ctx context.Context) []string {
	records, err := o.personas.ListAll(ctx)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(records))
	for _, r := range records {
		if r.FirstName != "" {
			names = append(names, r.FirstName)
		}
	}
	return names
}

// persistTurn saves both sides of the exchange. Storage failures are logged
// and do not fail the turn.
func (o *Orchestrator) persistTurn(ctx context.Context, req TurnRequest, response, agentName string) {
	now := time.Now()
	userMsg := &models.Message{
		ID:        uuid.New().String(),
		SessionID: req.SessionID,
		UserID:    req.UserID,
		Role:      "user",
		Content:   req.Content,
		Channel:   req.Channel,
		CreatedAt: now,
	}
	assistantMsg := &models.Message{
		ID:        uuid.New().String(),
		SessionID: req.SessionID,
		UserID:    req.UserID,
		Role:      "assistant",
		Content:   response,
		Agent:     agentName,
		Channel:   req.Channel,
		CreatedAt: now,
	}

	if err := o.store.SaveMessage(ctx, userMsg); err != nil {
		o.logger.Error("Failed to save message",
			zap.Error(err),
			zap.String("message_id", userMsg.ID),
			zap.String("session_id", req.SessionID))
	}
	if err := o.store.SaveMessage(ctx, assistantMsg); err != nil {
		o.logger.Error("Failed to save message",
			zap.Error(err),
			zap.String("message_id", assistantMsg.ID),
			zap.String("session_id", req.SessionID))
	}
}
