package orchestrator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaenox/pathway-assist/internal/agent"
	"github.com/xaenox/pathway-assist/internal/audit"
	"github.com/xaenox/pathway-assist/internal/cache"
	"github.com/xaenox/pathway-assist/internal/generator"
	"github.com/xaenox/pathway-assist/internal/models"
	"github.com/xaenox/pathway-assist/internal/persona"
	"github.com/xaenox/pathway-assist/internal/security"
	"github.com/xaenox/pathway-assist/internal/storage"
	"github.com/xaenox/pathway-assist/internal/validator"
	"go.uber.org/zap"
)

type stubClassifier struct {
	intent models.Intent
	calls  atomic.Int32
}

func (s *stubClassifier) Classify(ctx context.Context, query string, history []models.HistoryEntry) models.Intent {
	s.calls.Add(1)
	return s.intent
}

type stubGenerator struct {
	response string
	err      error
	calls    atomic.Int32
}

func (s *stubGenerator) Generate(ctx context.Context, req generator.Request) (string, error) {
	s.calls.Add(1)
	return s.response, s.err
}

type panickingClassifier struct{}

func (panickingClassifier) Classify(ctx context.Context, query string, history []models.HistoryEntry) models.Intent {
	panic("classifier down")
}

type panickingPersonaStore struct{}

func (panickingPersonaStore) ListAll(ctx context.Context) ([]models.PersonaRecord, error) {
	panic("persona store down")
}

func newTestOrchestrator(t *testing.T, gen *stubGenerator, clf *stubClassifier) (*Orchestrator, *storage.MemoryStorage) {
	t.Helper()
	logger := zap.NewNop()
	limiter := security.NewRateLimiter(cache.NewMemoryCache(), security.DefaultRateLimit, security.DefaultRateWindow, logger)
	scanner := security.NewScanner(limiter, audit.NewMemorySink(), logger)
	personaStore := persona.NewStaticStore([]models.PersonaRecord{
		{ArchetypeName: "graduate-nurse", VisaType: "485", PreviousField: "healthcare", FirstName: "Priya"},
	})
	detector := persona.NewDetector(personaStore, persona.DefaultMinConfidence, logger)
	router := agent.NewRouter(agent.FeatureFlags{UseCareerTracks: true, CareerTrackRollout: 100}, logger)
	store := storage.NewMemoryStorage()

	o := New(scanner, clf, detector, router, gen, validator.New(nil), store, personaStore, logger)
	return o, store
}

func chatTurn(content string) TurnRequest {
	return TurnRequest{
		Content:   content,
		Channel:   models.ChannelChat,
		SessionID: "session-1",
	}
}

func TestHandleTurnHappyPath(t *testing.T) {
	gen := &stubGenerator{response: "We offer bootcamps in data, cybersecurity, and full-stack development."}
	clf := &stubClassifier{intent: models.Intent{Type: models.IntentCourseInquiry, Confidence: 0.9, SearchStrategy: models.SearchSemantic}}
	o, store := newTestOrchestrator(t, gen, clf)

	resp := o.HandleTurn(context.Background(), chatTurn("What bootcamps do you offer?"))

	assert.False(t, resp.Blocked)
	assert.Equal(t, gen.response, resp.Response)
	assert.Equal(t, models.AgentBusinessAnalyst, resp.Diagnostics.Agent)
	require.NotNil(t, resp.Diagnostics.Intent)
	assert.Equal(t, models.IntentCourseInquiry, resp.Diagnostics.Intent.Type)

	msgs, err := store.GetSessionMessages(context.Background(), "session-1", 10)
	require.NoError(t, err)
	assert.Len(t, msgs, 2, "both sides of the exchange are persisted")
}

func TestHandleTurnBlockedShortCircuits(t *testing.T) {
	gen := &stubGenerator{response: "should never be used"}
	clf := &stubClassifier{intent: models.GenericIntent()}
	o, store := newTestOrchestrator(t, gen, clf)

	resp := o.HandleTurn(context.Background(), chatTurn("My card number is 4532 1234 5678 9012"))

	assert.True(t, resp.Blocked)
	assert.Equal(t, models.ReasonCriticalPII, resp.SecurityReason)
	assert.NotEmpty(t, resp.Response)

	// Nothing downstream of the scanner may run on a blocked turn.
	assert.Equal(t, int32(0), clf.calls.Load())
	assert.Equal(t, int32(0), gen.calls.Load())

	msgs, err := store.GetSessionMessages(context.Background(), "session-1", 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestHandleTurnGeneratorFailureUsesFallback(t *testing.T) {
	gen := &stubGenerator{err: errors.New("api down")}
	clf := &stubClassifier{intent: models.GenericIntent()}
	o, _ := newTestOrchestrator(t, gen, clf)

	resp := o.HandleTurn(context.Background(), chatTurn("Tell me about your courses"))

	assert.False(t, resp.Blocked)
	assert.Contains(t, resp.Response, "I'm sorry")
}

func TestHandleTurnAttachesPersonaDiagnostics(t *testing.T) {
	gen := &stubGenerator{response: "The data track covers analytics fundamentals and practical projects."}
	clf := &stubClassifier{intent: models.GenericIntent()}
	o, _ := newTestOrchestrator(t, gen, clf)

	resp := o.HandleTurn(context.Background(),
		chatTurn("I'm on a 485 visa and was a nurse, can I move into data?"))

	require.NotNil(t, resp.Diagnostics.PersonaMatch)
	assert.Equal(t, "graduate-nurse", resp.Diagnostics.PersonaMatch.Name)
	assert.Greater(t, resp.Diagnostics.PersonaMatch.Similarity, 0)
}

func TestHandleTurnSanitizesGeneratedResponse(t *testing.T) {
	gen := &stubGenerator{response: "Kevin will call you back about the course tomorrow."}
	clf := &stubClassifier{intent: models.GenericIntent()}
	o, _ := newTestOrchestrator(t, gen, clf)

	resp := o.HandleTurn(context.Background(), chatTurn("Can someone call me about the course?"))

	assert.NotContains(t, resp.Response, "Kevin")
}

func TestHandleTurnRecoversConcurrentStagePanics(t *testing.T) {
	logger := zap.NewNop()
	limiter := security.NewRateLimiter(cache.NewMemoryCache(), security.DefaultRateLimit, security.DefaultRateWindow, logger)
	scanner := security.NewScanner(limiter, audit.NewMemorySink(), logger)
	detector := persona.NewDetector(panickingPersonaStore{}, persona.DefaultMinConfidence, logger)
	router := agent.NewRouter(agent.FeatureFlags{UseCareerTracks: true, CareerTrackRollout: 100}, logger)
	gen := &stubGenerator{response: "We offer bootcamps in data, cybersecurity, and full-stack development."}

	o := New(scanner, panickingClassifier{}, detector, router, gen,
		validator.New(nil), storage.NewMemoryStorage(), persona.NewStaticStore(nil), logger)

	// Both concurrent stages blow up; the turn still completes with the
	// generic defaults.
	resp := o.HandleTurn(context.Background(), chatTurn("Tell me about your courses"))

	assert.False(t, resp.Blocked)
	assert.Equal(t, gen.response, resp.Response)
	require.NotNil(t, resp.Diagnostics.Intent)
	assert.Equal(t, models.IntentGeneralQuestion, resp.Diagnostics.Intent.Type)
	assert.Nil(t, resp.Diagnostics.PersonaMatch)
}

func TestHandleVoiceTurnCrisisTransfers(t *testing.T) {
	gen := &stubGenerator{}
	clf := &stubClassifier{intent: models.GenericIntent()}
	o, _ := newTestOrchestrator(t, gen, clf)

	decision := o.HandleVoiceTurn(context.Background(), TurnRequest{
		Content:   "I don't want to live anymore",
		Channel:   models.ChannelVoice,
		SessionID: "call-1",
	})

	assert.Equal(t, models.ActionTransferHuman, decision.Action)
	assert.Equal(t, models.TransferCrisisLine, decision.TransferTo)
	// Classification is skipped once the transcript is blocked.
	assert.Equal(t, int32(0), clf.calls.Load())
}
