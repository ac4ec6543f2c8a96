package persona

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaenox/pathway-assist/internal/models"
	"go.uber.org/zap"
)

var testPersonas = []models.PersonaRecord{
	{
		ArchetypeName:  "graduate-nurse",
		VisaType:       "485",
		Location:       "melbourne",
		PreviousField:  "healthcare",
		EmotionalState: "anxious",
		FirstName:      "Priya",
	},
	{
		ArchetypeName:  "regional-student",
		VisaType:       "500",
		Location:       "",
		IsRegional:     true,
		PreviousField:  "hospitality",
		EmotionalState: "hopeful",
		FirstName:      "Diego",
	},
	{
		ArchetypeName:  "local-career-changer",
		VisaType:       "citizen",
		Location:       "sydney",
		PreviousField:  "accounting",
		EmotionalState: "frustrated",
		FirstName:      "Sarah",
	},
}

type erroringStore struct{}

func (erroringStore) ListAll(ctx context.Context) ([]models.PersonaRecord, error) {
	return nil, errors.New("store down")
}

func newTestDetector(store Store) *Detector {
	return NewDetector(store, DefaultMinConfidence, zap.NewNop())
}

func TestDetectMatchesStrongSignals(t *testing.T) {
	d := newTestDetector(NewStaticStore(testPersonas))

	detection := d.Detect(context.Background(),
		"I'm on a 485 graduate visa in Melbourne, I was a nurse back home and I'm so anxious about changing careers")

	require.NotNil(t, detection.Persona)
	assert.Equal(t, "graduate-nurse", detection.Persona.ArchetypeName)
	// visa(25) + location(20) + background(15) + emotion(10)
	assert.Equal(t, 70, detection.Confidence)
	assert.Contains(t, detection.Signals, "visa:485")
	assert.Contains(t, detection.Signals, "location:melbourne")
	assert.Contains(t, detection.Signals, "background:healthcare")
	assert.Contains(t, detection.Signals, "emotion:anxious")
}

func TestDetectNoSignalsReturnsNilPersona(t *testing.T) {
	d := newTestDetector(NewStaticStore(testPersonas))

	detection := d.Detect(context.Background(), "hello there")

	assert.Nil(t, detection.Persona)
	assert.Equal(t, 0, detection.Confidence)
}

func TestDetectEmptyCandidateSet(t *testing.T) {
	d := newTestDetector(NewStaticStore(nil))

	detection := d.Detect(context.Background(), "I'm on a 485 visa in Melbourne")

	assert.Nil(t, detection.Persona)
	assert.Equal(t, 0, detection.Confidence)
	assert.NotEmpty(t, detection.Signals, "signals are still extracted without candidates")
}

func TestDetectStoreFailureDegradesToGeneric(t *testing.T) {
	d := newTestDetector(erroringStore{})

	detection := d.Detect(context.Background(), "I'm on a 485 visa in Melbourne")

	assert.Nil(t, detection.Persona)
	assert.Equal(t, 0, detection.Confidence)
}

func TestDetectBelowThresholdReturnsNilPersona(t *testing.T) {
	d := newTestDetector(NewStaticStore(testPersonas))

	// Only an emotion signal: 10 points, below the 25 minimum.
	detection := d.Detect(context.Background(), "I'm feeling really anxious today")

	assert.Nil(t, detection.Persona)
}

func TestDetectTieBreaksLexicallyByArchetype(t *testing.T) {
	// Two candidates that score identically on the same visa signal.
	candidates := []models.PersonaRecord{
		{ArchetypeName: "zulu", VisaType: "485"},
		{ArchetypeName: "alpha", VisaType: "485"},
	}
	d := newTestDetector(NewStaticStore(candidates))

	detection := d.Detect(context.Background(), "I hold a 485 graduate visa")

	require.NotNil(t, detection.Persona)
	assert.Equal(t, "alpha", detection.Persona.ArchetypeName)
}

func TestDetectJourneyStage(t *testing.T) {
	tests := []struct {
		name  string
		query string
		stage models.JourneyStage
	}{
		{"ready", "How do I enrol and is there a payment plan?", models.StageReady},
		{"comparing", "What's the difference between the data and cyber tracks?", models.StageComparing},
		{"transition", "I want a career change into tech", models.StageTransition},
		{"exploring", "Tell me about your courses", models.StageExploring},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDetector(NewStaticStore(testPersonas))
			detection := d.Detect(context.Background(), tt.query)
			assert.Equal(t, tt.stage, detection.JourneyStage)
		})
	}
}

func TestDetectEmotionalNeeds(t *testing.T) {
	d := newTestDetector(NewStaticStore(testPersonas))

	detection := d.Detect(context.Background(), "I'm so overwhelmed, there are so many options")

	assert.Contains(t, detection.EmotionalNeeds, "simplification")
}
