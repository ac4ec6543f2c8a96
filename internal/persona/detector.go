package persona

import (
	"context"
	"sort"
	"strings"

	"github.com/xaenox/pathway-assist/internal/models"
	"go.uber.org/zap"
)

// DefaultMinConfidence is the score below which a match is discarded and
// the caller gets generic treatment instead of a low-confidence guess.
const DefaultMinConfidence = 25

// Scoring weights per matched signal category. The sum is capped at 100.
const (
	visaWeight       = 25
	locationWeight   = 20
	regionalWeight   = 15
	backgroundWeight = 15
	emotionWeight    = 10
)

// Keyword tables for signal extraction. Keys are the signal values; the
// lists are lowercase substrings searched in the query.
var visaKeywords = map[string][]string{
	"485":     {"485", "graduate visa", "temporary graduate"},
	"500":     {"500", "student visa"},
	"pr":      {"permanent resident", "permanent residency", " pr ", "pr pathway"},
	"citizen": {"citizen", "citizenship", "local student", "domestic student"},
}

var locationKeywords = map[string][]string{
	"sydney":    {"sydney"},
	"melbourne": {"melbourne"},
	"brisbane":  {"brisbane"},
	"perth":     {"perth"},
	"adelaide":  {"adelaide"},
}

var regionalKeywords = []string{"regional", "ballarat", "geelong", "townsville", "cairns", "darwin", "wollongong"}

var backgroundKeywords = map[string][]string{
	"healthcare":  {"nurse", "nursing", "healthcare", "medical"},
	"accounting":  {"accountant", "accounting", "finance"},
	"engineering": {"engineer", "engineering"},
	"hospitality": {"hospitality", "chef", "restaurant", "hotel"},
	"teaching":    {"teacher", "teaching", "education background"},
	"retail":      {"retail", "sales assistant"},
}

var emotionKeywords = map[string][]string{
	"frustrated":  {"frustrated", "frustrating", "fed up", "sick of"},
	"anxious":     {"anxious", "worried", "nervous", "scared"},
	"hopeful":     {"hopeful", "excited", "looking forward", "can't wait"},
	"overwhelmed": {"overwhelmed", "too much", "so many options", "don't know where to start"},
	"confused":    {"confused", "unsure", "not sure which"},
}

// emotionalNeeds maps a detected emotional state to what the response
// should lead with.
var emotionalNeeds = map[string][]string{
	"frustrated":  {"acknowledgement", "clear_next_step"},
	"anxious":     {"reassurance", "structure"},
	"hopeful":     {"encouragement", "momentum"},
	"overwhelmed": {"simplification", "guidance"},
	"confused":    {"clarity", "comparison"},
}

// Detector matches free-text queries against the persona archetype store.
// Detection is advisory only: it personalizes response generation and never
// influences security decisions.
type Detector struct {
	store         Store
	minConfidence int
	logger        *zap.Logger
}

func NewDetector(store Store, minConfidence int, logger *zap.Logger) *Detector {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Detector{
		store:         store,
		minConfidence: minConfidence,
		logger:        logger,
	}
}

type queryAnalysis struct {
	signals  []string
	stage    models.JourneyStage
	emotions []string
}

// Detect analyzes the query, scores every candidate archetype against the
// extracted signals, and returns the best match. A store failure or a score
// below the minimum confidence yields a nil persona.
func (d *Detector) Detect(ctx context.Context, query string) models.PersonaDetection {
	analysis := analyzeQuery(query)

	detection := models.PersonaDetection{
		Signals:        analysis.signals,
		JourneyStage:   analysis.stage,
		EmotionalNeeds: needsFor(analysis.emotions),
	}

	candidates, err := d.store.ListAll(ctx)
	if err != nil {
		d.logger.Warn("persona store unavailable, using generic treatment", zap.Error(err))
		return detection
	}
	if len(candidates) == 0 || len(analysis.signals) == 0 {
		return detection
	}

	best, bestScore := pickBest(candidates, analysis)
	if bestScore < d.minConfidence {
		return detection
	}

	detection.Persona = best
	detection.Confidence = bestScore
	return detection
}

// analyzeQuery extracts category:value signals from the query text.
func analyzeQuery(query string) queryAnalysis {
	text := " " + strings.ToLower(query) + " "
	var analysis queryAnalysis

	for value, keywords := range visaKeywords {
		if containsAny(text, keywords) {
			analysis.signals = append(analysis.signals, "visa:"+value)
		}
	}
	for value, keywords := range locationKeywords {
		if containsAny(text, keywords) {
			analysis.signals = append(analysis.signals, "location:"+value)
		}
	}
	if containsAny(text, regionalKeywords) {
		analysis.signals = append(analysis.signals, "regional:true")
	}
	for value, keywords := range backgroundKeywords {
		if containsAny(text, keywords) {
			analysis.signals = append(analysis.signals, "background:"+value)
		}
	}
	for value, keywords := range emotionKeywords {
		if containsAny(text, keywords) {
			analysis.signals = append(analysis.signals, "emotion:"+value)
			analysis.emotions = append(analysis.emotions, value)
		}
	}

	// Map iteration order is random; keep signal order stable for callers
	// and diagnostics.
	sort.Strings(analysis.signals)
	sort.Strings(analysis.emotions)

	analysis.stage = detectStage(text)
	return analysis
}

func detectStage(text string) models.JourneyStage {
	switch {
	case containsAny(text, []string{"enrol", "sign up", "start date", "apply now", "payment plan"}):
		return models.StageReady
	case containsAny(text, []string{"compare", "difference between", "versus", " vs ", "which course", "which is better"}):
		return models.StageComparing
	case containsAny(text, []string{"career change", "switch career", "new career", "transition", "move into"}):
		return models.StageTransition
	default:
		return models.StageExploring
	}
}

// pickBest scores every candidate and returns the highest. Equal scores are
// broken lexically by archetype name so the outcome is deterministic.
func pickBest(candidates []models.PersonaRecord, analysis queryAnalysis) (*models.PersonaRecord, int) {
	signals := make(map[string]bool, len(analysis.signals))
	for _, s := range analysis.signals {
		signals[s] = true
	}

	var best *models.PersonaRecord
	bestScore := -1
	for i := range candidates {
		c := &candidates[i]
		score := scoreCandidate(c, signals)
		if score > bestScore || (score == bestScore && best != nil && c.ArchetypeName < best.ArchetypeName) {
			best = c
			bestScore = score
		}
	}
	return best, bestScore
}

func scoreCandidate(c *models.PersonaRecord, signals map[string]bool) int {
	score := 0
	if c.VisaType != "" && signals["visa:"+strings.ToLower(c.VisaType)] {
		score += visaWeight
	}
	if c.Location != "" && signals["location:"+strings.ToLower(c.Location)] {
		score += locationWeight
	}
	if c.IsRegional && signals["regional:true"] {
		score += regionalWeight
	}
	if c.PreviousField != "" && signals["background:"+strings.ToLower(c.PreviousField)] {
		score += backgroundWeight
	}
	if c.EmotionalState != "" && signals["emotion:"+strings.ToLower(c.EmotionalState)] {
		score += emotionWeight
	}
	if score > 100 {
		score = 100
	}
	return score
}

func needsFor(emotions []string) []string {
	var needs []string
	for _, e := range emotions {
		needs = append(needs, emotionalNeeds[e]...)
	}
	if needs == nil {
		needs = []string{}
	}
	return needs
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
