package agent

import (
	"hash/fnv"
	"strings"

	"github.com/xaenox/pathway-assist/internal/models"
	"go.uber.org/zap"
)

// FeatureFlags controls the rollout of specialized career-track routing.
type FeatureFlags struct {
	// RollbackToOriginal forces every session onto the legacy single-agent
	// system regardless of the other flags.
	RollbackToOriginal bool
	// UseCareerTracks enables specialized routing at all.
	UseCareerTracks bool
	// CareerTrackRollout is the percentage (0-100) of sessions that get the
	// specialized router.
	CareerTrackRollout int
}

// agentRule maps query keywords to an agent. Rules are evaluated in a fixed
// priority order; the first match wins.
type agentRule struct {
	agent    string
	keywords []string
}

var agentRules = []agentRule{
	{models.AgentBooking, []string{
		"book", "booking", "appointment", "consultation", "schedule", "reschedule", "callback", "call back"}},
	{models.AgentCultural, []string{
		"visa", "immigration", "cultural", "international student", "work rights", "485", "500", "permanent residency", "overseas"}},
	{models.AgentDataAI, []string{
		"data", "analytics", "machine learning", "artificial intelligence", " ai ", "python", "sql", "statistics"}},
	{models.AgentCybersecurity, []string{
		"security", "cyber", "penetration", "compliance", "soc ", "incident response", "ethical hacking"}},
	{models.AgentFullstack, []string{
		"web", "full-stack", "full stack", "fullstack", "frontend", "front-end", "backend", "back-end", "javascript", "react", "node"}},
	{models.AgentBusinessAnalyst, []string{
		"business analysis", "business analyst", "requirements", "stakeholder", "process", "agile", "scrum"}},
}

// Router selects the specialized agent for a turn. The business analyst
// agent is the generalist fallback when nothing matches.
type Router struct {
	flags  FeatureFlags
	logger *zap.Logger
}

func NewRouter(flags FeatureFlags, logger *zap.Logger) *Router {
	return &Router{flags: flags, logger: logger}
}

// Route returns the agent name for the query. Feature flags are consulted
// first: rollback and disabled career tracks send the session to the legacy
// agent, and partial rollouts are gated by the session's stable bucket.
func (r *Router) Route(query string, intent models.Intent, sessionID string) string {
	if r.flags.RollbackToOriginal || !r.flags.UseCareerTracks {
		return models.AgentLegacy
	}
	if r.flags.CareerTrackRollout < 100 && RolloutBucket(sessionID) >= r.flags.CareerTrackRollout {
		return models.AgentLegacy
	}

	agent := matchAgent(query)
	r.logger.Debug("routed query",
		zap.String("agent", agent),
		zap.String("intent", string(intent.Type)),
		zap.String("session_id", sessionID))
	return agent
}

func matchAgent(query string) string {
	text := " " + strings.ToLower(query) + " "
	for _, rule := range agentRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.agent
			}
		}
	}
	return models.AgentBusinessAnalyst
}

// RolloutBucket assigns a session to a stable bucket in [0, 100). The hash
// is pinned to 32-bit FNV-1a so the same session id always lands in the
// same bucket within and across deployments.
func RolloutBucket(sessionID string) int {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return int(h.Sum32() % 100)
}
