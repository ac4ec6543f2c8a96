package security

import (
	"context"
	"time"

	"github.com/xaenox/pathway-assist/internal/audit"
	"github.com/xaenox/pathway-assist/internal/models"
	"go.uber.org/zap"
)

// Canned safe responses keyed by block reason. The crisis message must name
// a concrete crisis hotline.
var safeResponses = map[string]string{
	models.ReasonRateLimitExceeded:  "You're sending messages a little too quickly. Please wait a moment and try again.",
	models.ReasonCrisisIntervention: "It sounds like you're going through a really difficult time. Please reach out to Lifeline on 13 11 14. They're available 24/7 and ready to listen. If you're in immediate danger, call 000. You matter, and support is available right now.",
	models.ReasonCriticalPII:        "For your security, please don't share personal identification numbers such as card, tax file, or Medicare numbers in this chat. Your message wasn't processed. How else can I help you today?",
	models.ReasonSecurityThreat:     "I wasn't able to process that message. If you have a question about our courses or services, I'm happy to help.",
}

// Scanner runs the full security pass over an inbound message: rate limit,
// crisis, PII, threat, then non-blocking tone flags. First blocking match
// wins and later checks are skipped.
type Scanner struct {
	limiter    *RateLimiter
	crisis     Matcher
	pii        Matcher
	threat     Matcher
	distress   Matcher
	harassment Matcher
	sink       audit.Sink
	logger     *zap.Logger
}

func NewScanner(limiter *RateLimiter, sink audit.Sink, logger *zap.Logger) *Scanner {
	return &Scanner{
		limiter:    limiter,
		crisis:     NewCrisisMatcher(),
		pii:        NewPIIMatcher(),
		threat:     NewThreatMatcher(),
		distress:   NewDistressMatcher(),
		harassment: NewHarassmentMatcher(),
		sink:       sink,
		logger:     logger,
	}
}

// QuickScan produces the pass/block decision for one message. Pattern
// evaluation is a fixed number of passes over the content; the only I/O is
// the rate-limit cache lookup.
func (s *Scanner) QuickScan(ctx context.Context, req models.ScanRequest) models.ScanResult {
	result := s.scan(ctx, req)
	s.appendAudit(req, result)
	return result
}

func (s *Scanner) scan(ctx context.Context, req models.ScanRequest) models.ScanResult {
	// 1. Rate limit. Checked before any content inspection.
	if !s.limiter.Allow(ctx, req.SessionID) {
		return blocked(models.ReasonRateLimitExceeded, []string{"rate_limited"}, false)
	}

	// 2. Crisis. Always wins over PII and threat checks so the caller sees
	// the hotline response even when the same message contains both.
	if flags := s.crisis.Match(req.Content); len(flags) > 0 {
		return blocked(models.ReasonCrisisIntervention, flags, true)
	}

	// 3. PII.
	if flags := s.pii.Match(req.Content); len(flags) > 0 {
		return blocked(models.ReasonCriticalPII, flags, true)
	}

	// 4. Threats.
	if flags := s.threat.Match(req.Content); len(flags) > 0 {
		return blocked(models.ReasonSecurityThreat, flags, true)
	}

	// 5. Non-blocking tone flags for downstream components.
	flags := []string{}
	flags = append(flags, s.distress.Match(req.Content)...)
	flags = append(flags, s.harassment.Match(req.Content)...)

	return models.ScanResult{
		Allowed:     true,
		SafeContent: req.Content,
		Flags:       flags,
	}
}

func blocked(reason string, flags []string, escalate bool) models.ScanResult {
	return models.ScanResult{
		Allowed:     false,
		Reason:      reason,
		SafeContent: safeResponses[reason],
		Flags:       flags,
		Escalate:    escalate,
	}
}

// appendAudit records the scan outcome asynchronously. A failed audit write
// must never block or fail the user-facing response.
func (s *Scanner) appendAudit(req models.ScanRequest, result models.ScanResult) {
	event := models.AuditEvent{
		Timestamp: time.Now(),
		Channel:   req.Channel,
		SessionID: req.SessionID,
		UserID:    req.UserID,
		Blocked:   !result.Allowed,
		Reason:    result.Reason,
		Flags:     result.Flags,
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Warn("audit sink panicked", zap.Any("panic", r))
			}
		}()
		s.sink.Append(event)
	}()
}
