package models

import "time"

// Channel identifies the transport a message arrived on.
type Channel string

const (
	ChannelChat  Channel = "chat"
	ChannelVoice Channel = "voice"
	ChannelAPI   Channel = "api"
)

// Block reasons returned by the security scanner.
const (
	ReasonRateLimitExceeded  = "rate_limit_exceeded"
	ReasonCrisisIntervention = "crisis_intervention"
	ReasonCriticalPII        = "critical_pii_detected"
	ReasonSecurityThreat     = "security_threat_detected"
)

// ScanRequest is one inbound message submitted to the security scanner.
type ScanRequest struct {
	Content   string  `json:"content"`
	Channel   Channel `json:"channel"`
	SessionID string  `json:"session_id"`
	UserID    string  `json:"user_id,omitempty"`
}

// ScanResult is the scanner's pass/block decision for a single message.
// When Allowed is false, Reason and SafeContent are always populated and
// Flags is never empty.
type ScanResult struct {
	Allowed     bool     `json:"allowed"`
	Reason      string   `json:"reason,omitempty"`
	SafeContent string   `json:"safe_content"`
	Flags       []string `json:"flags"`
	Escalate    bool     `json:"escalate"`
}

// HasFlag reports whether the result carries the given flag.
func (r ScanResult) HasFlag(flag string) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// AuditEvent records one scan outcome for the audit trail.
type AuditEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Channel   Channel   `json:"channel"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id,omitempty"`
	Blocked   bool      `json:"blocked"`
	Reason    string    `json:"reason,omitempty"`
	Flags     []string  `json:"flags,omitempty"`
}
