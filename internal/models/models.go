package models

import "time"

// Message represents one persisted conversation turn.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Agent     string    `json:"agent,omitempty"`
	Channel   Channel   `json:"channel"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryEntry is one prior turn supplied by the caller for context.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PersonaMatch is the diagnostic summary of a persona detection.
type PersonaMatch struct {
	Name       string `json:"name"`
	Similarity int    `json:"similarity"`
}

// Diagnostics is attached to every response envelope for observability.
type Diagnostics struct {
	Security     ScanResult    `json:"security"`
	PersonaMatch *PersonaMatch `json:"persona_match,omitempty"`
	Agent        string        `json:"agent"`
	Intent       *Intent       `json:"intent,omitempty"`
}
