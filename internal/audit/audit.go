package audit

import (
	"context"
	"sync"
	"time"

	"github.com/xaenox/pathway-assist/internal/models"
	"go.uber.org/zap"
)

// Sink receives scan audit events. Append is fire-and-forget: implementations
// must never panic or surface errors to the caller.
type Sink interface {
	Append(event models.AuditEvent)
}

// LogSink writes audit events to the structured log.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Append(event models.AuditEvent) {
	s.logger.Info("security scan",
		zap.Time("timestamp", event.Timestamp),
		zap.String("channel", string(event.Channel)),
		zap.String("session_id", event.SessionID),
		zap.Bool("blocked", event.Blocked),
		zap.String("reason", event.Reason),
		zap.Strings("flags", event.Flags))
}

// EventWriter is implemented by stores that can persist audit events.
type EventWriter interface {
	AppendAuditEvent(ctx context.Context, event models.AuditEvent) error
}

// DBSink persists audit events through an EventWriter. Write failures are
// swallowed with a diagnostic: the audit trail must never fail a response.
type DBSink struct {
	writer EventWriter
	logger *zap.Logger
}

func NewDBSink(writer EventWriter, logger *zap.Logger) *DBSink {
	return &DBSink{writer: writer, logger: logger}
}

func (s *DBSink) Append(event models.AuditEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.writer.AppendAuditEvent(ctx, event); err != nil {
		s.logger.Warn("failed to persist audit event", zap.Error(err))
	}
}

// MemorySink collects events in memory for inspection in tests.
type MemorySink struct {
	mu     sync.Mutex
	events []models.AuditEvent
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Append(event models.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *MemorySink) Events() []models.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AuditEvent, len(s.events))
	copy(out, s.events)
	return out
}
