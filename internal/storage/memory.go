package storage

import (
	"context"
	"sync"

	"github.com/xaenox/pathway-assist/internal/models"
)

// MemoryStorage keeps conversation messages in memory. Used for local
// development and tests.
type MemoryStorage struct {
	mu       sync.RWMutex
	messages map[string][]*models.Message
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		messages: make(map[string][]*models.Message),
	}
}

func (s *MemoryStorage) SaveMessage(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[msg.SessionID] = append(s.messages[msg.SessionID], msg)
	return nil
}

func (s *MemoryStorage) GetSessionMessages(ctx context.Context, sessionID string, limit int) ([]*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[sessionID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}

	out := make([]*models.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
