package storage

import (
	"context"

	"github.com/xaenox/pathway-assist/internal/models"
)

// Storage persists conversation messages beyond the request.
type Storage interface {
	SaveMessage(ctx context.Context, msg *models.Message) error
	GetSessionMessages(ctx context.Context, sessionID string, limit int) ([]*models.Message, error)
	Close() error
}
