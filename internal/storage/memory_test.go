package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaenox/pathway-assist/internal/models"
)

func TestMemoryStorageSaveAndList(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	for i, content := range []string{"first", "second", "third"} {
		err := s.SaveMessage(ctx, &models.Message{
			ID:        string(rune('a' + i)),
			SessionID: "s1",
			Role:      "user",
			Content:   content,
			Channel:   models.ChannelChat,
			CreatedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	msgs, err := s.GetSessionMessages(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "second", msgs[0].Content)
	assert.Equal(t, "third", msgs[1].Content)
}

func TestMemoryStorageSessionsAreIsolated(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, s.SaveMessage(ctx, &models.Message{ID: "1", SessionID: "s1", Role: "user", Content: "hi", Channel: models.ChannelChat}))

	msgs, err := s.GetSessionMessages(ctx, "s2", 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
