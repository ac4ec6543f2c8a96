package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xaenox/pathway-assist/internal/models"
	"github.com/xaenox/pathway-assist/internal/orchestrator"
	"go.uber.org/zap"
)

// Bot is the Telegram chat transport. Every message goes through the same
// orchestrated pipeline as the HTTP API; the chat id is the session id.
type Bot struct {
	api          *tgbotapi.BotAPI
	orchestrator *orchestrator.Orchestrator
	logger       *zap.Logger
}

func New(token string, o *orchestrator.Orchestrator, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:          api,
		orchestrator: o,
		logger:       logger,
	}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		go b.handleMessage(update.Message)
	}

	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	ctx := context.Background()

	if message.IsCommand() {
		b.handleCommand(message)
		return
	}

	displayName := message.From.FirstName

	resp := b.orchestrator.HandleTurn(ctx, orchestrator.TurnRequest{
		Content:         message.Text,
		Channel:         models.ChannelChat,
		SessionID:       fmt.Sprintf("tg-%d", message.Chat.ID),
		UserID:          fmt.Sprintf("%d", message.From.ID),
		UserDisplayName: displayName,
	})

	if resp.Blocked {
		b.logger.Info("message blocked",
			zap.String("reason", resp.SecurityReason),
			zap.Int64("chat_id", message.Chat.ID))
	}

	b.sendMessage(message.Chat.ID, resp.Response)
}

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	default:
		b.sendMessage(message.Chat.ID, "Unknown command. Use /help to see available commands.")
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	welcome := `Welcome! 🎓
I can answer questions about our bootcamps, career tracks, visas and study options, and help you book a consultation.

Just send me a message to get started, or use /help to see what I can do.`

	b.sendMessage(message.Chat.ID, welcome)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	help := `You can ask me about:
- Our bootcamps and career tracks (data, cybersecurity, full-stack, business analysis)
- Studying as an international student
- Fees and payment plans
- Booking a consultation with an advisor

Just type your question and I'll do my best to help!`

	b.sendMessage(message.Chat.ID, help)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}
