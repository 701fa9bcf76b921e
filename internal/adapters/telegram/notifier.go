package telegram

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/coinsight/predictor/internal/adapters/config"
	"github.com/coinsight/predictor/pkg/logger"
	"github.com/coinsight/predictor/pkg/models"
)

// Notifier sends prediction alerts to a Telegram chat
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier creates new Telegram notifier
func NewNotifier(cfg *config.TelegramConfig) (*Notifier, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	bot.Debug = false

	logger.Info("telegram notifier initialized",
		zap.String("bot_username", bot.Self.UserName),
	)

	return &Notifier{
		api:    bot,
		chatID: cfg.ChatID,
	}, nil
}

// SendPredictionAlert sends the decoded prediction to the configured chat.
func (n *Notifier) SendPredictionAlert(asset string, result *models.PredictionResult, from, to time.Time) error {
	emoji := "📉"
	if result.Direction == "up" {
		emoji = "📈"
	}

	text := fmt.Sprintf(
		"%s *%s prediction: %s*\nConfidence: %.2f%%\nWindow: %s to %s",
		emoji,
		asset,
		result.Direction,
		result.Confidence,
		models.FormatDay(from),
		models.FormatDay(to),
	)

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send prediction alert: %w", err)
	}

	logger.Debug("prediction alert sent",
		zap.String("asset", asset),
		zap.String("direction", result.Direction),
	)

	return nil
}
