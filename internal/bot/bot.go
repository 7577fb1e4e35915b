package bot

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"provisionbot/internal/commission"
	"provisionbot/internal/config"
	"provisionbot/internal/metrics"
)

type Bot struct {
	api      API
	logger   *zap.Logger
	sessions SessionStore
	presets  PresetStore
	limiter  RateLimiter
	metrics  *metrics.Metrics
	cfg      *config.Config
	mu       sync.Mutex
	handlers map[string]func(context.Context, int64, string)
}

type Dependencies struct {
	Sessions SessionStore
	Presets  PresetStore
	Limiter  RateLimiter
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
	Config   *config.Config
}

// New authorizes against Telegram with the configured token.
func New(deps Dependencies) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(deps.Config.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	botAPI.Debug = deps.Config.BotDebug

	deps.Logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	return NewWithAPI(botAPI, deps), nil
}

// NewWithAPI builds a bot on top of an existing API client.
func NewWithAPI(api API, deps Dependencies) *Bot {
	b := &Bot{
		api:      api,
		logger:   deps.Logger,
		sessions: deps.Sessions,
		presets:  deps.Presets,
		limiter:  deps.Limiter,
		metrics:  deps.Metrics,
		cfg:      deps.Config,
	}

	b.registerHandlers()
	return b
}

func (b *Bot) registerHandlers() {
	b.handlers = map[string]func(context.Context, int64, string){
		StepAwaitValue: b.HandleValueInput,
	}
}

// Start polls Telegram until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if update.Message != nil {
		b.processMessage(ctx, update.Message)
	} else if update.CallbackQuery != nil {
		b.processCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text))

	if msg.IsCommand() {
		b.metrics.Updates.WithLabelValues("command").Inc()
		b.handleCommand(ctx, chatID, msg.Command(), msg.CommandArguments())
		return
	}
	b.metrics.Updates.WithLabelValues("message").Inc()

	session, err := b.sessions.GetSession(ctx, chatID)
	if err != nil {
		b.fail("bot.processMessage", err, zap.Int64("chat_id", chatID))
		b.SendError(chatID, "Kunde inte läsa din kalkyl, försök igen")
		return
	}

	if handler, exists := b.handlers[session.Step]; exists {
		handler(ctx, chatID, msg.Text)
	} else {
		b.HandleDefault(ctx, chatID)
	}
}

func (b *Bot) processCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		b.answerCallback(callback.ID, "")
		return
	}
	b.metrics.Updates.WithLabelValues("callback").Inc()

	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", callback.Message.Chat.ID),
		zap.String("data", callback.Data))

	b.HandleCallback(ctx, callback)
}

// calculate runs the engine for the bot and counts the calculation.
func (b *Bot) calculate(in commission.Inputs) commission.Results {
	b.metrics.Calculations.Inc()
	return commission.Calculate(in)
}

func (b *Bot) fail(operation string, err error, fields ...zap.Field) {
	b.metrics.Errors.WithLabelValues(operation).Inc()
	b.logger.Error("Operation failed",
		append([]zap.Field{zap.String("operation", operation), zap.Error(err)}, fields...)...)
}

func (b *Bot) SendMessage(msg tgbotapi.Chattable) (tgbotapi.Message, bool) {
	sent, err := b.api.Send(msg)
	if err != nil {
		b.fail("bot.SendMessage", err)
		return sent, false
	}
	return sent, true
}

func (b *Bot) SendError(chatID int64, text string) {
	b.SendMessage(tgbotapi.NewMessage(chatID, "❌ "+text))
}

func (b *Bot) answerCallback(callbackID, text string) {
	if callbackID == "" {
		return
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.logger.Warn("Failed to answer callback",
			zap.String("callback_id", callbackID),
			zap.Error(err))
	}
}
