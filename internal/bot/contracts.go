package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"provisionbot/internal/storage"
	"provisionbot/internal/storage/redis"
	pkgredis "provisionbot/pkg/redis"
)

// API is the part of *tgbotapi.BotAPI the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type SessionStore interface {
	GetSession(ctx context.Context, chatID int64) (*redis.Session, error)
	SaveSession(ctx context.Context, chatID int64, session *redis.Session) error
	DropSession(ctx context.Context, chatID int64) error
}

type PresetStore interface {
	ListPresets(ctx context.Context) ([]storage.Preset, error)
	GetPreset(ctx context.Context, name string) (*storage.Preset, error)
	SavePreset(ctx context.Context, preset storage.Preset) error
	DeletePreset(ctx context.Context, name string) error
}

type RateLimiter interface {
	CheckRateLimit(ctx context.Context, userID int64, action string, limit int64, window time.Duration) (bool, error)
}

var (
	_ API          = (*tgbotapi.BotAPI)(nil)
	_ SessionStore = (*redis.Storage)(nil)
	_ PresetStore  = (*storage.PostgresStorage)(nil)
	_ RateLimiter  = (*pkgredis.Client)(nil)
)
