package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"provisionbot/internal/storage"
)

func (b *Bot) HandlePresets(ctx context.Context, chatID int64) {
	presets, err := b.presets.ListPresets(ctx)
	if err != nil {
		b.fail("bot.HandlePresets", err, zap.Int64("chat_id", chatID))
		b.SendError(chatID, "Kunde inte hämta förinställningar")
		return
	}

	msg := tgbotapi.NewMessage(chatID, FormatPresetList(presets))
	msg.ParseMode = tgbotapi.ModeHTML
	b.SendMessage(msg)
}

func (b *Bot) HandleLoadPreset(ctx context.Context, chatID int64, args string) {
	name := strings.TrimSpace(args)
	if name == "" {
		b.SendError(chatID, "Använd: /preset <namn>")
		return
	}

	preset, err := b.presets.GetPreset(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrPresetNotFound) {
			b.SendError(chatID, "Förinställningen finns inte. Se /presets")
			return
		}
		b.fail("bot.HandleLoadPreset", err, zap.Int64("chat_id", chatID), zap.String("preset", name))
		b.SendError(chatID, "Kunde inte hämta förinställningen")
		return
	}

	session, err := b.sessions.GetSession(ctx, chatID)
	if err != nil {
		b.fail("bot.HandleLoadPreset", err, zap.Int64("chat_id", chatID))
		b.SendError(chatID, "Kunde inte läsa din kalkyl, försök igen")
		return
	}

	session.Inputs = preset.Inputs()
	session.Step = StepDashboard
	session.Field = ""

	b.logger.Info("Preset loaded",
		zap.Int64("chat_id", chatID),
		zap.String("preset", preset.Name))

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("📚 Laddade <b>%s</b>", html.EscapeString(preset.Name)))
	msg.ParseMode = tgbotapi.ModeHTML
	b.SendMessage(msg)

	b.sendDashboard(ctx, chatID, session)
}

func (b *Bot) HandleSavePreset(ctx context.Context, chatID int64, args string) {
	if !b.cfg.IsAdmin(chatID) {
		b.logger.Warn("Non-admin tried to save preset", zap.Int64("chat_id", chatID))
		b.SendError(chatID, "Endast administratörer kan spara förinställningar")
		return
	}

	name, description, _ := strings.Cut(strings.TrimSpace(args), " ")

	session, err := b.sessions.GetSession(ctx, chatID)
	if err != nil {
		b.fail("bot.HandleSavePreset", err, zap.Int64("chat_id", chatID))
		b.SendError(chatID, "Kunde inte läsa din kalkyl, försök igen")
		return
	}

	preset, err := storage.NewPreset(name, description, session.Inputs)
	if err != nil {
		b.SendError(chatID, "Använd: /savepreset <namn> [beskrivning]")
		return
	}

	if err := b.presets.SavePreset(ctx, preset); err != nil {
		b.fail("bot.HandleSavePreset", err, zap.Int64("chat_id", chatID), zap.String("preset", preset.Name))
		b.SendError(chatID, "Kunde inte spara förinställningen")
		return
	}

	b.logger.Info("Preset saved",
		zap.Int64("chat_id", chatID),
		zap.String("preset", preset.Name))

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("✅ Sparade <b>%s</b>", html.EscapeString(preset.Name)))
	msg.ParseMode = tgbotapi.ModeHTML
	b.SendMessage(msg)
}

func (b *Bot) HandleDeletePreset(ctx context.Context, chatID int64, args string) {
	if !b.cfg.IsAdmin(chatID) {
		b.logger.Warn("Non-admin tried to delete preset", zap.Int64("chat_id", chatID))
		b.SendError(chatID, "Endast administratörer kan ta bort förinställningar")
		return
	}

	name := strings.TrimSpace(args)
	if name == "" {
		b.SendError(chatID, "Använd: /deletepreset <namn>")
		return
	}

	if err := b.presets.DeletePreset(ctx, name); err != nil {
		if errors.Is(err, storage.ErrPresetNotFound) {
			b.SendError(chatID, "Förinställningen finns inte")
			return
		}
		b.fail("bot.HandleDeletePreset", err, zap.Int64("chat_id", chatID), zap.String("preset", name))
		b.SendError(chatID, "Kunde inte ta bort förinställningen")
		return
	}

	b.SendMessage(tgbotapi.NewMessage(chatID, "🗑 Förinställningen togs bort."))
}
