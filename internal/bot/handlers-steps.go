package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"provisionbot/internal/commission"
)

// HandleValueInput receives the exact value typed after pressing ✏️.
func (b *Bot) HandleValueInput(ctx context.Context, chatID int64, text string) {
	session, err := b.sessions.GetSession(ctx, chatID)
	if err != nil {
		b.fail("bot.HandleValueInput", err, zap.Int64("chat_id", chatID))
		b.SendError(chatID, "Kunde inte läsa din kalkyl, försök igen")
		return
	}

	if _, err := commission.Lookup(session.Field); err != nil {
		b.logger.Warn("Awaiting value for unknown field",
			zap.Int64("chat_id", chatID),
			zap.String("field", string(session.Field)))
		b.HandleShow(ctx, chatID)
		return
	}

	b.applyValue(ctx, chatID, session.Field, text)
}

// applyValue parses text, clamps it into the field's range, stores it and
// redraws the chat's dashboard. A new dashboard is posted when none is
// known or the old one can no longer be edited.
func (b *Bot) applyValue(ctx context.Context, chatID int64, field commission.Field, text string) {
	r, err := commission.Lookup(field)
	if err != nil {
		b.SendError(chatID, "Okänt fält")
		return
	}

	value, err := commission.ParseAmount(strings.TrimSpace(text))
	if err != nil {
		if errors.Is(err, commission.ErrInvalidNumber) {
			b.SendError(chatID, "Ange ett giltigt tal, t.ex. "+FormatValue(r, r.Default))
			return
		}
		b.fail("bot.applyValue", err, zap.Int64("chat_id", chatID))
		return
	}

	if !b.allowRecalculation(ctx, chatID) {
		b.SendError(chatID, "För många ändringar, vänta en stund")
		return
	}

	session, err := b.sessions.GetSession(ctx, chatID)
	if err != nil {
		b.fail("bot.applyValue", err, zap.Int64("chat_id", chatID))
		b.SendError(chatID, "Kunde inte läsa din kalkyl, försök igen")
		return
	}

	clamped := r.Clamp(value)
	if clamped != value {
		b.SendMessage(tgbotapi.NewMessage(chatID,
			"ℹ️ Värdet justerades till "+FormatValue(r, clamped)+" ("+FormatValue(r, r.Min)+"–"+FormatValue(r, r.Max)+")"))
	}

	next := session.Inputs.With(field, clamped)
	changed := next != session.Inputs
	session.Inputs = next
	session.Step = StepDashboard
	session.Field = ""

	b.logger.Info("Input updated",
		zap.Int64("chat_id", chatID),
		zap.String("field", string(field)),
		zap.Float64("value", clamped))

	// Telegram rejects edits that leave the message unchanged.
	if changed && session.DashboardMessageID != 0 &&
		b.editDashboard(chatID, session.DashboardMessageID, next) {
		if err := b.sessions.SaveSession(ctx, chatID, session); err != nil {
			b.fail("bot.applyValue", err, zap.Int64("chat_id", chatID))
		}
		b.SendMessage(tgbotapi.NewMessage(chatID, "✅ "+r.Label+": "+FormatValue(r, clamped)))
		return
	}

	b.sendDashboard(ctx, chatID, session)
}

// allowRecalculation applies the per-chat rate limit. A limiter failure
// is logged and lets the update through.
func (b *Bot) allowRecalculation(ctx context.Context, chatID int64) bool {
	exceeded, err := b.limiter.CheckRateLimit(ctx, chatID, rateLimitAction, b.cfg.Limits.Updates, b.cfg.Limits.Window)
	if err != nil {
		b.fail("bot.allowRecalculation", err, zap.Int64("chat_id", chatID))
		return true
	}
	if exceeded {
		b.logger.Warn("Rate limit exceeded", zap.Int64("chat_id", chatID))
	}
	return !exceeded
}
