package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"provisionbot/internal/commission"
)

func (b *Bot) HandleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	action, field := parseCallbackData(callback.Data)

	switch action {
	case CallbackIncrement:
		b.handleStep(ctx, callback, field, 1)
	case CallbackDecrement:
		b.handleStep(ctx, callback, field, -1)
	case CallbackEdit:
		b.handleEdit(ctx, callback, field)
	case CallbackReset:
		b.handleResetCallback(ctx, callback)
	case CallbackExport:
		b.answerCallback(callback.ID, "")
		b.HandleExport(ctx, chatID)
	default:
		b.logger.Warn("Unknown callback",
			zap.Int64("chat_id", chatID),
			zap.String("data", callback.Data))
		b.answerCallback(callback.ID, "Okänt val")
	}
}

func (b *Bot) handleStep(ctx context.Context, callback *tgbotapi.CallbackQuery, field commission.Field, delta int) {
	chatID := callback.Message.Chat.ID

	if !b.allowRecalculation(ctx, chatID) {
		b.answerCallback(callback.ID, "För många ändringar, vänta en stund")
		return
	}

	session, err := b.sessions.GetSession(ctx, chatID)
	if err != nil {
		b.fail("bot.handleStep", err, zap.Int64("chat_id", chatID))
		b.answerCallback(callback.ID, "Något gick fel")
		return
	}

	next, err := session.Inputs.Step(field, delta)
	if err != nil {
		b.answerCallback(callback.ID, "Okänt fält")
		return
	}

	// Telegram rejects edits that leave the message unchanged.
	if next == session.Inputs {
		b.answerCallback(callback.ID, "Gränsvärde nått")
		return
	}

	session.Inputs = next
	session.Step = StepDashboard
	session.Field = ""
	session.DashboardMessageID = callback.Message.MessageID
	if err := b.sessions.SaveSession(ctx, chatID, session); err != nil {
		b.fail("bot.handleStep", err, zap.Int64("chat_id", chatID))
		b.answerCallback(callback.ID, "Något gick fel")
		return
	}

	b.editDashboard(chatID, callback.Message.MessageID, next)
	b.answerCallback(callback.ID, "")
}

func (b *Bot) handleEdit(ctx context.Context, callback *tgbotapi.CallbackQuery, field commission.Field) {
	chatID := callback.Message.Chat.ID

	r, err := commission.Lookup(field)
	if err != nil {
		b.answerCallback(callback.ID, "Okänt fält")
		return
	}

	session, err := b.sessions.GetSession(ctx, chatID)
	if err != nil {
		b.fail("bot.handleEdit", err, zap.Int64("chat_id", chatID))
		b.answerCallback(callback.ID, "Något gick fel")
		return
	}

	session.Step = StepAwaitValue
	session.Field = field
	session.DashboardMessageID = callback.Message.MessageID
	if err := b.sessions.SaveSession(ctx, chatID, session); err != nil {
		b.fail("bot.handleEdit", err, zap.Int64("chat_id", chatID))
		b.answerCallback(callback.ID, "Något gick fel")
		return
	}

	b.answerCallback(callback.ID, "")
	msg := tgbotapi.NewMessage(chatID, FormatValuePrompt(r, session.Inputs.Get(field)))
	msg.ReplyMarkup = tgbotapi.ForceReply{ForceReply: true, Selective: true}
	b.SendMessage(msg)
}

func (b *Bot) handleResetCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID

	session, err := b.sessions.GetSession(ctx, chatID)
	if err != nil {
		b.fail("bot.handleResetCallback", err, zap.Int64("chat_id", chatID))
		b.answerCallback(callback.ID, "Något gick fel")
		return
	}

	defaults := commission.Defaults()
	if session.Inputs == defaults {
		b.answerCallback(callback.ID, "Redan standardvärden")
		return
	}

	session.Inputs = defaults
	session.Step = StepDashboard
	session.Field = ""
	session.DashboardMessageID = callback.Message.MessageID
	if err := b.sessions.SaveSession(ctx, chatID, session); err != nil {
		b.fail("bot.handleResetCallback", err, zap.Int64("chat_id", chatID))
		b.answerCallback(callback.ID, "Något gick fel")
		return
	}

	b.editDashboard(chatID, callback.Message.MessageID, defaults)
	b.answerCallback(callback.ID, "🔄 Återställd")
}
