package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"provisionbot/internal/storage"
)

// HandleExport sends the chat's current calculation as an Excel workbook.
func (b *Bot) HandleExport(ctx context.Context, chatID int64) {
	session, err := b.sessions.GetSession(ctx, chatID)
	if err != nil {
		b.fail("bot.HandleExport", err, zap.Int64("chat_id", chatID))
		b.SendError(chatID, "Kunde inte läsa din kalkyl, försök igen")
		return
	}

	data, err := storage.ExportCalculationToExcel(session.Inputs, b.calculate(session.Inputs))
	if err != nil {
		b.fail("bot.HandleExport", err, zap.Int64("chat_id", chatID))
		b.SendError(chatID, "Kunde inte skapa Excel-filen")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  storage.ReportFilename(time.Now()),
		Bytes: data,
	})
	doc.Caption = "📊 Provisionskalkyl"

	if _, ok := b.SendMessage(doc); ok {
		b.logger.Info("Calculation exported",
			zap.Int64("chat_id", chatID),
			zap.Int("bytes", len(data)))
	}
}
