package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"provisionbot/internal/commission"
	"provisionbot/internal/storage/redis"
)

const helpText = `🧮 <b>Provisionskalkylator</b>

Räknar ut provision för mötesbokare och säljare samt vad Musse får behålla per affär, per år och per månad.

Justera värdena med ➖/➕ under kalkylen eller tryck ✏️ för att skriva in ett exakt värde.

<b>Kommandon</b>
/show – visa kalkylen
/set &lt;fält&gt; &lt;värde&gt; – sätt ett värde, t.ex. <code>/set startup 20000</code>
/reset – återställ standardvärden
/presets – lista förinställningar
/preset &lt;namn&gt; – ladda en förinställning
/export – ladda ner kalkylen som Excel
/cancel – avbryt inmatning

Fält: deals, startup, monthly, guarantee, lifetime`

const adminHelpText = `

<b>Admin</b>
/savepreset &lt;namn&gt; [beskrivning] – spara nuvarande värden
/deletepreset &lt;namn&gt; – ta bort en förinställning`

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command, args string) {
	switch command {
	case "start":
		b.HandleStart(ctx, chatID)
	case "help":
		b.HandleHelp(chatID)
	case "show":
		b.HandleShow(ctx, chatID)
	case "reset":
		b.HandleReset(ctx, chatID)
	case "set":
		b.HandleSet(ctx, chatID, args)
	case "cancel":
		b.HandleCancel(ctx, chatID)
	case "presets":
		b.HandlePresets(ctx, chatID)
	case "preset":
		b.HandleLoadPreset(ctx, chatID, args)
	case "savepreset":
		b.HandleSavePreset(ctx, chatID, args)
	case "deletepreset":
		b.HandleDeletePreset(ctx, chatID, args)
	case "export":
		b.HandleExport(ctx, chatID)
	default:
		b.SendMessage(tgbotapi.NewMessage(chatID, "Okänt kommando. Skriv /help för hjälp."))
	}
}

// HandleStart greets the user and starts over from the reference values.
func (b *Bot) HandleStart(ctx context.Context, chatID int64) {
	if err := b.sessions.DropSession(ctx, chatID); err != nil {
		b.fail("bot.HandleStart", err, zap.Int64("chat_id", chatID))
	}

	msg := tgbotapi.NewMessage(chatID,
		"Hej! 👋 Här kan du räkna på provision och Musses lön. Ändra värdena med knapparna under kalkylen.")
	b.SendMessage(msg)

	b.HandleShow(ctx, chatID)
}

func (b *Bot) HandleHelp(chatID int64) {
	text := helpText
	if b.cfg.IsAdmin(chatID) {
		text += adminHelpText
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	b.SendMessage(msg)
}

// HandleShow posts a fresh dashboard for the chat's current inputs.
func (b *Bot) HandleShow(ctx context.Context, chatID int64) {
	session, err := b.sessions.GetSession(ctx, chatID)
	if err != nil {
		b.fail("bot.HandleShow", err, zap.Int64("chat_id", chatID))
		b.SendError(chatID, "Kunde inte läsa din kalkyl, försök igen")
		return
	}

	session.Step = StepDashboard
	session.Field = ""
	b.sendDashboard(ctx, chatID, session)
}

func (b *Bot) HandleReset(ctx context.Context, chatID int64) {
	if err := b.sessions.DropSession(ctx, chatID); err != nil {
		b.fail("bot.HandleReset", err, zap.Int64("chat_id", chatID))
		b.SendError(chatID, "Kunde inte återställa kalkylen")
		return
	}

	b.SendMessage(tgbotapi.NewMessage(chatID, "🔄 Standardvärden återställda."))
	b.HandleShow(ctx, chatID)
}

// HandleSet handles "/set <field> <value>".
func (b *Bot) HandleSet(ctx context.Context, chatID int64, args string) {
	name, value, ok := strings.Cut(strings.TrimSpace(args), " ")
	if !ok || strings.TrimSpace(value) == "" {
		b.SendError(chatID, "Använd: /set <fält> <värde>, t.ex. /set startup 20000")
		return
	}

	field, err := commission.ParseField(name)
	if err != nil {
		b.SendError(chatID, "Okänt fält. Välj bland: deals, startup, monthly, guarantee, lifetime")
		return
	}

	b.applyValue(ctx, chatID, field, value)
}

func (b *Bot) HandleCancel(ctx context.Context, chatID int64) {
	session, err := b.sessions.GetSession(ctx, chatID)
	if err != nil {
		b.fail("bot.HandleCancel", err, zap.Int64("chat_id", chatID))
		return
	}

	if session.Step != StepAwaitValue {
		b.SendMessage(tgbotapi.NewMessage(chatID, "Inget att avbryta."))
		return
	}

	session.Step = StepDashboard
	session.Field = ""
	if err := b.sessions.SaveSession(ctx, chatID, session); err != nil {
		b.fail("bot.HandleCancel", err, zap.Int64("chat_id", chatID))
	}
	b.SendMessage(tgbotapi.NewMessage(chatID, "Inmatningen avbröts."))
}

// HandleDefault answers free text outside any dialog step.
func (b *Bot) HandleDefault(ctx context.Context, chatID int64) {
	b.SendMessage(tgbotapi.NewMessage(chatID,
		"Använd knapparna under kalkylen eller skriv /help för att se kommandona."))
}

// sendDashboard posts the dashboard as a new message and remembers its id
// so later button presses can edit it.
func (b *Bot) sendDashboard(ctx context.Context, chatID int64, session *redis.Session) {
	results := b.calculate(session.Inputs)

	msg := tgbotapi.NewMessage(chatID, FormatDashboard(session.Inputs, results))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = CreateDashboardKeyboard(session.Inputs)

	sent, ok := b.SendMessage(msg)
	if ok {
		session.DashboardMessageID = sent.MessageID
	}

	if err := b.sessions.SaveSession(ctx, chatID, session); err != nil {
		b.fail("bot.sendDashboard", err, zap.Int64("chat_id", chatID))
	}
}

// editDashboard redraws an existing dashboard message in place.
func (b *Bot) editDashboard(chatID int64, messageID int, in commission.Inputs) bool {
	results := b.calculate(in)

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID,
		FormatDashboard(in, results), CreateDashboardKeyboard(in))
	edit.ParseMode = tgbotapi.ModeHTML

	if _, err := b.api.Send(edit); err != nil {
		b.fail("bot.editDashboard", err,
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID))
		return false
	}
	return true
}
