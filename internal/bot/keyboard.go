package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"provisionbot/internal/commission"
)

// BOT KEYBOARDS

// CreateDashboardKeyboard gives every input a −/+ pair stepping by the
// field's step and an edit button for typing an exact value.
func CreateDashboardKeyboard(in commission.Inputs) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(commission.Fields)+1)
	for _, r := range commission.Fields {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➖", callbackData(CallbackDecrement, r.Field)),
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("✏️ %s: %s", shortLabel(r), FormatValue(r, in.Get(r.Field))),
				callbackData(CallbackEdit, r.Field),
			),
			tgbotapi.NewInlineKeyboardButtonData("➕", callbackData(CallbackIncrement, r.Field)),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Återställ", CallbackReset),
		tgbotapi.NewInlineKeyboardButtonData("📊 Exportera", CallbackExport),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func callbackData(action string, field commission.Field) string {
	return action + ":" + string(field)
}

// parseCallbackData splits "<action>:<field>"; field is empty for
// field-less actions.
func parseCallbackData(data string) (action string, field commission.Field) {
	action, rest, _ := strings.Cut(data, ":")
	return action, commission.Field(rest)
}

func shortLabel(r commission.Range) string {
	label, _, _ := strings.Cut(r.Label, " (")
	return label
}
