package main

import (
	"log/slog"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"coursebot/internal/format"
	"coursebot/internal/model"
)

// maxCallbackData is Telegram's limit on inline button data, in bytes.
const maxCallbackData = 64

// maxButtonLabel is the longest inline button caption, in runes.
const maxButtonLabel = 48

// ═══════════════════════════════════════════════════════════════════
//  MESSAGE HELPERS
// ═══════════════════════════════════════════════════════════════════

func safeSend(bot BotAPI, c tgbotapi.Chattable) {
	if bot == nil {
		return
	}
	if _, err := bot.Send(c); err != nil {
		slog.Error("Error sending message", "err", err)
	}
}

// sendText sends plain text. Catalog content is never parsed as Markdown.
func sendText(bot BotAPI, chatID int64, text string) {
	safeSend(bot, tgbotapi.NewMessage(chatID, text))
}

func sendWithMarkup(bot BotAPI, chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	safeSend(bot, msg)
}

func answerCallback(bot BotAPI, query *tgbotapi.CallbackQuery) {
	if bot == nil || query == nil {
		return
	}
	if _, err := bot.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		slog.Error("Error answering callback", "err", err)
	}
}

// ═══════════════════════════════════════════════════════════════════
//  KEYBOARDS
// ═══════════════════════════════════════════════════════════════════

// courseLinkKeyboard has one URL button per course, one per row.
func courseLinkKeyboard(courses []model.Course) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(format.Truncate(c.Name, maxButtonLabel), c.Link)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// selectionKeyboard has one data button per name. Each button carries a
// selection token built from prefix and the name, or from indexPrefix and
// the position when the name is too long.
func selectionKeyboard(names []string, prefix, indexPrefix string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(names))
	for i, name := range names {
		token := selectionToken(prefix, indexPrefix, name, i)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(format.Truncate(name, maxButtonLabel), token)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func selectionToken(prefix, indexPrefix, name string, index int) string {
	if len(prefix)+len(name) <= maxCallbackData {
		return prefix + name
	}
	return indexPrefix + strconv.Itoa(index)
}

// mainReplyKeyboard is the persistent menu attached by /start in
// menu-driven mode.
func mainReplyKeyboard(ctx *AppContext) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ctx.Tr("label_courses")),
			tgbotapi.NewKeyboardButton(ctx.Tr("label_available")),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ctx.Tr("label_register")),
			tgbotapi.NewKeyboardButton(ctx.Tr("label_price")),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ctx.Tr("label_help")),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func courseNames(courses []model.Course) []string {
	names := make([]string, 0, len(courses))
	for _, c := range courses {
		names = append(names, c.Name)
	}
	return names
}

// chatIDForCallback prefers the chat of the message carrying the button
// and falls back to the user's private chat.
func chatIDForCallback(query *tgbotapi.CallbackQuery) int64 {
	if query.Message != nil && query.Message.Chat != nil {
		return query.Message.Chat.ID
	}
	if query.From != nil {
		return query.From.ID
	}
	return 0
}
