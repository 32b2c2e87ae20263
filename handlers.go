package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"coursebot/internal/catalog"
	"coursebot/internal/registration"
)

// handleUpdate processes one platform update to completion. It never
// panics and never returns an error: failures become a "try again later"
// reply plus a log line.
func handleUpdate(rc context.Context, ctx *AppContext, bot BotAPI, update *tgbotapi.Update) {
	if ctx == nil || update == nil {
		slog.Error("handleUpdate called without app context or update")
		return
	}
	logger := ctx.logger().With("trace", uuid.NewString(), "update_id", update.UpdateID)

	var chatID int64
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic while handling update", "panic", r, "stack", string(debug.Stack()))
			if chatID != 0 {
				sendText(bot, chatID, ctx.Tr("try_again_later"))
			}
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		chatID = chatIDForCallback(update.CallbackQuery)
		handleCallback(rc, ctx, bot, logger, update.CallbackQuery)
	case update.Message != nil && update.Message.Chat != nil:
		chatID = update.Message.Chat.ID
		handleMessage(ctx, bot, logger, update.Message)
	default:
		logger.Debug("Ignoring update without message or callback")
	}
}

func handleMessage(ctx *AppContext, bot BotAPI, logger *slog.Logger, msg *tgbotapi.Message) {
	handled, err := ctx.Commands.Execute(ctx, bot, msg)
	if err != nil {
		if name := msg.Command(); name != "" {
			reportFailure(ctx, bot, logger, msg.Chat.ID, err, "command", name)
		} else {
			reportFailure(ctx, bot, logger, msg.Chat.ID, err, "label", msg.Text)
		}
		return
	}
	if handled {
		logger.Debug("Command handled", "command", msg.Command(), "chat_id", msg.Chat.ID)
		return
	}
	// plain chatter is ignored unless the menu is active
	if msg.IsCommand() || ctx.MenuDriven() {
		sendText(bot, msg.Chat.ID, ctx.Tr("unknown_command"))
	}
}

func handleCallback(rc context.Context, ctx *AppContext, bot BotAPI, logger *slog.Logger, query *tgbotapi.CallbackQuery) {
	answerCallback(bot, query)

	handled, err := ctx.Commands.ExecuteCallback(rc, ctx, bot, query)
	if err != nil {
		reportFailure(ctx, bot, logger, chatIDForCallback(query), err, "callback", query.Data)
		return
	}
	if !handled {
		logger.Warn("Unknown callback data", "data", query.Data)
	}
}

// reportFailure logs err with its category and sends the generic reply.
func reportFailure(ctx *AppContext, bot BotAPI, logger *slog.Logger, chatID int64, err error, kind, name string) {
	logger.Error("Request failed", kind, name, "category", failureCategory(err), "err", err)
	if chatID != 0 {
		sendText(bot, chatID, ctx.Tr("try_again_later"))
	}
}

func failureCategory(err error) string {
	switch {
	case errors.Is(err, catalog.ErrUnavailable):
		return "catalog_unavailable"
	case errors.Is(err, catalog.ErrParse):
		return "catalog_parse"
	case errors.Is(err, registration.ErrStorage):
		return "storage"
	default:
		return fmt.Sprintf("unexpected (%T)", err)
	}
}
