package main

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// updateSource is the long-polling side of the Telegram client.
type updateSource interface {
	BotAPI
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// runPolling removes any webhook and handles updates one at a time until
// rc is cancelled.
func runPolling(rc context.Context, ctx *AppContext, bot updateSource) error {
	if err := deleteWebhook(bot); err != nil {
		return err
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)
	ctx.logger().Info("Long polling started")

	for {
		select {
		case <-rc.Done():
			bot.StopReceivingUpdates()
			ctx.logger().Info("Long polling stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			handleUpdate(rc, ctx, bot, &update)
		}
	}
}
