package main

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type StartCmd struct{}

func (c *StartCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) error {
	if ctx.MenuDriven() {
		sendWithMarkup(bot, msg.Chat.ID, ctx.Tr("welcome_menu"), mainReplyKeyboard(ctx))
		return nil
	}
	sendText(bot, msg.Chat.ID, ctx.Tr("welcome"))
	return nil
}
func (c *StartCmd) Description() string { return "desc_start" }

type HelpCmd struct{}

func (c *HelpCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) error {
	sendText(bot, msg.Chat.ID, getHelpText(ctx))
	return nil
}
func (c *HelpCmd) Description() string { return "desc_help" }

func getHelpText(ctx *AppContext) string {
	var b strings.Builder
	b.WriteString(ctx.Tr("help_title"))
	for _, name := range ctx.Commands.Names() {
		cmd, _ := ctx.Commands.Get(name)
		usage := "/" + name
		switch name {
		case "findcourse":
			usage += " <keyword>"
		case "courseprice":
			usage += " <name>"
		}
		b.WriteString(fmt.Sprintf("\n%s - %s", usage, ctx.Tr(cmd.Description())))
	}
	return b.String()
}

// botCommands lists the registered commands for Telegram's command menu.
func botCommands(ctx *AppContext) []tgbotapi.BotCommand {
	names := ctx.Commands.Names()
	out := make([]tgbotapi.BotCommand, 0, len(names))
	for _, name := range names {
		cmd, _ := ctx.Commands.Get(name)
		out = append(out, tgbotapi.BotCommand{Command: name, Description: ctx.Tr(cmd.Description())})
	}
	return out
}
