package main

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type RegistrationCmd struct{}

func (c *RegistrationCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) error {
	courses, err := ctx.Catalog.Courses()
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		sendText(bot, msg.Chat.ID, ctx.Tr("courses_not_found"))
		return nil
	}
	kb := selectionKeyboard(courseNames(courses), tokenRegister, tokenRegisterIndex)
	sendWithMarkup(bot, msg.Chat.ID, ctx.Tr("choose_register"), kb)
	return nil
}
func (c *RegistrationCmd) Description() string { return "desc_registration" }

// handleRegisterByName records the selection as-is; the name is not
// checked against the catalog.
func handleRegisterByName(rc context.Context, ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery, name string) error {
	return registerUser(rc, ctx, bot, query, name)
}

func handleRegisterByIndex(rc context.Context, ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery, payload string) error {
	courses, err := ctx.Catalog.Courses()
	if err != nil {
		return err
	}
	name, ok := pickByIndex(courseNames(courses), payload)
	if !ok {
		sendText(bot, chatIDForCallback(query), ctx.Tr("course_gone"))
		return nil
	}
	return registerUser(rc, ctx, bot, query, name)
}

func registerUser(rc context.Context, ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery, courseName string) error {
	if query.From == nil {
		ctx.logger().Warn("Registration callback without sender", "data", query.Data)
		if chatID := chatIDForCallback(query); chatID != 0 {
			sendText(bot, chatID, ctx.Tr("try_again_later"))
		}
		return nil
	}
	reg, err := ctx.Registrations.Register(rc, query.From.ID, query.From.UserName, courseName)
	if err != nil {
		return err
	}
	ctx.logger().Info("Registration recorded", "id", reg.ID, "user_id", reg.UserID, "course", reg.CourseName)
	sendText(bot, chatIDForCallback(query), ctx.Trf("registered", courseName))
	return nil
}
