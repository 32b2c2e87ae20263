package main

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"coursebot/internal/format"
	"coursebot/internal/model"
)

type CoursesCmd struct{}

func (c *CoursesCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) error {
	courses, err := ctx.Catalog.Courses()
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		sendText(bot, msg.Chat.ID, ctx.Tr("courses_not_found"))
		return nil
	}
	sendWithMarkup(bot, msg.Chat.ID, ctx.Tr("choose_course"), courseLinkKeyboard(courses))
	return nil
}
func (c *CoursesCmd) Description() string { return "desc_courses" }

type FindCourseCmd struct{}

func (c *FindCourseCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) error {
	if args == "" {
		sendText(bot, msg.Chat.ID, ctx.Tr("findcourse_usage"))
		return nil
	}
	courses, err := ctx.Catalog.Find(args)
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		sendText(bot, msg.Chat.ID, ctx.Trf("keyword_not_found", args))
		return nil
	}
	sendWithMarkup(bot, msg.Chat.ID, ctx.Tr("found_courses"), courseLinkKeyboard(courses))
	return nil
}
func (c *FindCourseCmd) Description() string { return "desc_findcourse" }

type AvailableCoursesCmd struct{}

func (c *AvailableCoursesCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) error {
	text, err := getAvailableCoursesText(ctx)
	if err != nil {
		return err
	}
	sendText(bot, msg.Chat.ID, text)
	return nil
}
func (c *AvailableCoursesCmd) Description() string { return "desc_available" }

func getAvailableCoursesText(ctx *AppContext) (string, error) {
	entries, err := ctx.Catalog.Schedule()
	if err != nil {
		return "", err
	}
	open := make([]model.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if e.Open() {
			open = append(open, e)
		}
	}
	if len(open) == 0 {
		return ctx.Tr("no_available_courses"), nil
	}
	return format.ScheduleLines(open), nil
}

type CoursePriceCmd struct{}

func (c *CoursePriceCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) error {
	if args == "" {
		sendText(bot, msg.Chat.ID, ctx.Tr("price_usage"))
		return nil
	}
	return replyPriceTiers(ctx, bot, msg.Chat.ID, args, ctx.Catalog.PriceTiers)
}
func (c *CoursePriceCmd) Description() string { return "desc_courseprice" }

// PriceMenuCmd backs the "price" menu button: it offers the priced
// courses as inline buttons instead of asking for a name.
type PriceMenuCmd struct{}

func (c *PriceMenuCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) error {
	names, err := ctx.Catalog.PricedCourses()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		sendText(bot, msg.Chat.ID, ctx.Tr("courses_not_found"))
		return nil
	}
	sendWithMarkup(bot, msg.Chat.ID, ctx.Tr("choose_price"), selectionKeyboard(names, tokenPrice, tokenPriceIndex))
	return nil
}
func (c *PriceMenuCmd) Description() string { return "desc_courseprice" }

type priceLookup func(name string) ([]model.PriceTier, bool, error)

func replyPriceTiers(ctx *AppContext, bot BotAPI, chatID int64, name string, lookup priceLookup) error {
	tiers, ok, err := lookup(name)
	if err != nil {
		return err
	}
	if !ok {
		sendText(bot, chatID, ctx.Trf("price_not_found", name))
		return nil
	}
	sendText(bot, chatID, ctx.Trf("price_title", name)+"\n"+format.PriceLines(tiers))
	return nil
}

func handlePriceByName(_ context.Context, ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery, name string) error {
	return replyPriceTiers(ctx, bot, chatIDForCallback(query), name, ctx.Catalog.PriceTiersExact)
}

func handlePriceByIndex(_ context.Context, ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery, payload string) error {
	names, err := ctx.Catalog.PricedCourses()
	if err != nil {
		return err
	}
	name, ok := pickByIndex(names, payload)
	if !ok {
		sendText(bot, chatIDForCallback(query), ctx.Tr("course_gone"))
		return nil
	}
	return replyPriceTiers(ctx, bot, chatIDForCallback(query), name, ctx.Catalog.PriceTiersExact)
}

// pickByIndex resolves an index token payload against a fresh listing.
func pickByIndex(names []string, payload string) (string, bool) {
	i, err := strconv.Atoi(payload)
	if err != nil || i < 0 || i >= len(names) {
		return "", false
	}
	return names[i], true
}
