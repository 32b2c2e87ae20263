package main

import (
	"context"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Command is the interface that all bot commands must implement.
// Description returns a translation key.
type Command interface {
	Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) error
	Description() string
}

// CallbackFunc handles a button press whose data started with a
// registered prefix. payload is the data with the prefix removed.
type CallbackFunc func(rc context.Context, ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery, payload string) error

// CommandRegistry maps command names, menu labels and callback prefixes
// to handlers.
type CommandRegistry struct {
	commands  map[string]Command
	order     []string
	labels    []labelRoute
	callbacks map[string]CallbackFunc
	prefixes  []string
}

type labelRoute struct {
	key string
	cmd Command
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands:  make(map[string]Command),
		callbacks: make(map[string]CallbackFunc),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, cmd Command) {
	if _, exists := r.commands[name]; !exists {
		r.order = append(r.order, name)
	}
	r.commands[name] = cmd
}

// RegisterLabel routes a reply-keyboard button to cmd. labelKey is the
// translation key of the button text.
func (r *CommandRegistry) RegisterLabel(labelKey string, cmd Command) {
	r.labels = append(r.labels, labelRoute{key: labelKey, cmd: cmd})
}

// RegisterCallback routes callback data starting with prefix to fn.
func (r *CommandRegistry) RegisterCallback(prefix string, fn CallbackFunc) {
	if _, exists := r.callbacks[prefix]; !exists {
		r.prefixes = append(r.prefixes, prefix)
		// longest first so a prefix never shadows a longer one
		sort.SliceStable(r.prefixes, func(i, j int) bool { return len(r.prefixes[i]) > len(r.prefixes[j]) })
	}
	r.callbacks[prefix] = fn
}

// Names returns registered command names in registration order.
func (r *CommandRegistry) Names() []string {
	return append([]string(nil), r.order...)
}

// Get returns the command registered under name.
func (r *CommandRegistry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// LabelKeys returns the label translation keys in registration order.
func (r *CommandRegistry) LabelKeys() []string {
	keys := make([]string, 0, len(r.labels))
	for _, l := range r.labels {
		keys = append(keys, l.key)
	}
	return keys
}

// Execute runs the command a message addresses. Labels are consulted only
// in menu-driven mode. handled is false when nothing matched.
func (r *CommandRegistry) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message) (handled bool, err error) {
	if msg == nil {
		return false, nil
	}
	if name := msg.Command(); name != "" {
		cmd, ok := r.commands[name]
		if !ok {
			return false, nil
		}
		return true, cmd.Execute(ctx, bot, msg, strings.TrimSpace(msg.CommandArguments()))
	}
	if ctx == nil || !ctx.MenuDriven() {
		return false, nil
	}
	text := strings.TrimSpace(msg.Text)
	for _, l := range r.labels {
		if text == ctx.Tr(l.key) {
			return true, l.cmd.Execute(ctx, bot, msg, "")
		}
	}
	return false, nil
}

// ExecuteCallback routes a callback query by prefix.
func (r *CommandRegistry) ExecuteCallback(rc context.Context, ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery) (handled bool, err error) {
	if query == nil {
		return false, nil
	}
	for _, prefix := range r.prefixes {
		if payload, ok := strings.CutPrefix(query.Data, prefix); ok {
			return true, r.callbacks[prefix](rc, ctx, bot, query, payload)
		}
	}
	return false, nil
}
