package main

import (
	"fmt"
	"log/slog"
	"time"

	"coursebot/internal/catalog"
	"coursebot/internal/registration"
)

// AppContext holds the application dependencies. It is built once at
// startup and handed to every handler.
type AppContext struct {
	Config        *Config
	Catalog       *catalog.Reader
	Registrations registration.Recorder
	Commands      *CommandRegistry
	Logger        *slog.Logger
	StartTime     time.Time
}

// InitApp initializes the application context
func InitApp(cfg *Config, rec registration.Recorder, logger *slog.Logger) (*AppContext, error) {
	mode, err := catalog.ParseMatchMode(cfg.Catalog.PriceMatch)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AppContext{
		Config:        cfg,
		Catalog:       catalog.NewReader(cfg.Catalog.DataDir, mode),
		Registrations: rec,
		Commands:      SetupCommandRegistry(),
		Logger:        logger,
		StartTime:     time.Now(),
	}, nil
}

// Tr translates a key using the configured language
func (ctx *AppContext) Tr(key string) string {
	lang := ""
	if ctx.Config != nil {
		lang = ctx.Config.Language
	}
	return tr(lang, key)
}

// Trf translates key and formats it with args.
func (ctx *AppContext) Trf(key string, args ...any) string {
	return fmt.Sprintf(ctx.Tr(key), args...)
}

// MenuDriven reports whether reply-keyboard labels are routed.
func (ctx *AppContext) MenuDriven() bool {
	return ctx.Config != nil && ctx.Config.InteractionMode == ModeMenuDriven
}

func (ctx *AppContext) logger() *slog.Logger {
	if ctx.Logger == nil {
		return slog.Default()
	}
	return ctx.Logger
}
