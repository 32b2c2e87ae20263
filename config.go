package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// loadConfig reads path (if it exists), fills missing fields with defaults,
// applies environment overrides and validates the result. A missing file
// is fine as long as the environment supplies the bot token.
func loadConfig(path string) (*Config, error) {
	configMap := map[string]interface{}{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &configMap); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// env-only deployment
	default:
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	fillMissingConfigFields(configMap)

	merged, err := json.Marshal(configMap)
	if err != nil {
		return nil, fmt.Errorf("error serializing config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(merged, &cfg); err != nil {
		return nil, fmt.Errorf("error applying config: %w", err)
	}

	applyEnvOverrides(&cfg)
	normalizeConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides lets the process environment (or .env) override the
// file. DATABASE_URL switches storage to postgres.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.BotToken = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Webhook.ListenAddr = ":" + v
	}
	if v := os.Getenv("COURSEBOT_PUBLIC_URL"); v != "" {
		cfg.Webhook.PublicURL = v
	}
	if v := os.Getenv("COURSEBOT_DATA_DIR"); v != "" {
		cfg.Catalog.DataDir = v
	}
	if v := os.Getenv("COURSEBOT_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("COURSEBOT_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Storage.Driver = "postgres"
		cfg.Storage.PostgresDSN = v
	}
}

func normalizeConfig(cfg *Config) {
	cfg.Language = strings.ToLower(strings.TrimSpace(cfg.Language))
	cfg.InteractionMode = strings.ToLower(strings.TrimSpace(cfg.InteractionMode))
	cfg.Catalog.PriceMatch = strings.ToLower(strings.TrimSpace(cfg.Catalog.PriceMatch))
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Webhook.PublicURL = strings.TrimRight(strings.TrimSpace(cfg.Webhook.PublicURL), "/")
}

var configValidator = validator.New()

func validateConfig(cfg *Config) error {
	if err := configValidator.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if !supportedLanguage(cfg.Language) {
		return fmt.Errorf("invalid config: no translations for language %q", cfg.Language)
	}
	return nil
}

var errNoBotToken = errors.New("bot_token is not configured (set it in the config file or TELEGRAM_BOT_TOKEN)")

// requireBotToken guards the subcommands that talk to Telegram. Storage-only
// commands run without a token.
func requireBotToken(cfg *Config) error {
	if cfg == nil || strings.TrimSpace(cfg.BotToken) == "" {
		return errNoBotToken
	}
	return nil
}

// getConfigJSONSafe returns config JSON with credentials redacted
func getConfigJSONSafe(cfg *Config) (string, error) {
	redacted := *cfg
	if redacted.BotToken != "" {
		redacted.BotToken = "<redacted>"
	}
	if redacted.Storage.PostgresDSN != "" {
		redacted.Storage.PostgresDSN = "<redacted>"
	}
	data, err := json.MarshalIndent(redacted, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error serializing config: %w", err)
	}
	return string(data), nil
}
