package main

// Interaction modes.
const (
	ModeCommandOnly = "command_only"
	ModeMenuDriven  = "menu_driven"
)

type Config struct {
	BotToken        string        `json:"bot_token"`
	Language        string        `json:"language" validate:"oneof=en ru"`
	InteractionMode string        `json:"interaction_mode" validate:"oneof=command_only menu_driven"`
	Catalog         CatalogConfig `json:"catalog"`
	Storage         StorageConfig `json:"storage"`
	Webhook         WebhookConfig `json:"webhook"`
	Logging         LoggingConfig `json:"logging"`
}

type CatalogConfig struct {
	DataDir    string `json:"data_dir" validate:"required"`
	PriceMatch string `json:"price_match" validate:"oneof=contains exact"`
}

type StorageConfig struct {
	Driver      string `json:"driver" validate:"oneof=sqlite postgres"`
	SQLitePath  string `json:"sqlite_path" validate:"required_if=Driver sqlite"`
	PostgresDSN string `json:"postgres_dsn" validate:"required_if=Driver postgres"`
	PoolSize    int    `json:"pool_size" validate:"gte=0"`
}

type WebhookConfig struct {
	ListenAddr          string `json:"listen_addr" validate:"required"`
	PublicURL           string `json:"public_url" validate:"omitempty,url"`
	ReadTimeoutSeconds  int    `json:"read_timeout_seconds" validate:"gte=0"`
	WriteTimeoutSeconds int    `json:"write_timeout_seconds" validate:"gte=0"`
}

type LoggingConfig struct {
	Level string `json:"level" validate:"oneof=debug info warn error"`
	File  string `json:"file"`
}
