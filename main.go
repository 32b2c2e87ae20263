package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"coursebot/internal/registration"
)

var (
	configPath      string
	registerOnServe bool
	cfg             *Config
)

var rootCmd = &cobra.Command{
	Use:   "coursebot",
	Short: "Telegram bot for a course catalog",
	Long: `coursebot answers catalog questions (courses, schedule, prices) from
plain-text data files and records course registrations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		c, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = c
		setupLogger(cfg.Logging)
		if safe, err := getConfigJSONSafe(cfg); err == nil {
			slog.Debug("Configuration loaded", "config", safe)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLogger()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, api, closeApp, err := startApp(rc)
		if err != nil {
			return err
		}
		defer closeApp()

		if registerOnServe {
			if err := registerWebhook(cfg, api); err != nil {
				return err
			}
		}
		return serveWebhook(rc, app, api)
	},
}

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Receive updates by long polling instead of a webhook",
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, api, closeApp, err := startApp(rc)
		if err != nil {
			return err
		}
		defer closeApp()
		return runPolling(rc, app, api)
	},
}

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Manage the Telegram webhook registration",
}

var webhookSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Point Telegram at webhook.public_url/<token>",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newTelegramClient()
		if err != nil {
			return err
		}
		if err := registerWebhook(cfg, api); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "webhook set")
		return nil
	},
}

var webhookDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the webhook so the bot can poll",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newTelegramClient()
		if err != nil {
			return err
		}
		if err := deleteWebhook(api); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "webhook deleted")
		return nil
	},
}

var registrationsCmd = &cobra.Command{
	Use:   "registrations",
	Short: "Print every stored registration",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := openRecorder(cmd.Context())
		if err != nil {
			return err
		}
		defer rec.Close()
		return printRegistrations(cmd.Context(), cmd.OutOrStdout(), rec)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "path to the JSON config file")
	serveCmd.Flags().BoolVar(&registerOnServe, "register-webhook", false, "register the webhook with Telegram before serving")

	webhookCmd.AddCommand(webhookSetCmd, webhookDeleteCmd)
	rootCmd.AddCommand(serveCmd, pollCmd, webhookCmd, registrationsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openRecorder(ctx context.Context) (registration.Recorder, error) {
	return registration.Open(ctx, registration.Config{
		Driver:      cfg.Storage.Driver,
		SQLitePath:  cfg.Storage.SQLitePath,
		PostgresDSN: cfg.Storage.PostgresDSN,
		PoolSize:    cfg.Storage.PoolSize,
		Logger:      slog.Default(),
	})
}

func newTelegramClient() (*tgbotapi.BotAPI, error) {
	if err := requireBotToken(cfg); err != nil {
		return nil, err
	}
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram client: %w", err)
	}
	return api, nil
}

// startApp opens storage, builds the app context and the Telegram client
// and publishes the command menu. The returned func releases storage.
func startApp(rc context.Context) (*AppContext, *tgbotapi.BotAPI, func(), error) {
	if err := requireBotToken(cfg); err != nil {
		return nil, nil, nil, err
	}
	rec, err := openRecorder(rc)
	if err != nil {
		return nil, nil, nil, err
	}
	closeRec := func() {
		if err := rec.Close(); err != nil {
			slog.Warn("Error closing registration storage", "err", err)
		}
	}

	app, err := InitApp(cfg, rec, slog.Default())
	if err != nil {
		closeRec()
		return nil, nil, nil, err
	}

	api, err := newTelegramClient()
	if err != nil {
		closeRec()
		return nil, nil, nil, err
	}
	slog.Info("CourseBot started",
		"bot", api.Self.UserName,
		"mode", cfg.InteractionMode,
		"language", cfg.Language,
		"storage", cfg.Storage.Driver,
	)

	if _, err := api.Request(tgbotapi.NewSetMyCommands(botCommands(app)...)); err != nil {
		slog.Warn("Could not publish command menu", "err", err)
	}
	return app, api, closeRec, nil
}

func printRegistrations(ctx context.Context, out io.Writer, rec registration.Recorder) error {
	regs, err := rec.List(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSER ID\tUSERNAME\tCOURSE\tCREATED")
	for _, r := range regs {
		created := "-"
		if !r.CreatedAt.IsZero() {
			created = r.CreatedAt.Format(time.RFC3339)
		}
		username := r.Username
		if username == "" {
			username = "-"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", r.ID, r.UserID, username, r.CourseName, created)
	}
	return tw.Flush()
}
