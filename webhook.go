package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const maxUpdateBytes = 1 << 20

// newRouter builds the webhook HTTP surface:
//
//	POST /{token}  platform update
//	GET  /         (re)register the webhook with Telegram
//	GET  /healthz  process and host health
func newRouter(ctx *AppContext, bot BotAPI) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(accessLog(ctx.logger()))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", healthHandler(ctx))
	r.Get("/", setWebhookHandler(ctx, bot))
	r.Post("/{token}", updateHandler(ctx, bot))
	return r
}

func updateHandler(ctx *AppContext, bot BotAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")
		if subtle.ConstantTimeCompare([]byte(token), []byte(ctx.Config.BotToken)) != 1 {
			http.NotFound(w, r)
			return
		}

		var update tgbotapi.Update
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpdateBytes)).Decode(&update); err != nil {
			ctx.logger().Warn("Rejected malformed update", "err", err)
			http.Error(w, "invalid update", http.StatusBadRequest)
			return
		}

		handleUpdate(r.Context(), ctx, bot, &update)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

func setWebhookHandler(ctx *AppContext, bot BotAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := registerWebhook(ctx.Config, bot); err != nil {
			ctx.logger().Error("Webhook registration failed", "err", err)
			http.Error(w, "webhook registration failed", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("webhook set"))
	}
}

// registerWebhook drops any existing webhook and points Telegram at
// public_url/<token>.
func registerWebhook(cfg *Config, bot BotAPI) error {
	if cfg.Webhook.PublicURL == "" {
		return errors.New("webhook.public_url is not configured")
	}
	if err := deleteWebhook(bot); err != nil {
		return err
	}
	wh, err := tgbotapi.NewWebhook(cfg.Webhook.PublicURL + "/" + cfg.BotToken)
	if err != nil {
		return fmt.Errorf("build webhook: %w", err)
	}
	if _, err := bot.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	slog.Info("Webhook registered", "url", cfg.Webhook.PublicURL+"/<token>")
	return nil
}

func deleteWebhook(bot BotAPI) error {
	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	return nil
}

// accessLog is a slog request logger. The token path segment is never
// logged.
func accessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			path := r.URL.Path
			if r.Method == http.MethodPost && path != "/" {
				path = "/<token>"
			}
			logger.Info("HTTP request",
				"method", r.Method,
				"path", path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}

// serveWebhook runs the HTTP server until rc is cancelled, then shuts it
// down gracefully.
func serveWebhook(rc context.Context, ctx *AppContext, bot BotAPI) error {
	cfg := ctx.Config.Webhook
	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      newRouter(ctx, bot),
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		ctx.logger().Info("Webhook server listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-rc.Done():
	}

	ctx.logger().Info("Shutting down webhook server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
