package main

import (
	"os"
	"path/filepath"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"coursebot/internal/catalog"
	"coursebot/internal/registration"
)

type fakeBot struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	nextID   int
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent = append(b.sent, c)
	b.nextID++
	return tgbotapi.Message{MessageID: b.nextID, Chat: &tgbotapi.Chat{ID: 1}}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// texts returns the text of every message sent so far.
func (b *fakeBot) texts() []string {
	var out []string
	for _, c := range b.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m.Text)
		}
	}
	return out
}

func (b *fakeBot) lastMessage(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	if len(b.sent) == 0 {
		t.Fatalf("expected a message to be sent")
	}
	m, ok := b.sent[len(b.sent)-1].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("last sent is %T, want MessageConfig", b.sent[len(b.sent)-1])
	}
	return m
}

const (
	testCourses  = "Python;https://example.com/python\nGo;https://example.com/go\n"
	testSchedule = "Python;2024-05-01\nGo;-\nRust;x\n"
	testPrices   = "Python;basic:100;pro:200\nGo;basic:90\n"
)

func writeCatalog(t *testing.T, dir, courses, schedule, prices string) {
	t.Helper()
	files := map[string]string{
		catalog.CoursesFile:  courses,
		catalog.ScheduleFile: schedule,
		catalog.PricesFile:   prices,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// newTestAppContext builds an app over a temp catalog and a temp SQLite
// database.
func newTestAppContext(t *testing.T, mode string) *AppContext {
	t.Helper()
	dir := t.TempDir()
	writeCatalog(t, dir, testCourses, testSchedule, testPrices)

	rec, err := registration.OpenSQLite(registration.SQLiteConfig{Path: filepath.Join(dir, "bot.db"), PoolSize: 1})
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { rec.Close() })

	cfg := defaultConfigTemplate()
	cfg.BotToken = "123:test"
	cfg.InteractionMode = mode
	cfg.Catalog.DataDir = dir

	ctx, err := InitApp(&cfg, rec, nil)
	if err != nil {
		t.Fatalf("InitApp: %v", err)
	}
	return ctx
}

func commandMessage(text string) *tgbotapi.Message {
	length := len(text)
	for i, r := range text {
		if r == ' ' {
			length = i
			break
		}
	}
	return &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: 7},
		From:     &tgbotapi.User{ID: 42, UserName: "alice"},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}
}

func textMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: 7},
		From: &tgbotapi.User{ID: 42, UserName: "alice"},
	}
}

func callbackQuery(data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb1",
		Data:    data,
		From:    &tgbotapi.User{ID: 42, UserName: "alice"},
		Message: &tgbotapi.Message{MessageID: 10, Chat: &tgbotapi.Chat{ID: 7}},
	}
}
