package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rewired-gh/plotbot/internal/commands"
)

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	failures int
	updates  chan tgbotapi.Update
	stopped  bool
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failures > 0 {
		b.failures--
		return tgbotapi.Message{}, errors.New("flood wait")
	}
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) StopReceivingUpdates() { b.stopped = true }

func (b *fakeBot) sentCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sent)
}

type fakeHandler struct {
	reqs    []commands.Request
	replies []commands.Reply
	err     error
	panics  bool
}

func (h *fakeHandler) Handle(_ context.Context, req commands.Request) ([]commands.Reply, error) {
	h.reqs = append(h.reqs, req)
	if h.panics {
		panic("index out of range")
	}
	return h.replies, h.err
}

func (h *fakeHandler) Summaries() []commands.Summary {
	return []commands.Summary{{Name: "plotme", Description: "Place yourself on a plot."}}
}

func commandUpdate(text string, cmdLen int) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			MessageID: 7,
			From:      &tgbotapi.User{ID: 99, UserName: "alice", FirstName: "Alice"},
			Chat:      &tgbotapi.Chat{ID: -100},
			Text:      text,
			Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
		},
	}
}

func testClient(b *fakeBot) *Client {
	return newClient(b, "plot_bot", Options{MaxRetries: 3, RetryDelayBase: time.Millisecond})
}

func TestRequestFromUpdate(t *testing.T) {
	c := testClient(&fakeBot{})

	tests := []struct {
		name    string
		update  tgbotapi.Update
		ok      bool
		command string
		args    string
	}{
		{"plain", commandUpdate("/plotme 1 2 3", 7), true, "plotme", "1 2 3"},
		{"addressed to us", commandUpdate("/plotme@plot_bot 1 2 3", 16), true, "plotme", "1 2 3"},
		{"addressed to us, any case", commandUpdate("/lp@Plot_Bot", 12), true, "lp", ""},
		{"other bot", commandUpdate("/plotme@other_bot 1 2", 17), false, "", ""},
		{"not a command", tgbotapi.Update{Message: &tgbotapi.Message{Text: "hi", Chat: &tgbotapi.Chat{ID: 1}, From: &tgbotapi.User{ID: 1}}}, false, "", ""},
		{"no message", tgbotapi.Update{}, false, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, replyTo, ok := c.request(tt.update)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if req.Command != tt.command || req.Args != tt.args {
				t.Errorf("got /%s %q, want /%s %q", req.Command, req.Args, tt.command, tt.args)
			}
			if req.ChatID != -100 || req.User.ID != 99 || req.User.Username != "alice" {
				t.Errorf("unexpected request: %+v", req)
			}
			if replyTo != 7 {
				t.Errorf("replyTo = %d, want 7", replyTo)
			}
		})
	}
}

func TestSendRetries(t *testing.T) {
	b := &fakeBot{failures: 2}
	c := testClient(b)

	if err := c.Send(context.Background(), 1, 0, commands.Reply{Text: "hi"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if b.sentCount() != 1 {
		t.Errorf("sent = %d, want 1", b.sentCount())
	}

	b.failures = 5
	err := c.Send(context.Background(), 1, 0, commands.Reply{Text: "hi"})
	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
}

func TestSendPhoto(t *testing.T) {
	b := &fakeBot{}
	c := testClient(b)

	if err := c.Send(context.Background(), 5, 3, commands.Reply{Photo: []byte("png"), Text: "caption"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	p, ok := b.sent[0].(tgbotapi.PhotoConfig)
	if !ok {
		t.Fatalf("sent %T, want PhotoConfig", b.sent[0])
	}
	if p.Caption != "caption" || p.ReplyToMessageID != 3 || p.ChatID != 5 {
		t.Errorf("unexpected photo: %+v", p)
	}
	fb, ok := p.File.(tgbotapi.FileBytes)
	if !ok || string(fb.Bytes) != "png" {
		t.Errorf("unexpected file: %+v", p.File)
	}
}

func TestRunDispatchesUntilCancelled(t *testing.T) {
	b := &fakeBot{updates: make(chan tgbotapi.Update, 2)}
	c := testClient(b)
	h := &fakeHandler{replies: []commands.Reply{{Text: "one"}, {Photo: []byte("png")}}}

	b.updates <- commandUpdate("/listplots", 10)
	b.updates <- commandUpdate("/plotme@other_bot 1 1 1", 17)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, h) }()

	deadline := time.Now().Add(2 * time.Second)
	for b.sentCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run returned %v", err)
	}

	if len(h.reqs) != 1 || h.reqs[0].Command != "listplots" {
		t.Errorf("handled %+v, want a single /listplots", h.reqs)
	}
	if b.sentCount() != 2 {
		t.Errorf("sent = %d, want 2", b.sentCount())
	}
	if !b.stopped {
		t.Error("updates were not stopped")
	}
}

func TestHandlerErrorStillReplies(t *testing.T) {
	b := &fakeBot{}
	c := testClient(b)
	h := &fakeHandler{err: errors.New("disk full")}

	c.handleUpdate(context.Background(), h, commandUpdate("/plotme 1 1 1", 7))

	m, ok := b.sent[0].(tgbotapi.MessageConfig)
	if !ok || m.Text != "Something went wrong, please try again." {
		t.Errorf("unexpected reply: %+v", b.sent)
	}
}

func TestHandlerPanicRecovered(t *testing.T) {
	b := &fakeBot{}
	c := testClient(b)
	h := &fakeHandler{panics: true}

	c.handleUpdate(context.Background(), h, commandUpdate("/eq 1 3", 3))

	if len(b.sent) != 1 {
		t.Fatalf("expected one reply, got %d", len(b.sent))
	}
	m, ok := b.sent[0].(tgbotapi.MessageConfig)
	if !ok || m.Text != "Something went wrong, please try again." {
		t.Errorf("unexpected reply: %+v", b.sent)
	}
}

func TestSetCommands(t *testing.T) {
	b := &fakeBot{}
	c := testClient(b)

	if err := c.SetCommands(&fakeHandler{}); err != nil {
		t.Fatalf("SetCommands failed: %v", err)
	}
	cfg, ok := b.requests[0].(tgbotapi.SetMyCommandsConfig)
	if !ok || len(cfg.Commands) != 1 || cfg.Commands[0].Command != "plotme" {
		t.Errorf("unexpected request: %+v", b.requests)
	}
}
