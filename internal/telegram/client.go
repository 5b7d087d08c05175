// Package telegram connects the command handler to the Telegram Bot API.
// It long-polls for updates, turns bot commands into requests and sends the
// replies back as messages and photos, retrying failed sends.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rewired-gh/plotbot/internal/commands"
	"github.com/rewired-gh/plotbot/internal/logger"
)

// Handler answers commands.
type Handler interface {
	Handle(ctx context.Context, req commands.Request) ([]commands.Reply, error)
	Summaries() []commands.Summary
}

// bot is the part of tgbotapi.BotAPI the client uses.
type bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Options configure a Client.
type Options struct {
	MaxRetries     int
	RetryDelayBase time.Duration
	// UpdateTimeout is the long-poll timeout in seconds.
	UpdateTimeout int
	Debug         bool
}

// Client handles Telegram updates and replies
type Client struct {
	bot            bot
	username       string
	maxRetries     int
	retryDelayBase time.Duration
	updateTimeout  int
}

// NewClient creates a new Telegram client
func NewClient(botToken string, opts Options) (*Client, error) {
	tgbotapi.SetLogger(botLogger{})
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	api.Debug = opts.Debug
	logger.Info("Authorized on Telegram account @%s", api.Self.UserName)
	return newClient(api, api.Self.UserName, opts), nil
}

func newClient(b bot, username string, opts Options) *Client {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.RetryDelayBase <= 0 {
		opts.RetryDelayBase = time.Second
	}
	if opts.UpdateTimeout <= 0 {
		opts.UpdateTimeout = 60
	}
	return &Client{
		bot:            b,
		username:       username,
		maxRetries:     opts.MaxRetries,
		retryDelayBase: opts.RetryDelayBase,
		updateTimeout:  opts.UpdateTimeout,
	}
}

// SetCommands publishes the command menu shown by Telegram clients.
func (c *Client) SetCommands(h Handler) error {
	var list []tgbotapi.BotCommand
	for _, s := range h.Summaries() {
		list = append(list, tgbotapi.BotCommand{Command: s.Name, Description: s.Description})
	}
	if _, err := c.bot.Request(tgbotapi.NewSetMyCommands(list...)); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}
	return nil
}

// Run processes updates one at a time until ctx is cancelled. Chats share
// one goroutine, so a handler never sees two commands at once.
func (c *Client) Run(ctx context.Context, h Handler) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = c.updateTimeout
	updates := c.bot.GetUpdatesChan(u)
	defer c.bot.StopReceivingUpdates()

	logger.Info("Listening for commands")
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopped listening for commands")
			return nil
		case update, ok := <-updates:
			if !ok {
				return fmt.Errorf("update channel closed")
			}
			c.handleUpdate(ctx, h, update)
		}
	}
}

func (c *Client) handleUpdate(ctx context.Context, h Handler, update tgbotapi.Update) {
	req, replyTo, ok := c.request(update)
	if !ok {
		return
	}

	replies, err := handle(ctx, h, req)
	if err != nil {
		logger.Error("chat %d: /%s: %v", req.ChatID, req.Command, err)
		if len(replies) == 0 {
			replies = []commands.Reply{{Text: "Something went wrong, please try again."}}
		}
	}

	for _, r := range replies {
		if err := c.Send(ctx, req.ChatID, replyTo, r); err != nil {
			logger.Error("chat %d: %v", req.ChatID, err)
			return
		}
	}
}

// handle runs one request, turning a panic into an error so a single bad
// update cannot stop the polling loop.
func handle(ctx context.Context, h Handler, req commands.Request) (replies []commands.Reply, err error) {
	defer func() {
		if p := recover(); p != nil {
			replies, err = nil, fmt.Errorf("panic: %v", p)
		}
	}()
	return h.Handle(ctx, req)
}

// request extracts a command from an update. Commands addressed to
// another bot with /cmd@otherbot are ignored.
func (c *Client) request(update tgbotapi.Update) (commands.Request, int, bool) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil || !msg.IsCommand() {
		return commands.Request{}, 0, false
	}
	if at := strings.SplitN(msg.CommandWithAt(), "@", 2); len(at) == 2 && !strings.EqualFold(at[1], c.username) {
		return commands.Request{}, 0, false
	}
	return commands.Request{
		ChatID: msg.Chat.ID,
		User: commands.User{
			ID:        msg.From.ID,
			Username:  msg.From.UserName,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
		},
		Command: msg.Command(),
		Args:    msg.CommandArguments(),
	}, msg.MessageID, true
}

// Send delivers one reply with retry
func (c *Client) Send(ctx context.Context, chatID int64, replyTo int, r commands.Reply) error {
	var msg tgbotapi.Chattable
	if r.Photo != nil {
		p := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "plot.png", Bytes: r.Photo})
		p.Caption = r.Text
		p.ReplyToMessageID = replyTo
		msg = p
	} else {
		m := tgbotapi.NewMessage(chatID, r.Text)
		m.ReplyToMessageID = replyTo
		msg = m
	}

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		if i == c.maxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retryDelayBase * time.Duration(i+1)):
		}
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// botLogger routes the library's own logging through ours.
type botLogger struct{}

func (botLogger) Println(v ...interface{}) {
	logger.Debug("%s", strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (botLogger) Printf(format string, v ...interface{}) {
	logger.Debug(format, v...)
}
