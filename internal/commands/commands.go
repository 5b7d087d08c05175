// Package commands turns chat commands into registry operations and
// replies. It knows nothing about the chat transport: a Request carries the
// command, its raw argument text and the sending user, and Handle returns
// the replies to send back.
package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rewired-gh/plotbot/internal/chart"
	"github.com/rewired-gh/plotbot/internal/logger"
	"github.com/rewired-gh/plotbot/internal/registry"
)

// User is the sender of a command.
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// DisplayName is "@username" when the user has one, otherwise the first and
// last name. It is the label a user's own points are stored under.
func (u User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Request is one incoming command.
type Request struct {
	ChatID  int64
	User    User
	Command string
	// Args is the raw text after the command.
	Args string
}

// Reply is one outgoing message: text, or a photo with an optional caption.
type Reply struct {
	Text  string
	Photo []byte
}

// Store provides per-chat registries.
type Store interface {
	Chat(ctx context.Context, chatID int64) (*registry.Registry, error)
	SaveChat(ctx context.Context, chatID int64, reg *registry.Registry) error
}

// Options tune rendering defaults.
type Options struct {
	ContourGrid   int
	ContourLevels int
}

// Handler dispatches commands.
type Handler struct {
	store    Store
	renderer chart.Renderer
	opts     Options
	now      func() time.Time
	commands map[string]*command
	ordered  []*command
}

// New creates a handler.
func New(store Store, renderer chart.Renderer, opts Options) *Handler {
	h := &Handler{
		store:    store,
		renderer: renderer,
		opts:     opts,
		now:      time.Now,
		commands: make(map[string]*command),
	}
	for _, c := range table() {
		h.ordered = append(h.ordered, c)
		for _, name := range c.names {
			h.commands[name] = c
		}
	}
	return h
}

// Summary describes a command for a client-side menu.
type Summary struct {
	Name        string
	Description string
}

// Summaries lists every command under its primary name, in help order.
func (h *Handler) Summaries() []Summary {
	out := make([]Summary, len(h.ordered))
	for i, c := range h.ordered {
		out[i] = Summary{Name: c.name(), Description: c.summary}
	}
	return out
}

// Known reports whether name is a command or alias.
func (h *Handler) Known(name string) bool {
	_, ok := h.commands[strings.ToLower(name)]
	return ok
}

type command struct {
	names   []string
	usage   string
	summary string
	// mutates marks commands whose registry must be saved afterwards.
	mutates bool
	run     func(h *Handler, c *call) ([]Reply, error)
}

func (c *command) name() string { return c.names[0] }

// call is the state of one command invocation.
type call struct {
	ctx   context.Context
	req   Request
	reg   *registry.Registry
	cmd   *command
	args  []string
	// dirty is set once reg has changed, even if the command fails later.
	dirty bool
}

func (c *call) user() User   { return c.req.User }
func (c *call) name() string { return c.req.User.DisplayName() }

// usageError is returned by commands whose arguments do not parse.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// Handle runs one command. Problems with the user's input are reported in
// the replies; the returned error is reserved for storage failures.
func (h *Handler) Handle(ctx context.Context, req Request) ([]Reply, error) {
	cmd, ok := h.commands[strings.ToLower(req.Command)]
	if !ok {
		return nil, nil
	}
	args, err := splitArgs(req.Args)
	if err != nil {
		return text("That is not a valid argument list: %v. See /help.", err), nil
	}
	reg, err := h.store.Chat(ctx, req.ChatID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat %d: %w", req.ChatID, err)
	}

	c := &call{ctx: ctx, req: req, reg: reg, cmd: cmd, args: args}
	logger.Debug("chat %d: /%s from %s (%d) args=%q", req.ChatID, cmd.name(), req.User.DisplayName(), req.User.ID, args)

	replies, err := cmd.run(h, c)
	if err != nil {
		replies = text("%s", h.describe(c, err))
		logger.Debug("chat %d: /%s failed: %v", req.ChatID, cmd.name(), err)
	} else if cmd.mutates {
		c.dirty = true
	}

	if c.dirty {
		if err := h.store.SaveChat(ctx, req.ChatID, reg); err != nil {
			return replies, fmt.Errorf("failed to save chat %d: %w", req.ChatID, err)
		}
	}
	return replies, nil
}

// describe turns an error into reply text.
func (h *Handler) describe(c *call, err error) string {
	var ue *usageError
	switch {
	case errors.As(err, &ue):
		return ue.msg
	case errors.Is(err, registry.ErrNoChart):
		return "That plot doesn't exist!"
	case errors.Is(err, registry.ErrArchived):
		return "That plot is archived. Use /unarchive first."
	case errors.Is(err, registry.ErrNoBet):
		return "There is no bet running. Start one with /startbet."
	case errors.Is(err, registry.ErrBetRunning):
		return "A bet is already running. End it with /endbet or /cancelbet."
	case errors.Is(err, registry.ErrNoGuesses):
		return "Nobody has placed a guess yet. Use /bet."
	case errors.Is(err, chart.ErrNotFound):
		return "There is no point with that label on this plot."
	case errors.Is(err, chart.ErrOutOfBounds):
		return err.Error()
	case errors.Is(err, chart.ErrPermission):
		return strings.TrimPrefix(err.Error(), chart.ErrPermission.Error()+": ")
	case errors.Is(err, chart.ErrInvalid):
		return strings.TrimPrefix(err.Error(), chart.ErrInvalid.Error()+": ")
	default:
		logger.Error("chat %d: /%s: %v", c.req.ChatID, c.cmd.name(), err)
		return "Something went wrong: " + err.Error()
	}
}

func text(format string, args ...any) []Reply {
	return []Reply{{Text: fmt.Sprintf(format, args...)}}
}

func (h *Handler) help() string {
	var b strings.Builder
	b.WriteString("Commands:\n\n")
	for _, c := range h.ordered {
		b.WriteString("/" + c.usage)
		if len(c.names) > 1 {
			b.WriteString(" (also /" + strings.Join(c.names[1:], ", /") + ")")
		}
		b.WriteString("\n  " + c.summary + "\n")
	}
	return b.String()
}

func table() []*command {
	return []*command{
		{names: []string{"help", "start"}, usage: "help", summary: "Show this message.",
			run: func(h *Handler, c *call) ([]Reply, error) { return text("%s", h.help()), nil }},

		{names: []string{"createplot", "cp"}, mutates: true, run: createPlot,
			usage:   "createplot [-t title] [--xleft l] [--xright r] [--ybottom b] [--ytop t] [--minx n] [--maxx n] [--miny n] [--maxy n] [--custompoints]",
			summary: "Create a rectangular plot. Use _ for an unbounded side."},
		{names: []string{"createboxplot", "cbp"}, mutates: true, run: createBoxPlot,
			usage:   "createboxplot [-t title] [--horizontal l,m,r] [--vertical b,m,t] [--custompoints]",
			summary: "Create a 3x3 box plot on [-10, 10]."},
		{names: []string{"createalignmentchart", "cac"}, mutates: true, run: createAlignmentChart,
			usage:   "createalignmentchart [-t title] [--cells nine,comma,separated,...] [--custompoints]",
			summary: "Create an alignment chart."},
		{names: []string{"createtriangleplot", "ctp"}, mutates: true, run: createTrianglePlot,
			usage:   "createtriangleplot [-t title] [--corners left,top,right] [--maxx n] [--maxy n] [--custompoints]",
			summary: "Create a triangle plot."},
		{names: []string{"createradarplot", "crp"}, mutates: true, run: createRadarPlot,
			usage:   "createradarplot [-t title] [--custompoints] {axis} {axis} ...",
			summary: "Create a radar plot with one spoke per axis."},

		{names: []string{"plotme", "pm", "plot"}, mutates: true, run: plotMe,
			usage:   "plotme {plot_id} {x} {y} [x_error] [y_error]",
			summary: "Place yourself on a plot. Radar plots take one value per axis."},
		{names: []string{"removeme", "rm", "begone"}, mutates: true, run: removeMe,
			usage:   "removeme {plot_id}",
			summary: "Remove yourself from a plot."},
		{names: []string{"custompoint", "dk"}, mutates: true, run: customPoint,
			usage:   "custompoint {plot_id} {x} {y} {label}",
			summary: "Place a labeled point on your own plot, if it allows custom points."},
		{names: []string{"removecustompoint", "rcp"}, mutates: true, run: removeCustomPoint,
			usage:   "removecustompoint {plot_id} {label}",
			summary: "Remove a labeled point from your own plot."},
		{names: []string{"removeplot", "rp"}, mutates: true, run: removePlot,
			usage:   "removeplot {plot_id}",
			summary: "Delete your plot."},

		{names: []string{"showplot", "sp", "lookatthisgraph"}, run: showPlot,
			usage:   "showplot {plot_id} [--contour] [--nolabels] [--zoom minx,maxx,miny,maxy]",
			summary: "Draw a plot."},
		{names: []string{"listplots", "lp"}, run: listPlots,
			usage:   "listplots",
			summary: "List the plots in this chat."},
		{names: []string{"listarchived", "la"}, run: listArchived,
			usage:   "listarchived",
			summary: "List archived plots."},
		{names: []string{"archive"}, mutates: true, run: archive,
			usage:   "archive {plot_id}",
			summary: "Hide your plot from /listplots."},
		{names: []string{"unarchive"}, mutates: true, run: unarchive,
			usage:   "unarchive {plot_id}",
			summary: "Restore an archived plot."},
		{names: []string{"plotstats", "ps", "getplotstats"}, run: plotStats,
			usage:   "plotstats {plot_id}",
			summary: "Summary statistics of a plot."},
		{names: []string{"polyfitplot", "pp"}, run: polyfitPlot,
			usage:   "polyfitplot {plot_id} [degree]",
			summary: "Fit a polynomial (degree 1 by default) and draw it."},
		{names: []string{"equation", "eq"}, run: equation,
			usage:   "equation {plot_id} [degree]",
			summary: "Show the fitted polynomial without drawing."},
		{names: []string{"whomademe", "who", "w"}, run: whoMadeMe,
			usage:   "whomademe {plot_id}",
			summary: "Show who created a plot."},
		{names: []string{"whereami"}, run: whereAmI,
			usage:   "whereami {plot_id}",
			summary: "Show your own point on a plot."},
		{names: []string{"editplot", "ep"}, mutates: true, run: editPlot,
			usage:   "editplot {plot_id} [-t title] [--custompoints=true|false] [plot-specific flags]",
			summary: "Change your plot. Takes the same flags as the create command."},

		{names: []string{"consent"}, mutates: true, run: consent,
			usage:   "consent {plot_id} [on|off]",
			summary: "Allow or stop others placing you on a plot by crowdsourcing."},
		{names: []string{"crowdsource", "cs"}, mutates: true, run: crowdsource,
			usage:   "crowdsource {plot_id} {name} {x} {y}",
			summary: "Estimate where someone belongs. Their point moves to the average estimate."},
		{names: []string{"contributions"}, run: contributions,
			usage:   "contributions {plot_id} {name}",
			summary: "Show the estimates made for someone."},
		{names: []string{"consenting"}, run: consenting,
			usage:   "consenting {plot_id}",
			summary: "List who accepts crowdsourced placement on a plot."},

		{names: []string{"startbet"}, mutates: true, run: startBet,
			usage:   "startbet {plot_id} [degree]",
			summary: "Start a bet on the R^2 of a fit."},
		{names: []string{"bet"}, mutates: true, run: placeBet,
			usage:   "bet {r_squared}",
			summary: "Guess the R^2 of the running bet."},
		{names: []string{"endbet"}, mutates: true, run: endBet,
			usage:   "endbet",
			summary: "Fit the plot and announce the winner."},
		{names: []string{"cancelbet"}, mutates: true, run: cancelBet,
			usage:   "cancelbet",
			summary: "Cancel the running bet."},
		{names: []string{"betstats"}, run: betStats,
			usage:   "betstats",
			summary: "Show everyone's betting record."},
	}
}
