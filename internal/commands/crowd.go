package commands

import (
	"fmt"
	"strings"

	"github.com/rewired-gh/plotbot/internal/chart"
)

func (c *call) crowdAt() (int, chart.Crowdsourced, error) {
	id, ch, err := c.chartAt(0)
	if err != nil {
		return 0, nil, err
	}
	cs, ok := ch.(chart.Crowdsourced)
	if !ok {
		return 0, nil, usagef("A %s plot cannot be crowdsourced.", ch.Kind())
	}
	return id, cs, nil
}

func consent(h *Handler, c *call) ([]Reply, error) {
	if len(c.args) < 1 || len(c.args) > 2 {
		return nil, usagef("usage: /%s", c.cmd.usage)
	}
	id, cs, err := c.crowdAt()
	if err != nil {
		return nil, err
	}
	enabled := true
	if len(c.args) == 2 {
		switch strings.ToLower(c.args[1]) {
		case "on", "yes", "true":
		case "off", "no", "false":
			enabled = false
		default:
			return nil, usagef("usage: /%s", c.cmd.usage)
		}
	}
	cs.SetConsent(c.user().ID, c.name(), enabled)
	if enabled {
		return text("Others can now place you on plot (%d) with /crowdsource.", id), nil
	}
	return text("Nobody else can place you on plot (%d) any more. Existing estimates are kept.", id), nil
}

func crowdsource(h *Handler, c *call) ([]Reply, error) {
	id, cs, err := c.crowdAt()
	if err != nil {
		return nil, err
	}
	dim := cs.Dimensions()
	if len(c.args) != dim+2 {
		return nil, usagef("usage: /crowdsource {plot_id} {name} followed by %d values", dim)
	}
	values, err := parseNumbers(c.args[2:])
	if err != nil {
		return nil, err
	}
	subject := c.args[1]
	if err := cs.Crowdsource(c.user().ID, c.name(), subject, values); err != nil {
		return nil, err
	}
	c.dirty = true
	n := len(cs.Contributions(subject))
	replies := text("Thanks! %s on plot (%d) is now the average of %d estimates.", subject, id, n)
	img, err := h.draw(cs, chart.RenderOptions{})
	if err != nil {
		return nil, err
	}
	return append(replies, img...), nil
}

func contributions(h *Handler, c *call) ([]Reply, error) {
	if len(c.args) != 2 {
		return nil, usagef("usage: /%s", c.cmd.usage)
	}
	id, cs, err := c.crowdAt()
	if err != nil {
		return nil, err
	}
	subject := c.args[1]
	list := cs.Contributions(subject)
	if len(list) == 0 {
		return text("Nobody has placed %s on plot (%d).", subject, id), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Estimates for %s on plot (%d):\n\n", subject, id)
	for i, x := range list {
		vs := make([]string, len(x.Values))
		for j, v := range x.Values {
			vs[j] = num(v)
		}
		fmt.Fprintf(&b, "%d. (%s)\n", i+1, strings.Join(vs, ", "))
	}
	return text("%s", b.String()), nil
}

func consenting(h *Handler, c *call) ([]Reply, error) {
	if len(c.args) != 1 {
		return nil, usagef("usage: /%s", c.cmd.usage)
	}
	id, cs, err := c.crowdAt()
	if err != nil {
		return nil, err
	}
	users := cs.ConsentingUsers()
	if len(users) == 0 {
		return text("Nobody on plot (%d) accepts crowdsourcing yet.", id), nil
	}
	return text("Crowdsourcing on plot (%d) is open for:\n%s", id, strings.Join(users, "\n")), nil
}
