package commands

import (
	"fmt"
	"strings"
)

func startBet(h *Handler, c *call) ([]Reply, error) {
	if len(c.args) < 1 || len(c.args) > 2 {
		return nil, usagef("usage: /%s", c.cmd.usage)
	}
	id, err := parseID(c.args[0])
	if err != nil {
		return nil, err
	}
	degree, err := parseDegree(c.args, 1)
	if err != nil {
		return nil, err
	}
	if _, err := c.reg.StartBet(id, degree, h.now()); err != nil {
		return nil, err
	}
	return text("Bet started on plot (%d), degree %d. Guess the R^2 with /bet {value}.", id, degree), nil
}

func placeBet(h *Handler, c *call) ([]Reply, error) {
	if len(c.args) != 1 {
		return nil, usagef("usage: /%s", c.cmd.usage)
	}
	v, err := parseNumber(c.args[0])
	if err != nil {
		return nil, err
	}
	if err := c.reg.PlaceGuess(c.user().ID, c.name(), v); err != nil {
		return nil, err
	}
	return text("%s guessed %s.", c.name(), num(v)), nil
}

func endBet(h *Handler, c *call) ([]Reply, error) {
	out, err := c.reg.ResolveBet()
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Plot (%d) R^2: %s\ny = %s\n\n", out.Bet.ChartID, formatR2(out.Actual), out.Equation)
	for _, g := range out.Bet.Guesses {
		fmt.Fprintf(&b, "%s: %s\n", g.Name, num(g.Value))
	}
	fmt.Fprintf(&b, "\n%s wins, off by %s!", out.Winner.Name, formatR2(out.Diff))
	return text("%s", b.String()), nil
}

func cancelBet(h *Handler, c *call) ([]Reply, error) {
	if err := c.reg.CancelBet(); err != nil {
		return nil, err
	}
	return text("The bet was cancelled."), nil
}

func betStats(h *Handler, c *call) ([]Reply, error) {
	stats := c.reg.Stats()
	if len(stats) == 0 {
		return text("No bets have been settled yet."), nil
	}
	var b strings.Builder
	b.WriteString("Bet stats:\n\n")
	for _, s := range stats {
		fmt.Fprintf(&b, "%s: %d/%d won, avg diff %s", s.Name, s.TotalWins, s.TotalBets, formatR2(s.AvgDiff))
		if s.TotalWins > 0 {
			fmt.Fprintf(&b, ", winning avg diff %s", formatR2(s.WinningAvgDiff))
		}
		b.WriteString("\n")
	}
	return text("%s", b.String()), nil
}
