package tui

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

// Option is one numbered entry of a menu
type Option struct {
	Key   string
	Label string
}

// FormatCard renders a card with its suit colour
func FormatCard(c deck.Card) string {
	if c.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

// FormatCards renders cards in brackets, e.g. "[A♠ 10♥]"
func FormatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = FormatCard(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// FormatValue describes a hand total, e.g. "soft 17", "21" or "bust (24)"
func FormatValue(value int, soft bool) string {
	switch {
	case value > 21:
		return fmt.Sprintf("bust (%d)", value)
	case soft:
		return fmt.Sprintf("soft %d", value)
	default:
		return fmt.Sprintf("%d", value)
	}
}

// FormatHand renders a hand's cards and total
func FormatHand(h game.HandState) string {
	value := FormatValue(h.Value, h.Soft)
	if len(h.Cards) == 2 && h.Value == 21 && !h.FromSplit {
		value = "blackjack"
	}
	s := FormatCards(h.Cards) + " " + value
	if h.Doubled {
		s += " (doubled)"
	}
	return s
}

// FormatNet renders a signed money amount, e.g. "+$15" or "-$10"
func FormatNet(m game.Money) string {
	switch {
	case m > 0:
		return WinStyle.Render("+" + m.String())
	case m < 0:
		return LossStyle.Render(m.String())
	default:
		return PushStyle.Render("±$0")
	}
}

// FormatOutcome renders a settlement result, e.g. "win (dealer bust)"
func FormatOutcome(r game.Result) string {
	text := fmt.Sprintf("%s (%s)", r.Outcome, r.Reason)
	switch r.Outcome {
	case game.OutcomeWin, game.OutcomeBlackjack:
		return WinStyle.Render(text)
	case game.OutcomePush:
		return PushStyle.Render(text)
	default:
		return LossStyle.Render(text)
	}
}

// FormatOptions renders a menu one option per line
func FormatOptions(options []Option) string {
	lines := make([]string, len(options))
	for i, o := range options {
		lines[i] = fmt.Sprintf("  %s) %s", MenuKeyStyle.Render(o.Key), o.Label)
	}
	return strings.Join(lines, "\n")
}

// RulesText describes the house rules in play
func RulesText(config game.TableConfig, decks int) string {
	bets := make([]string, len(config.BetDenominations))
	for i, d := range config.BetDenominations {
		bets[i] = game.Dollars(d).String()
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Vegas Strip Blackjack"))
	b.WriteString("\n\n")
	rules := []string{
		fmt.Sprintf("%d-deck shoe", decks),
		"Dealer hits soft 17",
		"Dealer peeks for blackjack with an Ace up",
		"Blackjack pays 3:2",
		"Double down on any first two cards, including after a split",
		fmt.Sprintf("Split pairs up to %d hands; split Aces receive one card each", game.MaxHands),
		"A split hand totalling 21 is not a blackjack",
		"Bets: " + strings.Join(bets, ", "),
	}
	for _, r := range rules {
		b.WriteString("  • " + r + "\n")
	}
	return b.String()
}
