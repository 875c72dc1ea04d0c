// Package bot provides computer players for the blackjack table. Bots are
// used by the simulator and can stand in for the human in tests.
package bot

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
)

// Strategy names accepted by New
const (
	Chart  = "chart"
	Random = "rand"
	Dealer = "dealer"
)

// Names lists the built-in strategies
var Names = []string{Chart, Random, Dealer}

// ErrUnknownStrategy is returned by New for an unrecognised name
var ErrUnknownStrategy = errors.New("bot: unknown strategy")

// New creates the named bot betting unit per round
func New(name string, unit game.Money, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	switch name {
	case Chart:
		return NewChartBot(unit, logger), nil
	case Random:
		return NewRandBot(rng, logger), nil
	case Dealer:
		return NewDealerBot(unit, logger), nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}
}

// FlatBet returns unit when it is offered, otherwise the largest option
// below it, otherwise the smallest option. Options are in ascending order.
func FlatBet(unit game.Money, options []game.Money) game.Money {
	if len(options) == 0 {
		return 0
	}
	bet := options[0]
	for _, o := range options {
		if o <= unit {
			bet = o
		}
	}
	return bet
}
