package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
)

// RandBot is a simple bot that makes uniform random legal choices
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger.WithPrefix("rand-bot")}
}

func (r *RandBot) PlaceBet(_ context.Context, _ game.TableState, options []game.Money) (game.Money, error) {
	if len(options) == 0 {
		return 0, game.ErrNoBetAvailable
	}
	return options[r.rng.IntN(len(options))], nil
}

func (r *RandBot) ChooseAction(_ context.Context, _ game.TableState, valid []game.Action) (game.Action, error) {
	if len(valid) == 0 {
		return game.Stand, nil
	}
	action := valid[r.rng.IntN(len(valid))]
	r.logger.Debug("Random decision", "action", action, "from", len(valid))
	return action, nil
}
