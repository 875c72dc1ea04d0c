package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
)

// DealerBot flat bets and copies the house policy: hit below 17 and on
// soft 17, never double or split.
type DealerBot struct {
	unit   game.Money
	logger *log.Logger
}

// NewDealerBot creates a new DealerBot instance
func NewDealerBot(unit game.Money, logger *log.Logger) *DealerBot {
	return &DealerBot{unit: unit, logger: logger.WithPrefix("dealer-bot")}
}

func (d *DealerBot) PlaceBet(_ context.Context, _ game.TableState, options []game.Money) (game.Money, error) {
	return FlatBet(d.unit, options), nil
}

func (d *DealerBot) ChooseAction(_ context.Context, state game.TableState, _ []game.Action) (game.Action, error) {
	hand, ok := state.Current()
	if !ok {
		return game.Stand, nil
	}
	if hand.Value < 17 || (hand.Value == 17 && hand.Soft) {
		return game.Hit, nil
	}
	return game.Stand, nil
}
