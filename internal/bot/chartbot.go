package bot

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

// Play is a basic strategy chart entry
type Play int

const (
	PlayHit Play = iota
	PlayStand
	PlayDoubleOrHit
	PlayDoubleOrStand
	PlaySplit
)

// String returns the chart notation for the play
func (p Play) String() string {
	switch p {
	case PlayHit:
		return "H"
	case PlayStand:
		return "S"
	case PlayDoubleOrHit:
		return "Dh"
	case PlayDoubleOrStand:
		return "Ds"
	case PlaySplit:
		return "P"
	default:
		return "?"
	}
}

// Action resolves the play against the actions the table offers
func (p Play) Action(valid []game.Action) game.Action {
	canDouble := slices.Contains(valid, game.DoubleDown)
	switch p {
	case PlayStand:
		return game.Stand
	case PlayDoubleOrHit:
		if canDouble {
			return game.DoubleDown
		}
		return game.Hit
	case PlayDoubleOrStand:
		if canDouble {
			return game.DoubleDown
		}
		return game.Stand
	case PlaySplit:
		if slices.Contains(valid, game.Split) {
			return game.Split
		}
		return game.Hit
	default:
		return game.Hit
	}
}

// Recommend returns the multi-deck basic strategy play for a hand against
// the dealer's up-card, for a dealer that hits soft 17 with double after
// split allowed. Pairs are only considered when canSplit is set.
func Recommend(hand game.HandState, up deck.Card, canSplit bool) Play {
	upValue := up.Value()
	if upValue == 1 {
		upValue = 11
	}

	if canSplit && len(hand.Cards) == 2 && hand.Cards[0].Value() == hand.Cards[1].Value() {
		if play, ok := pairPlay(hand.Cards[0].Value(), upValue); ok {
			return play
		}
	}
	if hand.Soft {
		return softPlay(hand.Value, upValue)
	}
	return hardPlay(hand.Value, upValue)
}

func pairPlay(rank, up int) (Play, bool) {
	switch rank {
	case 1, 8:
		return PlaySplit, true
	case 9:
		if up == 7 || up >= 10 {
			return PlayStand, true
		}
		return PlaySplit, true
	case 7, 3, 2:
		if up <= 7 {
			return PlaySplit, true
		}
	case 6:
		if up <= 6 {
			return PlaySplit, true
		}
	case 4:
		if up == 5 || up == 6 {
			return PlaySplit, true
		}
	}
	return 0, false
}

func softPlay(total, up int) Play {
	switch {
	case total >= 20:
		return PlayStand
	case total == 19:
		if up == 6 {
			return PlayDoubleOrStand
		}
		return PlayStand
	case total == 18:
		if up <= 6 {
			return PlayDoubleOrStand
		}
		if up <= 8 {
			return PlayStand
		}
		return PlayHit
	case total == 17:
		if up >= 3 && up <= 6 {
			return PlayDoubleOrHit
		}
	case total >= 15:
		if up >= 4 && up <= 6 {
			return PlayDoubleOrHit
		}
	case total >= 13:
		if up == 5 || up == 6 {
			return PlayDoubleOrHit
		}
	}
	return PlayHit
}

func hardPlay(total, up int) Play {
	switch {
	case total >= 17:
		return PlayStand
	case total >= 13:
		if up <= 6 {
			return PlayStand
		}
	case total == 12:
		if up >= 4 && up <= 6 {
			return PlayStand
		}
	case total == 11:
		return PlayDoubleOrHit
	case total == 10:
		if up <= 9 {
			return PlayDoubleOrHit
		}
	case total == 9:
		if up >= 3 && up <= 6 {
			return PlayDoubleOrHit
		}
	}
	return PlayHit
}

// ChartBot flat bets and plays basic strategy
type ChartBot struct {
	unit   game.Money
	logger *log.Logger
}

// NewChartBot creates a new ChartBot instance
func NewChartBot(unit game.Money, logger *log.Logger) *ChartBot {
	return &ChartBot{unit: unit, logger: logger.WithPrefix("chart-bot")}
}

func (c *ChartBot) PlaceBet(_ context.Context, _ game.TableState, options []game.Money) (game.Money, error) {
	return FlatBet(c.unit, options), nil
}

func (c *ChartBot) ChooseAction(_ context.Context, state game.TableState, valid []game.Action) (game.Action, error) {
	hand, ok := state.Current()
	if !ok || !state.HasUpCard {
		return game.Stand, nil
	}

	play := Recommend(hand, state.DealerUpCard, slices.Contains(valid, game.Split))
	action := play.Action(valid)
	c.logger.Debug("Chart decision",
		"value", hand.Value,
		"soft", hand.Soft,
		"up", state.DealerUpCard,
		"play", play,
		"action", action)
	return action, nil
}
