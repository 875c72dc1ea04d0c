package game

import (
	"context"

	"github.com/lox/blackjack-cli/internal/deck"
)

// Action is a player decision on the current hand
type Action int

const (
	Stand Action = iota
	Hit
	DoubleDown
	Split
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Stand:
		return "stand"
	case Hit:
		return "hit"
	case DoubleDown:
		return "double down"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// HandState is a read-only view of a hand for decision making and display
type HandState struct {
	Cards     []deck.Card
	Value     int
	Soft      bool
	Bet       Money
	FromSplit bool
	Doubled   bool
}

// NewHandState captures the current state of h
func NewHandState(h *Hand) HandState {
	return HandState{
		Cards:     h.Cards(),
		Value:     h.Value(),
		Soft:      h.IsSoft(),
		Bet:       h.Bet(),
		FromSplit: h.FromSplit(),
		Doubled:   h.IsDoubled(),
	}
}

// TableState is a read-only snapshot of the table handed to agents
type TableState struct {
	Round          int
	Wallet         Money
	Hands          []HandState
	CurrentHand    int
	DealerUpCard   deck.Card
	HasUpCard      bool
	CardsRemaining int
}

// Current returns the hand being played
func (s TableState) Current() (HandState, bool) {
	if s.CurrentHand < 0 || s.CurrentHand >= len(s.Hands) {
		return HandState{}, false
	}
	return s.Hands[s.CurrentHand], true
}

// Agent makes decisions for the player. Agents receive immutable snapshots
// and return choices; the table validates and applies them. Returning
// ErrPlayerQuit from PlaceBet ends the session.
type Agent interface {
	// PlaceBet picks one of the affordable bet options
	PlaceBet(ctx context.Context, state TableState, options []Money) (Money, error)

	// ChooseAction picks one of the valid actions for the current hand
	ChooseAction(ctx context.Context, state TableState, valid []Action) (Action, error)
}
