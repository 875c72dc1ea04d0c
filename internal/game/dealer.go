package game

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/blackjack-cli/internal/deck"
)

// DealerState is the terminal state of the dealer's play
type DealerState int

const (
	DealerStand DealerState = iota
	DealerBust
	DealerBlackjack
)

// String returns the string representation of the dealer state
func (s DealerState) String() string {
	switch s {
	case DealerStand:
		return "stand"
	case DealerBust:
		return "bust"
	case DealerBlackjack:
		return "blackjack"
	default:
		return "unknown"
	}
}

// DealerOutcome is how the dealer's hand finished
type DealerOutcome struct {
	State DealerState
	Value int
}

// DrawFunc observes every card the dealer deals
type DrawFunc func(target *Hand, card deck.Card)

// Dealer owns the shoe and a single hand. It deals to itself and to the
// player and plays its own hand by fixed policy.
type Dealer struct {
	shoe   *deck.Shoe
	hand   *Hand
	clock  quartz.Clock
	pace   time.Duration
	onDraw DrawFunc
}

// DealerOption configures a Dealer
type DealerOption func(*Dealer)

// WithPace makes the dealer pause between its own draws. The pause is
// cosmetic reveal pacing; zero disables it.
func WithPace(clock quartz.Clock, pace time.Duration) DealerOption {
	return func(d *Dealer) {
		d.clock = clock
		d.pace = pace
	}
}

// WithDrawFunc registers an observer for dealt cards
func WithDrawFunc(fn DrawFunc) DealerOption {
	return func(d *Dealer) {
		d.onDraw = fn
	}
}

// NewDealer creates a dealer drawing from shoe
func NewDealer(shoe *deck.Shoe, opts ...DealerOption) *Dealer {
	d := &Dealer{
		shoe:  shoe,
		hand:  NewHand(0),
		clock: quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Hand returns the dealer's hand
func (d *Dealer) Hand() *Hand {
	return d.hand
}

// Shoe returns the shoe the dealer draws from
func (d *Dealer) Shoe() *deck.Shoe {
	return d.shoe
}

// UpCard returns the dealer's first card
func (d *Dealer) UpCard() (deck.Card, bool) {
	if len(d.hand.cards) == 0 {
		return deck.Card{}, false
	}
	return d.hand.cards[0], true
}

// Deal draws the top card of the shoe into target
func (d *Dealer) Deal(target *Hand) (deck.Card, error) {
	card, err := d.shoe.Draw()
	if err != nil {
		return deck.Card{}, fmt.Errorf("dealing card %d of hand: %w", len(target.cards)+1, err)
	}
	target.AddCard(card)
	if d.onDraw != nil {
		d.onDraw(target, card)
	}
	return card, nil
}

// MayPeek reports whether the dealer is allowed to check for blackjack,
// which is only when the up-card is an Ace
func (d *Dealer) MayPeek() bool {
	up, ok := d.UpCard()
	return ok && up.IsAce()
}

// HasBlackjack peeks for a natural. Without an Ace showing the dealer may not
// look and the answer is false.
func (d *Dealer) HasBlackjack() (bool, error) {
	if !d.MayPeek() {
		return false, nil
	}
	return IsBlackjack(d.hand)
}

// Play finishes the dealer's hand: blackjack when peeking reveals one, hit
// below 17 and on soft 17, bust above 21, otherwise stand.
func (d *Dealer) Play(ctx context.Context) (DealerOutcome, error) {
	for {
		bj, err := d.HasBlackjack()
		if err != nil {
			return DealerOutcome{}, err
		}

		switch {
		case bj:
			return DealerOutcome{State: DealerBlackjack, Value: d.hand.value}, nil
		case d.hand.value < 17 || IsSoft17(d.hand):
			if err := d.pause(ctx); err != nil {
				return DealerOutcome{}, err
			}
			if _, err := d.Deal(d.hand); err != nil {
				return DealerOutcome{}, err
			}
		case d.hand.IsBust():
			return DealerOutcome{State: DealerBust, Value: d.hand.value}, nil
		default:
			return DealerOutcome{State: DealerStand, Value: d.hand.value}, nil
		}
	}
}

func (d *Dealer) pause(ctx context.Context) error {
	if d.pace <= 0 {
		return ctx.Err()
	}

	timer := d.clock.NewTimer(d.pace, "dealer", "pace")
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// DiscardHand starts the dealer on a fresh hand
func (d *Dealer) DiscardHand() {
	d.hand = NewHand(0)
}
