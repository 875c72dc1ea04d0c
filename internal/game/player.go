package game

import "fmt"

// MaxHands is the most hands a player may hold after splitting
const MaxHands = 4

// Player is the participant betting against the dealer. It owns up to
// MaxHands hands, a cursor to the hand being played and the wallet.
type Player struct {
	Name string

	hands   []*Hand
	current int
	wallet  Money
}

// NewPlayer creates a player with the given starting wallet
func NewPlayer(name string, wallet Money) *Player {
	return &Player{
		Name:   name,
		hands:  make([]*Hand, 0, MaxHands),
		wallet: wallet,
	}
}

// Wallet returns the player's balance
func (p *Player) Wallet() Money {
	return p.wallet
}

// Hands returns the player's hands in play order
func (p *Player) Hands() []*Hand {
	return p.hands
}

// HandCount returns the number of hands in play
func (p *Player) HandCount() int {
	return len(p.hands)
}

// CurrentIndex returns the zero-based index of the hand being played
func (p *Player) CurrentIndex() int {
	return p.current
}

// CurrentHand returns the hand being played, or nil between rounds
func (p *Player) CurrentHand() *Hand {
	if p.current >= len(p.hands) {
		return nil
	}
	return p.hands[p.current]
}

// TotalBet returns the sum of bets across all hands
func (p *Player) TotalBet() Money {
	var total Money
	for _, h := range p.hands {
		total += h.bet
	}
	return total
}

// PlaceBet creates the first hand of a round and debits the wallet
func (p *Player) PlaceBet(amount Money) error {
	if len(p.hands) > 0 {
		return ErrBetInProgress
	}
	if amount <= 0 {
		return fmt.Errorf("bet must be positive, got %s", amount)
	}
	if amount > p.wallet {
		return fmt.Errorf("bet %s against wallet %s: %w", amount, p.wallet, ErrInsufficientFunds)
	}

	p.hands = append(p.hands, NewHand(amount))
	p.current = 0
	p.wallet -= amount
	return nil
}

// CanDoubleDown reports whether the wallet covers the current bet again and
// the current hand holds exactly two cards
func (p *Player) CanDoubleDown() bool {
	h := p.CurrentHand()
	if h == nil {
		return false
	}
	return p.wallet >= h.bet && len(h.cards) == 2
}

// DoubleDown debits the wallet by the current bet and doubles it. The caller
// deals exactly one more card, after which the hand is terminal.
func (p *Player) DoubleDown() error {
	h := p.CurrentHand()
	if h == nil {
		return ErrNoHand
	}
	if len(h.cards) != 2 {
		return ErrCannotDouble
	}
	if p.wallet < h.bet {
		return fmt.Errorf("double %s against wallet %s: %w", h.bet, p.wallet, ErrInsufficientFunds)
	}

	p.wallet -= h.bet
	h.bet *= 2
	h.doubled = true
	return nil
}

// CanSplit reports whether the current hand may be split. Aces may only be
// split once, so a pair of Aces cannot be split when two hands already exist.
func (p *Player) CanSplit() bool {
	h := p.CurrentHand()
	if h == nil || len(h.cards) < 2 {
		return false
	}
	if len(p.hands) >= MaxHands {
		return false
	}
	if h.cards[0].IsAce() && len(p.hands) == 2 {
		return false
	}
	if p.wallet < h.bet {
		return false
	}
	return h.IsSplittable()
}

// Split moves the second card of the current hand into a new hand with the
// same bet and debits the wallet. Both hands are marked as split hands. The
// caller deals the current hand its second card; the new hand receives its
// second card when play advances to it.
func (p *Player) Split() (*Hand, error) {
	h := p.CurrentHand()
	if h == nil {
		return nil, ErrNoHand
	}
	if len(p.hands) >= MaxHands {
		return nil, ErrTooManyHands
	}
	ok, err := IsSplittable(h)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCannotSplit
	}
	if p.wallet < h.bet {
		return nil, fmt.Errorf("split %s against wallet %s: %w", h.bet, p.wallet, ErrInsufficientFunds)
	}

	aces := h.cards[0].IsAce()
	split := NewHand(h.bet)
	if _, err := TransferSecondCard(h, split); err != nil {
		return nil, err
	}

	h.fromSplit, split.fromSplit = true, true
	h.splitAces, split.splitAces = aces, aces

	p.hands = append(p.hands, split)
	p.wallet -= split.bet
	return split, nil
}

// HasNextHand reports whether hands remain after the current one
func (p *Player) HasNextHand() bool {
	return p.current < len(p.hands)-1
}

// AdvanceToNextHand moves the cursor to the next hand and returns it
func (p *Player) AdvanceToNextHand() *Hand {
	if !p.HasNextHand() {
		return nil
	}
	p.current++
	return p.hands[p.current]
}

// HasBlackjack reports whether the current hand is a natural
func (p *Player) HasBlackjack() bool {
	h := p.CurrentHand()
	return h != nil && h.IsBlackjack()
}

// CashIn credits the wallet with amount × multiplier
func (p *Player) CashIn(amount Money, m Multiplier) Money {
	credit := m.Apply(amount)
	p.wallet += credit
	return credit
}

// RefundBets returns every stake of an unfinished round to the wallet and
// discards the hands
func (p *Player) RefundBets() Money {
	refund := p.TotalBet()
	p.wallet += refund
	p.DiscardHands()
	return refund
}

// DiscardHands clears all hands and resets the cursor
func (p *Player) DiscardHands() {
	p.hands = make([]*Hand, 0, MaxHands)
	p.current = 0
}
