package game

import "github.com/lox/blackjack-cli/internal/deck"

// Hand holds the cards dealt against a single bet. The total is maintained
// incrementally as cards are added and is never recomputed from scratch,
// because soft/bust state is observed after every individual card.
type Hand struct {
	cards     []deck.Card
	bet       Money
	value     int
	soft      bool
	fromSplit bool
	splitAces bool
	doubled   bool
}

// NewHand creates an empty hand for the given bet
func NewHand(bet Money) *Hand {
	return &Hand{
		cards: make([]deck.Card, 0, 4),
		bet:   bet,
	}
}

// NewHandWithCards creates a hand and adds the cards in order
func NewHandWithCards(bet Money, cards ...deck.Card) *Hand {
	h := NewHand(bet)
	for _, c := range cards {
		h.AddCard(c)
	}
	return h
}

// AddCard appends a card and updates the running total.
//
// An Ace counts 11 when the total is below 11 and marks the hand soft,
// otherwise 1. After a non-Ace card, a soft hand that went over 21 demotes
// its Ace to 1. Adding an Ace never demotes in the same step.
func (h *Hand) AddCard(card deck.Card) {
	h.cards = append(h.cards, card)
	h.addToValue(card)
}

func (h *Hand) addToValue(card deck.Card) {
	if card.IsAce() {
		if h.value >= 11 {
			h.value++
		} else {
			h.value += 11
			h.soft = true
		}
		return
	}

	h.value += card.Value()
	if h.value > 21 && h.soft {
		h.value -= 10
		h.soft = false
	}
}

// TransferSecondCard moves the second card of from into to. The card's face
// value is removed from from's total and the card is re-added to to through
// AddCard so both hands keep consistent value and soft state.
func TransferSecondCard(from, to *Hand) (deck.Card, error) {
	if len(from.cards) != 2 {
		return deck.Card{}, ErrInvalidHandQuery
	}

	card := from.cards[1]
	from.value -= card.Value()
	from.cards = from.cards[:1]
	to.AddCard(card)
	return card, nil
}

// Cards returns a copy of the cards in the hand
func (h *Hand) Cards() []deck.Card {
	cards := make([]deck.Card, len(h.cards))
	copy(cards, h.cards)
	return cards
}

// Card returns the card at position i
func (h *Hand) Card(i int) deck.Card {
	return h.cards[i]
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// Value returns the running blackjack total
func (h *Hand) Value() int {
	return h.value
}

// IsSoft reports whether an Ace is currently counted as 11
func (h *Hand) IsSoft() bool {
	return h.soft
}

// Bet returns the amount wagered on the hand
func (h *Hand) Bet() Money {
	return h.bet
}

// FromSplit reports whether the hand was produced by a split
func (h *Hand) FromSplit() bool {
	return h.fromSplit
}

// IsSplitAces reports whether the hand came from splitting Aces. Such hands
// take exactly one more card.
func (h *Hand) IsSplitAces() bool {
	return h.splitAces
}

// IsDoubled reports whether the bet on the hand was doubled down
func (h *Hand) IsDoubled() bool {
	return h.doubled
}

// IsBust reports whether the hand total exceeds 21
func (h *Hand) IsBust() bool {
	return IsBust(h)
}

// IsBlackjack reports whether the hand is a natural. Hands with any count
// other than two cards are never blackjack.
func (h *Hand) IsBlackjack() bool {
	ok, err := IsBlackjack(h)
	return err == nil && ok
}

// IsSplittable reports whether the hand is a pair of equal rank values
func (h *Hand) IsSplittable() bool {
	ok, err := IsSplittable(h)
	return err == nil && ok
}

// IsTerminal reports whether the hand can take no further action: bust,
// 21, doubled after its extra card, or split Aces holding their one card.
func (h *Hand) IsTerminal() bool {
	switch {
	case h.IsBust(), h.value == 21:
		return true
	case h.doubled && len(h.cards) >= 3:
		return true
	case h.splitAces && len(h.cards) >= 2:
		return true
	}
	return false
}
