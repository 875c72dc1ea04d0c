package deck

import (
	"errors"
	rand "math/rand/v2"
)

// DefaultDecks is the number of 52-card decks in a Vegas Strip shoe
const DefaultDecks = 6

// CutCard returns the default reshuffle point for a shoe of the given size:
// a fresh shoe comes in once a quarter of the cards remain
func CutCard(decks int) int {
	return decks * 52 / 4
}

// ErrExhaustedSupply is returned when drawing from an empty shoe
var ErrExhaustedSupply = errors.New("deck: supply exhausted")

// Shoe is an ordered supply of cards built from one or more standard decks.
// Cards are dealt from the top and never reissued until Reset.
type Shoe struct {
	cards []Card
	decks int
	rng   *rand.Rand
}

// NewShoe creates an unshuffled shoe of the given number of 52-card decks
func NewShoe(rng *rand.Rand, decks int) *Shoe {
	s := &Shoe{
		cards: make([]Card, 0, decks*52),
		decks: decks,
		rng:   rng,
	}
	s.fill()
	return s
}

// NewShuffledShoe creates a shoe and shuffles it
func NewShuffledShoe(rng *rand.Rand, decks int) *Shoe {
	s := NewShoe(rng, decks)
	s.Shuffle()
	return s
}

// NewStackedShoe creates a shoe that deals exactly the given cards in order.
// Shuffle and Reset are no-ops on a stacked shoe.
func NewStackedShoe(cards ...Card) *Shoe {
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Shoe{cards: stacked}
}

func (s *Shoe) fill() {
	s.cards = s.cards[:0]
	for i := 0; i < s.decks; i++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Ace; rank <= King; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
}

// Shuffle randomizes the order of the remaining cards
func (s *Shoe) Shuffle() {
	if s.rng == nil {
		return
	}
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the top card of the shoe
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrExhaustedSupply
	}

	card := s.cards[0]
	s.cards = s.cards[1:]
	return card, nil
}

// Peek returns the top card without removing it from the shoe
func (s *Shoe) Peek() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}
	return s.cards[0], true
}

// CardsRemaining returns the number of cards left in the shoe
func (s *Shoe) CardsRemaining() int {
	return len(s.cards)
}

// Size returns the number of cards in a full shoe
func (s *Shoe) Size() int {
	return s.decks * 52
}

// IsEmpty returns true if the shoe has no cards left
func (s *Shoe) IsEmpty() bool {
	return len(s.cards) == 0
}

// Reset restores the shoe to its full size and shuffles it
func (s *Shoe) Reset() {
	if s.rng == nil {
		return
	}
	s.fill()
	s.Shuffle()
}
