package game

// The rules engine: pure queries over a Hand. Blackjack and splittable
// queries are only meaningful once a hand holds two cards.

// IsBust reports whether the hand total exceeds 21
func IsBust(h *Hand) bool {
	return h.value > 21
}

// IsBlackjack reports whether the hand is exactly an Ace plus a ten-valued
// card, in either order, and was not produced by a split.
func IsBlackjack(h *Hand) (bool, error) {
	if len(h.cards) < 2 {
		return false, ErrInvalidHandQuery
	}
	if len(h.cards) != 2 || h.fromSplit {
		return false, nil
	}

	a, b := h.cards[0].Value(), h.cards[1].Value()
	return (a == 1 && b == 10) || (a == 10 && b == 1), nil
}

// IsSplittable reports whether the hand is exactly two cards of equal rank
// value. Unlike ten-valued cards (K and J) are splittable.
func IsSplittable(h *Hand) (bool, error) {
	if len(h.cards) < 2 {
		return false, ErrInvalidHandQuery
	}
	if len(h.cards) != 2 {
		return false, nil
	}
	return h.cards[0].Value() == h.cards[1].Value(), nil
}

// IsSoft17 reports whether the hand is a soft 17, which the dealer hits
func IsSoft17(h *Hand) bool {
	return h.value == 17 && h.soft
}
