package game

import "errors"

var (
	// ErrInsufficientFunds is returned when a bet, double down or split
	// exceeds the wallet. Callers pre-check with BetOptions, CanDoubleDown
	// and CanSplit.
	ErrInsufficientFunds = errors.New("game: insufficient funds")

	// ErrInvalidHandQuery is returned when a blackjack or splittable query
	// is made on a hand holding fewer than two cards.
	ErrInvalidHandQuery = errors.New("game: hand query needs two cards")

	// ErrTooManyHands is returned when splitting beyond the hand limit
	ErrTooManyHands = errors.New("game: hand limit reached")

	// ErrBetInProgress is returned when betting while hands are still in play
	ErrBetInProgress = errors.New("game: hands already in play")

	// ErrNoHand is returned when an operation needs a current hand
	ErrNoHand = errors.New("game: no hand in play")

	// ErrCannotDouble is returned when doubling a hand that is not eligible
	ErrCannotDouble = errors.New("game: hand cannot be doubled")

	// ErrCannotSplit is returned when splitting a hand that is not eligible
	ErrCannotSplit = errors.New("game: hand cannot be split")

	// ErrPlayerQuit is returned by agents to end the session
	ErrPlayerQuit = errors.New("game: player quit")
)

var (
	// ErrNoBetAvailable is returned when the wallet cannot cover the
	// smallest bet; the session is over
	ErrNoBetAvailable = errors.New("game: no bet is affordable")

	// ErrIllegalAction is returned when an agent picks an action that was
	// not offered
	ErrIllegalAction = errors.New("game: action not allowed")
)
