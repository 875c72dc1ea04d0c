package game

import (
	"fmt"
	"math"
)

// Money is an amount in cents. Bets are placed in whole dollars; cents only
// appear through the 3:2 blackjack payout.
type Money int64

// Dollars converts a whole-dollar amount to Money
func Dollars(n int) Money {
	return Money(n) * 100
}

// WholeDollars returns the whole-dollar part of the amount
func (m Money) WholeDollars() int {
	return int(m / 100)
}

// String formats the amount as dollars, e.g. "$12" or "$12.50"
func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	if m%100 == 0 {
		return fmt.Sprintf("%s$%d", sign, m/100)
	}
	return fmt.Sprintf("%s$%d.%02d", sign, m/100, m%100)
}

// Multiplier is the factor applied to a hand's bet when it is settled. The
// stake was already taken at bet time, so a multiplier of 1 returns it.
type Multiplier float64

const (
	MultiplierLose      Multiplier = 0
	MultiplierPush      Multiplier = 1
	MultiplierWin       Multiplier = 2
	MultiplierBlackjack Multiplier = 2.5
)

// Apply returns amount × m rounded to the nearest cent
func (m Multiplier) Apply(amount Money) Money {
	return Money(math.Round(float64(amount) * float64(m)))
}

// DefaultBetDenominations are the bets offered by the bet menu, in dollars
var DefaultBetDenominations = []int{1, 5, 10, 50, 100}

// BetOptions returns the denominations the wallet can cover. An empty result
// means no bet is offerable and the session is over.
func BetOptions(wallet Money, denominations []int) []Money {
	var options []Money
	for _, d := range denominations {
		if amount := Dollars(d); amount <= wallet {
			options = append(options, amount)
		}
	}
	return options
}
