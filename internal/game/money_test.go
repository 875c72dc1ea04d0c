package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "$12", Dollars(12).String())
	assert.Equal(t, "$12.50", Money(1250).String())
	assert.Equal(t, "$0.05", Money(5).String())
	assert.Equal(t, "-$7.50", Money(-750).String())
	assert.Equal(t, 12, Money(1299).WholeDollars())
}

func TestMultiplierApply(t *testing.T) {
	assert.Equal(t, Money(250), MultiplierBlackjack.Apply(Dollars(1)))
	assert.Equal(t, Money(12500), MultiplierBlackjack.Apply(Dollars(50)))
	assert.Equal(t, Dollars(20), MultiplierWin.Apply(Dollars(10)))
	assert.Equal(t, Dollars(10), MultiplierPush.Apply(Dollars(10)))
	assert.Equal(t, Money(0), MultiplierLose.Apply(Dollars(10)))
}

func TestBetOptions(t *testing.T) {
	tests := []struct {
		name   string
		wallet Money
		want   []Money
	}{
		{"all", Dollars(100), []Money{Dollars(1), Dollars(5), Dollars(10), Dollars(50), Dollars(100)}},
		{"partial", Dollars(12), []Money{Dollars(1), Dollars(5), Dollars(10)}},
		{"cents do not count", Money(499), []Money{Dollars(1)}},
		{"broke", Money(99), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BetOptions(tt.wallet, DefaultBetDenominations))
		})
	}
}
