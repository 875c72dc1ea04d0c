package game

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack-cli/internal/deck"
)

// ScriptedAgent replays fixed bets and actions. It is intended for tests
// that stack the shoe and need a deterministic player.
type ScriptedAgent struct {
	Bets    []Money
	Actions []Action

	// Seen records the valid actions offered at each decision
	Seen [][]Action
}

// PlaceBet returns the next scripted bet, or ErrPlayerQuit when none remain
func (a *ScriptedAgent) PlaceBet(_ context.Context, _ TableState, _ []Money) (Money, error) {
	if len(a.Bets) == 0 {
		return 0, ErrPlayerQuit
	}
	bet := a.Bets[0]
	a.Bets = a.Bets[1:]
	return bet, nil
}

// ChooseAction returns the next scripted action, standing when none remain
func (a *ScriptedAgent) ChooseAction(_ context.Context, _ TableState, valid []Action) (Action, error) {
	a.Seen = append(a.Seen, valid)
	if len(a.Actions) == 0 {
		return Stand, nil
	}
	action := a.Actions[0]
	a.Actions = a.Actions[1:]
	return action, nil
}

// TestTableOption configures test table creation
type TestTableOption func(*testTableBuilder)

type testTableBuilder struct {
	wallet Money
	config TableConfig
	opts   []TableOption
}

// WithWallet sets the player's starting wallet
func WithWallet(wallet Money) TestTableOption {
	return func(b *testTableBuilder) { b.wallet = wallet }
}

// WithTableConfig replaces the table config
func WithTableConfig(config TableConfig) TestTableOption {
	return func(b *testTableBuilder) { b.config = config }
}

// WithTableOptions passes options through to NewTable
func WithTableOptions(opts ...TableOption) TestTableOption {
	return func(b *testTableBuilder) { b.opts = append(b.opts, opts...) }
}

// NewTestTable creates a table dealing the given cards in order. Cards are
// consumed player, player, dealer, dealer, then in draw order.
func NewTestTable(cards string, opts ...TestTableOption) *Table {
	builder := &testTableBuilder{
		wallet: Dollars(100),
		config: DefaultTableConfig(),
	}
	for _, opt := range opts {
		opt(builder)
	}

	shoe := deck.NewStackedShoe(deck.MustParseCards(cards)...)
	tableOpts := append([]TableOption{
		WithLogger(log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})),
		WithClock(quartz.NewReal()),
		WithSessionID("test-session"),
	}, builder.opts...)

	return NewTable(shoe, NewPlayer("Player", builder.wallet), builder.config, tableOpts...)
}

// MustHand builds a hand from card notation, panicking on bad input
func MustHand(bet Money, cards string) *Hand {
	parsed, err := deck.ParseCards(cards)
	if err != nil {
		panic(fmt.Sprintf("MustHand(%q): %v", cards, err))
	}
	return NewHandWithCards(bet, parsed...)
}
