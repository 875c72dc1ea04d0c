package game

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/randutil"
)

func TestPlayRound(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		actions  []Action
		outcomes []Outcome
		wallet   Money
	}{
		{"player blackjack", "As Kh 9d 7c 5s", nil, []Outcome{OutcomeBlackjack}, Dollars(115)},
		{"dealer blackjack", "7s 8h Ad Kc", nil, []Outcome{OutcomeLose}, Dollars(90)},
		{"both blackjack", "As Kh Ad Qc", nil, []Outcome{OutcomePush}, Dollars(100)},
		{"dealer bust", "10s 9h 10d 4c Kc", []Action{Stand}, []Outcome{OutcomeWin}, Dollars(110)},
		{"push", "10s 8h 10d 8c", []Action{Stand}, []Outcome{OutcomePush}, Dollars(100)},
		{"player bust", "10s 6h 10d 7c Kc", []Action{Hit}, []Outcome{OutcomeLose}, Dollars(90)},
		{"hit to twenty-one", "10s 2h 10d 8c 9c", []Action{Hit}, []Outcome{OutcomeWin}, Dollars(110)},
		{"double down", "5s 6h 10d 7c 9c", []Action{DoubleDown}, []Outcome{OutcomeWin}, Dollars(120)},
		{
			"split and double the first hand",
			"8s 8h 10d 7c 3h Kd 2c",
			[]Action{Split, DoubleDown, Stand},
			[]Outcome{OutcomeWin, OutcomeLose},
			Dollars(110),
		},
		{
			"split aces take one card each",
			"As Ah 10d 7c Kh 9s",
			[]Action{Split},
			[]Outcome{OutcomeWin, OutcomeWin},
			Dollars(120),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTestTable(tt.cards)
			agent := &ScriptedAgent{Bets: []Money{Dollars(10)}, Actions: tt.actions}

			summary, err := table.PlayRound(context.Background(), agent)
			require.NoError(t, err)

			var outcomes []Outcome
			for _, s := range summary.Settlements {
				outcomes = append(outcomes, s.Result.Outcome)
			}
			assert.Equal(t, tt.outcomes, outcomes)
			assert.Equal(t, tt.wallet, summary.WalletAfter)
			assert.Equal(t, tt.wallet, table.Player().Wallet())
			assert.Equal(t, tt.wallet-Dollars(100), summary.Net())
			assert.Empty(t, agent.Actions, "all scripted actions should be consumed")
			assert.Equal(t, 0, table.Dealer().Shoe().CardsRemaining(), "every stacked card should be dealt")
		})
	}
}

func TestPlayRoundSkipsDecisionsOnNaturals(t *testing.T) {
	for _, cards := range []string{"As Kh 9d 7c 5s", "7s 8h Ad Kc"} {
		table := NewTestTable(cards)
		agent := &ScriptedAgent{Bets: []Money{Dollars(10)}}

		_, err := table.PlayRound(context.Background(), agent)
		require.NoError(t, err)
		assert.Empty(t, agent.Seen)
	}
}

func TestPlayRoundValidActions(t *testing.T) {
	table := NewTestTable("8s 8h 10d 7c 3h Kd 2c")
	agent := &ScriptedAgent{
		Bets:    []Money{Dollars(10)},
		Actions: []Action{Split, DoubleDown, Stand},
	}

	_, err := table.PlayRound(context.Background(), agent)
	require.NoError(t, err)

	require.Len(t, agent.Seen, 3)
	assert.Equal(t, []Action{Stand, Hit, DoubleDown, Split}, agent.Seen[0])
	assert.Equal(t, []Action{Stand, Hit, DoubleDown}, agent.Seen[1])
	assert.Equal(t, []Action{Stand, Hit, DoubleDown}, agent.Seen[2])
}

func TestPlayRoundWalletLimitsActions(t *testing.T) {
	table := NewTestTable("8s 8h 10d 7c", WithWallet(Dollars(15)))
	agent := &ScriptedAgent{Bets: []Money{Dollars(10)}}

	summary, err := table.PlayRound(context.Background(), agent)
	require.NoError(t, err)

	require.Len(t, agent.Seen, 1)
	assert.Equal(t, []Action{Stand, Hit}, agent.Seen[0])
	assert.Equal(t, Dollars(5), summary.WalletAfter)
}

func TestPlayRoundRejectsIllegalChoices(t *testing.T) {
	t.Run("bet not offered", func(t *testing.T) {
		table := NewTestTable("10s 8h 10d 8c")
		_, err := table.PlayRound(context.Background(), &ScriptedAgent{Bets: []Money{Dollars(7)}})
		assert.ErrorIs(t, err, ErrIllegalAction)
		assert.Equal(t, Dollars(100), table.Player().Wallet())
	})

	t.Run("split without a pair", func(t *testing.T) {
		table := NewTestTable("10s 8h 10d 8c")
		agent := &ScriptedAgent{Bets: []Money{Dollars(10)}, Actions: []Action{Split}}
		_, err := table.PlayRound(context.Background(), agent)
		assert.ErrorIs(t, err, ErrIllegalAction)
	})
}

// cancellingAgent bets and then gives up at its first decision
type cancellingAgent struct {
	ScriptedAgent
}

func (a *cancellingAgent) ChooseAction(context.Context, TableState, []Action) (Action, error) {
	return Stand, context.Canceled
}

func TestPlayRoundAbandonedRefundsStake(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		agent Agent
		err   error
	}{
		{
			name:  "shoe runs out on the deal",
			cards: "10s 8h 10d",
			agent: &ScriptedAgent{Bets: []Money{Dollars(10)}},
			err:   deck.ErrExhaustedSupply,
		},
		{
			name:  "shoe runs out after split and double",
			cards: "8s 8h 10d 7c 3h",
			agent: &ScriptedAgent{Bets: []Money{Dollars(10)}, Actions: []Action{Split, DoubleDown}},
			err:   deck.ErrExhaustedSupply,
		},
		{
			name:  "agent cancelled mid-hand",
			cards: "10s 6h 10d 7c",
			agent: &cancellingAgent{ScriptedAgent{Bets: []Money{Dollars(10)}}},
			err:   context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTestTable(tt.cards)

			_, err := table.PlayRound(context.Background(), tt.agent)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, Dollars(100), table.Player().Wallet())
			assert.Zero(t, table.Player().HandCount())
		})
	}
}

func TestPlayRoundCutCard(t *testing.T) {
	config := DefaultTableConfig()
	config.ReshuffleAt = deck.CutCard(1)

	shoe := deck.NewShuffledShoe(randutil.New(7), 1)
	table := NewTable(shoe, NewPlayer("Player", Dollars(1_000)), config,
		WithLogger(log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})))

	var shuffles int
	table.Events().Subscribe(EventSubscriberFunc(func(event GameEvent) {
		if _, ok := event.(ShoeShuffledEvent); ok {
			shuffles++
		}
	}))

	bets := make([]Money, 100)
	for i := range bets {
		bets[i] = Dollars(1)
	}
	agent := &ScriptedAgent{Bets: bets}

	summary, err := table.Run(context.Background(), agent)
	require.NoError(t, err)
	assert.Equal(t, 100, summary.Rounds)
	assert.Greater(t, shuffles, 1)
}

func TestRun(t *testing.T) {
	t.Run("until the player quits", func(t *testing.T) {
		table := NewTestTable("10s 8h 10d 8c 10s 9h 10d 4c Kc")
		agent := &ScriptedAgent{Bets: []Money{Dollars(10), Dollars(10)}}

		summary, err := table.Run(context.Background(), agent)
		require.NoError(t, err)

		assert.Equal(t, "test-session", summary.SessionID)
		assert.Equal(t, 2, summary.Rounds)
		assert.Equal(t, Dollars(100), summary.StartWallet)
		assert.Equal(t, Dollars(110), summary.EndWallet)
		assert.False(t, summary.Bankrupt)
		assert.Equal(t, 2, table.Round())
	})

	t.Run("until the wallet is empty", func(t *testing.T) {
		table := NewTestTable("10s 7h 10d 9c", WithWallet(Dollars(1)))
		agent := &ScriptedAgent{Bets: []Money{Dollars(1), Dollars(1)}}

		summary, err := table.Run(context.Background(), agent)
		require.NoError(t, err)

		assert.Equal(t, 1, summary.Rounds)
		assert.Equal(t, Money(0), summary.EndWallet)
		assert.True(t, summary.Bankrupt)
		assert.Len(t, agent.Bets, 1, "no bet should be requested once broke")
	})
}

func TestTableState(t *testing.T) {
	table := NewTestTable("8s 8h 10d 7c 3h Kd 2c")

	var states []TableState
	agent := &recordingAgent{ScriptedAgent: ScriptedAgent{
		Bets:    []Money{Dollars(10)},
		Actions: []Action{Split, DoubleDown, Stand},
	}, states: &states}

	_, err := table.PlayRound(context.Background(), agent)
	require.NoError(t, err)
	require.Len(t, states, 3)

	first := states[0]
	assert.Equal(t, 1, first.Round)
	assert.Equal(t, Dollars(90), first.Wallet)
	assert.True(t, first.HasUpCard)
	assert.Equal(t, "10♦", first.DealerUpCard.String())
	current, ok := first.Current()
	require.True(t, ok)
	assert.Equal(t, 16, current.Value)

	last := states[2]
	assert.Equal(t, 1, last.CurrentHand)
	require.Len(t, last.Hands, 2)
	assert.True(t, last.Hands[0].Doubled)
	assert.Equal(t, Dollars(20), last.Hands[0].Bet)
	assert.Equal(t, Dollars(70), last.Wallet)
}

type recordingAgent struct {
	ScriptedAgent
	states *[]TableState
}

func (a *recordingAgent) ChooseAction(ctx context.Context, state TableState, valid []Action) (Action, error) {
	*a.states = append(*a.states, state)
	return a.ScriptedAgent.ChooseAction(ctx, state, valid)
}
