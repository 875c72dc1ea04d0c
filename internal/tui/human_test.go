package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-cli/internal/game"
)

func newHumanTable(t *testing.T, cards string, inputs ...string) (*game.Table, *TUIModel, *HumanAgent) {
	t.Helper()

	model := NewTUIModelWithOptions(quietLogger(), true)
	for _, input := range inputs {
		require.NoError(t, model.InjectInput(input))
	}

	table := game.NewTestTable(cards)
	table.Events().Subscribe(NewEventRenderer(model, table.State))
	return table, model, NewHumanAgent(NewPrompter(model, quietLogger()), quietLogger())
}

func TestHumanAgentMainMenu(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
		play   bool
	}{
		{"play", []string{"1"}, true},
		{"quit", []string{"2"}, false},
		{"retry then play", []string{"play", "1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := NewTUIModelWithOptions(quietLogger(), true)
			for _, input := range tt.inputs {
				require.NoError(t, model.InjectInput(input))
			}
			agent := NewHumanAgent(NewPrompter(model, quietLogger()), quietLogger())

			play, err := agent.MainMenu(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.play, play)
		})
	}
}

func TestHumanAgentPlaceBet(t *testing.T) {
	options := game.BetOptions(game.Dollars(20), game.DefaultBetDenominations)
	require.Equal(t, []game.Money{game.Dollars(1), game.Dollars(5), game.Dollars(10)}, options)

	t.Run("bet menu offers only affordable amounts", func(t *testing.T) {
		model := NewTUIModelWithOptions(quietLogger(), true)
		agent := NewHumanAgent(NewPrompter(model, quietLogger()), quietLogger())
		require.NoError(t, model.InjectInput("1"))
		require.NoError(t, model.InjectInput("4"))
		require.NoError(t, model.InjectInput("2"))

		bet, err := agent.PlaceBet(context.Background(), game.TableState{Wallet: game.Dollars(20)}, options)
		require.NoError(t, err)
		assert.Equal(t, game.Dollars(5), bet)
		assert.Equal(t, []string{`"4" is not a valid choice (1, 2, 3)`}, model.GetCapturedLog())
	})

	t.Run("menu keys map to their amounts", func(t *testing.T) {
		for key, want := range map[string]game.Money{"1": game.Dollars(1), "3": game.Dollars(10)} {
			model := NewTUIModelWithOptions(quietLogger(), true)
			agent := NewHumanAgent(NewPrompter(model, quietLogger()), quietLogger())
			require.NoError(t, model.InjectInput("1"))
			require.NoError(t, model.InjectInput(key))

			bet, err := agent.PlaceBet(context.Background(), game.TableState{Wallet: game.Dollars(20)}, options)
			require.NoError(t, err)
			assert.Equal(t, want, bet, "key %s", key)
		}
	})

	t.Run("stop playing quits", func(t *testing.T) {
		model := NewTUIModelWithOptions(quietLogger(), true)
		agent := NewHumanAgent(NewPrompter(model, quietLogger()), quietLogger())
		require.NoError(t, model.InjectInput("2"))

		_, err := agent.PlaceBet(context.Background(), game.TableState{Wallet: game.Dollars(20)}, options)
		assert.ErrorIs(t, err, game.ErrPlayerQuit)
	})
}

func TestHumanAgentChooseAction(t *testing.T) {
	tests := []struct {
		name  string
		valid []game.Action
		input string
		want  game.Action
	}{
		{"stand is always 1", []game.Action{game.Stand, game.Hit}, "1", game.Stand},
		{"hit is always 2", []game.Action{game.Stand, game.Hit}, "2", game.Hit},
		{"double is 3", []game.Action{game.Stand, game.Hit, game.DoubleDown}, "3", game.DoubleDown},
		{"split is 4", []game.Action{game.Stand, game.Hit, game.DoubleDown, game.Split}, "4", game.Split},
		{"split without double is still 4", []game.Action{game.Stand, game.Hit, game.Split}, "4", game.Split},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := NewTUIModelWithOptions(quietLogger(), true)
			agent := NewHumanAgent(NewPrompter(model, quietLogger()), quietLogger())
			require.NoError(t, model.InjectInput(tt.input))

			action, err := agent.ChooseAction(context.Background(), game.TableState{}, tt.valid)
			require.NoError(t, err)
			assert.Equal(t, tt.want, action)
		})
	}
}

func TestHumanRound(t *testing.T) {
	// Player 6♠ 5♥ doubles into K♥; dealer 16 draws 10♠ and busts
	table, model, agent := newHumanTable(t, "6s 5h 6d 10c Kh 10s",
		"1", "3", // place a $10 bet
		"4", "3", // split is refused, then double
		"2", // stop playing
	)

	summary, err := table.Run(context.Background(), agent)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Rounds)
	assert.Equal(t, game.Dollars(120), summary.EndWallet)

	assert.Equal(t, []string{
		"",
		"Round 1: bet $10, wallet $90",
		"You: 6♠ → 6",
		"You: 5♥ → 11",
		"Dealer shows 6♦",
		"Dealer takes a hole card",
		`"4" is not a valid choice (1, 2, 3)`,
		"You: K♥ → 21",
		"You: double down for $20",
		"Dealer reveals 10♣: 16",
		"Dealer draws 10♠: bust (26)",
		"Dealer busts with 26",
		"You: [6♠ 5♥ K♥] 21 (doubled): win (dealer bust) +$20",
		"Round 1: net +$20, wallet $120",
	}, model.GetCapturedLog())

	view := model.Table()
	assert.Equal(t, 1, view.Round)
	assert.Equal(t, game.Dollars(120), view.Wallet)
	assert.True(t, view.DealerRevealed)
	assert.Len(t, view.Dealer.Cards, 3)
}

func TestHumanRoundSplit(t *testing.T) {
	// 8♠ 8♥ split against dealer 10♦ 7♣
	table, model, agent := newHumanTable(t, "8s 8h 10d 7c 3d Kc 10h",
		"1", "1", // $1 bet
		"4", // split, hand 1 draws 3♦
		"2", // hit hand 1 into K♣ for 21, which ends the hand
		"1", // hand 2 draws 10♥ and stands on 18
		"2",
	)

	summary, err := table.Run(context.Background(), agent)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Rounds)
	assert.Equal(t, game.Dollars(102), summary.EndWallet)

	log := model.GetCapturedLog()
	assert.Contains(t, log, "Hand 1: 3♦ → 11")
	assert.Contains(t, log, "Hand 1: split, wallet $98")
	assert.Contains(t, log, "Hand 1: K♣ → 21")
	assert.Contains(t, log, "Hand 2: 10♥ → 18")
	assert.Contains(t, log, "Hand 2: stand on 18")
	assert.Contains(t, log, "Dealer stands on 17")
	assert.Contains(t, log, "Hand 1: [8♠ 3♦ K♣] 21: win (player higher) +$1")
	assert.Contains(t, log, "Hand 2: [8♥ 10♥] 18: win (player higher) +$1")
}
