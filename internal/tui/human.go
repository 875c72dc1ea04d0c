package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
)

// Menu keys
const (
	keyPlay = "1"
	keyQuit = "2"
)

// HumanAgent is a game.Agent driven by the person at the keyboard
type HumanAgent struct {
	prompter *Prompter
	logger   *log.Logger
}

// NewHumanAgent creates an agent asking prompter for every decision
func NewHumanAgent(prompter *Prompter, logger *log.Logger) *HumanAgent {
	return &HumanAgent{
		prompter: prompter,
		logger:   logger.WithPrefix("human"),
	}
}

// MainMenu asks whether to sit down at the table. It reports false when the
// player chooses to quit.
func (a *HumanAgent) MainMenu(ctx context.Context) (bool, error) {
	choice, err := a.prompter.Choose(ctx, "Welcome to Vegas Strip Blackjack", []Option{
		{Key: keyPlay, Label: "Play"},
		{Key: keyQuit, Label: "Quit"},
	})
	if err != nil {
		return false, err
	}
	return choice == keyPlay, nil
}

// PlaceBet asks whether to play another round and, if so, for the bet
func (a *HumanAgent) PlaceBet(ctx context.Context, state game.TableState, options []game.Money) (game.Money, error) {
	choice, err := a.prompter.Choose(ctx, "Wallet "+state.Wallet.String(), []Option{
		{Key: keyPlay, Label: "Place a bet"},
		{Key: keyQuit, Label: "Stop playing"},
	})
	if err != nil {
		return 0, err
	}
	if choice == keyQuit {
		return 0, game.ErrPlayerQuit
	}

	menu := make([]Option, len(options))
	amounts := make(map[string]game.Money, len(options))
	for i, amount := range options {
		key := strconv.Itoa(i + 1)
		menu[i] = Option{Key: key, Label: amount.String()}
		amounts[key] = amount
	}
	choice, err = a.prompter.Choose(ctx, "Choose your bet", menu)
	if err != nil {
		return 0, err
	}

	bet := amounts[choice]
	a.logger.Info("Bet placed", "round", state.Round+1, "bet", bet)
	return bet, nil
}

// ChooseAction offers the valid actions for the current hand. Actions keep
// fixed keys so that "1" always means stand.
func (a *HumanAgent) ChooseAction(ctx context.Context, state game.TableState, valid []game.Action) (game.Action, error) {
	menu := make([]Option, len(valid))
	for i, action := range valid {
		menu[i] = Option{Key: actionKey(action), Label: action.String()}
	}

	prompt := "Your move"
	if len(state.Hands) > 1 {
		prompt = "Hand " + strconv.Itoa(state.CurrentHand+1) + ": your move"
	}
	if hand, ok := state.Current(); ok {
		prompt += " on " + FormatValue(hand.Value, hand.Soft)
	}

	choice, err := a.prompter.Choose(ctx, prompt, menu)
	if err != nil {
		return game.Stand, err
	}
	for _, action := range valid {
		if actionKey(action) == choice {
			a.logger.Debug("Chose action", "hand", state.CurrentHand+1, "action", action)
			return action, nil
		}
	}
	return game.Stand, nil
}

func actionKey(action game.Action) string {
	return strconv.Itoa(int(action) + 1)
}

// GameOver tells a player who cannot cover a bet that the session is over
// and waits for them to leave
func (a *HumanAgent) GameOver(ctx context.Context, wallet game.Money) error {
	a.prompter.model.AddBoldLogEntry(LossStyle.Render("Game over: " + wallet.String() + " cannot cover the smallest bet"))
	_, err := a.prompter.Choose(ctx, "Game over", []Option{{Key: keyPlay, Label: "Leave the table"}})
	return err
}

// Notice writes a highlighted line to the game log
func (a *HumanAgent) Notice(message string) {
	a.prompter.model.AddBoldLogEntry(WalletStyle.Render(message))
}
