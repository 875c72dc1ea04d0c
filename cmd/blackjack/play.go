package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/randutil"
	"github.com/lox/blackjack-cli/internal/tui"
)

type PlayCmd struct {
	Funds int `help:"Starting funds in dollars (overrides config)"`
	Decks int `help:"Decks in the shoe (overrides config)"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	if c.Funds > 0 {
		cfg.Table.StartingFunds = c.Funds
	}
	if c.Decks > 0 {
		cfg.Table.Decks = c.Decks
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "blackjack",
		Level:           cfg.LogLevel(),
	})

	seed, rng := randutil.Resolve(globals.seed())
	shoe := deck.NewShuffledShoe(rng, cfg.Table.Decks)
	player := game.NewPlayer("You", cfg.StartingFunds())
	table := game.NewTable(shoe, player, cfg.TableConfig(), game.WithLogger(logger))
	logger.Info("Starting session", "session", table.ID(), "seed", seed, "decks", cfg.Table.Decks, "funds", player.Wallet())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := tui.NewSession(table, logger)
	session.Start()

	summary, err := playSession(ctx, table, session.Agent())
	if closeErr := session.Close(); closeErr != nil {
		logger.Error("Failed to close TUI", "error", closeErr)
	}
	if errors.Is(err, game.ErrPlayerQuit) || errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		logger.Error("Session failed", "error", err)
		return err
	}

	logger.Info("Session over", "rounds", summary.Rounds, "wallet", summary.EndWallet, "bankrupt", summary.Bankrupt)
	if summary.Rounds > 0 {
		fmt.Printf("Played %d rounds: %s → %s (seed %d)\n", summary.Rounds, summary.StartWallet, summary.EndWallet, seed)
	}
	return nil
}

// sessionAgent is a table agent that also drives the menus around rounds
type sessionAgent interface {
	game.Agent
	MainMenu(ctx context.Context) (bool, error)
	GameOver(ctx context.Context, wallet game.Money) error
	Notice(message string)
}

// playSession returns to the main menu after every run of rounds. Each Play
// brings in a fresh shoe for the same player.
func playSession(ctx context.Context, table *game.Table, agent sessionAgent) (game.SessionSummary, error) {
	total := game.SessionSummary{
		SessionID:   table.ID(),
		StartWallet: table.Player().Wallet(),
		EndWallet:   table.Player().Wallet(),
	}

	for {
		play, err := agent.MainMenu(ctx)
		if err != nil || !play {
			return total, err
		}

		table.FreshShoe()
		summary, err := table.Run(ctx, agent)
		total.Rounds += summary.Rounds
		total.EndWallet = table.Player().Wallet()

		switch {
		case errors.Is(err, deck.ErrExhaustedSupply):
			agent.Notice("The shoe ran out mid-round, your stake was returned")
			continue
		case err != nil:
			return total, err
		case summary.Bankrupt:
			total.Bankrupt = true
			return total, agent.GameOver(ctx, total.EndWallet)
		}
	}
}
