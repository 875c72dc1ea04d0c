package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/randutil"
	"github.com/lox/blackjack-cli/internal/simulator"
)

type SimulateCmd struct {
	Rounds   int           `short:"n" help:"Rounds to simulate (overrides config)"`
	Workers  int           `short:"w" help:"Parallel workers (overrides config)"`
	Strategy string        `short:"s" help:"Bot strategy: chart, rand, dealer (overrides config)"`
	Bet      int           `help:"Flat bet in dollars (overrides config)"`
	Report   string        `short:"o" help:"Write a JSON report to this path"`
	Timeout  time.Duration `help:"Abort the simulation after this long (0 for no limit)"`
}

func (c *SimulateCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	if c.Rounds > 0 {
		cfg.Simulation.Rounds = c.Rounds
	}
	if c.Workers > 0 {
		cfg.Simulation.Workers = c.Workers
	}
	if c.Strategy != "" {
		cfg.Simulation.Strategy = c.Strategy
	}
	if c.Bet > 0 {
		cfg.Simulation.Bet = c.Bet
	}
	if c.Report != "" {
		cfg.Simulation.Report = c.Report
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "simulate",
		Level:           log.WarnLevel,
	})
	if globals.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	seed, _ := randutil.Resolve(globals.seed())
	sim := simulator.New(simulator.Config{
		Rounds:   cfg.Simulation.Rounds,
		Workers:  cfg.Simulation.Workers,
		Strategy: cfg.Simulation.Strategy,
		Seed:     seed,
		Decks:    cfg.Table.Decks,
		Bet:      game.Dollars(cfg.Simulation.Bet),
		Table:    cfg.TableConfig(),
		Timeout:  c.Timeout,
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting simulation: %d rounds with %s bot (seed: %d)\n",
		cfg.Simulation.Rounds, cfg.Simulation.Strategy, seed)

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	report := sim.NewReport(stats)
	simulator.PrintSummary(os.Stdout, report)
	fmt.Printf("\nCompleted in %s\n", time.Since(start).Round(time.Millisecond))

	if path := cfg.Simulation.Report; path != "" {
		if err := simulator.WriteReport(path, report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", path)
	}
	return nil
}
