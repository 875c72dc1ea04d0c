// Package config loads blackjack settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack-cli/internal/bot"
	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

// DefaultFile is the config file read when --config is not given
const DefaultFile = "blackjack.hcl"

// Config represents the complete blackjack configuration
type Config struct {
	Table      TableSettings
	UI         UISettings
	Simulation SimulationSettings
}

// TableSettings are the house rules and bankroll
type TableSettings struct {
	Decks         int
	StartingFunds int // dollars
	Bets          []int
	ReshuffleAt   int // cards remaining; 0 places the cut card at a quarter of the shoe
	DealerPaceMS  int
}

// UISettings control the interactive terminal
type UISettings struct {
	LogFile  string
	LogLevel string
	Color    bool
}

// SimulationSettings control the simulate command
type SimulationSettings struct {
	Rounds   int
	Workers  int
	Strategy string
	Bet      int // dollars
	Report   string
}

// file mirrors the HCL layout. Every block and attribute is optional and
// pointer attributes distinguish an explicit zero from an omitted value.
type file struct {
	Table      *tableBlock      `hcl:"table,block"`
	UI         *uiBlock         `hcl:"ui,block"`
	Simulation *simulationBlock `hcl:"simulation,block"`
}

type tableBlock struct {
	Decks         *int  `hcl:"decks,optional"`
	StartingFunds *int  `hcl:"starting_funds,optional"`
	Bets          []int `hcl:"bets,optional"`
	ReshuffleAt   *int  `hcl:"reshuffle_at,optional"`
	DealerPaceMS  *int  `hcl:"dealer_pace_ms,optional"`
}

type uiBlock struct {
	LogFile  *string `hcl:"log_file,optional"`
	LogLevel *string `hcl:"log_level,optional"`
	Color    *bool   `hcl:"color,optional"`
}

type simulationBlock struct {
	Rounds   *int    `hcl:"rounds,optional"`
	Workers  *int    `hcl:"workers,optional"`
	Strategy *string `hcl:"strategy,optional"`
	Bet      *int    `hcl:"bet,optional"`
	Report   *string `hcl:"report,optional"`
}

// Default returns default blackjack configuration
func Default() *Config {
	return &Config{
		Table: TableSettings{
			Decks:         deck.DefaultDecks,
			StartingFunds: 100,
			Bets:          slices.Clone(game.DefaultBetDenominations),
			DealerPaceMS:  200,
		},
		UI: UISettings{
			LogFile:  "blackjack.log",
			LogLevel: "info",
			Color:    true,
		},
		Simulation: SimulationSettings{
			Rounds:   10000,
			Workers:  4,
			Strategy: bot.Chart,
			Bet:      10,
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source over the defaults
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if t := raw.Table; t != nil {
		set(&config.Table.Decks, t.Decks)
		set(&config.Table.StartingFunds, t.StartingFunds)
		set(&config.Table.ReshuffleAt, t.ReshuffleAt)
		set(&config.Table.DealerPaceMS, t.DealerPaceMS)
		if t.Bets != nil {
			config.Table.Bets = t.Bets
		}
	}
	if u := raw.UI; u != nil {
		set(&config.UI.LogFile, u.LogFile)
		set(&config.UI.LogLevel, u.LogLevel)
		set(&config.UI.Color, u.Color)
	}
	if s := raw.Simulation; s != nil {
		set(&config.Simulation.Rounds, s.Rounds)
		set(&config.Simulation.Workers, s.Workers)
		set(&config.Simulation.Strategy, s.Strategy)
		set(&config.Simulation.Bet, s.Bet)
		set(&config.Simulation.Report, s.Report)
	}
	return config, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.Decks < 1 {
		return fmt.Errorf("table: decks must be positive, got %d", c.Table.Decks)
	}
	if c.Table.StartingFunds < 1 {
		return fmt.Errorf("table: starting funds must be positive, got %d", c.Table.StartingFunds)
	}
	if len(c.Table.Bets) == 0 {
		return fmt.Errorf("table: at least one bet must be configured")
	}
	for i, b := range c.Table.Bets {
		if b <= 0 {
			return fmt.Errorf("table: bet %d must be positive, got %d", i+1, b)
		}
		if i > 0 && b <= c.Table.Bets[i-1] {
			return fmt.Errorf("table: bets must be in ascending order")
		}
	}
	if c.Table.ReshuffleAt < 0 || c.Table.ReshuffleAt >= c.Table.Decks*52 {
		return fmt.Errorf("table: reshuffle_at must be between 0 and %d", c.Table.Decks*52-1)
	}
	if c.Table.DealerPaceMS < 0 {
		return fmt.Errorf("table: dealer pace cannot be negative")
	}

	if _, err := log.ParseLevel(c.UI.LogLevel); err != nil {
		return fmt.Errorf("ui: invalid log level %q", c.UI.LogLevel)
	}

	if c.Simulation.Rounds < 1 {
		return fmt.Errorf("simulation: rounds must be positive, got %d", c.Simulation.Rounds)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("simulation: workers must be positive, got %d", c.Simulation.Workers)
	}
	if !slices.Contains(bot.Names, c.Simulation.Strategy) {
		return fmt.Errorf("simulation: invalid strategy %s", c.Simulation.Strategy)
	}
	if c.Simulation.Bet < 1 {
		return fmt.Errorf("simulation: bet must be positive, got %d", c.Simulation.Bet)
	}
	return nil
}

// LogLevel returns the parsed UI log level
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.UI.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// TableConfig returns the game table configuration
func (c *Config) TableConfig() game.TableConfig {
	return game.TableConfig{
		BetDenominations: slices.Clone(c.Table.Bets),
		ReshuffleAt:      c.reshuffleAt(),
		DealerPace:       time.Duration(c.Table.DealerPaceMS) * time.Millisecond,
	}
}

// StartingFunds returns the player's opening wallet
func (c *Config) StartingFunds() game.Money {
	return game.Dollars(c.Table.StartingFunds)
}

func (c *Config) reshuffleAt() int {
	if c.Table.ReshuffleAt > 0 {
		return c.Table.ReshuffleAt
	}
	return deck.CutCard(c.Table.Decks)
}
