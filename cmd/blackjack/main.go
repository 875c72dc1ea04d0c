package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack-cli/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config string `short:"c" default:"${config_file}" help:"Path to HCL config file"`
	Seed   int64  `help:"RNG seed for the shoe (0 for random)"`
	Debug  bool   `help:"Enable debug logging"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Sit down at the table"`
	Simulate SimulateCmd      `cmd:"" help:"Play many rounds with a bot and report the results"`
	Rules    RulesCmd         `cmd:"" help:"Print the house rules"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Vegas Strip blackjack in your terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// loadConfig reads and validates the config file
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Debug {
		cfg.UI.LogLevel = "debug"
	}
	if !cfg.UI.Color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return cfg, nil
}

// seed returns the seed flag, or nil to draw a random one
func (g *Globals) seed() *int64 {
	if g.Seed == 0 {
		return nil
	}
	return &g.Seed
}
