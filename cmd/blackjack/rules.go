package main

import (
	"fmt"

	"github.com/lox/blackjack-cli/internal/tui"
)

type RulesCmd struct{}

func (c *RulesCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	fmt.Print(tui.RulesText(cfg.TableConfig(), cfg.Table.Decks))
	return nil
}
