// Package game implements the Vegas Strip blackjack rules engine.
//
// A Hand tracks its total incrementally as cards arrive, including whether an
// Ace is currently counted as 11. The rules engine (IsBust, IsBlackjack,
// IsSplittable) answers questions about a hand; Player and Dealer hold hands
// and money; Resolve and Settle decide each hand against the dealer.
//
// # Basic Usage
//
// Seat a player at a table and let an Agent make the decisions:
//
//	rng := randutil.New(42)
//	shoe := deck.NewShuffledShoe(rng, deck.DefaultDecks)
//	table := game.NewTable(shoe, game.NewPlayer("You", game.Dollars(100)), game.DefaultTableConfig())
//	summary, err := table.PlayRound(ctx, agent)
//
// # Rules
//
//   - Dealer hits soft 17 and stands on hard 17 and above
//   - Blackjack pays 3:2
//   - Dealer peeks for blackjack only with an Ace showing
//   - Double down on any two-card hand, including split hands
//   - Split up to three times for four hands; Aces split once and take one card
//   - 21 on a split hand is not blackjack
//
// # Deterministic Testing
//
// NewTestTable builds a table over a stacked shoe and ScriptedAgent replays
// fixed decisions:
//
//	table := game.NewTestTable("8s 8h 10d 7c 3h 2c")
//	agent := &game.ScriptedAgent{Bets: []game.Money{game.Dollars(10)}, Actions: []game.Action{game.Split}}
package game
