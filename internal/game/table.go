package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/blackjack-cli/internal/deck"
)

// TableConfig holds the house rules that vary between tables
type TableConfig struct {
	BetDenominations []int         // offered bets in dollars
	ReshuffleAt      int           // fresh shoe when fewer cards remain; 0 never reshuffles
	DealerPace       time.Duration // pause between dealer draws
}

// DefaultTableConfig returns the standard Vegas Strip table
func DefaultTableConfig() TableConfig {
	return TableConfig{
		BetDenominations: slices.Clone(DefaultBetDenominations),
	}
}

// RoundSummary describes a completed round
type RoundSummary struct {
	Round       int
	Bet         Money // opening bet
	Wagered     Money // total staked including doubles and splits
	Returned    Money // total credited at settlement
	Dealer      DealerOutcome
	Settlements []Settlement
	WalletAfter Money
}

// Net returns the player's gain or loss for the round
func (s RoundSummary) Net() Money {
	return s.Returned - s.Wagered
}

// SessionSummary describes a sequence of rounds
type SessionSummary struct {
	SessionID   string
	Rounds      int
	StartWallet Money
	EndWallet   Money
	Bankrupt    bool
}

// Table wires the dealer, the player and the event bus together and drives
// rounds. It replaces module-level dealer and player state: everything a
// round touches hangs off the Table.
type Table struct {
	id     string
	config TableConfig
	dealer *Dealer
	player *Player
	bus    EventBus
	clock  quartz.Clock
	logger *log.Logger
	round  int
}

// TableOption configures a Table
type TableOption func(*Table)

// WithLogger sets the table logger
func WithLogger(logger *log.Logger) TableOption {
	return func(t *Table) {
		t.logger = logger
	}
}

// WithClock sets the clock used for dealer pacing and event timestamps
func WithClock(clock quartz.Clock) TableOption {
	return func(t *Table) {
		t.clock = clock
	}
}

// WithEventBus sets the bus events are published on
func WithEventBus(bus EventBus) TableOption {
	return func(t *Table) {
		t.bus = bus
	}
}

// WithSessionID overrides the generated session ID
func WithSessionID(id string) TableOption {
	return func(t *Table) {
		t.id = id
	}
}

// NewTable creates a table dealing from shoe to player
func NewTable(shoe *deck.Shoe, player *Player, config TableConfig, opts ...TableOption) *Table {
	t := &Table{
		config: config,
		player: player,
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.id == "" {
		t.id = uuid.Must(uuid.NewV7()).String()
	}
	if t.bus == nil {
		t.bus = NewEventBus()
	}
	if t.logger == nil {
		t.logger = log.New(io.Discard)
	}
	t.logger = t.logger.With("session", t.id)
	if len(t.config.BetDenominations) == 0 {
		t.config.BetDenominations = slices.Clone(DefaultBetDenominations)
	}

	t.dealer = NewDealer(shoe,
		WithPace(t.clock, config.DealerPace),
		WithDrawFunc(t.onDraw),
	)
	return t
}

// ID returns the session ID
func (t *Table) ID() string { return t.id }

// Player returns the seated player
func (t *Table) Player() *Player { return t.player }

// Dealer returns the dealer
func (t *Table) Dealer() *Dealer { return t.dealer }

// Events returns the table's event bus
func (t *Table) Events() EventBus { return t.bus }

// Round returns the number of the current or last round
func (t *Table) Round() int { return t.round }

// State returns a read-only snapshot of the table
func (t *Table) State() TableState {
	state := TableState{
		Round:          t.round,
		Wallet:         t.player.Wallet(),
		CurrentHand:    t.player.CurrentIndex(),
		CardsRemaining: t.dealer.Shoe().CardsRemaining(),
	}
	for _, h := range t.player.Hands() {
		state.Hands = append(state.Hands, NewHandState(h))
	}
	state.DealerUpCard, state.HasUpCard = t.dealer.UpCard()
	return state
}

// BetOptions returns the bets the player can currently afford
func (t *Table) BetOptions() []Money {
	return BetOptions(t.player.Wallet(), t.config.BetDenominations)
}

// ValidActions returns the actions available on the current hand
func (t *Table) ValidActions() []Action {
	h := t.player.CurrentHand()
	if h == nil || h.IsTerminal() {
		return nil
	}

	actions := []Action{Stand, Hit}
	if t.player.CanDoubleDown() {
		actions = append(actions, DoubleDown)
	}
	if t.player.CanSplit() {
		actions = append(actions, Split)
	}
	return actions
}

// Run plays rounds until the agent quits or the wallet cannot cover a bet
func (t *Table) Run(ctx context.Context, agent Agent) (SessionSummary, error) {
	summary := SessionSummary{
		SessionID:   t.id,
		StartWallet: t.player.Wallet(),
	}

	for {
		_, err := t.PlayRound(ctx, agent)
		switch {
		case errors.Is(err, ErrPlayerQuit):
			t.logger.Info("Player left the table", "rounds", summary.Rounds)
		case errors.Is(err, ErrNoBetAvailable):
			t.logger.Info("Player cannot cover a bet", "wallet", t.player.Wallet())
			summary.Bankrupt = true
		case err != nil:
			summary.EndWallet = t.player.Wallet()
			return summary, err
		default:
			summary.Rounds++
			continue
		}

		summary.EndWallet = t.player.Wallet()
		return summary, nil
	}
}

// PlayRound plays one full round: bet, deal, player hands, dealer hand and
// settlement.
func (t *Table) PlayRound(ctx context.Context, agent Agent) (summary RoundSummary, err error) {
	t.player.DiscardHands()
	t.dealer.DiscardHand()
	t.reshuffleIfNeeded()

	options := t.BetOptions()
	if len(options) == 0 {
		return RoundSummary{}, ErrNoBetAvailable
	}

	amount, err := agent.PlaceBet(ctx, t.State(), options)
	if err != nil {
		return RoundSummary{}, err
	}
	if !slices.Contains(options, amount) {
		return RoundSummary{}, fmt.Errorf("bet %s not offered: %w", amount, ErrIllegalAction)
	}
	if err := t.player.PlaceBet(amount); err != nil {
		return RoundSummary{}, err
	}

	// A round that cannot finish is void and its stake goes back to the wallet
	defer func() {
		if err != nil {
			refund := t.player.RefundBets()
			t.logger.Warn("Round abandoned, stake returned", "round", t.round, "refund", refund, "error", err)
		}
	}()

	t.round++
	logger := t.logger.With("round", t.round)
	logger.Info("Round started", "bet", amount, "wallet", t.player.Wallet())
	t.bus.Publish(RoundStartEvent{Round: t.round, Bet: amount, Wallet: t.player.Wallet(), timestamp: t.clock.Now()})

	if err := t.dealInitial(); err != nil {
		return RoundSummary{}, err
	}

	dealerBJ, err := t.dealer.HasBlackjack()
	if err != nil {
		return RoundSummary{}, err
	}
	playerBJ := t.player.HasBlackjack()
	logger.Debug("Initial deal complete",
		"player", t.player.CurrentHand().Value(),
		"dealer_peek", t.dealer.MayPeek(),
		"dealer_blackjack", dealerBJ,
		"player_blackjack", playerBJ)

	if !dealerBJ && !playerBJ {
		if err := t.playHands(ctx, agent); err != nil {
			return RoundSummary{}, err
		}
	}

	t.bus.Publish(DealerTurnEvent{Hand: NewHandState(t.dealer.Hand()), timestamp: t.clock.Now()})
	outcome, err := t.dealer.Play(ctx)
	if err != nil {
		return RoundSummary{}, err
	}
	logger.Info("Dealer finished", "state", outcome.State, "value", outcome.Value)
	t.bus.Publish(DealerDoneEvent{Outcome: outcome, Hand: NewHandState(t.dealer.Hand()), timestamp: t.clock.Now()})

	wagered := t.player.TotalBet()
	settlements, err := Settle(t.player, t.dealer.Hand())
	if err != nil {
		return RoundSummary{}, err
	}

	summary = RoundSummary{
		Round:       t.round,
		Bet:         amount,
		Wagered:     wagered,
		Dealer:      outcome,
		Settlements: settlements,
		WalletAfter: t.player.Wallet(),
	}
	for _, s := range settlements {
		summary.Returned += s.Credit
		logger.Info("Hand settled",
			"hand", s.Index+1,
			"outcome", s.Result.Outcome,
			"reason", s.Result.Reason,
			"bet", s.Hand.Bet(),
			"credit", s.Credit)
		t.bus.Publish(HandSettledEvent{
			Settlement: s,
			HandCount:  len(settlements),
			Hand:       NewHandState(s.Hand),
			Dealer:     NewHandState(t.dealer.Hand()),
			timestamp:  t.clock.Now(),
		})
	}

	logger.Info("Round complete", "net", summary.Net(), "wallet", summary.WalletAfter)
	t.bus.Publish(RoundEndEvent{Summary: summary, timestamp: t.clock.Now()})
	return summary, nil
}

// FreshShoe replaces the dealer's shoe with a full, reshuffled one
func (t *Table) FreshShoe() {
	shoe := t.dealer.Shoe()
	shoe.Reset()
	t.logger.Info("Shoe reshuffled", "cards", shoe.CardsRemaining())
	t.bus.Publish(ShoeShuffledEvent{Cards: shoe.CardsRemaining(), timestamp: t.clock.Now()})
}

func (t *Table) reshuffleIfNeeded() {
	if t.config.ReshuffleAt <= 0 || t.dealer.Shoe().CardsRemaining() >= t.config.ReshuffleAt {
		return
	}
	t.FreshShoe()
}

// dealInitial deals player, player, dealer, dealer
func (t *Table) dealInitial() error {
	hand := t.player.CurrentHand()
	for _, target := range []*Hand{hand, hand, t.dealer.Hand(), t.dealer.Hand()} {
		if _, err := t.dealer.Deal(target); err != nil {
			return err
		}
	}
	return nil
}

// playHands plays the current hand and every split hand after it. A split
// hand receives its second card when play reaches it.
func (t *Table) playHands(ctx context.Context, agent Agent) error {
	for {
		if err := t.playHand(ctx, agent); err != nil {
			return err
		}
		if !t.player.HasNextHand() {
			return nil
		}

		next := t.player.AdvanceToNextHand()
		t.logger.Debug("Next hand", "hand", t.player.CurrentIndex()+1, "of", t.player.HandCount())
		if _, err := t.dealer.Deal(next); err != nil {
			return err
		}
	}
}

func (t *Table) playHand(ctx context.Context, agent Agent) error {
	hand := t.player.CurrentHand()
	for !hand.IsTerminal() {
		valid := t.ValidActions()
		action, err := agent.ChooseAction(ctx, t.State(), valid)
		if err != nil {
			return err
		}
		if !slices.Contains(valid, action) {
			return fmt.Errorf("%s on hand %d: %w", action, t.player.CurrentIndex()+1, ErrIllegalAction)
		}

		switch action {
		case Stand:
			t.publishAction(hand, action)
			return nil
		case Hit:
			if _, err := t.dealer.Deal(hand); err != nil {
				return err
			}
		case DoubleDown:
			if err := t.player.DoubleDown(); err != nil {
				return err
			}
			if _, err := t.dealer.Deal(hand); err != nil {
				return err
			}
		case Split:
			if _, err := t.player.Split(); err != nil {
				return err
			}
			if _, err := t.dealer.Deal(hand); err != nil {
				return err
			}
		}
		t.publishAction(hand, action)
	}
	return nil
}

func (t *Table) publishAction(hand *Hand, action Action) {
	t.logger.Debug("Player action",
		"hand", t.player.CurrentIndex()+1,
		"action", action,
		"value", hand.Value(),
		"soft", hand.IsSoft())
	t.bus.Publish(PlayerActionEvent{
		HandIndex: t.player.CurrentIndex(),
		Action:    action,
		Hand:      NewHandState(hand),
		Wallet:    t.player.Wallet(),
		timestamp: t.clock.Now(),
	})
}

func (t *Table) onDraw(target *Hand, card deck.Card) {
	event := CardDealtEvent{
		Card:      card,
		Value:     target.Value(),
		Soft:      target.IsSoft(),
		timestamp: t.clock.Now(),
	}
	if target == t.dealer.Hand() {
		event.ToDealer = true
		// The second dealer card is only ever dealt in the initial deal
		event.FaceDown = target.Len() == 2
	} else {
		event.HandIndex = slices.Index(t.player.Hands(), target)
	}
	t.bus.Publish(event)
}
