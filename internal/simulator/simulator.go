package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack-cli/internal/bot"
	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/fileutil"
	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/randutil"
	"github.com/lox/blackjack-cli/internal/statistics"
)

// bankroll is large enough that no simulated session goes broke
var bankroll = game.Dollars(1_000_000_000)

// Config holds configuration for running simulations
type Config struct {
	Rounds   int
	Workers  int
	Strategy string
	Seed     int64
	Decks    int
	Bet      game.Money // flat bet unit; results are reported in these units
	Table    game.TableConfig
	Timeout  time.Duration
	Clock    quartz.Clock
	Logger   *log.Logger
}

// Simulator plays bot sessions on independent tables in parallel
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Decks < 1 {
		config.Decks = deck.DefaultDecks
	}
	if config.Bet <= 0 {
		config.Bet = game.Dollars(10)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	// A shoe dealt to the last card would run dry mid-round, so simulated
	// tables always bring in a fresh shoe at the cut card.
	if config.Table.ReshuffleAt <= 0 {
		config.Table.ReshuffleAt = deck.CutCard(config.Decks)
	}
	config.Table.DealerPace = 0
	return &Simulator{config: config}
}

// Run plays the configured number of rounds split across workers. Worker
// seeds are derived from the run seed and results are merged in worker
// order, so a run is reproducible from its seed.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Rounds <= 0 {
		return nil, fmt.Errorf("invalid rounds count: %d", s.config.Rounds)
	}
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	workers := min(s.config.Workers, s.config.Rounds)
	seeds := randutil.Derive(randutil.New(s.config.Seed), workers)
	perWorker := s.config.Rounds / workers
	remainder := s.config.Rounds % workers

	results := make([]*statistics.Statistics, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		rounds := perWorker
		if w < remainder {
			rounds++
		}

		g.Go(func() error {
			stats, err := s.runWorker(ctx, w, seeds[w], rounds)
			if err != nil {
				return fmt.Errorf("worker %d (seed %d): %w", w, seeds[w], err)
			}
			results[w] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Merge(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

func (s *Simulator) runWorker(ctx context.Context, worker int, seed int64, rounds int) (*statistics.Statistics, error) {
	logger := s.config.Logger.With("worker", worker)
	rng := randutil.New(seed)

	agent, err := bot.New(s.config.Strategy, s.config.Bet, rng, logger)
	if err != nil {
		return nil, err
	}

	table := game.NewTable(
		deck.NewShuffledShoe(rng, s.config.Decks),
		game.NewPlayer(fmt.Sprintf("%s-%d", s.config.Strategy, worker), bankroll),
		s.config.Table,
		game.WithLogger(logger),
		game.WithClock(s.config.Clock),
	)

	stats := &statistics.Statistics{}
	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		summary, err := table.PlayRound(ctx, agent)
		if err != nil {
			if errors.Is(err, game.ErrNoBetAvailable) {
				return nil, fmt.Errorf("bankroll exhausted after %d rounds: %w", i, err)
			}
			return nil, err
		}
		stats.Add(ResultFromSummary(summary, seed))
	}

	logger.Debug("Worker finished", "rounds", rounds, "mean", stats.Mean())
	return stats, nil
}

// ResultFromSummary converts a round summary into a statistics result,
// measured in units of the round's opening bet
func ResultFromSummary(summary game.RoundSummary, seed int64) statistics.RoundResult {
	unit := float64(summary.Bet)
	result := statistics.RoundResult{
		NetUnits:     float64(summary.Net()) / unit,
		WagerUnits:   float64(summary.Wagered) / unit,
		Seed:         seed,
		Hands:        len(summary.Settlements),
		Split:        len(summary.Settlements) > 1,
		DealerBusted: summary.Dealer.State == game.DealerBust,
	}

	for _, s := range summary.Settlements {
		if s.Hand.IsDoubled() {
			result.Doubled = true
		}
		switch s.Result.Outcome {
		case game.OutcomeBlackjack:
			result.Blackjacks++
		case game.OutcomeWin:
			result.Wins++
		case game.OutcomePush:
			result.Pushes++
		default:
			result.Losses++
		}
	}
	return result
}

// Report is the JSON summary of a simulation run
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Strategy    string    `json:"strategy"`
	Seed        int64     `json:"seed"`
	Workers     int       `json:"workers"`
	Decks       int       `json:"decks"`
	Bet         string    `json:"bet"`

	Rounds    int     `json:"rounds"`
	Hands     int     `json:"hands"`
	Mean      float64 `json:"mean_units_per_round"`
	StdDev    float64 `json:"std_dev"`
	CI95Low   float64 `json:"ci95_low"`
	CI95High  float64 `json:"ci95_high"`
	Median    float64 `json:"median"`
	P05       float64 `json:"p05"`
	P95       float64 `json:"p95"`
	HouseEdge float64 `json:"house_edge"`

	WinRate        float64 `json:"win_rate"`
	BlackjackRate  float64 `json:"blackjack_rate"`
	PushRate       float64 `json:"push_rate"`
	LossRate       float64 `json:"loss_rate"`
	DoubleRate     float64 `json:"double_rate"`
	SplitRate      float64 `json:"split_rate"`
	DealerBustRate float64 `json:"dealer_bust_rate"`
}

// NewReport summarises stats for the simulator's configuration
func (s *Simulator) NewReport(stats *statistics.Statistics) Report {
	low, high := stats.ConfidenceInterval95()
	perRound := func(n int) float64 {
		if stats.Rounds == 0 {
			return 0
		}
		return float64(n) / float64(stats.Rounds)
	}

	return Report{
		ID:          uuid.Must(uuid.NewV7()).String(),
		GeneratedAt: s.config.Clock.Now().UTC(),
		Strategy:    s.config.Strategy,
		Seed:        s.config.Seed,
		Workers:     s.config.Workers,
		Decks:       s.config.Decks,
		Bet:         s.config.Bet.String(),

		Rounds:    stats.Rounds,
		Hands:     stats.Hands,
		Mean:      stats.Mean(),
		StdDev:    stats.StdDev(),
		CI95Low:   low,
		CI95High:  high,
		Median:    stats.Median(),
		P05:       stats.Percentile(0.05),
		P95:       stats.Percentile(0.95),
		HouseEdge: stats.HouseEdge(),

		WinRate:        stats.HandRate(stats.Wins),
		BlackjackRate:  stats.HandRate(stats.Blackjacks),
		PushRate:       stats.HandRate(stats.Pushes),
		LossRate:       stats.HandRate(stats.Losses),
		DoubleRate:     perRound(stats.Doubles),
		SplitRate:      perRound(stats.Splits),
		DealerBustRate: perRound(stats.DealerBusts),
	}
}

// WriteReport writes the report as JSON to path
func WriteReport(path string, report Report) error {
	return fileutil.WriteJSONAtomic(path, report, 0o644)
}

// PrintSummary prints a summary of simulation results
func PrintSummary(w io.Writer, report Report) {
	fmt.Fprintf(w, "\n=== RESULTS: %s strategy ===\n", report.Strategy)
	fmt.Fprintf(w, "Rounds played: %d (%d hands, %d workers, seed %d)\n",
		report.Rounds, report.Hands, report.Workers, report.Seed)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f units/round\n", report.Mean)
	fmt.Fprintf(w, "Median: %.4f units/round\n", report.Median)
	fmt.Fprintf(w, "Std Dev: %.4f units\n", report.StdDev)
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] units/round\n", report.CI95Low, report.CI95High)
	fmt.Fprintf(w, "Percentiles: P5=%.3f, P95=%.3f\n", report.P05, report.P95)
	fmt.Fprintf(w, "House edge: %.2f%% of money wagered\n", report.HouseEdge*100)

	fmt.Fprintf(w, "\n=== HAND OUTCOMES ===\n")
	fmt.Fprintf(w, "Win: %.1f%%  Blackjack: %.1f%%  Push: %.1f%%  Lose: %.1f%%\n",
		report.WinRate*100, report.BlackjackRate*100, report.PushRate*100, report.LossRate*100)
	fmt.Fprintf(w, "Doubled: %.1f%% of rounds, split: %.1f%% of rounds, dealer bust: %.1f%% of rounds\n",
		report.DoubleRate*100, report.SplitRate*100, report.DealerBustRate*100)
}
