package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-cli/internal/bot"
	"github.com/lox/blackjack-cli/internal/game"
)

func testConfig(strategy string, rounds, workers int) Config {
	return Config{
		Rounds:   rounds,
		Workers:  workers,
		Strategy: strategy,
		Seed:     12345,
		Bet:      game.Dollars(10),
		Table:    game.DefaultTableConfig(),
		Timeout:  30 * time.Second,
		Logger:   log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel}),
	}
}

func TestNew(t *testing.T) {
	sim := New(Config{Strategy: bot.Chart, Rounds: 10})

	assert.Equal(t, 1, sim.config.Workers)
	assert.Equal(t, 6, sim.config.Decks)
	assert.Equal(t, game.Dollars(10), sim.config.Bet)
	assert.Equal(t, 78, sim.config.Table.ReshuffleAt)
	assert.NotNil(t, sim.config.Clock)
	assert.NotNil(t, sim.config.Logger)
}

func TestRun(t *testing.T) {
	stats, err := New(testConfig(bot.Chart, 1001, 4)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1001, stats.Rounds)
	assert.GreaterOrEqual(t, stats.Hands, stats.Rounds)
	assert.Equal(t, stats.Hands, stats.Wins+stats.Blackjacks+stats.Pushes+stats.Losses)
	assert.Greater(t, stats.Blackjacks, 0)
	assert.Greater(t, stats.Doubles, 0)
	assert.NoError(t, stats.Validate())
}

func TestRunIsDeterministic(t *testing.T) {
	first, err := New(testConfig(bot.Chart, 500, 3)).Run(context.Background())
	require.NoError(t, err)
	second, err := New(testConfig(bot.Chart, 500, 3)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Values, second.Values)
	assert.Equal(t, first.Hands, second.Hands)

	cfg := testConfig(bot.Chart, 500, 3)
	cfg.Seed = 54321
	other, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.Values, other.Values)
}

func TestRunStrategiesDiffer(t *testing.T) {
	chart, err := New(testConfig(bot.Chart, 5000, 4)).Run(context.Background())
	require.NoError(t, err)
	random, err := New(testConfig(bot.Random, 5000, 4)).Run(context.Background())
	require.NoError(t, err)

	assert.Greater(t, chart.Mean(), random.Mean(), "basic strategy should beat random play")
	assert.InDelta(t, 0, chart.Mean(), 0.1)
}

func TestRunErrors(t *testing.T) {
	t.Run("unknown strategy", func(t *testing.T) {
		_, err := New(testConfig("martingale", 10, 2)).Run(context.Background())
		assert.ErrorIs(t, err, bot.ErrUnknownStrategy)
	})

	t.Run("no rounds", func(t *testing.T) {
		_, err := New(testConfig(bot.Chart, 0, 2)).Run(context.Background())
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New(testConfig(bot.Chart, 100, 2)).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestResultFromSummary(t *testing.T) {
	table := game.NewTestTable("8s 8h 10d 7c 3h Kd 2c")
	summary, err := table.PlayRound(context.Background(), &game.ScriptedAgent{
		Bets:    []game.Money{game.Dollars(10)},
		Actions: []game.Action{game.Split, game.DoubleDown, game.Stand},
	})
	require.NoError(t, err)

	result := ResultFromSummary(summary, 99)
	assert.Equal(t, 1.0, result.NetUnits)
	assert.Equal(t, 3.0, result.WagerUnits)
	assert.Equal(t, int64(99), result.Seed)
	assert.Equal(t, 2, result.Hands)
	assert.Equal(t, 1, result.Wins)
	assert.Equal(t, 1, result.Losses)
	assert.True(t, result.Split)
	assert.True(t, result.Doubled)
	assert.False(t, result.DealerBusted)
}

func TestReport(t *testing.T) {
	mClock := quartz.NewMock(t)
	mClock.Set(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	cfg := testConfig(bot.Dealer, 200, 2)
	cfg.Clock = mClock
	sim := New(cfg)

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)

	report := sim.NewReport(stats)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "dealer", report.Strategy)
	assert.Equal(t, 200, report.Rounds)
	assert.Equal(t, "$10", report.Bet)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), report.GeneratedAt)
	assert.InDelta(t, 1.0, report.WinRate+report.BlackjackRate+report.PushRate+report.LossRate, 1e-9)
	assert.Zero(t, report.DoubleRate, "dealer bot never doubles")

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteReport(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.ID, decoded.ID)
	assert.Equal(t, report.Hands, decoded.Hands)

	var buf bytes.Buffer
	PrintSummary(&buf, report)
	assert.Contains(t, buf.String(), "RESULTS: dealer strategy")
	assert.Contains(t, buf.String(), "Rounds played: 200")
	assert.Contains(t, buf.String(), "House edge:")
}
