package statistics

import (
	"fmt"
	"math"
	"sort"
)

// RoundResult represents the outcome of a single blackjack round for the
// simulated player. Amounts are in bet units so results from different bet
// sizes are comparable.
type RoundResult struct {
	NetUnits     float64 // Net units won/lost over all hands of the round
	WagerUnits   float64 // Units staked including doubles and splits
	Seed         int64   // Worker seed the round was dealt from (for replay)
	Hands        int     // Hands played (more than one after splits)
	Wins         int     // Hands won, excluding naturals
	Blackjacks   int     // Hands won with a natural
	Pushes       int     // Hands pushed
	Losses       int     // Hands lost
	Doubled      bool    // Any hand was doubled down
	Split        bool    // The opening hand was split
	DealerBusted bool    // Dealer finished over 21
}

// Statistics tracks blackjack simulation statistics
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	// Hand outcome counts across all hands, including split hands
	Hands      int
	Wins       int
	Blackjacks int
	Pushes     int
	Losses     int

	// Round analytics
	Doubles     int
	Splits      int
	DealerBusts int
	Wagered     float64

	// Ledger: winning and losing rounds must account for the total
	WonUnits  float64
	LostUnits float64
	AllUnits  float64
}

// Mean returns the arithmetic mean of all results in units per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// HouseEdge returns the house's expected gain per unit wagered. Doubles and
// splits are part of the wager, so this is lower than the loss per round.
func (s *Statistics) HouseEdge() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return -s.SumNet / s.Wagered
}

// HandRate returns count as a fraction of all hands played
func (s *Statistics) HandRate(count int) float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(count) / float64(s.Hands)
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := result.NetUnits
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	s.Hands += result.Hands
	s.Wins += result.Wins
	s.Blackjacks += result.Blackjacks
	s.Pushes += result.Pushes
	s.Losses += result.Losses
	s.Wagered += result.WagerUnits

	if result.Doubled {
		s.Doubles++
	}
	if result.Split {
		s.Splits++
	}
	if result.DealerBusted {
		s.DealerBusts++
	}

	if net > 0 {
		s.WonUnits += net
	} else {
		s.LostUnits += net
	}
	s.AllUnits += net
}

// Merge folds other into s. Worker statistics are merged after a run.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)

	s.Hands += other.Hands
	s.Wins += other.Wins
	s.Blackjacks += other.Blackjacks
	s.Pushes += other.Pushes
	s.Losses += other.Losses

	s.Doubles += other.Doubles
	s.Splits += other.Splits
	s.DealerBusts += other.DealerBusts
	s.Wagered += other.Wagered

	s.WonUnits += other.WonUnits
	s.LostUnits += other.LostUnits
	s.AllUnits += other.AllUnits
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllUnits-s.WonUnits-s.LostUnits) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllUnits=%.6f, WonUnits=%.6f, LostUnits=%.6f",
			s.AllUnits, s.WonUnits, s.LostUnits)
	}

	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	if s.Hands < s.Rounds {
		return fmt.Errorf("hands count (%d) is less than rounds count (%d)", s.Hands, s.Rounds)
	}

	outcomes := s.Wins + s.Blackjacks + s.Pushes + s.Losses
	if outcomes != s.Hands {
		return fmt.Errorf("hand outcomes total (%d) does not match hands count (%d)", outcomes, s.Hands)
	}

	return nil
}
