package game

// Outcome is the result of one player hand against the dealer
type Outcome int

const (
	OutcomeLose Outcome = iota
	OutcomePush
	OutcomeWin
	OutcomeBlackjack
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeLose:
		return "lose"
	case OutcomePush:
		return "push"
	case OutcomeWin:
		return "win"
	case OutcomeBlackjack:
		return "blackjack"
	default:
		return "unknown"
	}
}

// Multiplier returns the settlement multiplier for the outcome
func (o Outcome) Multiplier() Multiplier {
	switch o {
	case OutcomePush:
		return MultiplierPush
	case OutcomeWin:
		return MultiplierWin
	case OutcomeBlackjack:
		return MultiplierBlackjack
	default:
		return MultiplierLose
	}
}

// Reason explains which rule decided a hand
type Reason int

const (
	ReasonBothBlackjack Reason = iota
	ReasonDealerBlackjack
	ReasonPlayerBlackjack
	ReasonBothBust
	ReasonDealerBust
	ReasonPlayerBust
	ReasonEqual
	ReasonDealerHigher
	ReasonPlayerHigher
)

// String returns the string representation of the reason
func (r Reason) String() string {
	switch r {
	case ReasonBothBlackjack:
		return "both blackjack"
	case ReasonDealerBlackjack:
		return "dealer blackjack"
	case ReasonPlayerBlackjack:
		return "player blackjack"
	case ReasonBothBust:
		return "both bust"
	case ReasonDealerBust:
		return "dealer bust"
	case ReasonPlayerBust:
		return "player bust"
	case ReasonEqual:
		return "equal totals"
	case ReasonDealerHigher:
		return "dealer higher"
	case ReasonPlayerHigher:
		return "player higher"
	default:
		return "unknown"
	}
}

// Result is the resolution of a single player hand
type Result struct {
	Outcome Outcome
	Reason  Reason
}

// Multiplier returns the settlement multiplier for the result
func (r Result) Multiplier() Multiplier {
	return r.Outcome.Multiplier()
}

// Resolve compares a player hand with the dealer hand. The first matching
// rule wins: blackjacks, then busts, then totals.
func Resolve(player, dealer *Hand) (Result, error) {
	playerBJ, err := IsBlackjack(player)
	if err != nil {
		return Result{}, err
	}
	dealerBJ, err := IsBlackjack(dealer)
	if err != nil {
		return Result{}, err
	}

	switch {
	case dealerBJ && playerBJ:
		return Result{OutcomePush, ReasonBothBlackjack}, nil
	case dealerBJ:
		return Result{OutcomeLose, ReasonDealerBlackjack}, nil
	case playerBJ:
		return Result{OutcomeBlackjack, ReasonPlayerBlackjack}, nil
	case dealer.IsBust() && player.IsBust():
		return Result{OutcomePush, ReasonBothBust}, nil
	case dealer.IsBust():
		return Result{OutcomeWin, ReasonDealerBust}, nil
	case player.IsBust():
		return Result{OutcomeLose, ReasonPlayerBust}, nil
	case dealer.value == player.value:
		return Result{OutcomePush, ReasonEqual}, nil
	case dealer.value > player.value:
		return Result{OutcomeLose, ReasonDealerHigher}, nil
	default:
		return Result{OutcomeWin, ReasonPlayerHigher}, nil
	}
}

// Settlement is a resolved hand and the amount credited for it
type Settlement struct {
	Index  int
	Hand   *Hand
	Result Result
	Credit Money
}

// Net returns the gain or loss on the hand relative to its stake
func (s Settlement) Net() Money {
	return s.Credit - s.Hand.bet
}

// Settle resolves every player hand against the dealer and credits the
// wallet. A losing hand credits nothing; its stake was taken at bet time.
func Settle(p *Player, dealer *Hand) ([]Settlement, error) {
	settlements := make([]Settlement, 0, len(p.hands))
	for i, h := range p.hands {
		result, err := Resolve(h, dealer)
		if err != nil {
			return nil, err
		}

		var credit Money
		if m := result.Multiplier(); m != MultiplierLose {
			credit = p.CashIn(h.bet, m)
		}
		settlements = append(settlements, Settlement{
			Index:  i,
			Hand:   h,
			Result: result,
			Credit: credit,
		})
	}
	return settlements, nil
}
