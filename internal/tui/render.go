package tui

import (
	"fmt"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

// EventRenderer turns table events into log lines and keeps the sidebar in
// step with the table. It only reads state; it never changes the round.
type EventRenderer struct {
	model *TUIModel
	state func() game.TableState

	dealer []deck.Card
	view   TableView
}

// NewEventRenderer creates a renderer drawing into model. state supplies the
// table snapshot after each event.
func NewEventRenderer(model *TUIModel, state func() game.TableState) *EventRenderer {
	return &EventRenderer{model: model, state: state}
}

// OnEvent implements game.EventSubscriber
func (r *EventRenderer) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.ShoeShuffledEvent:
		r.model.AddLogEntry(DimStyle.Render(fmt.Sprintf("Fresh shoe: %d cards", e.Cards)))

	case game.RoundStartEvent:
		r.dealer = nil
		r.view.Dealer = game.HandState{}
		r.view.DealerRevealed = false
		r.model.AddLogEntry("")
		r.model.AddBoldLogEntry(fmt.Sprintf("Round %d: bet %s, wallet %s", e.Round, e.Bet, e.Wallet))

	case game.CardDealtEvent:
		r.renderCard(e)

	case game.PlayerActionEvent:
		r.renderAction(e)

	case game.DealerTurnEvent:
		r.view.Dealer = e.Hand
		r.view.DealerRevealed = true
		if len(e.Hand.Cards) == 2 {
			r.model.AddLogEntry(fmt.Sprintf("Dealer reveals %s: %s", FormatCard(e.Hand.Cards[1]), FormatValue(e.Hand.Value, e.Hand.Soft)))
		}

	case game.DealerDoneEvent:
		r.view.Dealer = e.Hand
		r.view.DealerRevealed = true
		switch e.Outcome.State {
		case game.DealerBlackjack:
			r.model.AddLogEntry(LossStyle.Render("Dealer has blackjack"))
		case game.DealerBust:
			r.model.AddLogEntry(WinStyle.Render(fmt.Sprintf("Dealer busts with %d", e.Outcome.Value)))
		default:
			r.model.AddLogEntry(fmt.Sprintf("Dealer stands on %d", e.Outcome.Value))
		}

	case game.HandSettledEvent:
		s := e.Settlement
		r.model.AddLogEntry(fmt.Sprintf("%s: %s: %s %s",
			r.handLabel(s.Index, e.HandCount > 1), FormatHand(e.Hand), FormatOutcome(s.Result), FormatNet(s.Net())))

	case game.RoundEndEvent:
		r.model.AddBoldLogEntry(fmt.Sprintf("Round %d: net %s, wallet %s", e.Summary.Round, FormatNet(e.Summary.Net()), e.Summary.WalletAfter))
	}

	r.refresh()
}

func (r *EventRenderer) renderCard(e game.CardDealtEvent) {
	if e.ToDealer {
		r.dealer = append(r.dealer, e.Card)
		if !r.view.DealerRevealed {
			r.view.Dealer = game.HandState{Cards: r.dealer}
		}
		switch {
		case e.FaceDown:
			r.model.AddLogEntry("Dealer takes a hole card")
		case len(r.dealer) == 1:
			r.model.AddLogEntry(fmt.Sprintf("Dealer shows %s", FormatCard(e.Card)))
		default:
			r.model.AddLogEntry(fmt.Sprintf("Dealer draws %s: %s", FormatCard(e.Card), FormatValue(e.Value, e.Soft)))
		}
		return
	}

	r.model.AddLogEntry(fmt.Sprintf("%s: %s → %s", r.handLabel(e.HandIndex, r.splitHands()), FormatCard(e.Card), FormatValue(e.Value, e.Soft)))
}

func (r *EventRenderer) renderAction(e game.PlayerActionEvent) {
	label := r.handLabel(e.HandIndex, r.splitHands())
	switch e.Action {
	case game.Stand:
		r.model.AddLogEntry(fmt.Sprintf("%s: stand on %d", label, e.Hand.Value))
	case game.DoubleDown:
		r.model.AddLogEntry(fmt.Sprintf("%s: double down for %s", label, e.Hand.Bet))
	case game.Split:
		r.model.AddLogEntry(fmt.Sprintf("%s: split, wallet %s", label, e.Wallet))
	}
	if e.Hand.Value > 21 {
		r.model.AddLogEntry(LossStyle.Render(fmt.Sprintf("%s: bust", label)))
	}
}

func (r *EventRenderer) handLabel(index int, multiple bool) string {
	if multiple {
		return fmt.Sprintf("Hand %d", index+1)
	}
	return "You"
}

func (r *EventRenderer) splitHands() bool {
	return r.state != nil && len(r.state().Hands) > 1
}

func (r *EventRenderer) refresh() {
	if r.state == nil {
		return
	}
	state := r.state()
	r.view.Round = state.Round
	r.view.Wallet = state.Wallet
	r.view.CardsRemaining = state.CardsRemaining
	r.view.Hands = state.Hands
	r.view.CurrentHand = state.CurrentHand
	r.model.UpdateTable(r.view)
}
