package game

import (
	"time"

	"github.com/lox/blackjack-cli/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypeRoundEnd     EventType = "round_end"
	EventTypeCardDealt    EventType = "card_dealt"
	EventTypePlayerAction EventType = "player_action"
	EventTypeDealerTurn   EventType = "dealer_turn"
	EventTypeDealerDone   EventType = "dealer_done"
	EventTypeHandSettled  EventType = "hand_settled"
	EventTypeShoeShuffled EventType = "shoe_shuffled"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published once the bet is placed
type RoundStartEvent struct {
	Round     int
	Bet       Money
	Wallet    Money
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// CardDealtEvent is published for every card drawn from the shoe
type CardDealtEvent struct {
	ToDealer  bool
	HandIndex int
	Card      deck.Card
	FaceDown  bool // dealer hole card, hidden until the dealer's turn
	Value     int
	Soft      bool
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published when the player acts on a hand
type PlayerActionEvent struct {
	HandIndex int
	Action    Action
	Hand      HandState
	Wallet    Money
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// DealerTurnEvent is published when the dealer reveals the hole card
type DealerTurnEvent struct {
	Hand      HandState
	timestamp time.Time
}

func (e DealerTurnEvent) EventType() EventType { return EventTypeDealerTurn }
func (e DealerTurnEvent) Timestamp() time.Time { return e.timestamp }

// DealerDoneEvent is published when the dealer's hand is final
type DealerDoneEvent struct {
	Outcome   DealerOutcome
	Hand      HandState
	timestamp time.Time
}

func (e DealerDoneEvent) EventType() EventType { return EventTypeDealerDone }
func (e DealerDoneEvent) Timestamp() time.Time { return e.timestamp }

// HandSettledEvent is published for each resolved player hand
type HandSettledEvent struct {
	Settlement Settlement
	HandCount  int
	Hand       HandState
	Dealer     HandState
	timestamp  time.Time
}

func (e HandSettledEvent) EventType() EventType { return EventTypeHandSettled }
func (e HandSettledEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndEvent is published with the round summary
type RoundEndEvent struct {
	Summary   RoundSummary
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// ShoeShuffledEvent is published when a fresh shoe is brought in
type ShoeShuffledEvent struct {
	Cards     int
	timestamp time.Time
}

func (e ShoeShuffledEvent) EventType() EventType { return EventTypeShoeShuffled }
func (e ShoeShuffledEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation. Events are
// delivered synchronously on the publishing goroutine.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. Function subscribers cannot be compared
// and are never removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, ok := sub.(EventSubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
