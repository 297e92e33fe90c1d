package wizard

import (
	"github.com/google/uuid"

	"github.com/luca-patrignani/wizard/domain/card"
)

// EventKind identifies what happened in the game.
type EventKind string

const (
	EventRoundDealt    EventKind = "round_dealt"
	EventTrumpResolved EventKind = "trump_resolved"
	EventBetPlaced     EventKind = "bet_placed"
	EventCardPlayed    EventKind = "card_played"
	EventTrickWon      EventKind = "trick_won"
	EventRoundScored   EventKind = "round_scored"
	EventGameOver      EventKind = "game_over"
)

// ScoreLine is one player's result for a scored round.
type ScoreLine struct {
	Name      string `json:"name"`
	Bet       int    `json:"bet"`
	TricksWon int    `json:"tricks_won"`
	Delta     int    `json:"delta"`
	Total     int    `json:"total"`
}

// Event is emitted to observers after every completed step.
type Event struct {
	Kind    EventKind   `json:"kind"`
	GameID  uuid.UUID   `json:"game_id"`
	Round   int         `json:"round"`
	Trick   int         `json:"trick"`
	Seat    int         `json:"seat"`
	Player  string      `json:"player,omitempty"`
	Card    *card.Card  `json:"card,omitempty"`
	Suit    card.Suit   `json:"suit"`
	Bet     int         `json:"bet,omitempty"`
	Scores  []ScoreLine `json:"scores,omitempty"`
	Winners []string    `json:"winners,omitempty"`
}

// Observer receives game events. A failing observer is logged and never
// stops the game.
type Observer interface {
	Observe(e Event) error
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(e Event) error

func (f ObserverFunc) Observe(e Event) error {
	return f(e)
}
