package wizard

import (
	"github.com/google/uuid"

	"github.com/luca-patrignani/wizard/domain/card"
)

// TrickResult is a completed trick.
type TrickResult struct {
	Plays  []PlayedCard `json:"plays"`
	Winner int          `json:"winner"`
	Card   card.Card    `json:"card"`
}

// Snapshot is a value copy of the game state for presentation layers.
type Snapshot struct {
	GameID        uuid.UUID    `json:"game_id"`
	Phase         Phase        `json:"phase"`
	Round         int          `json:"round"`
	MaxRounds     int          `json:"max_rounds"`
	Trick         int          `json:"trick"`
	Dealer        int          `json:"dealer"`
	FirstPlayer   int          `json:"first_player"`
	CurrentSeat   int          `json:"current_seat"`
	Lead          card.Suit    `json:"lead"`
	Trump         card.Suit    `json:"trump"`
	TrumpCard     *card.Card   `json:"trump_card,omitempty"`
	WinningCard   *card.Card   `json:"winning_card,omitempty"`
	WinningSeat   int          `json:"winning_seat"`
	Plays         []PlayedCard `json:"plays,omitempty"`
	LastTrick     *TrickResult `json:"last_trick,omitempty"`
	Players       []PlayerView `json:"players"`
	DeckRemaining int          `json:"deck_remaining"`
}

// Snapshot captures the current state. Nothing in it aliases game memory.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		GameID:        g.id,
		Phase:         g.phase,
		Round:         g.round,
		MaxRounds:     g.maxRounds,
		Trick:         g.trick,
		Dealer:        g.dealer,
		FirstPlayer:   g.first,
		CurrentSeat:   g.CurrentSeat(),
		Lead:          g.Lead(),
		Trump:         g.trump,
		WinningSeat:   -1,
		Players:       g.Players(),
		DeckRemaining: g.deck.Remaining(),
	}
	if !g.trumpCard.IsZero() {
		tc := g.trumpCard
		s.TrumpCard = &tc
	}
	if g.current != nil {
		s.Plays = g.current.Plays()
		if seat, c, ok := g.current.Winner(); ok {
			s.WinningSeat = seat
			s.WinningCard = &c
		}
	}
	if g.lastTrick != nil {
		last := *g.lastTrick
		last.Plays = append([]PlayedCard(nil), g.lastTrick.Plays...)
		s.LastTrick = &last
	}
	return s
}
