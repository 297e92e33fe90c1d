package wizard

import (
	"context"
	"fmt"

	"github.com/luca-patrignani/wizard/domain/card"
)

// PlayerView is the read-only picture of a player handed to a DecisionProvider.
type PlayerView struct {
	Seat      int         `json:"seat"`
	Name      string      `json:"name"`
	Hand      []card.Card `json:"hand"`
	Playable  []bool      `json:"playable,omitempty"`
	Bet       int         `json:"bet"`
	TricksWon int         `json:"tricks_won"`
	Score     int         `json:"score"`
}

// PlayableIndexes returns the hand positions flagged playable in the view.
func (v PlayerView) PlayableIndexes() []int {
	var out []int
	for i, ok := range v.Playable {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// DecisionProvider answers the decisions the game cannot take by itself.
// Every call blocks the game until it returns.
type DecisionProvider interface {
	// ChooseTrumpSuit is asked of the dealer when a Wizard is flipped. It must
	// return one of card.StandardSuits.
	ChooseTrumpSuit(ctx context.Context, dealer PlayerView) (card.Suit, error)

	// ChooseBet must return a number of tricks in [0, tricks].
	ChooseBet(ctx context.Context, player PlayerView, tricks int) (int, error)

	// ChoosePlayIndex must return the hand index of a card flagged playable.
	ChoosePlayIndex(ctx context.Context, player PlayerView) (int, error)
}

// Seats dispatches each decision to the provider sitting at the view's seat,
// so humans and bots can share a table.
type Seats []DecisionProvider

func (s Seats) at(seat int) (DecisionProvider, error) {
	if seat < 0 || seat >= len(s) || s[seat] == nil {
		return nil, fmt.Errorf("no decision provider for seat %d", seat)
	}
	return s[seat], nil
}

func (s Seats) ChooseTrumpSuit(ctx context.Context, dealer PlayerView) (card.Suit, error) {
	p, err := s.at(dealer.Seat)
	if err != nil {
		return card.NoSuit, err
	}
	return p.ChooseTrumpSuit(ctx, dealer)
}

func (s Seats) ChooseBet(ctx context.Context, player PlayerView, tricks int) (int, error) {
	p, err := s.at(player.Seat)
	if err != nil {
		return 0, err
	}
	return p.ChooseBet(ctx, player, tricks)
}

func (s Seats) ChoosePlayIndex(ctx context.Context, player PlayerView) (int, error) {
	p, err := s.at(player.Seat)
	if err != nil {
		return 0, err
	}
	return p.ChoosePlayIndex(ctx, player)
}
