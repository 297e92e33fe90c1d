package bot

import (
	"context"
	"errors"

	"github.com/luca-patrignani/wizard/domain/card"
	"github.com/luca-patrignani/wizard/domain/wizard"
)

var ErrScriptExhausted = errors.New("script exhausted")

// Scripted answers decisions from fixed queues, in order. A queue that runs
// dry yields ErrScriptExhausted.
type Scripted struct {
	Trumps []card.Suit
	Bets   []int
	Plays  []int
}

func (s *Scripted) ChooseTrumpSuit(ctx context.Context, dealer wizard.PlayerView) (card.Suit, error) {
	if len(s.Trumps) == 0 {
		return card.NoSuit, ErrScriptExhausted
	}
	suit := s.Trumps[0]
	s.Trumps = s.Trumps[1:]
	return suit, nil
}

func (s *Scripted) ChooseBet(ctx context.Context, player wizard.PlayerView, tricks int) (int, error) {
	if len(s.Bets) == 0 {
		return 0, ErrScriptExhausted
	}
	bet := s.Bets[0]
	s.Bets = s.Bets[1:]
	return bet, nil
}

func (s *Scripted) ChoosePlayIndex(ctx context.Context, player wizard.PlayerView) (int, error) {
	if len(s.Plays) == 0 {
		return 0, ErrScriptExhausted
	}
	index := s.Plays[0]
	s.Plays = s.Plays[1:]
	return index, nil
}
