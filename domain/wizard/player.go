package wizard

import (
	"fmt"

	"github.com/luca-patrignani/wizard/domain/card"
)

// Returner takes cards back into a shared pool.
type Returner interface {
	Return(c card.Card)
}

// Player is a participant of the game.
type Player struct {
	Name      string
	Hand      []card.Card
	Bet       int
	TricksWon int
	Score     int

	// playable mirrors Hand by position. It is recomputed at the start of the
	// player's turn and cleared at the end of every trick and round.
	playable []bool
}

// NewPlayer returns a player with an empty hand and a zero score.
func NewPlayer(name string) *Player {
	return &Player{Name: name}
}

// Receive appends a dealt card to the hand.
func (p *Player) Receive(c card.Card) {
	p.Hand = append(p.Hand, c)
	p.ClearPlayable()
}

// ComputePlayable flags the cards that may legally be played against lead.
// With no lead, or a special lead, every card is playable. Otherwise cards of
// the lead suit and specials are playable; a hand holding neither may play
// anything.
func (p *Player) ComputePlayable(lead card.Suit) {
	p.playable = make([]bool, len(p.Hand))
	if lead == card.NoSuit || lead.IsSpecial() {
		p.setAllPlayable()
		return
	}
	matched, specials := 0, 0
	for i, c := range p.Hand {
		switch {
		case c.Suit() == lead:
			p.playable[i] = true
			matched++
		case c.Suit().IsSpecial():
			p.playable[i] = true
			specials++
		}
	}
	if matched == 0 && specials == 0 {
		p.setAllPlayable()
	}
}

func (p *Player) setAllPlayable() {
	for i := range p.playable {
		p.playable[i] = true
	}
}

// Playable reports whether the card at index i is currently flagged playable.
func (p *Player) Playable(i int) bool {
	return i >= 0 && i < len(p.playable) && p.playable[i]
}

// PlayableIndexes returns the hand positions currently flagged playable.
func (p *Player) PlayableIndexes() []int {
	var out []int
	for i := range p.Hand {
		if p.Playable(i) {
			out = append(out, i)
		}
	}
	return out
}

// ClearPlayable drops every playable flag.
func (p *Player) ClearPlayable() {
	p.playable = nil
}

// Play removes and returns the card at index. It fails with ErrIllegalPlay if
// the index is out of range or the card is not flagged playable.
func (p *Player) Play(index int) (card.Card, error) {
	if index < 0 || index >= len(p.Hand) {
		return card.Card{}, fmt.Errorf("%w: index %d out of range [0, %d)", ErrIllegalPlay, index, len(p.Hand))
	}
	if !p.Playable(index) {
		return card.Card{}, fmt.Errorf("%w: %v cannot be played now", ErrIllegalPlay, p.Hand[index])
	}
	c := p.Hand[index]
	p.Hand = append(p.Hand[:index], p.Hand[index+1:]...)
	p.playable = append(p.playable[:index], p.playable[index+1:]...)
	return c, nil
}

// RecordBet stores the number of tricks the player expects to win.
func (p *Player) RecordBet(n int) {
	p.Bet = n
}

// WinTrick credits the player with a trick.
func (p *Player) WinTrick() {
	p.TricksWon++
}

// ScoreRound applies the round result to the total score and returns the delta:
// 20 + 10·bet on an exact bet, −10 per trick of difference otherwise.
func (p *Player) ScoreRound() int {
	var delta int
	if p.TricksWon == p.Bet {
		delta = 20 + 10*p.Bet
	} else {
		diff := p.TricksWon - p.Bet
		if diff < 0 {
			diff = -diff
		}
		delta = -10 * diff
	}
	p.Score += delta
	return delta
}

// ResetForRound hands every remaining card back to pool and clears bet and
// tricks. Calling it repeatedly is harmless.
func (p *Player) ResetForRound(pool Returner) {
	for _, c := range p.Hand {
		pool.Return(c)
	}
	p.Hand = nil
	p.playable = nil
	p.Bet = 0
	p.TricksWon = 0
}
