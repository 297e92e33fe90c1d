package wizard

import "github.com/luca-patrignani/wizard/domain/card"

// PlayedCard records a card and the seat that played it.
type PlayedCard struct {
	Seat int       `json:"seat"`
	Card card.Card `json:"card"`
}

// Trick holds the running state of a single trick.
type Trick struct {
	trump   card.Suit
	lead    card.Suit
	winning card.Card
	winner  int
	plays   []PlayedCard
}

// NewTrick starts an empty trick under trump. Pass card.NoSuit for a round
// without trump.
func NewTrick(trump card.Suit) *Trick {
	return &Trick{trump: trump, winner: -1}
}

// Evaluate applies a played card to the trick and reports whether it became
// the winning card. Rules are tried in order and the first match decides:
//
//  1. first card of the trick: wins, and sets the lead unless it is special
//  2. a Wizard is already winning: no change
//  3. the card is a Wizard: wins
//  4. a Jester is winning: any non-Jester wins and sets the lead
//  5. same suit as the winning card: wins only with a strictly higher rank
//  6. the card is trump: wins
//  7. otherwise: no change
func (t *Trick) Evaluate(c card.Card, seat int) bool {
	t.plays = append(t.plays, PlayedCard{Seat: seat, Card: c})

	win := false
	switch {
	case t.winner == -1:
		if !c.Suit().IsSpecial() {
			t.lead = c.Suit()
		}
		win = true
	case t.winning.IsWizard():
	case c.IsWizard():
		win = true
	case t.winning.IsJester():
		if !c.IsJester() {
			t.lead = c.Suit()
			win = true
		}
	case c.Suit() == t.winning.Suit():
		win = c.Rank() > t.winning.Rank()
	case t.trump != card.NoSuit && c.Suit() == t.trump:
		win = true
	}

	if win {
		t.winning = c
		t.winner = seat
	}
	return win
}

// Lead returns the suit players must follow, card.NoSuit while unset.
func (t *Trick) Lead() card.Suit {
	return t.lead
}

// Trump returns the trump suit the trick is played under.
func (t *Trick) Trump() card.Suit {
	return t.trump
}

// Winner returns the seat and card currently winning. ok is false before the
// first card is played.
func (t *Trick) Winner() (seat int, c card.Card, ok bool) {
	if t.winner == -1 {
		return -1, card.Card{}, false
	}
	return t.winner, t.winning, true
}

// Plays returns the cards played so far in seat order.
func (t *Trick) Plays() []PlayedCard {
	return append([]PlayedCard(nil), t.plays...)
}
