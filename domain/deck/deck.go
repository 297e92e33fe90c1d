package deck

import (
	"errors"

	"github.com/luca-patrignani/wizard/domain/card"
)

// ErrEmptyDeck is returned by Deal and Peek when no cards remain.
var ErrEmptyDeck = errors.New("no cards remaining")

// Deck is an ordered stack of cards. Deal and Return both operate on the top,
// which is the end of the underlying slice.
type Deck struct {
	cards  []card.Card
	size   int
	source Source
}

type option func(Deck) Deck

// WithSource sets the random source used by Shuffle.
func WithSource(src Source) option {
	return func(d Deck) Deck {
		d.source = src
		return d
	}
}

// New builds a deck holding a copy of cards. The number of cards given is the
// fixed total the deck accounts for for the rest of its life.
func New(cards []card.Card, opts ...option) *Deck {
	d := Deck{
		cards: append([]card.Card(nil), cards...),
		size:  len(cards),
	}
	for _, opt := range opts {
		d = opt(d)
	}
	if d.source == nil {
		d.source = NewTimeSource()
	}
	return &d
}

// NewStandard returns a 52-card deck.
func NewStandard(opts ...option) *Deck {
	return New(card.StandardDeck(), opts...)
}

// NewWizard returns the 60-card deck with Wizards and Jesters.
func NewWizard(opts ...option) *Deck {
	return New(card.WizardDeck(), opts...)
}

// Deal removes and returns the top card.
func (d *Deck) Deal() (card.Card, error) {
	n := len(d.cards)
	if n == 0 {
		return card.Card{}, ErrEmptyDeck
	}
	c := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return c, nil
}

// Return puts c back on top of the deck, so the next Deal draws it again.
func (d *Deck) Return(c card.Card) {
	d.cards = append(d.cards, c)
}

// Peek deals the top card and immediately returns it.
func (d *Deck) Peek() (card.Card, error) {
	c, err := d.Deal()
	if err != nil {
		return card.Card{}, err
	}
	d.Return(c)
	return c, nil
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Size returns the total number of cards the deck was built with, wherever
// they currently are.
func (d *Deck) Size() int {
	return d.size
}

// Cards returns a copy of the deck contents, bottom first.
func (d *Deck) Cards() []card.Card {
	return append([]card.Card(nil), d.cards...)
}
