package card

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulhankin/poker"
	"github.com/pterm/pterm"
)

// Suit identifies one of the four standard suits or one of the two special
// pseudo-suits. The zero value NoSuit means "unset" and is used for an
// undefined lead or trump.
type Suit uint8

const (
	NoSuit Suit = iota
	Spades
	Hearts
	Clubs
	Diamonds
	Wizard // always wins the trick it is first played in
	Jester // always loses unless every card played is a Jester
)

// StandardSuits lists the suits a dealer may name as trump.
var StandardSuits = []Suit{Spades, Hearts, Clubs, Diamonds}

// IsStandard reports whether s is one of the four ranked suits.
func (s Suit) IsStandard() bool {
	return s >= Spades && s <= Diamonds
}

// IsSpecial reports whether s is Wizard or Jester.
func (s Suit) IsSpecial() bool {
	return s == Wizard || s == Jester
}

var suitNames = map[Suit]string{
	NoSuit:   "none",
	Spades:   "spades",
	Hearts:   "hearts",
	Clubs:    "clubs",
	Diamonds: "diamonds",
	Wizard:   "wizard",
	Jester:   "jester",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return fmt.Sprintf("suit(%d)", uint8(s))
}

// Symbol returns the glyph of the suit, colored the way a physical deck prints it.
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return pterm.Black("♠")
	case Hearts:
		return pterm.LightRed("♥")
	case Clubs:
		return pterm.Black("♣")
	case Diamonds:
		return pterm.LightRed("♦")
	case Wizard:
		return pterm.LightBlue("W")
	case Jester:
		return pterm.LightYellow("J")
	default:
		return "?"
	}
}

// ParseSuit converts a suit name (as produced by String) back to a Suit.
func ParseSuit(name string) (Suit, error) {
	for s, n := range suitNames {
		if n == name && s != NoSuit {
			return s, nil
		}
	}
	return NoSuit, fmt.Errorf("unknown suit %q", name)
}

func (s Suit) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Suit) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if name == "none" {
		*s = NoSuit
		return nil
	}
	parsed, err := ParseSuit(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Rank is the face of a standard card. Values follow the trick order
// 2 < 3 < ... < 10 < J < Q < K < A.
type Rank uint8

const (
	NoRank Rank = 0
	Two    Rank = 2
	Three  Rank = 3
	Four   Rank = 4
	Five   Rank = 5
	Six    Rank = 6
	Seven  Rank = 7
	Eight  Rank = 8
	Nine   Rank = 9
	Ten    Rank = 10
	Jack   Rank = 11
	Queen  Rank = 12
	King   Rank = 13
	Ace    Rank = 14
)

// Valid reports whether r is one of the 13 standard faces.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	case NoRank:
		return ""
	default:
		return fmt.Sprintf("%d", uint8(r))
	}
}

// ErrInvalidCard is returned when a suit/rank pair does not name a card.
var ErrInvalidCard = errors.New("invalid card")

// Card is an immutable playing card. Standard cards carry a rank, Wizards and
// Jesters never do.
type Card struct {
	suit Suit
	rank Rank
}

// New creates a standard card.
//
// Parameters:
//   - suit: one of Spades, Hearts, Clubs, Diamonds
//   - rank: Two through Ace
//
// Returns the Card or ErrInvalidCard if the pair is not a standard card.
func New(suit Suit, rank Rank) (Card, error) {
	if !suit.IsStandard() || !rank.Valid() {
		return Card{}, fmt.Errorf("%w: suit %s, rank %d", ErrInvalidCard, suit, uint8(rank))
	}
	pc, err := poker.MakeCard(pokerSuits[suit], pokerRank(rank))
	if err != nil {
		return Card{}, fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}
	return fromPoker(pc)
}

// MustNew is like New but panics on an invalid pair. Meant for fixed tables and tests.
func MustNew(suit Suit, rank Rank) Card {
	c, err := New(suit, rank)
	if err != nil {
		panic(err)
	}
	return c
}

// NewWizard returns a Wizard card.
func NewWizard() Card {
	return Card{suit: Wizard}
}

// NewJester returns a Jester card.
func NewJester() Card {
	return Card{suit: Jester}
}

// Suit returns the suit of the card.
func (c Card) Suit() Suit {
	return c.suit
}

// Rank returns the rank of a standard card, NoRank for specials.
func (c Card) Rank() Rank {
	return c.rank
}

func (c Card) IsWizard() bool { return c.suit == Wizard }

func (c Card) IsJester() bool { return c.suit == Jester }

// IsZero reports whether c is the zero Card, which names no card.
func (c Card) IsZero() bool {
	return c.suit == NoSuit
}

// String renders the rank followed by the colored suit glyph, e.g. "Q♥".
// Specials render as their glyph only.
func (c Card) String() string {
	if c.suit.IsSpecial() {
		return c.suit.Symbol()
	}
	if c.IsZero() {
		return "▓"
	}
	return c.rank.String() + c.suit.Symbol()
}

type cardJSON struct {
	Suit Suit   `json:"suit"`
	Rank string `json:"rank,omitempty"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{Suit: c.suit, Rank: c.rank.String()})
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var raw cardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Suit == Wizard:
		*c = NewWizard()
		return nil
	case raw.Suit == Jester:
		*c = NewJester()
		return nil
	}
	for r := Two; r <= Ace; r++ {
		if r.String() == raw.Rank {
			parsed, err := New(raw.Suit, r)
			if err != nil {
				return err
			}
			*c = parsed
			return nil
		}
	}
	return fmt.Errorf("%w: rank %q", ErrInvalidCard, raw.Rank)
}

// pokerSuits maps the standard suits onto the evaluator's suits.
var pokerSuits = map[Suit]poker.Suit{
	Clubs:    poker.Club,
	Diamonds: poker.Diamond,
	Hearts:   poker.Heart,
	Spades:   poker.Spade,
}

// pokerRank maps 2..14 onto the evaluator's ace-low 1..13 ranks.
func pokerRank(r Rank) poker.Rank {
	if r == Ace {
		return poker.Rank(1)
	}
	return poker.Rank(r)
}

// fromPoker converts an evaluator card back into a Card.
func fromPoker(pc poker.Card) (Card, error) {
	if !pc.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidCard, uint16(pc))
	}
	var suit Suit
	for s, ps := range pokerSuits {
		if ps == pc.Suit() {
			suit = s
		}
	}
	rank := Rank(pc.Rank())
	if pc.Rank() == 1 {
		rank = Ace
	}
	return Card{suit: suit, rank: rank}, nil
}
