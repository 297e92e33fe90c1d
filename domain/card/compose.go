package card

import "github.com/paulhankin/poker"

// StandardSize and WizardSize are the card counts of the two deck variants.
const (
	StandardSize = 52
	WizardSize   = 60
	specialCount = 4
)

// StandardDeck returns the 52 standard cards in the evaluator's order: clubs,
// diamonds, hearts, spades, each from ace to king.
func StandardDeck() []Card {
	cards := make([]Card, 0, StandardSize)
	for _, pc := range poker.Cards {
		c, err := fromPoker(pc)
		if err != nil {
			panic(err)
		}
		cards = append(cards, c)
	}
	return cards
}

// WizardDeck returns the standard cards followed by 4 Wizards and 4 Jesters.
func WizardDeck() []Card {
	cards := StandardDeck()
	for i := 0; i < specialCount; i++ {
		cards = append(cards, NewWizard(), NewJester())
	}
	return cards
}
