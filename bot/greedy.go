package bot

import (
	"context"

	"github.com/luca-patrignani/wizard/domain/card"
	"github.com/luca-patrignani/wizard/domain/wizard"
)

// Greedy bets on its strong cards and then plays to hit the bet exactly: it
// leads with its strongest card while it still needs tricks and dumps its
// weakest card once the bet is reached.
type Greedy struct{}

// strength orders cards for the heuristic. Wizards beat everything, Jesters
// lose to everything, standard cards go by rank.
func strength(c card.Card) int {
	switch {
	case c.IsWizard():
		return 100
	case c.IsJester():
		return 0
	default:
		return int(c.Rank())
	}
}

// ChooseTrumpSuit names the standard suit the dealer holds most of.
func (g *Greedy) ChooseTrumpSuit(ctx context.Context, dealer wizard.PlayerView) (card.Suit, error) {
	counts := make(map[card.Suit]int)
	for _, c := range dealer.Hand {
		if c.Suit().IsStandard() {
			counts[c.Suit()]++
		}
	}
	best := card.StandardSuits[0]
	for _, s := range card.StandardSuits[1:] {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best, nil
}

// ChooseBet counts Wizards and face cards from queen up.
func (g *Greedy) ChooseBet(ctx context.Context, player wizard.PlayerView, tricks int) (int, error) {
	bet := 0
	for _, c := range player.Hand {
		if strength(c) >= int(card.Queen) {
			bet++
		}
	}
	return min(bet, tricks), nil
}

func (g *Greedy) ChoosePlayIndex(ctx context.Context, player wizard.PlayerView) (int, error) {
	idx := player.PlayableIndexes()
	if len(idx) == 0 {
		return 0, errNothingPlayable
	}
	wantTricks := player.TricksWon < player.Bet
	pick := idx[0]
	for _, i := range idx[1:] {
		s, best := strength(player.Hand[i]), strength(player.Hand[pick])
		if (wantTricks && s > best) || (!wantTricks && s < best) {
			pick = i
		}
	}
	return pick, nil
}
