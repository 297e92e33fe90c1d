package bot

import (
	"context"
	"errors"
	"math/rand"

	"github.com/luca-patrignani/wizard/domain/card"
	"github.com/luca-patrignani/wizard/domain/wizard"
)

var errNothingPlayable = errors.New("no playable card in hand")

// Random picks uniformly among the legal answers.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) ChooseTrumpSuit(ctx context.Context, dealer wizard.PlayerView) (card.Suit, error) {
	return card.StandardSuits[r.rng.Intn(len(card.StandardSuits))], nil
}

func (r *Random) ChooseBet(ctx context.Context, player wizard.PlayerView, tricks int) (int, error) {
	return r.rng.Intn(tricks + 1), nil
}

func (r *Random) ChoosePlayIndex(ctx context.Context, player wizard.PlayerView) (int, error) {
	idx := player.PlayableIndexes()
	if len(idx) == 0 {
		return 0, errNothingPlayable
	}
	return idx[r.rng.Intn(len(idx))], nil
}
