package wizard

import (
	"context"
	"fmt"
)

// Step advances the game by one transition: a deal, a trump resolution, one
// bet or one card. Decisions are requested from p. A recoverable error leaves
// the game unchanged, so the next Step asks for the same decision again.
func (g *Game) Step(ctx context.Context, p DecisionProvider) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch g.phase {
	case PhaseDeal:
		return g.Deal()
	case PhaseTrump:
		return g.ResolveTrump(ctx, p)
	case PhaseBetting:
		seat := g.CurrentSeat()
		bet, err := p.ChooseBet(ctx, g.View(seat), g.TricksThisRound())
		if err != nil {
			return fmt.Errorf("bet from %s: %w", g.players[seat].Name, err)
		}
		return g.PlaceBet(seat, bet)
	case PhasePlaying:
		seat := g.CurrentSeat()
		index, err := p.ChoosePlayIndex(ctx, g.View(seat))
		if err != nil {
			return fmt.Errorf("play from %s: %w", g.players[seat].Name, err)
		}
		_, err = g.Play(seat, index)
		return err
	case PhaseEnded:
		return ErrGameOver
	default:
		return fmt.Errorf("unknown phase %q", g.phase)
	}
}

// Run steps the game until it ends and returns the winners. The first error
// stops the game where it is; the caller may resume with another Run.
func (g *Game) Run(ctx context.Context, p DecisionProvider) ([]PlayerView, error) {
	for g.phase != PhaseEnded {
		if err := g.Step(ctx, p); err != nil {
			return nil, err
		}
	}
	return g.Winners(), nil
}
