package application

import (
	"context"
	"crypto/ed25519"
	"errors"
	"testing"
	"time"

	"github.com/luca-patrignani/wizard/bot"
	"github.com/luca-patrignani/wizard/config"
	"github.com/luca-patrignani/wizard/domain/wizard"
)

// stubborn answers bets out of range a fixed number of times before
// deferring to the greedy bot. A negative budget never gives in.
type stubborn struct {
	bot.Greedy
	refusals int
	asked    int
}

func (s *stubborn) ChooseBet(ctx context.Context, player wizard.PlayerView, tricks int) (int, error) {
	s.asked++
	if s.refusals != 0 {
		s.refusals--
		return tricks + 1, nil
	}
	return s.Greedy.ChooseBet(ctx, player, tricks)
}

func seededConfig(humans ...string) config.Config {
	seed := int64(3)
	c := config.Default()
	c.Players = humans
	c.Seed = &seed
	c.MaxAttempts = 3
	return c
}

func TestNewTableValidates(t *testing.T) {
	c := seededConfig()
	c.MaxAttempts = 0
	if _, err := NewTable(c, nil); err == nil {
		t.Fatal("expected invalid config to be rejected")
	}
	if _, err := NewTable(seededConfig("Ann"), nil); err == nil {
		t.Fatal("expected missing human provider to be rejected")
	}
}

func TestPlayBotsOnly(t *testing.T) {
	var events int
	counter := wizard.ObserverFunc(func(e wizard.Event) error {
		events++
		return nil
	})
	table, err := NewTable(seededConfig(), nil, WithObserver(counter), WithRetryDelay(time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	winners, err := table.Play(context.Background())
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if len(winners) == 0 {
		t.Fatal("expected winners")
	}
	if table.Game().Phase() != wizard.PhaseEnded {
		t.Errorf("expected game to be over, phase %s", table.Game().Phase())
	}
	if got := table.Ledger().Len() - 1; got != events {
		t.Errorf("ledger holds %d events, observer saw %d", got, events)
	}
	latest, err := table.Ledger().GetLatest()
	if err != nil {
		t.Fatal(err)
	}
	if latest.Event.Kind != wizard.EventGameOver || latest.GameID != table.Game().ID() {
		t.Errorf("unexpected last block %+v", latest)
	}
}

// TestPlayRetriesRefusedDecision verifies that an illegal bet is asked again
// until the seat answers legally.
func TestPlayRetriesRefusedDecision(t *testing.T) {
	human := &stubborn{refusals: 2}
	table, err := NewTable(seededConfig("Ann"), []wizard.DecisionProvider{human}, WithRetryDelay(time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := table.Play(context.Background()); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	rounds := table.Game().MaxRounds()
	if human.asked != rounds+2 {
		t.Errorf("expected %d bet requests, got %d", rounds+2, human.asked)
	}
}

func TestPlayGivesUpAfterMaxAttempts(t *testing.T) {
	human := &stubborn{refusals: -1}
	table, err := NewTable(seededConfig("Ann"), []wizard.DecisionProvider{human}, WithRetryDelay(time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	_, err = table.Play(context.Background())
	if !errors.Is(err, wizard.ErrInvalidBet) {
		t.Fatalf("expected ErrInvalidBet, got %v", err)
	}
	if human.asked != 3 {
		t.Errorf("expected 3 attempts, got %d", human.asked)
	}
	if table.Game().Phase() != wizard.PhaseBetting {
		t.Errorf("game should wait for the bet, phase %s", table.Game().Phase())
	}
}

func TestPlayCancelled(t *testing.T) {
	table, err := NewTable(seededConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := table.Play(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSignedLedger(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	table, err := NewTable(seededConfig(), nil, WithSigner(priv), WithGameOptions(wizard.WithShufflePasses(1)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := table.Play(context.Background()); err != nil {
		t.Fatal(err)
	}
	b, _ := table.Ledger().GetByIndex(1)
	if len(b.Signature) == 0 {
		t.Fatal("expected signed blocks")
	}
}
