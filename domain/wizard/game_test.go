package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/luca-patrignani/wizard/domain/card"
	"github.com/luca-patrignani/wizard/domain/deck"
)

// firstPlayable names a fixed trump, bets a fixed amount and always plays the
// first playable card.
type firstPlayable struct {
	trump     card.Suit
	bet       int
	trumpAsks int
}

func (f *firstPlayable) ChooseTrumpSuit(ctx context.Context, dealer PlayerView) (card.Suit, error) {
	f.trumpAsks++
	return f.trump, nil
}

func (f *firstPlayable) ChooseBet(ctx context.Context, player PlayerView, tricks int) (int, error) {
	return min(f.bet, tricks), nil
}

func (f *firstPlayable) ChoosePlayIndex(ctx context.Context, player PlayerView) (int, error) {
	idx := player.PlayableIndexes()
	if len(idx) == 0 {
		return -1, nil
	}
	return idx[0], nil
}

// identity leaves the deck order untouched when shuffling.
type identity struct{}

func (identity) Intn(n int) int { return n - 1 }

func stackedDeck(cards ...card.Card) *deck.Deck {
	return deck.New(cards, deck.WithSource(identity{}))
}

func cardsInPlay(g *Game) int {
	total := g.deck.Remaining()
	for _, p := range g.players {
		total += len(p.Hand)
	}
	return total
}

func TestNewGameNoPlayers(t *testing.T) {
	if _, err := NewGame(nil); !errors.Is(err, ErrNoPlayers) {
		t.Fatalf("expected ErrNoPlayers, got %v", err)
	}
}

func TestMaxRounds(t *testing.T) {
	tests := []struct {
		players int
		deck    *deck.Deck
		want    int
	}{
		{3, deck.NewWizard(), 20},
		{4, deck.NewWizard(), 15},
		{7, deck.NewWizard(), 8},
		{4, deck.NewStandard(), 13},
	}
	for _, tt := range tests {
		names := make([]string, tt.players)
		for i := range names {
			names[i] = string(rune('A' + i))
		}
		g, err := NewGame(names, WithDeck(tt.deck))
		if err != nil {
			t.Fatal(err)
		}
		if g.MaxRounds() != tt.want {
			t.Errorf("%d players, %d cards: expected %d rounds, got %d", tt.players, tt.deck.Size(), tt.want, g.MaxRounds())
		}
	}
}

func TestStrictSizing(t *testing.T) {
	d := stackedDeck(mk(card.Spades, card.Two))
	if _, err := NewGame([]string{"a", "b"}, WithDeck(d), WithStrictSizing()); !errors.Is(err, ErrDeckTooSmall) {
		t.Fatalf("expected ErrDeckTooSmall, got %v", err)
	}
	g, err := NewGame([]string{"a", "b"}, WithDeck(stackedDeck(mk(card.Spades, card.Two))))
	if err != nil {
		t.Fatal(err)
	}
	if g.Phase() != PhaseEnded {
		t.Fatalf("a game with zero rounds starts ended, got %s", g.Phase())
	}
}

func TestInitialSeating(t *testing.T) {
	g, err := NewGame([]string{"T", "C", "CL"})
	if err != nil {
		t.Fatal(err)
	}
	if g.Dealer() != 0 || g.FirstPlayer() != 1 {
		t.Fatalf("expected dealer 0 and first player 1, got %d and %d", g.Dealer(), g.FirstPlayer())
	}
	if g.Phase() != PhaseDeal {
		t.Fatalf("expected deal phase, got %s", g.Phase())
	}
}

func TestFullGameInvariants(t *testing.T) {
	names := []string{"T", "C", "CL"}
	var g *Game
	var failures []string
	tricksPerRound := map[int]int{}
	lastRound := -1

	check := ObserverFunc(func(e Event) error {
		if got := cardsInPlay(g); got != card.WizardSize {
			failures = append(failures, string(e.Kind)+": conservation broken")
		}
		if e.Round < lastRound {
			failures = append(failures, "round went backwards")
		}
		lastRound = e.Round
		switch e.Kind {
		case EventRoundDealt:
			if g.Dealer() != e.Round%len(names) {
				failures = append(failures, "dealer is not round mod players")
			}
			for _, p := range g.players {
				if len(p.Hand) != e.Round+1 {
					failures = append(failures, "wrong hand size")
				}
			}
		case EventTrickWon:
			tricksPerRound[e.Round]++
			if g.Trick() > g.Round() {
				failures = append(failures, "trick index exceeded round")
			}
		}
		return nil
	})

	var err error
	g, err = NewGame(names, WithDeck(deck.NewWizard(deck.WithSource(deck.NewMathSource(11)))), WithObserver(check))
	if err != nil {
		t.Fatal(err)
	}
	p := &firstPlayable{trump: card.Clubs, bet: 1}
	ctx := context.Background()

	for g.Phase() != PhaseEnded {
		if err := g.Step(ctx, p); err != nil {
			t.Fatalf("round %d: %v", g.Round(), err)
		}
	}
	for _, f := range failures {
		t.Error(f)
	}
	if lastRound != g.MaxRounds() {
		t.Errorf("expected game over at round %d, got %d", g.MaxRounds(), lastRound)
	}
	for r := 0; r < g.MaxRounds(); r++ {
		if tricksPerRound[r] != r+1 {
			t.Errorf("round %d: expected %d tricks, got %d", r, r+1, tricksPerRound[r])
		}
	}
	if g.DeckRemaining() != card.WizardSize {
		t.Errorf("every card must be back in the deck, %d are", g.DeckRemaining())
	}
	if len(g.Winners()) == 0 {
		t.Error("expected at least one winner")
	}
}

func TestTrickWinnerLeadsNext(t *testing.T) {
	g, err := NewGame([]string{"a", "b", "c"}, WithDeck(deck.NewWizard(deck.WithSource(deck.NewMathSource(5)))))
	if err != nil {
		t.Fatal(err)
	}
	var winner = -1
	g.observers = append(g.observers, ObserverFunc(func(e Event) error {
		if e.Kind == EventTrickWon {
			winner = e.Seat
		}
		return nil
	}))
	p := &firstPlayable{trump: card.Spades}
	ctx := context.Background()
	checked := 0
	for g.Phase() != PhaseEnded && g.Round() < 6 {
		winner = -1
		if err := g.Step(ctx, p); err != nil {
			t.Fatal(err)
		}
		if winner != -1 && g.Phase() == PhasePlaying {
			if g.FirstPlayer() != winner || g.CurrentSeat() != winner {
				t.Fatalf("expected seat %d to lead, first=%d current=%d", winner, g.FirstPlayer(), g.CurrentSeat())
			}
			checked++
		}
	}
	if checked == 0 {
		t.Fatal("no mid-round trick was checked")
	}
}

func TestBettingValidation(t *testing.T) {
	g, err := NewGame([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := g.Deal(); err != nil {
		t.Fatal(err)
	}
	if err := g.ResolveTrump(ctx, &firstPlayable{trump: card.Hearts}); err != nil {
		t.Fatal(err)
	}
	seat := g.CurrentSeat()
	if seat != 1 {
		t.Fatalf("betting starts at the first player, got seat %d", seat)
	}
	if err := g.PlaceBet(seat, 2); !errors.Is(err, ErrInvalidBet) {
		t.Fatalf("expected ErrInvalidBet, got %v", err)
	}
	if err := g.PlaceBet(seat, -1); !errors.Is(err, ErrInvalidBet) {
		t.Fatalf("expected ErrInvalidBet, got %v", err)
	}
	if !IsRecoverable(g.PlaceBet(seat, 5)) {
		t.Fatal("invalid bets must be recoverable")
	}
	if err := g.PlaceBet(0, 0); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if g.CurrentSeat() != seat || g.Phase() != PhaseBetting {
		t.Fatal("failed bets must not advance the game")
	}
	if err := g.PlaceBet(seat, 1); err != nil {
		t.Fatal(err)
	}
	if err := g.PlaceBet(0, 0); err != nil {
		t.Fatal(err)
	}
	if g.Phase() != PhasePlaying {
		t.Fatalf("expected playing phase, got %s", g.Phase())
	}
	if _, err := g.Play(0, 0); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
}

func TestIllegalPlayLeavesStateUnchanged(t *testing.T) {
	// Deal pops from the top: seat 1 gets 2♠, seat 0 gets 3♥, 5♣ is flipped.
	d := stackedDeck(
		mk(card.Clubs, card.Five), // flip -> clubs trump
		mk(card.Hearts, card.Three),
		mk(card.Spades, card.Two),
	)
	g, err := NewGame([]string{"a", "b"}, WithDeck(d))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := g.Deal(); err != nil {
		t.Fatal(err)
	}
	if err := g.ResolveTrump(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if g.Trump() != card.Clubs {
		t.Fatalf("expected clubs trump, got %v", g.Trump())
	}
	if err := g.PlaceBet(1, 1); err != nil {
		t.Fatal(err)
	}
	if err := g.PlaceBet(0, 0); err != nil {
		t.Fatal(err)
	}
	before := cardsInPlay(g)
	if _, err := g.Play(1, 3); !errors.Is(err, ErrIllegalPlay) {
		t.Fatalf("expected ErrIllegalPlay, got %v", err)
	}
	if cardsInPlay(g) != before || len(g.players[1].Hand) != 1 || g.CurrentSeat() != 1 {
		t.Fatal("illegal play changed the game")
	}
	played, err := g.Play(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if played != mk(card.Spades, card.Two) {
		t.Fatalf("seat 1 should hold the top card, played %v", played)
	}
	if g.Lead() != card.Spades {
		t.Fatalf("expected spades lead, got %v", g.Lead())
	}
	if _, err := g.Play(0, 0); err != nil {
		t.Fatal(err)
	}
	// 3♥ is neither spades nor clubs: 2♠ keeps the trick, seat 1 made its bet.
	if g.players[1].Score != 30 || g.players[0].Score != 20 {
		t.Fatalf("unexpected scores %d and %d", g.players[0].Score, g.players[1].Score)
	}
	if g.Round() != 1 || g.Phase() != PhaseEnded {
		t.Fatalf("3 cards for 2 players is a single round, got round %d phase %s", g.Round(), g.Phase())
	}
}

func TestTrumpResolution(t *testing.T) {
	tests := []struct {
		name      string
		flip      card.Card
		pick      card.Suit
		want      card.Suit
		wantAsked int
		wantErr   error
	}{
		{name: "jester means no trump", flip: card.NewJester(), want: card.NoSuit},
		{name: "standard card sets trump", flip: mk(card.Diamonds, card.Queen), want: card.Diamonds},
		{name: "wizard lets dealer pick", flip: card.NewWizard(), pick: card.Hearts, want: card.Hearts, wantAsked: 1},
		{name: "dealer must pick a standard suit", flip: card.NewWizard(), pick: card.Jester, wantAsked: 1, wantErr: ErrInvalidTrump},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := stackedDeck(tt.flip, mk(card.Spades, card.Four), mk(card.Spades, card.Five))
			g, err := NewGame([]string{"a", "b"}, WithDeck(d))
			if err != nil {
				t.Fatal(err)
			}
			if err := g.Deal(); err != nil {
				t.Fatal(err)
			}
			p := &firstPlayable{trump: tt.pick}
			err = g.ResolveTrump(context.Background(), p)
			if p.trumpAsks != tt.wantAsked {
				t.Errorf("expected %d trump questions, got %d", tt.wantAsked, p.trumpAsks)
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if g.Phase() != PhaseTrump || g.DeckRemaining() != 1 {
					t.Fatal("a rejected pick must leave the flip in place")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if g.Trump() != tt.want {
				t.Fatalf("expected trump %v, got %v", tt.want, g.Trump())
			}
			if g.DeckRemaining() != 1 {
				t.Fatalf("the flipped card must go back to the deck, %d left", g.DeckRemaining())
			}
			snap := g.Snapshot()
			if snap.TrumpCard == nil || *snap.TrumpCard != tt.flip {
				t.Fatalf("expected flipped card %v in snapshot, got %v", tt.flip, snap.TrumpCard)
			}
		})
	}
}

func TestTrumpWithEmptyDeck(t *testing.T) {
	d := stackedDeck(mk(card.Spades, card.Four), mk(card.Spades, card.Five))
	g, err := NewGame([]string{"a", "b"}, WithDeck(d))
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Deal(); err != nil {
		t.Fatal(err)
	}
	if err := g.ResolveTrump(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if g.Trump() != card.NoSuit {
		t.Fatalf("expected no trump, got %v", g.Trump())
	}
}

func TestWrongPhase(t *testing.T) {
	g, err := NewGame([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.PlaceBet(1, 0); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("expected ErrWrongPhase, got %v", err)
	}
	if err := g.ResolveTrump(context.Background(), nil); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("expected ErrWrongPhase, got %v", err)
	}
}

func TestStepHonoursContext(t *testing.T) {
	g, err := NewGame([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := g.Step(ctx, &firstPlayable{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if g.Phase() != PhaseDeal {
		t.Fatal("a cancelled step must not advance the game")
	}
}

func TestRunReturnsWinners(t *testing.T) {
	g, err := NewGame([]string{"a", "b", "c", "d"}, WithDeck(deck.NewWizard(deck.WithSource(deck.NewMathSource(3)))))
	if err != nil {
		t.Fatal(err)
	}
	winners, err := g.Run(context.Background(), &firstPlayable{trump: card.Diamonds})
	if err != nil {
		t.Fatal(err)
	}
	if len(winners) == 0 {
		t.Fatal("expected winners")
	}
	best := winners[0].Score
	for _, p := range g.Players() {
		if p.Score > best {
			t.Fatalf("%s scored %d, above winning score %d", p.Name, p.Score, best)
		}
	}
	if err := g.Step(context.Background(), &firstPlayable{}); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestWinnersKeepTies(t *testing.T) {
	g, err := NewGame([]string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	g.players[0].Score = 50
	g.players[1].Score = 50
	g.players[2].Score = 30
	winners := g.Winners()
	if len(winners) != 2 {
		t.Fatalf("expected 2 winners, got %d", len(winners))
	}
	if winners[0].Name != "a" || winners[1].Name != "b" {
		t.Fatalf("unexpected winners %v", winners)
	}
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	g, err := NewGame([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Deal(); err != nil {
		t.Fatal(err)
	}
	snap := g.Snapshot()
	snap.Players[0].Hand[0] = card.NewWizard()
	snap.Players[1].Hand = nil
	if len(g.players[1].Hand) != 1 {
		t.Fatal("snapshot aliases hand memory")
	}
	if snap.Phase != PhaseTrump || snap.CurrentSeat != g.Dealer() {
		t.Fatalf("unexpected snapshot phase %s seat %d", snap.Phase, snap.CurrentSeat)
	}
}
