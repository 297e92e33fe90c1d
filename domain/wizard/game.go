package wizard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/luca-patrignani/wizard/domain/card"
	"github.com/luca-patrignani/wizard/domain/deck"
)

// Phase is the stage of the round state machine.
type Phase string

const (
	PhaseDeal    Phase = "deal"
	PhaseTrump   Phase = "trump"
	PhaseBetting Phase = "betting"
	PhasePlaying Phase = "playing"
	PhaseEnded   Phase = "ended"
)

const defaultShufflePasses = 3

// Game is the authoritative state of one Wizard game.
type Game struct {
	id        uuid.UUID
	deck      *deck.Deck
	players   []*Player
	maxRounds int

	round  int
	trick  int
	dealer int
	first  int
	turn   int // offset from first of the seat whose decision is pending
	phase  Phase

	trump     card.Suit
	trumpCard card.Card
	current   *Trick
	lastTrick *TrickResult

	passes    int
	strict    bool
	logger    *slog.Logger
	observers []Observer
}

// Option configures a Game in NewGame.
type Option func(Game) Game

// WithDeck plays the game with d instead of a fresh 60-card Wizard deck.
func WithDeck(d *deck.Deck) Option {
	return func(g Game) Game {
		g.deck = d
		return g
	}
}

// WithID sets the game identifier reported in snapshots and events.
func WithID(id uuid.UUID) Option {
	return func(g Game) Game {
		g.id = id
		return g
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l *slog.Logger) Option {
	return func(g Game) Game {
		if l != nil {
			g.logger = l
		}
		return g
	}
}

// WithObserver registers an observer of game events.
func WithObserver(o Observer) Option {
	return func(g Game) Game {
		g.observers = append(g.observers, o)
		return g
	}
}

// WithShufflePasses sets how many times the deck is shuffled before each deal.
// Values below 1 are raised to 1.
func WithShufflePasses(n int) Option {
	return func(g Game) Game {
		g.passes = max(n, 1)
		return g
	}
}

// WithStrictSizing rejects player counts for which the deck cannot deal a
// single round.
func WithStrictSizing() Option {
	return func(g Game) Game {
		g.strict = true
		return g
	}
}

// NewGame seats one player per name, in order. The game lasts deck size /
// player count rounds (integer division).
func NewGame(names []string, opts ...Option) (*Game, error) {
	if len(names) == 0 {
		return nil, ErrNoPlayers
	}
	g := Game{
		id:     uuid.New(),
		passes: defaultShufflePasses,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		g = opt(g)
	}
	if g.deck == nil {
		g.deck = deck.NewWizard()
	}
	if g.strict && len(names) > g.deck.Size() {
		return nil, fmt.Errorf("%w: %d players, %d cards", ErrDeckTooSmall, len(names), g.deck.Size())
	}
	for _, name := range names {
		g.players = append(g.players, NewPlayer(name))
	}
	g.maxRounds = g.deck.Size() / len(g.players)
	g.startRound()
	g.phase = PhaseDeal
	if g.maxRounds == 0 {
		g.phase = PhaseEnded
	}
	return &g, nil
}

// startRound places the dealer and the first player for the current round.
func (g *Game) startRound() {
	n := len(g.players)
	g.dealer = g.round % n
	g.first = (g.dealer + 1) % n
	g.trick = 0
	g.turn = 0
}

// ID identifies the game in events, snapshots and the ledger.
func (g *Game) ID() uuid.UUID {
	return g.id
}

func (g *Game) Phase() Phase {
	return g.phase
}

// Round is the zero-based current round.
func (g *Game) Round() int {
	return g.round
}

// Trick is the zero-based trick within the round.
func (g *Game) Trick() int {
	return g.trick
}

func (g *Game) MaxRounds() int {
	return g.maxRounds
}

func (g *Game) Dealer() int {
	return g.dealer
}

// FirstPlayer is the seat that bets first and leads the current trick.
func (g *Game) FirstPlayer() int {
	return g.first
}

// Trump is card.NoSuit when the round has no trump.
func (g *Game) Trump() card.Suit {
	return g.trump
}

func (g *Game) PlayerCount() int {
	return len(g.players)
}

func (g *Game) DeckRemaining() int {
	return g.deck.Remaining()
}

// TricksThisRound is the number of cards dealt to, and tricks played by, each
// player in the current round.
func (g *Game) TricksThisRound() int {
	return g.round + 1
}

// Lead returns the lead suit of the trick in progress, card.NoSuit if unset.
func (g *Game) Lead() card.Suit {
	if g.current == nil {
		return card.NoSuit
	}
	return g.current.Lead()
}

// CurrentSeat returns the seat whose decision is pending, or -1 when the next
// step needs no player decision.
func (g *Game) CurrentSeat() int {
	switch g.phase {
	case PhaseTrump:
		return g.dealer
	case PhaseBetting, PhasePlaying:
		return (g.first + g.turn) % len(g.players)
	default:
		return -1
	}
}

// View returns the read-only picture of the player at seat.
func (g *Game) View(seat int) PlayerView {
	p := g.players[seat]
	v := PlayerView{
		Seat:      seat,
		Name:      p.Name,
		Hand:      append([]card.Card(nil), p.Hand...),
		Bet:       p.Bet,
		TricksWon: p.TricksWon,
		Score:     p.Score,
	}
	if p.playable != nil {
		v.Playable = append([]bool(nil), p.playable...)
	}
	return v
}

// Players returns a view of every seat in order.
func (g *Game) Players() []PlayerView {
	views := make([]PlayerView, len(g.players))
	for i := range g.players {
		views[i] = g.View(i)
	}
	return views
}

func (g *Game) expect(phase Phase) error {
	if g.phase == PhaseEnded {
		return ErrGameOver
	}
	if g.phase != phase {
		return fmt.Errorf("%w: in %s, expected %s", ErrWrongPhase, g.phase, phase)
	}
	return nil
}

// Deal shuffles the deck and deals round+1 cards to every player, one at a
// time, starting from the first player.
func (g *Game) Deal() error {
	if err := g.expect(PhaseDeal); err != nil {
		return err
	}
	for i := 0; i < g.passes; i++ {
		g.deck.Shuffle()
	}
	n := len(g.players)
	for k := 0; k < g.TricksThisRound(); k++ {
		for i := 0; i < n; i++ {
			seat := (g.first + i) % n
			c, err := g.deck.Deal()
			if err != nil {
				return fmt.Errorf("dealing round %d: %w", g.round+1, err)
			}
			g.players[seat].Receive(c)
		}
	}
	g.phase = PhaseTrump
	g.logger.Info("round dealt", "round", g.round+1, "dealer", g.players[g.dealer].Name, "cards", g.TricksThisRound())
	g.emit(Event{Kind: EventRoundDealt, Seat: g.dealer, Player: g.players[g.dealer].Name})
	return nil
}

// ResolveTrump flips the top card of the deck and puts it back. A Jester means
// no trump, a Wizard lets the dealer name one through p, any other card makes
// its suit trump. With an empty deck the round has no trump.
func (g *Game) ResolveTrump(ctx context.Context, p DecisionProvider) error {
	if err := g.expect(PhaseTrump); err != nil {
		return err
	}
	trump := card.NoSuit
	var flipped card.Card
	if g.deck.Remaining() > 0 {
		c, err := g.deck.Peek()
		if err != nil {
			return err
		}
		flipped = c
		switch {
		case c.IsJester():
		case c.IsWizard():
			if p == nil {
				return fmt.Errorf("wizard flipped but no decision provider for dealer %s", g.players[g.dealer].Name)
			}
			suit, err := p.ChooseTrumpSuit(ctx, g.View(g.dealer))
			if err != nil {
				return fmt.Errorf("trump pick from %s: %w", g.players[g.dealer].Name, err)
			}
			if !suit.IsStandard() {
				return fmt.Errorf("%w: %s", ErrInvalidTrump, suit)
			}
			trump = suit
		default:
			trump = c.Suit()
		}
	}
	g.trump = trump
	g.trumpCard = flipped
	g.phase = PhaseBetting
	g.turn = 0

	e := Event{Kind: EventTrumpResolved, Seat: g.dealer, Player: g.players[g.dealer].Name, Suit: trump}
	if !flipped.IsZero() {
		e.Card = &flipped
	}
	g.logger.Info("trump resolved", "round", g.round+1, "flipped", flipped.String(), "trump", trump.String())
	g.emit(e)
	return nil
}

// PlaceBet records the bet of the player at seat, which must be the seat whose
// bet is pending. Bets outside [0, round+1] fail with ErrInvalidBet.
func (g *Game) PlaceBet(seat, bet int) error {
	if err := g.expect(PhaseBetting); err != nil {
		return err
	}
	if seat != g.CurrentSeat() {
		return fmt.Errorf("%w: seat %d, waiting for %d", ErrNotYourTurn, seat, g.CurrentSeat())
	}
	if bet < 0 || bet > g.TricksThisRound() {
		return fmt.Errorf("%w: %d outside [0, %d]", ErrInvalidBet, bet, g.TricksThisRound())
	}
	p := g.players[seat]
	p.RecordBet(bet)
	g.logger.Debug("bet placed", "player", p.Name, "bet", bet)
	g.emit(Event{Kind: EventBetPlaced, Seat: seat, Player: p.Name, Bet: bet})

	g.turn++
	if g.turn == len(g.players) {
		g.phase = PhasePlaying
		g.turn = 0
		g.current = NewTrick(g.trump)
		g.beginTurn()
	}
	return nil
}

// beginTurn recomputes the playable flags of the seat about to play.
func (g *Game) beginTurn() {
	g.players[g.CurrentSeat()].ComputePlayable(g.current.Lead())
}

// Play plays the card at index from the hand of the player at seat and
// evaluates it against the trick. It fails with ErrIllegalPlay if the card is
// not playable; the hand is left untouched in that case.
func (g *Game) Play(seat, index int) (card.Card, error) {
	if err := g.expect(PhasePlaying); err != nil {
		return card.Card{}, err
	}
	if seat != g.CurrentSeat() {
		return card.Card{}, fmt.Errorf("%w: seat %d, waiting for %d", ErrNotYourTurn, seat, g.CurrentSeat())
	}
	p := g.players[seat]
	c, err := p.Play(index)
	if err != nil {
		return card.Card{}, err
	}
	g.deck.Return(c)
	took := g.current.Evaluate(c, seat)
	p.ClearPlayable()
	g.logger.Debug("card played", "player", p.Name, "card", c.String(), "winning", took)
	g.emit(Event{Kind: EventCardPlayed, Seat: seat, Player: p.Name, Card: &c, Suit: g.current.Lead()})

	g.turn++
	if g.turn < len(g.players) {
		g.beginTurn()
		return c, nil
	}
	g.finishTrick()
	return c, nil
}

// finishTrick credits the trick winner, who leads the next trick, and closes
// the round once round+1 tricks are done.
func (g *Game) finishTrick() {
	seat, winning, _ := g.current.Winner()
	winner := g.players[seat]
	winner.WinTrick()
	g.lastTrick = &TrickResult{Plays: g.current.Plays(), Winner: seat, Card: winning}
	g.logger.Info("trick won", "round", g.round+1, "trick", g.trick+1, "player", winner.Name, "card", winning.String())
	g.emit(Event{Kind: EventTrickWon, Seat: seat, Player: winner.Name, Card: &winning, Suit: g.current.Lead()})

	g.first = seat
	for _, p := range g.players {
		p.ClearPlayable()
	}
	g.trick++
	g.turn = 0
	if g.trick < g.TricksThisRound() {
		g.current = NewTrick(g.trump)
		g.beginTurn()
		return
	}
	g.scoreRound()
	g.nextRound()
}

func (g *Game) scoreRound() {
	lines := make([]ScoreLine, len(g.players))
	for i, p := range g.players {
		delta := p.ScoreRound()
		lines[i] = ScoreLine{Name: p.Name, Bet: p.Bet, TricksWon: p.TricksWon, Delta: delta, Total: p.Score}
		g.logger.Info("round scored", "player", p.Name, "bet", p.Bet, "won", p.TricksWon, "score", p.Score)
	}
	g.emit(Event{Kind: EventRoundScored, Seat: -1, Scores: lines})
}

func (g *Game) nextRound() {
	g.round++
	g.trump = card.NoSuit
	g.trumpCard = card.Card{}
	g.current = nil
	for _, p := range g.players {
		p.ResetForRound(g.deck)
	}
	g.startRound()
	if g.round < g.maxRounds {
		g.phase = PhaseDeal
		return
	}
	g.phase = PhaseEnded
	var names []string
	for _, w := range g.Winners() {
		names = append(names, w.Name)
	}
	g.logger.Info("game over", "winners", names)
	g.emit(Event{Kind: EventGameOver, Seat: -1, Winners: names})
}

// Winners returns every player tied at the highest total score, in seat order.
func (g *Game) Winners() []PlayerView {
	var out []PlayerView
	for _, seat := range leaders(g.players) {
		out = append(out, g.View(seat))
	}
	return out
}

// leaders returns the seats holding the maximum score. Ties are all kept.
func leaders(players []*Player) []int {
	var seats []int
	for i, p := range players {
		switch {
		case len(seats) == 0 || p.Score > players[seats[0]].Score:
			seats = []int{i}
		case p.Score == players[seats[0]].Score:
			seats = append(seats, i)
		}
	}
	return seats
}

func (g *Game) emit(e Event) {
	e.GameID = g.id
	e.Round = g.round
	e.Trick = g.trick
	for _, o := range g.observers {
		if err := o.Observe(e); err != nil {
			g.logger.Warn("observer failed", "kind", e.Kind, "err", err)
		}
	}
}
