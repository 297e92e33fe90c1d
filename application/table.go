// Package application seats decision providers around a Wizard game and
// drives it to the end, recording every event in a ledger.
package application

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/luca-patrignani/wizard/config"
	"github.com/luca-patrignani/wizard/domain/wizard"
	"github.com/luca-patrignani/wizard/ledger"
)

// Table composes a game, its ledger and one decision provider per seat.
type Table struct {
	cfg         config.Config
	game        *wizard.Game
	chain       *ledger.Blockchain
	seats       wizard.Seats
	logger      *slog.Logger
	retryDelay  time.Duration
	observers   []wizard.Observer
	signer      ed25519.PrivateKey
	gameOptions []wizard.Option
}

type option func(*Table)

// WithLogger sets the logger shared by the table and its game.
func WithLogger(l *slog.Logger) option {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithRetryDelay sets the pause before a seat is asked again after an
// illegal answer.
func WithRetryDelay(d time.Duration) option {
	return func(t *Table) {
		if d > 0 {
			t.retryDelay = d
		}
	}
}

// WithObserver registers an extra observer of game events, next to the ledger.
func WithObserver(o wizard.Observer) option {
	return func(t *Table) {
		t.observers = append(t.observers, o)
	}
}

// WithSigner signs the ledger blocks with priv.
func WithSigner(priv ed25519.PrivateKey) option {
	return func(t *Table) {
		t.signer = priv
	}
}

// WithGameOptions passes extra options to wizard.NewGame after the ones
// derived from the configuration. The game ID, logger and observers are always
// set by the table.
func WithGameOptions(opts ...wizard.Option) option {
	return func(t *Table) {
		t.gameOptions = append(t.gameOptions, opts...)
	}
}

// NewTable builds the table described by cfg. humans holds one provider per
// human player, in the order of cfg.Players; bot seats get providers from
// cfg.BotStrategy.
func NewTable(cfg config.Config, humans []wizard.DecisionProvider, opts ...option) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(humans) != len(cfg.Players) {
		return nil, fmt.Errorf("expected %d human providers, got %d", len(cfg.Players), len(humans))
	}
	t := &Table{
		cfg:        cfg,
		logger:     slog.New(slog.DiscardHandler),
		retryDelay: 250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(t)
	}

	bots, err := cfg.BotProviders()
	if err != nil {
		return nil, err
	}
	t.seats = append(t.seats, humans...)
	t.seats = append(t.seats, bots...)
	for seat, name := range cfg.Seats() {
		kind := "human"
		if cfg.IsBot(seat) {
			kind = string(cfg.BotStrategy) + " bot"
		}
		t.logger.Debug("Seat taken", "seat", seat, "name", name, "kind", kind)
	}

	id := uuid.New()
	if t.signer != nil {
		t.chain = ledger.NewBlockchain(id, ledger.WithRecorder("table"), ledger.WithSigner(t.signer))
	} else {
		t.chain = ledger.NewBlockchain(id, ledger.WithRecorder("table"))
	}

	gameOpts := append(cfg.GameOptions(), t.gameOptions...)
	gameOpts = append(gameOpts,
		wizard.WithID(id),
		wizard.WithLogger(t.logger),
		wizard.WithObserver(t.chain),
	)
	for _, o := range t.observers {
		gameOpts = append(gameOpts, wizard.WithObserver(o))
	}
	t.game, err = wizard.NewGame(cfg.Seats(), gameOpts...)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Game returns the game being played.
func (t *Table) Game() *wizard.Game {
	return t.game
}

// Ledger returns the chain recording the game.
func (t *Table) Ledger() *ledger.Blockchain {
	return t.chain
}

// Seats returns the providers by seat.
func (t *Table) Seats() wizard.Seats {
	return t.seats
}

// step runs one game step. An illegal answer is retried, asking the same seat
// again, until cfg.MaxAttempts answers have been refused.
func (t *Table) step(ctx context.Context) error {
	b := retry.WithMaxRetries(uint64(t.cfg.MaxAttempts-1), retry.NewConstant(t.retryDelay))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		seat := t.game.CurrentSeat()
		err := t.game.Step(ctx, t.seats)
		if wizard.IsRecoverable(err) {
			t.logger.Warn("Decision refused, asking again", "seat", seat, "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
}

// Play drives the game to the end and returns the winners. The ledger is
// verified once the game is over.
func (t *Table) Play(ctx context.Context) ([]wizard.PlayerView, error) {
	t.logger.Info("Starting game", "id", t.game.ID(), "seats", len(t.seats), "rounds", t.game.MaxRounds())
	for t.game.Phase() != wizard.PhaseEnded {
		if err := t.step(ctx); err != nil {
			return nil, fmt.Errorf("round %d: %w", t.game.Round()+1, err)
		}
	}
	if err := t.chain.Verify(); err != nil {
		return nil, fmt.Errorf("ledger verification failed: %w", err)
	}
	t.logger.Info("Ledger verified", "blocks", t.chain.Len())
	return t.game.Winners(), nil
}
