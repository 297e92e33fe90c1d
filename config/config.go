// Package config loads and validates the settings of a Wizard table.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"

	"github.com/luca-patrignani/wizard/bot"
	"github.com/luca-patrignani/wizard/domain/card"
	"github.com/luca-patrignani/wizard/domain/deck"
	"github.com/luca-patrignani/wizard/domain/wizard"
)

// Config describes one table. Human players sit first, bots after them.
type Config struct {
	Players       []string     `json:"players"`
	Bots          []string     `json:"bots"`
	BotStrategy   bot.Strategy `json:"bot_strategy"`
	WizardMode    bool         `json:"wizard_mode"`
	Seed          *int64       `json:"seed,omitempty"`
	SecureShuffle bool         `json:"secure_shuffle"`
	StrictSizing  bool         `json:"strict_sizing"`
	ShufflePasses int          `json:"shuffle_passes"`

	// MaxAttempts bounds how many times a seat is asked again after an
	// illegal answer before the game is abandoned.
	MaxAttempts int `json:"max_attempts"`
}

// Default returns a three-seat table with one human and two greedy bots
// playing the 60-card deck.
func Default() Config {
	return Config{
		Players:       []string{"Player"},
		Bots:          []string{"Merlin", "Morgana"},
		BotStrategy:   bot.StrategyGreedy,
		WizardMode:    true,
		ShufflePasses: 3,
		MaxAttempts:   5,
	}
}

// Load reads a JSON configuration from path. Fields missing from the file
// keep their Default values. The result is validated.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Seats returns every seat name in seating order.
func (c Config) Seats() []string {
	seats := make([]string, 0, len(c.Players)+len(c.Bots))
	seats = append(seats, c.Players...)
	return append(seats, c.Bots...)
}

// IsBot reports whether the seat at index is taken by a bot.
func (c Config) IsBot(seat int) bool {
	return seat >= len(c.Players) && seat < len(c.Players)+len(c.Bots)
}

func (c Config) deckSize() int {
	if c.WizardMode {
		return card.WizardSize
	}
	return card.StandardSize
}

// Validate reports every problem of c at once.
func (c Config) Validate() error {
	var err error
	seats := c.Seats()
	if len(seats) == 0 {
		err = multierr.Append(err, wizard.ErrNoPlayers)
	}
	seen := make(map[string]bool)
	for _, name := range seats {
		if name == "" {
			err = multierr.Append(err, errors.New("seat names must not be empty"))
			continue
		}
		if seen[name] {
			err = multierr.Append(err, fmt.Errorf("duplicate seat name %q", name))
		}
		seen[name] = true
	}
	if len(c.Bots) > 0 {
		if _, berr := bot.New(c.BotStrategy, 0); berr != nil {
			err = multierr.Append(err, berr)
		}
	}
	if c.StrictSizing && len(seats) > c.deckSize() {
		err = multierr.Append(err, fmt.Errorf("%w: %d seats, %d cards", wizard.ErrDeckTooSmall, len(seats), c.deckSize()))
	}
	if c.SecureShuffle && c.Seed != nil {
		err = multierr.Append(err, errors.New("seed and secure_shuffle are mutually exclusive"))
	}
	if c.ShufflePasses < 1 {
		err = multierr.Append(err, fmt.Errorf("shuffle_passes must be at least 1, got %d", c.ShufflePasses))
	}
	if c.MaxAttempts < 1 {
		err = multierr.Append(err, fmt.Errorf("max_attempts must be at least 1, got %d", c.MaxAttempts))
	}
	return err
}

// Source picks the shuffling randomness: the kyber stream when secure, a
// seeded generator when a seed is set, the clock otherwise.
func (c Config) Source() deck.Source {
	switch {
	case c.SecureShuffle:
		return deck.NewSecureSource()
	case c.Seed != nil:
		return deck.NewMathSource(*c.Seed)
	default:
		return deck.NewTimeSource()
	}
}

// NewDeck builds the deck the table plays with.
func (c Config) NewDeck() *deck.Deck {
	if c.WizardMode {
		return deck.NewWizard(deck.WithSource(c.Source()))
	}
	return deck.NewStandard(deck.WithSource(c.Source()))
}

// GameOptions translates c into options for wizard.NewGame.
func (c Config) GameOptions() []wizard.Option {
	opts := []wizard.Option{
		wizard.WithDeck(c.NewDeck()),
		wizard.WithShufflePasses(c.ShufflePasses),
	}
	if c.StrictSizing {
		opts = append(opts, wizard.WithStrictSizing())
	}
	return opts
}

// BotProviders creates one provider per bot seat. Each bot gets its own seed
// derived from the table seed, or from its seat when no seed is set.
func (c Config) BotProviders() ([]wizard.DecisionProvider, error) {
	var base int64
	if c.Seed != nil {
		base = *c.Seed
	}
	providers := make([]wizard.DecisionProvider, 0, len(c.Bots))
	for i := range c.Bots {
		p, err := bot.New(c.BotStrategy, base+int64(len(c.Players)+i))
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, nil
}
