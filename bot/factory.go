// Package bot provides automatic decision providers for seats without a human.
package bot

import (
	"fmt"

	"github.com/luca-patrignani/wizard/domain/wizard"
)

// Strategy names a bot implementation.
type Strategy string

const (
	StrategyRandom Strategy = "random"
	StrategyGreedy Strategy = "greedy"
)

// New creates a decision provider for the named strategy. The seed feeds the
// random strategy and breaks ties of the greedy one.
func New(strategy Strategy, seed int64) (wizard.DecisionProvider, error) {
	switch strategy {
	case StrategyRandom:
		return NewRandom(seed), nil
	case StrategyGreedy:
		return &Greedy{}, nil
	default:
		return nil, fmt.Errorf("unknown bot strategy: %q", strategy)
	}
}
