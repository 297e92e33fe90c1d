package wizard

import "errors"

var (
	ErrNoPlayers    = errors.New("no players")
	ErrDeckTooSmall = errors.New("deck too small for player count")
	ErrIllegalPlay  = errors.New("illegal play")
	ErrInvalidBet   = errors.New("invalid bet")
	ErrInvalidTrump = errors.New("invalid trump suit")
	ErrNotYourTurn  = errors.New("not player's turn")
	ErrWrongPhase   = errors.New("action not allowed in current phase")
	ErrGameOver     = errors.New("game over")
)

// IsRecoverable reports whether err leaves the game ready to accept the same
// decision again.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrIllegalPlay) ||
		errors.Is(err, ErrInvalidBet) ||
		errors.Is(err, ErrInvalidTrump)
}
