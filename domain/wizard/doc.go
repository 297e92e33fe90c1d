// Package wizard implements the rules engine of the Wizard trick-taking game:
// dealing round by round, trump selection, bets, trick adjudication and scoring.
//
// # Core Types
//
// Game: the orchestrator. Owns the deck and the ordered players and walks the
// round state machine Deal → Trump → Betting → Playing → (Deal | Ended).
//
// Player: a participant's hand, current bet, tricks won this round and
// cumulative score.
//
// Trick: the running state of one trick (lead suit, winning card and seat) and
// the precedence rules that decide which card takes it.
//
// DecisionProvider: the synchronous capability the Game asks for the three
// kinds of decisions (trump suit, bet, card to play). Human prompts, bots and
// remote players all sit behind it.
//
// # Game Flow
//
// Round r (zero-indexed) deals r+1 cards to each player and plays r+1 tricks.
// The game lasts deck size / player count rounds. Step advances the game by a
// single transition or decision; Run steps until the game is over.
//
// # Errors
//
// ErrIllegalPlay, ErrInvalidBet and ErrInvalidTrump are recoverable: the state
// is left untouched and the same decision is requested again on the next Step.
// The Game itself never retries.
package wizard
