// Package ledger implements an append-only, hash-chained record of the events
// of a Wizard game.
//
// # Core Components
//
// Blockchain: the log. Every appended event becomes a block linked to the
// previous one by its SHA-256 hash.
//
// Block: a single recorded event with its index, timestamp and links.
//
// # Security Properties
//
// The chain provides:
//   - Verifiability: Verify re-derives every hash and link
//   - Auditability: the complete sequence of deals, bets, plays and scores
//   - Tamper detection: any modification breaks the hash chain, and with a
//     signer configured every block hash is signed with Ed25519
//
// # Usage
//
// Create a blockchain for a game ID and register it as an observer of the
// game; every event is appended as it happens.
package ledger
