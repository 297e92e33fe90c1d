package ledger

import (
	"github.com/google/uuid"

	"github.com/luca-patrignani/wizard/domain/wizard"
)

// Block is one recorded game event.
type Block struct {
	Index     int          `json:"index"`
	Timestamp int64        `json:"timestamp"`
	PrevHash  string       `json:"prev_hash"`
	Hash      string       `json:"hash"`
	GameID    uuid.UUID    `json:"game_id"`
	Event     wizard.Event `json:"event"`
	Signature []byte       `json:"signature,omitempty"`
	Metadata  Metadata     `json:"metadata"`
}

type Metadata struct {
	Recorder string            `json:"recorder,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

const genesisKind wizard.EventKind = "genesis"
