package ledger

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/luca-patrignani/wizard/domain/wizard"
)

var ErrEmptyChain = errors.New("blockchain is empty")

type Blockchain struct {
	mu       sync.RWMutex
	blocks   []Block
	gameID   uuid.UUID
	recorder string
	priv     ed25519.PrivateKey
	pub      ed25519.PublicKey
	now      func() time.Time
}

type option func(*Blockchain)

// WithSigner signs every block hash with priv. Verify then also checks the
// signatures against the matching public key.
func WithSigner(priv ed25519.PrivateKey) option {
	return func(bc *Blockchain) {
		bc.priv = priv
		bc.pub = priv.Public().(ed25519.PublicKey)
	}
}

// WithRecorder names who keeps the chain; it is stored in every block.
func WithRecorder(name string) option {
	return func(bc *Blockchain) {
		bc.recorder = name
	}
}

// WithClock replaces time.Now for block timestamps.
func WithClock(now func() time.Time) option {
	return func(bc *Blockchain) {
		bc.now = now
	}
}

// NewBlockchain creates a blockchain for the game gameID with an initialized
// genesis block. The genesis block has index 0 and previous hash "0".
func NewBlockchain(gameID uuid.UUID, opts ...option) *Blockchain {
	bc := &Blockchain{
		blocks: make([]Block, 0),
		gameID: gameID,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(bc)
	}

	genesis := Block{
		Index:     0,
		Timestamp: bc.now().Unix(),
		PrevHash:  "0",
		GameID:    gameID,
		Event:     wizard.Event{Kind: genesisKind, GameID: gameID, Seat: -1},
		Metadata:  Metadata{Recorder: bc.recorder},
	}
	genesis.Hash = calculateHash(genesis)
	bc.sign(&genesis)
	bc.blocks = append(bc.blocks, genesis)

	return bc
}

// Observe appends e; it lets the chain be registered as a game observer.
func (bc *Blockchain) Observe(e wizard.Event) error {
	return bc.Append(e)
}

// Append adds a block for e after the latest one. Events of another game are
// rejected. The extra parameter can optionally contain additional metadata.
func (bc *Blockchain) Append(e wizard.Event, extra ...map[string]string) error {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	if e.GameID != bc.gameID {
		return fmt.Errorf("event of game %s does not belong to chain of game %s", e.GameID, bc.gameID)
	}
	var extraMsg map[string]string
	if len(extra) > 0 {
		extraMsg = extra[0]
	}
	latest := bc.blocks[len(bc.blocks)-1]

	newBlock := Block{
		Index:     latest.Index + 1,
		Timestamp: bc.now().Unix(),
		PrevHash:  latest.Hash,
		GameID:    bc.gameID,
		Event:     e,
		Metadata: Metadata{
			Recorder: bc.recorder,
			Extra:    extraMsg,
		},
	}
	newBlock.Hash = calculateHash(newBlock)
	bc.sign(&newBlock)

	if err := bc.validateBlock(newBlock, latest); err != nil {
		return fmt.Errorf("invalid block: %w", err)
	}
	bc.blocks = append(bc.blocks, newBlock)
	return nil
}

func (bc *Blockchain) sign(b *Block) {
	if bc.priv == nil {
		return
	}
	b.Signature = ed25519.Sign(bc.priv, []byte(b.Hash))
}

// Len returns the number of blocks, genesis included.
func (bc *Blockchain) Len() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.blocks)
}

// GetLatest returns the most recently added block.
func (bc *Blockchain) GetLatest() (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if len(bc.blocks) == 0 {
		return Block{}, ErrEmptyChain
	}
	return bc.blocks[len(bc.blocks)-1], nil
}

// GetByIndex retrieves a copy of the block at index.
func (bc *Blockchain) GetByIndex(index int) (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if index < 0 || index >= len(bc.blocks) {
		return Block{}, fmt.Errorf("index %d out of range", index)
	}
	return bc.blocks[index], nil
}

// Events returns the recorded events of the given kind, or all of them when
// kind is empty. The genesis block is never included.
func (bc *Blockchain) Events(kind wizard.EventKind) []wizard.Event {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	var out []wizard.Event
	for _, b := range bc.blocks[1:] {
		if kind == "" || b.Event.Kind == kind {
			out = append(out, b.Event)
		}
	}
	return out
}

// Verify validates the integrity of the entire chain: the genesis block, and
// for every later block its hash, index continuity and previous hash linkage.
func (bc *Blockchain) Verify() error {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if len(bc.blocks) == 0 {
		return ErrEmptyChain
	}
	genesis := bc.blocks[0]
	if genesis.PrevHash != "0" || genesis.Index != 0 {
		return fmt.Errorf("invalid genesis block")
	}
	if err := bc.checkHash(genesis); err != nil {
		return fmt.Errorf("genesis: %w", err)
	}
	for i := 1; i < len(bc.blocks); i++ {
		if err := bc.validateBlock(bc.blocks[i], bc.blocks[i-1]); err != nil {
			return fmt.Errorf("block %d invalid: %w", i, err)
		}
	}
	return nil
}

// validateBlock verifies a block against the previous one: index continuity,
// previous hash linkage, hash validity and, with a signer, the signature.
func (bc *Blockchain) validateBlock(current, previous Block) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}
	if current.PrevHash != previous.Hash {
		return fmt.Errorf("invalid prev hash: expected %s, got %s", previous.Hash, current.PrevHash)
	}
	if current.GameID != previous.GameID {
		return fmt.Errorf("invalid game id: expected %s, got %s", previous.GameID, current.GameID)
	}
	return bc.checkHash(current)
}

func (bc *Blockchain) checkHash(b Block) error {
	expectedHash := calculateHash(b)
	if b.Hash != expectedHash {
		return fmt.Errorf("invalid hash: expected %s, got %s", expectedHash, b.Hash)
	}
	if bc.pub != nil && !ed25519.Verify(bc.pub, []byte(b.Hash), b.Signature) {
		return fmt.Errorf("invalid signature")
	}
	return nil
}

// calculateHash computes the SHA256 hash of a block from its index, timestamp,
// previous hash, game id, event and recorder. The event is JSON marshaled
// before hashing.
func calculateHash(block Block) string {
	eventBytes, _ := json.Marshal(block.Event)
	extraBytes, _ := json.Marshal(block.Metadata.Extra)

	data := fmt.Sprintf("%d%d%s%s%s%s%s",
		block.Index,
		block.Timestamp,
		block.PrevHash,
		block.GameID,
		string(eventBytes),
		block.Metadata.Recorder,
		string(extraBytes),
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
