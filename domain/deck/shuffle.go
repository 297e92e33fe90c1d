package deck

import (
	"encoding/binary"
	"math/rand"
	"sync"
	"time"

	"go.dedis.ch/kyber/v4/suites"
)

// Source yields uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

// Shuffle permutes the deck in place with Fisher–Yates, walking from the last
// index down to 1 and swapping each position with a uniform pick in [0, i].
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.source.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// NewMathSource returns a deterministic source seeded with seed.
func NewMathSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewTimeSource returns a math/rand source seeded from the clock.
func NewTimeSource() Source {
	return NewMathSource(time.Now().UnixNano())
}

var suite suites.Suite = suites.MustFind("Ed25519")

// SecureSource draws from the kyber suite's cryptographic random stream.
type SecureSource struct {
	mu  sync.Mutex
	buf [8]byte
}

// NewSecureSource returns a Source backed by the Ed25519 suite random stream.
func NewSecureSource() *SecureSource {
	return &SecureSource{}
}

// Intn returns a uniform integer in [0, n) using rejection sampling, so no
// residue of the modulus skews the permutation. It panics if n <= 0.
func (s *SecureSource) Intn(n int) int {
	if n <= 0 {
		panic("deck: invalid argument to Intn")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	bound := uint64(n)
	limit := ^uint64(0) - (^uint64(0) % bound)
	for {
		s.buf = [8]byte{}
		suite.RandomStream().XORKeyStream(s.buf[:], s.buf[:])
		v := binary.BigEndian.Uint64(s.buf[:])
		if v < limit {
			return int(v % bound)
		}
	}
}
