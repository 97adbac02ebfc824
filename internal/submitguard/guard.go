package submitguard

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

const falsePositiveRate = 0.0001

// Guard tracks order-form tokens so one rendered form can be in flight at
// most once and, once its order is accepted, never be posted again.
//
// Accepted tokens live in a bloom filter sized for capacity entries. When the
// current filter fills up it becomes the previous generation and a fresh one
// is started, so the most recent capacity..2*capacity tokens are remembered.
type Guard struct {
	capacity uint

	mu       sync.Mutex
	inFlight map[string]struct{}
	current  *bloom.BloomFilter
	previous *bloom.BloomFilter
	count    uint
}

// New creates a guard sized for capacity tokens per generation.
func New(capacity uint) *Guard {
	return &Guard{
		capacity: capacity,
		inFlight: make(map[string]struct{}),
		current:  bloom.NewWithEstimates(capacity, falsePositiveRate),
	}
}

// Begin claims token for a submission. It returns false when the token is
// already being submitted or its order was accepted earlier.
func (g *Guard) Begin(token string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[token]; busy {
		return false
	}
	if g.acceptedLocked(token) {
		return false
	}
	g.inFlight[token] = struct{}{}
	return true
}

// Finish releases a token claimed by Begin. An accepted token is remembered;
// a rejected one may be submitted again.
func (g *Guard) Finish(token string, accepted bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.inFlight, token)
	if !accepted {
		return
	}

	if g.count >= g.capacity {
		g.previous = g.current
		g.current = bloom.NewWithEstimates(g.capacity, falsePositiveRate)
		g.count = 0
	}
	g.current.AddString(token)
	g.count++
}

// accepted reports whether token's order was accepted. False positives are
// possible at the configured rate; false negatives are not.
func (g *Guard) accepted(token string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.acceptedLocked(token)
}

func (g *Guard) acceptedLocked(token string) bool {
	if g.current.TestString(token) {
		return true
	}
	return g.previous != nil && g.previous.TestString(token)
}
