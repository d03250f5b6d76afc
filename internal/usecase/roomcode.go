package usecase

import (
	"math/rand"
	"sync"
)

// Room codes are short and human-shareable, so the alphabet drops the
// confusable characters 0/O and 1/I.
const (
	roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	roomCodeLength   = 4

	// DefaultCodeAttempts bounds collision retries before creation gives
	// up with ErrCreationExhausted.
	DefaultCodeAttempts = 8
)

// codeGenerator issues random room codes. Safe for concurrent use.
type codeGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newCodeGenerator(seed int64) *codeGenerator {
	return &codeGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *codeGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	buf := make([]byte, roomCodeLength)
	for i := range buf {
		buf[i] = roomCodeAlphabet[g.rng.Intn(len(roomCodeAlphabet))]
	}
	return string(buf)
}
