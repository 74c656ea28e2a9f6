package services

import (
	"math/rand/v2"
	"sync"
)

var motivationalSuggestions = []string{
	"Remember, every small step counts towards your goal!",
	"Visualize your success and let it drive you forward.",
	"Embrace the challenge - it's making you stronger every day.",
	"You've got this! Your future self will thank you.",
	"Stay consistent, and you'll see amazing results soon.",
}

// Motivator picks an encouragement line for the dashboard. The random
// source is injected so callers can make the choice reproducible.
type Motivator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewMotivator(rnd *rand.Rand) *Motivator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Motivator{rnd: rnd}
}

func (m *Motivator) Pick() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return motivationalSuggestions[m.rnd.IntN(len(motivationalSuggestions))]
}

func MotivationalSuggestions() []string {
	out := make([]string, len(motivationalSuggestions))
	copy(out, motivationalSuggestions)
	return out
}
