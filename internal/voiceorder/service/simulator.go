package service

import (
	"math/rand/v2"
	"sync"
	"time"

	"saajhamandi/internal/catalog"
	"saajhamandi/internal/domain"
)

const (
	minSimulatedItems = 2
	maxSimulatedItems = 4
)

// Simulator stands in for speech capture on clients that cannot record. It
// picks a few random products, each with one of its package sizes.
type Simulator struct {
	entries []domain.CatalogEntry

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator seeds the generator with seed, or with the clock when seed is 0.
func NewSimulator(c *catalog.Catalog, seed uint64) *Simulator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Simulator{
		entries: c.Entries(),
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *Simulator) Mentions() []domain.Mention {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := minSimulatedItems + s.rng.IntN(maxSimulatedItems-minSimulatedItems+1)
	if count > len(s.entries) {
		count = len(s.entries)
	}

	order := s.rng.Perm(len(s.entries))
	mentions := make([]domain.Mention, 0, count)
	for _, idx := range order[:count] {
		entry := s.entries[idx]
		quantity := ""
		if len(entry.PackageSizes) > 0 {
			quantity = entry.PackageSizes[s.rng.IntN(len(entry.PackageSizes))]
		}
		mentions = append(mentions, domain.Mention{RawName: entry.Name, RawQuantity: quantity})
	}
	return mentions
}
