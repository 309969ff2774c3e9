package usecase

import "sync"

// generations tracks the latest search per session so a slow search that
// resolves after a newer one can be discarded.
type generations struct {
	mu      sync.Mutex
	counter uint64
	latest  map[string]uint64
}

func newGenerations() *generations {
	return &generations{latest: make(map[string]uint64)}
}

// Begin registers a new search and returns its generation. An empty session
// still gets a generation but is never superseded.
func (g *generations) Begin(session string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	if session != "" {
		g.latest[session] = g.counter
	}
	return g.counter
}

func (g *generations) IsLatest(session string, gen uint64) bool {
	if session == "" {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.latest[session] == gen
}

// Done forgets the session once its latest search finished.
func (g *generations) Done(session string, gen uint64) {
	if session == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.latest[session] == gen {
		delete(g.latest, session)
	}
}
