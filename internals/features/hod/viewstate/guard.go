// Package viewstate keeps page view state consistent when responses arrive
// out of order or after the page is gone.
package viewstate

import "sync"

// Ticket identifies one request issued for a slot of a page ("assignments",
// "available", ...).
type Ticket struct {
	slot string
	gen  uint64
}

// Guard serialises writes to a page's view state. Only the newest request
// per slot may commit, and nothing commits after Close.
type Guard struct {
	mu     sync.Mutex
	gens   map[string]uint64
	closed bool
}

func (g *Guard) Begin(slot string) Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gens == nil {
		g.gens = map[string]uint64{}
	}
	g.gens[slot]++
	return Ticket{slot: slot, gen: g.gens[slot]}
}

// Commit runs apply if t is still the newest ticket of its slot and the
// page is open. It reports whether apply ran.
func (g *Guard) Commit(t Ticket, apply func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || g.gens[t.slot] != t.gen {
		return false
	}
	apply()
	return true
}

// Do runs fn under the guard's lock.
func (g *Guard) Do(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn()
}

// Close marks the page unmounted.
func (g *Guard) Close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}

func (g *Guard) Closed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed
}
