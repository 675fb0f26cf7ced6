package world

import (
	"fmt"
	"sync"
)

// Entity is anything a Pool can hold.
type Entity interface {
	EntityID() string
}

// Categorized entities appear in Pool.Categorized; others are omitted.
type Categorized interface {
	EntityCategory() string
}

// Positioned entities participate in range/dimension traversal.
type Positioned interface {
	EntityPosition() Vec3
	EntityDimension() int
}

// Pool indexes all live instances of one entity kind. Registration and
// removal are serialized; traversal walks a snapshot, so entities registered
// concurrently with a traversal may or may not be visited by it.
type Pool[E Entity] struct {
	mu    sync.RWMutex
	byID  map[string]E
	order []string
}

func NewPool[E Entity]() *Pool[E] {
	return &Pool[E]{byID: map[string]E{}}
}

func (p *Pool[E]) Register(e E) error {
	id := e.EntityID()
	if id == "" {
		return fmt.Errorf("register: empty id")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.byID[id]; ok {
		return fmt.Errorf("register %q: %w", id, ErrDuplicateID)
	}
	p.byID[id] = e
	p.order = append(p.order, id)
	return nil
}

func (p *Pool[E]) Remove(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.byID[id]; !ok {
		return false
	}
	delete(p.byID, id)
	for i, oid := range p.order {
		if oid == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return true
}

func (p *Pool[E]) Exists(id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.byID[id]
	return ok
}

func (p *Pool[E]) At(id string) (E, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.byID[id]
	if !ok {
		var zero E
		return zero, fmt.Errorf("at %q: %w", id, ErrNotFound)
	}
	return e, nil
}

func (p *Pool[E]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.byID)
}

// All returns entities in registration order.
func (p *Pool[E]) All() []E {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]E, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.byID[id])
	}
	return out
}

// Categorized groups entities by their declared category.
func (p *Pool[E]) Categorized() map[string]map[string]E {
	out := map[string]map[string]E{}
	for _, e := range p.All() {
		c, ok := any(e).(Categorized)
		if !ok {
			continue
		}
		cat := c.EntityCategory()
		if cat == "" {
			continue
		}
		if out[cat] == nil {
			out[cat] = map[string]E{}
		}
		out[cat][e.EntityID()] = e
	}
	return out
}

// ForEachInRange visits every positioned entity within radius of center,
// straight Euclidean distance. O(n) scan; fine at this scale.
func (p *Pool[E]) ForEachInRange(center Vec3, radius float64, fn func(E)) {
	for _, e := range p.All() {
		pos, ok := any(e).(Positioned)
		if !ok {
			continue
		}
		if pos.EntityPosition().Dist(center) <= radius {
			fn(e)
		}
	}
}

func (p *Pool[E]) ForEachInDimension(dimension int, fn func(E)) {
	for _, e := range p.All() {
		pos, ok := any(e).(Positioned)
		if !ok {
			continue
		}
		if pos.EntityDimension() == dimension {
			fn(e)
		}
	}
}
