package world

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

type testEntity struct {
	id       string
	category string
	pos      Vec3
	dim      int
}

func (e *testEntity) EntityID() string       { return e.id }
func (e *testEntity) EntityCategory() string { return e.category }
func (e *testEntity) EntityPosition() Vec3   { return e.pos }
func (e *testEntity) EntityDimension() int   { return e.dim }

func TestPool_RegisterAndLookup(t *testing.T) {
	p := NewPool[*testEntity]()
	if err := p.Register(&testEntity{id: "a"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := p.Register(&testEntity{id: "a"}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if !p.Exists("a") || p.Exists("b") {
		t.Fatalf("unexpected existence checks")
	}
	e, err := p.At("a")
	if err != nil || e.id != "a" {
		t.Fatalf("at: %v %v", e, err)
	}
	if _, err := p.At("b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if p.Len() != 1 {
		t.Fatalf("expected len 1, got %d", p.Len())
	}
}

func TestPool_AllPreservesRegistrationOrder(t *testing.T) {
	p := NewPool[*testEntity]()
	for _, id := range []string{"c", "a", "b"} {
		if err := p.Register(&testEntity{id: id}); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}
	var got []string
	for _, e := range p.All() {
		got = append(got, e.id)
	}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v want %v", got, want)
		}
	}

	if !p.Remove("a") {
		t.Fatalf("remove failed")
	}
	if p.Remove("a") {
		t.Fatalf("second remove should be a no-op")
	}
	got = nil
	for _, e := range p.All() {
		got = append(got, e.id)
	}
	if len(got) != 2 || got[0] != "c" || got[1] != "b" {
		t.Fatalf("order after removal: %v", got)
	}
}

func TestPool_Categorized(t *testing.T) {
	p := NewPool[*testEntity]()
	_ = p.Register(&testEntity{id: "a", category: "shop"})
	_ = p.Register(&testEntity{id: "b", category: "shop"})
	_ = p.Register(&testEntity{id: "c", category: "house"})
	_ = p.Register(&testEntity{id: "d"}) // no category: omitted

	cats := p.Categorized()
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %#v", cats)
	}
	if len(cats["shop"]) != 2 || cats["shop"]["a"] == nil {
		t.Fatalf("unexpected shop category: %#v", cats["shop"])
	}
	if len(cats["house"]) != 1 {
		t.Fatalf("unexpected house category: %#v", cats["house"])
	}
}

func TestPool_RangeAndDimension(t *testing.T) {
	p := NewPool[*testEntity]()
	_ = p.Register(&testEntity{id: "near", pos: Vec3{X: 1}})
	_ = p.Register(&testEntity{id: "far", pos: Vec3{X: 100}})
	_ = p.Register(&testEntity{id: "interior", pos: Vec3{X: 2}, dim: 7})

	var inRange []string
	p.ForEachInRange(Vec3{}, 10, func(e *testEntity) { inRange = append(inRange, e.id) })
	if len(inRange) != 2 || inRange[0] != "near" || inRange[1] != "interior" {
		t.Fatalf("unexpected range result: %v", inRange)
	}

	var inDim []string
	p.ForEachInDimension(7, func(e *testEntity) { inDim = append(inDim, e.id) })
	if len(inDim) != 1 || inDim[0] != "interior" {
		t.Fatalf("unexpected dimension result: %v", inDim)
	}
}

func TestPool_ConcurrentRegistrationAndTraversal(t *testing.T) {
	p := NewPool[*testEntity]()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = p.Register(&testEntity{id: fmt.Sprintf("e%d_%d", n, j)})
				p.ForEachInRange(Vec3{}, 1000, func(*testEntity) {})
				_ = p.All()
			}
		}(i)
	}
	wg.Wait()
	if p.Len() != 8*50 {
		t.Fatalf("expected %d entities, got %d", 8*50, p.Len())
	}
}
