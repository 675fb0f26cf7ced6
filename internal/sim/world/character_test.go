package world

import (
	"strings"
	"testing"

	"github.com/Yiin/YARP/internal/protocol"
)

func TestNewCharacterDefaults(t *testing.T) {
	w, _ := newTestWorld(t)
	c := newTestCharacter(t, w, "Alice")

	if c.Wallet != 500 || c.Bank != 1000 {
		t.Fatalf("starting balances: %#v", c)
	}
	if c.Health != 100 {
		t.Fatalf("starting health = %d", c.Health)
	}
	if c.Model != defaultModel || c.Age != 18 {
		t.Fatalf("defaults: model=%q age=%d", c.Model, c.Age)
	}
	if c.Inventory == nil || c.Weapons == nil || c.Skills == nil {
		t.Fatalf("maps must be initialized")
	}
	if got, err := w.Characters().At("Alice"); err != nil || got != c {
		t.Fatalf("character not registered: %v", err)
	}
}

func TestNewCharacter_DuplicateID(t *testing.T) {
	w, _ := newTestWorld(t)
	newTestCharacter(t, w, "Alice")
	if _, err := w.NewCharacter("Alice", "acct_other"); err == nil {
		t.Fatalf("duplicate id must be rejected")
	}
}

func TestEnter(t *testing.T) {
	w, _ := newTestWorld(t)
	c := newTestCharacter(t, w, "Alice")
	c.GiveGroup("police")

	s := newRecordSession()
	c.AttachSession(s)

	var ran []string
	w.Handlers().Register("spawn", func(*Character, Session) { ran = append(ran, "spawn") })
	w.Handlers().Register("patrol", func(*Character, Session) { ran = append(ran, "patrol") })
	c.EnterHandler = "spawn"
	g := w.Catalogs().Groups.Defs["police"]
	g.OnEnter = "patrol"
	w.Catalogs().Groups.Defs["police"] = g

	c.Enter()

	if len(ran) != 2 || ran[0] != "spawn" || ran[1] != "patrol" {
		t.Fatalf("handler order: %v", ran)
	}
	events := s.eventList()
	if len(events) != 1 || events[0] != "characterJoinedGroup:police" {
		t.Fatalf("join notify: %v", events)
	}
	for _, key := range []string{
		protocol.AttrWallet, protocol.AttrBank,
		protocol.AttrHunger, protocol.AttrThirst, protocol.AttrXP,
	} {
		if s.attr(key) == nil {
			t.Fatalf("attribute %s not pushed", key)
		}
	}
	if s.attr(protocol.AttrWallet) != 500 {
		t.Fatalf("wallet attr = %v", s.attr(protocol.AttrWallet))
	}
}

func TestLeave(t *testing.T) {
	w, _ := newTestWorld(t)
	c := newTestCharacter(t, w, "Alice")
	c.GiveGroup("citizen")

	s := newRecordSession()
	c.AttachSession(s)

	var ran []string
	w.Handlers().Register("despawn", func(*Character, Session) { ran = append(ran, "despawn") })
	c.LeaveHandler = "despawn"

	c.Leave()
	c.DetachSession()

	if len(ran) != 1 || ran[0] != "despawn" {
		t.Fatalf("leave handler: %v", ran)
	}
	events := s.eventList()
	if len(events) != 1 || events[0] != "characterLeftGroup:citizen" {
		t.Fatalf("leave notify: %v", events)
	}
	if !c.HasGroup("citizen") {
		t.Fatalf("leaving the world must not drop memberships")
	}
}

func TestEnter_NoSession(t *testing.T) {
	w, _ := newTestWorld(t)
	c := newTestCharacter(t, w, "Alice")
	c.GiveGroup("citizen")
	c.Enter() // must not panic
}

func TestUpdateLastLogin(t *testing.T) {
	w, _ := newTestWorld(t)
	c := newTestCharacter(t, w, "Alice")

	c.UpdateLastLogin("203.0.113.9")
	if !strings.HasPrefix(c.LastLogin, "203.0.113.9 ") {
		t.Fatalf("last login = %q", c.LastLogin)
	}
}

func TestSetPosition(t *testing.T) {
	w, _ := newTestWorld(t)
	c := newTestCharacter(t, w, "Alice")

	c.SetPosition(Vec3{X: 10, Y: -4, Z: 30}, 90, 2)
	if c.EntityPosition() != (Vec3{X: 10, Y: -4, Z: 30}) {
		t.Fatalf("position: %#v", c.EntityPosition())
	}
	if c.EntityDimension() != 2 {
		t.Fatalf("dimension: %d", c.EntityDimension())
	}
}

func TestRemoveCharacter(t *testing.T) {
	w, _ := newTestWorld(t)
	newTestCharacter(t, w, "Alice")

	if !w.RemoveCharacter("Alice") {
		t.Fatalf("remove failed")
	}
	if w.Characters().Exists("Alice") {
		t.Fatalf("character should be gone")
	}
	if w.RemoveCharacter("Alice") {
		t.Fatalf("second remove must be a no-op")
	}
}
