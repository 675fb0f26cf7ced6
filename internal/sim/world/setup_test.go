package world

import (
	"sync"
	"testing"

	"github.com/Yiin/YARP/internal/persistence/ledger"
	"github.com/Yiin/YARP/internal/sim/catalogs"
	"github.com/Yiin/YARP/internal/sim/tuning"
)

func testCatalogs() *catalogs.Catalogs {
	return catalogs.Build(
		[]catalogs.ItemDef{
			{ID: "WATER_BOTTLE", Category: "consumable", UnitWeight: 0.5},
			{ID: "BANDAGE", Category: "medical", UnitWeight: 0.2},
			{ID: "BRICK", Category: "material", UnitWeight: 2},
		},
		[]catalogs.WeaponDef{
			{ID: "WEAPON_PISTOL", Category: "handgun"},
			{ID: "WEAPON_BAT", Category: "melee"},
		},
		[]catalogs.GroupDef{
			{ID: "admin", Permissions: []string{"*"}},
			{ID: "citizen", Permissions: []string{"drive"}},
			{ID: "police", Type: "job", Permissions: []string{"cuff"}, Inherits: []string{"citizen"}},
			{ID: "taxi", Type: "job", Permissions: []string{"fare"}},
			{ID: "banned_driver", Permissions: []string{"-drive"}},
			{ID: "parole", Permissions: []string{"+drive"}},
		},
	)
}

func testTuning() tuning.Tuning {
	return tuning.Tuning{
		StartingWallet: 500,
		StartingBank:   1000,
		FirstSpawn:     [3]float64{0, 0, 0},
		FirstHeading:   0,
		MaxWeight:      10,
	}
}

func newTestWorld(t *testing.T) (*World, *ledger.Memory) {
	t.Helper()
	led := ledger.NewMemory()
	w := NewWorld(testCatalogs(), testTuning(), led, NewHandlerRegistry(), nil)
	return w, led
}

func newTestCharacter(t *testing.T, w *World, id string) *Character {
	t.Helper()
	c, err := w.NewCharacter(id, "acct_"+id)
	if err != nil {
		t.Fatalf("new character %s: %v", id, err)
	}
	return c
}

// recordSession captures everything pushed to the client.
type recordSession struct {
	mu      sync.Mutex
	attrs   map[string]any
	events  []string
	weapons map[string]int
	revoked []string
}

func newRecordSession() *recordSession {
	return &recordSession{attrs: map[string]any{}, weapons: map[string]int{}}
}

func (s *recordSession) SetAttribute(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs[key] = value
}

func (s *recordSession) GrantWeapon(weaponID string, ammo int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weapons[weaponID] = ammo
}

func (s *recordSession) RevokeWeapon(weaponID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked = append(s.revoked, weaponID)
	delete(s.weapons, weaponID)
}

func (s *recordSession) SetWeaponAmmo(weaponID string, ammo int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weapons[weaponID] = ammo
}

func (s *recordSession) Notify(event string, payload map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name := event
	if g, ok := payload["group"].(string); ok {
		name += ":" + g
	}
	if w, ok := payload["weapon"].(string); ok {
		name += ":" + w
	}
	s.events = append(s.events, name)
}

func (s *recordSession) attr(key string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attrs[key]
}

func (s *recordSession) eventList() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}
