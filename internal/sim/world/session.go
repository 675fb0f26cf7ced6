package world

import "sync"

// Session is the live connection controlling a character. Implementations
// must tolerate calls after disconnect (they become no-ops on the transport
// side).
type Session interface {
	SetAttribute(key string, value any)
	GrantWeapon(weaponID string, ammo int)
	RevokeWeapon(weaponID string)
	SetWeaponAmmo(weaponID string, ammo int)
	Notify(event string, payload map[string]any)
}

// Handler is a named lifecycle side effect. Characters and groups reference
// handlers by name; the registry resolves them at call time. Handlers run
// outside the character lock and may call back into the character.
type Handler func(c *Character, s Session)

type HandlerRegistry struct {
	mu     sync.RWMutex
	byName map[string]Handler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{byName: map[string]Handler{}}
}

func (r *HandlerRegistry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[name] = h
}

// at returns a no-op for unknown or empty names.
func (r *HandlerRegistry) at(name string) Handler {
	if name == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}
