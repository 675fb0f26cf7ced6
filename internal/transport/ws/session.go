package ws

import (
	"encoding/json"
	"log"

	"github.com/Yiin/YARP/internal/protocol"
)

// wsSession adapts the character session interface to one client connection.
// Pushes are dropped rather than blocked when the client falls behind; the
// full state is replayed on reconnect anyway.
type wsSession struct {
	out chan []byte
	log *log.Logger
}

func newSession(buf int, logger *log.Logger) *wsSession {
	return &wsSession{out: make(chan []byte, buf), log: logger}
}

func (s *wsSession) push(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case s.out <- b:
	default:
		if s.log != nil {
			s.log.Printf("session queue full, dropping message")
		}
	}
}

func (s *wsSession) SetAttribute(key string, value any) {
	s.push(protocol.AttrMsg{Type: protocol.TypeAttr, Key: key, Value: value})
}

func (s *wsSession) GrantWeapon(weaponID string, ammo int) {
	s.push(protocol.WeaponGrantMsg{Type: protocol.TypeWeaponGrant, Weapon: weaponID, Ammo: ammo})
}

func (s *wsSession) RevokeWeapon(weaponID string) {
	s.push(protocol.WeaponRevokeMsg{Type: protocol.TypeWeaponRevoke, Weapon: weaponID})
}

func (s *wsSession) SetWeaponAmmo(weaponID string, ammo int) {
	s.push(protocol.WeaponAmmoMsg{Type: protocol.TypeWeaponAmmo, Weapon: weaponID, Ammo: ammo})
}

func (s *wsSession) Notify(event string, payload map[string]any) {
	s.push(protocol.EventMsg{Type: protocol.TypeEvent, Name: event, Payload: payload})
}

func (s *wsSession) result(action string, ok bool, code string) {
	s.push(protocol.ResultMsg{Type: protocol.TypeResult, Action: action, OK: ok, Code: code})
}
