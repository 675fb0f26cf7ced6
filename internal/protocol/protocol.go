package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	TypeHello        = "HELLO"
	TypeWelcome      = "WELCOME"
	TypeAttr         = "ATTR"
	TypeEvent        = "EVENT"
	TypeWeaponGrant  = "WEAPON_GRANT"
	TypeWeaponRevoke = "WEAPON_REVOKE"
	TypeWeaponAmmo   = "WEAPON_AMMO"
	TypeAct          = "ACT"
	TypeResult       = "RESULT"
)

// Attribute keys pushed to the client HUD.
const (
	AttrWallet = "PLAYER_WALLET"
	AttrBank   = "PLAYER_BANK"
	AttrHunger = "PLAYER_HUNGER"
	AttrThirst = "PLAYER_THIRST"
	AttrXP     = "PLAYER_XP"
)

// Event names emitted to the client.
const (
	EventEquipWeapon          = "equipWeapon"
	EventUnequipWeapon        = "unequipWeapon"
	EventCharacterJoinedGroup = "characterJoinedGroup"
	EventCharacterLeftGroup   = "characterLeftGroup"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
